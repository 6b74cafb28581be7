package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// SessionCookie is the name of the cookie carrying the backend session.
const SessionCookie = "session_id"

// ErrorKind is the backend's error taxonomy, carried as a string inside
// JSON error bodies. The set grows per endpoint; unknown kinds are kept
// verbatim rather than rejected.
type ErrorKind string

const (
	KindServerError          ErrorKind = "ServerError"
	KindValidation           ErrorKind = "Validation"
	KindPermissionDenied     ErrorKind = "PermissionDenied"
	KindUsernameNotFound     ErrorKind = "UsernameNotFound"
	KindInvalidPassword      ErrorKind = "InvalidPassword"
	KindAlreadyAuthenticated ErrorKind = "AlreadyAuthenticated"
	KindInvalidSession       ErrorKind = "InvalidSession"
	KindInviteNotFound       ErrorKind = "InviteNotFound"
	KindInviteUsed           ErrorKind = "InviteUsed"
	KindInviteExpired        ErrorKind = "InviteExpired"
	KindInvalidConfirm       ErrorKind = "InvalidConfirm"
	KindUsernameExists       ErrorKind = "UsernameExists"
	KindInvalidCode          ErrorKind = "InvalidCode"
	KindInvalidRecovery      ErrorKind = "InvalidRecovery"
	KindAlreadyVerified      ErrorKind = "AlreadyVerified"
	KindMFANotFound          ErrorKind = "MFANotFound"
	KindInvalidAmount        ErrorKind = "InvalidAmount"
	KindInvalidExpiresOn     ErrorKind = "InvalidExpiresOn"
	KindRoleNotFound         ErrorKind = "RoleNotFound"
	KindGroupNotFound        ErrorKind = "GroupNotFound"
	KindJournalNotFound      ErrorKind = "JournalNotFound"
)

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Kind       ErrorKind
	Message    string
}

func (e *APIError) Error() string {
	switch {
	case e.Kind != "" && e.Message != "":
		return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Kind, e.Message)
	case e.Kind != "":
		return fmt.Sprintf("HTTP %d %s", e.StatusCode, e.Kind)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Kind == kind
}

// HTTPClient implements Client using the journal HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	session    string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "https://journal.example.com"). When session is non-empty, the
// session cookie is sent on every request; a fresh session issued by the
// server (on login) replaces it.
func NewHTTPClient(baseURL, session string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		session:    session,
		httpClient: &http.Client{},
	}
}

// Session returns the current session cookie value, for persisting between
// invocations.
func (c *HTTPClient) Session() string { return c.session }

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// expectJSON checks that a response's Content-Type negotiates to
// application/json. Parameters such as charset are tolerated; anything
// else fails the decode. This is the single content negotiation policy for
// every decode path.
func expectJSON(resp *http.Response) error {
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		return fmt.Errorf("response has no content-type")
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return fmt.Errorf("parse content-type %q: %w", ct, err)
	}
	if mediaType != "application/json" {
		return fmt.Errorf("unexpected content-type %q", mediaType)
	}
	return nil
}

// doJSON performs an HTTP request with optional JSON body and decodes the
// JSON response. If result is nil, the response body is discarded (for
// DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: c.session})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// Capture a rotated or newly issued session cookie.
	for _, cookie := range resp.Cookies() {
		if cookie.Name == SessionCookie {
			c.session = cookie.Value
		}
	}

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return decodeError(resp.StatusCode, respBody)
	}

	if result != nil {
		if err := expectJSON(resp); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}

// decodeError shapes an error body into an APIError. The body format is
// {"error": kind, "message"?: string}; bodies that do not parse fall back
// to a kind inferred from the status code.
func decodeError(status int, body []byte) error {
	var errResp struct {
		Error   ErrorKind `json:"error"`
		Message string    `json:"message"`
	}
	if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
		return &APIError{StatusCode: status, Kind: errResp.Error, Message: errResp.Message}
	}

	kind := ErrorKind("")
	switch status {
	case http.StatusForbidden:
		kind = KindPermissionDenied
	case http.StatusBadRequest:
		kind = KindValidation
	case http.StatusInternalServerError:
		kind = KindServerError
	}
	return &APIError{StatusCode: status, Kind: kind, Message: strings.TrimSpace(string(body))}
}
