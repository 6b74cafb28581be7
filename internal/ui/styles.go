package ui

import "fmt"

// Theme is a named ANSI256 palette. Light terminals need darker foreground
// codes, so each theme carries its own set.
type Theme struct {
	Accent  int
	Muted   int
	Success int
	Warning int
	Error   int
}

var themes = map[string]Theme{
	"dark":  {Accent: 74, Muted: 245, Success: 114, Warning: 214, Error: 203},
	"light": {Accent: 25, Muted: 243, Success: 28, Warning: 130, Error: 160},
}

var (
	active  = themes["dark"]
	noColor bool
)

// SetTheme selects the active palette by name. Unknown names keep the
// current palette and report false.
func SetTheme(name string) bool {
	t, ok := themes[name]
	if !ok {
		return false
	}
	active = t
	return true
}

// ThemeNames returns the available theme names.
func ThemeNames() []string {
	return []string{"dark", "light"}
}

func render(code int, s string) string {
	if noColor {
		return s
	}
	return fmt.Sprintf("\x1b[38;5;%dm%s\x1b[0m", code, s)
}

// RenderAccent returns s in the accent color.
func RenderAccent(s string) string { return render(active.Accent, s) }

// RenderMuted returns s in the muted color.
func RenderMuted(s string) string { return render(active.Muted, s) }

// RenderSuccess returns s in the success color.
func RenderSuccess(s string) string { return render(active.Success, s) }

// RenderWarning returns s in the warning color.
func RenderWarning(s string) string { return render(active.Warning, s) }

// RenderError returns s in the error color.
func RenderError(s string) string { return render(active.Error, s) }

// ForceNoColor disables color output globally.
func ForceNoColor() {
	noColor = true
}
