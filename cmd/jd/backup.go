package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/journal/internal/backup"
	"github.com/groblegark/journal/internal/config"
)

var backupCmd = &cobra.Command{
	Use:     "backup",
	Short:   "Export all journals and entries as JSONL",
	GroupID: "system",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		outPath, _ := cmd.Flags().GetString("output")
		toS3, _ := cmd.Flags().GetBool("s3")

		var buf bytes.Buffer
		if err := backup.ExportJSONL(ctx, api, &buf); err != nil {
			return err
		}

		switch {
		case toS3:
			cfg, err := config.LoadBackup()
			if err != nil {
				return err
			}
			dest, err := backup.NewS3Destination(ctx, cfg.S3Bucket, cfg.S3Key, cfg.S3Region, cfg.S3Endpoint)
			if err != nil {
				return err
			}
			if err := dest.Write(ctx, buf.Bytes()); err != nil {
				return err
			}
			fmt.Printf("backup written to s3://%s/%s (%d bytes)\n", cfg.S3Bucket, cfg.S3Key, buf.Len())

		case outPath != "" && outPath != "-":
			if err := os.WriteFile(outPath, buf.Bytes(), 0o600); err != nil {
				return err
			}
			fmt.Printf("backup written to %s (%d bytes)\n", outPath, buf.Len())

		default:
			if _, err := os.Stdout.Write(buf.Bytes()); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	backupCmd.Flags().StringP("output", "o", "", "write to a file instead of stdout")
	backupCmd.Flags().Bool("s3", false, "upload to the S3 bucket from JOURNAL_BACKUP_S3_* env vars")
}
