package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
	"github.com/comitanigiacomo/studylog-engine/internal/core/services"
)

func newExportCmd(app *App) *cobra.Command {
	var userID, format, out, from, to string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a user's log to a CSV or XLSX file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := services.ParseExportFormat(format)
			if err != nil {
				return err
			}

			input := services.ExportInput{UserID: userID, Format: f}
			if from != "" {
				if input.From, err = domain.ParseAny(from); err != nil {
					return fmt.Errorf("--from: %w", err)
				}
			}
			if to != "" {
				if input.To, err = domain.ParseAny(to); err != nil {
					return fmt.Errorf("--to: %w", err)
				}
			}

			if app.Entries == nil {
				return fmt.Errorf("no database configured")
			}
			repo, err := app.Entries(cmd.Context())
			if err != nil {
				return err
			}

			file, err := services.NewExportService(repo).WithClock(app.now).Export(cmd.Context(), input)
			if err != nil {
				return err
			}

			path := out
			if path == "" {
				path = file.Filename
			} else if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = filepath.Join(path, file.Filename)
			}

			if err := os.WriteFile(path, file.Data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, len(file.Data))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&format, "format", "csv", "csv or xlsx")
	cmd.Flags().StringVar(&out, "out", "", "Output file or directory (default: study-log-<today>.<format>)")
	cmd.Flags().StringVar(&from, "from", "", "First day (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "Last day (inclusive)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
