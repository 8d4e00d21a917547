package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

// looseString accepts any JSON scalar. Exported rows sometimes carry numbers
// or nulls where text is expected.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		*s = looseString(text)
		return nil
	}
	if string(data) == "null" {
		*s = ""
		return nil
	}
	*s = looseString(bytes.TrimSpace(data))
	return nil
}

type dumpRow struct {
	Task    looseString    `json:"task"`
	Project looseString    `json:"project"`
	Minutes domain.Minutes `json:"minutes"`
}

// readRows decodes a JSON array of log rows. Only the fields the aggregation
// needs are read, so a bad date or an unknown column never rejects a row.
func readRows(r io.Reader) ([]domain.LogEntry, error) {
	var rows []dumpRow
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decoding rows: %w", err)
	}

	entries := make([]domain.LogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.LogEntry{
			Task:    string(row.Task),
			Project: string(row.Project),
			Minutes: row.Minutes,
		})
	}
	return entries, nil
}

func newSummaryCmd() *cobra.Command {
	var file string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate a JSON dump of log rows by project and task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader = cmd.InOrStdin()
			if file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("opening %s: %w", file, err)
				}
				defer f.Close()
				in = f
			}

			entries, err := readRows(in)
			if err != nil {
				return err
			}
			groups := domain.Aggregate(entries)

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(groups)
			}
			return writeSummaryTable(cmd.OutOrStdout(), groups)
		},
	}

	cmd.Flags().StringVar(&file, "file", "-", "JSON file with an array of rows (- for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the groups as JSON")

	return cmd
}

func writeSummaryTable(out io.Writer, groups []domain.ProjectGroup) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROJECT\tTASK\tMINUTES")
	for _, g := range groups {
		for _, t := range g.Tasks {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", g.Project, t.Task, t.Minutes)
		}
		fmt.Fprintf(tw, "%s\t(total)\t%d\n", g.Project, g.TotalMinutes)
	}
	fmt.Fprintf(tw, "\t\t%d min\n", domain.TotalMinutes(groups))
	return tw.Flush()
}
