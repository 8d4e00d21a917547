package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/studylog-engine/internal/core/domain"
)

func newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <date>...",
		Short: "Check dd/mm/yyyy dates and print their canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0

			for _, text := range args {
				d, err := domain.ParseAny(text)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%q\t%s\n", text, domain.DateErrorKind(err))
					continue
				}
				fmt.Fprintf(out, "%q\t%s\t%s\n", text, d.String(), d.Display())
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d dates are invalid", failed, len(args))
			}
			return nil
		},
	}
}
