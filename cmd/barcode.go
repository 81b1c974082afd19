package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrick/internal/symbol"
)

func newBarcodeCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "barcode-check <format> <content>",
		Short: "Check that content is encodable in a barcode format",
		Long:  "Formats: " + formatList(),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := symbol.ParseFormat(args[0])
			if err != nil {
				return err
			}
			bars, err := symbol.BuildBarcode(args[1], f)
			if err != nil {
				return fmt.Errorf("%s: %w", symbol.UserMessage(err), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "valid %s, %d modules\n", f, bars.Width())
			return nil
		},
	}
}

func formatList() string {
	s := ""
	for i, f := range symbol.Formats {
		if i > 0 {
			s += ", "
		}
		s += string(f)
	}
	return s
}
