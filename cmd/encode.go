package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrick/internal/payload"
	"github.com/cristianadrielbraun/qrick/internal/symbol"
)

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode <type>",
		Short: "Print the symbol content for a typed payload",
		Example: `  qrick encode wifi --field wifiSsid=home --field wifiPassword=secret
  qrick encode geo --field latitude=40.7 --field longitude=-74`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dt, err := payload.ParseDataType(args[0])
			if err != nil {
				return err
			}
			raw, _ := cmd.Flags().GetStringToString("field")
			fields, err := fieldsFromMap(raw)
			if err != nil {
				return err
			}
			content := payload.Encode(dt, fields)
			fmt.Fprintln(cmd.OutOrStdout(), content)

			if level, _ := cmd.Flags().GetString("level"); level != "" {
				l, err := symbol.ParseLevel(level)
				if err != nil {
					return err
				}
				grid, err := symbol.BuildQRModules(content, l)
				if err != nil {
					return fmt.Errorf("%s", symbol.UserMessage(err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "modules: %dx%d\n", grid.Size(), grid.Size())
			}
			return nil
		},
	}
	cmd.Flags().StringToString("field", nil, "Payload field as name=value (repeatable)")
	cmd.Flags().String("level", "", "Also report the QR size at this error correction level")
	return cmd
}

// fieldsFromMap fills Fields by their JSON names.
func fieldsFromMap(m map[string]string) (payload.Fields, error) {
	var f payload.Fields
	data, err := json.Marshal(m)
	if err != nil {
		return f, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return f, fmt.Errorf("invalid field: %w", err)
	}
	return f, nil
}
