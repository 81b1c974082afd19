package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrick/internal/export"
	"github.com/cristianadrielbraun/qrick/internal/render"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a YAML or JSON composition to a file",
		Example: `  qrick render -f card.yaml -o card.png
  cat qr.json | qrick render -o qr.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.close()

			in, _ := cmd.Flags().GetString("file")
			data, err := readInput(cmd, in)
			if err != nil {
				return err
			}
			comp, err := render.Decode(data)
			if err != nil {
				return err
			}

			out, _ := cmd.Flags().GetString("out")
			name, _ := cmd.Flags().GetString("format")
			if name == "" {
				name = strings.TrimPrefix(filepath.Ext(out), ".")
			}
			format, err := export.ParseFormat(name)
			if err != nil {
				return err
			}

			blob, err := a.exporter.Export(cmd.Context(), comp, format)
			if err != nil {
				return err
			}
			if out == "" {
				out = blob.Filename
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(blob.Data)
				return err
			}
			if err := os.WriteFile(out, blob.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", out, err)
			}
			a.log.Infof("wrote %s (%d bytes)", out, len(blob.Data))
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "-", "Composition file, - for stdin")
	cmd.Flags().StringP("out", "o", "", "Output file, - for stdout (default: the export file name)")
	cmd.Flags().String("format", "", "png, jpeg or svg (default: from the output extension)")
	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
