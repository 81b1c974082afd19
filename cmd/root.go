package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cristianadrielbraun/qrick/internal/config"
	"github.com/cristianadrielbraun/qrick/internal/export"
	"github.com/cristianadrielbraun/qrick/internal/logger"
	"github.com/cristianadrielbraun/qrick/internal/media"
	"github.com/cristianadrielbraun/qrick/internal/render"
)

// app is everything a command needs, built from the loaded config.
type app struct {
	cfg      *config.Config
	log      logger.AccessLogger
	loader   *media.Loader
	renderer *render.Renderer
	exporter *export.Exporter
	close    func() error
}

func newApp(cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Log.Level = "debug"
	}

	zl, err := logger.NewZapLogger(logger.Options{
		Level:      cfg.Log.Level,
		Path:       cfg.Log.Path,
		ErrorPath:  cfg.Log.ErrorPath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	loader := media.NewLoader(media.Options{
		MaxBytes:     int64(cfg.Media.MaxBytes),
		MaxPixels:    cfg.Media.MaxPixels,
		CacheEntries: cfg.Media.CacheEntries,
	}, zl)
	r := render.NewRenderer(cfg.Render, loader, zl)
	return &app{
		cfg:      cfg,
		log:      zl,
		loader:   loader,
		renderer: r,
		exporter: export.NewExporter(r, loader, zl),
		close:    zl.Close,
	}, nil
}

// NewRootCmd builds the qrick command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "qrick",
		Short: "Render QR codes, barcodes and cards",
		Long: `qrick renders styled QR codes, 1D barcodes and business cards to PNG, JPEG
or SVG. It runs as an HTTP API (serve) or renders composition documents
from the command line.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "Path to a YAML config file")
	root.PersistentFlags().BoolP("debug", "d", false, "Debug logging")

	root.AddCommand(newServeCmd(), newRenderCmd(), newEncodeCmd(), newBarcodeCheckCmd())
	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
