// chromactl renders histogram charts from the command line, running the
// same pipeline the service exposes over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"chromaglyph/internal/config"
	"chromaglyph/internal/logger"
	"chromaglyph/internal/pipeline"
	"chromaglyph/internal/render"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chromactl",
		Short:         "Render stylized RGB histogram charts from images",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newStylesCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	cfg := config.Default()

	var (
		input     string
		output    string
		style     string
		width     int
		smoothing float64
		aspect    float64
		verbose   bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one image to a histogram chart PNG",
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := zerolog.WarnLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			appLog := logger.NewConsoleLogger(level)

			data, err := os.ReadFile(input)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			// The CLI never calls the remote collaborator; watercolor
			// always renders locally here.
			registry := render.NewRegistry(nil, appLog, cfg.MaxOutputWidth)
			coord := pipeline.NewCoordinator(registry, appLog)

			out, err := coord.Process(context.Background(), data, style, render.Params{
				Width:       width,
				AspectRatio: aspect,
				Smoothing:   smoothing,
			})
			if err != nil {
				return err
			}

			if err := os.WriteFile(output, out.Image, 0o644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d, dominant colors %s (%d ms)\n",
				output, out.Width, out.Height,
				strings.Join(out.DominantColors, " "),
				out.ProcessingTime.Milliseconds())
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input image (jpeg, png, webp, tiff)")
	cmd.Flags().StringVarP(&output, "output", "o", "histogram.png", "output PNG path")
	cmd.Flags().StringVar(&style, "style", cfg.DefaultStyle, "style name")
	cmd.Flags().IntVar(&width, "width", cfg.DefaultWidth, "output width in pixels")
	cmd.Flags().Float64Var(&smoothing, "smoothing", cfg.DefaultSmoothing, "curve smoothing factor 0.0-1.0")
	cmd.Flags().Float64Var(&aspect, "aspect", cfg.DefaultAspectRatio, "width-to-height ratio")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func newStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List available style names",
		Run: func(cmd *cobra.Command, _ []string) {
			registry := render.NewRegistry(nil, nil, 0)
			for _, name := range registry.Available() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}
