package main

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tackboard",
	Short: "A Y2K desktop of sticky notes, stickers and a chatty desk buddy",
	Long: "tackboard puts a retro desktop in your terminal: pin sticky notes,\n" +
		"drag them around with the mouse, let DESK BUDDY write back, run images\n" +
		"through the pixelation studio and pin the results as stickers.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		setupLogging()
		cfg := loadConfig()

		var replier ReplyClient
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			r, err := newGeminiReplier(context.Background(), key, cfg.GeminiModel, cfg.ReplyTimeout)
			if err != nil {
				slog.Warn("reply client unavailable", "error", err)
			} else {
				replier = r
			}
		} else {
			slog.Warn("GEMINI_API_KEY not set, desk buddy is offline")
		}

		p := tea.NewProgram(
			initialModel(cfg, replier),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		)
		_, err := p.Run()
		return err
	},
}

var (
	effectIn     string
	effectOut    string
	effectBlock  int
	effectTint   string
	effectMaxDim int
)

var effectCmd = &cobra.Command{
	Use:   "effect",
	Short: "Run the pixelation/tint filter on an image file",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(effectIn)
		if err != nil {
			return fmt.Errorf("opening %s: %w", effectIn, err)
		}
		defer f.Close()
		src, _, err := image.Decode(f)
		if err != nil {
			return fmt.Errorf("decoding %s: %w", effectIn, err)
		}

		var tint color.Color
		if effectTint != "" {
			tint, err = parseHexColor(effectTint)
			if err != nil {
				return err
			}
		}

		out, err := Pixelate(src, effectMaxDim, effectBlock, tint)
		if err != nil {
			return err
		}
		if err := savePNG(out, effectOut); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%dx%d, block %d)\n",
			effectOut, out.Bounds().Dx(), out.Bounds().Dy(), effectBlock)
		return nil
	},
}

func init() {
	effectCmd.Flags().StringVar(&effectIn, "in", "", "source image (png, jpeg or gif)")
	effectCmd.Flags().StringVar(&effectOut, "out", "", "output PNG path")
	effectCmd.Flags().IntVar(&effectBlock, "block", fxDefaultBlock, "pixel block size")
	effectCmd.Flags().StringVar(&effectTint, "tint", "", "tint color as #RRGGBB (empty for none)")
	effectCmd.Flags().IntVar(&effectMaxDim, "max-dim", fxMaxDim, "longest output dimension")
	effectCmd.MarkFlagRequired("in")
	effectCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(effectCmd)
}

func parseHexColor(s string) (color.RGBA, error) {
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("bad tint %q, want #RRGGBB", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
}
