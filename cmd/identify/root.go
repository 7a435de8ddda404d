package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/JaimeStill/metalid/internal/identify"
	"github.com/JaimeStill/metalid/pkg/formatting"
)

type options struct {
	weight   float64
	volume   float64
	color    string
	spark    string
	scratch  int
	magnetic bool
	image    string
	json     bool
	noColor  bool
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "identify",
		Short: "Guess a metal from simple physical test values",
		Long: `identify applies fixed density and color rules to manually measured
values and prints the likely metal with its computed density.
Spark test and scratch hardness are recorded but do not affect the result.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&opts.weight, identify.FieldWeight, identify.DefaultWeight, "sample weight in grams")
	flags.Float64Var(&opts.volume, identify.FieldVolume, identify.DefaultVolume, "sample volume in cubic centimeters")
	flags.StringVar(&opts.color, identify.FieldColor, identify.DefaultColor, "observed color of the metal")
	flags.StringVar(&opts.spark, identify.FieldSpark, string(identify.DefaultSpark), "spark test result (long|short|none)")
	flags.IntVar(&opts.scratch, identify.FieldScratch, identify.DefaultScratch, "scratch hardness from 1 (soft) to 10 (hard)")
	flags.BoolVar(&opts.magnetic, identify.FieldMagnetic, false, "sample is attracted to a magnet")
	flags.StringVar(&opts.image, identify.FieldImage, "", "path to a jpg, jpeg or png image of the sample")
	flags.BoolVar(&opts.json, "json", false, "print the identification as JSON")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colorized output")
	flags.BoolVar(&opts.verbose, "verbose", false, "log each identification to stderr")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

// request forwards only the flags the user set so the collector applies its
// own defaults and bounds.
func (o *options) request(cmd *cobra.Command) identify.Request {
	var req identify.Request
	changed := cmd.Flags().Changed

	if changed(identify.FieldWeight) {
		req.Weight = &o.weight
	}
	if changed(identify.FieldVolume) {
		req.Volume = &o.volume
	}
	if changed(identify.FieldColor) {
		req.Color = &o.color
	}
	if changed(identify.FieldSpark) {
		req.Spark = &o.spark
	}
	if changed(identify.FieldScratch) {
		req.Scratch = &o.scratch
	}
	if changed(identify.FieldMagnetic) {
		req.Magnetic = &o.magnetic
	}
	return req
}

func run(cmd *cobra.Command, opts *options) error {
	in, err := opts.request(cmd).Input()
	if err != nil {
		return err
	}

	var preview *identify.Preview
	if opts.image != "" {
		data, err := os.ReadFile(opts.image)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		if preview, err = identify.DecodePreview(opts.image, data); err != nil {
			return err
		}
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	id, err := identify.New(logger).Identify(cmd.Context(), in)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(identify.UploadResponse{Identification: id, Preview: preview})
	}

	render(out, newPalette(useColor(out, opts.noColor)), id, preview)
	return nil
}

type palette struct {
	result *color.Color
	label  *color.Color
	notice *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		result: color.New(color.FgGreen, color.Bold),
		label:  color.New(color.FgCyan),
		notice: color.New(color.FgYellow),
	}
	for _, c := range []*color.Color{p.result, p.label, p.notice} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func useColor(w io.Writer, disabled bool) bool {
	if disabled || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func render(w io.Writer, p palette, id *identify.Identification, preview *identify.Preview) {
	p.label.Fprint(w, "Identification Result: ")
	p.result.Fprintln(w, id.Metal)
	p.label.Fprint(w, "Computed Density: ")
	fmt.Fprintln(w, id.DensityText())

	if preview == nil {
		p.notice.Fprintln(w, "No image uploaded. You can still input values for a demo classification.")
		return
	}

	p.label.Fprint(w, "Image: ")
	fmt.Fprintf(w, "%s (%s, %dx%d, %s)\n",
		preview.Filename, preview.Format, preview.Width, preview.Height,
		formatting.FormatBytes(preview.Size, 1))
}
