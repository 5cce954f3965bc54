// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"cogentcore.org/vrml/viewer/recorder"
	"cogentcore.org/vrml/vrml"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
)

// runFlags are the flags of the run and watch commands.
type runFlags struct {
	frames   int
	interval float64
	print    bool
	metrics  bool
	watch    bool
}

// defaults sets the flags that were not given from the config.
func (f *runFlags) defaults(cmd *cobra.Command, o *options) {
	fs := cmd.Flags()
	if !fs.Changed("frames") {
		f.frames = o.cfg.Frames
	}
	if !fs.Changed("interval") {
		f.interval = o.cfg.FrameInterval
	}
	if !fs.Changed("watch") {
		f.watch = f.watch || o.cfg.Watch
	}
}

func (f *runFlags) addFlags(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVarP(&f.frames, "frames", "n", 1, "the number of frames to update and render")
	fs.Float64Var(&f.interval, "interval", 1.0/60, "the time between frames, in seconds")
	fs.BoolVarP(&f.print, "print", "p", false, "print what each frame renders")
	fs.BoolVar(&f.metrics, "metrics", false, "print the browser metrics at the end")
}

func newRunCmd(o *options) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run <url>...",
		Short: "Load a world and run it for a number of frames",
		Long: `Load the world from the first of the given urls that can be read,
then update and render it for the given number of frames. World time
starts at 0 and advances by the frame interval each frame.

Examples:
  # Run a world for one second
  vrml run -n 60 world.yaml

  # Print what the first frame renders
  vrml run --print world.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.defaults(cmd, o)
			return o.run(cmd.Context(), cmd.OutOrStdout(), f, args)
		},
	}
	f.addFlags(cmd)
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "keep running and reload the world when its file changes")
	return cmd
}

// run loads the world and runs it for the frames, then watches it if
// asked to.
func (o *options) run(ctx context.Context, out io.Writer, f *runFlags, urls []string) error {
	var now float64
	b, reg, err := o.newBrowser(&now)
	if err != nil {
		return err
	}
	defer b.Close()
	if err := b.Load(urls, nil); err != nil {
		return err
	}
	fmt.Fprintf(out, "loaded %s\n", b.WorldURL())

	rec := recorder.New()
	for i := range f.frames {
		now += f.interval
		b.Update(now)
		logFrame(b, now)
		rec.Reset()
		b.Render(rec)
		if f.print {
			fmt.Fprintf(out, "frame %d at %gs\n", i+1, now)
			if _, err := rec.WriteTo(out); err != nil {
				return err
			}
		}
	}
	fmt.Fprintf(out, "%d frames, %d events pending\n", f.frames, b.EventsPending())
	if f.metrics {
		if err := writeMetrics(out, reg); err != nil {
			return err
		}
	}
	if !f.watch {
		return nil
	}
	return watchWorld(ctx, out, b, urls, f.interval, &now)
}

// writeMetrics writes the gathered metrics in the text exposition format.
func writeMetrics(w io.Writer, g prometheus.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

func logFrame(b *vrml.Browser, now float64) {
	slog.Debug("vrml: frame", "time", now, "pending", b.EventsPending(), "modified", b.Modified())
}
