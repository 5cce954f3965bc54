// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/vrml"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func newWatchCmd(o *options) *cobra.Command {
	f := &runFlags{watch: true}
	cmd := &cobra.Command{
		Use:   "watch <url>...",
		Short: "Run a world and reload it when its file changes",
		Long: `Load the world and keep updating it at the frame interval until
interrupted. The world is reloaded whenever its file is written.

Examples:
  vrml watch world.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.defaults(cmd, o)
			return o.run(cmd.Context(), cmd.OutOrStdout(), f, args)
		},
	}
	f.addFlags(cmd)
	return cmd
}

// worldFile returns the local file of a world url, or "".
func worldFile(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return ""
	}
	return filepath.FromSlash(u.Path)
}

// watchWorld updates the world of b every interval, reloading it from
// urls when the file it was loaded from changes, until ctx is done.
func watchWorld(ctx context.Context, out io.Writer, b *vrml.Browser, urls []string, interval float64, now *float64) error {
	file := worldFile(b.WorldURL())
	if file == "" {
		return errors.Errorf("watch: %s is not a local file", b.WorldURL())
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// editors often replace the file, so watch its directory
	if err := w.Add(filepath.Dir(file)); err != nil {
		return err
	}
	fmt.Fprintf(out, "watching %s\n", file)
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if interval <= 0 {
		interval = 1.0 / 60
	}
	tick := time.NewTicker(time.Duration(interval * float64(time.Second)))
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Name != file || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			slog.Info("vrml: world changed", "file", file, "op", ev.Op.String())
			if err := b.Load(urls, nil); err != nil {
				fmt.Fprintf(out, "reload failed: %v\n", err)
				continue
			}
			fmt.Fprintf(out, "reloaded %s\n", b.WorldURL())
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			errors.Log(err)
		case <-tick.C:
			*now += interval
			b.Update(*now)
			logFrame(b, *now)
		}
	}
}
