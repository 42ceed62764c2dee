package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/k1LoW/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// settle groups the burst of events an editor emits for a single save.
const settle = 200 * time.Millisecond

func newWatchCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "regenerate the icons whenever the config, font or glyph image changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watch(ctx, cmd.OutOrStdout(), o.cfg, func() (*Config, error) {
				return o.resolve(cmd)
			})
		},
	}
}

// watch generates once, then again after every change to one of the inputs
// of cfg. reload re-reads the config when the config file itself changes.
func watch(ctx context.Context, stdout io.Writer, cfg *Config, reload func() (*Config, error)) (err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	targets, err := watchTargets(w, cfg)
	if err != nil {
		return err
	}
	if err := generate(stdout, cfg); err != nil {
		return err
	}
	logrus.Infof("watching %d files", len(targets))

	timer := time.NewTimer(settle)
	timer.Stop()
	configChanged := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			abs, _ := filepath.Abs(ev.Name)
			if !targets[abs] {
				continue
			}
			if cfg.path != "" && sameFile(abs, cfg.path) {
				configChanged = true
			}
			timer.Reset(settle)
		case <-timer.C:
			if configChanged {
				configChanged = false
				next, err := reload()
				if err != nil {
					logrus.Errorf("reload config: %v", err)
					continue
				}
				cfg = next
				if targets, err = watchTargets(w, cfg); err != nil {
					return err
				}
			}
			if err := generate(stdout, cfg); err != nil {
				logrus.Errorf("regenerate icons: %v", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logrus.Errorf("watch: %v", err)
		}
	}
}

// watchTargets subscribes to the directories holding cfg's inputs, since
// editors often replace a file instead of writing it in place.
func watchTargets(w *fsnotify.Watcher, cfg *Config) (map[string]bool, error) {
	targets := map[string]bool{}
	for _, p := range []string{cfg.path, cfg.Font, cfg.GlyphImage} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		if err := w.Add(filepath.Dir(abs)); err != nil {
			return nil, err
		}
		targets[abs] = true
	}
	return targets, nil
}

func sameFile(abs, p string) bool {
	other, err := filepath.Abs(p)
	return err == nil && other == abs
}
