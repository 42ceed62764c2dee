package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/coyove/exticons/icon"
	"github.com/fatih/color"
	kerrors "github.com/k1LoW/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var version = "dev"

type options struct {
	configPath string
	out        string
	font       string
	glyphImage string
	antialias  bool
	webp       bool
	manifest   string
	logFile    string
	verbose    bool

	cfg *Config
}

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var ce *capabilityError
	if errors.As(err, &ce) {
		fmt.Fprintf(stderr, "Error: %s is not available.\n", ce.Name)
		fmt.Fprintf(stderr, "Please install it with: %s\n", ce.Install)
		logrus.Debugf("capability check: %v", ce.Err)
		return 1
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	logrus.Debugf("stack traces: %+v", kerrors.StackTraces(err))
	return 1
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "exticons",
		Short:         "exticons generates the placeholder icons of the browser extension",
		Long:          `exticons writes icon16.png, icon48.png and icon128.png into the output directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := o.resolve(cmd)
			if err != nil {
				return err
			}
			o.cfg = cfg
			setupLogging(cmd.ErrOrStderr(), cfg.LogFile, o.verbose)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := generate(cmd.OutOrStdout(), o.cfg); err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout())
			return nil
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "config file (default exticons.yml in the working directory)")
	f.StringVarP(&o.out, "out", "o", defaultOut, "output directory")
	f.StringVar(&o.font, "font", "", "TrueType/OpenType font used for the glyph (default bundled Go Regular)")
	f.StringVar(&o.glyphImage, "glyph-image", "", "bitmap whose alpha channel is used as the glyph")
	f.BoolVar(&o.antialias, "antialias", false, "anti-alias the circle edge")
	f.BoolVar(&o.webp, "webp", false, "also write lossless WebP copies")
	f.StringVar(&o.manifest, "manifest", "", "bbolt database recording every generated icon")
	f.StringVar(&o.logFile, "log-file", "", "rotating log file")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newWatchCmd(o), newHistoryCmd(o), newDoctorCmd(o))
	return root
}

// generate checks every capability, then writes all icons into cfg.Out.
// Nothing touches the filesystem when a capability is missing.
func generate(stdout io.Writer, cfg *Config) error {
	g := &icon.Generator{
		Antialias: cfg.antialias(),
		WebP:      cfg.webp(),
		Out:       stdout,
	}
	if err := preflight(requirements(cfg, g)); err != nil {
		return err
	}

	if cfg.Manifest != "" {
		m, err := icon.OpenManifest(cfg.Manifest)
		if err != nil {
			return err
		}
		defer m.Close()
		g.Manifest = m
	}

	results, err := g.Run(cfg.Out)
	if err != nil {
		return err
	}
	for _, res := range results {
		if res.GlyphAttempted && res.GlyphErr != nil {
			logrus.Infof("%s: drawn without glyph: %v", res.Spec.Path, res.GlyphErr)
		}
	}
	return nil
}

func printSummary(w io.Writer) {
	fmt.Fprintln(w)
	color.New(color.FgGreen).Fprintln(w, "✅ All icons created successfully!")
	fmt.Fprintln(w, "You can now load the extension in Chrome.")
}
