package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/coyove/exticons/icon"
	"github.com/spf13/cobra"
)

func newHistoryCmd(o *options) *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "history",
		Short: "show the icons recorded in the manifest",
		Long:  `show the latest manifest record of every icon, or every record of one icon with --path.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.cfg.Manifest == "" {
				return errors.New("no manifest configured, use --manifest or set manifest in the config file")
			}
			m, err := icon.OpenManifest(o.cfg.Manifest)
			if err != nil {
				return err
			}
			defer m.Close()

			var records []icon.Record
			if path != "" {
				records, err = m.History(path)
			} else {
				records, err = m.Latest()
			}
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tSIZE\tCRC32\tPHASH\tGLYPH\tGENERATED")
			for _, r := range records {
				fmt.Fprintf(w, "%s\t%d\t%08x\t%016x\t%v\t%s\n",
					r.Path, r.Size, r.Checksum, r.PHash, r.GlyphDrawn,
					time.Unix(r.UnixTime, 0).UTC().Format(time.RFC3339))
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVarP(&path, "path", "p", "", "list every record of this icon file")
	return cmd
}
