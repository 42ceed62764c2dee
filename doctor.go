package main

import (
	"fmt"

	"github.com/coyove/exticons/icon"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newDoctorCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "check that everything needed to draw the icons is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			green := color.New(color.FgGreen)
			red := color.New(color.FgRed)
			w := cmd.OutOrStdout()

			allOK := true
			for _, r := range requirements(o.cfg, &icon.Generator{}) {
				fmt.Fprintf(w, "🔍 Checking %s ... ", r.name)
				if err := r.check(); err != nil {
					red.Fprintln(w, "✗ NOT AVAILABLE")
					fmt.Fprintf(w, "   %v\n", err)
					fmt.Fprintf(w, "   Install with: %s\n", r.install)
					allOK = false
					continue
				}
				green.Fprintln(w, "✓ OK")
			}

			fmt.Fprintln(w)
			if allOK {
				green.Fprintln(w, "All checks passed!")
			} else {
				red.Fprintln(w, "⚠️  Some capabilities are missing.")
			}
			return nil
		},
	}
}
