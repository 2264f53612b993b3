package main

import (
	"fmt"
	"path/filepath"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/vango-dev/gearrs/internal/config"
)

func versionCmd(root *rootOptions) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long: `Print version, commit, and build information for the gearrs CLI,
along with the config file it would load.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, version)
				return
			}

			printBanner(out)
			fmt.Fprintln(out)
			fmt.Fprintf(out, "  Version:    %s\n", version)
			fmt.Fprintf(out, "  Commit:     %s\n", commit)
			fmt.Fprintf(out, "  Built:      %s\n", date)
			fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
			if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Path != "" {
				fmt.Fprintf(out, "  Module:     %s\n", bi.Main.Path)
			}

			path := filepath.Join(root.configDir, config.ConfigFileName)
			if config.Exists(root.configDir) {
				fmt.Fprintf(out, "  Config:     %s\n", path)
			} else {
				fmt.Fprintf(out, "  Config:     %s (not found, using defaults)\n", path)
			}
			fmt.Fprintln(out)
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only version number")

	return cmd
}
