package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/vango-dev/gearrs/internal/config"
	"github.com/vango-dev/gearrs/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┌─┐┌─┐┬─┐┬─┐┌─┐
  │ ┬├┤ ├─┤├┬┘├┬┘└─┐
  └─┘└─┘┴ ┴┴└─┴└─└─┘
`

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	configDir string
	verbose   bool
}

// loadConfig reads gearrs.json from the --config directory, falling back
// to defaults when there is none.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	return config.LoadOrDefault(o.configDir)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "gearrs",
		Short: "Build, preview and publish HTML documents",
		Long: `Gearrs renders HTML documents from a small element tree.

Documents are assembled from gearrs.json and can be:

  • rendered to stdout or a file
  • previewed over HTTP with live reload
  • published to S3 or an S3-compatible store`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), opts.verbose)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configDir, "config", "c", ".", "Directory containing gearrs.json")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		renderCmd(opts),
		serveCmd(opts),
		publishCmd(opts),
		versionCmd(opts),
	)

	return rootCmd
}

// setupLogging installs a tint handler as the default slog logger.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    color.NoColor,
	})))
}

// printBanner prints the ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, color.CyanString(banner))
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", color.YellowString("⚠"), fmt.Sprintf(format, args...))
}
