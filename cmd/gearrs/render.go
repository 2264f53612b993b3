package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/gearrs/internal/errors"
)

func renderCmd(root *rootOptions) *cobra.Command {
	var (
		out   string
		title string
		text  string
		lang  string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the document",
		Long: `Render the document described by gearrs.json.

The document is written to stdout unless --out is given.

Examples:
  gearrs render
  gearrs render --out index.html
  gearrs render --title "Docs" --text "Coming soon"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				cfg.Document.Title = title
			}
			if flags.Changed("text") {
				cfg.Document.Text = text
			}
			if flags.Changed("lang") {
				cfg.Document.Lang = lang
			}

			page := buildPage(cfg.Document)

			if out == "" {
				_, err := page.WriteTo(cmd.OutOrStdout())
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return errors.FromError(err, "E150")
			}
			n, err := page.WriteTo(f)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return errors.FromError(err, "E150")
			}
			success(cmd.ErrOrStderr(), "Wrote %s (%d bytes)", out, n)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the document to a file")
	cmd.Flags().StringVar(&title, "title", "", "Page title (default from gearrs.json)")
	cmd.Flags().StringVar(&text, "text", "", "Body text (default from gearrs.json)")
	cmd.Flags().StringVar(&lang, "lang", "", "Body lang attribute (default from gearrs.json)")

	return cmd
}
