package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/gearrs/pkg/publish"
)

func publishCmd(root *rootOptions) *cobra.Command {
	var (
		bucket string
		key    string
		gzip   bool
	)

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Upload the document to S3",
		Long: `Render the document and upload it to S3 or an S3-compatible store.

Credentials are read from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and
AWS_SESSION_TOKEN. Bucket, region, endpoint and key prefix come from the
"publish" section of gearrs.json.

Examples:
  gearrs publish --bucket my-site
  gearrs publish --key docs/index.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig()
			if err != nil {
				return err
			}

			if bucket != "" {
				cfg.Publish.Bucket = bucket
			}
			if key != "" {
				cfg.Publish.Key = key
			}
			if gzip {
				cfg.Publish.Gzip = true
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			client, err := publish.NewS3Client(cfg.Publish)
			if err != nil {
				return err
			}

			p := publish.New(client, cfg.Publish.Bucket,
				publish.WithLogger(slog.Default().With("component", "publish")),
				publish.WithTracerName(cfg.Metrics.TracerName),
				publish.WithGzip(cfg.Publish.Gzip),
			)

			res, err := p.Publish(cmd.Context(), cfg.ObjectKey(), buildPage(cfg.Document))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			success(out, "Published s3://%s/%s (%d bytes)", res.Bucket, res.Key, res.Size)
			if res.Encoding != "" {
				info(out, "Encoding: %s (%d bytes sent)", res.Encoding, res.Uploaded)
			}
			info(out, "ID: %s", res.ID)
			if res.ETag != "" {
				info(out, "ETag: %s", res.ETag)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&bucket, "bucket", "b", "", "Target bucket (default from gearrs.json)")
	cmd.Flags().StringVarP(&key, "key", "k", "", "Object key (default from gearrs.json)")
	cmd.Flags().BoolVar(&gzip, "gzip", false, "Upload gzip-compressed")

	return cmd
}
