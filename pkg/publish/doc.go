// Package publish uploads rendered documents to S3 or an S3-compatible
// object store.
//
// The publisher renders a document.Page once and uploads the exact bytes
// with an HTML content type:
//
//	client, err := publish.NewS3Client(cfg.Publish)
//	if err != nil {
//	    return err
//	}
//	p := publish.New(client, cfg.Publish.Bucket)
//	res, err := p.Publish(ctx, "index.html", page)
//
// Tests substitute any ObjectPutter for the S3 client.
package publish
