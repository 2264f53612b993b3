package publish

import (
	"context"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/vango-dev/gearrs/internal/config"
	gerrors "github.com/vango-dev/gearrs/internal/errors"
)

// NewS3Client builds an S3 client from the publish configuration.
// Credentials come from AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and the
// optional AWS_SESSION_TOKEN.
func NewS3Client(cfg config.PublishConfig) (*s3.Client, error) {
	if cfg.Region == "" {
		return nil, gerrors.New("E130").
			WithDetail("no region configured").
			WithSuggestion("Set publish.region or GEARRS_REGION")
	}

	opts := s3.Options{
		Region:       cfg.Region,
		UsePathStyle: cfg.PathStyle,
		Credentials:  aws.NewCredentialsCache(envCredentials(os.Getenv)),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
	}
	return s3.New(opts), nil
}

// envCredentials reads static credentials through getenv on every retrieve.
func envCredentials(getenv func(string) string) aws.CredentialsProvider {
	return aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		id, secret := getenv("AWS_ACCESS_KEY_ID"), getenv("AWS_SECRET_ACCESS_KEY")
		if id == "" || secret == "" {
			return aws.Credentials{}, gerrors.New("E130").
				WithDetail("missing AWS credentials").
				WithSuggestion("Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
		}
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    getenv("AWS_SESSION_TOKEN"),
			Source:          "GearrsEnv",
		}, nil
	})
}
