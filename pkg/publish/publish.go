package publish

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/klauspost/compress/gzip"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	gerrors "github.com/vango-dev/gearrs/internal/errors"
	"github.com/vango-dev/gearrs/pkg/document"
)

// ContentType is the content type documents are uploaded with.
const ContentType = "text/html; charset=utf-8"

// ObjectPutter is the part of *s3.Client the publisher needs.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// MetadataID is the object metadata key holding the publish ID.
const MetadataID = "gearrs-publish-id"

// Result describes an uploaded document.
type Result struct {
	// ID identifies this upload. It is stored in the object metadata.
	ID     string
	Bucket string
	Key    string

	// Size is the rendered document size. Uploaded is the number of bytes
	// sent, which differs from Size when the document was compressed.
	Size     int64
	Uploaded int64

	// Encoding is the content encoding, "gzip" or empty.
	Encoding string
	ETag     string
}

// Publisher uploads rendered pages to a bucket.
type Publisher struct {
	client     ObjectPutter
	bucket     string
	prefix     string
	logger     *slog.Logger
	registry   prometheus.Registerer
	tracerName string
	gzip       bool

	tracer    trace.Tracer
	published *prometheus.CounterVec
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithPrefix prepends prefix to every object key.
func WithPrefix(prefix string) Option {
	return func(p *Publisher) {
		p.prefix = prefix
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithRegistry registers a gearrs_publishes_total counter on registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(p *Publisher) {
		p.registry = registry
	}
}

// WithTracerName sets the OpenTelemetry tracer name (default "gearrs").
func WithTracerName(name string) Option {
	return func(p *Publisher) {
		p.tracerName = name
	}
}

// WithGzip uploads documents gzip-compressed with Content-Encoding gzip.
func WithGzip(enabled bool) Option {
	return func(p *Publisher) {
		p.gzip = enabled
	}
}

// New creates a Publisher for bucket.
func New(client ObjectPutter, bucket string, opts ...Option) *Publisher {
	p := &Publisher{
		client:     client,
		bucket:     bucket,
		tracerName: "gearrs",
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default().With("component", "publish")
	}
	p.tracer = otel.Tracer(p.tracerName)
	if p.registry != nil {
		p.published = registerCounter(p.registry)
	}
	return p
}

func registerCounter(reg prometheus.Registerer) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gearrs",
		Name:      "publishes_total",
		Help:      "Total number of document uploads by result",
	}, []string{"status"})

	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
		return nil
	}
	return c
}

// Key returns the object key for name after applying the prefix.
func (p *Publisher) Key(name string) string {
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

// Publish renders page and uploads it under key.
func (p *Publisher) Publish(ctx context.Context, key string, page *document.Page) (Result, error) {
	key = strings.TrimPrefix(strings.TrimSpace(key), "/")
	if key == "" {
		return Result{}, gerrors.New("E130").
			WithDetail("empty object key").
			WithSuggestion("Pass --key or set publish.key in gearrs.json")
	}
	if p.bucket == "" {
		return Result{}, gerrors.New("E130").
			WithDetail("no bucket configured").
			WithSuggestion("Pass --bucket, set publish.bucket or GEARRS_BUCKET")
	}
	key = p.Key(key)

	ctx, span := p.tracer.Start(ctx, "publish",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("s3.bucket", p.bucket),
			attribute.String("s3.key", key),
		),
	)
	defer span.End()

	if page == nil {
		page = &document.Page{}
	}
	var buf bytes.Buffer
	size, err := render(&buf, page)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		p.count("error")
		return Result{}, gerrors.New("E130").WithDetail("render").Wrap(err)
	}

	body, encoding := buf.Bytes(), ""
	if p.gzip {
		compressed, err := compress(body)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "compress failed")
			p.count("error")
			return Result{}, gerrors.New("E130").WithDetail("gzip").Wrap(err)
		}
		body, encoding = compressed, "gzip"
	}

	id := uuid.NewString()
	span.SetAttributes(
		attribute.String("publish.id", id),
		attribute.Int64("document.bytes", size),
		attribute.Int("upload.bytes", len(body)),
	)

	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(ContentType),
		ContentLength: aws.Int64(int64(len(body))),
		Metadata:      map[string]string{MetadataID: id},
	}
	if encoding != "" {
		input.ContentEncoding = aws.String(encoding)
	}

	start := time.Now()
	out, err := p.client.PutObject(ctx, input)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "put object failed")
		p.count("error")
		p.logger.Error("publish failed", "bucket", p.bucket, "key", key, "error", err)
		return Result{}, gerrors.New("E130").
			WithDetailf("s3://%s/%s", p.bucket, key).
			Wrap(err)
	}

	res := Result{
		ID:       id,
		Bucket:   p.bucket,
		Key:      key,
		Size:     size,
		Uploaded: int64(len(body)),
		Encoding: encoding,
	}
	if out != nil {
		res.ETag = strings.Trim(aws.ToString(out.ETag), `"`)
	}

	span.SetStatus(codes.Ok, "")
	p.count("ok")
	p.logger.Info("published document",
		"bucket", p.bucket,
		"key", key,
		"id", id,
		"bytes", size,
		"uploaded", res.Uploaded,
		"etag", res.ETag,
		"duration", time.Since(start),
	)
	return res, nil
}

func (p *Publisher) count(status string) {
	if p.published != nil {
		p.published.WithLabelValues(status).Inc()
	}
}

// compress gzips data at the best compression level.
func compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := gzip.NewWriterLevel(&buf, gzip.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// render writes page to w, returning the byte count and the first
// write error.
func render(w io.Writer, page *document.Page) (int64, error) {
	n, err := page.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("render document: %w", err)
	}
	return n, nil
}
