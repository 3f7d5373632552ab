package fieldsource

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// SourceKind says where a document is read from.
type SourceKind int

const (
	SourceFile SourceKind = iota
	SourceFS
	SourceURL
)

// Option configures a Loader.
type Option func(*Loader)

// WithFS resolves relative locations against files instead of the working
// directory.
func WithFS(files fs.FS) Option {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithHTTP enables http(s) locations. A nil client uses http.DefaultClient.
func WithHTTP(client *http.Client, timeout time.Duration) Option {
	return func(l *Loader) {
		if client == nil {
			client = http.DefaultClient
		}
		l.http = resty.NewWithClient(client).SetTimeout(timeout)
	}
}

// WithSchema names the OpenAPI component schema read from OpenAPI documents.
func WithSchema(name string) Option {
	return func(l *Loader) {
		l.schema = strings.TrimSpace(name)
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Loader reads definition documents from files, an fs.FS or HTTP.
type Loader struct {
	fs     fs.FS
	http   *resty.Client
	schema string
	logger *zap.Logger
}

// NewLoader returns a Loader. HTTP is disabled unless WithHTTP is given.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	if l.http != nil {
		l.http.SetLogger(l.logger.Sugar())
	}
	return l
}

// Kind classifies a location.
func (l *Loader) Kind(location string) SourceKind {
	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return SourceURL
	case l.fs != nil:
		return SourceFS
	default:
		return SourceFile
	}
}

// Load reads and decodes the document at location. OpenAPI documents are
// recognised by their top-level openapi key.
func (l *Loader) Load(ctx context.Context, location string) (Document, error) {
	if strings.TrimSpace(location) == "" {
		return Document{}, errors.New("fieldsource: location is required")
	}

	var (
		data []byte
		err  error
	)
	switch l.Kind(location) {
	case SourceURL:
		data, err = l.loadURL(ctx, location)
	case SourceFS:
		data, err = loadFromFS(ctx, l.fs, location)
	default:
		data, err = loadFile(ctx, location)
	}
	if err != nil {
		return Document{}, err
	}

	if LooksLikeOpenAPI(data) {
		fields, err := FromOpenAPI(ctx, data, l.schema)
		if err != nil {
			return Document{}, err
		}
		l.logger.Debug("definitions loaded", zap.String("location", location), zap.String("format", string(FormatOpenAPI)), zap.Int("fields", len(fields)))
		return Document{Table: l.schema, Fields: fields}, nil
	}

	format := FormatFromPath(location)
	doc, err := Decode(data, format)
	if err != nil {
		return Document{}, fmt.Errorf("%s: %w", location, err)
	}
	l.logger.Debug("definitions loaded", zap.String("location", location), zap.String("format", string(format)), zap.Int("fields", len(doc.Fields)))
	return doc, nil
}

// LoadFile reads a document from disk.
func LoadFile(ctx context.Context, path string) (Document, error) {
	return NewLoader().Load(ctx, path)
}

// LoadFS reads a document from files.
func LoadFS(ctx context.Context, files fs.FS, name string) (Document, error) {
	if files == nil {
		return Document{}, errors.New("fieldsource: fs is nil")
	}
	return NewLoader(WithFS(files)).Load(ctx, name)
}

func loadFile(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("fieldsource: resolve %s: %w", name, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("fieldsource: read %s: %w", name, err)
	}
	return data, nil
}

func loadFromFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(files, path.Clean(strings.TrimPrefix(name, "/")))
	if err != nil {
		return nil, fmt.Errorf("fieldsource: read %s: %w", name, err)
	}
	return data, nil
}

func (l *Loader) loadURL(ctx context.Context, url string) ([]byte, error) {
	if l.http == nil {
		return nil, errors.New("fieldsource: http support disabled")
	}
	resp, err := l.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, fmt.Errorf("fieldsource: fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fieldsource: fetch %s: unexpected status %s", url, resp.Status())
	}
	return resp.Body(), nil
}
