package publish

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Kind selects a Publisher implementation.
type Kind string

const (
	KindNone  Kind = "none"
	KindLocal Kind = "local"
	KindMinio Kind = "minio"
	KindS3    Kind = "s3"
)

// ErrUnknownKind is returned by New for an unsupported kind.
var ErrUnknownKind = errors.New("publish: unknown kind")

// Publisher uploads one named blob.
type Publisher interface {
	Put(ctx context.Context, name string, data []byte) error
}

// Options configures New. Fields not used by the selected kind are ignored.
type Options struct {
	Kind      Kind
	Bucket    string
	Prefix    string
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Region    string
}

// New builds the Publisher selected by opts.Kind. KindNone (or an empty
// kind) yields a Publisher that discards everything.
func New(ctx context.Context, opts Options) (Publisher, error) {
	switch opts.Kind {
	case "", KindNone:
		return Discard{}, nil
	case KindLocal:
		if opts.Prefix == "" {
			return nil, fmt.Errorf("publish: local publisher needs a prefix directory")
		}
		return NewLocal(opts.Prefix), nil
	case KindMinio:
		return NewMinio(opts)
	case KindS3:
		return NewS3(ctx, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, opts.Kind)
	}
}

// Discard drops every blob.
type Discard struct{}

// Put implements Publisher.
func (Discard) Put(context.Context, string, []byte) error { return nil }

// Local writes blobs below a root directory.
type Local struct {
	root string
}

// NewLocal creates a Local publisher rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{root: dir}
}

// Put implements Publisher. Names may contain slashes; parents are created.
func (l *Local) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkName(name); err != nil {
		return err
	}
	dst := filepath.Join(l.root, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("publish %s: %w", name, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("publish %s: %w", name, err)
	}
	return nil
}

func checkName(name string) error {
	if name == "" || path.IsAbs(name) || strings.HasPrefix(path.Clean(name), "..") {
		return fmt.Errorf("publish: invalid name %q", name)
	}
	return nil
}

// Files publishes the named files from dir, in order.
func Files(ctx context.Context, p Publisher, dir string, names ...string) error {
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("publish %s: %w", name, err)
		}
		if err := p.Put(ctx, name, data); err != nil {
			return err
		}
	}
	return nil
}
