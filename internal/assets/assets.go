package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/segyhp/propmgmt/internal/config"
)

var ErrNotFound = errors.New("asset not found")

// Object is an opened static asset. Callers must close Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// Source serves static assets by slash-separated name
type Source interface {
	Open(ctx context.Context, name string) (*Object, error)
}

// New builds the source selected by the assets backend setting
func New(ctx context.Context, cfg config.AssetsConfig) (Source, error) {
	switch cfg.Backend {
	case config.AssetsS3:
		return NewS3Source(ctx, cfg)
	case config.AssetsLocal, "":
		return NewLocalSource(cfg.Dir), nil
	default:
		return nil, fmt.Errorf("unknown assets backend %q", cfg.Backend)
	}
}

// cleanName rejects names escaping the asset root
func cleanName(name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return "", ErrNotFound
	}

	cleaned := path.Clean(name)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return cleaned, nil
}

func contentType(name string) string {
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
