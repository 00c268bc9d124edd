package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// LocalSource reads assets from a directory on disk
type LocalSource struct {
	files fs.FS
}

func NewLocalSource(dir string) *LocalSource {
	return &LocalSource{files: os.DirFS(dir)}
}

func (s *LocalSource) Open(ctx context.Context, name string) (*Object, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	file, err := s.files.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrInvalid) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if info.IsDir() {
		file.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	return &Object{
		Body:        file,
		ContentType: contentType(name),
		Size:        info.Size(),
	}, nil
}
