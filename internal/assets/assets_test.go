package assets

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/propmgmt/internal/config"
)

func TestLocalSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "css"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "css", "report.css"), []byte("body{}"), 0o644))

	source := NewLocalSource(dir)
	ctx := context.Background()

	object, err := source.Open(ctx, "/css/report.css")
	require.NoError(t, err)
	defer object.Body.Close()

	body, err := io.ReadAll(object.Body)
	require.NoError(t, err)
	assert.Equal(t, "body{}", string(body))
	assert.Equal(t, int64(6), object.Size)
	assert.True(t, strings.HasPrefix(object.ContentType, "text/css"))

	tests := []string{"", "css", "missing.js", "../secret", "css/../../secret"}
	for _, name := range tests {
		t.Run("not found "+name, func(t *testing.T) {
			_, err := source.Open(ctx, name)
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

type stubGetter struct {
	objects map[string]string
	keys    []string
}

func (s *stubGetter) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(params.Key)
	s.keys = append(s.keys, key)

	body, ok := s.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: aws.Int64(int64(len(body))),
	}, nil
}

func TestS3Source(t *testing.T) {
	getter := &stubGetter{objects: map[string]string{"static/js/viewer.js": "init()"}}
	source := NewS3SourceWithClient(getter, "bucket", "static")
	ctx := context.Background()

	object, err := source.Open(ctx, "js/viewer.js")
	require.NoError(t, err)
	defer object.Body.Close()

	body, err := io.ReadAll(object.Body)
	require.NoError(t, err)
	assert.Equal(t, "init()", string(body))
	assert.Equal(t, int64(6), object.Size)
	assert.Contains(t, object.ContentType, "javascript")
	assert.Equal(t, []string{"static/js/viewer.js"}, getter.keys)

	_, err = source.Open(ctx, "js/missing.js")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNew(t *testing.T) {
	source, err := New(context.Background(), config.AssetsConfig{Backend: config.AssetsLocal, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalSource{}, source)

	_, err = New(context.Background(), config.AssetsConfig{Backend: "ftp"})
	assert.Error(t, err)
}
