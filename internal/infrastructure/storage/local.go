package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStorage writes images into dir. The router serves dir at URLPrefix.
type LocalStorage struct {
	dir       string
	urlPrefix string
}

const DefaultURLPrefix = "/static/images"

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStorage{dir: dir, urlPrefix: DefaultURLPrefix}, nil
}

func (l *LocalStorage) Dir() string { return l.dir }

func (l *LocalStorage) Save(ctx context.Context, name, _ string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	object := ObjectName(name)
	f, err := os.OpenFile(filepath.Join(l.dir, object), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close image file: %w", err)
	}
	return l.urlPrefix + "/" + object, nil
}
