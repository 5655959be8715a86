package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileBlobs backend padrão: um arquivo por chave dentro de um
// diretório de dados (equivalente local do armazenamento do navegador).
type FileBlobs struct {
	dir string
}

func NewFileBlobs(dir string) (*FileBlobs, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return &FileBlobs{dir: dir}, nil
}

func (f *FileBlobs) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileBlobs) Get(ctx context.Context, key string) (string, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to read blob %s: %w", key, err)
	}
	return string(data), nil
}

func (f *FileBlobs) Set(ctx context.Context, key string, value string) error {
	// Grava em arquivo temporário e renomeia para não corromper o blob
	// se o processo morrer no meio da escrita.
	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, []byte(value), 0o644); err != nil {
		return fmt.Errorf("failed to write blob %s: %w", key, err)
	}
	if err := os.Rename(tmp, f.path(key)); err != nil {
		return fmt.Errorf("failed to commit blob %s: %w", key, err)
	}
	return nil
}
