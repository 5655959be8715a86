// Package store fornece o adaptador de persistência chave→blob usado
// pelo catálogo de especialidades e pela coleção de prestadores. Os
// consumidores serializam para JSON; o backend só enxerga texto.
package store

import (
	"context"
	"errors"
)

// ErrNotFound indica slot vazio (nunca gravado ou removido).
var ErrNotFound = errors.New("blob not found")

// Blobs abstração do armazenamento chave→valor (permite trocar o
// backend e usar um fake nos testes).
type Blobs interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
}

// Garante que todos os backends implementam a interface.
var (
	_ Blobs = (*FileBlobs)(nil)
	_ Blobs = (*RedisBlobs)(nil)
	_ Blobs = (*PostgresBlobs)(nil)
)
