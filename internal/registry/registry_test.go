package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovasEdu/servicos/internal/domain"
	"github.com/rovasEdu/servicos/internal/registry"
	"github.com/rovasEdu/servicos/internal/store"
)

func newTestRegistry(t *testing.T) (*registry.Registry, store.Blobs) {
	t.Helper()
	blobs, err := store.NewFileBlobs(t.TempDir())
	require.NoError(t, err)
	reg := registry.New(blobs, "serviceSpecialtiesDB", zap.NewNop())
	require.NoError(t, reg.Load(context.Background()))
	return reg, blobs
}

func TestRegistry_SeedsDefaultsOnFirstRun(t *testing.T) {
	reg, _ := newTestRegistry(t)
	require.Equal(t, domain.DefaultSpecialties, reg.List())
	require.True(t, reg.Contains("Eletricista"))
}

func TestRegistry_SeedsDefaultsOnCorruptedBlob(t *testing.T) {
	blobs, err := store.NewFileBlobs(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, blobs.Set(ctx, "serviceSpecialtiesDB", "{corrupted"))

	reg := registry.New(blobs, "serviceSpecialtiesDB", zap.NewNop())
	require.NoError(t, reg.Load(ctx))
	require.Equal(t, domain.DefaultSpecialties, reg.List())
}

func TestRegistry_AddPersists(t *testing.T) {
	reg, blobs := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.Add(ctx, domain.SpecialtyConfig{Name: "Vidraceiro", Icon: "Gem"}))
	require.True(t, reg.Contains("Vidraceiro"))

	// uma nova instância lê o catálogo persistido
	reloaded := registry.New(blobs, "serviceSpecialtiesDB", zap.NewNop())
	require.NoError(t, reloaded.Load(ctx))
	require.True(t, reloaded.Contains("Vidraceiro"))
}

// Add não rejeita nomes duplicados: a validação de unicidade é do
// chamador. Este teste documenta o contrato em vez de "consertá-lo".
func TestRegistry_AddAcceptsDuplicateNames(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.Add(ctx, domain.SpecialtyConfig{Name: "Pintor", Icon: "Brush"}))

	count := 0
	for _, s := range reg.List() {
		if s.Name == "Pintor" {
			count++
		}
	}
	require.Equal(t, 2, count)
}

func TestRegistry_Update(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.Update(ctx, "Pintor", domain.SpecialtyConfig{Name: "Pintor Residencial", Icon: "Paintbrush"}))
	require.False(t, reg.Contains("Pintor"))
	require.True(t, reg.Contains("Pintor Residencial"))

	// no-op quando o nome não existe
	before := reg.List()
	require.NoError(t, reg.Update(ctx, "Inexistente", domain.SpecialtyConfig{Name: "X", Icon: "Zap"}))
	require.Equal(t, before, reg.List())
}

func TestRegistry_Remove(t *testing.T) {
	reg, _ := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.Remove(ctx, "Pintor"))
	require.False(t, reg.Contains("Pintor"))

	before := reg.List()
	require.NoError(t, reg.Remove(ctx, "Inexistente"))
	require.Equal(t, before, reg.List())
}

func TestRegistry_SortedOrdersByName(t *testing.T) {
	reg, _ := newTestRegistry(t)
	sorted := reg.Sorted()
	for i := 1; i < len(sorted); i++ {
		require.LessOrEqual(t, sorted[i-1].Name, sorted[i].Name)
	}
}
