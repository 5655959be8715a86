package ocr_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rovasEdu/servicos/internal/domain"
	"github.com/rovasEdu/servicos/internal/ocr"
	"github.com/rovasEdu/servicos/internal/providers"
	"github.com/rovasEdu/servicos/internal/store"
)

// fakeExtractor substitui a API de IA nos testes.
type fakeExtractor struct {
	candidates []any
	rawText    string
	err        error
	onCall     func()
}

func (f *fakeExtractor) ExtractProviders(ctx context.Context, image []byte, mimeType string, engine ocr.Engine, available []string) ([]any, error) {
	if f.onCall != nil {
		f.onCall()
	}
	return f.candidates, f.err
}

func (f *fakeExtractor) ExtractRawText(ctx context.Context, image []byte, mimeType string) (string, error) {
	if f.onCall != nil {
		f.onCall()
	}
	return f.rawText, f.err
}

func newTestSession(t *testing.T, extractor ocr.Extractor) (*ocr.Session, *providers.Store) {
	t.Helper()
	blobs, err := store.NewFileBlobs(t.TempDir())
	require.NoError(t, err)
	ps := providers.New(blobs, "serviceProvidersDB", zap.NewNop())
	require.NoError(t, ps.Load(context.Background()))
	return ocr.NewSession(extractor, ocr.NewNormalizer("86"), ps, zap.NewNop()), ps
}

func TestSession_FullFlow(t *testing.T) {
	extractor := &fakeExtractor{candidates: []any{
		map[string]any{
			"name":        "joão silva",
			"specialties": []any{"Eletricista"},
			"contacts":    []any{map[string]any{"type": "WhatsApp", "value": "912345678"}},
		},
	}}
	s, ps := newTestSession(t, extractor)
	ctx := context.Background()

	require.Equal(t, ocr.StateIdle, s.State())

	require.NoError(t, s.StartCapture())
	require.Equal(t, ocr.StateCapturing, s.State())

	require.NoError(t, s.Submit(ctx, []byte("img"), "image/jpeg", ocr.EngineGemini, []string{"Eletricista"}))
	require.Equal(t, ocr.StateReviewing, s.State())

	drafts := s.Drafts()
	require.Len(t, drafts, 1)
	require.Equal(t, "João Silva", drafts[0].Name)
	require.Equal(t, "86912345678", drafts[0].Contacts[0].Value)

	created, err := s.Commit(ctx)
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.Equal(t, ocr.StateCommitted, s.State())

	// salvo na coleção com id novo, sem avaliação, não favorito
	require.Equal(t, 1, ps.Count())
	saved := ps.All()[0]
	require.NotEmpty(t, saved.ID)
	require.Nil(t, saved.Review)
	require.False(t, saved.IsFavorite)

	// do estado committed dá para recomeçar
	require.NoError(t, s.StartCapture())
}

func TestSession_ErrorStateIsRecoverable(t *testing.T) {
	extractor := &fakeExtractor{err: errors.New("quota exceeded")}
	s, _ := newTestSession(t, extractor)
	ctx := context.Background()

	err := s.Submit(ctx, []byte("img"), "image/jpeg", ocr.EngineGemini, nil)
	require.Error(t, err)
	require.Equal(t, ocr.StateError, s.State())

	// do erro o usuário pode reenviar direto
	extractor.err = nil
	extractor.candidates = []any{}
	require.NoError(t, s.Submit(ctx, []byte("img"), "image/jpeg", ocr.EngineGemini, nil))
	require.Equal(t, ocr.StateReviewing, s.State())
}

func TestSession_InvalidTransitions(t *testing.T) {
	s, _ := newTestSession(t, &fakeExtractor{})

	_, err := s.Commit(context.Background())
	require.ErrorIs(t, err, ocr.ErrInvalidTransition)

	require.ErrorIs(t, s.CancelCapture(), ocr.ErrInvalidTransition)
	require.ErrorIs(t, s.UpdateDraft(0, domain.ProviderDraft{}), ocr.ErrInvalidTransition)
}

func TestSession_CancelCapture(t *testing.T) {
	s, _ := newTestSession(t, &fakeExtractor{})
	require.NoError(t, s.StartCapture())
	require.NoError(t, s.CancelCapture())
	require.Equal(t, ocr.StateIdle, s.State())
}

// Uma resposta que chega depois que o usuário saiu da tela (Reset
// durante o loading) é descartada, não aplicada.
func TestSession_StaleResponseIsDiscarded(t *testing.T) {
	extractor := &fakeExtractor{candidates: []any{map[string]any{"name": "ana"}}}
	s, _ := newTestSession(t, extractor)
	extractor.onCall = s.Reset // o usuário navega para fora no meio da chamada

	require.NoError(t, s.Submit(context.Background(), []byte("img"), "image/jpeg", ocr.EngineGemini, nil))
	require.Equal(t, ocr.StateIdle, s.State())
	require.Empty(t, s.Drafts())
}

func TestSession_RawTextMode(t *testing.T) {
	extractor := &fakeExtractor{rawText: "JOÃO SILVA\nEletricista\n(86) 9 1234-5678"}
	s, _ := newTestSession(t, extractor)

	require.NoError(t, s.SubmitRaw(context.Background(), []byte("img"), "image/jpeg"))
	require.Equal(t, ocr.StateReviewing, s.State())
	// modo bruto não normaliza nada
	require.Equal(t, "JOÃO SILVA\nEletricista\n(86) 9 1234-5678", s.RawText())
	require.Empty(t, s.Drafts())
}

func TestSession_EditAndDiscardDrafts(t *testing.T) {
	extractor := &fakeExtractor{candidates: []any{
		map[string]any{"name": "ana"},
		map[string]any{"name": "bia"},
	}}
	s, ps := newTestSession(t, extractor)
	ctx := context.Background()

	require.NoError(t, s.Submit(ctx, []byte("img"), "image/jpeg", ocr.EngineGemini, nil))
	require.Len(t, s.Drafts(), 2)

	edited := s.Drafts()[0]
	edited.Name = "Ana Corrigida"
	require.NoError(t, s.UpdateDraft(0, edited))
	require.NoError(t, s.DiscardDraft(1))

	created, err := s.Commit(ctx)
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.Equal(t, "Ana Corrigida", created[0].Name)
	require.Equal(t, 1, ps.Count())
}
