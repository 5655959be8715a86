package ocr

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/rovasEdu/servicos/internal/domain"
	"github.com/rovasEdu/servicos/internal/providers"
)

// State estado da tela de OCR.
type State string

const (
	StateIdle      State = "idle"      // aguardando imagem
	StateCapturing State = "capturing" // câmera ativa
	StateLoading   State = "loading"   // aguardando a chamada externa
	StateReviewing State = "reviewing" // rascunhos editáveis
	StateCommitted State = "committed" // rascunhos salvos na coleção
	StateError     State = "error"     // falha da chamada externa
)

// ErrInvalidTransition transição não permitida a partir do estado atual.
var ErrInvalidTransition = errors.New("invalid state transition")

// Extractor contrato do colaborador externo de extração (a API de IA).
type Extractor interface {
	ExtractProviders(ctx context.Context, image []byte, mimeType string, engine Engine, availableSpecialties []string) ([]any, error)
	ExtractRawText(ctx context.Context, image []byte, mimeType string) (string, error)
}

var _ Extractor = (*Client)(nil)

// Session máquina de estados do fluxo de captura:
// idle → capturing → loading → reviewing → committed → idle,
// com error alcançável a partir de loading e recuperável via Reset.
// Uma resposta que chega depois que a sessão saiu de loading (o
// usuário navegou para fora) é descartada, não aplicada.
type Session struct {
	mu     sync.Mutex
	state  State
	gen    int
	drafts []domain.ProviderDraft
	raw    string

	extractor  Extractor
	normalizer *Normalizer
	store      *providers.Store
	logger     *zap.Logger
}

func NewSession(extractor Extractor, normalizer *Normalizer, store *providers.Store, logger *zap.Logger) *Session {
	return &Session{
		state:      StateIdle,
		extractor:  extractor,
		normalizer: normalizer,
		store:      store,
		logger:     logger,
	}
}

// State estado atual.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Drafts rascunhos em revisão (cópia).
func (s *Session) Drafts() []domain.ProviderDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ProviderDraft, len(s.drafts))
	copy(out, s.drafts)
	return out
}

// RawText texto do modo de extração bruta.
func (s *Session) RawText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.raw
}

// StartCapture abre a câmera.
func (s *Session) StartCapture() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle && s.state != StateError && s.state != StateCommitted {
		return fmt.Errorf("%w: start capture from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateCapturing
	return nil
}

// CancelCapture fecha a câmera sem capturar (também usado quando a
// aquisição da câmera falha).
func (s *Session) CancelCapture() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateCapturing {
		return fmt.Errorf("%w: cancel capture from %s", ErrInvalidTransition, s.state)
	}
	s.state = StateIdle
	return nil
}

// Reset volta para idle a partir de qualquer estado (navegação de
// volta, ou tentar de novo após um erro). Invalida qualquer resposta
// ainda em voo.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.state = StateIdle
	s.drafts = nil
	s.raw = ""
}

// beginLoading entra em loading e devolve a geração desta submissão.
func (s *Session) beginLoading() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateIdle && s.state != StateCapturing && s.state != StateError {
		return 0, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, s.state)
	}
	s.gen++
	s.state = StateLoading
	s.drafts = nil
	s.raw = ""
	return s.gen, nil
}

// settle aplica o resultado da chamada se a sessão ainda estiver na
// mesma submissão; caso contrário o resultado é descartado.
func (s *Session) settle(gen int, apply func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen || s.state != StateLoading {
		s.logger.Debug("Discarding stale OCR response")
		return
	}
	apply()
}

// Submit envia a imagem para extração estruturada e, em caso de
// sucesso, entra em revisão com os rascunhos normalizados.
func (s *Session) Submit(ctx context.Context, image []byte, mimeType string, engine Engine, availableSpecialties []string) error {
	gen, err := s.beginLoading()
	if err != nil {
		return err
	}

	candidates, err := s.extractor.ExtractProviders(ctx, image, mimeType, engine, availableSpecialties)
	if err != nil {
		s.settle(gen, func() { s.state = StateError })
		return fmt.Errorf("extraction failed: %w", err)
	}

	drafts := s.normalizer.Normalize(candidates, availableSpecialties)
	s.settle(gen, func() {
		s.state = StateReviewing
		s.drafts = drafts
	})
	return nil
}

// SubmitRaw envia a imagem no modo texto bruto; o texto fica
// disponível para cópia manual, sem normalização.
func (s *Session) SubmitRaw(ctx context.Context, image []byte, mimeType string) error {
	gen, err := s.beginLoading()
	if err != nil {
		return err
	}

	text, err := s.extractor.ExtractRawText(ctx, image, mimeType)
	if err != nil {
		s.settle(gen, func() { s.state = StateError })
		return fmt.Errorf("raw text extraction failed: %w", err)
	}

	s.settle(gen, func() {
		s.state = StateReviewing
		s.raw = text
	})
	return nil
}

// UpdateDraft substitui um rascunho durante a revisão.
func (s *Session) UpdateDraft(index int, draft domain.ProviderDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReviewing {
		return fmt.Errorf("%w: update draft from %s", ErrInvalidTransition, s.state)
	}
	if index < 0 || index >= len(s.drafts) {
		return fmt.Errorf("draft index %d out of range", index)
	}
	s.drafts[index] = draft
	return nil
}

// DiscardDraft remove um rascunho da revisão.
func (s *Session) DiscardDraft(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReviewing {
		return fmt.Errorf("%w: discard draft from %s", ErrInvalidTransition, s.state)
	}
	if index < 0 || index >= len(s.drafts) {
		return fmt.Errorf("draft index %d out of range", index)
	}
	s.drafts = append(s.drafts[:index], s.drafts[index+1:]...)
	return nil
}

// Commit materializa cada rascunho como um novo prestador (id novo,
// sem avaliação, histórico vazio, não favorito) e salva na coleção.
func (s *Session) Commit(ctx context.Context) ([]domain.Provider, error) {
	s.mu.Lock()
	if s.state != StateReviewing {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: commit from %s", ErrInvalidTransition, s.state)
	}
	drafts := s.drafts
	s.mu.Unlock()

	created := make([]domain.Provider, 0, len(drafts))
	for _, d := range drafts {
		p := d.ToProvider()
		if err := s.store.Add(ctx, p); err != nil {
			return created, fmt.Errorf("failed to save provider: %w", err)
		}
		created = append(created, p)
	}

	s.mu.Lock()
	s.state = StateCommitted
	s.drafts = nil
	s.raw = ""
	s.mu.Unlock()

	s.logger.Info("OCR drafts committed", zap.Int("providers", len(created)))
	return created, nil
}
