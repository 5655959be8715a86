// Package providers mantém a coleção de prestadores e as operações de
// importação, exportação e cascata de especialidades.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/rovasEdu/servicos/internal/domain"
	"github.com/rovasEdu/servicos/internal/store"
)

// Store coleção de prestadores indexada por id, persistida por inteiro
// (JSON compacto) a cada mutação. Dono exclusivo da coleção: o catálogo
// de especialidades nunca é tocado daqui; as cascatas são disparadas
// pela camada orquestradora.
type Store struct {
	blobs     store.Blobs
	key       string
	logger    *zap.Logger
	providers []domain.Provider
}

func New(blobs store.Blobs, key string, logger *zap.Logger) *Store {
	return &Store{
		blobs:  blobs,
		key:    key,
		logger: logger,
	}
}

// Load carrega e sanitiza a coleção persistida. Um blob indecifrável é
// descartado e a coleção começa vazia; carregar nunca falha por dado
// malformado.
func (s *Store) Load(ctx context.Context) error {
	s.providers = []domain.Provider{}

	text, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		if err == store.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to read providers blob: %w", err)
	}

	parsed, err := domain.DecodeProviders(text)
	if err != nil {
		s.logger.Warn("Providers blob is corrupted, starting empty", zap.Error(err))
		return s.persist(ctx)
	}
	s.providers = parsed
	return nil
}

func (s *Store) persist(ctx context.Context) error {
	data, err := json.Marshal(s.providers)
	if err != nil {
		return err
	}
	return s.blobs.Set(ctx, s.key, string(data))
}

// All retorna uma cópia da coleção na ordem de inserção.
func (s *Store) All() []domain.Provider {
	out := make([]domain.Provider, len(s.providers))
	copy(out, s.providers)
	return out
}

// Count número de prestadores na coleção.
func (s *Store) Count() int { return len(s.providers) }

// Get retorna o prestador com o id dado.
func (s *Store) Get(id string) (domain.Provider, bool) {
	for _, p := range s.providers {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Provider{}, false
}

// BySpecialty retorna os prestadores que referenciam a especialidade.
func (s *Store) BySpecialty(name string) []domain.Provider {
	out := []domain.Provider{}
	for _, p := range s.providers {
		if p.HasSpecialty(name) {
			out = append(out, p)
		}
	}
	return out
}

// Search filtra a coleção pelo termo e ordena por nome.
func (s *Store) Search(term string) []domain.Provider {
	out := []domain.Provider{}
	for _, p := range s.providers {
		if p.Matches(term) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Add acrescenta um prestador (id já gerado pelo chamador) e persiste.
func (s *Store) Add(ctx context.Context, p domain.Provider) error {
	s.providers = append(s.providers, p)
	return s.persist(ctx)
}

// Update substitui o registro de mesmo id. No-op se não existir.
func (s *Store) Update(ctx context.Context, p domain.Provider) error {
	for i, cur := range s.providers {
		if cur.ID == p.ID {
			s.providers[i] = p
			return s.persist(ctx)
		}
	}
	return nil
}

// Delete remove o registro com o id dado. No-op se não existir.
func (s *Store) Delete(ctx context.Context, id string) error {
	for i, cur := range s.providers {
		if cur.ID == id {
			s.providers = append(s.providers[:i], s.providers[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// SetFavorite marca/desmarca o prestador como favorito.
func (s *Store) SetFavorite(ctx context.Context, id string, favorite bool) error {
	for i, cur := range s.providers {
		if cur.ID == id {
			s.providers[i].IsFavorite = favorite
			return s.persist(ctx)
		}
	}
	return nil
}

// AddServiceRecord acrescenta uma entrada ao histórico do prestador.
func (s *Store) AddServiceRecord(ctx context.Context, id string, rec domain.ServiceRecord) error {
	for i, cur := range s.providers {
		if cur.ID == id {
			if rec.ID == "" {
				rec.ID = domain.NewServiceRecordID()
			}
			s.providers[i].ServiceHistory = append(s.providers[i].ServiceHistory, rec)
			return s.persist(ctx)
		}
	}
	return nil
}

// ImportReplace descarta a coleção atual e adota a lista importada
// (sanitizada).
func (s *Store) ImportReplace(ctx context.Context, raw []any) error {
	s.providers = domain.SanitizeProviders(raw)
	return s.persist(ctx)
}

// ImportMerge sanitiza e faz upsert por id: um id existente é
// substituído por inteiro (último escritor vence), ids novos são
// adicionados ao final na ordem do arquivo.
func (s *Store) ImportMerge(ctx context.Context, raw []any) error {
	incoming := domain.SanitizeProviders(raw)

	index := make(map[string]int, len(s.providers))
	for i, p := range s.providers {
		index[p.ID] = i
	}
	for _, np := range incoming {
		if i, ok := index[np.ID]; ok {
			s.providers[i] = np
		} else {
			index[np.ID] = len(s.providers)
			s.providers = append(s.providers, np)
		}
	}
	return s.persist(ctx)
}

// Export serializa a coleção inteira com indentação de dois espaços
// (formato de intercâmbio legível).
func (s *Store) Export() (string, error) {
	data, err := json.MarshalIndent(s.providers, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to export providers: %w", err)
	}
	return string(data), nil
}

// RenameSpecialty reescreve oldName para newName na posição original
// em todos os prestadores. Não remove duplicatas: se newName já
// existia no array do prestador, ele passa a aparecer duas vezes
// (comportamento herdado, coberto por teste).
func (s *Store) RenameSpecialty(ctx context.Context, oldName, newName string) error {
	changed := false
	for i := range s.providers {
		for j, spec := range s.providers[i].Specialties {
			if spec == oldName {
				s.providers[i].Specialties[j] = newName
				changed = true
			}
		}
	}
	if !changed {
		return nil
	}
	return s.persist(ctx)
}

// RemoveSpecialty filtra o nome do array de especialidades de todos os
// prestadores.
func (s *Store) RemoveSpecialty(ctx context.Context, name string) error {
	changed := false
	for i := range s.providers {
		if !s.providers[i].HasSpecialty(name) {
			continue
		}
		filtered := []string{}
		for _, spec := range s.providers[i].Specialties {
			if spec != name {
				filtered = append(filtered, spec)
			}
		}
		s.providers[i].Specialties = filtered
		changed = true
	}
	if !changed {
		return nil
	}
	return s.persist(ctx)
}
