// Package registry mantém o catálogo de especialidades (nome→ícone).
package registry

import (
	"context"
	"encoding/json"
	"sort"

	"go.uber.org/zap"

	"github.com/rovasEdu/servicos/internal/domain"
	"github.com/rovasEdu/servicos/internal/store"
)

// Registry catálogo ordenado de especialidades, persistido por inteiro
// a cada mutação. O nome é a chave única; Add não rejeita duplicatas
// sozinho (a validação de unicidade é responsabilidade do chamador,
// feita antes de chamar — ver internal/http).
type Registry struct {
	blobs       store.Blobs
	key         string
	logger      *zap.Logger
	specialties []domain.SpecialtyConfig
}

func New(blobs store.Blobs, key string, logger *zap.Logger) *Registry {
	return &Registry{
		blobs:  blobs,
		key:    key,
		logger: logger,
	}
}

// Load carrega o catálogo persistido. Slot vazio ou blob inválido
// semeiam o catálogo padrão.
func (r *Registry) Load(ctx context.Context) error {
	text, err := r.blobs.Get(ctx, r.key)
	if err != nil {
		if err != store.ErrNotFound {
			r.logger.Warn("Failed to read specialties blob, seeding defaults", zap.Error(err))
		}
		r.seed()
		return r.persist(ctx)
	}

	var parsed []domain.SpecialtyConfig
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		r.logger.Warn("Specialties blob is corrupted, seeding defaults", zap.Error(err))
		r.seed()
		return r.persist(ctx)
	}
	r.specialties = parsed
	return nil
}

func (r *Registry) seed() {
	r.specialties = make([]domain.SpecialtyConfig, len(domain.DefaultSpecialties))
	copy(r.specialties, domain.DefaultSpecialties)
}

func (r *Registry) persist(ctx context.Context) error {
	data, err := json.Marshal(r.specialties)
	if err != nil {
		return err
	}
	return r.blobs.Set(ctx, r.key, string(data))
}

// List retorna uma cópia do catálogo na ordem de inserção.
func (r *Registry) List() []domain.SpecialtyConfig {
	out := make([]domain.SpecialtyConfig, len(r.specialties))
	copy(out, r.specialties)
	return out
}

// Sorted retorna o catálogo ordenado por nome (ordem de exibição).
func (r *Registry) Sorted() []domain.SpecialtyConfig {
	out := r.List()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names retorna os nomes na ordem de inserção.
func (r *Registry) Names() []string {
	out := make([]string, len(r.specialties))
	for i, s := range r.specialties {
		out[i] = s.Name
	}
	return out
}

// Contains verifica se o nome existe no catálogo.
func (r *Registry) Contains(name string) bool {
	for _, s := range r.specialties {
		if s.Name == name {
			return true
		}
	}
	return false
}

// Add acrescenta uma especialidade e persiste. Não verifica
// unicidade do nome: o chamador deve validar antes.
func (r *Registry) Add(ctx context.Context, cfg domain.SpecialtyConfig) error {
	r.specialties = append(r.specialties, cfg)
	return r.persist(ctx)
}

// Update substitui a entrada cujo nome é oldName. No-op se não existir.
func (r *Registry) Update(ctx context.Context, oldName string, cfg domain.SpecialtyConfig) error {
	changed := false
	for i, s := range r.specialties {
		if s.Name == oldName {
			r.specialties[i] = cfg
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return r.persist(ctx)
}

// Remove exclui a entrada com o nome dado. No-op se não existir.
func (r *Registry) Remove(ctx context.Context, name string) error {
	out := r.specialties[:0]
	removed := false
	for _, s := range r.specialties {
		if s.Name == name {
			removed = true
			continue
		}
		out = append(out, s)
	}
	if !removed {
		return nil
	}
	r.specialties = out
	return r.persist(ctx)
}
