// Package ocr implementa a captura assistida por IA: chamada ao
// serviço externo de extração, normalização do resultado e a máquina
// de estados da tela de OCR.
package ocr

import (
	"strings"
	"unicode"

	"github.com/rovasEdu/servicos/internal/domain"
)

// MissingNamePlaceholder nome usado quando a extração não encontrou um.
const MissingNamePlaceholder = "Nome não encontrado"

// Normalizer transforma os candidatos fracamente tipados retornados
// pela IA em rascunhos bem tipados. Puro e total: nenhum formato de
// entrada provoca erro, cada campo degrada para seu padrão de forma
// independente.
type Normalizer struct {
	// DDD prefixado a telefones de 8 ou 9 dígitos (sem código de área).
	DefaultDDD string
}

func NewNormalizer(defaultDDD string) *Normalizer {
	return &Normalizer{DefaultDDD: defaultDDD}
}

// Normalize produz um rascunho por candidato. Especialidades
// desconhecidas são descartadas em silêncio: a IA nunca cria
// especialidades novas no sistema.
func (n *Normalizer) Normalize(candidates []any, knownSpecialties []string) []domain.ProviderDraft {
	drafts := make([]domain.ProviderDraft, 0, len(candidates))
	for _, c := range candidates {
		drafts = append(drafts, n.normalizeOne(c, knownSpecialties))
	}
	return drafts
}

func (n *Normalizer) normalizeOne(candidate any, known []string) domain.ProviderDraft {
	m, ok := candidate.(map[string]any)
	if !ok {
		m = map[string]any{}
	}

	name := MissingNamePlaceholder
	if s, ok := m["name"].(string); ok && s != "" {
		name = CapitalizeName(s)
	}

	return domain.ProviderDraft{
		Name:          name,
		Specialties:   filterKnown(m["specialties"], known),
		Contacts:      n.normalizeContacts(m["contacts"]),
		Emails:        normalizeEmails(m["emails"]),
		Address:       stringOrEmpty(m["address"]),
		GoogleMapsURL: stringOrEmpty(m["googleMapsUrl"]),
		Website:       stringOrEmpty(m["website"]),
		SocialMedia:   domain.SanitizeSocialMedia(m["socialMedia"]),
		CustomTags:    stringList(m["customTags"]),
	}
}

// filterKnown mantém apenas as entradas que são strings E constam na
// lista de especialidades conhecidas, preservando a ordem.
func filterKnown(v any, known []string) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			continue
		}
		for _, k := range known {
			if s == k {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

func (n *Normalizer) normalizeContacts(v any) []domain.Contact {
	out := []domain.Contact{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, it := range items {
		m, _ := it.(map[string]any)
		typ := domain.ContactCelular
		if s, ok := m["type"].(string); ok {
			typ = s
		}
		value := ""
		if s, ok := m["value"].(string); ok {
			value = FormatPhone(s, n.DefaultDDD)
		}
		out = append(out, domain.Contact{
			ID:    domain.NewContactID(),
			Type:  typ,
			Value: value,
		})
	}
	return out
}

func normalizeEmails(v any) []domain.Email {
	out := []domain.Email{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, it := range items {
		m, _ := it.(map[string]any)
		tag := "Principal"
		if s, ok := m["tag"].(string); ok {
			tag = s
		}
		value := ""
		if s, ok := m["value"].(string); ok {
			value = s
		}
		out = append(out, domain.Email{
			ID:    domain.NewEmailID(),
			Tag:   tag,
			Value: value,
		})
	}
	return out
}

func stringOrEmpty(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func stringList(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, it := range items {
		if s, ok := it.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// CapitalizeName põe cada palavra com inicial maiúscula e o resto em
// minúsculas: "joão SILVA" → "João Silva".
func CapitalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	startOfWord := true
	for _, r := range strings.ToLower(name) {
		if unicode.IsSpace(r) {
			startOfWord = true
			b.WriteRune(r)
			continue
		}
		if startOfWord {
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatPhone remove tudo que não é dígito e garante o código de área:
// 10 ou 11 dígitos já incluem DDD e ficam como estão; 8 ou 9 ganham o
// DDD padrão; qualquer outro tamanho passa sem ajuste.
func FormatPhone(phone, defaultDDD string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := digits.String()
	switch len(d) {
	case 8, 9:
		return defaultDDD + d
	default:
		return d
	}
}
