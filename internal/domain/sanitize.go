package domain

import (
	"encoding/json"
	"fmt"
)

// PlaceholderName nome atribuído a registros persistidos/importados
// sem nome válido.
const PlaceholderName = "Nome Desconhecido"

// Coerções tolerantes para dados externos (blob persistido, arquivo
// importado, resposta da IA). Nenhuma delas propaga erro: campo com
// formato inesperado degrada para o valor padrão documentado.

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

// nonEmptyStringOr replica a semântica de `v || def`: string vazia
// também cai no padrão.
func nonEmptyStringOr(v any, def string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return def
}

func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

func asSlice(v any) ([]any, bool) {
	s, ok := v.([]any)
	return s, ok
}

// stringEntries mantém apenas os elementos que são strings.
func stringEntries(v any) []string {
	out := []string{}
	items, ok := asSlice(v)
	if !ok {
		return out
	}
	for _, it := range items {
		if s, ok := asString(it); ok {
			out = append(out, s)
		}
	}
	return out
}

func intOr(v any, def int) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return def
}

func floatOr(v any, def float64) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return def
}

func boolOr(v any, def bool) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return def
}

// SanitizeProvider coage um valor arbitrário ao formato Provider.
// Campos ausentes ou com tipo errado recebem valores vazios seguros;
// um id é gerado quando ausente. Nunca falha.
func SanitizeProvider(raw any) Provider {
	m, ok := asMap(raw)
	if !ok {
		m = map[string]any{}
	}
	return Provider{
		ID:             nonEmptyStringOr(m["id"], NewProviderID()),
		Name:           nonEmptyStringOr(m["name"], PlaceholderName),
		Specialties:    stringEntries(m["specialties"]),
		Contacts:       sanitizeContacts(m["contacts"]),
		Emails:         sanitizeEmails(m["emails"]),
		Address:        stringOr(m["address"], ""),
		GoogleMapsURL:  stringOr(m["googleMapsUrl"], ""),
		Website:        stringOr(m["website"], ""),
		SocialMedia:    sanitizeSocialMedia(m["socialMedia"]),
		CustomTags:     stringEntries(m["customTags"]),
		Review:         sanitizeReview(m["review"]),
		ServiceHistory: sanitizeServiceHistory(m["serviceHistory"]),
		IsFavorite:     boolOr(m["isFavorite"], false),
	}
}

func sanitizeContacts(v any) []Contact {
	out := []Contact{}
	items, ok := asSlice(v)
	if !ok {
		return out
	}
	for _, it := range items {
		m, ok := asMap(it)
		if !ok {
			continue
		}
		out = append(out, Contact{
			ID:    nonEmptyStringOr(m["id"], NewContactID()),
			Type:  stringOr(m["type"], ""),
			Value: stringOr(m["value"], ""),
		})
	}
	return out
}

func sanitizeEmails(v any) []Email {
	out := []Email{}
	items, ok := asSlice(v)
	if !ok {
		return out
	}
	for _, it := range items {
		m, ok := asMap(it)
		if !ok {
			continue
		}
		out = append(out, Email{
			ID:    nonEmptyStringOr(m["id"], NewEmailID()),
			Tag:   stringOr(m["tag"], ""),
			Value: stringOr(m["value"], ""),
		})
	}
	return out
}

// SanitizeSocialMedia coage um valor arbitrário para SocialMedia;
// qualquer coisa que não seja objeto vira o valor zero.
func SanitizeSocialMedia(v any) SocialMedia {
	return sanitizeSocialMedia(v)
}

func sanitizeSocialMedia(v any) SocialMedia {
	m, ok := asMap(v)
	if !ok {
		return SocialMedia{}
	}
	return SocialMedia{
		Instagram: stringOr(m["instagram"], ""),
		TikTok:    stringOr(m["tiktok"], ""),
		Facebook:  stringOr(m["facebook"], ""),
		LinkedIn:  stringOr(m["linkedin"], ""),
		X:         stringOr(m["x"], ""),
	}
}

func sanitizeReview(v any) *Review {
	m, ok := asMap(v)
	if !ok {
		return nil
	}
	return &Review{
		Agility:        intOr(m["agility"], 0),
		Cleanliness:    intOr(m["cleanliness"], 0),
		DetailOriented: intOr(m["detailOriented"], 0),
		Flexibility:    intOr(m["flexibility"], 0),
		Honesty:        intOr(m["honesty"], 0),
		Knowledge:      intOr(m["knowledge"], 0),
		Price:          intOr(m["price"], 0),
		Punctuality:    intOr(m["punctuality"], 0),
		Quality:        intOr(m["quality"], 0),
		Talkative:      intOr(m["talkative"], 0),
		UpToDate:       intOr(m["upToDate"], 0),
		Text:           stringOr(m["text"], ""),
	}
}

func sanitizeServiceHistory(v any) []ServiceRecord {
	out := []ServiceRecord{}
	items, ok := asSlice(v)
	if !ok {
		return out
	}
	for _, it := range items {
		m, ok := asMap(it)
		if !ok {
			continue
		}
		out = append(out, ServiceRecord{
			ID:          nonEmptyStringOr(m["id"], NewServiceRecordID()),
			Description: stringOr(m["description"], ""),
			Date:        stringOr(m["date"], ""),
			Duration:    stringOr(m["duration"], ""),
			Price:       floatOr(m["price"], 0),
			Media:       sanitizeServiceMedia(m["media"]),
			Tags:        stringEntries(m["tags"]),
			Rating:      intOr(m["rating"], 0),
		})
	}
	return out
}

func sanitizeServiceMedia(v any) []ServiceMedia {
	out := []ServiceMedia{}
	items, ok := asSlice(v)
	if !ok {
		return out
	}
	for _, it := range items {
		m, ok := asMap(it)
		if !ok {
			continue
		}
		out = append(out, ServiceMedia{
			Type: stringOr(m["type"], "image"),
			URL:  stringOr(m["url"], ""),
		})
	}
	return out
}

// SanitizeProviders sanitiza cada elemento de uma lista crua.
func SanitizeProviders(raw []any) []Provider {
	out := make([]Provider, 0, len(raw))
	for _, r := range raw {
		out = append(out, SanitizeProvider(r))
	}
	return out
}

// DecodeProviders decodifica o blob da coleção. JSON inválido ou raiz
// que não seja array retornam erro: o chamador descarta o blob e
// recomeça vazio em vez de falhar.
func DecodeProviders(text string) ([]Provider, error) {
	var raw any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse providers blob: %w", err)
	}
	items, ok := asSlice(raw)
	if !ok {
		return nil, fmt.Errorf("providers blob root is not an array")
	}
	return SanitizeProviders(items), nil
}
