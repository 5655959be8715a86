package domain

import "strings"

// Contact telefone de um prestador. Type é um enum aberto:
// WhatsApp/Telegram/Celular/Fixo ou texto livre.
type Contact struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Tipos de contato pré-definidos (a UI também aceita texto livre).
const (
	ContactWhatsApp = "WhatsApp"
	ContactTelegram = "Telegram"
	ContactCelular  = "Celular"
	ContactFixo     = "Fixo"
)

// Email endereço de e-mail com rótulo livre (ex: Pessoal, Trabalho).
type Email struct {
	ID    string `json:"id"`
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

// SocialMedia usuários/links de redes sociais.
type SocialMedia struct {
	Instagram string `json:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	X         string `json:"x,omitempty"`
}

// ServiceMedia foto ou vídeo anexado a um serviço do histórico.
type ServiceMedia struct {
	Type string `json:"type"` // "image" ou "video"
	URL  string `json:"url"`
}

// ServiceRecord entrada do histórico de serviços (append-only).
type ServiceRecord struct {
	ID          string         `json:"id"`
	Description string         `json:"description"`
	Date        string         `json:"date"`
	Duration    string         `json:"duration"` // "X dias" ou "Y horas"
	Price       float64        `json:"price"`
	Media       []ServiceMedia `json:"media"`
	Tags        []string       `json:"tags"`
	Rating      int            `json:"rating"` // 1-10
}

// Provider prestador de serviço (raiz do agregado).
// Specialties referencia o catálogo de especialidades por nome; a
// integridade é mantida por cascatas explícitas, não por chave estrangeira.
type Provider struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Specialties    []string        `json:"specialties"`
	Contacts       []Contact       `json:"contacts"`
	Emails         []Email         `json:"emails"`
	Address        string          `json:"address"`
	GoogleMapsURL  string          `json:"googleMapsUrl,omitempty"`
	Website        string          `json:"website,omitempty"`
	SocialMedia    SocialMedia     `json:"socialMedia"`
	CustomTags     []string        `json:"customTags"`
	Review         *Review         `json:"review"`
	ServiceHistory []ServiceRecord `json:"serviceHistory"`
	IsFavorite     bool            `json:"isFavorite"`
}

// HasSpecialty verifica se o prestador referencia a especialidade.
func (p *Provider) HasSpecialty(name string) bool {
	for _, s := range p.Specialties {
		if s == name {
			return true
		}
	}
	return false
}

// AddCustomTag adiciona uma tag livre, sem duplicatas exatas
// (case-sensitive, verificado na inserção).
func (p *Provider) AddCustomTag(tag string) {
	for _, t := range p.CustomTags {
		if t == tag {
			return
		}
	}
	p.CustomTags = append(p.CustomTags, tag)
}

// Matches busca case-insensitive sobre nome, endereço, especialidades,
// tags, telefones e e-mails (mesmo filtro da tela de busca).
func (p *Provider) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	check := func(s string) bool {
		return strings.Contains(strings.ToLower(s), term)
	}
	if check(p.Name) || check(p.Address) {
		return true
	}
	for _, s := range p.Specialties {
		if check(s) {
			return true
		}
	}
	for _, t := range p.CustomTags {
		if check(t) {
			return true
		}
	}
	for _, c := range p.Contacts {
		if check(c.Value) {
			return true
		}
	}
	for _, e := range p.Emails {
		if check(e.Value) {
			return true
		}
	}
	return false
}

// ProviderDraft resultado estruturado da extração OCR, ainda sem
// id/avaliação/histórico (o usuário revisa antes de salvar).
type ProviderDraft struct {
	Name          string      `json:"name"`
	Specialties   []string    `json:"specialties"`
	Contacts      []Contact   `json:"contacts"`
	Emails        []Email     `json:"emails"`
	Address       string      `json:"address"`
	GoogleMapsURL string      `json:"googleMapsUrl,omitempty"`
	Website       string      `json:"website,omitempty"`
	SocialMedia   SocialMedia `json:"socialMedia"`
	CustomTags    []string    `json:"customTags"`
}

// ToProvider materializa o rascunho como um novo prestador.
func (d ProviderDraft) ToProvider() Provider {
	return Provider{
		ID:             NewProviderID(),
		Name:           d.Name,
		Specialties:    d.Specialties,
		Contacts:       d.Contacts,
		Emails:         d.Emails,
		Address:        d.Address,
		GoogleMapsURL:  d.GoogleMapsURL,
		Website:        d.Website,
		SocialMedia:    d.SocialMedia,
		CustomTags:     d.CustomTags,
		Review:         nil,
		ServiceHistory: []ServiceRecord{},
		IsFavorite:     false,
	}
}
