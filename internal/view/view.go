// Package view modela a navegação entre telas como um tipo soma
// fechado, em vez de uma flag de modo em string.
package view

// View tela atual da aplicação. Conjunto fechado: cada tela carrega
// no máximo um payload.
type View interface {
	viewTag()
}

// Home tela inicial (grade de especialidades).
type Home struct{}

// List lista de prestadores de uma especialidade.
type List struct {
	Specialty string
}

// Detail detalhe de um prestador.
type Detail struct {
	ProviderID string
}

// Form formulário de criação/edição. ProviderID vazio = novo registro.
type Form struct {
	ProviderID string
}

// Settings tela de ajustes (importação/exportação).
type Settings struct{}

// OCR tela de captura assistida por IA.
type OCR struct{}

// Search tela de busca.
type Search struct{}

func (Home) viewTag()     {}
func (List) viewTag()     {}
func (Detail) viewTag()   {}
func (Form) viewTag()     {}
func (Settings) viewTag() {}
func (OCR) viewTag()      {}
func (Search) viewTag()   {}

// ProviderSpecialtyFn resolve a primeira especialidade de um
// prestador ("" quando ele não tem nenhuma ou não existe).
type ProviderSpecialtyFn func(providerID string) string

// Router histórico mínimo de navegação: guarda só a tela atual e
// deriva o destino do botão voltar.
type Router struct {
	current        View
	firstSpecialty ProviderSpecialtyFn
}

func NewRouter(firstSpecialty ProviderSpecialtyFn) *Router {
	return &Router{
		current:        Home{},
		firstSpecialty: firstSpecialty,
	}
}

// Current tela atual.
func (r *Router) Current() View { return r.current }

// Navigate troca a tela atual.
func (r *Router) Navigate(v View) { r.current = v }

// Back regra de retorno: do detalhe volta para a lista da primeira
// especialidade do prestador (ou home se ele não tiver nenhuma); das
// demais telas volta para home.
func (r *Router) Back() View {
	switch v := r.current.(type) {
	case Detail:
		if specialty := r.firstSpecialty(v.ProviderID); specialty != "" {
			r.current = List{Specialty: specialty}
			return r.current
		}
		r.current = Home{}
	case Home:
		// já está na raiz
	default:
		r.current = Home{}
	}
	return r.current
}
