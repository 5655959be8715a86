package ocr

import (
	"fmt"
	"strings"
)

// Engine seleciona o motor de extração (define modelo e prompt).
type Engine string

const (
	EngineGemini     Engine = "gemini"
	EngineGoogleLens Engine = "google-lens"
	EngineGeminiNano Engine = "gemini-nano"
)

const baseInstruction = `
Para cada prestador, é ESSENCIAL capturar ao menos o NOME e a ESPECIALIDADE principal. O TELEFONE também é muito importante, se estiver disponível. Os outros campos são desejáveis, mas não essenciais.

A lista de especialidades disponíveis no sistema é: [%s].

Sua tarefa de inferência de especialidade é:
1. Leia o texto e identifique palavras-chave sobre as habilidades da pessoa (ex: "Aço Inox", "Alumínio", "Ferro", "pintura decorativa", "instalação de porcelanato").
2. Compare essas palavras-chave com a lista de especialidades disponíveis.
3. Se as palavras-chave indicarem claramente uma ou mais especialidades da lista (ex: "Aço Inox" se relaciona com "Metalúrgico"), adicione essa(s) especialidade(s) ao campo 'specialties'.
4. Adicione as palavras-chave específicas que você encontrou (ex: "Aço Inox", "Alumínio", "Ferro") ao campo 'customTags'.

Um prestador pode ter uma ou mais especialidades principais.
Retorne uma lista de objetos JSON, mesmo que encontre apenas um.
Se não encontrar informações de um prestador válido (com nome e especialidade), retorne uma lista vazia.`

const rawTextPrompt = "Extraia todo o texto visível na imagem. Preserve as quebras de linha originais. Responda apenas com o texto extraído."

// extractionPrompt monta o prompt de extração estruturada para o motor.
func extractionPrompt(engine Engine, availableSpecialties []string) string {
	base := fmt.Sprintf(baseInstruction, strings.Join(availableSpecialties, ", "))
	switch engine {
	case EngineGoogleLens:
		return "Você é uma IA de análise de imagem especialista, similar ao Google Lens. Seu objetivo principal é extrair meticulosamente informações de contato estruturadas da imagem fornecida. Seja abrangente. A imagem pode ser um cartão de visita, panfleto, anúncio ou um documento." + base
	default:
		return "Extraia as informações de contato do(s) prestador(es) de serviço desta imagem. A imagem é provavelmente um cartão de visita, panfleto ou anúncio." + base
	}
}

func iconSuggestionPrompt(specialtyName string, availableIcons []string) string {
	return fmt.Sprintf(`
Dada a especialidade de prestador de serviço "%s", sugira os 3 nomes de ícones mais apropriados da biblioteca de ícones.
Responda APENAS com um array JSON contendo 3 strings com os nomes exatos dos ícones.
Exemplo de resposta: ["Hammer", "Wrench", "Drill"]

Aqui está a lista de ícones disponíveis para escolher:
%s`, specialtyName, strings.Join(availableIcons, ", "))
}

// responseSchema esquema JSON enviado ao modelo para a extração
// estruturada (espelha ProviderDraft).
var responseSchema = map[string]any{
	"type": "ARRAY",
	"items": map[string]any{
		"type": "OBJECT",
		"properties": map[string]any{
			"name": map[string]any{
				"type":        "STRING",
				"description": "Nome completo do prestador de serviço.",
			},
			"specialties": map[string]any{
				"type":        "ARRAY",
				"items":       map[string]any{"type": "STRING"},
				"description": "Lista de especialidades ou serviços principais que a pessoa oferece.",
			},
			"contacts": map[string]any{
				"type": "ARRAY",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"type":  map[string]any{"type": "STRING", "description": "Tipo de contato (WhatsApp, Celular, Fixo, etc.)."},
						"value": map[string]any{"type": "STRING", "description": "O número de telefone."},
					},
					"required": []string{"type", "value"},
				},
				"description": "Lista de números de telefone.",
			},
			"emails": map[string]any{
				"type": "ARRAY",
				"items": map[string]any{
					"type": "OBJECT",
					"properties": map[string]any{
						"tag":   map[string]any{"type": "STRING", "description": "Rótulo do email (ex: Pessoal, Trabalho)."},
						"value": map[string]any{"type": "STRING", "description": "O endereço de e-mail."},
					},
					"required": []string{"tag", "value"},
				},
				"description": "Lista de endereços de e-mail.",
			},
			"address":       map[string]any{"type": "STRING", "description": "Endereço físico, se disponível."},
			"googleMapsUrl": map[string]any{"type": "STRING", "description": "Link para o Google Maps, se disponível."},
			"website":       map[string]any{"type": "STRING", "description": "Website, se disponível."},
			"socialMedia": map[string]any{
				"type": "OBJECT",
				"properties": map[string]any{
					"instagram": map[string]any{"type": "STRING"},
					"tiktok":    map[string]any{"type": "STRING"},
					"facebook":  map[string]any{"type": "STRING"},
					"linkedin":  map[string]any{"type": "STRING"},
					"x":         map[string]any{"type": "STRING"},
				},
				"description": "Nomes de usuário ou links para redes sociais.",
			},
			"customTags": map[string]any{
				"type":        "ARRAY",
				"items":       map[string]any{"type": "STRING"},
				"description": "Lista de sub-especialidades, habilidades específicas ou outras tags relevantes.",
			},
		},
	},
}

var iconSuggestionSchema = map[string]any{
	"type":  "ARRAY",
	"items": map[string]any{"type": "STRING"},
}
