package ocr

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// fallbackIcons sugestão devolvida quando a IA falha ou responde algo
// inesperado.
var fallbackIcons = []string{"Construction", "Wrench", "User"}

// geminiRequest corpo da chamada generateContent.
type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMimeType string `json:"response_mime_type,omitempty"`
	ResponseSchema   any    `json:"response_schema,omitempty"`
}

// geminiResponse resposta da API (só os campos que usamos).
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client cliente da API Gemini para extração de contatos em imagens.
// O chamador trata qualquer erro como falha genérica: não há retry
// automático, o usuário reenvia a imagem.
type Client struct {
	httpClient *resty.Client
	apiKey     string
	flashModel string
	proModel   string
	logger     *zap.Logger
}

func NewClient(baseURL, apiKey, flashModel, proModel string, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(60 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient: httpClient,
		apiKey:     apiKey,
		flashModel: flashModel,
		proModel:   proModel,
		logger:     logger,
	}
}

// modelFor google-lens usa o modelo pesado; gemini e gemini-nano usam
// o leve, suficiente para extração estruturada.
func (c *Client) modelFor(engine Engine) string {
	if engine == EngineGoogleLens {
		return c.proModel
	}
	return c.flashModel
}

func (c *Client) generate(ctx context.Context, model string, req geminiRequest) (string, error) {
	var response geminiResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(req).
		SetResult(&response).
		SetError(&response).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", model))
	if err != nil {
		return "", fmt.Errorf("failed to call Gemini API: %w", err)
	}
	if resp.IsError() {
		if response.Error != nil {
			return "", fmt.Errorf("Gemini API error: %s (code %d)", response.Error.Message, response.Error.Code)
		}
		return "", fmt.Errorf("Gemini API error: status %d", resp.StatusCode())
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("Gemini API returned no candidates")
	}
	return response.Candidates[0].Content.Parts[0].Text, nil
}

// ExtractProviders envia a imagem e devolve os candidatos crus
// (fracamente tipados) da extração estruturada. Candidatos sem nome ou
// sem nenhuma especialidade são descartados aqui; o resto da limpeza é
// do Normalizer.
func (c *Client) ExtractProviders(ctx context.Context, image []byte, mimeType string, engine Engine, availableSpecialties []string) ([]any, error) {
	model := c.modelFor(engine)
	c.logger.Info("Calling Gemini API for structured extraction",
		zap.String("model", model),
		zap.String("engine", string(engine)),
		zap.Int("image_bytes", len(image)),
	)

	req := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
				{Text: extractionPrompt(engine, availableSpecialties)},
			},
		}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}

	text, err := c.generate(ctx, model, req)
	if err != nil {
		c.logger.Error("Gemini extraction failed", zap.Error(err))
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse Gemini response: %w", err)
	}
	items, ok := parsed.([]any)
	if !ok {
		return nil, fmt.Errorf("Gemini did not return an array")
	}

	candidates := []any{}
	for _, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			continue
		}
		name, ok := m["name"].(string)
		if !ok || name == "" {
			continue
		}
		specs, ok := m["specialties"].([]any)
		if !ok || len(specs) == 0 {
			continue
		}
		candidates = append(candidates, m)
	}

	c.logger.Info("Gemini extraction succeeded", zap.Int("candidates", len(candidates)))
	return candidates, nil
}

// ExtractRawText modo texto bruto: devolve o texto extraído sem
// estruturação, para cópia manual.
func (c *Client) ExtractRawText(ctx context.Context, image []byte, mimeType string) (string, error) {
	req := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{
				{InlineData: &inlineData{
					MimeType: mimeType,
					Data:     base64.StdEncoding.EncodeToString(image),
				}},
				{Text: rawTextPrompt},
			},
		}},
	}

	text, err := c.generate(ctx, c.flashModel, req)
	if err != nil {
		c.logger.Error("Gemini raw text extraction failed", zap.Error(err))
		return "", err
	}
	return text, nil
}

// SuggestIcons pede até 3 nomes de ícones para uma especialidade.
// Falhas degradam para a sugestão padrão em vez de propagar erro.
func (c *Client) SuggestIcons(ctx context.Context, specialtyName string, availableIcons []string) []string {
	req := geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: iconSuggestionPrompt(specialtyName, availableIcons)}},
		}},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   iconSuggestionSchema,
		},
	}

	text, err := c.generate(ctx, c.flashModel, req)
	if err != nil {
		c.logger.Warn("Icon suggestion failed, using fallback", zap.Error(err))
		return fallbackIcons
	}

	var names []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &names); err != nil || len(names) == 0 {
		return fallbackIcons
	}
	if len(names) > 3 {
		names = names[:3]
	}
	return names
}
