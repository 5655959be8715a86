// Package httpapi expõe o núcleo de dados para a UI local. Aplicação
// mono-usuário: não há autenticação nem controle de concorrência além
// da serialização das mutações.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rovasEdu/servicos/internal/domain"
	"github.com/rovasEdu/servicos/internal/export"
	"github.com/rovasEdu/servicos/internal/icons"
	"github.com/rovasEdu/servicos/internal/ocr"
	"github.com/rovasEdu/servicos/internal/providers"
	"github.com/rovasEdu/servicos/internal/registry"
)

// Mensagem única para falhas do colaborador de extração (sem detalhe
// estruturado, o usuário apenas reenvia a imagem).
const ocrFailureMessage = "Falha ao processar a imagem. Tente novamente."

// Handlers reúne as dependências dos endpoints.
type Handlers struct {
	providers *providers.Store
	registry  *registry.Registry
	session   *ocr.Session
	gemini    *ocr.Client
	logger    *zap.Logger
}

func NewHandlers(p *providers.Store, r *registry.Registry, session *ocr.Session, gemini *ocr.Client, logger *zap.Logger) *Handlers {
	return &Handlers{
		providers: p,
		registry:  r,
		session:   session,
		gemini:    gemini,
		logger:    logger,
	}
}

// --- Prestadores ---

// ListProviders GET /providers?q=&specialty=
func (h *Handlers) ListProviders(c *gin.Context) {
	if term := c.Query("q"); term != "" {
		c.JSON(http.StatusOK, h.providers.Search(term))
		return
	}
	if specialty := c.Query("specialty"); specialty != "" {
		c.JSON(http.StatusOK, h.providers.BySpecialty(specialty))
		return
	}
	c.JSON(http.StatusOK, h.providers.All())
}

// GetProvider GET /providers/:id
func (h *Handlers) GetProvider(c *gin.Context) {
	p, ok := h.providers.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "prestador não encontrado"})
		return
	}
	c.JSON(http.StatusOK, p)
}

// CreateProvider POST /providers
// O corpo é sanitizado: campos ausentes ou malformados degradam para
// os padrões, o id é gerado quando ausente.
func (h *Handlers) CreateProvider(c *gin.Context) {
	raw, err := decodeBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido"})
		return
	}
	p := domain.SanitizeProvider(raw)
	if _, exists := h.providers.Get(p.ID); exists {
		c.JSON(http.StatusConflict, gin.H{"error": "já existe um prestador com esse id"})
		return
	}
	if err := h.providers.Add(c.Request.Context(), p); err != nil {
		h.fail(c, "Failed to add provider", err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// UpdateProvider PUT /providers/:id
func (h *Handlers) UpdateProvider(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.providers.Get(id); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "prestador não encontrado"})
		return
	}
	raw, err := decodeBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido"})
		return
	}
	p := domain.SanitizeProvider(raw)
	p.ID = id // o id é imutável
	if err := h.providers.Update(c.Request.Context(), p); err != nil {
		h.fail(c, "Failed to update provider", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProvider DELETE /providers/:id
// A confirmação do usuário acontece na UI; aqui a remoção é direta e
// sem desfazer.
func (h *Handlers) DeleteProvider(c *gin.Context) {
	if err := h.providers.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "Failed to delete provider", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetFavorite POST /providers/:id/favorite
func (h *Handlers) SetFavorite(c *gin.Context) {
	var body struct {
		IsFavorite bool `json:"isFavorite"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido"})
		return
	}
	if _, ok := h.providers.Get(c.Param("id")); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "prestador não encontrado"})
		return
	}
	if err := h.providers.SetFavorite(c.Request.Context(), c.Param("id"), body.IsFavorite); err != nil {
		h.fail(c, "Failed to set favorite", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddServiceRecord POST /providers/:id/history
func (h *Handlers) AddServiceRecord(c *gin.Context) {
	var rec domain.ServiceRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido"})
		return
	}
	if _, ok := h.providers.Get(c.Param("id")); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "prestador não encontrado"})
		return
	}
	if err := h.providers.AddServiceRecord(c.Request.Context(), c.Param("id"), rec); err != nil {
		h.fail(c, "Failed to add service record", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Importação / exportação ---

// ExportProviders GET /providers/export — JSON indentado, exatamente o
// formato aceito na importação.
func (h *Handlers) ExportProviders(c *gin.Context) {
	text, err := h.providers.Export()
	if err != nil {
		h.fail(c, "Failed to export providers", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="prestadores.json"`)
	c.Data(http.StatusOK, "application/json", []byte(text))
}

// ExportProvidersXLSX GET /providers/export.xlsx
func (h *Handlers) ExportProvidersXLSX(c *gin.Context) {
	data, err := export.ProvidersXLSX(h.providers.All())
	if err != nil {
		h.fail(c, "Failed to export spreadsheet", err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="prestadores.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// ImportProviders POST /providers/import?mode=replace|merge
// Aceita o arquivo em multipart ("file") ou o JSON direto no corpo.
func (h *Handlers) ImportProviders(c *gin.Context) {
	mode := c.DefaultQuery("mode", "merge")
	if mode != "replace" && mode != "merge" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "modo de importação deve ser replace ou merge"})
		return
	}

	payload, err := importPayload(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "não foi possível ler o arquivo"})
		return
	}

	var raw any
	if err := json.Unmarshal(payload, &raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Erro ao ler o arquivo. Verifique se é um JSON válido."})
		return
	}
	items, ok := raw.([]any)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "o arquivo deve conter um array de prestadores"})
		return
	}

	if mode == "replace" {
		err = h.providers.ImportReplace(c.Request.Context(), items)
	} else {
		err = h.providers.ImportMerge(c.Request.Context(), items)
	}
	if err != nil {
		h.fail(c, "Failed to import providers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": mode, "count": h.providers.Count()})
}

// --- Especialidades ---

// ListSpecialties GET /specialties
func (h *Handlers) ListSpecialties(c *gin.Context) {
	c.JSON(http.StatusOK, h.registry.Sorted())
}

// CreateSpecialty POST /specialties
// A unicidade do nome é validada AQUI, antes de tocar o catálogo: o
// Add do registry aceita duplicatas.
func (h *Handlers) CreateSpecialty(c *gin.Context) {
	var cfg domain.SpecialtyConfig
	if err := c.ShouldBindJSON(&cfg); err != nil || cfg.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nome da especialidade é obrigatório"})
		return
	}
	if h.registry.Contains(cfg.Name) {
		c.JSON(http.StatusConflict, gin.H{"error": "já existe uma especialidade com esse nome"})
		return
	}
	cfg.Icon = icons.Lookup(cfg.Icon)
	if err := h.registry.Add(c.Request.Context(), cfg); err != nil {
		h.fail(c, "Failed to add specialty", err)
		return
	}
	c.JSON(http.StatusCreated, cfg)
}

// UpdateSpecialty PUT /specialties/:name
// Renomear dispara a cascata de reescrita nos prestadores.
func (h *Handlers) UpdateSpecialty(c *gin.Context) {
	oldName := c.Param("name")
	if !h.registry.Contains(oldName) {
		c.JSON(http.StatusNotFound, gin.H{"error": "especialidade não encontrada"})
		return
	}
	var cfg domain.SpecialtyConfig
	if err := c.ShouldBindJSON(&cfg); err != nil || cfg.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nome da especialidade é obrigatório"})
		return
	}
	if cfg.Name != oldName && h.registry.Contains(cfg.Name) {
		c.JSON(http.StatusConflict, gin.H{"error": "já existe uma especialidade com esse nome"})
		return
	}
	cfg.Icon = icons.Lookup(cfg.Icon)
	if err := h.registry.Update(c.Request.Context(), oldName, cfg); err != nil {
		h.fail(c, "Failed to update specialty", err)
		return
	}
	if cfg.Name != oldName {
		if err := h.providers.RenameSpecialty(c.Request.Context(), oldName, cfg.Name); err != nil {
			h.fail(c, "Failed to cascade specialty rename", err)
			return
		}
	}
	c.JSON(http.StatusOK, cfg)
}

// DeleteSpecialty DELETE /specialties/:name
// Remove do catálogo e de todos os prestadores (cascata).
func (h *Handlers) DeleteSpecialty(c *gin.Context) {
	name := c.Param("name")
	if err := h.registry.Remove(c.Request.Context(), name); err != nil {
		h.fail(c, "Failed to remove specialty", err)
		return
	}
	if err := h.providers.RemoveSpecialty(c.Request.Context(), name); err != nil {
		h.fail(c, "Failed to cascade specialty removal", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Ícones ---

// ListIcons GET /icons
func (h *Handlers) ListIcons(c *gin.Context) {
	c.JSON(http.StatusOK, icons.Names())
}

// SuggestIcons GET /icons/suggest?specialty=
func (h *Handlers) SuggestIcons(c *gin.Context) {
	specialty := c.Query("specialty")
	if specialty == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "parâmetro specialty é obrigatório"})
		return
	}
	c.JSON(http.StatusOK, h.gemini.SuggestIcons(c.Request.Context(), specialty, icons.Names()))
}

// --- OCR ---

// ExtractFromImage POST /ocr/extract?engine=&mode=
// multipart: campo "image". mode=structured devolve rascunhos para
// revisão; mode=rawText devolve o texto extraído sem estruturação.
func (h *Handlers) ExtractFromImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "imagem não enviada"})
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "não foi possível ler a imagem"})
		return
	}
	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	// Uma nova submissão invalida qualquer sessão anterior pendente.
	h.session.Reset()

	if c.DefaultQuery("mode", "structured") == "rawText" {
		if err := h.session.SubmitRaw(c.Request.Context(), image, mimeType); err != nil {
			h.logger.Error("Raw text extraction failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": ocrFailureMessage})
			return
		}
		c.JSON(http.StatusOK, gin.H{"rawText": h.session.RawText()})
		return
	}

	engine := ocr.Engine(c.DefaultQuery("engine", string(ocr.EngineGemini)))
	if err := h.session.Submit(c.Request.Context(), image, mimeType, engine, h.registry.Names()); err != nil {
		h.logger.Error("Structured extraction failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": ocrFailureMessage})
		return
	}
	c.JSON(http.StatusOK, gin.H{"drafts": h.session.Drafts()})
}

// CommitDrafts POST /ocr/commit
// O corpo opcionalmente substitui os rascunhos pela versão editada na
// revisão antes de salvar.
func (h *Handlers) CommitDrafts(c *gin.Context) {
	if c.Request.ContentLength > 0 {
		var edited []domain.ProviderDraft
		if err := c.ShouldBindJSON(&edited); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "JSON inválido"})
			return
		}
		current := h.session.Drafts()
		for i := range current {
			if i < len(edited) {
				if err := h.session.UpdateDraft(i, edited[i]); err != nil {
					c.JSON(http.StatusConflict, gin.H{"error": "não há rascunhos em revisão"})
					return
				}
			}
		}
		for i := len(current) - 1; i >= len(edited); i-- {
			if err := h.session.DiscardDraft(i); err != nil {
				c.JSON(http.StatusConflict, gin.H{"error": "não há rascunhos em revisão"})
				return
			}
		}
	}

	created, err := h.session.Commit(c.Request.Context())
	if err != nil {
		if errors.Is(err, ocr.ErrInvalidTransition) {
			c.JSON(http.StatusConflict, gin.H{"error": "não há rascunhos em revisão"})
			return
		}
		h.fail(c, "Failed to commit drafts", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// --- auxiliares ---

func (h *Handlers) fail(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "erro interno"})
}

func decodeBody(c *gin.Context) (any, error) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return nil, err
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func importPayload(c *gin.Context) ([]byte, error) {
	if file, _, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		return io.ReadAll(file)
	}
	return io.ReadAll(c.Request.Body)
}
