package httpapi

import "github.com/gin-gonic/gin"

// NewRouter monta o roteador da API local.
func NewRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		v1.GET("/providers", h.ListProviders)
		v1.POST("/providers", h.CreateProvider)
		v1.GET("/providers/export", h.ExportProviders)
		v1.GET("/providers/export.xlsx", h.ExportProvidersXLSX)
		v1.POST("/providers/import", h.ImportProviders)
		v1.GET("/providers/:id", h.GetProvider)
		v1.PUT("/providers/:id", h.UpdateProvider)
		v1.DELETE("/providers/:id", h.DeleteProvider)
		v1.POST("/providers/:id/favorite", h.SetFavorite)
		v1.POST("/providers/:id/history", h.AddServiceRecord)

		v1.GET("/specialties", h.ListSpecialties)
		v1.POST("/specialties", h.CreateSpecialty)
		v1.PUT("/specialties/:name", h.UpdateSpecialty)
		v1.DELETE("/specialties/:name", h.DeleteSpecialty)

		v1.GET("/icons", h.ListIcons)
		v1.GET("/icons/suggest", h.SuggestIcons)

		v1.POST("/ocr/extract", h.ExtractFromImage)
		v1.POST("/ocr/commit", h.CommitDrafts)
	}

	return r
}
