package handlers

import (
	"ecm-catalogue-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	catalogueSvc *services.CatalogueService
	minerSvc     *services.MinerService
}

func New(catalogueSvc *services.CatalogueService, minerSvc *services.MinerService) *Handler {
	return &Handler{
		catalogueSvc: catalogueSvc,
		minerSvc:     minerSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Musicians
	r.GET("/musicians", h.ListMusicians)
	r.GET("/musicians/:id", h.GetMusician)
	r.GET("/musician", h.FindMusician)
	r.POST("/musicians", h.CreateMusician)
	r.DELETE("/musicians/:id", h.DeleteMusician)

	// Albums
	r.GET("/albums", h.ListAlbums)
	r.GET("/albums/:id", h.GetAlbum)
	r.GET("/album", h.FindAlbum)
	r.POST("/albums", h.CreateAlbum)
	r.DELETE("/albums/:id", h.DeleteAlbum)

	// Instruments
	r.GET("/instruments", h.ListInstruments)
	r.POST("/instruments", h.CreateInstrument)
	r.GET("/musician_instruments", h.ListMusicianInstruments)
	r.POST("/musician_instruments", h.CreateMusicianInstrument)

	// Mining
	mining := r.Group("/mining")
	mining.GET("/prolific_musicians", h.ProlificMusicians)
	mining.GET("/talented_musicians", h.TalentedMusicians)
	mining.GET("/social_musicians", h.SocialMusicians)
	mining.GET("/busiest_years", h.BusiestYears)
	mining.GET("/similar_albums", h.SimilarAlbums)
	mining.GET("/popular_instruments", h.PopularInstruments)
}
