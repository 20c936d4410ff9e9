package handlers

import (
	"net/http"

	"ecm-catalogue-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListInstruments(c *gin.Context) {
	instruments, err := h.catalogueSvc.ListMusicalInstruments(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list instruments failed")
		mapDomainError(c, err)
		return
	}

	items := dto.ToInstrumentResponses(instruments)
	c.JSON(http.StatusOK, dto.ListInstrumentsResponse{Items: items, Total: len(items)})
}

func (h *Handler) CreateInstrument(c *gin.Context) {
	var req dto.CreateInstrumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	inst, err := h.catalogueSvc.CreateMusicalInstrument(c.Request.Context(), req.Name)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToInstrumentResponse(inst))
}

func (h *Handler) ListMusicianInstruments(c *gin.Context) {
	rows, err := h.catalogueSvc.ListMusicianInstruments(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list musician instruments failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListMusicianInstrumentsResponse(rows))
}

func (h *Handler) CreateMusicianInstrument(c *gin.Context) {
	var req dto.LineupDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mi, err := h.catalogueSvc.CreateMusicianInstrument(c.Request.Context(), req.ToServiceRequest())
	if err != nil {
		log.WithError(err).WithField("musician", req.Musician).Error("create musician instrument failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMusicianInstrumentResponse(mi))
}
