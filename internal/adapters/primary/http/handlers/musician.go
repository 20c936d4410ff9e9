package handlers

import (
	"net/http"

	"ecm-catalogue-service/internal/adapters/primary/http/dto"
	"ecm-catalogue-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListMusicians(c *gin.Context) {
	musicians, err := h.catalogueSvc.ListMusicians(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list musicians failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListMusiciansResponse(musicians))
}

func (h *Handler) GetMusician(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid musician id"})
		return
	}

	m, err := h.catalogueSvc.GetMusician(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMusicianResponse(m))
}

func (h *Handler) FindMusician(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	m, err := h.catalogueSvc.FindMusicianByName(c.Request.Context(), name)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMusicianResponse(m))
}

func (h *Handler) CreateMusician(c *gin.Context) {
	var req dto.CreateMusicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.catalogueSvc.CreateMusician(c.Request.Context(), services.CreateMusicianRequest{
		Name:      req.Name,
		URL:       req.URL,
		Wiki:      req.Wiki,
		Biography: req.Biography,
	})
	if err != nil {
		log.WithError(err).WithField("name", req.Name).Error("create musician failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMusicianResponse(m))
}

func (h *Handler) DeleteMusician(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid musician id"})
		return
	}

	if err := h.catalogueSvc.DeleteMusician(c.Request.Context(), id); err != nil {
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
