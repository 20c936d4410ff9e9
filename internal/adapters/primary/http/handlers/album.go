package handlers

import (
	"net/http"

	"ecm-catalogue-service/internal/adapters/primary/http/dto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListAlbums(c *gin.Context) {
	albums, err := h.catalogueSvc.ListAlbums(c.Request.Context())
	if err != nil {
		log.WithError(err).Error("list albums failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListAlbumsResponse(albums))
}

func (h *Handler) GetAlbum(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid album id"})
		return
	}

	a, err := h.catalogueSvc.GetAlbum(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAlbumResponse(a))
}

func (h *Handler) FindAlbum(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	a, err := h.catalogueSvc.FindAlbumByName(c.Request.Context(), name)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAlbumResponse(a))
}

func (h *Handler) CreateAlbum(c *gin.Context) {
	var req dto.CreateAlbumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := h.catalogueSvc.CreateAlbum(c.Request.Context(), req.ToServiceRequest())
	if err != nil {
		log.WithError(err).WithField("record_number", req.RecordNumber).Error("create album failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAlbumResponse(a))
}

func (h *Handler) DeleteAlbum(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid album id"})
		return
	}

	if err := h.catalogueSvc.DeleteAlbum(c.Request.Context(), id); err != nil {
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
