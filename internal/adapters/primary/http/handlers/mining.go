package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"ecm-catalogue-service/internal/adapters/primary/http/dto"
	"ecm-catalogue-service/internal/core/domain"
	"ecm-catalogue-service/internal/core/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const defaultK = 10

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

func (h *Handler) ProlificMusicians(c *gin.Context) {
	k, err := intQuery(c, "k", defaultK)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, err := intQuery(c, "start_year", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	end, err := intQuery(c, "end_year", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	musicians, err := h.minerSvc.MostProlificMusicians(c.Request.Context(), k, start, end)
	if err != nil {
		log.WithError(err).Error("prolific musicians query failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRankingResponse(services.QueryProlificMusicians, k, dto.ToMusicianRefs(musicians)))
}

func (h *Handler) TalentedMusicians(c *gin.Context) {
	h.rankMusicians(c, services.QueryTalentedMusicians, h.minerSvc.MostTalentedMusicians)
}

func (h *Handler) SocialMusicians(c *gin.Context) {
	h.rankMusicians(c, services.QuerySocialMusicians, h.minerSvc.MostSocialMusicians)
}

func (h *Handler) rankMusicians(c *gin.Context, query string, rank func(ctx context.Context, k int) ([]*domain.Musician, error)) {
	k, err := intQuery(c, "k", defaultK)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	musicians, err := rank(c.Request.Context(), k)
	if err != nil {
		log.WithError(err).WithField("query", query).Error("mining query failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRankingResponse(query, k, dto.ToMusicianRefs(musicians)))
}

func (h *Handler) BusiestYears(c *gin.Context) {
	k, err := intQuery(c, "k", defaultK)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	years, err := h.minerSvc.BusiestYears(c.Request.Context(), k)
	if err != nil {
		log.WithError(err).Error("busiest years query failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRankingResponse(services.QueryBusiestYears, k, years))
}

// SimilarAlbums ranks albums against the album named by album_id. A missing
// album_id reaches the miner as a nil reference and is reported as 422.
func (h *Handler) SimilarAlbums(c *gin.Context) {
	k, err := intQuery(c, "k", defaultK)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var ref *domain.Album
	if raw := c.Query("album_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid album id"})
			return
		}
		if ref, err = h.catalogueSvc.GetAlbum(c.Request.Context(), id); err != nil {
			mapDomainError(c, err)
			return
		}
	}

	albums, err := h.minerSvc.MostSimilarAlbums(c.Request.Context(), k, ref)
	if err != nil {
		log.WithError(err).Error("similar albums query failed")
		mapDomainError(c, err)
		return
	}

	wanted := make(map[string]bool)
	if ref != nil {
		for _, m := range ref.FeaturedMusicians {
			wanted[m.Name] = true
		}
	}
	items := make([]dto.SimilarAlbum, 0, len(albums))
	for _, a := range albums {
		items = append(items, dto.SimilarAlbum{AlbumRef: dto.ToAlbumRef(a), Similarity: services.Similarity(wanted, a)})
	}

	c.JSON(http.StatusOK, dto.NewRankingResponse(services.QuerySimilarAlbums, k, items))
}

func (h *Handler) PopularInstruments(c *gin.Context) {
	k, err := intQuery(c, "k", defaultK)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	instruments, err := h.minerSvc.MostPopularInstruments(c.Request.Context(), k)
	if err != nil {
		log.WithError(err).Error("popular instruments query failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewRankingResponse(services.QueryPopularInstruments, k, dto.ToInstrumentResponses(instruments)))
}
