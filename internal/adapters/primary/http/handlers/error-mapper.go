package handlers

import (
	"errors"
	"net/http"

	"ecm-catalogue-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func mapDomainError(c *gin.Context, err error) {
	switch {
	// Not found errors
	case errors.Is(err, domain.ErrMusicianNotFound),
		errors.Is(err, domain.ErrAlbumNotFound),
		errors.Is(err, domain.ErrInstrumentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidMusicianName),
		errors.Is(err, domain.ErrInvalidMusicianURL),
		errors.Is(err, domain.ErrInvalidRecordNumber),
		errors.Is(err, domain.ErrInvalidAlbumName),
		errors.Is(err, domain.ErrInvalidReleaseYear),
		errors.Is(err, domain.ErrInvalidTracks),
		errors.Is(err, domain.ErrInvalidAlbumURL),
		errors.Is(err, domain.ErrInvalidInstrumentName),
		errors.Is(err, domain.ErrInvalidMusicianInstrument),
		errors.Is(err, domain.ErrInvalidEntity):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	// Mining contract violations
	case errors.Is(err, domain.ErrReferenceAlbumRequired),
		errors.Is(err, domain.ErrReferenceAlbumEmpty):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
