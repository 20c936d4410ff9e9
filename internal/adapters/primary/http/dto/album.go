package dto

import (
	"github.com/google/uuid"

	"ecm-catalogue-service/internal/core/domain"
	"ecm-catalogue-service/internal/core/services"
)

// ============================================================================
// Request DTOs
// ============================================================================

type CreateAlbumRequest struct {
	ReleaseYear       int         `json:"release_year" binding:"required"`
	RecordNumber      string      `json:"record_number" binding:"required"`
	AlbumName         string      `json:"album_name" binding:"required"`
	URL               string      `json:"url"`
	Style             string      `json:"style"`
	ReleaseFormat     string      `json:"release_format"`
	Tracks            []string    `json:"tracks"`
	FeaturedMusicians []string    `json:"featured_musicians"`
	Lineup            []LineupDTO `json:"lineup" binding:"omitempty,dive"`
}

type LineupDTO struct {
	Musician    string   `json:"musician" binding:"required"`
	Instruments []string `json:"instruments" binding:"required,min=1"`
}

// ============================================================================
// Response DTOs
// ============================================================================

type AlbumRef struct {
	ID           uuid.UUID `json:"id"`
	ReleaseYear  int       `json:"release_year"`
	RecordNumber string    `json:"record_number"`
	AlbumName    string    `json:"album_name"`
}

type AlbumResponse struct {
	ID                uuid.UUID                    `json:"id"`
	ReleaseYear       int                          `json:"release_year"`
	RecordNumber      string                       `json:"record_number"`
	AlbumName         string                       `json:"album_name"`
	URL               string                       `json:"url,omitempty"`
	Style             string                       `json:"style,omitempty"`
	ReleaseFormat     string                       `json:"release_format,omitempty"`
	Tracks            []string                     `json:"tracks"`
	FeaturedMusicians []MusicianRef                `json:"featured_musicians"`
	Lineup            []MusicianInstrumentResponse `json:"lineup"`
}

type ListAlbumsResponse struct {
	Items []AlbumResponse `json:"items"`
	Total int             `json:"total"`
}

// ============================================================================
// Converters
// ============================================================================

func (r CreateAlbumRequest) ToServiceRequest() services.CreateAlbumRequest {
	lineup := make([]services.LineupRequest, 0, len(r.Lineup))
	for _, l := range r.Lineup {
		lineup = append(lineup, l.ToServiceRequest())
	}
	return services.CreateAlbumRequest{
		ReleaseYear:       r.ReleaseYear,
		RecordNumber:      r.RecordNumber,
		AlbumName:         r.AlbumName,
		URL:               r.URL,
		Style:             r.Style,
		ReleaseFormat:     r.ReleaseFormat,
		Tracks:            r.Tracks,
		FeaturedMusicians: r.FeaturedMusicians,
		Lineup:            lineup,
	}
}

func (l LineupDTO) ToServiceRequest() services.LineupRequest {
	return services.LineupRequest{Musician: l.Musician, Instruments: l.Instruments}
}

func ToAlbumRef(a *domain.Album) AlbumRef {
	return AlbumRef{ID: a.ID, ReleaseYear: a.ReleaseYear, RecordNumber: a.RecordNumber, AlbumName: a.AlbumName}
}

func ToAlbumRefs(as []*domain.Album) []AlbumRef {
	out := make([]AlbumRef, 0, len(as))
	for _, a := range as {
		out = append(out, ToAlbumRef(a))
	}
	return out
}

func ToAlbumResponse(a *domain.Album) AlbumResponse {
	tracks := a.Tracks
	if tracks == nil {
		tracks = []string{}
	}
	lineup := make([]MusicianInstrumentResponse, 0, len(a.Instruments))
	for _, mi := range a.Instruments {
		lineup = append(lineup, ToMusicianInstrumentResponse(mi))
	}
	return AlbumResponse{
		ID:                a.ID,
		ReleaseYear:       a.ReleaseYear,
		RecordNumber:      a.RecordNumber,
		AlbumName:         a.AlbumName,
		URL:               a.URL,
		Style:             a.Style,
		ReleaseFormat:     a.ReleaseFormat,
		Tracks:            tracks,
		FeaturedMusicians: ToMusicianRefs(a.FeaturedMusicians),
		Lineup:            lineup,
	}
}

func ToListAlbumsResponse(as []*domain.Album) ListAlbumsResponse {
	items := make([]AlbumResponse, 0, len(as))
	for _, a := range as {
		items = append(items, ToAlbumResponse(a))
	}
	return ListAlbumsResponse{Items: items, Total: len(items)}
}
