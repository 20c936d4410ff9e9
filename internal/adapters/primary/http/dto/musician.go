package dto

import (
	"github.com/google/uuid"

	"ecm-catalogue-service/internal/core/domain"
)

// ============================================================================
// Request DTOs
// ============================================================================

type CreateMusicianRequest struct {
	Name      string `json:"name" binding:"required"`
	URL       string `json:"url"`
	Wiki      string `json:"wiki"`
	Biography string `json:"biography"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// MusicianRef identifies a musician without its album set, which keeps
// album and musician payloads from nesting into each other.
type MusicianRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type MusicianResponse struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	URL       string     `json:"url,omitempty"`
	Wiki      string     `json:"wiki,omitempty"`
	Biography string     `json:"biography,omitempty"`
	Albums    []AlbumRef `json:"albums"`
}

type ListMusiciansResponse struct {
	Items []MusicianResponse `json:"items"`
	Total int                `json:"total"`
}

// ============================================================================
// Converters
// ============================================================================

func ToMusicianRef(m *domain.Musician) MusicianRef {
	return MusicianRef{ID: m.ID, Name: m.Name}
}

func ToMusicianRefs(ms []*domain.Musician) []MusicianRef {
	out := make([]MusicianRef, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToMusicianRef(m))
	}
	return out
}

func ToMusicianResponse(m *domain.Musician) MusicianResponse {
	albums := make([]AlbumRef, 0, len(m.Albums))
	for _, a := range m.Albums {
		albums = append(albums, ToAlbumRef(a))
	}
	return MusicianResponse{
		ID:        m.ID,
		Name:      m.Name,
		URL:       m.URL,
		Wiki:      m.Wiki,
		Biography: m.Biography,
		Albums:    albums,
	}
}

func ToListMusiciansResponse(ms []*domain.Musician) ListMusiciansResponse {
	items := make([]MusicianResponse, 0, len(ms))
	for _, m := range ms {
		items = append(items, ToMusicianResponse(m))
	}
	return ListMusiciansResponse{Items: items, Total: len(items)}
}
