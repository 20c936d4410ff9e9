package ports

import (
	"context"

	"github.com/google/uuid"

	"ecm-catalogue-service/internal/core/domain"
)

// CatalogueReader hands out point-in-time snapshots of one entity kind.
// Every call loads afresh; no ordering is promised.
type CatalogueReader interface {
	ListMusicians(ctx context.Context) ([]*domain.Musician, error)
	ListAlbums(ctx context.Context) ([]*domain.Album, error)
	ListMusicalInstruments(ctx context.Context) ([]*domain.MusicalInstrument, error)
	ListMusicianInstruments(ctx context.Context) ([]*domain.MusicianInstrument, error)
}

// CatalogueRepository is the full persistence surface for catalogue entities.
// Save operations create or update by natural key and set the entity ID.
type CatalogueRepository interface {
	CatalogueReader

	SaveMusician(ctx context.Context, m *domain.Musician) error
	SaveAlbum(ctx context.Context, a *domain.Album) error
	SaveMusicalInstrument(ctx context.Context, i *domain.MusicalInstrument) error
	SaveMusicianInstrument(ctx context.Context, mi *domain.MusicianInstrument) error

	GetMusician(ctx context.Context, id uuid.UUID) (*domain.Musician, error)
	GetAlbum(ctx context.Context, id uuid.UUID) (*domain.Album, error)
	FindMusicianByName(ctx context.Context, name string) (*domain.Musician, error)
	FindAlbumByName(ctx context.Context, name string) (*domain.Album, error)

	DeleteMusician(ctx context.Context, id uuid.UUID) error
	DeleteAlbum(ctx context.Context, id uuid.UUID) error
}
