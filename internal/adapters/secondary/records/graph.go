package records

import (
	"github.com/google/uuid"

	"ecm-catalogue-service/internal/core/domain"
)

func (g *Graph) MusicianByID(id uuid.UUID) (*domain.Musician, bool) {
	for _, m := range g.Musicians {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

func (g *Graph) MusicianByName(name string) (*domain.Musician, bool) {
	for _, m := range g.Musicians {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

func (g *Graph) AlbumByID(id uuid.UUID) (*domain.Album, bool) {
	for _, a := range g.Albums {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// AlbumByName returns the first album with the given name. Album names are
// not unique on their own, so ties resolve to the earliest album by identity.
func (g *Graph) AlbumByName(name string) (*domain.Album, bool) {
	var found *domain.Album
	for _, a := range g.Albums {
		if a.AlbumName != name {
			continue
		}
		if found == nil || domain.CompareAlbums(a, found) < 0 {
			found = a
		}
	}
	return found, found != nil
}
