package testutil

import (
	"ecm-catalogue-service/internal/core/domain"
)

// Catalogue builds linked entity graphs for tests without going through a
// store. Musicians are created on first mention.
type Catalogue struct {
	Musicians           []*domain.Musician
	Albums              []*domain.Album
	MusicianInstruments []*domain.MusicianInstrument
	byName              map[string]*domain.Musician
}

func NewCatalogue() *Catalogue {
	return &Catalogue{byName: make(map[string]*domain.Musician)}
}

// Musician returns the musician with the given name, adding it if needed.
func (c *Catalogue) Musician(name string) *domain.Musician {
	if m, ok := c.byName[name]; ok {
		return m
	}
	m := &domain.Musician{Name: name}
	c.byName[name] = m
	c.Musicians = append(c.Musicians, m)
	return m
}

// Album adds an album featuring the named musicians in billing order and
// links it back into each musician's album set.
func (c *Catalogue) Album(year int, recordNumber, name string, featured ...string) *domain.Album {
	a := &domain.Album{ReleaseYear: year, RecordNumber: recordNumber, AlbumName: name}
	for _, n := range featured {
		m := c.Musician(n)
		a.FeaturedMusicians = append(a.FeaturedMusicians, m)
		m.Albums = append(m.Albums, a)
	}
	c.Albums = append(c.Albums, a)
	return a
}

// Plays adds one musician-instrument record.
func (c *Catalogue) Plays(musician string, instruments ...string) *domain.MusicianInstrument {
	mi := &domain.MusicianInstrument{Musician: c.Musician(musician)}
	for _, name := range instruments {
		mi.Instruments = append(mi.Instruments, &domain.MusicalInstrument{Name: name})
	}
	c.MusicianInstruments = append(c.MusicianInstruments, mi)
	return mi
}
