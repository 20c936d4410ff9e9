// Package records holds the normalized row shape shared by every catalogue
// store and assembles it into a linked entity graph.
package records

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"ecm-catalogue-service/internal/core/domain"
)

type MusicianRow struct {
	ID        uuid.UUID
	Name      string
	URL       string
	Wiki      string
	Biography string
}

type AlbumRow struct {
	ID            uuid.UUID
	ReleaseYear   int
	RecordNumber  string
	AlbumName     string
	URL           string
	Style         string
	ReleaseFormat string
	Tracks        []string
}

// FeatureRow credits a musician on an album at a billing position.
type FeatureRow struct {
	AlbumID    uuid.UUID
	MusicianID uuid.UUID
	Position   int
}

type InstrumentRow struct {
	ID   uuid.UUID
	Name string
}

// LineupRow is one musician_instrument record.
type LineupRow struct {
	ID         uuid.UUID
	MusicianID uuid.UUID
	Signature  string
}

type LineupItemRow struct {
	LineupID     uuid.UUID
	InstrumentID uuid.UUID
}

// AlbumLineupRow attaches a musician_instrument record to an album.
type AlbumLineupRow struct {
	AlbumID  uuid.UUID
	LineupID uuid.UUID
}

// Set is a full copy of the catalogue tables.
type Set struct {
	Musicians    []MusicianRow
	Albums       []AlbumRow
	Features     []FeatureRow
	Instruments  []InstrumentRow
	Lineups      []LineupRow
	LineupItems  []LineupItemRow
	AlbumLineups []AlbumLineupRow
}

// Graph is the linked form of a Set. Entities are fresh for every Build.
type Graph struct {
	Musicians           []*domain.Musician
	Albums              []*domain.Album
	Instruments         []*domain.MusicalInstrument
	MusicianInstruments []*domain.MusicianInstrument
}

// Build links the rows. Musician.Albums and Album.FeaturedMusicians are both
// derived from Features, so they always agree.
func (s *Set) Build() (*Graph, error) {
	g := &Graph{
		Musicians:           make([]*domain.Musician, 0, len(s.Musicians)),
		Albums:              make([]*domain.Album, 0, len(s.Albums)),
		Instruments:         make([]*domain.MusicalInstrument, 0, len(s.Instruments)),
		MusicianInstruments: make([]*domain.MusicianInstrument, 0, len(s.Lineups)),
	}

	musicians := make(map[uuid.UUID]*domain.Musician, len(s.Musicians))
	for _, r := range s.Musicians {
		m := &domain.Musician{ID: r.ID, Name: r.Name, URL: r.URL, Wiki: r.Wiki, Biography: r.Biography}
		musicians[r.ID] = m
		g.Musicians = append(g.Musicians, m)
	}

	albums := make(map[uuid.UUID]*domain.Album, len(s.Albums))
	for _, r := range s.Albums {
		a := &domain.Album{
			ID:            r.ID,
			ReleaseYear:   r.ReleaseYear,
			RecordNumber:  r.RecordNumber,
			AlbumName:     r.AlbumName,
			URL:           r.URL,
			Style:         r.Style,
			ReleaseFormat: r.ReleaseFormat,
			Tracks:        slices.Clone(r.Tracks),
		}
		albums[r.ID] = a
		g.Albums = append(g.Albums, a)
	}

	features := slices.Clone(s.Features)
	slices.SortStableFunc(features, func(a, b FeatureRow) int {
		return cmp.Or(slices.Compare(a.AlbumID[:], b.AlbumID[:]), cmp.Compare(a.Position, b.Position))
	})
	for _, f := range features {
		a, ok := albums[f.AlbumID]
		if !ok {
			return nil, fmt.Errorf("%w: feature references album %s", domain.ErrMalformedSnapshot, f.AlbumID)
		}
		m, ok := musicians[f.MusicianID]
		if !ok {
			return nil, fmt.Errorf("%w: feature references musician %s", domain.ErrMalformedSnapshot, f.MusicianID)
		}
		a.FeaturedMusicians = append(a.FeaturedMusicians, m)
		m.Albums = append(m.Albums, a)
	}

	instruments := make(map[uuid.UUID]*domain.MusicalInstrument, len(s.Instruments))
	for _, r := range s.Instruments {
		i := &domain.MusicalInstrument{ID: r.ID, Name: r.Name}
		instruments[r.ID] = i
		g.Instruments = append(g.Instruments, i)
	}

	lineups := make(map[uuid.UUID]*domain.MusicianInstrument, len(s.Lineups))
	for _, r := range s.Lineups {
		m, ok := musicians[r.MusicianID]
		if !ok {
			return nil, fmt.Errorf("%w: musician instrument %s references musician %s", domain.ErrMalformedSnapshot, r.ID, r.MusicianID)
		}
		mi := &domain.MusicianInstrument{ID: r.ID, Musician: m}
		lineups[r.ID] = mi
		g.MusicianInstruments = append(g.MusicianInstruments, mi)
	}
	for _, r := range s.LineupItems {
		mi, ok := lineups[r.LineupID]
		if !ok {
			return nil, fmt.Errorf("%w: instrument item references musician instrument %s", domain.ErrMalformedSnapshot, r.LineupID)
		}
		inst, ok := instruments[r.InstrumentID]
		if !ok {
			return nil, fmt.Errorf("%w: instrument item references instrument %s", domain.ErrMalformedSnapshot, r.InstrumentID)
		}
		mi.Instruments = append(mi.Instruments, inst)
	}
	for _, mi := range g.MusicianInstruments {
		slices.SortFunc(mi.Instruments, domain.CompareInstruments)
	}

	for _, r := range s.AlbumLineups {
		a, ok := albums[r.AlbumID]
		if !ok {
			return nil, fmt.Errorf("%w: lineup references album %s", domain.ErrMalformedSnapshot, r.AlbumID)
		}
		mi, ok := lineups[r.LineupID]
		if !ok {
			return nil, fmt.Errorf("%w: album %s references musician instrument %s", domain.ErrMalformedSnapshot, r.AlbumID, r.LineupID)
		}
		a.Instruments = append(a.Instruments, mi)
	}

	return g, nil
}

// Clone returns a deep copy of the row slices.
func (s *Set) Clone() Set {
	out := Set{
		Musicians:    slices.Clone(s.Musicians),
		Albums:       make([]AlbumRow, len(s.Albums)),
		Features:     slices.Clone(s.Features),
		Instruments:  slices.Clone(s.Instruments),
		Lineups:      slices.Clone(s.Lineups),
		LineupItems:  slices.Clone(s.LineupItems),
		AlbumLineups: slices.Clone(s.AlbumLineups),
	}
	for i, a := range s.Albums {
		a.Tracks = slices.Clone(a.Tracks)
		out.Albums[i] = a
	}
	return out
}
