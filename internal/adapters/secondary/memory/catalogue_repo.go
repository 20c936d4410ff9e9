// Package memory is a process-local catalogue store. It backs tests, the CLI
// over fixture files, and the server when no database is configured.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"ecm-catalogue-service/internal/adapters/secondary/records"
	"ecm-catalogue-service/internal/core/domain"
	ports "ecm-catalogue-service/internal/core/ports/output"
)

type catalogueRepo struct {
	mu   sync.RWMutex
	rows records.Set
}

// NewCatalogueRepository creates an empty in-memory catalogue.
func NewCatalogueRepository() ports.CatalogueRepository {
	return &catalogueRepo{}
}

// ============================================================================
// Snapshot reads
// ============================================================================

func (r *catalogueRepo) graph() (*records.Graph, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rows.Build()
}

func (r *catalogueRepo) ListMusicians(ctx context.Context) ([]*domain.Musician, error) {
	g, err := r.graph()
	if err != nil {
		return nil, err
	}
	return g.Musicians, nil
}

func (r *catalogueRepo) ListAlbums(ctx context.Context) ([]*domain.Album, error) {
	g, err := r.graph()
	if err != nil {
		return nil, err
	}
	return g.Albums, nil
}

func (r *catalogueRepo) ListMusicalInstruments(ctx context.Context) ([]*domain.MusicalInstrument, error) {
	g, err := r.graph()
	if err != nil {
		return nil, err
	}
	return g.Instruments, nil
}

func (r *catalogueRepo) ListMusicianInstruments(ctx context.Context) ([]*domain.MusicianInstrument, error) {
	g, err := r.graph()
	if err != nil {
		return nil, err
	}
	return g.MusicianInstruments, nil
}

func (r *catalogueRepo) GetMusician(ctx context.Context, id uuid.UUID) (*domain.Musician, error) {
	g, err := r.graph()
	if err != nil {
		return nil, err
	}
	m, ok := g.MusicianByID(id)
	if !ok {
		return nil, domain.ErrMusicianNotFound
	}
	return m, nil
}

func (r *catalogueRepo) FindMusicianByName(ctx context.Context, name string) (*domain.Musician, error) {
	g, err := r.graph()
	if err != nil {
		return nil, err
	}
	m, ok := g.MusicianByName(name)
	if !ok {
		return nil, domain.ErrMusicianNotFound
	}
	return m, nil
}

func (r *catalogueRepo) GetAlbum(ctx context.Context, id uuid.UUID) (*domain.Album, error) {
	g, err := r.graph()
	if err != nil {
		return nil, err
	}
	a, ok := g.AlbumByID(id)
	if !ok {
		return nil, domain.ErrAlbumNotFound
	}
	return a, nil
}

func (r *catalogueRepo) FindAlbumByName(ctx context.Context, name string) (*domain.Album, error) {
	g, err := r.graph()
	if err != nil {
		return nil, err
	}
	a, ok := g.AlbumByName(name)
	if !ok {
		return nil, domain.ErrAlbumNotFound
	}
	return a, nil
}

// ============================================================================
// Writes
// ============================================================================

func (r *catalogueRepo) SaveMusician(ctx context.Context, m *domain.Musician) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rows.Musicians {
		row := &r.rows.Musicians[i]
		if row.Name == m.Name {
			row.URL, row.Wiki, row.Biography = m.URL, m.Wiki, m.Biography
			m.ID = row.ID
			return nil
		}
	}
	r.insertMusician(m)
	return nil
}

func (r *catalogueRepo) SaveMusicalInstrument(ctx context.Context, i *domain.MusicalInstrument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureInstrument(i)
	return nil
}

func (r *catalogueRepo) SaveMusicianInstrument(ctx context.Context, mi *domain.MusicianInstrument) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLineup(mi)
	return nil
}

func (r *catalogueRepo) SaveAlbum(ctx context.Context, a *domain.Album) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := a.Key()
	idx := slices.IndexFunc(r.rows.Albums, func(row records.AlbumRow) bool {
		return row.ReleaseYear == key.ReleaseYear && row.RecordNumber == key.RecordNumber && row.AlbumName == key.AlbumName
	})
	if idx < 0 {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		r.rows.Albums = append(r.rows.Albums, records.AlbumRow{ID: a.ID})
		idx = len(r.rows.Albums) - 1
	}

	row := &r.rows.Albums[idx]
	a.ID = row.ID
	row.ReleaseYear = a.ReleaseYear
	row.RecordNumber = a.RecordNumber
	row.AlbumName = a.AlbumName
	row.URL = a.URL
	row.Style = a.Style
	row.ReleaseFormat = a.ReleaseFormat
	row.Tracks = slices.Clone(a.Tracks)

	r.rows.Features = slices.DeleteFunc(r.rows.Features, func(f records.FeatureRow) bool {
		return f.AlbumID == a.ID
	})
	credited := make(map[uuid.UUID]bool, len(a.FeaturedMusicians))
	for _, m := range a.FeaturedMusicians {
		id := r.ensureMusician(m)
		if credited[id] {
			continue
		}
		credited[id] = true
		r.rows.Features = append(r.rows.Features, records.FeatureRow{AlbumID: a.ID, MusicianID: id, Position: len(credited) - 1})
	}

	r.rows.AlbumLineups = slices.DeleteFunc(r.rows.AlbumLineups, func(l records.AlbumLineupRow) bool {
		return l.AlbumID == a.ID
	})
	attached := make(map[uuid.UUID]bool, len(a.Instruments))
	for _, mi := range a.Instruments {
		id := r.ensureLineup(mi)
		if attached[id] {
			continue
		}
		attached[id] = true
		r.rows.AlbumLineups = append(r.rows.AlbumLineups, records.AlbumLineupRow{AlbumID: a.ID, LineupID: id})
	}
	return nil
}

func (r *catalogueRepo) DeleteMusician(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.rows.Musicians)
	r.rows.Musicians = slices.DeleteFunc(r.rows.Musicians, func(m records.MusicianRow) bool { return m.ID == id })
	if len(r.rows.Musicians) == before {
		return domain.ErrMusicianNotFound
	}

	r.rows.Features = slices.DeleteFunc(r.rows.Features, func(f records.FeatureRow) bool { return f.MusicianID == id })

	dropped := make(map[uuid.UUID]bool)
	r.rows.Lineups = slices.DeleteFunc(r.rows.Lineups, func(l records.LineupRow) bool {
		if l.MusicianID == id {
			dropped[l.ID] = true
			return true
		}
		return false
	})
	r.rows.LineupItems = slices.DeleteFunc(r.rows.LineupItems, func(li records.LineupItemRow) bool { return dropped[li.LineupID] })
	r.rows.AlbumLineups = slices.DeleteFunc(r.rows.AlbumLineups, func(al records.AlbumLineupRow) bool { return dropped[al.LineupID] })
	return nil
}

func (r *catalogueRepo) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.rows.Albums)
	r.rows.Albums = slices.DeleteFunc(r.rows.Albums, func(a records.AlbumRow) bool { return a.ID == id })
	if len(r.rows.Albums) == before {
		return domain.ErrAlbumNotFound
	}
	r.rows.Features = slices.DeleteFunc(r.rows.Features, func(f records.FeatureRow) bool { return f.AlbumID == id })
	r.rows.AlbumLineups = slices.DeleteFunc(r.rows.AlbumLineups, func(al records.AlbumLineupRow) bool { return al.AlbumID == id })
	return nil
}

// ============================================================================
// Row helpers (caller holds the write lock)
// ============================================================================

func (r *catalogueRepo) insertMusician(m *domain.Musician) uuid.UUID {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	r.rows.Musicians = append(r.rows.Musicians, records.MusicianRow{
		ID: m.ID, Name: m.Name, URL: m.URL, Wiki: m.Wiki, Biography: m.Biography,
	})
	return m.ID
}

// ensureMusician returns the id of the musician with m's name, inserting it
// when absent. Existing details are left untouched.
func (r *catalogueRepo) ensureMusician(m *domain.Musician) uuid.UUID {
	for _, row := range r.rows.Musicians {
		if row.Name == m.Name {
			m.ID = row.ID
			return row.ID
		}
	}
	return r.insertMusician(m)
}

func (r *catalogueRepo) ensureInstrument(i *domain.MusicalInstrument) uuid.UUID {
	for _, row := range r.rows.Instruments {
		if row.Name == i.Name {
			i.ID = row.ID
			return row.ID
		}
	}
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.rows.Instruments = append(r.rows.Instruments, records.InstrumentRow{ID: i.ID, Name: i.Name})
	return i.ID
}

func (r *catalogueRepo) ensureLineup(mi *domain.MusicianInstrument) uuid.UUID {
	musicianID := r.ensureMusician(mi.Musician)
	instrumentIDs := make([]uuid.UUID, 0, len(mi.Instruments))
	for _, inst := range mi.Instruments {
		instrumentIDs = append(instrumentIDs, r.ensureInstrument(inst))
	}

	sig := mi.Signature()
	for _, row := range r.rows.Lineups {
		if row.Signature == sig {
			mi.ID = row.ID
			return row.ID
		}
	}

	if mi.ID == uuid.Nil {
		mi.ID = uuid.New()
	}
	r.rows.Lineups = append(r.rows.Lineups, records.LineupRow{ID: mi.ID, MusicianID: musicianID, Signature: sig})
	for _, instID := range instrumentIDs {
		r.rows.LineupItems = append(r.rows.LineupItems, records.LineupItemRow{LineupID: mi.ID, InstrumentID: instID})
	}
	return mi.ID
}
