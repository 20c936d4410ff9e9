package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ecm-catalogue-service/internal/adapters/secondary/records"
	"ecm-catalogue-service/internal/core/domain"
	ports "ecm-catalogue-service/internal/core/ports/output"
)

type catalogueRepo struct {
	pool *pgxpool.Pool
}

// NewCatalogueRepository creates a catalogue repository backed by postgres.
func NewCatalogueRepository(pool *pgxpool.Pool) ports.CatalogueRepository {
	return &catalogueRepo{pool: pool}
}

// ============================================================================
// Snapshot reads
// ============================================================================

// graph reads every catalogue table inside one repeatable-read transaction so
// the linked result is a consistent point-in-time snapshot.
func (r *catalogueRepo) graph(ctx context.Context) (*records.Graph, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback(ctx)

	var set records.Set
	if set.Musicians, err = collect[records.MusicianRow](ctx, tx,
		`SELECT id, name, url, wiki, biography FROM musician ORDER BY name`); err != nil {
		return nil, fmt.Errorf("query musicians: %w", err)
	}
	if set.Albums, err = collect[records.AlbumRow](ctx, tx,
		`SELECT id, release_year, record_number, album_name, url, style, release_format, tracks
		 FROM album ORDER BY release_year, record_number, album_name`); err != nil {
		return nil, fmt.Errorf("query albums: %w", err)
	}
	if set.Features, err = collect[records.FeatureRow](ctx, tx,
		`SELECT album_id, musician_id, position FROM album_musician`); err != nil {
		return nil, fmt.Errorf("query album musicians: %w", err)
	}
	if set.Instruments, err = collect[records.InstrumentRow](ctx, tx,
		`SELECT id, name FROM instrument ORDER BY name`); err != nil {
		return nil, fmt.Errorf("query instruments: %w", err)
	}
	if set.Lineups, err = collect[records.LineupRow](ctx, tx,
		`SELECT id, musician_id, signature FROM musician_instrument ORDER BY signature`); err != nil {
		return nil, fmt.Errorf("query musician instruments: %w", err)
	}
	if set.LineupItems, err = collect[records.LineupItemRow](ctx, tx,
		`SELECT musician_instrument_id, instrument_id FROM musician_instrument_item`); err != nil {
		return nil, fmt.Errorf("query musician instrument items: %w", err)
	}
	if set.AlbumLineups, err = collect[records.AlbumLineupRow](ctx, tx,
		`SELECT album_id, musician_instrument_id FROM album_musician_instrument`); err != nil {
		return nil, fmt.Errorf("query album musician instruments: %w", err)
	}

	return set.Build()
}

func collect[T any](ctx context.Context, tx pgx.Tx, query string) ([]T, error) {
	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowToStructByPos[T])
}

func (r *catalogueRepo) ListMusicians(ctx context.Context) ([]*domain.Musician, error) {
	g, err := r.graph(ctx)
	if err != nil {
		return nil, err
	}
	return g.Musicians, nil
}

func (r *catalogueRepo) ListAlbums(ctx context.Context) ([]*domain.Album, error) {
	g, err := r.graph(ctx)
	if err != nil {
		return nil, err
	}
	return g.Albums, nil
}

func (r *catalogueRepo) ListMusicalInstruments(ctx context.Context) ([]*domain.MusicalInstrument, error) {
	g, err := r.graph(ctx)
	if err != nil {
		return nil, err
	}
	return g.Instruments, nil
}

func (r *catalogueRepo) ListMusicianInstruments(ctx context.Context) ([]*domain.MusicianInstrument, error) {
	g, err := r.graph(ctx)
	if err != nil {
		return nil, err
	}
	return g.MusicianInstruments, nil
}

func (r *catalogueRepo) GetMusician(ctx context.Context, id uuid.UUID) (*domain.Musician, error) {
	g, err := r.graph(ctx)
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
	g, err := r.graph(ctx)
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
	g, err := r.graph(ctx)
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
	g, err := r.graph(ctx)
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
	query := `
		INSERT INTO musician (id, name, url, wiki, biography)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE
		SET url = EXCLUDED.url, wiki = EXCLUDED.wiki, biography = EXCLUDED.biography, updated_at = NOW()
		RETURNING id
	`
	if err := r.pool.QueryRow(ctx, query, newID(m.ID), m.Name, m.URL, m.Wiki, m.Biography).Scan(&m.ID); err != nil {
		return fmt.Errorf("upsert musician: %w", err)
	}
	return nil
}

func (r *catalogueRepo) SaveMusicalInstrument(ctx context.Context, i *domain.MusicalInstrument) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return ensureInstrument(ctx, tx, i)
	})
}

func (r *catalogueRepo) SaveMusicianInstrument(ctx context.Context, mi *domain.MusicianInstrument) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		return ensureLineup(ctx, tx, mi)
	})
}

func (r *catalogueRepo) SaveAlbum(ctx context.Context, a *domain.Album) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		query := `
			INSERT INTO album (id, release_year, record_number, album_name, url, style, release_format, tracks)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (release_year, record_number, album_name) DO UPDATE
			SET url = EXCLUDED.url, style = EXCLUDED.style, release_format = EXCLUDED.release_format,
			    tracks = EXCLUDED.tracks, updated_at = NOW()
			RETURNING id
		`
		tracks := a.Tracks
		if tracks == nil {
			tracks = []string{}
		}
		err := tx.QueryRow(ctx, query,
			newID(a.ID), a.ReleaseYear, a.RecordNumber, a.AlbumName,
			a.URL, a.Style, a.ReleaseFormat, tracks,
		).Scan(&a.ID)
		if err != nil {
			return fmt.Errorf("upsert album: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM album_musician WHERE album_id = $1`, a.ID); err != nil {
			return fmt.Errorf("clear album musicians: %w", err)
		}
		position := 0
		for _, m := range a.FeaturedMusicians {
			if err := ensureMusician(ctx, tx, m); err != nil {
				return err
			}
			tag, err := tx.Exec(ctx, `
				INSERT INTO album_musician (album_id, musician_id, position)
				VALUES ($1, $2, $3)
				ON CONFLICT DO NOTHING
			`, a.ID, m.ID, position)
			if err != nil {
				return fmt.Errorf("insert album musician: %w", err)
			}
			if tag.RowsAffected() > 0 {
				position++
			}
		}

		if _, err := tx.Exec(ctx, `DELETE FROM album_musician_instrument WHERE album_id = $1`, a.ID); err != nil {
			return fmt.Errorf("clear album lineup: %w", err)
		}
		for _, mi := range a.Instruments {
			if err := ensureLineup(ctx, tx, mi); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `
				INSERT INTO album_musician_instrument (album_id, musician_instrument_id)
				VALUES ($1, $2)
				ON CONFLICT DO NOTHING
			`, a.ID, mi.ID)
			if err != nil {
				return fmt.Errorf("insert album lineup: %w", err)
			}
		}
		return nil
	})
}

// Featurings and instrument records go with the musician via ON DELETE CASCADE.
func (r *catalogueRepo) DeleteMusician(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM musician WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete musician: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrMusicianNotFound
	}
	return nil
}

func (r *catalogueRepo) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM album WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrAlbumNotFound
	}
	return nil
}

// ============================================================================
// Upsert helpers
// ============================================================================

// ensureMusician resolves m.ID by name, inserting a bare musician if needed.
// Existing details are not overwritten.
func ensureMusician(ctx context.Context, tx pgx.Tx, m *domain.Musician) error {
	query := `
		INSERT INTO musician (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	if err := tx.QueryRow(ctx, query, newID(m.ID), m.Name).Scan(&m.ID); err != nil {
		return fmt.Errorf("ensure musician %q: %w", m.Name, err)
	}
	return nil
}

func ensureInstrument(ctx context.Context, tx pgx.Tx, i *domain.MusicalInstrument) error {
	query := `
		INSERT INTO instrument (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	if err := tx.QueryRow(ctx, query, newID(i.ID), i.Name).Scan(&i.ID); err != nil {
		return fmt.Errorf("ensure instrument %q: %w", i.Name, err)
	}
	return nil
}

func ensureLineup(ctx context.Context, tx pgx.Tx, mi *domain.MusicianInstrument) error {
	if err := ensureMusician(ctx, tx, mi.Musician); err != nil {
		return err
	}
	for _, inst := range mi.Instruments {
		if err := ensureInstrument(ctx, tx, inst); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO musician_instrument (id, musician_id, signature) VALUES ($1, $2, $3)
		ON CONFLICT (signature) DO UPDATE SET signature = EXCLUDED.signature
		RETURNING id
	`
	if err := tx.QueryRow(ctx, query, newID(mi.ID), mi.Musician.ID, mi.Signature()).Scan(&mi.ID); err != nil {
		return fmt.Errorf("ensure musician instrument: %w", err)
	}
	for _, inst := range mi.Instruments {
		_, err := tx.Exec(ctx, `
			INSERT INTO musician_instrument_item (musician_instrument_id, instrument_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, mi.ID, inst.ID)
		if err != nil {
			return fmt.Errorf("insert musician instrument item: %w", err)
		}
	}
	return nil
}

func newID(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}
