package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"ecm-catalogue-service/internal/adapters/secondary/records"
	"ecm-catalogue-service/internal/core/domain"
	ports "ecm-catalogue-service/internal/core/ports/output"
)

type catalogueRepo struct {
	db *sql.DB
}

// NewCatalogueRepository creates a catalogue repository on a database opened
// with Open.
func NewCatalogueRepository(db *sql.DB) ports.CatalogueRepository {
	return &catalogueRepo{db: db}
}

func (r *catalogueRepo) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// ============================================================================
// Snapshot reads
// ============================================================================

func (r *catalogueRepo) graph(ctx context.Context) (*records.Graph, error) {
	var set records.Set
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		if set.Musicians, err = collect(ctx, tx,
			`SELECT id, name, url, wiki, biography FROM musician ORDER BY name`,
			func(rows *sql.Rows) (records.MusicianRow, error) {
				var m records.MusicianRow
				err := rows.Scan(&m.ID, &m.Name, &m.URL, &m.Wiki, &m.Biography)
				return m, err
			}); err != nil {
			return fmt.Errorf("query musicians: %w", err)
		}
		if set.Albums, err = collect(ctx, tx,
			`SELECT id, release_year, record_number, album_name, url, style, release_format, tracks
			 FROM album ORDER BY release_year, record_number, album_name`,
			scanAlbum); err != nil {
			return fmt.Errorf("query albums: %w", err)
		}
		if set.Features, err = collect(ctx, tx,
			`SELECT album_id, musician_id, position FROM album_musician`,
			func(rows *sql.Rows) (records.FeatureRow, error) {
				var f records.FeatureRow
				err := rows.Scan(&f.AlbumID, &f.MusicianID, &f.Position)
				return f, err
			}); err != nil {
			return fmt.Errorf("query album musicians: %w", err)
		}
		if set.Instruments, err = collect(ctx, tx,
			`SELECT id, name FROM instrument ORDER BY name`,
			func(rows *sql.Rows) (records.InstrumentRow, error) {
				var i records.InstrumentRow
				err := rows.Scan(&i.ID, &i.Name)
				return i, err
			}); err != nil {
			return fmt.Errorf("query instruments: %w", err)
		}
		if set.Lineups, err = collect(ctx, tx,
			`SELECT id, musician_id, signature FROM musician_instrument ORDER BY signature`,
			func(rows *sql.Rows) (records.LineupRow, error) {
				var l records.LineupRow
				err := rows.Scan(&l.ID, &l.MusicianID, &l.Signature)
				return l, err
			}); err != nil {
			return fmt.Errorf("query musician instruments: %w", err)
		}
		if set.LineupItems, err = collect(ctx, tx,
			`SELECT musician_instrument_id, instrument_id FROM musician_instrument_item`,
			func(rows *sql.Rows) (records.LineupItemRow, error) {
				var li records.LineupItemRow
				err := rows.Scan(&li.LineupID, &li.InstrumentID)
				return li, err
			}); err != nil {
			return fmt.Errorf("query musician instrument items: %w", err)
		}
		if set.AlbumLineups, err = collect(ctx, tx,
			`SELECT album_id, musician_instrument_id FROM album_musician_instrument`,
			func(rows *sql.Rows) (records.AlbumLineupRow, error) {
				var al records.AlbumLineupRow
				err := rows.Scan(&al.AlbumID, &al.LineupID)
				return al, err
			}); err != nil {
			return fmt.Errorf("query album musician instruments: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set.Build()
}

func collect[T any](ctx context.Context, tx *sql.Tx, query string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

func scanAlbum(rows *sql.Rows) (records.AlbumRow, error) {
	var (
		a      records.AlbumRow
		tracks string
	)
	if err := rows.Scan(&a.ID, &a.ReleaseYear, &a.RecordNumber, &a.AlbumName, &a.URL, &a.Style, &a.ReleaseFormat, &tracks); err != nil {
		return a, err
	}
	if err := json.Unmarshal([]byte(tracks), &a.Tracks); err != nil {
		return a, fmt.Errorf("unmarshal tracks: %w", err)
	}
	return a, nil
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
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE
		SET url = excluded.url, wiki = excluded.wiki, biography = excluded.biography,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, newID(m.ID), m.Name, m.URL, m.Wiki, m.Biography).Scan(&m.ID); err != nil {
		return fmt.Errorf("upsert musician: %w", err)
	}
	return nil
}

func (r *catalogueRepo) SaveMusicalInstrument(ctx context.Context, i *domain.MusicalInstrument) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		return ensureInstrument(ctx, tx, i)
	})
}

func (r *catalogueRepo) SaveMusicianInstrument(ctx context.Context, mi *domain.MusicianInstrument) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		return ensureLineup(ctx, tx, mi)
	})
}

func (r *catalogueRepo) SaveAlbum(ctx context.Context, a *domain.Album) error {
	tracks := a.Tracks
	if tracks == nil {
		tracks = []string{}
	}
	tracksJSON, err := json.Marshal(tracks)
	if err != nil {
		return fmt.Errorf("marshal tracks: %w", err)
	}

	return r.withTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO album (id, release_year, record_number, album_name, url, style, release_format, tracks)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (release_year, record_number, album_name) DO UPDATE
			SET url = excluded.url, style = excluded.style, release_format = excluded.release_format,
			    tracks = excluded.tracks, updated_at = CURRENT_TIMESTAMP
			RETURNING id
		`
		err := tx.QueryRowContext(ctx, query,
			newID(a.ID), a.ReleaseYear, a.RecordNumber, a.AlbumName,
			a.URL, a.Style, a.ReleaseFormat, string(tracksJSON),
		).Scan(&a.ID)
		if err != nil {
			return fmt.Errorf("upsert album: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM album_musician WHERE album_id = ?`, a.ID); err != nil {
			return fmt.Errorf("clear album musicians: %w", err)
		}
		position := 0
		for _, m := range a.FeaturedMusicians {
			if err := ensureMusician(ctx, tx, m); err != nil {
				return err
			}
			res, err := tx.ExecContext(ctx,
				`INSERT INTO album_musician (album_id, musician_id, position) VALUES (?, ?, ?) ON CONFLICT DO NOTHING`,
				a.ID, m.ID, position)
			if err != nil {
				return fmt.Errorf("insert album musician: %w", err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				position++
			}
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM album_musician_instrument WHERE album_id = ?`, a.ID); err != nil {
			return fmt.Errorf("clear album lineup: %w", err)
		}
		for _, mi := range a.Instruments {
			if err := ensureLineup(ctx, tx, mi); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO album_musician_instrument (album_id, musician_instrument_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
				a.ID, mi.ID); err != nil {
				return fmt.Errorf("insert album lineup: %w", err)
			}
		}
		return nil
	})
}

func (r *catalogueRepo) DeleteMusician(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM musician WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete musician: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrMusicianNotFound
	}
	return nil
}

func (r *catalogueRepo) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM album WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrAlbumNotFound
	}
	return nil
}

// ============================================================================
// Upsert helpers
// ============================================================================

func ensureMusician(ctx context.Context, tx *sql.Tx, m *domain.Musician) error {
	query := `
		INSERT INTO musician (id, name) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET name = excluded.name
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, newID(m.ID), m.Name).Scan(&m.ID); err != nil {
		return fmt.Errorf("ensure musician %q: %w", m.Name, err)
	}
	return nil
}

func ensureInstrument(ctx context.Context, tx *sql.Tx, i *domain.MusicalInstrument) error {
	query := `
		INSERT INTO instrument (id, name) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET name = excluded.name
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, newID(i.ID), i.Name).Scan(&i.ID); err != nil {
		return fmt.Errorf("ensure instrument %q: %w", i.Name, err)
	}
	return nil
}

func ensureLineup(ctx context.Context, tx *sql.Tx, mi *domain.MusicianInstrument) error {
	if err := ensureMusician(ctx, tx, mi.Musician); err != nil {
		return err
	}
	for _, inst := range mi.Instruments {
		if err := ensureInstrument(ctx, tx, inst); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO musician_instrument (id, musician_id, signature) VALUES (?, ?, ?)
		ON CONFLICT (signature) DO UPDATE SET signature = excluded.signature
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, newID(mi.ID), mi.Musician.ID, mi.Signature()).Scan(&mi.ID); err != nil {
		return fmt.Errorf("ensure musician instrument: %w", err)
	}
	for _, inst := range mi.Instruments {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO musician_instrument_item (musician_instrument_id, instrument_id) VALUES (?, ?) ON CONFLICT DO NOTHING`,
			mi.ID, inst.ID); err != nil {
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
