package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecm-catalogue-service/internal/core/domain"
	ports "ecm-catalogue-service/internal/core/ports/output"
)

func newTestRepo(t *testing.T) ports.CatalogueRepository {
	t.Helper()
	db, err := Open(context.Background(), MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewCatalogueRepository(db)
}

func TestCatalogueRepo_RoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveMusician(ctx, &domain.Musician{Name: "Keith Jarrett", URL: "https://keithjarrett.org"}))

	jarrett := &domain.Musician{Name: "Keith Jarrett"}
	album := &domain.Album{
		ReleaseYear:       1975,
		RecordNumber:      "ECM 1064/65",
		AlbumName:         "The Köln Concert",
		Tracks:            []string{"Part I", "Part IIa"},
		FeaturedMusicians: []*domain.Musician{jarrett, {Name: "Manfred Eicher"}, {Name: "Keith Jarrett"}},
		Instruments: []*domain.MusicianInstrument{
			plays(t, jarrett, &domain.MusicalInstrument{Name: "Piano"}),
		},
	}
	require.NoError(t, repo.SaveAlbum(ctx, album))

	got, err := repo.GetAlbum(ctx, album.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Part I", "Part IIa"}, got.Tracks)
	require.Len(t, got.FeaturedMusicians, 2)
	assert.Equal(t, "Keith Jarrett", got.FeaturedMusicians[0].Name)
	assert.Equal(t, "Manfred Eicher", got.FeaturedMusicians[1].Name)
	assert.Equal(t, "https://keithjarrett.org", got.FeaturedMusicians[0].URL)
	require.Len(t, got.Instruments, 1)
	assert.Equal(t, []string{"Piano"}, got.Instruments[0].InstrumentNames())

	m, err := repo.FindMusicianByName(ctx, "Keith Jarrett")
	require.NoError(t, err)
	require.Len(t, m.Albums, 1)
	assert.Equal(t, album.ID, m.Albums[0].ID)
}

func TestCatalogueRepo_EmptyTracks(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	album := &domain.Album{ReleaseYear: 1970, RecordNumber: "ECM 1001", AlbumName: "Free at Last"}
	require.NoError(t, repo.SaveAlbum(ctx, album))

	got, err := repo.FindAlbumByName(ctx, "Free at Last")
	require.NoError(t, err)
	assert.Empty(t, got.Tracks)
}

func TestCatalogueRepo_Upserts(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := &domain.Musician{Name: "Arvo Pärt"}
	require.NoError(t, repo.SaveMusician(ctx, first))
	second := &domain.Musician{Name: "Arvo Pärt", Biography: "Estonian composer"}
	require.NoError(t, repo.SaveMusician(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	m := &domain.Musician{Name: "Jan Garbarek"}
	a := plays(t, m, &domain.MusicalInstrument{Name: "Tenor Saxophone"}, &domain.MusicalInstrument{Name: "Flute"})
	b := plays(t, m, &domain.MusicalInstrument{Name: "Flute"}, &domain.MusicalInstrument{Name: "Tenor Saxophone"})
	require.NoError(t, repo.SaveMusicianInstrument(ctx, a))
	require.NoError(t, repo.SaveMusicianInstrument(ctx, b))
	assert.Equal(t, a.ID, b.ID)

	lineups, err := repo.ListMusicianInstruments(ctx)
	require.NoError(t, err)
	require.Len(t, lineups, 1)
	assert.Equal(t, 2, lineups[0].InstrumentCount())

	musicians, err := repo.ListMusicians(ctx)
	require.NoError(t, err)
	assert.Len(t, musicians, 2)
}

func TestCatalogueRepo_DeleteCascades(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	jarrett := &domain.Musician{Name: "Keith Jarrett"}
	album := &domain.Album{
		ReleaseYear:       1974,
		RecordNumber:      "ECM 1050",
		AlbumName:         "Belonging",
		FeaturedMusicians: []*domain.Musician{jarrett, {Name: "Jan Garbarek"}},
		Instruments: []*domain.MusicianInstrument{
			plays(t, jarrett, &domain.MusicalInstrument{Name: "Piano"}),
		},
	}
	require.NoError(t, repo.SaveAlbum(ctx, album))

	require.NoError(t, repo.DeleteMusician(ctx, jarrett.ID))
	got, err := repo.GetAlbum(ctx, album.ID)
	require.NoError(t, err)
	require.Len(t, got.FeaturedMusicians, 1)
	assert.Empty(t, got.Instruments)

	require.NoError(t, repo.DeleteAlbum(ctx, album.ID))
	_, err = repo.GetAlbum(ctx, album.ID)
	assert.ErrorIs(t, err, domain.ErrAlbumNotFound)
	assert.ErrorIs(t, repo.DeleteAlbum(ctx, album.ID), domain.ErrAlbumNotFound)
	assert.ErrorIs(t, repo.DeleteMusician(ctx, jarrett.ID), domain.ErrMusicianNotFound)

	instruments, err := repo.ListMusicalInstruments(ctx)
	require.NoError(t, err)
	assert.Len(t, instruments, 1, "instruments outlive their lineups")
}

func plays(t *testing.T, m *domain.Musician, instruments ...*domain.MusicalInstrument) *domain.MusicianInstrument {
	t.Helper()
	mi, err := domain.NewMusicianInstrument(m, instruments...)
	require.NoError(t, err)
	return mi
}
