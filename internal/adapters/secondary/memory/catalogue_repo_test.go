package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecm-catalogue-service/internal/core/domain"
)

func seededRepo(t *testing.T) (*catalogueRepo, *domain.Album) {
	t.Helper()
	repo := NewCatalogueRepository().(*catalogueRepo)
	ctx := context.Background()

	require.NoError(t, repo.SaveMusician(ctx, &domain.Musician{Name: "Keith Jarrett", Wiki: "https://en.wikipedia.org/wiki/Keith_Jarrett"}))

	jarrett := &domain.Musician{Name: "Keith Jarrett"}
	piano := &domain.MusicalInstrument{Name: "Piano"}
	album := &domain.Album{
		ReleaseYear:  1975,
		RecordNumber: "ECM 1064/65",
		AlbumName:    "The Köln Concert",
		Tracks:       []string{"Part I", "Part IIa"},
		FeaturedMusicians: []*domain.Musician{
			jarrett,
			{Name: "Jan Garbarek"},
			{Name: "Keith Jarrett"},
		},
		Instruments: []*domain.MusicianInstrument{
			plays(t, jarrett, piano),
		},
	}
	require.NoError(t, repo.SaveAlbum(ctx, album))
	return repo, album
}

func TestCatalogueRepo_SaveAlbum_LinksBothDirections(t *testing.T) {
	repo, saved := seededRepo(t)
	ctx := context.Background()

	album, err := repo.GetAlbum(ctx, saved.ID)
	require.NoError(t, err)
	require.Len(t, album.FeaturedMusicians, 2, "duplicate credits collapse")
	assert.Equal(t, "Keith Jarrett", album.FeaturedMusicians[0].Name)
	assert.Equal(t, "Jan Garbarek", album.FeaturedMusicians[1].Name)
	assert.Equal(t, []string{"Part I", "Part IIa"}, album.Tracks)

	jarrett := album.FeaturedMusicians[0]
	require.Len(t, jarrett.Albums, 1)
	assert.Same(t, album, jarrett.Albums[0])
	assert.Equal(t, "https://en.wikipedia.org/wiki/Keith_Jarrett", jarrett.Wiki, "featuring must not overwrite details")

	require.Len(t, album.Instruments, 1)
	assert.Same(t, jarrett, album.Instruments[0].Musician)
}

func TestCatalogueRepo_SaveAlbum_UpsertsByKey(t *testing.T) {
	repo, saved := seededRepo(t)
	ctx := context.Background()

	again := &domain.Album{
		ReleaseYear:       1975,
		RecordNumber:      "ECM 1064/65",
		AlbumName:         "The Köln Concert",
		Style:             "Jazz",
		FeaturedMusicians: []*domain.Musician{{Name: "Keith Jarrett"}},
	}
	require.NoError(t, repo.SaveAlbum(ctx, again))
	assert.Equal(t, saved.ID, again.ID)

	albums, err := repo.ListAlbums(ctx)
	require.NoError(t, err)
	require.Len(t, albums, 1)
	assert.Equal(t, "Jazz", albums[0].Style)
	assert.Len(t, albums[0].FeaturedMusicians, 1)
	assert.Empty(t, albums[0].Instruments)
}

func TestCatalogueRepo_SaveMusician_UpsertsByName(t *testing.T) {
	repo := NewCatalogueRepository()
	ctx := context.Background()

	first := &domain.Musician{Name: "Arvo Pärt"}
	require.NoError(t, repo.SaveMusician(ctx, first))
	second := &domain.Musician{Name: "Arvo Pärt", Biography: "Estonian composer"}
	require.NoError(t, repo.SaveMusician(ctx, second))

	assert.Equal(t, first.ID, second.ID)
	got, err := repo.FindMusicianByName(ctx, "Arvo Pärt")
	require.NoError(t, err)
	assert.Equal(t, "Estonian composer", got.Biography)
}

func TestCatalogueRepo_SaveMusicianInstrument_DedupesBySignature(t *testing.T) {
	repo := NewCatalogueRepository()
	ctx := context.Background()

	m := &domain.Musician{Name: "Jan Garbarek"}
	first := plays(t, m, &domain.MusicalInstrument{Name: "Tenor Saxophone"}, &domain.MusicalInstrument{Name: "Flute"})
	second := plays(t, m, &domain.MusicalInstrument{Name: "Flute"}, &domain.MusicalInstrument{Name: "Tenor Saxophone"})
	require.NoError(t, repo.SaveMusicianInstrument(ctx, first))
	require.NoError(t, repo.SaveMusicianInstrument(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	lineups, err := repo.ListMusicianInstruments(ctx)
	require.NoError(t, err)
	require.Len(t, lineups, 1)
	assert.Equal(t, []string{"Flute", "Tenor Saxophone"}, lineups[0].InstrumentNames())

	instruments, err := repo.ListMusicalInstruments(ctx)
	require.NoError(t, err)
	assert.Len(t, instruments, 2)
}

func TestCatalogueRepo_DeleteMusician_Cascades(t *testing.T) {
	repo, saved := seededRepo(t)
	ctx := context.Background()

	jarrett, err := repo.FindMusicianByName(ctx, "Keith Jarrett")
	require.NoError(t, err)
	require.NoError(t, repo.DeleteMusician(ctx, jarrett.ID))

	album, err := repo.GetAlbum(ctx, saved.ID)
	require.NoError(t, err)
	require.Len(t, album.FeaturedMusicians, 1)
	assert.Equal(t, "Jan Garbarek", album.FeaturedMusicians[0].Name)
	assert.Empty(t, album.Instruments)

	lineups, err := repo.ListMusicianInstruments(ctx)
	require.NoError(t, err)
	assert.Empty(t, lineups)

	_, err = repo.GetMusician(ctx, jarrett.ID)
	assert.ErrorIs(t, err, domain.ErrMusicianNotFound)
}

func TestCatalogueRepo_DeleteAlbum(t *testing.T) {
	repo, saved := seededRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.DeleteAlbum(ctx, saved.ID))

	musicians, err := repo.ListMusicians(ctx)
	require.NoError(t, err)
	require.Len(t, musicians, 2)
	for _, m := range musicians {
		assert.Empty(t, m.Albums)
	}

	assert.ErrorIs(t, repo.DeleteAlbum(ctx, saved.ID), domain.ErrAlbumNotFound)
}

func TestCatalogueRepo_NotFound(t *testing.T) {
	repo := NewCatalogueRepository()
	ctx := context.Background()

	_, err := repo.GetMusician(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrMusicianNotFound)
	_, err = repo.FindAlbumByName(ctx, "Nothing")
	assert.ErrorIs(t, err, domain.ErrAlbumNotFound)
	assert.ErrorIs(t, repo.DeleteMusician(ctx, uuid.New()), domain.ErrMusicianNotFound)
}

func TestCatalogueRepo_SnapshotsAreIndependent(t *testing.T) {
	repo, _ := seededRepo(t)
	ctx := context.Background()

	first, err := repo.ListAlbums(ctx)
	require.NoError(t, err)
	first[0].AlbumName = "mutated"

	second, err := repo.ListAlbums(ctx)
	require.NoError(t, err)
	assert.Equal(t, "The Köln Concert", second[0].AlbumName)
}

func plays(t *testing.T, m *domain.Musician, instruments ...*domain.MusicalInstrument) *domain.MusicianInstrument {
	t.Helper()
	mi, err := domain.NewMusicianInstrument(m, instruments...)
	require.NoError(t, err)
	return mi
}
