package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ecm-catalogue-service/internal/core/domain"
	"ecm-catalogue-service/internal/testutil"
)

func TestCatalogueService_CreateMusician(t *testing.T) {
	repo := new(testutil.MockCatalogueRepo)
	svc := NewCatalogueService(repo)

	id := uuid.New()
	repo.On("SaveMusician", mock.Anything, mock.AnythingOfType("*domain.Musician")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Musician).ID = id
		}).
		Return(nil)
	repo.On("GetMusician", mock.Anything, id).Return(&domain.Musician{ID: id, Name: "Keith Jarrett"}, nil)

	result, err := svc.CreateMusician(context.Background(), CreateMusicianRequest{
		Name: "  Keith Jarrett ",
		URL:  "https://www.ecmrecords.com/artists/1435045745",
	})
	require.NoError(t, err)
	assert.Equal(t, id, result.ID)
	repo.AssertExpectations(t)
}

func TestCatalogueService_CreateMusician_Invalid(t *testing.T) {
	repo := new(testutil.MockCatalogueRepo)
	svc := NewCatalogueService(repo)

	_, err := svc.CreateMusician(context.Background(), CreateMusicianRequest{Name: "Jarrett"})
	assert.ErrorIs(t, err, domain.ErrInvalidMusicianName)

	_, err = svc.CreateMusician(context.Background(), CreateMusicianRequest{Name: "Keith Jarrett", Wiki: "not a url"})
	assert.ErrorIs(t, err, domain.ErrInvalidMusicianURL)

	repo.AssertNotCalled(t, "SaveMusician", mock.Anything, mock.Anything)
}

func TestCatalogueService_CreateAlbum(t *testing.T) {
	repo := new(testutil.MockCatalogueRepo)
	svc := NewCatalogueService(repo)

	id := uuid.New()
	var saved *domain.Album
	repo.On("SaveAlbum", mock.Anything, mock.AnythingOfType("*domain.Album")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.Album)
			saved.ID = id
		}).
		Return(nil)
	repo.On("GetAlbum", mock.Anything, id).Return(&domain.Album{ID: id, AlbumName: "Belonging"}, nil)

	_, err := svc.CreateAlbum(context.Background(), CreateAlbumRequest{
		ReleaseYear:       1974,
		RecordNumber:      "ECM 1050",
		AlbumName:         "Belonging",
		Tracks:            []string{"Spiral Dance", "Blossom"},
		FeaturedMusicians: []string{"Keith Jarrett", "Jan Garbarek"},
		Lineup: []LineupRequest{
			{Musician: "Keith Jarrett", Instruments: []string{"Piano"}},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, []string{"Keith Jarrett", "Jan Garbarek"}, names(saved.FeaturedMusicians))
	require.Len(t, saved.Instruments, 1)
	assert.Equal(t, "Keith Jarrett|Piano", saved.Instruments[0].Signature())
}

func TestCatalogueService_CreateAlbum_Invalid(t *testing.T) {
	repo := new(testutil.MockCatalogueRepo)
	svc := NewCatalogueService(repo)
	ctx := context.Background()

	_, err := svc.CreateAlbum(ctx, CreateAlbumRequest{ReleaseYear: 1974, RecordNumber: "1050", AlbumName: "Belonging"})
	assert.ErrorIs(t, err, domain.ErrInvalidRecordNumber)

	_, err = svc.CreateAlbum(ctx, CreateAlbumRequest{ReleaseYear: 1899, RecordNumber: "ECM 1050", AlbumName: "Belonging"})
	assert.ErrorIs(t, err, domain.ErrInvalidReleaseYear)

	_, err = svc.CreateAlbum(ctx, CreateAlbumRequest{ReleaseYear: 1974, RecordNumber: "ECM 1050", AlbumName: "Belonging", Tracks: []string{"Blossom", " "}})
	assert.ErrorIs(t, err, domain.ErrInvalidTracks)

	_, err = svc.CreateAlbum(ctx, CreateAlbumRequest{
		ReleaseYear: 1974, RecordNumber: "ECM 1050", AlbumName: "Belonging",
		FeaturedMusicians: []string{"Jarrett"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMusicianName)

	_, err = svc.CreateAlbum(ctx, CreateAlbumRequest{
		ReleaseYear: 1974, RecordNumber: "ECM 1050", AlbumName: "Belonging",
		Lineup: []LineupRequest{{Musician: "Keith Jarrett"}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMusicianInstrument)

	repo.AssertNotCalled(t, "SaveAlbum", mock.Anything, mock.Anything)
}

func TestCatalogueService_CreateMusicianInstrument(t *testing.T) {
	repo := new(testutil.MockCatalogueRepo)
	svc := NewCatalogueService(repo)
	repo.On("SaveMusicianInstrument", mock.Anything, mock.AnythingOfType("*domain.MusicianInstrument")).Return(nil)

	mi, err := svc.CreateMusicianInstrument(context.Background(), LineupRequest{
		Musician:    "Keith Jarrett",
		Instruments: []string{"Piano", "Percussion", "Piano"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, mi.InstrumentCount())
	assert.Equal(t, "Keith Jarrett|Percussion,Piano", mi.Signature())
}

func TestCatalogueService_DeleteAlbum_NotFound(t *testing.T) {
	repo := new(testutil.MockCatalogueRepo)
	svc := NewCatalogueService(repo)
	id := uuid.New()
	repo.On("DeleteAlbum", mock.Anything, id).Return(domain.ErrAlbumNotFound)

	err := svc.DeleteAlbum(context.Background(), id)
	assert.ErrorIs(t, err, domain.ErrAlbumNotFound)
}
