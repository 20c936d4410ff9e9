package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"ecm-catalogue-service/internal/core/domain"
)

// MockCatalogueRepo is a mock of CatalogueRepository.
type MockCatalogueRepo struct {
	mock.Mock
}

func (m *MockCatalogueRepo) ListMusicians(ctx context.Context) ([]*domain.Musician, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Musician), args.Error(1)
}

func (m *MockCatalogueRepo) ListAlbums(ctx context.Context) ([]*domain.Album, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Album), args.Error(1)
}

func (m *MockCatalogueRepo) ListMusicalInstruments(ctx context.Context) ([]*domain.MusicalInstrument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MusicalInstrument), args.Error(1)
}

func (m *MockCatalogueRepo) ListMusicianInstruments(ctx context.Context) ([]*domain.MusicianInstrument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MusicianInstrument), args.Error(1)
}

func (m *MockCatalogueRepo) SaveMusician(ctx context.Context, musician *domain.Musician) error {
	args := m.Called(ctx, musician)
	return args.Error(0)
}

func (m *MockCatalogueRepo) SaveAlbum(ctx context.Context, album *domain.Album) error {
	args := m.Called(ctx, album)
	return args.Error(0)
}

func (m *MockCatalogueRepo) SaveMusicalInstrument(ctx context.Context, inst *domain.MusicalInstrument) error {
	args := m.Called(ctx, inst)
	return args.Error(0)
}

func (m *MockCatalogueRepo) SaveMusicianInstrument(ctx context.Context, mi *domain.MusicianInstrument) error {
	args := m.Called(ctx, mi)
	return args.Error(0)
}

func (m *MockCatalogueRepo) GetMusician(ctx context.Context, id uuid.UUID) (*domain.Musician, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Musician), args.Error(1)
}

func (m *MockCatalogueRepo) GetAlbum(ctx context.Context, id uuid.UUID) (*domain.Album, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Album), args.Error(1)
}

func (m *MockCatalogueRepo) FindMusicianByName(ctx context.Context, name string) (*domain.Musician, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Musician), args.Error(1)
}

func (m *MockCatalogueRepo) FindAlbumByName(ctx context.Context, name string) (*domain.Album, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Album), args.Error(1)
}

func (m *MockCatalogueRepo) DeleteMusician(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCatalogueRepo) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMiningMetrics is a mock of MiningMetrics.
type MockMiningMetrics struct {
	mock.Mock
}

func (m *MockMiningMetrics) ObserveQuery(query string, elapsed time.Duration, results int, err error) {
	m.Called(query, elapsed, results, err)
}
