package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"ecm-catalogue-service/internal/core/domain"
	ports "ecm-catalogue-service/internal/core/ports/output"
)

type CreateMusicianRequest struct {
	Name      string
	URL       string
	Wiki      string
	Biography string
}

type CreateAlbumRequest struct {
	ReleaseYear       int
	RecordNumber      string
	AlbumName         string
	URL               string
	Style             string
	ReleaseFormat     string
	Tracks            []string
	FeaturedMusicians []string
	Lineup            []LineupRequest
}

// LineupRequest names one musician and the instruments they play.
type LineupRequest struct {
	Musician    string
	Instruments []string
}

type CatalogueService struct {
	repo ports.CatalogueRepository
	now  func() time.Time
}

func NewCatalogueService(repo ports.CatalogueRepository) *CatalogueService {
	return &CatalogueService{repo: repo, now: time.Now}
}

// ============================================================================
// Musicians
// ============================================================================

func (s *CatalogueService) CreateMusician(ctx context.Context, req CreateMusicianRequest) (*domain.Musician, error) {
	m, err := domain.NewMusician(req.Name)
	if err != nil {
		return nil, err
	}
	m.URL = strings.TrimSpace(req.URL)
	m.Wiki = strings.TrimSpace(req.Wiki)
	m.Biography = req.Biography
	if err := m.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.SaveMusician(ctx, m); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"musician_id": m.ID, "name": m.Name}).Info("musician saved")

	return s.repo.GetMusician(ctx, m.ID)
}

func (s *CatalogueService) GetMusician(ctx context.Context, id uuid.UUID) (*domain.Musician, error) {
	return s.repo.GetMusician(ctx, id)
}

func (s *CatalogueService) FindMusicianByName(ctx context.Context, name string) (*domain.Musician, error) {
	return s.repo.FindMusicianByName(ctx, strings.TrimSpace(name))
}

func (s *CatalogueService) ListMusicians(ctx context.Context) ([]*domain.Musician, error) {
	return s.repo.ListMusicians(ctx)
}

func (s *CatalogueService) DeleteMusician(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteMusician(ctx, id); err != nil {
		return err
	}
	log.WithField("musician_id", id).Info("musician deleted")
	return nil
}

// ============================================================================
// Albums
// ============================================================================

// CreateAlbum validates and saves an album. Featured musicians and lineup
// entries are referenced by name; musicians not yet in the catalogue are
// added with just their name.
func (s *CatalogueService) CreateAlbum(ctx context.Context, req CreateAlbumRequest) (*domain.Album, error) {
	album := &domain.Album{
		ReleaseYear:   req.ReleaseYear,
		RecordNumber:  req.RecordNumber,
		AlbumName:     strings.TrimSpace(req.AlbumName),
		URL:           strings.TrimSpace(req.URL),
		Style:         req.Style,
		ReleaseFormat: req.ReleaseFormat,
		Tracks:        req.Tracks,
	}
	if err := album.Validate(s.now().Year()); err != nil {
		return nil, err
	}

	for _, name := range req.FeaturedMusicians {
		m, err := domain.NewMusician(name)
		if err != nil {
			return nil, fmt.Errorf("featured musician %q: %w", name, err)
		}
		album.FeaturedMusicians = append(album.FeaturedMusicians, m)
	}

	for _, line := range req.Lineup {
		mi, err := newLineup(line)
		if err != nil {
			return nil, err
		}
		album.Instruments = append(album.Instruments, mi)
	}

	if err := s.repo.SaveAlbum(ctx, album); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"album_id":      album.ID,
		"record_number": album.RecordNumber,
		"featured":      len(album.FeaturedMusicians),
	}).Info("album saved")

	return s.repo.GetAlbum(ctx, album.ID)
}

func (s *CatalogueService) GetAlbum(ctx context.Context, id uuid.UUID) (*domain.Album, error) {
	return s.repo.GetAlbum(ctx, id)
}

func (s *CatalogueService) FindAlbumByName(ctx context.Context, name string) (*domain.Album, error) {
	return s.repo.FindAlbumByName(ctx, strings.TrimSpace(name))
}

func (s *CatalogueService) ListAlbums(ctx context.Context) ([]*domain.Album, error) {
	return s.repo.ListAlbums(ctx)
}

func (s *CatalogueService) DeleteAlbum(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteAlbum(ctx, id); err != nil {
		return err
	}
	log.WithField("album_id", id).Info("album deleted")
	return nil
}

// ============================================================================
// Instruments
// ============================================================================

func (s *CatalogueService) CreateMusicalInstrument(ctx context.Context, name string) (*domain.MusicalInstrument, error) {
	inst, err := domain.NewMusicalInstrument(name)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveMusicalInstrument(ctx, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

func (s *CatalogueService) ListMusicalInstruments(ctx context.Context) ([]*domain.MusicalInstrument, error) {
	return s.repo.ListMusicalInstruments(ctx)
}

func (s *CatalogueService) CreateMusicianInstrument(ctx context.Context, req LineupRequest) (*domain.MusicianInstrument, error) {
	mi, err := newLineup(req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveMusicianInstrument(ctx, mi); err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"musician": mi.Musician.Name, "instruments": mi.InstrumentCount()}).Info("musician instrument saved")
	return mi, nil
}

func (s *CatalogueService) ListMusicianInstruments(ctx context.Context) ([]*domain.MusicianInstrument, error) {
	return s.repo.ListMusicianInstruments(ctx)
}

func newLineup(req LineupRequest) (*domain.MusicianInstrument, error) {
	m, err := domain.NewMusician(req.Musician)
	if err != nil {
		return nil, fmt.Errorf("lineup musician %q: %w", req.Musician, err)
	}
	instruments := make([]*domain.MusicalInstrument, 0, len(req.Instruments))
	for _, name := range req.Instruments {
		inst, err := domain.NewMusicalInstrument(name)
		if err != nil {
			return nil, fmt.Errorf("lineup instrument for %q: %w", req.Musician, err)
		}
		instruments = append(instruments, inst)
	}
	return domain.NewMusicianInstrument(m, instruments...)
}
