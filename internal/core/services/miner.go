package services

import (
	"cmp"
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"ecm-catalogue-service/internal/core/domain"
	ports "ecm-catalogue-service/internal/core/ports/output"
)

// Query names used for logging and metrics.
const (
	QueryProlificMusicians  = "prolific_musicians"
	QueryTalentedMusicians  = "talented_musicians"
	QuerySocialMusicians    = "social_musicians"
	QueryBusiestYears       = "busiest_years"
	QuerySimilarAlbums      = "similar_albums"
	QueryPopularInstruments = "popular_instruments"
)

// MinerService answers ranking queries over a catalogue snapshot. It keeps no
// state between calls: every query loads the entities it needs through the
// reader and ranks them on the spot.
//
// Invalid k or year bounds yield an empty result, never an error. Errors are
// reserved for a failing reader and for contract violations.
type MinerService struct {
	reader  ports.CatalogueReader
	metrics ports.MiningMetrics
	now     func() time.Time
}

type MinerOption func(*MinerService)

// WithClock sets the source of the current year used for window validation.
func WithClock(now func() time.Time) MinerOption {
	return func(s *MinerService) { s.now = now }
}

func WithMetrics(m ports.MiningMetrics) MinerOption {
	return func(s *MinerService) { s.metrics = m }
}

func NewMinerService(reader ports.CatalogueReader, opts ...MinerOption) *MinerService {
	s := &MinerService{reader: reader, metrics: noopMetrics{}, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ============================================================================
// Queries
// ============================================================================

// MostProlificMusicians ranks musicians by the number of albums released in
// [startYear, endYear]. A bound <= 0 leaves that side open. Musicians with no
// album in the window are never returned.
func (s *MinerService) MostProlificMusicians(ctx context.Context, k, startYear, endYear int) (result []*domain.Musician, err error) {
	defer s.observe(QueryProlificMusicians, k, time.Now(), func() int { return len(result) }, &err)

	if k <= 0 || !s.validWindow(startYear, endYear) {
		return []*domain.Musician{}, nil
	}

	musicians, err := s.reader.ListMusicians(ctx)
	if err != nil {
		return nil, fmt.Errorf("load musicians: %w", err)
	}

	groups := newScoreGroups[int, *domain.Musician]()
	for _, m := range musicians {
		if m == nil {
			return nil, fmt.Errorf("%w: nil musician", domain.ErrMalformedSnapshot)
		}
		counted := make(map[domain.AlbumKey]bool, len(m.Albums))
		for _, a := range m.Albums {
			if a == nil || !inWindow(a.ReleaseYear, startYear, endYear) {
				continue
			}
			counted[a.Key()] = true
		}
		if len(counted) == 0 {
			continue
		}
		groups.add(len(counted), m)
	}

	return groups.topK(k, domain.CompareMusicians), nil
}

// MostTalentedMusicians ranks musician-instrument records by how many
// distinct instruments they hold and returns the owning musicians. Records
// are not merged per musician, so a musician with several records may appear
// more than once.
func (s *MinerService) MostTalentedMusicians(ctx context.Context, k int) (result []*domain.Musician, err error) {
	defer s.observe(QueryTalentedMusicians, k, time.Now(), func() int { return len(result) }, &err)

	if k <= 0 {
		return []*domain.Musician{}, nil
	}

	rows, err := s.reader.ListMusicianInstruments(ctx)
	if err != nil {
		return nil, fmt.Errorf("load musician instruments: %w", err)
	}

	groups := newScoreGroups[int, *domain.MusicianInstrument]()
	for _, mi := range rows {
		if mi == nil || mi.Musician == nil {
			return nil, fmt.Errorf("%w: musician instrument without musician", domain.ErrMalformedSnapshot)
		}
		groups.add(mi.InstrumentCount(), mi)
	}

	ranked := groups.topK(k, func(a, b *domain.MusicianInstrument) int {
		return cmp.Or(
			domain.CompareMusicians(a.Musician, b.Musician),
			strings.Compare(a.Signature(), b.Signature()),
		)
	})

	result = make([]*domain.Musician, 0, len(ranked))
	for _, mi := range ranked {
		result = append(result, mi.Musician)
	}
	return result, nil
}

// MostSocialMusicians ranks musicians by the number of distinct other
// musicians credited alongside them on any album.
func (s *MinerService) MostSocialMusicians(ctx context.Context, k int) (result []*domain.Musician, err error) {
	defer s.observe(QuerySocialMusicians, k, time.Now(), func() int { return len(result) }, &err)

	if k <= 0 {
		return []*domain.Musician{}, nil
	}

	musicians, err := s.reader.ListMusicians(ctx)
	if err != nil {
		return nil, fmt.Errorf("load musicians: %w", err)
	}

	groups := newScoreGroups[int, *domain.Musician]()
	for _, m := range musicians {
		if m == nil {
			return nil, fmt.Errorf("%w: nil musician", domain.ErrMalformedSnapshot)
		}
		groups.add(len(collaborators(m)), m)
	}

	return groups.topK(k, domain.CompareMusicians), nil
}

// BusiestYears ranks release years by the number of albums released in them.
// Years without albums never appear.
func (s *MinerService) BusiestYears(ctx context.Context, k int) (result []int, err error) {
	defer s.observe(QueryBusiestYears, k, time.Now(), func() int { return len(result) }, &err)

	if k <= 0 {
		return []int{}, nil
	}

	albums, err := s.reader.ListAlbums(ctx)
	if err != nil {
		return nil, fmt.Errorf("load albums: %w", err)
	}

	perYear := make(map[int]map[domain.AlbumKey]bool)
	for _, a := range albums {
		if a == nil {
			return nil, fmt.Errorf("%w: nil album", domain.ErrMalformedSnapshot)
		}
		if perYear[a.ReleaseYear] == nil {
			perYear[a.ReleaseYear] = make(map[domain.AlbumKey]bool)
		}
		perYear[a.ReleaseYear][a.Key()] = true
	}

	groups := newScoreGroups[int, int]()
	for year, released := range perYear {
		groups.add(len(released), year)
	}

	return groups.topK(k, cmp.Compare[int]), nil
}

// MostSimilarAlbums ranks every album by the share of ref's featured
// musicians it also features. ref scores 1.0 against itself and is not
// excluded from the candidates.
func (s *MinerService) MostSimilarAlbums(ctx context.Context, k int, ref *domain.Album) (result []*domain.Album, err error) {
	defer s.observe(QuerySimilarAlbums, k, time.Now(), func() int { return len(result) }, &err)

	if k <= 0 {
		return []*domain.Album{}, nil
	}
	if ref == nil {
		return nil, domain.ErrReferenceAlbumRequired
	}

	wanted := musicianNames(ref.FeaturedMusicians)
	if len(wanted) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrReferenceAlbumEmpty, ref.RecordNumber)
	}

	albums, err := s.reader.ListAlbums(ctx)
	if err != nil {
		return nil, fmt.Errorf("load albums: %w", err)
	}

	groups := newScoreGroups[float64, *domain.Album]()
	for _, a := range albums {
		if a == nil {
			return nil, fmt.Errorf("%w: nil album", domain.ErrMalformedSnapshot)
		}
		groups.add(Similarity(wanted, a), a)
	}

	return groups.topK(k, domain.CompareAlbums), nil
}

// MostPopularInstruments ranks instruments by how many musician-instrument
// records include them. Each instrument appears at most once.
func (s *MinerService) MostPopularInstruments(ctx context.Context, k int) (result []*domain.MusicalInstrument, err error) {
	defer s.observe(QueryPopularInstruments, k, time.Now(), func() int { return len(result) }, &err)

	if k <= 0 {
		return []*domain.MusicalInstrument{}, nil
	}

	rows, err := s.reader.ListMusicianInstruments(ctx)
	if err != nil {
		return nil, fmt.Errorf("load musician instruments: %w", err)
	}

	counts := make(map[string]int)
	first := make(map[string]*domain.MusicalInstrument)
	for _, mi := range rows {
		if mi == nil {
			return nil, fmt.Errorf("%w: nil musician instrument", domain.ErrMalformedSnapshot)
		}
		seen := make(map[string]bool, len(mi.Instruments))
		for _, inst := range mi.Instruments {
			if inst == nil || seen[inst.Name] {
				continue
			}
			seen[inst.Name] = true
			counts[inst.Name]++
			if _, ok := first[inst.Name]; !ok {
				first[inst.Name] = inst
			}
		}
	}

	groups := newScoreGroups[int, *domain.MusicalInstrument]()
	for name, n := range counts {
		groups.add(n, first[name])
	}

	return groups.topK(k, domain.CompareInstruments), nil
}

// ============================================================================
// Scoring helpers
// ============================================================================

// Similarity is the containment ratio |featured(a) ∩ wanted| / |wanted|.
// wanted must be non-empty.
func Similarity(wanted map[string]bool, a *domain.Album) float64 {
	shared := 0
	for name := range musicianNames(a.FeaturedMusicians) {
		if wanted[name] {
			shared++
		}
	}
	return float64(shared) / float64(len(wanted))
}

func musicianNames(ms []*domain.Musician) map[string]bool {
	names := make(map[string]bool, len(ms))
	for _, m := range ms {
		if m != nil {
			names[m.Name] = true
		}
	}
	return names
}

// collaborators returns the names of everyone credited with m, excluding m.
func collaborators(m *domain.Musician) map[string]bool {
	names := make(map[string]bool)
	for _, a := range m.Albums {
		if a == nil {
			continue
		}
		for _, other := range a.FeaturedMusicians {
			if other != nil && other.Name != m.Name {
				names[other.Name] = true
			}
		}
	}
	return names
}

func (s *MinerService) validWindow(startYear, endYear int) bool {
	current := s.now().Year()
	if startYear > 0 && domain.ValidateReleaseYear(startYear, current) != nil {
		return false
	}
	if endYear > 0 && domain.ValidateReleaseYear(endYear, current) != nil {
		return false
	}
	if startYear > 0 && endYear > 0 && startYear > endYear {
		return false
	}
	return true
}

func inWindow(year, startYear, endYear int) bool {
	if startYear > 0 && year < startYear {
		return false
	}
	if endYear > 0 && year > endYear {
		return false
	}
	return true
}

// ============================================================================
// Instrumentation
// ============================================================================

func (s *MinerService) observe(query string, k int, start time.Time, results func() int, errp *error) {
	elapsed := time.Since(start)
	n := results()
	s.metrics.ObserveQuery(query, elapsed, n, *errp)

	entry := log.WithFields(log.Fields{
		"query":      query,
		"k":          k,
		"results":    n,
		"latency_ms": elapsed.Milliseconds(),
	})
	if *errp != nil {
		entry.WithError(*errp).Warn("mining query failed")
		return
	}
	entry.Debug("mining query completed")
}

type noopMetrics struct{}

func (noopMetrics) ObserveQuery(string, time.Duration, int, error) {}
