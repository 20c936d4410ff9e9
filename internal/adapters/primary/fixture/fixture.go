// Package fixture loads catalogue YAML files into a store through the
// catalogue service, so every entity goes through the same validation as an
// API request.
package fixture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"ecm-catalogue-service/internal/core/services"
)

type File struct {
	Musicians           []Musician `yaml:"musicians"`
	Instruments         []string   `yaml:"instruments"`
	Albums              []Album    `yaml:"albums"`
	MusicianInstruments []Lineup   `yaml:"musician_instruments"`
}

type Musician struct {
	Name      string `yaml:"name"`
	URL       string `yaml:"url"`
	Wiki      string `yaml:"wiki"`
	Biography string `yaml:"biography"`
}

type Album struct {
	Year          int      `yaml:"year"`
	RecordNumber  string   `yaml:"record_number"`
	Name          string   `yaml:"name"`
	URL           string   `yaml:"url"`
	Style         string   `yaml:"style"`
	ReleaseFormat string   `yaml:"release_format"`
	Featured      []string `yaml:"featured"`
	Tracks        []string `yaml:"tracks"`
	Lineup        []Lineup `yaml:"lineup"`
}

type Lineup struct {
	Musician    string   `yaml:"musician"`
	Instruments []string `yaml:"instruments"`
}

// Summary counts what a load saved.
type Summary struct {
	Musicians           int
	Instruments         int
	Albums              int
	MusicianInstruments int
}

// Parse decodes a catalogue file. Unknown keys are rejected.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode catalogue file: %w", err)
	}
	return &f, nil
}

func ReadFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalogue file: %w", err)
	}
	defer fh.Close()
	return Parse(fh)
}

// Load saves every entity in f. Musicians go first so that their details
// survive being referenced by albums later in the file. Loading stops at the
// first invalid entity.
func Load(ctx context.Context, svc *services.CatalogueService, f *File) (Summary, error) {
	var sum Summary

	for _, m := range f.Musicians {
		if _, err := svc.CreateMusician(ctx, services.CreateMusicianRequest{
			Name: m.Name, URL: m.URL, Wiki: m.Wiki, Biography: m.Biography,
		}); err != nil {
			return sum, fmt.Errorf("musician %q: %w", m.Name, err)
		}
		sum.Musicians++
	}

	for _, name := range f.Instruments {
		if _, err := svc.CreateMusicalInstrument(ctx, name); err != nil {
			return sum, fmt.Errorf("instrument %q: %w", name, err)
		}
		sum.Instruments++
	}

	for _, a := range f.Albums {
		lineup := make([]services.LineupRequest, 0, len(a.Lineup))
		for _, l := range a.Lineup {
			lineup = append(lineup, services.LineupRequest(l))
		}
		if _, err := svc.CreateAlbum(ctx, services.CreateAlbumRequest{
			ReleaseYear:       a.Year,
			RecordNumber:      a.RecordNumber,
			AlbumName:         a.Name,
			URL:               a.URL,
			Style:             a.Style,
			ReleaseFormat:     a.ReleaseFormat,
			Tracks:            a.Tracks,
			FeaturedMusicians: a.Featured,
			Lineup:            lineup,
		}); err != nil {
			return sum, fmt.Errorf("album %q (%s): %w", a.Name, a.RecordNumber, err)
		}
		sum.Albums++
	}

	for _, l := range f.MusicianInstruments {
		if _, err := svc.CreateMusicianInstrument(ctx, services.LineupRequest(l)); err != nil {
			return sum, fmt.Errorf("musician instrument for %q: %w", l.Musician, err)
		}
		sum.MusicianInstruments++
	}

	log.WithFields(log.Fields{
		"musicians":            sum.Musicians,
		"instruments":          sum.Instruments,
		"albums":               sum.Albums,
		"musician_instruments": sum.MusicianInstruments,
	}).Info("catalogue fixture loaded")

	return sum, nil
}

// LoadFile reads path and loads it.
func LoadFile(ctx context.Context, svc *services.CatalogueService, path string) (Summary, error) {
	f, err := ReadFile(path)
	if err != nil {
		return Summary{}, err
	}
	return Load(ctx, svc, f)
}
