package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Musician is an artist featured on at least one record in the catalogue.
// Identity is the name.
type Musician struct {
	ID        uuid.UUID
	Name      string `validate:"required,notblank,fullname"`
	URL       string `validate:"omitempty,url"`
	Wiki      string `validate:"omitempty,url"`
	Biography string

	// Albums the musician appears on. Unordered; derived from the same
	// featuring relation as Album.FeaturedMusicians.
	Albums []*Album
}

var musicianFieldErrs = map[string]error{
	"Musician.Name": ErrInvalidMusicianName,
	"Musician.URL":  ErrInvalidMusicianURL,
	"Musician.Wiki": ErrInvalidMusicianURL,
}

func NewMusician(name string) (*Musician, error) {
	m := &Musician{Name: strings.TrimSpace(name)}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Musician) Validate() error {
	return checkStruct(m, musicianFieldErrs)
}

func (m *Musician) Key() string {
	return m.Name
}

// CompareMusicians orders musicians by name.
func CompareMusicians(a, b *Musician) int {
	return strings.Compare(a.Name, b.Name)
}
