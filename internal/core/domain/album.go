package domain

import (
	"cmp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Album is a record released by the label. Identity is the triple of
// release year, record number and album name.
type Album struct {
	ID            uuid.UUID
	ReleaseYear   int
	RecordNumber  string   `validate:"required,ecmrecord"`
	AlbumName     string   `validate:"required,notblank,max=100"`
	URL           string   `validate:"omitempty,url"`
	Style         string
	ReleaseFormat string
	Tracks        []string `validate:"dive,notblank"`

	// FeaturedMusicians is in credited billing order.
	FeaturedMusicians []*Musician
	Instruments       []*MusicianInstrument
}

// AlbumKey is the identity of an album.
type AlbumKey struct {
	ReleaseYear  int
	RecordNumber string
	AlbumName    string
}

var albumFieldErrs = map[string]error{
	"Album.RecordNumber": ErrInvalidRecordNumber,
	"Album.AlbumName":    ErrInvalidAlbumName,
	"Album.URL":          ErrInvalidAlbumURL,
	"Album.Tracks":       ErrInvalidTracks,
}

func NewAlbum(releaseYear int, recordNumber, albumName string) (*Album, error) {
	a := &Album{
		ReleaseYear:  releaseYear,
		RecordNumber: recordNumber,
		AlbumName:    strings.TrimSpace(albumName),
	}
	if err := a.Validate(time.Now().Year()); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Album) Validate(currentYear int) error {
	if err := ValidateReleaseYear(a.ReleaseYear, currentYear); err != nil {
		return err
	}
	return checkStruct(a, albumFieldErrs)
}

func (a *Album) Key() AlbumKey {
	return AlbumKey{ReleaseYear: a.ReleaseYear, RecordNumber: a.RecordNumber, AlbumName: a.AlbumName}
}

// Features reports whether a musician with the given name is credited on a.
func (a *Album) Features(name string) bool {
	for _, m := range a.FeaturedMusicians {
		if m != nil && m.Name == name {
			return true
		}
	}
	return false
}

// CompareAlbums orders albums by release year, then record number, then name.
func CompareAlbums(a, b *Album) int {
	return cmp.Or(
		cmp.Compare(a.ReleaseYear, b.ReleaseYear),
		strings.Compare(a.RecordNumber, b.RecordNumber),
		strings.Compare(a.AlbumName, b.AlbumName),
	)
}
