package domain

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// MusicalInstrument is identified by its name.
type MusicalInstrument struct {
	ID   uuid.UUID
	Name string `validate:"required,notblank"`
}

var instrumentFieldErrs = map[string]error{
	"MusicalInstrument.Name": ErrInvalidInstrumentName,
}

func NewMusicalInstrument(name string) (*MusicalInstrument, error) {
	i := &MusicalInstrument{Name: strings.TrimSpace(name)}
	if err := checkStruct(i, instrumentFieldErrs); err != nil {
		return nil, err
	}
	return i, nil
}

func CompareInstruments(a, b *MusicalInstrument) int {
	return strings.Compare(a.Name, b.Name)
}

// MusicianInstrument records the set of instruments one musician plays.
// Identity is the musician together with the instrument set.
type MusicianInstrument struct {
	ID          uuid.UUID
	Musician    *Musician            `validate:"required"`
	Instruments []*MusicalInstrument `validate:"required,min=1,dive,required"`
}

var musicianInstrumentFieldErrs = map[string]error{
	"MusicianInstrument.Musician":      ErrInvalidMusicianInstrument,
	"MusicianInstrument.Musician.Name": ErrInvalidMusicianName,
	"MusicianInstrument.Musician.URL":  ErrInvalidMusicianURL,
	"MusicianInstrument.Musician.Wiki": ErrInvalidMusicianURL,
	"MusicianInstrument.Instruments":   ErrInvalidMusicianInstrument,
}

// NewMusicianInstrument de-duplicates instruments by name and keeps them
// sorted so that two records over the same set share a signature.
func NewMusicianInstrument(m *Musician, instruments ...*MusicalInstrument) (*MusicianInstrument, error) {
	mi := &MusicianInstrument{Musician: m, Instruments: uniqueInstruments(instruments)}
	if err := checkStruct(mi, musicianInstrumentFieldErrs); err != nil {
		return nil, err
	}
	return mi, nil
}

// InstrumentCount is the number of distinct instrument names held.
func (mi *MusicianInstrument) InstrumentCount() int {
	return len(mi.InstrumentNames())
}

// InstrumentNames returns the distinct instrument names in ascending order.
func (mi *MusicianInstrument) InstrumentNames() []string {
	names := make([]string, 0, len(mi.Instruments))
	for _, inst := range mi.Instruments {
		if inst != nil {
			names = append(names, inst.Name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}

// Signature is the natural key: musician name plus sorted instrument names.
func (mi *MusicianInstrument) Signature() string {
	musician := ""
	if mi.Musician != nil {
		musician = mi.Musician.Name
	}
	return musician + "|" + strings.Join(mi.InstrumentNames(), ",")
}

func uniqueInstruments(in []*MusicalInstrument) []*MusicalInstrument {
	seen := make(map[string]bool, len(in))
	out := make([]*MusicalInstrument, 0, len(in))
	for _, inst := range in {
		if inst == nil || seen[inst.Name] {
			continue
		}
		seen[inst.Name] = true
		out = append(out, inst)
	}
	slices.SortFunc(out, CompareInstruments)
	return out
}
