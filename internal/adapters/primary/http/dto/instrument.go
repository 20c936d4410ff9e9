package dto

import (
	"github.com/google/uuid"

	"ecm-catalogue-service/internal/core/domain"
)

type CreateInstrumentRequest struct {
	Name string `json:"name" binding:"required"`
}

type InstrumentResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type MusicianInstrumentResponse struct {
	ID          uuid.UUID   `json:"id"`
	Musician    MusicianRef `json:"musician"`
	Instruments []string    `json:"instruments"`
}

type ListInstrumentsResponse struct {
	Items []InstrumentResponse `json:"items"`
	Total int                  `json:"total"`
}

type ListMusicianInstrumentsResponse struct {
	Items []MusicianInstrumentResponse `json:"items"`
	Total int                          `json:"total"`
}

func ToInstrumentResponse(i *domain.MusicalInstrument) InstrumentResponse {
	return InstrumentResponse{ID: i.ID, Name: i.Name}
}

func ToInstrumentResponses(is []*domain.MusicalInstrument) []InstrumentResponse {
	out := make([]InstrumentResponse, 0, len(is))
	for _, i := range is {
		out = append(out, ToInstrumentResponse(i))
	}
	return out
}

func ToMusicianInstrumentResponse(mi *domain.MusicianInstrument) MusicianInstrumentResponse {
	return MusicianInstrumentResponse{
		ID:          mi.ID,
		Musician:    ToMusicianRef(mi.Musician),
		Instruments: mi.InstrumentNames(),
	}
}

func ToListMusicianInstrumentsResponse(mis []*domain.MusicianInstrument) ListMusicianInstrumentsResponse {
	items := make([]MusicianInstrumentResponse, 0, len(mis))
	for _, mi := range mis {
		items = append(items, ToMusicianInstrumentResponse(mi))
	}
	return ListMusicianInstrumentsResponse{Items: items, Total: len(items)}
}
