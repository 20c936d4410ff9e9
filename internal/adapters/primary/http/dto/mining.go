package dto

// RankingResponse is the envelope for every mining query. Items are in rank
// order.
type RankingResponse[T any] struct {
	Query string `json:"query"`
	K     int    `json:"k"`
	Items []T    `json:"items"`
}

// SimilarAlbum is an album ranked against a reference album.
type SimilarAlbum struct {
	AlbumRef
	Similarity float64 `json:"similarity"`
}

func NewRankingResponse[T any](query string, k int, items []T) RankingResponse[T] {
	if items == nil {
		items = []T{}
	}
	return RankingResponse[T]{Query: query, K: k, Items: items}
}
