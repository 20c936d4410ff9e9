package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecm-catalogue-service/internal/core/domain"
	"ecm-catalogue-service/internal/core/services"
	"ecm-catalogue-service/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const basePath = "/api/v1/ecm"

func setupRouter() (*testutil.MockCatalogueRepo, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	repo := new(testutil.MockCatalogueRepo)

	h := New(services.NewCatalogueService(repo), services.NewMinerService(repo))
	r := gin.New()
	api := r.Group(basePath)
	h.RegisterRoutes(api)

	return repo, r
}

func doRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, basePath+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func itemNames(t *testing.T, resp map[string]interface{}, field string) []string {
	t.Helper()
	items, ok := resp["items"].([]interface{})
	require.True(t, ok, "items must be a list")
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.(map[string]interface{})[field].(string))
	}
	return out
}

// ============================================================================
// Catalogue
// ============================================================================

func TestListMusicians(t *testing.T) {
	repo, r := setupRouter()

	cat := testutil.NewCatalogue()
	cat.Album(1975, "ECM 1064/65", "The Köln Concert", "Keith Jarrett")
	cat.Musician("Jan Garbarek")
	repo.On("ListMusicians", mock.Anything).Return(cat.Musicians, nil)

	w := doRequest(r, http.MethodGet, "/musicians", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, float64(2), resp["total"])
	assert.Equal(t, []string{"Keith Jarrett", "Jan Garbarek"}, itemNames(t, resp, "name"))
}

func TestGetMusician_InvalidID(t *testing.T) {
	_, r := setupRouter()

	w := doRequest(r, http.MethodGet, "/musicians/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMusician_NotFound(t *testing.T) {
	repo, r := setupRouter()
	id := uuid.New()
	repo.On("GetMusician", mock.Anything, id).Return(nil, domain.ErrMusicianNotFound)

	w := doRequest(r, http.MethodGet, "/musicians/"+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, domain.ErrMusicianNotFound.Error(), decode(t, w)["error"])
}

func TestFindMusician_RequiresName(t *testing.T) {
	_, r := setupRouter()

	w := doRequest(r, http.MethodGet, "/musician", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateMusician(t *testing.T) {
	repo, r := setupRouter()
	id := uuid.New()

	repo.On("SaveMusician", mock.Anything, mock.AnythingOfType("*domain.Musician")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Musician).ID = id }).
		Return(nil)
	repo.On("GetMusician", mock.Anything, id).Return(&domain.Musician{ID: id, Name: "Keith Jarrett"}, nil)

	w := doRequest(r, http.MethodPost, "/musicians", map[string]string{"name": "  Keith Jarrett "})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.Equal(t, id.String(), resp["id"])
	assert.Equal(t, "Keith Jarrett", resp["name"])
	assert.Equal(t, []interface{}{}, resp["albums"])
	repo.AssertExpectations(t)
}

func TestCreateMusician_InvalidName(t *testing.T) {
	repo, r := setupRouter()

	w := doRequest(r, http.MethodPost, "/musicians", map[string]string{"name": "Prince"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "SaveMusician", mock.Anything, mock.Anything)
}

func TestCreateMusician_MissingBody(t *testing.T) {
	_, r := setupRouter()

	w := doRequest(r, http.MethodPost, "/musicians", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteMusician(t *testing.T) {
	repo, r := setupRouter()
	id := uuid.New()
	repo.On("DeleteMusician", mock.Anything, id).Return(nil)

	w := doRequest(r, http.MethodDelete, "/musicians/"+id.String(), nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCreateAlbum(t *testing.T) {
	repo, r := setupRouter()
	id := uuid.New()

	saved := &domain.Album{ID: id, ReleaseYear: 1975, RecordNumber: "ECM 1064/65", AlbumName: "The Köln Concert"}
	saved.FeaturedMusicians = []*domain.Musician{{ID: uuid.New(), Name: "Keith Jarrett", Albums: []*domain.Album{saved}}}

	repo.On("SaveAlbum", mock.Anything, mock.MatchedBy(func(a *domain.Album) bool {
		return len(a.FeaturedMusicians) == 1 && len(a.Instruments) == 1
	})).Run(func(args mock.Arguments) { args.Get(1).(*domain.Album).ID = id }).Return(nil)
	repo.On("GetAlbum", mock.Anything, id).Return(saved, nil)

	w := doRequest(r, http.MethodPost, "/albums", map[string]interface{}{
		"release_year":       1975,
		"record_number":      "ECM 1064/65",
		"album_name":         "The Köln Concert",
		"featured_musicians": []string{"Keith Jarrett"},
		"lineup":             []map[string]interface{}{{"musician": "Keith Jarrett", "instruments": []string{"Piano"}}},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "ECM 1064/65", resp["record_number"])
	featured := resp["featured_musicians"].([]interface{})
	require.Len(t, featured, 1)
	assert.Equal(t, "Keith Jarrett", featured[0].(map[string]interface{})["name"])
	repo.AssertExpectations(t)
}

func TestCreateAlbum_InvalidRecordNumber(t *testing.T) {
	repo, r := setupRouter()

	w := doRequest(r, http.MethodPost, "/albums", map[string]interface{}{
		"release_year":  1975,
		"record_number": "JAPO 60001",
		"album_name":    "Afric Pepperbird",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["error"], domain.ErrInvalidRecordNumber.Error())
	repo.AssertNotCalled(t, "SaveAlbum", mock.Anything, mock.Anything)
}

func TestListAlbums_StoreFailure(t *testing.T) {
	repo, r := setupRouter()
	repo.On("ListAlbums", mock.Anything).Return(nil, errors.New("connection refused"))

	w := doRequest(r, http.MethodGet, "/albums", nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", decode(t, w)["error"])
}

func TestCreateMusicianInstrument(t *testing.T) {
	repo, r := setupRouter()
	repo.On("SaveMusicianInstrument", mock.Anything, mock.AnythingOfType("*domain.MusicianInstrument")).Return(nil)

	w := doRequest(r, http.MethodPost, "/musician_instruments", map[string]interface{}{
		"musician":    "Jan Garbarek",
		"instruments": []string{"Tenor Saxophone", "Flute", "Flute"},
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	assert.Equal(t, []interface{}{"Flute", "Tenor Saxophone"}, resp["instruments"])
}

// ============================================================================
// Mining
// ============================================================================

func TestProlificMusicians(t *testing.T) {
	repo, r := setupRouter()

	cat := testutil.NewCatalogue()
	cat.Album(1974, "ECM 1050", "Belonging", "Keith Jarrett", "Jan Garbarek")
	cat.Album(1975, "ECM 1064/65", "The Köln Concert", "Keith Jarrett")
	cat.Album(1990, "ECM 1419", "I Took Up the Runes", "Jan Garbarek")
	repo.On("ListMusicians", mock.Anything).Return(cat.Musicians, nil)

	w := doRequest(r, http.MethodGet, "/mining/prolific_musicians?k=1&start_year=1970&end_year=1980", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, services.QueryProlificMusicians, resp["query"])
	assert.Equal(t, float64(1), resp["k"])
	assert.Equal(t, []string{"Keith Jarrett"}, itemNames(t, resp, "name"))
}

func TestMining_NonIntegerK(t *testing.T) {
	_, r := setupRouter()

	for _, path := range []string{
		"/mining/prolific_musicians?k=ten",
		"/mining/prolific_musicians?start_year=early",
		"/mining/talented_musicians?k=1.5",
		"/mining/social_musicians?k=x",
		"/mining/busiest_years?k=x",
		"/mining/similar_albums?k=x",
		"/mining/popular_instruments?k=x",
	} {
		w := doRequest(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestMining_NonPositiveK(t *testing.T) {
	repo, r := setupRouter()

	for _, path := range []string{
		"/mining/prolific_musicians?k=0",
		"/mining/talented_musicians?k=-1",
		"/mining/social_musicians?k=0",
		"/mining/busiest_years?k=0",
		"/mining/similar_albums?k=0",
		"/mining/popular_instruments?k=-3",
	} {
		w := doRequest(r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Equal(t, []interface{}{}, decode(t, w)["items"], path)
	}
	repo.AssertNotCalled(t, "ListMusicians", mock.Anything)
	repo.AssertNotCalled(t, "ListAlbums", mock.Anything)
}

func TestBusiestYears(t *testing.T) {
	repo, r := setupRouter()

	cat := testutil.NewCatalogue()
	cat.Album(1975, "ECM 1064/65", "The Köln Concert", "Keith Jarrett")
	cat.Album(1975, "ECM 1051", "Solstice", "Ralph Towner")
	cat.Album(1974, "ECM 1050", "Belonging", "Keith Jarrett")
	repo.On("ListAlbums", mock.Anything).Return(cat.Albums, nil)

	w := doRequest(r, http.MethodGet, "/mining/busiest_years?k=2", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{float64(1975), float64(1974)}, decode(t, w)["items"])
}

func TestSimilarAlbums(t *testing.T) {
	repo, r := setupRouter()

	cat := testutil.NewCatalogue()
	ref := cat.Album(1974, "ECM 1050", "Belonging", "Keith Jarrett", "Jan Garbarek")
	ref.ID = uuid.New()
	cat.Album(1977, "ECM 1090", "My Song", "Keith Jarrett", "Jan Garbarek", "Palle Danielsson")
	cat.Album(1990, "ECM 1419", "I Took Up the Runes", "Jan Garbarek")
	repo.On("GetAlbum", mock.Anything, ref.ID).Return(ref, nil)
	repo.On("ListAlbums", mock.Anything).Return(cat.Albums, nil)

	w := doRequest(r, http.MethodGet, "/mining/similar_albums?k=2&album_id="+ref.ID.String(), nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, []string{"Belonging", "My Song"}, itemNames(t, resp, "album_name"))
	first := resp["items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["similarity"])
}

func TestSimilarAlbums_MissingReference(t *testing.T) {
	_, r := setupRouter()

	w := doRequest(r, http.MethodGet, "/mining/similar_albums?k=3", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, domain.ErrReferenceAlbumRequired.Error(), decode(t, w)["error"])
}

func TestSimilarAlbums_EmptyReference(t *testing.T) {
	repo, r := setupRouter()
	ref := &domain.Album{ID: uuid.New(), ReleaseYear: 1970, RecordNumber: "ECM 1001", AlbumName: "Free at Last"}
	repo.On("GetAlbum", mock.Anything, ref.ID).Return(ref, nil)

	w := doRequest(r, http.MethodGet, "/mining/similar_albums?album_id="+ref.ID.String(), nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSimilarAlbums_UnknownReference(t *testing.T) {
	repo, r := setupRouter()
	id := uuid.New()
	repo.On("GetAlbum", mock.Anything, id).Return(nil, domain.ErrAlbumNotFound)

	w := doRequest(r, http.MethodGet, "/mining/similar_albums?album_id="+id.String(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPopularInstruments(t *testing.T) {
	repo, r := setupRouter()

	cat := testutil.NewCatalogue()
	cat.Plays("Keith Jarrett", "Piano", "Soprano Saxophone")
	cat.Plays("Jan Garbarek", "Soprano Saxophone", "Tenor Saxophone")
	cat.Plays("Ralph Towner", "Guitar", "Piano")
	repo.On("ListMusicianInstruments", mock.Anything).Return(cat.MusicianInstruments, nil)

	w := doRequest(r, http.MethodGet, "/mining/popular_instruments?k=2", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Piano", "Soprano Saxophone"}, itemNames(t, decode(t, w), "name"))
}

func TestTalentedMusicians(t *testing.T) {
	repo, r := setupRouter()

	cat := testutil.NewCatalogue()
	cat.Plays("Keith Jarrett", "Piano", "Soprano Saxophone", "Percussion")
	cat.Plays("Jan Garbarek", "Soprano Saxophone")
	repo.On("ListMusicianInstruments", mock.Anything).Return(cat.MusicianInstruments, nil)

	w := doRequest(r, http.MethodGet, "/mining/talented_musicians?k=1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, services.QueryTalentedMusicians, resp["query"])
	assert.Equal(t, []string{"Keith Jarrett"}, itemNames(t, resp, "name"))
}
