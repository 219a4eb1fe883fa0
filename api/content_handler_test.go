package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/paleotommytechy/portfolio/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) api(method, path, body, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return f.do(req)
}

func TestContentListEmpty(t *testing.T) {
	f := newFixture(t)

	rec := f.api(http.MethodGet, "/api/services", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"items":[],"total":0}`, rec.Body.String())
}

func TestContentWritesNeedBearerToken(t *testing.T) {
	f := newFixture(t)

	rec := f.api(http.MethodPost, "/api/services", `{"title":"x","desc":"y"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.api(http.MethodPost, "/api/services", `{"title":"x","desc":"y"}`, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = f.api(http.MethodGet, "/api/services", "", "")
	assert.JSONEq(t, `{"items":[],"total":0}`, rec.Body.String())
}

func TestContentCRUD(t *testing.T) {
	f := newFixture(t)
	token := bearer(t)

	rec := f.api(http.MethodPost, "/api/projects",
		`{"id":42,"title":"EcoTrack","category":"IoT","tech":["Go","Arduino"]}`, token)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.GalleryProject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotZero(t, created.ID)
	assert.NotEqual(t, int64(42), created.ID)
	assert.Equal(t, []string{"Go", "Arduino"}, created.Tech)

	path := fmt.Sprintf("/api/projects/%d", created.ID)
	rec = f.api(http.MethodGet, path, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.api(http.MethodPut, path, `{"title":"EcoTrack v2","category":"IoT"}`, token)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.GalleryProject
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "EcoTrack v2", updated.Title)
	assert.Empty(t, updated.Tech)

	rec = f.api(http.MethodGet, "/api/projects", "", "")
	var list ListResponse[models.GalleryProject]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Total)

	rec = f.api(http.MethodDelete, path, "", token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.api(http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContentMissingRowIsNotFound(t *testing.T) {
	f := newFixture(t)
	token := bearer(t)

	rec := f.api(http.MethodPut, "/api/testimonials/999",
		`{"quote":"q","author":"a","company":"c"}`, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body.Error, "testimonials not found")

	rec = f.api(http.MethodDelete, "/api/testimonials/999", "", token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContentBackendFailureIsBadGateway(t *testing.T) {
	f := newFixture(t)
	token := bearer(t)

	sqlDB, err := f.gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	rec := f.api(http.MethodPut, "/api/testimonials/1",
		`{"quote":"q","author":"a","company":"c"}`, token)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestContentRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	token := bearer(t)

	rec := f.api(http.MethodPost, "/api/services", `{"title":`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.api(http.MethodPost, "/api/services", `{"title":"no description"}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Desc", body.Field)

	rec = f.api(http.MethodGet, "/api/services/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
