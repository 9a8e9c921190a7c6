package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-cms/folio/internal/web/handler/handlertest"
)

func setup(t *testing.T) (*handlertest.Env, *http.Cookie) {
	t.Helper()

	env := handlertest.New(t)

	var s Service
	s.Init(env.App, env.Deps)

	return env, env.Login(t)
}

func jsonReq(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func decode[T any](t *testing.T, body string) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal([]byte(body), &out), body)

	return out
}

func TestCollectionRoundTrip(t *testing.T) {
	env, admin := setup(t)

	resp, body := env.Do(t, jsonReq(http.MethodPost, "/api/awards",
		`{"id":99,"title":"Best Paper","organization":"ACM","year":2023}`), admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	created := decode[map[string]any](t, body)
	id := uint64(created["id"].(float64))
	assert.NotEqual(t, uint64(99), id)
	assert.Equal(t, "Best Paper", created["title"])

	resp, body = env.Do(t, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/awards/%d", id), nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[map[string]any](t, body)
	assert.Equal(t, created["title"], got["title"])
	assert.Equal(t, created["organization"], got["organization"])
	assert.InDelta(t, 2023, got["year"], 0)

	// partial update keeps untouched fields
	resp, body = env.Do(t, jsonReq(http.MethodPut, fmt.Sprintf("/api/awards/%d", id), `{"year":2024}`), admin)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	got = decode[map[string]any](t, body)
	assert.InDelta(t, 2024, got["year"], 0)
	assert.Equal(t, "ACM", got["organization"])

	resp, body = env.Do(t, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/awards/%d", id), nil), admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"success":true}`, body)

	resp, body = env.Do(t, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/awards/%d", id), nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"award not found"}`, body)

	resp, _ = env.Do(t, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/awards/%d", id), nil), admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPublicationOrdering(t *testing.T) {
	env, admin := setup(t)

	for _, y := range []int{2019, 2024, 2021} {
		resp, body := env.Do(t, jsonReq(http.MethodPost, "/api/publications",
			fmt.Sprintf(`{"title":"Paper %d","authors":"A. Example","year":%d,"type":"journal"}`, y, y)), admin)
		require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	}

	resp, body := env.Do(t, httptest.NewRequest(http.MethodGet, "/api/publications", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := decode[[]map[string]any](t, body)
	require.Len(t, list, 3)

	matches := 0
	seen2024 := false

	for _, p := range list {
		year := int(p["year"].(float64))
		if year == 2024 {
			matches++
			seen2024 = true

			continue
		}

		assert.True(t, seen2024, "publication from %d listed before 2024", year)
	}

	assert.Equal(t, 1, matches)
}

func TestCollectionErrors(t *testing.T) {
	env, admin := setup(t)

	tests := []struct {
		name   string
		req    *http.Request
		cookie *http.Cookie
		status int
		body   string
	}{
		{"unknown collection", httptest.NewRequest(http.MethodGet, "/api/students", nil), nil, http.StatusNotFound, `{"error":"unknown collection"}`},
		{"non numeric id", httptest.NewRequest(http.MethodGet, "/api/awards/abc", nil), nil, http.StatusBadRequest, `{"error":"invalid id"}`},
		{"create without session", jsonReq(http.MethodPost, "/api/awards", `{"title":"x","year":1}`), nil, http.StatusUnauthorized, `{"error":"authentication required"}`},
		{"delete without session", httptest.NewRequest(http.MethodDelete, "/api/awards/1", nil), nil, http.StatusUnauthorized, `{"error":"authentication required"}`},
		{"missing required", jsonReq(http.MethodPost, "/api/awards", `{"title":"x"}`), admin, http.StatusBadRequest, `{"error":"year is required"}`},
		{"not an object", jsonReq(http.MethodPost, "/api/awards", `[1,2]`), admin, http.StatusBadRequest, `{"error":"request body must be a JSON object"}`},
		{"update missing", jsonReq(http.MethodPut, "/api/awards/42", `{"year":1}`), admin, http.StatusNotFound, `{"error":"award not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := env.Do(t, tt.req, tt.cookie)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.JSONEq(t, tt.body, body)
		})
	}
}

func TestGalleryDelete(t *testing.T) {
	env, admin := setup(t)

	resp, body := env.Do(t, jsonReq(http.MethodPost, "/api/gallery-images",
		`{"title":"Lab","image_url":"/uploads/images/a.jpg"}`), admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)
	id := uint64(decode[map[string]any](t, body)["id"].(float64))

	resp, _ = env.Do(t, httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/gallery-images/%d", id), nil), admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = env.Do(t, httptest.NewRequest(http.MethodGet, "/api/gallery-images", nil))
	assert.JSONEq(t, `[]`, body)

	resp, _ = env.Do(t, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/gallery-images/%d", id), nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSettings(t *testing.T) {
	env, admin := setup(t)

	resp, body := env.Do(t, jsonReq(http.MethodPost, "/api/settings", `{"key":"site_title","value":"Dr. Ada"}`), admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = env.Do(t, jsonReq(http.MethodPost, "/api/settings", `{"key":"site_title","value":"again"}`), admin)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, body)

	resp, body = env.Do(t, httptest.NewRequest(http.MethodGet, "/api/settings/site_title", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	row := decode[map[string]any](t, body)
	assert.Equal(t, "site_title", row["key"])
	assert.Equal(t, "Dr. Ada", row["value"])
	assert.Contains(t, row, "updated_at")

	resp, _ = env.Do(t, jsonReq(http.MethodPut, "/api/settings/stats", `{"value":{"papers":3}}`), admin)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = env.Do(t, jsonReq(http.MethodPut, "/api/settings/stats?upsert=true", `{"value":{"papers":3}}`), admin)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	resp, body = env.Do(t, jsonReq(http.MethodPut, "/api/settings/stats", `{"value":{"papers":4}}`), admin)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	resp, body = env.Do(t, jsonReq(http.MethodPut, "/api/settings", `{"tagline":"Physics","show_gallery":true}`), admin)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.JSONEq(t, `{"tagline":"Physics","show_gallery":true}`, body)

	_, body = env.Do(t, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	assert.JSONEq(t, `{"site_title":"Dr. Ada","stats":{"papers":4},"tagline":"Physics","show_gallery":true}`, body)

	resp, _ = env.Do(t, httptest.NewRequest(http.MethodDelete, "/api/settings/stats", nil), admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = env.Do(t, httptest.NewRequest(http.MethodDelete, "/api/settings/stats", nil), admin)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = env.Do(t, httptest.NewRequest(http.MethodGet, "/api/settings/stats", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = env.Do(t, jsonReq(http.MethodPost, "/api/settings", `{"key":"x","value":1}`))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.Do(t, jsonReq(http.MethodPost, "/api/settings", `{"key":`), admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSettingsRequireValue(t *testing.T) {
	env, admin := setup(t)

	resp, body := env.Do(t, jsonReq(http.MethodPut, "/api/settings/tagline?upsert=true", `{"value":"Physics"}`), admin)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	for _, field := range []string{``, `,"value":null`, `,"val":"typo"`} {
		resp, body = env.Do(t, jsonReq(http.MethodPut, "/api/settings/tagline", `{"key":"tagline"`+field+`}`), admin)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, field)
		assert.Contains(t, body, ErrValueRequired.Error(), field)

		resp, body = env.Do(t, jsonReq(http.MethodPost, "/api/settings", `{"key":"motto"`+field+`}`), admin)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, field)
		assert.Contains(t, body, ErrValueRequired.Error(), field)
	}

	_, body = env.Do(t, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	assert.JSONEq(t, `{"tagline":"Physics"}`, body)
}

func TestSettingsConcurrentCreate(t *testing.T) {
	env, admin := setup(t)

	const writers = 8

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		statuses = map[int]int{}
	)

	for i := range writers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			req := jsonReq(http.MethodPost, "/api/settings", fmt.Sprintf(`{"key":"race","value":%d}`, i))
			req.AddCookie(admin)

			resp, err := env.App.Test(req)
			if err != nil {
				return
			}

			mu.Lock()
			statuses[resp.StatusCode]++
			mu.Unlock()
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, statuses[http.StatusCreated])
	assert.Equal(t, writers-1, statuses[http.StatusConflict])
}

func multipartUpload(t *testing.T, bucket, filename, content string) *http.Request {
	t.Helper()

	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("bucket", bucket))

	if filename != "" {
		part, err := w.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}

	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	return req
}

func TestUpload(t *testing.T) {
	env, admin := setup(t)

	resp, body := env.Do(t, multipartUpload(t, "documents", "cv.pdf", "%PDF-1.7"), admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	obj := decode[map[string]string](t, body)
	assert.True(t, strings.HasSuffix(obj["path"], ".pdf"))
	assert.Equal(t, "/uploads/documents/"+obj["path"], obj["url"])

	resp, body = env.Do(t, jsonReq(http.MethodDelete, "/api/upload",
		fmt.Sprintf(`{"bucket":"documents","path":%q}`, obj["path"])), admin)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	resp, body = env.Do(t, multipartUpload(t, "secrets", "cv.pdf", "x"), admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"unknown bucket"}`, body)

	resp, body = env.Do(t, multipartUpload(t, "images", "", ""), admin)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, `{"error":"file is required"}`, body)

	resp, _ = env.Do(t, multipartUpload(t, "images", "a.png", "png"))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestStats(t *testing.T) {
	env, admin := setup(t)

	resp, body := env.Do(t, jsonReq(http.MethodPost, "/api/speeches",
		`{"title":"Keynote","event":"GoCon","date":"2024-05-01"}`), admin)
	require.Equal(t, http.StatusCreated, resp.StatusCode, body)

	resp, body = env.Do(t, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil), admin)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	stats := decode[map[string]int64](t, body)
	assert.Equal(t, int64(1), stats["speeches"])
	assert.Equal(t, int64(0), stats["publications"])
	assert.Contains(t, stats, "settings")

	resp, _ = env.Do(t, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
