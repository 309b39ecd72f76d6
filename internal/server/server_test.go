package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	_ "museum-backend/docs"
	"museum-backend/internal/config"
	"museum-backend/internal/database"
	"museum-backend/internal/testutil"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	t       *testing.T
	srv     *Server
	storage *testutil.MemoryStorage
	token   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{
		App:    config.AppConfig{Name: "Museum Backend API", Version: "test", Env: "test"},
		Server: config.ServerConfig{ReadTimeout: 5 * time.Second, WriteTimeout: 5 * time.Second},
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			TokenTTL:      time.Hour,
			RateLimit:     3,
			RateWindow:    time.Minute,
			AdminEmail:    "admin@example.com",
			AdminPassword: "s3cret-pass",
			AdminName:     "Admin",
		},
		Pagination: config.PaginationConfig{DefaultPerPage: 20, MaxPerPage: 100},
		Upload:     config.UploadConfig{MaxSize: 1 << 20, Workers: 1, QueueLength: 8},
	}

	storage := testutil.NewMemoryStorage()
	srv := New(cfg, db, storage, log)

	ctx := context.Background()
	require.NoError(t, srv.Auth.EnsureAdmin(ctx))
	issued, err := srv.Auth.AcquireToken(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword, "tests")
	require.NoError(t, err)

	return &testServer{t: t, srv: srv, storage: storage, token: issued.Token}
}

func (ts *testServer) send(req *http.Request) *http.Response {
	ts.t.Helper()
	if ts.token != "" {
		req.Header.Set("Authorization", "Bearer "+ts.token)
	}
	resp, err := ts.srv.App.Test(req, -1)
	require.NoError(ts.t, err)
	return resp
}

// call sends body as JSON and decodes the JSON response, if any.
func (ts *testServer) call(method, path string, body any) (int, map[string]any) {
	ts.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(ts.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return decode(ts.t, ts.send(req))
}

func decode(t *testing.T, resp *http.Response) (int, map[string]any) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return resp.StatusCode, nil
	}
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

// create stores a record and returns its id.
func (ts *testServer) create(resource string, body map[string]any) string {
	ts.t.Helper()
	status, out := ts.call(http.MethodPost, "/api/v1/"+resource, body)
	require.Equal(ts.t, http.StatusCreated, status, out)
	return data(out)["id"].(string)
}

func data(out map[string]any) map[string]any {
	d, _ := out["data"].(map[string]any)
	return d
}

func errorsOf(out map[string]any) map[string]any {
	e, _ := out["errors"].(map[string]any)
	return e
}

func meta(out map[string]any) map[string]any {
	m, _ := out["meta"].(map[string]any)
	return m
}

func TestRequiresBearerToken(t *testing.T) {
	ts := newTestServer(t)
	ts.token = ""

	status, out := ts.call(http.MethodGet, "/api/v1/item", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthenticated.", out["message"])

	ts.token = "not-a-jwt"
	status, _ = ts.call(http.MethodGet, "/api/v1/item", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	ts.token = ""
	status, out = ts.call(http.MethodGet, "/api/v1/health", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", out["status"])
}

func TestHealthRejectsParameters(t *testing.T) {
	ts := newTestServer(t)

	status, out := ts.call(http.MethodGet, "/api/v1/version?verbose=1", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, errorsOf(out), "verbose")
}

func TestStoreRejectsDuplicateInternalName(t *testing.T) {
	ts := newTestServer(t)

	ts.create("collection", map[string]any{"internal_name": "permanent"})

	status, out := ts.call(http.MethodPost, "/api/v1/collection", map[string]any{"internal_name": "permanent"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "The internal name has already been taken.", out["message"])
	assert.Equal(t, []any{"The internal name has already been taken."}, errorsOf(out)["internal_name"])
}

func TestStoreRejectsUnknownAndProhibitedFields(t *testing.T) {
	ts := newTestServer(t)

	status, out := ts.call(http.MethodPost, "/api/v1/gallery", map[string]any{
		"id":            uuid.NewString(),
		"internal_name": "hall",
		"colour":        "red",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	errs := errorsOf(out)
	assert.Equal(t, []any{"The id field is prohibited."}, errs["id"])
	assert.Equal(t, []any{"The colour field is not allowed."}, errs["colour"])
	assert.NotContains(t, errs, "internal_name")
}

func TestStoreRejectsMalformedBody(t *testing.T) {
	ts := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/gallery", bytes.NewBufferString(`["hall"]`))
	req.Header.Set("Content-Type", "application/json")
	status, out := decode(t, ts.send(req))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, errorsOf(out), "body")
}

func TestPaginationBounds(t *testing.T) {
	ts := newTestServer(t)

	status, out := ts.call(http.MethodGet, "/api/v1/address?page=0", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The page field must be at least 1."}, errorsOf(out)["page"])

	status, out = ts.call(http.MethodGet, "/api/v1/tag?per_page=4&page=4611686018427387905", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The page field must not be greater than 2147483647."}, errorsOf(out)["page"])

	status, out = ts.call(http.MethodGet, "/api/v1/address?per_page=101", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The per page field must not be greater than 100."}, errorsOf(out)["per_page"])

	status, out = ts.call(http.MethodGet, "/api/v1/address?per_page=abc", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The per page field must be an integer."}, errorsOf(out)["per_page"])

	status, out = ts.call(http.MethodGet, "/api/v1/address", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), meta(out)["current_page"])
	assert.Equal(t, float64(20), meta(out)["per_page"])
	assert.Equal(t, float64(0), meta(out)["total"])

	status, out = ts.call(http.MethodGet, "/api/v1/address?per_page=100&page=2", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), meta(out)["current_page"])
	assert.Equal(t, float64(100), meta(out)["per_page"])
}

func TestIndexPaginates(t *testing.T) {
	ts := newTestServer(t)
	for _, name := range []string{"a", "b", "c"} {
		ts.create("gallery", map[string]any{"internal_name": name})
	}

	status, out := ts.call(http.MethodGet, "/api/v1/gallery?per_page=2&page=2", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(3), meta(out)["total"])
	assert.Len(t, out["data"], 1)
}

func TestIncludeValidation(t *testing.T) {
	ts := newTestServer(t)

	status, out := ts.call(http.MethodGet, "/api/v1/item?include=tags,bogus", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The selected include is invalid."}, errorsOf(out)["include"])

	status, out = ts.call(http.MethodGet, "/api/v1/item?include[]=tags", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The include field must be a string."}, errorsOf(out)["include"])

	status, _ = ts.call(http.MethodGet, "/api/v1/item?include=tags,translations", nil)
	assert.Equal(t, http.StatusOK, status)

	status, out = ts.call(http.MethodGet, "/api/v1/gallery?include=pictures", nil)
	assert.Equal(t, http.StatusOK, status, out)
}

func TestIndexFilters(t *testing.T) {
	ts := newTestServer(t)
	ts.create("item", map[string]any{"internal_name": "vase", "type": "object"})
	ts.create("item", map[string]any{"internal_name": "arch", "type": "monument"})

	status, out := ts.call(http.MethodGet, "/api/v1/item?type=monument", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), meta(out)["total"])

	status, out = ts.call(http.MethodGet, "/api/v1/item?type=painting", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The selected type is invalid."}, errorsOf(out)["type"])
}

func TestMissingRecords(t *testing.T) {
	ts := newTestServer(t)
	missing := "/api/v1/item/" + uuid.NewString()

	status, out := ts.call(http.MethodGet, missing, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not found", out["message"])

	// The record is looked up before its input is validated.
	status, _ = ts.call(http.MethodPatch, missing, map[string]any{"bogus": true})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ts.call(http.MethodDelete, missing, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, out = ts.call(http.MethodGet, "/api/v1/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not found", out["message"])
}

func TestUpdateAndDestroy(t *testing.T) {
	ts := newTestServer(t)
	id := ts.create("item", map[string]any{"internal_name": "vase", "type": "object"})
	ts.create("item", map[string]any{"internal_name": "bowl", "type": "object"})
	path := "/api/v1/item/" + id

	status, out := ts.call(http.MethodPatch, path, map[string]any{"internal_name": "vase", "type": "monument"})
	require.Equal(t, http.StatusOK, status, out)
	assert.Equal(t, "monument", data(out)["type"])

	// The same update twice answers the same way.
	status, again := ts.call(http.MethodPatch, path, map[string]any{"internal_name": "vase", "type": "monument"})
	require.Equal(t, http.StatusOK, status, again)
	assert.Equal(t, data(out)["id"], data(again)["id"])
	assert.Equal(t, data(out)["internal_name"], data(again)["internal_name"])
	assert.Equal(t, data(out)["type"], data(again)["type"])

	status, out = ts.call(http.MethodPatch, path, map[string]any{"internal_name": "bowl"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, errorsOf(out), "internal_name")

	status, out = ts.call(http.MethodPut, path, map[string]any{"id": uuid.NewString()})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, errorsOf(out), "id")

	// Even the record's own id may not be sent.
	status, out = ts.call(http.MethodPatch, path, map[string]any{"id": id, "type": "object"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The id field is prohibited."}, errorsOf(out)["id"])

	status, out = ts.call(http.MethodPatch, path, map[string]any{"country_id": "zzz"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The selected country id is invalid."}, errorsOf(out)["country_id"])

	status, _ = ts.call(http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, _ = ts.call(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestNestedTranslationsOnCreateOnly(t *testing.T) {
	ts := newTestServer(t)
	ts.create("language", map[string]any{"id": "eng", "internal_name": "English"})

	status, out := ts.call(http.MethodPost, "/api/v1/contact", map[string]any{
		"internal_name": "front-desk",
		"email":         "desk@example.com",
		"translations": []any{
			map[string]any{"language_id": "eng", "label": "Front desk"},
		},
	})
	require.Equal(t, http.StatusCreated, status, out)
	translations, _ := data(out)["translations"].([]any)
	assert.Len(t, translations, 1)

	id := data(out)["id"].(string)
	status, out = ts.call(http.MethodPatch, "/api/v1/contact/"+id, map[string]any{
		"translations": []any{map[string]any{"language_id": "eng", "label": "Desk"}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, errorsOf(out), "translations")

	status, out = ts.call(http.MethodPost, "/api/v1/contact", map[string]any{
		"internal_name": "office",
		"translations": []any{
			map[string]any{"language_id": "eng", "label": "Office"},
			map[string]any{"language_id": "xyz"},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	errs := errorsOf(out)
	assert.Contains(t, errs, "translations.1.language_id")
	assert.Contains(t, errs, "translations.1.label")
}

func TestLanguageDefault(t *testing.T) {
	ts := newTestServer(t)
	ts.create("language", map[string]any{"id": "eng", "internal_name": "English"})
	ts.create("language", map[string]any{"id": "ita", "internal_name": "Italian"})

	status, _ := ts.call(http.MethodGet, "/api/v1/language/default", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, out := ts.call(http.MethodPost, "/api/v1/language", map[string]any{"id": "fra", "internal_name": "French", "is_default": true})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, errorsOf(out), "is_default")

	status, out = ts.call(http.MethodPatch, "/api/v1/language/eng/default", map[string]any{"is_default": "yes"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, errorsOf(out), "is_default")

	status, _ = ts.call(http.MethodPatch, "/api/v1/language/eng/default", map[string]any{"is_default": true})
	assert.Equal(t, http.StatusOK, status)
	status, out = ts.call(http.MethodPatch, "/api/v1/language/ita/default", map[string]any{"is_default": true})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, data(out)["is_default"])

	status, out = ts.call(http.MethodGet, "/api/v1/language/default", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ita", data(out)["id"])

	status, out = ts.call(http.MethodGet, "/api/v1/language/english", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "eng", data(out)["id"])

	status, _ = ts.call(http.MethodDelete, "/api/v1/language/default", nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = ts.call(http.MethodGet, "/api/v1/language/default", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ts.call(http.MethodPatch, "/api/v1/language/deu/default", map[string]any{"is_default": true})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestTranslationIsUniquePerLanguageAndContext(t *testing.T) {
	ts := newTestServer(t)
	ts.create("language", map[string]any{"id": "eng", "internal_name": "English"})
	contextID := ts.create("context", map[string]any{"internal_name": "default"})
	itemID := ts.create("item", map[string]any{"internal_name": "vase", "type": "object"})

	body := map[string]any{
		"item_id":     itemID,
		"language_id": "eng",
		"context_id":  contextID,
		"name":        "Vase",
		"description": "A painted vase.",
	}
	ts.create("item-translation", body)

	status, out := ts.call(http.MethodPost, "/api/v1/item-translation", body)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The item id has already been taken."}, errorsOf(out)["item_id"])

	status, out = ts.call(http.MethodGet, "/api/v1/item?include=translations", nil)
	require.Equal(t, http.StatusOK, status)
	items := out["data"].([]any)
	require.Len(t, items, 1)
	assert.Len(t, items[0].(map[string]any)["translations"], 1)

	status, out = ts.call(http.MethodGet, "/api/v1/item-translation?item_id="+itemID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), meta(out)["total"])
}

func TestTranslationCannotMoveOntoATakenLanguage(t *testing.T) {
	ts := newTestServer(t)
	ts.create("language", map[string]any{"id": "eng", "internal_name": "English"})
	ts.create("language", map[string]any{"id": "ita", "internal_name": "Italian"})
	ts.create("language", map[string]any{"id": "fra", "internal_name": "French"})
	contextID := ts.create("context", map[string]any{"internal_name": "default"})
	itemID := ts.create("item", map[string]any{"internal_name": "vase", "type": "object"})

	translation := func(language string) map[string]any {
		return map[string]any{
			"item_id":     itemID,
			"language_id": language,
			"context_id":  contextID,
			"name":        "Vase",
			"description": "A painted vase.",
		}
	}
	ts.create("item-translation", translation("eng"))
	italian := ts.create("item-translation", translation("ita"))

	status, out := ts.call(http.MethodPatch, "/api/v1/item-translation/"+italian, map[string]any{"language_id": "eng"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The item id has already been taken."}, errorsOf(out)["item_id"])

	status, out = ts.call(http.MethodPatch, "/api/v1/item-translation/"+italian, map[string]any{"language_id": "fra"})
	require.Equal(t, http.StatusOK, status, out)
	assert.Equal(t, "fra", data(out)["language_id"])
}

func TestThemeCannotMoveOntoATakenName(t *testing.T) {
	ts := newTestServer(t)
	first := ts.create("exhibition", map[string]any{"internal_name": "first"})
	second := ts.create("exhibition", map[string]any{"internal_name": "second"})
	ts.create("theme", map[string]any{"internal_name": "intro", "exhibition_id": first})
	moved := ts.create("theme", map[string]any{"internal_name": "intro", "exhibition_id": second})

	status, out := ts.call(http.MethodPatch, "/api/v1/theme/"+moved, map[string]any{"exhibition_id": first})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The internal name has already been taken."}, errorsOf(out)["internal_name"])

	status, out = ts.call(http.MethodPatch, "/api/v1/theme/"+moved, map[string]any{"exhibition_id": first, "internal_name": "outro"})
	require.Equal(t, http.StatusOK, status, out)
	assert.Equal(t, first, data(out)["exhibition_id"])
}

func TestProvinceCannotMoveOntoATakenName(t *testing.T) {
	ts := newTestServer(t)
	ts.create("country", map[string]any{"id": "ita", "internal_name": "Italy"})
	ts.create("country", map[string]any{"id": "fra", "internal_name": "France"})
	ts.create("province", map[string]any{"internal_name": "north", "country_id": "ita"})
	moved := ts.create("province", map[string]any{"internal_name": "north", "country_id": "fra"})

	status, out := ts.call(http.MethodPatch, "/api/v1/province/"+moved, map[string]any{"country_id": "ita"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The internal name has already been taken."}, errorsOf(out)["internal_name"])
}

func TestTagLinks(t *testing.T) {
	ts := newTestServer(t)
	itemID := ts.create("item", map[string]any{"internal_name": "vase", "type": "object"})
	tagID := ts.create("tag", map[string]any{"internal_name": "ceramics", "description": "Ceramics"})

	for range 2 {
		status, out := ts.call(http.MethodPost, "/api/v1/item/"+itemID+"/attach-tag", map[string]any{"tag_id": tagID})
		require.Equal(t, http.StatusOK, status, out)
		assert.Len(t, data(out)["tags"], 1)
	}

	status, out := ts.call(http.MethodGet, "/api/v1/item/for-tag/"+tagID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), meta(out)["total"])

	status, out = ts.call(http.MethodGet, "/api/v1/tag/for-item/"+itemID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), meta(out)["total"])

	status, _ = ts.call(http.MethodGet, "/api/v1/item/for-tag/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, out = ts.call(http.MethodPost, "/api/v1/item/"+itemID+"/attach-tag", map[string]any{"tag_id": uuid.NewString()})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The selected tag id is invalid."}, errorsOf(out)["tag_id"])

	status, out = ts.call(http.MethodDelete, "/api/v1/item/"+itemID+"/detach-tag", map[string]any{"tag_id": tagID})
	require.Equal(t, http.StatusOK, status, out)
	assert.Empty(t, data(out)["tags"])

	status, out = ts.call(http.MethodGet, "/api/v1/item/for-tag/"+tagID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), meta(out)["total"])
}

func TestEnabledProjects(t *testing.T) {
	ts := newTestServer(t)
	future := time.Now().AddDate(1, 0, 0).Format("2006-01-02")

	ts.create("project", map[string]any{"internal_name": "live", "is_enabled": true, "is_launched": true, "launch_date": "2020-01-01"})
	ts.create("project", map[string]any{"internal_name": "scheduled", "is_enabled": true, "is_launched": true, "launch_date": future})
	hidden := ts.create("project", map[string]any{"internal_name": "hidden", "is_launched": true, "launch_date": "2020-01-01"})

	status, out := ts.call(http.MethodGet, "/api/v1/project/enabled", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), meta(out)["total"])

	status, _ = ts.call(http.MethodPatch, "/api/v1/project/"+hidden+"/enabled", map[string]any{"is_enabled": true})
	require.Equal(t, http.StatusOK, status)

	status, out = ts.call(http.MethodGet, "/api/v1/project/enabled", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), meta(out)["total"])
}

func TestImageUploadToPicture(t *testing.T) {
	ts := newTestServer(t)
	ctx := context.Background()

	body, contentType := testutil.Multipart(t, "file", "Blue Vase.png", testutil.PNG(t, 4, 3))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/image-upload", body)
	req.Header.Set("Content-Type", contentType)
	status, out := decode(t, ts.send(req))
	require.Equal(t, http.StatusCreated, status, out)
	uploadID := data(out)["id"].(string)

	status, out = ts.call(http.MethodGet, "/api/v1/image-upload/"+uploadID+"/status", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "processing", data(out)["status"])

	available, err := ts.srv.Images.Process(ctx, uploadID)
	require.NoError(t, err)

	status, out = ts.call(http.MethodGet, "/api/v1/image-upload/"+uploadID+"/status", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "processed", data(out)["status"])

	resp := ts.send(httptest.NewRequest(http.MethodGet, "/api/v1/available-image/"+available.ID+"/view", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "inline")
	_ = resp.Body.Close()

	itemID := ts.create("item", map[string]any{"internal_name": "vase", "type": "object"})
	status, out = ts.call(http.MethodPost, "/api/v1/picture/attach-to-item/"+itemID, map[string]any{
		"available_image_id": available.ID,
		"internal_name":      "vase-front",
	})
	require.Equal(t, http.StatusCreated, status, out)
	pictureID := data(out)["id"].(string)

	resp = ts.send(httptest.NewRequest(http.MethodGet, "/api/v1/picture/"+pictureID+"/download", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, testutil.PNG(t, 4, 3), raw)

	// The available image was consumed.
	status, _ = ts.call(http.MethodGet, "/api/v1/available-image/"+available.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ts.call(http.MethodPost, "/api/v1/picture/attach-to-detail/"+uuid.NewString(), map[string]any{
		"available_image_id": available.ID,
		"internal_name":      "other",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = ts.call(http.MethodDelete, "/api/v1/picture/"+pictureID, nil)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Empty(t, ts.storage.Keys())
}

func TestImageUploadRequiresImage(t *testing.T) {
	ts := newTestServer(t)

	status, out := ts.call(http.MethodPost, "/api/v1/image-upload", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The file field is required."}, errorsOf(out)["file"])

	body, contentType := testutil.Multipart(t, "file", "notes.txt", []byte("plain text"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/image-upload", body)
	req.Header.Set("Content-Type", contentType)
	status, out = decode(t, ts.send(req))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The file field must be an image."}, errorsOf(out)["file"])
}

func TestMarkdownEndpoints(t *testing.T) {
	ts := newTestServer(t)

	status, out := ts.call(http.MethodPost, "/api/v1/markdown/to-html", map[string]any{"content": "**bold**"})
	require.Equal(t, http.StatusOK, status, out)
	assert.Contains(t, data(out)["html"], "<strong>bold</strong>")

	status, out = ts.call(http.MethodPost, "/api/v1/markdown/to-html", map[string]any{"content": "    indented code\n"})
	require.Equal(t, http.StatusOK, status, out)
	assert.Contains(t, data(out)["html"], "<pre><code>indented code")

	status, out = ts.call(http.MethodPost, "/api/v1/markdown/to-html", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The content field is required."}, errorsOf(out)["content"])

	status, out = ts.call(http.MethodPost, "/api/v1/markdown/is-markdown", map[string]any{"content": "# Title"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, data(out)["is_markdown"])

	status, _ = ts.call(http.MethodGet, "/api/v1/markdown/allowed-elements", nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestMobileTokens(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token
	ts.token = ""

	status, out := ts.call(http.MethodPost, "/api/v1/mobile/acquire-token", map[string]any{
		"email":       "admin@example.com",
		"password":    "wrong",
		"device_name": "phone",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, []any{"The provided credentials are incorrect."}, errorsOf(out)["email"])

	status, out = ts.call(http.MethodPost, "/api/v1/mobile/acquire-token", map[string]any{
		"email":       "admin@example.com",
		"password":    "s3cret-pass",
		"device_name": "phone",
	})
	require.Equal(t, http.StatusCreated, status, out)
	phone := data(out)["token"].(string)
	assert.NotEmpty(t, phone)

	ts.token = phone
	status, out = ts.call(http.MethodGet, "/api/v1/mobile/wipe", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), data(out)["revoked"])

	// Every token of the user is gone, including the admin's own.
	for _, token := range []string{phone, admin} {
		ts.token = token
		status, _ = ts.call(http.MethodGet, "/api/v1/language", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	}
}

func TestAcquireTokenIsRateLimited(t *testing.T) {
	ts := newTestServer(t)
	ts.token = ""

	var status int
	for range 4 {
		status, _ = ts.call(http.MethodPost, "/api/v1/mobile/acquire-token", map[string]any{})
	}
	assert.Equal(t, http.StatusTooManyRequests, status)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.call(http.MethodGet, "/api/v1/health", nil)

	resp := ts.send(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "http_requests_total")
}

func TestSwaggerServesTheAPIDescription(t *testing.T) {
	ts := newTestServer(t)
	ts.token = ""

	resp := ts.send(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	status, out := decode(t, resp)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2.0", out["swagger"])
	assert.Equal(t, "/api/v1", out["basePath"])
	paths, _ := out["paths"].(map[string]any)
	assert.Contains(t, paths, "/mobile/acquire-token")
}
