package routers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/keepnotes/keep-note-service/internal/app"
	"github.com/keepnotes/keep-note-service/internal/dao"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
		Type:         "sqlite",
		Path:         filepath.Join(t.TempDir(), "db.sqlite3"),
		AutoMigrate:  true,
		MaxIdleConns: 2,
		MaxOpenConns: 2,
	}, nil)
	require.NoError(t, err)

	cfg := &app.AppConfig{}
	cfg.App.DefaultContextTimeout = 5

	appContainer, err := app.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)

	return NewRouter(appContainer)
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type apiRes struct {
	Code    int             `json:"code"`
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeRes(t *testing.T, w *httptest.ResponseRecorder) apiRes {
	t.Helper()
	var res apiRes
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func createNote(t *testing.T, r *gin.Engine, body map[string]any) map[string]any {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/notes", body)
	require.Equal(t, http.StatusCreated, w.Code)

	res := decodeRes(t, w)
	var note map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &note))
	return note
}

func TestNoteCrudFlow(t *testing.T) {
	r := newTestRouter(t)

	created := createNote(t, r, map[string]any{
		"title":   "Milk",
		"content": map[string]any{"text": "buy milk"},
		"color":   "teal",
	})
	uuid := created["uuid"].(string)
	require.NotEmpty(t, uuid)

	// 读取
	w := doRequest(t, r, http.MethodGet, "/api/notes/"+uuid, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	res := decodeRes(t, w)
	var note map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &note))
	assert.Equal(t, "Milk", note["title"])
	assert.Equal(t, "teal", note["color"])

	// 部分更新
	w = doRequest(t, r, http.MethodPut, "/api/notes/"+uuid, map[string]any{"isPinned": true})
	assert.Equal(t, http.StatusOK, w.Code)
	res = decodeRes(t, w)
	require.NoError(t, json.Unmarshal(res.Data, &note))
	assert.Equal(t, true, note["isPinned"])
	assert.Equal(t, "Milk", note["title"])

	// 列表
	w = doRequest(t, r, http.MethodGet, "/api/notes", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	res = decodeRes(t, w)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &list))
	assert.Len(t, list, 1)

	// 删除
	w = doRequest(t, r, http.MethodDelete, "/api/notes/"+uuid, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	res = decodeRes(t, w)
	var deleted map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &deleted))
	assert.Equal(t, true, deleted["success"])

	// 再删返回 404
	w = doRequest(t, r, http.MethodDelete, "/api/notes/"+uuid, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetMissingNoteReturns404(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/notes/no-such-uuid", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	res := decodeRes(t, w)
	assert.False(t, res.Status)
}

func TestCreateNoteRejectsUnknownColor(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodPost, "/api/notes", map[string]any{
		"title": "bad",
		"color": "magenta",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateNoteRejectsMalformedBody(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/notes", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListExcludesArchivedByDefault(t *testing.T) {
	r := newTestRouter(t)

	createNote(t, r, map[string]any{"title": "active"})
	createNote(t, r, map[string]any{"title": "archived", "isArchived": true})

	w := doRequest(t, r, http.MethodGet, "/api/notes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decodeRes(t, w)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "active", list[0]["title"])

	// 显式包含归档
	w = doRequest(t, r, http.MethodGet, "/api/notes?includeArchived=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res = decodeRes(t, w)
	require.NoError(t, json.Unmarshal(res.Data, &list))
	assert.Len(t, list, 2)
}

func TestColorsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/colors", nil)
	require.Equal(t, http.StatusOK, w.Code)

	res := decodeRes(t, w)
	var colors []map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &colors))
	require.Len(t, colors, 10)
	assert.Equal(t, "default", colors[0]["id"])
}

func TestSyncDisabledEndpoints(t *testing.T) {
	r := newTestRouter(t)

	// 凭证未配置时同步触发返回 started=false
	w := doRequest(t, r, http.MethodPost, "/api/sync", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res := decodeRes(t, w)
	var result map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &result))
	assert.Equal(t, false, result["started"])

	w = doRequest(t, r, http.MethodPost, "/api/sync/restore", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res = decodeRes(t, w)
	require.NoError(t, json.Unmarshal(res.Data, &result))
	assert.Equal(t, false, result["started"])

	w = doRequest(t, r, http.MethodGet, "/api/sync/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	res = decodeRes(t, w)
	var status map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &status))
	assert.Equal(t, "idle", status["status"])
}

func TestUnknownRouteReturns404(t *testing.T) {
	r := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
