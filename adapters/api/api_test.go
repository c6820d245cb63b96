package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goprofile/adapters/report"
	"goprofile/adapters/tabular"
	"goprofile/app"
	"goprofile/domain/profile"
	"goprofile/internal"
	"goprofile/internal/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(maxUploadMB int64) *Server {
	logger := internal.NewLogger(internal.LogLevelError)
	return NewServer(
		app.NewProfileService(logger, profile.Options{Workers: 2}),
		tabular.NewReader(logger),
		report.NewRenderer(),
		maxUploadMB,
		logger,
	)
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func postJSON(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/profile", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return do(t, s, req)
}

func upload(t *testing.T, s *Server, filename string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profile/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return do(t, s, req)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

const csvBody = "age,income,segment\n25,40000,a\n35,52000,b\n45,61000,a\n55,70000,b\n,38000,a\n"

func TestHealth(t *testing.T) {
	w := do(t, newTestServer(1), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestProfileJSON(t *testing.T) {
	body := `{
		"name": "people",
		"target": "income",
		"columns": [
			{"name": "age", "values": [25, 35, 45, 55, null]},
			{"name": "income", "values": [40000, 52000, 61000, 70000, 38000]},
			{"name": "segment", "values": ["a", "b", "a", "b", "a"]}
		]
	}`
	w := postJSON(t, newTestServer(1), body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "people", out["dataset_name"])
	assert.Equal(t, "income", out["target"])
	assert.Len(t, out["features"], 3)
	assert.NotEmpty(t, out["target_relevance"])
}

func TestProfileJSONErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"zero columns", `{"name":"empty","columns":[]}`, http.StatusBadRequest, errors.CodeInvalidInput},
		{"malformed", `{"columns":`, http.StatusBadRequest, errors.CodeInvalidInput},
		{"ragged", `{"columns":[{"name":"a","values":[1,2]},{"name":"b","values":[1]}]}`, http.StatusBadRequest, errors.CodeInvalidInput},
		{"unknown target", `{"target":"z","columns":[{"name":"a","values":[1,2]}]}`, http.StatusBadRequest, errors.CodeInvalidInput},
		{"bad format", `{"format":"pdf","columns":[{"name":"a","values":[1]}]}`, http.StatusBadRequest, errors.CodeUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, newTestServer(1), tt.body)
			assert.Equal(t, tt.status, w.Code)
			body := decodeError(t, w)
			assert.Equal(t, tt.code, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestUploadCSV(t *testing.T) {
	w := upload(t, newTestServer(1), "people.csv", []byte(csvBody), map[string]string{
		"target": "income",
		"format": "markdown",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")
	out := w.Body.String()
	for _, name := range []string{"age", "income", "segment"} {
		assert.Contains(t, out, "### "+name)
	}
}

func TestUploadErrors(t *testing.T) {
	s := newTestServer(1)

	w := upload(t, s, "", nil, map[string]string{"target": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errors.CodeInvalidInput, decodeError(t, w)["code"])

	w = upload(t, s, "data.parquet", []byte("PAR1"), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, errors.CodeUnsupportedFormat, decodeError(t, w)["code"])

	w = upload(t, s, "people.csv", []byte(csvBody), map[string]string{"top_n": "zero"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = upload(t, s, "people.csv", []byte(csvBody), map[string]string{"target": "missing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadTooLarge(t *testing.T) {
	big := bytes.Repeat([]byte("1,2,3\n"), 2*megabyte/6)
	w := upload(t, newTestServer(1), "big.csv", append([]byte("a,b,c\n"), big...), nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, errors.CodePayloadTooLarge, decodeError(t, w)["code"])
}
