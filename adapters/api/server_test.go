package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edascope/adapters/ingest"
	"edascope/internal/analysis"
	"edascope/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// captureLogger records entries for assertions.
type captureLogger struct {
	mu      sync.Mutex
	entries []ports.RequestEntry
}

func (l *captureLogger) LogRequest(entry ports.RequestEntry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

func (l *captureLogger) last(t *testing.T) ports.RequestEntry {
	t.Helper()
	l.mu.Lock()
	defer l.mu.Unlock()
	require.NotEmpty(t, l.entries)
	return l.entries[len(l.entries)-1]
}

func newTestServer() (*Server, *captureLogger) {
	logger := &captureLogger{}
	s := NewServer(analysis.DefaultQualityConfig(), ingest.NewDataReader(), logger)
	return s, logger
}

func doJSON(s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

// doUpload posts a multipart body with one "file" part of the given content type.
func doUpload(t *testing.T, s *Server, path, contentType, csvData string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="data.csv"`)
	header.Set("Content-Type", contentType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write([]byte(csvData))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func decodeQuality(t *testing.T, w *httptest.ResponseRecorder) QualityResponse {
	t.Helper()
	var resp QualityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	s, logger := newTestServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, serviceName, body["service"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	entry := logger.last(t)
	assert.Equal(t, "/health", entry.Endpoint)
	assert.Equal(t, http.StatusOK, entry.Status)
	assert.NotEmpty(t, entry.RequestID)
}

func TestQualityStubCleanFeatures(t *testing.T) {
	s, _ := newTestServer()

	w := doJSON(s, http.MethodPost, "/quality", QualityRequest{
		NRows:           2000,
		NCols:           10,
		MaxMissingShare: 0,
		NumericCols:     5,
		CategoricalCols: 3,
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeQuality(t, w)
	assert.True(t, resp.OkForModel)
	assert.Equal(t, 1.0, resp.QualityScore)
	assert.False(t, resp.Flags["too_few_rows"])
	assert.Equal(t, 2000, resp.DatasetShape["n_rows"])
}

func TestQualityStubPenalties(t *testing.T) {
	s, _ := newTestServer()

	// 1.0 - 0.2 (missing) - 0.2 (rows) - 0.05 (no categoricals) = 0.55
	w := doJSON(s, http.MethodPost, "/quality", QualityRequest{
		NRows:           100,
		NCols:           10,
		MaxMissingShare: 0.2,
		NumericCols:     4,
		CategoricalCols: 0,
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeQuality(t, w)
	assert.False(t, resp.OkForModel)
	assert.InDelta(t, 0.55, resp.QualityScore, 1e-9)
	assert.True(t, resp.Flags["too_few_rows"])
	assert.True(t, resp.Flags["no_categorical_columns"])
	assert.Contains(t, resp.Message, "rework")
}

func TestQualityStubScoreClamped(t *testing.T) {
	s, _ := newTestServer()

	w := doJSON(s, http.MethodPost, "/quality", QualityRequest{
		NRows:           5,
		NCols:           200,
		MaxMissingShare: 1.0,
		NumericCols:     0,
		CategoricalCols: 2,
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeQuality(t, w)
	assert.Equal(t, 0.0, resp.QualityScore)
	assert.False(t, resp.OkForModel)
}

func TestQualityStubRejectsInvalidPayloads(t *testing.T) {
	s, _ := newTestServer()

	w := doJSON(s, http.MethodPost, "/quality", map[string]interface{}{
		"n_rows": -1, "n_cols": 3, "max_missing_share": 0.1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(s, http.MethodPost, "/quality", map[string]interface{}{
		"n_rows": 10, "n_cols": 3, "max_missing_share": 1.7,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/quality", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQualityFromCSV(t *testing.T) {
	s, logger := newTestServer()

	csvData := "a,b,city\n"
	for i := 0; i < 40; i++ {
		csvData += "1,2,X\n"
	}
	w := doUpload(t, s, "/quality-from-csv", "text/csv", csvData)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeQuality(t, w)
	assert.Equal(t, 40, resp.DatasetShape["n_rows"])
	assert.Equal(t, 3, resp.DatasetShape["n_cols"])
	// boolean flags only; numeric entries live on the flags endpoint
	assert.NotContains(t, resp.Flags, "quality_score")
	assert.True(t, resp.Flags["has_constant_columns"])

	entry := logger.last(t)
	assert.Equal(t, "/quality-from-csv", entry.Endpoint)
	assert.Equal(t, "data.csv", entry.Extra["filename"])
}

func TestQualityFlagsFromCSV(t *testing.T) {
	s, _ := newTestServer()

	w := doUpload(t, s, "/quality-flags-from-csv", "text/csv", "x,y\n1,a\n2,b\n0,c\n")

	require.Equal(t, http.StatusOK, w.Code)
	var resp QualityFlagsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.NRows)
	assert.Equal(t, 2, resp.NCols)
	assert.Contains(t, resp.Flags, "quality_score")
	assert.Contains(t, resp.Flags, "max_missing_share")
	assert.Equal(t, true, resp.Flags["too_few_rows"])
}

func TestUploadRejectsWrongContentType(t *testing.T) {
	s, _ := newTestServer()

	w := doUpload(t, s, "/quality-from-csv", "text/html", "a\n1\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "text/csv")
}

func TestUploadAcceptsOctetStream(t *testing.T) {
	s, _ := newTestServer()

	w := doUpload(t, s, "/quality-from-csv", "application/octet-stream", "a,b\n1,2\n")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUploadRejectsEmptyDataset(t *testing.T) {
	s, _ := newTestServer()

	w := doUpload(t, s, "/quality-from-csv", "text/csv", "a,b\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "no data")
}

func TestUploadRejectsMissingFileField(t *testing.T) {
	s, logger := newTestServer()

	req := httptest.NewRequest(http.MethodPost, "/quality-from-csv", strings.NewReader(""))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	entry := logger.last(t)
	assert.Equal(t, "missing_file", entry.Extra["error"])
}

func TestUploadRejectsMalformedCSV(t *testing.T) {
	s, _ := newTestServer()

	w := doUpload(t, s, "/quality-from-csv", "text/csv", "a,b\n1,2\n3\n")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "parse")
}
