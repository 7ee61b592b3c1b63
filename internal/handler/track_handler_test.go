package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jz2447/csci420-gps-proj/internal/analysis"
	"github.com/jz2447/csci420-gps-proj/internal/config"
	"github.com/jz2447/csci420-gps-proj/internal/service"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

const header = "h1\nh2\nh3\nh4\nh5\n"

const drive = header +
	"$GPRMC,140000.000,A,4306.0000,N,07730.0000,W,0.50,0.00,010525,,,A*00\n" +
	"$GPRMC,140001.000,A,4306.0060,N,07730.0000,W,10.00,0.00,010525,,,A*00\n" +
	"$GPRMC,140002.000,A,4306.0120,N,07730.0000,W,10.00,0.00,010525,,,A*00\n"

func newRouter(maxBytes int64) *gin.Engine {
	svc := service.NewTrackService(analysis.NewPipeline(config.DefaultPipeline()), nil)
	h := NewTrackHandler(svc, maxBytes)

	r := gin.New()
	r.POST("/analyze", h.AnalyzeTrack)
	return r
}

func upload(t *testing.T, field, content, query string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile(field, "drive.txt")
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze"+query, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestAnalyzeTrack_JSON(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(1<<20).ServeHTTP(rec, upload(t, "file", drive, ""))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Code int `json:"code"`
		Data struct {
			Segments [][][2]float64 `json:"segments"`
			Start    struct {
				Description string `json:"description"`
			} `json:"start"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Code)
	require.Len(t, resp.Data.Segments, 1)
	assert.Len(t, resp.Data.Segments[0], 3)
	assert.Equal(t, "Start time: 2025-05-01T14:00:00Z", resp.Data.Start.Description)
}

func TestAnalyzeTrack_KML(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(1<<20).ServeHTTP(rec, upload(t, "file", drive, "?format=kml"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, kmlContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<kml")
	assert.Contains(t, rec.Body.String(), "<LineString>")
}

func TestAnalyzeTrack_MissingFile(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(1<<20).ServeHTTP(rec, upload(t, "other", drive, ""))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnalyzeTrack_EmptyTrack(t *testing.T) {
	parked := strings.ReplaceAll(drive, "10.00", "0.10")

	rec := httptest.NewRecorder()
	newRouter(1<<20).ServeHTTP(rec, upload(t, "file", parked, ""))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "empty track")
}

func TestAnalyzeTrack_TooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(64).ServeHTTP(rec, upload(t, "file", drive, ""))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}
