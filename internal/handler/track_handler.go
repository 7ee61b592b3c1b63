package handler

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/jz2447/csci420-gps-proj/internal/analysis"
	"github.com/jz2447/csci420-gps-proj/internal/render"
	"github.com/jz2447/csci420-gps-proj/internal/service"
	"github.com/jz2447/csci420-gps-proj/pkg/response"
)

const kmlContentType = "application/vnd.google-earth.kml+xml"

// TrackHandler handles HTTP requests for track reconstruction
type TrackHandler struct {
	trackService   *service.TrackService
	maxUploadBytes int64
}

// NewTrackHandler creates a new track handler
func NewTrackHandler(trackService *service.TrackService, maxUploadBytes int64) *TrackHandler {
	return &TrackHandler{
		trackService:   trackService,
		maxUploadBytes: maxUploadBytes,
	}
}

// AnalyzeTrack handles POST /api/v1/tracks/analyze
func (h *TrackHandler) AnalyzeTrack(c *gin.Context) {
	if c.Request.ContentLength > h.maxUploadBytes {
		response.TooLarge(c, "Upload exceeds the size limit")
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.TooLarge(c, "Upload exceeds the size limit")
			return
		}
		response.BadRequest(c, "Missing gps log in form field \"file\"")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, err.Error())
		return
	}
	defer f.Close()

	track, err := h.trackService.Analyze(f)
	if err != nil {
		if errors.Is(err, analysis.ErrEmptyTrack) {
			response.UnprocessableEntity(c, err.Error())
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	if c.Query("format") == "kml" {
		var buf bytes.Buffer
		if err := render.KML(track, &buf); err != nil {
			log.Errorf("[TrackHandler] render %s: %v", fileHeader.Filename, err)
			response.InternalError(c, "Failed to render KML")
			return
		}
		c.Data(http.StatusOK, kmlContentType, buf.Bytes())
		return
	}

	response.Success(c, track)
}
