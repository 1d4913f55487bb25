package handlers

import (
	"errors"
	"io"
	"net/http"

	"cadr/internal/service"

	"github.com/gin-gonic/gin"
)

// @Summary      Start a simulated recording
// @Description  Empty fields take their defaults: sps30, ach 4, peak 800, noise 0.02.
// @Tags         recordings
// @Accept       json
// @Produce      json
// @Param        body  body      service.ChamberParams  false  "Chamber model"
// @Success      201   {object}  models.Recording
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/v1/recordings/start [post]
// @Security     BearerAuth
func (h *Handler) startRecording(c *gin.Context) {
	var req service.ChamberParams
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	rec, err := h.services.Chamber.Start(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "recording_start_failed", err, "profile", req.Profile)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// @Summary      Stop the active recording
// @Tags         recordings
// @Produce      json
// @Success      200  {object}  models.Recording
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/recordings/stop [post]
// @Security     BearerAuth
func (h *Handler) stopRecording(c *gin.Context) {
	rec, err := h.services.Chamber.Stop(c.Request.Context())
	if err != nil {
		h.fail(c, "recording_stop_failed", err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// @Summary      Chamber status
// @Tags         recordings
// @Produce      json
// @Success      200  {object}  service.ChamberStatus
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/recordings/status [get]
// @Security     BearerAuth
func (h *Handler) recordingStatus(c *gin.Context) {
	st, err := h.services.Chamber.Status(c.Request.Context())
	if err != nil {
		h.fail(c, "recording_status_failed", err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary      List recordings
// @Tags         recordings
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, recordings"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/recordings [get]
// @Security     BearerAuth
func (h *Handler) listRecordings(c *gin.Context) {
	recs, err := h.services.Chamber.Recordings(c.Request.Context())
	if err != nil {
		h.fail(c, "recordings_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":      len(recs),
		"recordings": recs,
	})
}

// @Summary      Get recording
// @Tags         recordings
// @Produce      json
// @Param        id   path      string  true  "Recording ID"
// @Success      200  {object}  models.Recording
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/recordings/{id} [get]
// @Security     BearerAuth
func (h *Handler) getRecording(c *gin.Context) {
	rec, err := h.services.Chamber.Recording(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "recording_get_failed", err, "recording_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, rec)
}

// @Summary      Fit a finished recording
// @Description  Analyses the recording as a single trial and stores the run.
// @Tags         recordings
// @Accept       json
// @Produce      json
// @Param        id    path      string                      true  "Recording ID"
// @Param        body  body      service.RecordingFitParams  true  "Room parameters"
// @Success      201   {object}  models.Run
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/v1/recordings/{id}/fit [post]
// @Security     BearerAuth
func (h *Handler) fitRecording(c *gin.Context) {
	var req service.RecordingFitParams
	if !h.bindJSON(c, &req) {
		return
	}
	run, err := h.services.Analysis.FitRecording(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.fail(c, "recording_fit_failed", err, "recording_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusCreated, run)
}
