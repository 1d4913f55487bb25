package handlers

import (
	"net/http"
	"strconv"

	"cadr/internal/sensor"
	"cadr/internal/service"

	"github.com/gin-gonic/gin"
)

const maxRunListLimit = 500

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      List sensor profiles
// @Tags         analysis
// @Produce      json
// @Success      200  {array}   sensor.Profile
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/profiles [get]
// @Security     BearerAuth
func (h *Handler) listProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, sensor.All())
}

// @Summary      Fit one decay series
// @Description  Windows the series per the sensor profile, fits the decay rate and converts it to CADR against baseline_ach.
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        body  body      service.FitParams  true  "Series and room parameters"
// @Success      200   {object}  service.FitOutcome
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/v1/fits [post]
// @Security     BearerAuth
func (h *Handler) createFit(c *gin.Context) {
	var req service.FitParams
	if !h.bindJSON(c, &req) {
		return
	}
	out, err := h.services.Analysis.Fit(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "fit_failed", err, "profile", req.Profile)
		return
	}
	c.JSON(http.StatusOK, out)
}

// @Summary      Analyse a baseline and trials
// @Description  Fits the baseline (or uses baseline_ach), fits every trial, and stores mean CADR with its standard error.
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        body  body      service.RunParams  true  "Baseline, trials and room parameters"
// @Success      201   {object}  models.Run
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/runs [post]
// @Security     BearerAuth
func (h *Handler) createRun(c *gin.Context) {
	var req service.RunParams
	if !h.bindJSON(c, &req) {
		return
	}
	run, err := h.services.Analysis.Analyze(c.Request.Context(), req)
	if err != nil {
		h.fail(c, "run_failed", err, "profile", req.Profile, "trials", len(req.Trials))
		return
	}
	c.JSON(http.StatusCreated, run)
}

// @Summary      List runs
// @Tags         analysis
// @Produce      json
// @Param        limit  query     int  false  "Maximum number of runs (newest first)"  example(20)
// @Success      200    {object}  map[string]interface{}  "count, runs"
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/v1/runs [get]
// @Security     BearerAuth
func (h *Handler) listRuns(c *gin.Context) {
	limit := 0
	if s := c.Query("limit"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v <= 0 || v > maxRunListLimit {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 500"})
			return
		}
		limit = v
	}
	runs, err := h.services.Analysis.ListRuns(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, "runs_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(runs),
		"runs":  runs,
	})
}

// @Summary      Get run
// @Tags         analysis
// @Produce      json
// @Param        id   path      string  true  "Run ID"
// @Success      200  {object}  models.Run
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/runs/{id} [get]
// @Security     BearerAuth
func (h *Handler) getRun(c *gin.Context) {
	run, err := h.services.Analysis.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "run_get_failed", err, "run_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, run)
}
