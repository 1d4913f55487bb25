package handlers

import (
	"context"
	"net/http"

	"cadr/internal/models"
	"cadr/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockAnalysis struct {
	fitOut  service.FitOutcome
	run     models.Run
	runs    []models.Run
	err     error
	lastFit service.FitParams
	lastRun service.RunParams
	lastRec service.RecordingFitParams
	lastID  string
	limit   int
}

func (m *mockAnalysis) Fit(_ context.Context, p service.FitParams) (service.FitOutcome, error) {
	m.lastFit = p
	return m.fitOut, m.err
}
func (m *mockAnalysis) Analyze(_ context.Context, p service.RunParams) (models.Run, error) {
	m.lastRun = p
	return m.run, m.err
}
func (m *mockAnalysis) FitRecording(_ context.Context, id string, p service.RecordingFitParams) (models.Run, error) {
	m.lastID = id
	m.lastRec = p
	return m.run, m.err
}
func (m *mockAnalysis) GetRun(_ context.Context, id string) (models.Run, error) {
	m.lastID = id
	return m.run, m.err
}
func (m *mockAnalysis) ListRuns(_ context.Context, limit int) ([]models.Run, error) {
	m.limit = limit
	return m.runs, m.err
}

type mockChamber struct {
	rec       models.Recording
	recs      []models.Recording
	status    service.ChamberStatus
	err       error
	statusErr error
	lastStart service.ChamberParams
	lastID    string
}

func (m *mockChamber) Start(_ context.Context, p service.ChamberParams) (models.Recording, error) {
	m.lastStart = p
	return m.rec, m.err
}
func (m *mockChamber) Stop(context.Context) (models.Recording, error) { return m.rec, m.err }
func (m *mockChamber) Status(context.Context) (service.ChamberStatus, error) {
	return m.status, m.statusErr
}
func (m *mockChamber) Recording(_ context.Context, id string) (models.Recording, error) {
	m.lastID = id
	return m.rec, m.err
}
func (m *mockChamber) Recordings(context.Context) ([]models.Recording, error) {
	return m.recs, m.err
}

type mockEventLog struct {
	resp       []models.Event
	err        error
	calls      int
	lastFilter service.LogFilter
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.Event, error) {
	m.calls++
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, prometheus.NewRegistry())
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
