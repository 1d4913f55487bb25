package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"cadr/internal/decay"
	"cadr/internal/models"
	"cadr/internal/repository"
	"cadr/internal/service"
)

func TestRecordingHandlers(t *testing.T) {
	chamber := &mockChamber{
		rec:    models.Recording{ID: "rec-1", Profile: "sps30", Status: models.RecordingActive},
		recs:   []models.Recording{{ID: "rec-1"}},
		status: service.ChamberStatus{Active: true},
	}
	analysis := &mockAnalysis{run: models.Run{ID: "run-9", RecordingID: "rec-1"}}
	r := newTestRouter(&service.Service{
		Authorization: &mockAuth{parseID: 1},
		Chamber:       chamber,
		Analysis:      analysis,
	})

	if w := doJSON(t, r, http.MethodPost, "/api/v1/recordings/start", ""); w.Code != http.StatusCreated {
		t.Fatalf("start without body: %d %s", w.Code, w.Body.String())
	}
	if w := doJSON(t, r, http.MethodPost, "/api/v1/recordings/start", `{"profile":"pms5003","ach":6}`); w.Code != http.StatusCreated {
		t.Fatalf("start: %d", w.Code)
	}
	if chamber.lastStart.Profile != "pms5003" || chamber.lastStart.ACH != 6 {
		t.Fatalf("start params not bound: %+v", chamber.lastStart)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/v1/recordings/status", ""); w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/v1/recordings", ""); w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodGet, "/api/v1/recordings/rec-1", ""); w.Code != http.StatusOK || chamber.lastID != "rec-1" {
		t.Fatalf("get: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/api/v1/recordings/stop", ""); w.Code != http.StatusOK {
		t.Fatalf("stop: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/v1/recordings/rec-1/fit", `{"room_volume":1000}`)
	if w.Code != http.StatusCreated || analysis.lastID != "rec-1" || analysis.lastRec.RoomVolume != 1000 {
		t.Fatalf("fit: %d %s", w.Code, w.Body.String())
	}
}

func TestRecordingHandlers_Errors(t *testing.T) {
	cases := []struct {
		name   string
		method string
		path   string
		body   string
		setup  func(*mockChamber, *mockAnalysis)
		want   int
	}{
		{
			name: "busy", method: http.MethodPost, path: "/api/v1/recordings/start",
			setup: func(c *mockChamber, _ *mockAnalysis) { c.err = service.ErrChamberBusy },
			want:  http.StatusConflict,
		},
		{
			name: "bad body", method: http.MethodPost, path: "/api/v1/recordings/start", body: `{"ach":"fast"}`,
			setup: func(*mockChamber, *mockAnalysis) {},
			want:  http.StatusBadRequest,
		},
		{
			name: "idle", method: http.MethodPost, path: "/api/v1/recordings/stop",
			setup: func(c *mockChamber, _ *mockAnalysis) { c.err = service.ErrChamberIdle },
			want:  http.StatusConflict,
		},
		{
			name: "unknown recording", method: http.MethodGet, path: "/api/v1/recordings/nope",
			setup: func(c *mockChamber, _ *mockAnalysis) { c.err = repository.ErrNotFound },
			want:  http.StatusNotFound,
		},
		{
			name: "fit fails", method: http.MethodPost, path: "/api/v1/recordings/rec-1/fit", body: `{"room_volume":1}`,
			setup: func(_ *mockChamber, a *mockAnalysis) {
				a.err = fmt.Errorf("trial 1: %w", decay.ErrFitDivergence)
			},
			want: http.StatusUnprocessableEntity,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			chamber, analysis := &mockChamber{}, &mockAnalysis{}
			tc.setup(chamber, analysis)
			r := newTestRouter(&service.Service{
				Authorization: &mockAuth{parseID: 1},
				Chamber:       chamber,
				Analysis:      analysis,
			})
			if w := doJSON(t, r, tc.method, tc.path, tc.body); w.Code != tc.want {
				t.Fatalf("status=%d, want %d (%s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}
