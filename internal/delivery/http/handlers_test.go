package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mapban/internal/application"
	"mapban/internal/models"

	"github.com/gin-gonic/gin"
)

var errInfra = errors.New("disk on fire")

type noopLogger struct{}

func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Debug(string, ...interface{}) {}

// stubService returns canned values per operation; err takes precedence.
type stubService struct {
	err       error
	created   *application.CreateMatchResult
	banResult *application.BanResult
	play      *application.PlayView
	public    *application.PublicView
	deleted   int64
}

func (s *stubService) CreateMatch(application.CreateMatchInput) (*application.CreateMatchResult, error) {
	return s.created, s.err
}

func (s *stubService) SubmitBan(string, string) (*application.BanResult, error) {
	return s.banResult, s.err
}

func (s *stubService) PlayState(string) (*application.PlayView, error) {
	return s.play, s.err
}

func (s *stubService) PublicState(string) (*application.PublicView, error) {
	return s.public, s.err
}

func (s *stubService) ListMatches() ([]application.MatchSummary, error) {
	return nil, s.err
}

func (s *stubService) AdminMatches() ([]application.AdminMatch, error) {
	return nil, s.err
}

func (s *stubService) DeleteMatch(string) error { return s.err }

func (s *stubService) DeleteMatches([]string) (int64, error) { return s.deleted, s.err }

func (s *stubService) ExportMatches() ([]byte, error) { return []byte("PK"), s.err }

func newTestRouter(stub *stubService) http.Handler {
	gin.SetMode(gin.TestMode)
	h := &Handler{
		services: &application.Service{MatchService: stub},
		logger:   noopLogger{},
	}
	return newHandler(h)
}

func TestErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "invalid input", err: application.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not your turn", err: application.ErrNotYourTurn, wantStatus: http.StatusBadRequest},
		{name: "unknown map", err: application.ErrUnknownMap, wantStatus: http.StatusBadRequest},
		{name: "already banned", err: application.ErrAlreadyBanned, wantStatus: http.StatusBadRequest},
		{name: "finished", err: application.ErrMatchFinished, wantStatus: http.StatusBadRequest},
		{name: "bad token", err: application.ErrTokenInvalid, wantStatus: http.StatusNotFound},
		{name: "conflict", err: application.ErrConflict, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&stubService{err: tt.err})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/play/sometoken/ban",
				strings.NewReader(`{"map":"AWOKEN"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestSubmitBanResponse(t *testing.T) {
	stub := &stubService{
		banResult: &application.BanResult{
			State:       models.StateFinished,
			CurrentTurn: "",
			Remaining:   []string{"BLOOD RUN"},
			FinalMap:    "BLOOD RUN",
		},
	}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/play/sometoken/ban",
		strings.NewReader(`{"map":"deep embrace"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var body struct {
		OK       bool     `json:"ok"`
		State    string   `json:"state"`
		Remains  []string `json:"remaining"`
		FinalMap string   `json:"final_map"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.OK || body.State != "finished" || body.FinalMap != "BLOOD RUN" {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
}

func TestSubmitBanRejectsBadBody(t *testing.T) {
	r := newTestRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/play/sometoken/ban",
		strings.NewReader(`not json`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", w.Code)
	}
}

func TestCreateMatchResponse(t *testing.T) {
	stub := &stubService{
		created: &application.CreateMatchResult{
			ID:   "id-1",
			Slug: "alpha-vs-bravo",
			MatchLinks: application.MatchLinks{
				PublicURL: "http://localhost:8080/bans/alpha-vs-bravo",
				TeamAURL:  "http://localhost:8080/play/token-1",
				TeamBURL:  "http://localhost:8080/play/token-2",
			},
		},
	}
	r := newTestRouter(stub)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/matches",
		strings.NewReader(`{"teamA_name":"Alpha","teamB_name":"Bravo"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var result application.CreateMatchResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Slug != "alpha-vs-bravo" || result.TeamBURL == "" {
		t.Fatalf("unexpected response: %s", w.Body.String())
	}
}

func TestPublicStateNotFound(t *testing.T) {
	r := newTestRouter(&stubService{err: application.ErrMatchNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/public/alpha-vs-bravo", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestInternalErrorsAreOpaque(t *testing.T) {
	r := newTestRouter(&stubService{err: errInfra})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/matches", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "disk on fire") {
		t.Fatalf("infra error detail leaked to caller: %s", w.Body.String())
	}
}

func TestExportMatchesHeaders(t *testing.T) {
	r := newTestRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/matches/export", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "attachment") {
		t.Fatalf("expected attachment disposition, got %q", w.Header().Get("Content-Disposition"))
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter(&stubService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/matches", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS allow-origin header")
	}
}
