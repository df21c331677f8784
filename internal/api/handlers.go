// Package api exposes HTTP handlers for the tracker.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"example.com/ftracker/internal/auth"
	"example.com/ftracker/internal/domain"
	"example.com/ftracker/internal/persistence"
	"example.com/ftracker/internal/tracker"
)

const maxBatchSize = 500

type packageProcessor interface {
	Process(context.Context, domain.SensorPackage) (domain.Summary, error)
	ProcessBatch(context.Context, []domain.SensorPackage, io.Writer) (tracker.BatchReport, error)
}

// Handler coordinates HTTP requests with the tracker service.
type Handler struct {
	tracker packageProcessor
	repo    domain.SummaryRepository
}

// NewHandler builds a Handler. repo may be nil when persistence is disabled.
func NewHandler(svc packageProcessor, repo domain.SummaryRepository) *Handler {
	return &Handler{tracker: svc, repo: repo}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/workouts/summary", h.summary)
	mux.HandleFunc("/v1/workouts/batch", h.batch)
	mux.HandleFunc("/v1/workouts/codes", h.codes)
	mux.HandleFunc("/v1/workouts/recent", h.recent)
	mux.HandleFunc("/v1/workouts/", h.summaryByID)
	mux.HandleFunc("/healthz", healthz)
}

func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !requireScope(w, r, auth.ScopeWorkoutsWrite) {
		return
	}

	var req SensorPackageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	summary, err := h.tracker.Process(r.Context(), req.toPackage())
	if err != nil {
		writeProcessError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSummaryView(summary))
}

func (h *Handler) batch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !requireScope(w, r, auth.ScopeWorkoutsWrite) {
		return
	}

	var req BatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	pkgs := make([]domain.SensorPackage, 0, len(req.Packages))
	for _, p := range req.Packages {
		pkgs = append(pkgs, p.toPackage())
	}

	rep, err := h.tracker.ProcessBatch(r.Context(), pkgs, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	resp := BatchResponse{
		Processed: rep.Processed,
		Skipped:   rep.Skipped,
		Summaries: make([]SummaryView, 0, len(rep.Summaries)),
		Failures:  make([]FailureView, 0, len(rep.Failures)),
	}
	for _, s := range rep.Summaries {
		resp.Summaries = append(resp.Summaries, toSummaryView(s))
	}
	for _, f := range rep.Failures {
		resp.Failures = append(resp.Failures, FailureView{
			Index:  f.Index,
			Code:   f.Code,
			Type:   domain.RejectionReason(f.Err),
			Detail: f.Err.Error(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) codes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	items := make([]CodeView, 0)
	for _, code := range domain.Codes() {
		layout, err := domain.Lookup(code)
		if err != nil {
			continue
		}
		items = append(items, CodeView{Code: code, WorkoutType: layout.Kind.String(), Params: layout.Params})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handler) recent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !requireRead(w, r) {
		return
	}
	if h.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "storage_disabled", "summary storage is not configured")
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			if parsed > 100 {
				parsed = 100
			}
			limit = parsed
		}
	}

	cursor, err := persistence.DecodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", "invalid cursor")
		return
	}

	summaries, next, err := h.repo.ListRecent(r.Context(), cursor, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	resp := ListSummariesResponse{
		Items:      make([]SummaryView, 0, len(summaries)),
		NextCursor: persistence.EncodeCursor(next),
	}
	for _, s := range summaries {
		resp.Items = append(resp.Items, toSummaryView(s))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) summaryByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/workouts/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "not_found", "unknown route")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	if !requireRead(w, r) {
		return
	}
	if h.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "storage_disabled", "summary storage is not configured")
		return
	}
	if _, err := uuid.Parse(id); err != nil || len(id) != 36 {
		writeError(w, http.StatusNotFound, "not_found", domain.ErrSummaryNotFound.Error())
		return
	}

	summary, err := h.repo.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	if summary == nil {
		writeError(w, http.StatusNotFound, "not_found", domain.ErrSummaryNotFound.Error())
		return
	}
	writeJSON(w, http.StatusOK, toSummaryView(*summary))
}

func requireScope(w http.ResponseWriter, r *http.Request, scope string) bool {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return false
	}
	if !claims.HasScope(scope) {
		writeError(w, http.StatusForbidden, "forbidden", "scope "+scope+" required")
		return false
	}
	return true
}

func requireRead(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return false
	}
	if !claims.CanRead() {
		writeError(w, http.StatusForbidden, "forbidden", "scope "+auth.ScopeWorkoutsRead+" required")
		return false
	}
	return true
}

// SensorPackageRequest is one sensor package in a request body.
type SensorPackageRequest struct {
	WorkoutType string    `json:"workout_type"`
	Data        []float64 `json:"data"`
}

func (p SensorPackageRequest) toPackage() domain.SensorPackage {
	return domain.SensorPackage{Code: strings.TrimSpace(p.WorkoutType), Values: p.Data}
}

// BatchRequest is the payload for POST /v1/workouts/batch.
type BatchRequest struct {
	Packages []SensorPackageRequest `json:"packages"`
}

// Validate ensures request correctness.
func (r BatchRequest) Validate() error {
	if len(r.Packages) == 0 {
		return errors.New("packages must not be empty")
	}
	if len(r.Packages) > maxBatchSize {
		return errors.New("too many packages in one batch")
	}
	return nil
}

// SummaryView exposes a processed package.
type SummaryView struct {
	ID          string             `json:"id"`
	Code        string             `json:"workout_code"`
	Values      []float64          `json:"data"`
	Summary     domain.InfoMessage `json:"summary"`
	Message     string             `json:"message"`
	ProcessedAt time.Time          `json:"processed_at"`
}

// FailureView describes a skipped package in a batch.
type FailureView struct {
	Index  int    `json:"index"`
	Code   string `json:"workout_code"`
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

// BatchResponse packages batch results.
type BatchResponse struct {
	Processed int           `json:"processed"`
	Skipped   int           `json:"skipped"`
	Summaries []SummaryView `json:"summaries"`
	Failures  []FailureView `json:"failures"`
}

// CodeView describes one supported sensor code.
type CodeView struct {
	Code        string   `json:"code"`
	WorkoutType string   `json:"workout_type"`
	Params      []string `json:"params"`
}

// ListSummariesResponse packages list results.
type ListSummariesResponse struct {
	Items      []SummaryView `json:"items"`
	NextCursor string        `json:"next_cursor,omitempty"`
}

func writeProcessError(w http.ResponseWriter, err error) {
	if reason := domain.RejectionReason(err); reason != "" {
		writeError(w, http.StatusUnprocessableEntity, reason, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "server_error", err.Error())
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func toSummaryView(s domain.Summary) SummaryView {
	return SummaryView{
		ID:          s.ID,
		Code:        s.Code,
		Values:      s.Values,
		Summary:     s.Message,
		Message:     s.Text,
		ProcessedAt: s.ProcessedAt,
	}
}
