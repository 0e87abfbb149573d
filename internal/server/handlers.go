package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/trendtell/internal/history"
	"github.com/ziadkadry99/trendtell/internal/llm"
	"github.com/ziadkadry99/trendtell/internal/series"
)

// describeRequest is the POST /api/describe payload. Values may be
// given as an array or as comma-separated text; the array wins when
// both are present.
type describeRequest struct {
	Values []float64 `json:"values"`
	Series string    `json:"series"`
}

// describeResponse is the POST /api/describe reply.
type describeResponse struct {
	Description  string       `json:"description"`
	Series       string       `json:"series"`
	Model        string       `json:"model"`
	FinishReason string       `json:"finish_reason"`
	Stats        series.Stats `json:"stats"`
}

func (s *Server) handleDescribe(w http.ResponseWriter, r *http.Request) {
	var req describeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	var target series.Series
	switch {
	case len(req.Values) > 0:
		target = series.New(req.Values)
	case req.Series != "":
		parsed, err := series.Parse(req.Series)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		target = parsed
	default:
		http.Error(w, "either values or series is required", http.StatusBadRequest)
		return
	}

	res, err := s.describer.Describe(r.Context(), target)
	if err != nil {
		writeDescribeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, describeResponse{
		Description:  res.Description,
		Series:       res.Series.String(),
		Model:        res.Model,
		FinishReason: res.FinishReason,
		Stats:        res.Series.Describe(),
	})
}

// writeDescribeError maps completion failures to HTTP statuses.
func writeDescribeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, llm.ErrAuth), errors.Is(err, llm.ErrMissingCredential):
		http.Error(w, err.Error(), http.StatusBadGateway)
	case errors.Is(err, llm.ErrRateLimited):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	case errors.Is(err, llm.ErrTransport):
		http.Error(w, err.Error(), http.StatusGatewayTimeout)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := history.QueryFilter{Model: q.Get("model")}
	if v := q.Get("since"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filter.Since = &t
		}
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	runs, err := s.store.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []history.Run{}
	}

	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	run, err := s.store.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, run)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
