package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/matzehuels/gravitymap/pkg/buildinfo"
	"github.com/matzehuels/gravitymap/pkg/errors"
	"github.com/matzehuels/gravitymap/pkg/graph"
	"github.com/matzehuels/gravitymap/pkg/pipeline"
)

// CacheHeader reports whether a layout came from the cache ("hit" or "miss").
const CacheHeader = "X-Cache"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{OK: true, Build: buildinfo.Get()})
}

// handleMatchLayout lays out a center and its match list with the tuning
// existing map clients expect.
func (s *Server) handleMatchLayout(w http.ResponseWriter, r *http.Request) {
	var req matchLayoutRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	center := string(req.CenterID)
	opts := pipeline.MatchOptions()
	opts.MaxNodes = s.cfg.MaxNodes

	layout, hit, err := s.runner.ComputeLayout(r.Context(), graph.FromMatches(center, req.matches()), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := matchLayoutResponse{
		Positions: layout.Positions,
		Edges:     make([]edgeTriple, len(req.Matches)),
	}
	// Edges echo the raw score, not the floored layout weight.
	for i, m := range req.matches() {
		resp.Edges[i] = edgeTriple{From: center, To: m.ID, Weight: m.ScoreOrDefault()}
	}
	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, resp)
}

// handleLayout lays out an arbitrary weighted graph.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := s.decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.DefaultOptions().Apply(req.Config)
	opts.MaxNodes = s.cfg.MaxNodes
	opts.NoCache = req.NoCache

	layout, hit, err := s.runner.ComputeLayout(r.Context(), req.Graph, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	setCacheHeader(w, hit)
	writeJSON(w, http.StatusOK, layout)
}

// decode reads a JSON body into v and validates its struct tags.
func (s *Server) decode(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case stderrors.As(err, &maxErr):
			return errors.New(errors.ErrCodeTooLarge, "request body exceeds %d bytes", maxErr.Limit)
		case stderrors.Is(err, io.EOF):
			return errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		default:
			return errors.New(errors.ErrCodeInvalidInput, "invalid JSON body: %v", err)
		}
	}
	if err := pipeline.Validator().Struct(v); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "invalid request: %v", pipeline.FormatValidationError(err))
	}
	return nil
}

// writeError writes err as a JSON error. Internal failures are logged and
// reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := errors.HTTPStatus(code)

	msg := errors.UserMessage(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed",
			"path", r.URL.Path,
			"error", err,
			"request_id", RequestIDFromContext(r.Context()))
	}
	if code == errors.ErrCodeInternal {
		msg = "internal server error"
	}
	writeJSON(w, status, errorResponse{Error: msg, Code: code})
}

func setCacheHeader(w http.ResponseWriter, hit bool) {
	if hit {
		w.Header().Set(CacheHeader, "hit")
	} else {
		w.Header().Set(CacheHeader, "miss")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
