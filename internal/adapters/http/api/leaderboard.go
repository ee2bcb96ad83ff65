// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/okian/standings/internal/domain/types"
	"github.com/okian/standings/pkg/logger"
	"github.com/okian/standings/pkg/ranking"
)

// maxBodyBytes bounds the size of a leaderboard request body.
const maxBodyBytes = 32 << 20

// LeaderboardDependencies defines the interface for leaderboard operations
type LeaderboardDependencies interface {
	Leaderboard(ctx context.Context, req types.Request) (types.Board, error)
}

// LeaderboardHandler handles leaderboard requests
type LeaderboardHandler struct {
	deps LeaderboardDependencies
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(deps LeaderboardDependencies) *LeaderboardHandler {
	return &LeaderboardHandler{deps: deps}
}

// HandlePostLeaderboard handles POST /leaderboard requests
func (h *LeaderboardHandler) HandlePostLeaderboard(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_leaderboard"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req types.Request
	if err := decodeBody(w, r, &req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", WrapKind(op, ErrBadRequest, err))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	board, err := h.deps.Leaderboard(r.Context(), req)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, board)
	case errors.Is(err, types.ErrTooManyEntries):
		writeError(w, http.StatusBadRequest, "limit_exceeded", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, types.ErrUnknownScale),
		errors.Is(err, types.ErrInvalidScore),
		errors.Is(err, ranking.ErrInvalidDirection):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	default:
		logger.Get().Error(r.Context(), "leaderboard failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

var errTrailingData = errors.New("trailing data after request body")

// decodeBody decodes exactly one JSON value from the request body.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return errTrailingData
	}
	return nil
}
