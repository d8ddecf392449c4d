package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/blacktop/hubcast/internal/logutil"
	"github.com/blacktop/hubcast/internal/social"
)

// Handlers holds the endpoint implementations.
type Handlers struct {
	dispatcher *social.Dispatcher
}

// NewHandlers wires the handlers to a dispatcher.
func NewHandlers(dispatcher *social.Dispatcher) *Handlers {
	return &Handlers{dispatcher: dispatcher}
}

// Publish is the POST / endpoint: decode the request, dispatch it, and
// return the per-platform report. The user_id is taken from the payload as
// observed upstream; verifying it against an authenticated identity is the
// obvious hardening step.
func (h *Handlers) Publish(w http.ResponseWriter, r *http.Request) {
	var req social.PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	start := time.Now()
	report, err := h.dispatcher.Dispatch(r.Context(), req)
	if err != nil {
		if errors.Is(err, social.ErrMissingFields) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	observeDispatch(report, time.Since(start))

	writeJSON(w, http.StatusOK, report)
}

// Preflight answers CORS preflight requests with an empty 200. The CORS
// headers themselves come from the middleware.
func (h *Handlers) Preflight(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// Health is a trivial liveness endpoint.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logutil.Errorf("encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
