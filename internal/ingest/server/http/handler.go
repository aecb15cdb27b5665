package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/autopeer-io/vfacts/internal/ingest/core"
	"github.com/autopeer-io/vfacts/internal/ingest/core/service"
	"github.com/autopeer-io/vfacts/pkg/log"
	"github.com/autopeer-io/vfacts/pkg/record"
)

type handler struct {
	svc     *service.Service
	maxBody int64
}

// DecodeResponse is returned by the decode endpoints.
type DecodeResponse struct {
	Category     string                `json:"category"`
	Facts        any                   `json:"facts"`
	Unrecognized []record.Unrecognized `json:"unrecognized,omitempty"`
}

type optionsRequest struct {
	OptionCodes string `json:"option_codes"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *handler) listVehicles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Vehicles())
}

func (h *handler) forgetVehicle(w http.ResponseWriter, r *http.Request) {
	if !h.svc.Forget(mux.Vars(r)["id"]) {
		writeError(w, http.StatusNotFound, core.ErrNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) getSnapshot(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	e, err := h.svc.Latest(vars["id"], vars["category"])
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		*core.Entry
		Snapshot any `json:"snapshot"`
	}{Entry: e, Snapshot: service.Facts(e.Snapshot)})
}

func (h *handler) putSnapshot(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	vars := mux.Vars(r)
	e, err := h.svc.IngestContent(r.Context(), vars["id"], vars["category"], r.Header.Get("Content-Type"), body)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusAccepted, struct {
		*core.Entry
		Snapshot any `json:"snapshot"`
	}{Entry: e, Snapshot: service.Facts(e.Snapshot)})
}

func (h *handler) getOptions(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Options(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (h *handler) getPresence(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	writeJSON(w, http.StatusOK, map[string]string{"vehicle_id": id, "state": h.svc.Presence(id)})
}

// decodeOptions accepts either a JSON object with option_codes or the raw
// comma-separated codes as the body.
func (h *handler) decodeOptions(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	codes := strings.TrimSpace(string(body))
	if strings.HasPrefix(codes, "{") {
		var req optionsRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		codes = req.OptionCodes
	}
	writeJSON(w, http.StatusOK, h.svc.DecodeOptions(codes).Summary())
}

func (h *handler) decodeSnapshot(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	category := mux.Vars(r)["category"]
	snap, unrecognized, err := h.svc.DecodeContent(category, r.Header.Get("Content-Type"), body)
	if err != nil {
		writeError(w, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, DecodeResponse{
		Category:     category,
		Facts:        service.Facts(snap),
		Unrecognized: unrecognized,
	})
}

func (h *handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, err)
		} else {
			writeError(w, http.StatusBadRequest, err)
		}
		return nil, false
	}
	return body, true
}

func statusOf(err error) int {
	if errors.Is(err, core.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error(err, "Failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
