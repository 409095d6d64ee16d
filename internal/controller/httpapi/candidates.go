package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/interview_scheduler/internal/service"
)

func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidates.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, candidates)
}

func (h *Handler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req service.CreateCandidateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	candidate, err := h.candidates.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, candidate)
}

func (h *Handler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "candidate")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	candidate, err := h.candidates.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

func (h *Handler) UpdateCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "candidate")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req service.UpdateCandidateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	candidate, err := h.candidates.Update(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, candidate)
}

func (h *Handler) DeleteCandidate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "candidate")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.candidates.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
