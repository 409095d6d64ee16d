package httpapi

import (
	"net/http"

	"github.com/Freeeeeet/interview_scheduler/internal/service"
)

type createSlotsResponse struct {
	Created int `json:"created"`
}

// Availability GET /slots/?candidate_id=&employee_ids=a,b,c
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	hours, err := h.slots.Availability(r.Context(), query.Get("candidate_id"), query.Get("employee_ids"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, hours)
}

// CreateSlots POST /slots/?employee_id=&candidate_id= с телом {day_id, start_time, end_time}
func (h *Handler) CreateSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	candidateID, employeeID := query.Get("candidate_id"), query.Get("employee_id")

	var req service.CreateSlotsRequest
	if err := decodeJSON(r, &req); err != nil {
		// без участника ответ 404 независимо от тела
		if checkErr := h.slots.CheckParticipants(r.Context(), candidateID, employeeID); checkErr != nil {
			err = checkErr
		}
		h.writeError(w, r, err)
		return
	}

	created, err := h.slots.CreateSlots(r.Context(), candidateID, employeeID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, createSlotsResponse{Created: created})
}

func (h *Handler) GetSlot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "slot")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	slot, err := h.slots.GetSlot(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

func (h *Handler) DeleteSlot(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "slot")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.slots.DeleteSlot(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
