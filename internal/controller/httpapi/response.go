package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/Freeeeeet/interview_scheduler/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

var errBadJSON = errors.New("malformed JSON body")

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError переводит ошибки сервисного слоя в HTTP статус
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errBadJSON), errors.Is(err, service.ErrValidation):
		h.logger.Debug("Rejected request",
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

// decodeJSON читает тело запроса; пустое тело оставляет dst нетронутым
func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return errBadJSON
}

// pathID разбирает {id} из пути. Нечисловой id означает отсутствующую запись.
func pathID(r *http.Request, resource string) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &notFoundError{resource: resource, raw: raw}
	}
	return id, nil
}

type notFoundError struct {
	resource string
	raw      string
}

func (e *notFoundError) Error() string {
	return service.ErrNotFound.Error() + ": " + e.resource + " " + strconv.Quote(e.raw)
}

func (e *notFoundError) Unwrap() error {
	return service.ErrNotFound
}
