package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func statusOf(k boutique.Kind) int {
	switch k {
	case boutique.KindValidation:
		return http.StatusBadRequest
	case boutique.KindAuth:
		return http.StatusUnauthorized
	case boutique.KindForbidden:
		return http.StatusForbidden
	case boutique.KindNotFound:
		return http.StatusNotFound
	case boutique.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps domain errors to their status; anything else is logged and
// answered with a generic 500.
func (a *api) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var de *boutique.Error
	if errors.As(err, &de) {
		writeJSON(w, statusOf(de.Kind), errorBody{Error: de.Error(), Code: string(de.Kind)})
		return
	}
	a.Log.Error("request failed",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal error", Code: "INTERNAL"})
}

func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil {
		return nil
	}
	if boutique.KindOf(err) != "" {
		return err
	}
	if errors.Is(err, io.EOF) {
		return boutique.Validationf("request body is empty")
	}
	return boutique.Validationf("invalid json: %v", err)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, boutique.Validationf("invalid %s %q", name, chi.URLParam(r, name))
	}
	return id, nil
}

func queryID(r *http.Request, name string) (*int64, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, boutique.Validationf("invalid %s %q", name, s)
	}
	return &id, nil
}
