package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/cvshop/internal/checkout"
	"github.com/nikolayk812/cvshop/internal/contact"
	"github.com/nikolayk812/cvshop/internal/domain"
)

const maxBodySize = 1 << 20

var errBadRequest = errors.New("bad request")

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, contact.ErrInvalidForm):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusConflict, err.Error()
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	WriteJSON(w, code, ErrorResponse{Code: code, Message: msg})
}

func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errBadRequest)
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}

	return nil
}

func itemIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: item id %q is not a number", errBadRequest, raw)
	}

	return id, nil
}
