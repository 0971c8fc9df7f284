package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/secmon-lab/inquiry/pkg/service/gateway"
	"github.com/secmon-lab/inquiry/pkg/usecase"
	"github.com/secmon-lab/inquiry/pkg/utils/errutil"
	"github.com/secmon-lab/inquiry/pkg/utils/logging"
)

// maxBodySize bounds request bodies; criteria forms are small
const maxBodySize = 1 << 20

var (
	errInvalidRequest = goerr.New("invalid request")
	errEmptyBody      = goerr.New("request body is empty")
)

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.From(ctx).Error("failed to write response", "error", err.Error())
	}
}

// writeError maps a use case error to its HTTP status and writes it
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, errorStatus(err))
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidCriteria),
		errors.Is(err, errInvalidRequest),
		errors.Is(err, errEmptyBody):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnknownScreen),
		errors.Is(err, model.ErrUnknownField),
		errors.Is(err, usecase.ErrNoResult),
		errors.Is(err, usecase.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrStaleSearch):
		return http.StatusConflict
	case errors.Is(err, usecase.ErrArchiveDisabled),
		errors.Is(err, usecase.ErrShareDisabled):
		return http.StatusNotImplemented
	case errors.Is(err, gateway.ErrHTMLResponse),
		errors.Is(err, gateway.ErrUnexpectedStatus),
		errors.Is(err, gateway.ErrSearchFailed):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodySize)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return goerr.Wrap(errEmptyBody, "no criteria given")
		}
		return goerr.Wrap(errInvalidRequest, "malformed request body", goerr.V("reason", err.Error()))
	}
	return nil
}

func screenParam(r *http.Request) (types.Screen, error) {
	raw := chi.URLParam(r, "screen")
	screen := types.Screen(raw)
	if !screen.IsValid() {
		return "", goerr.Wrap(model.ErrUnknownScreen, "unknown screen", goerr.V("screen", raw))
	}
	return screen, nil
}

// pageParam reads page, pageSize, sortBy and desc from the query string.
// Missing values fall back to the screen defaults.
func pageParam(r *http.Request) (model.Page, error) {
	q := r.URL.Query()
	var p model.Page
	var err error

	if p.Page, err = intParam(q.Get("page"), 1); err != nil {
		return p, goerr.Wrap(errInvalidRequest, "invalid page", goerr.V("page", q.Get("page")))
	}
	if p.PageSize, err = intParam(q.Get("pageSize"), 0); err != nil {
		return p, goerr.Wrap(errInvalidRequest, "invalid page size", goerr.V("pageSize", q.Get("pageSize")))
	}
	p.SortBy = q.Get("sortBy")
	if v := q.Get("desc"); v != "" {
		if p.Desc, err = strconv.ParseBool(v); err != nil {
			return p, goerr.Wrap(errInvalidRequest, "invalid desc flag", goerr.V("desc", v))
		}
	}
	return p, nil
}

func limitParam(r *http.Request) (int, error) {
	v := r.URL.Query().Get("limit")
	n, err := intParam(v, 50)
	if err != nil || n < 0 {
		return 0, goerr.Wrap(errInvalidRequest, "invalid limit", goerr.V("limit", v))
	}
	return n, nil
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
