package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
	"github.com/secmon-lab/inquiry/pkg/utils/safe"
)

type shareRequest struct {
	Comment string `json:"comment"`
}

type exportListResponse struct {
	Exports []*model.ExportRecord `json:"exports"`
}

func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	screen, err := screenParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	format := types.ExportFormat(r.URL.Query().Get("format"))

	file, err := s.uc.Export.Render(r.Context(), sessionFrom(r.Context()), screen, format)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+file.FileName+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.WriteHeader(http.StatusOK)
	safe.Write(r.Context(), w, file.Data)
}

func (s *Server) archiveHandler(w http.ResponseWriter, r *http.Request) {
	screen, err := screenParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	format := types.ExportFormat(r.URL.Query().Get("format"))

	rec, err := s.uc.Export.Archive(r.Context(), sessionFrom(r.Context()), screen, format)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, rec)
}

func (s *Server) shareHandler(w http.ResponseWriter, r *http.Request) {
	screen, err := screenParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	format := types.ExportFormat(r.URL.Query().Get("format"))

	// The body is optional; an empty one keeps the default comment
	var req shareRequest
	if err := decodeJSON(r, &req); err != nil && !errors.Is(err, errEmptyBody) {
		writeError(w, r, err)
		return
	}

	rec, err := s.uc.Export.Share(r.Context(), sessionFrom(r.Context()), screen, format, req.Comment)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, rec)
}

func (s *Server) exportListHandler(w http.ResponseWriter, r *http.Request) {
	screen, err := screenParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := limitParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	recs, err := s.uc.Export.List(r.Context(), screen, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, exportListResponse{Exports: recs})
}
