package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

type fieldsResponse struct {
	Screen types.Screen        `json:"screen"`
	Fields []model.FilterField `json:"fields"`
}

type screenValuesResponse struct {
	Screen types.Screen             `json:"screen"`
	Fields []*model.FilterValueSet `json:"fields"`
}

func (s *Server) screenFieldsHandler(w http.ResponseWriter, r *http.Request) {
	screen, err := screenParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	fields, err := s.uc.Filter.Fields(screen)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, fieldsResponse{Screen: screen, Fields: fields})
}

func (s *Server) screenFilterValuesHandler(w http.ResponseWriter, r *http.Request) {
	screen, err := screenParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sets, err := s.uc.Filter.ScreenValues(r.Context(), screen)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, screenValuesResponse{Screen: screen, Fields: sets})
}

func (s *Server) filterValuesHandler(w http.ResponseWriter, r *http.Request) {
	field := types.FieldID(chi.URLParam(r, "fieldID"))
	set, err := s.uc.Filter.Values(r.Context(), field)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, set)
}
