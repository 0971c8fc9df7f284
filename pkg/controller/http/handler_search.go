package http

import (
	"net/http"

	"github.com/secmon-lab/inquiry/pkg/domain/model"
)

func (s *Server) poItemSearchHandler(w http.ResponseWriter, r *http.Request) {
	var c model.POItemCriteria
	page, err := searchRequest(r, &c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.uc.Search.SearchPOItems(r.Context(), sessionFrom(r.Context()), &c, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, res)
}

func (s *Server) productionScheduleSearchHandler(w http.ResponseWriter, r *http.Request) {
	var c model.ProductionSchedCriteria
	page, err := searchRequest(r, &c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.uc.Search.SearchProductionSchedule(r.Context(), sessionFrom(r.Context()), &c, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, res)
}

func (s *Server) posPaidSearchHandler(w http.ResponseWriter, r *http.Request) {
	var c model.POsPaidCriteria
	page, err := searchRequest(r, &c)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, err := s.uc.Search.SearchPOsPaid(r.Context(), sessionFrom(r.Context()), &c, page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, res)
}

// searchRequest decodes the criteria body and the paging query
func searchRequest(r *http.Request, criteria any) (model.Page, error) {
	page, err := pageParam(r)
	if err != nil {
		return page, err
	}
	if err := decodeJSON(r, criteria); err != nil {
		return page, err
	}
	return page, nil
}
