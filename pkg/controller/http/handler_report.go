package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/inquiry/pkg/domain/model"
	"github.com/secmon-lab/inquiry/pkg/domain/types"
)

type validateResponse struct {
	Valid            bool     `json:"valid"`
	Errors           []string `json:"errors"`
	UserCriteria     string   `json:"userCriteria,omitempty"`
	ReportParameters string   `json:"reportParameters,omitempty"`
}

type reportListResponse struct {
	Reports []*model.ReportRequest `json:"reports"`
}

// reportValidateHandler answers 200 either way; an invalid form carries
// its messages in errors
func (s *Server) reportValidateHandler(w http.ResponseWriter, r *http.Request) {
	var c model.ProductionSchedCriteria
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, r, err)
		return
	}

	resp := validateResponse{Errors: []string{}}
	if err := s.uc.Report.Validate(&c); err != nil {
		var verrs model.ValidationErrors
		if !errors.As(err, &verrs) {
			writeError(w, r, err)
			return
		}
		resp.Errors = verrs.Details()
		writeJSON(r.Context(), w, http.StatusOK, resp)
		return
	}

	resp.Valid = true
	resp.UserCriteria = s.uc.Report.BuildUserCriteria(&c)
	resp.ReportParameters = s.uc.Report.BuildReportParameters(&c)
	writeJSON(r.Context(), w, http.StatusOK, resp)
}

func (s *Server) reportSubmitHandler(w http.ResponseWriter, r *http.Request) {
	var c model.ProductionSchedCriteria
	if err := decodeJSON(r, &c); err != nil {
		writeError(w, r, err)
		return
	}
	req, err := s.uc.Report.Submit(r.Context(), &c, r.Header.Get(UserHeader))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, req)
}

func (s *Server) reportListHandler(w http.ResponseWriter, r *http.Request) {
	screen := types.ScreenProductionSchedule
	if v := r.URL.Query().Get("screen"); v != "" {
		screen = types.Screen(v)
	}
	limit, err := limitParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	reqs, err := s.uc.Report.List(r.Context(), screen, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, reportListResponse{Reports: reqs})
}

func (s *Server) reportGetHandler(w http.ResponseWriter, r *http.Request) {
	id := model.ReportRequestID(chi.URLParam(r, "reportID"))
	req, err := s.uc.Report.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, req)
}
