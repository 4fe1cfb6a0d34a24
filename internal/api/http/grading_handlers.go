package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gwplatform/gradeboard/internal/course"
	"github.com/gwplatform/gradeboard/internal/rbac"
	"github.com/gwplatform/gradeboard/internal/rubric"
)

type saveGradeReq struct {
	Terms        float64 `json:"terms"`
	ShortAnswers float64 `json:"short_answers"`
	Excerpts     float64 `json:"excerpts"`
	Essay        float64 `json:"essay"`
	Feedback     string  `json:"feedback,omitempty"`
}

// GET /courses/{courseID}/midterm/submissions
func ListMidtermSubmissionsHandler(store rubric.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID := strings.TrimSpace(chi.URLParam(r, "courseID"))
		if courseID == "" {
			http.Error(w, "courseID required", http.StatusBadRequest)
			return
		}
		subs, err := store.ListSubmissions(r.Context(), courseID)
		if err != nil {
			http.Error(w, "submissions: "+err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(subs)
	}
}

// POST /midterm/submissions/{submissionID}/grade
func SaveRubricGradeHandler(store rubric.Store, cache *course.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		submissionID := strings.TrimSpace(chi.URLParam(r, "submissionID"))
		if submissionID == "" {
			http.Error(w, "submissionID required", http.StatusBadRequest)
			return
		}
		var req saveGradeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json: "+err.Error(), http.StatusBadRequest)
			return
		}

		wf := rubric.NewWorkflow(store)
		if err := wf.Select(r.Context(), submissionID); err != nil {
			http.Error(w, "select submission: "+err.Error(), http.StatusNotFound)
			return
		}
		_ = wf.SetSection(rubric.SectionTerms, req.Terms)
		_ = wf.SetSection(rubric.SectionShortAnswers, req.ShortAnswers)
		_ = wf.SetSection(rubric.SectionExcerpts, req.Excerpts)
		_ = wf.SetSection(rubric.SectionEssay, req.Essay)
		_ = wf.SetFeedback(req.Feedback)

		rec, err := wf.Save(r.Context(), rbac.SubjectFromContext(r.Context()))
		if err != nil {
			http.Error(w, "save grade: "+err.Error(), http.StatusInternalServerError)
			return
		}
		cache.Invalidate(wf.Submission().StudentID)
		_ = json.NewEncoder(w).Encode(rec)
	}
}
