package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gwplatform/gradeboard/internal/course"
	"github.com/gwplatform/gradeboard/internal/rbac"
)

// GET /courses/{courseID}/roster?q=term
func RosterHandler(svc *course.RosterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID := strings.TrimSpace(chi.URLParam(r, "courseID"))
		if courseID == "" {
			http.Error(w, "courseID required", http.StatusBadRequest)
			return
		}
		rows, err := svc.Roster(r.Context(), courseID)
		if err != nil {
			http.Error(w, "roster: "+err.Error(), http.StatusInternalServerError)
			return
		}
		rows = course.FilterRows(rows, r.URL.Query().Get("q"))
		_ = json.NewEncoder(w).Encode(rows)
	}
}

// GET /courses/{courseID}/roster/stats
func RosterStatsHandler(svc *course.RosterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID := strings.TrimSpace(chi.URLParam(r, "courseID"))
		if courseID == "" {
			http.Error(w, "courseID required", http.StatusBadRequest)
			return
		}
		rows, err := svc.Roster(r.Context(), courseID)
		if err != nil {
			http.Error(w, "roster: "+err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(course.ComputeClassStats(rows))
	}
}

// GET /courses/{courseID}/roster/export
func RosterExportHandler(svc *course.RosterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID := strings.TrimSpace(chi.URLParam(r, "courseID"))
		if courseID == "" {
			http.Error(w, "courseID required", http.StatusBadRequest)
			return
		}
		rows, err := svc.Roster(r.Context(), courseID)
		if err != nil {
			http.Error(w, "roster: "+err.Error(), http.StatusInternalServerError)
			return
		}
		out, err := course.ExportCSV(rows)
		if err != nil {
			http.Error(w, "export: "+err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+courseID+`_grades.csv"`)
		_, _ = w.Write([]byte(out))
	}
}

// GET /courses/{courseID}/students/{studentID}/grade
func StudentGradeHandler(svc *course.RosterService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		courseID := strings.TrimSpace(chi.URLParam(r, "courseID"))
		studentID := strings.TrimSpace(chi.URLParam(r, "studentID"))
		if courseID == "" || studentID == "" {
			http.Error(w, "courseID and studentID required", http.StatusBadRequest)
			return
		}
		// Without view-all the caller may only read their own grade.
		if !rbac.Can(r.Context(), "grade:view-all") &&
			studentID != rbac.SubjectFromContext(r.Context()) {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		row, err := svc.GetRosterRow(r.Context(), courseID, studentID)
		if errors.Is(err, course.ErrNotEnrolled) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "grade: "+err.Error(), http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(row)
	}
}
