package cli

import (
	"database/sql"
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/citelab/cvet/pkg/data"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func parseRunID(r *http.Request, db *sql.DB) (int64, error) {
	if v := r.URL.Query().Get("run"); v != "" {
		return strconv.ParseInt(v, 10, 64)
	}
	run, err := data.GetLatestRun(db)
	if err != nil {
		return 0, err
	}
	return run.ID, nil
}

func homeViewHandler(tmpl *template.Template, db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d := map[string]any{
			"version": version,
			"commit":  commit,
		}
		if run, err := data.GetLatestRun(db); err == nil {
			d["run"] = run
		}
		if err := tmpl.ExecuteTemplate(w, "home", d); err != nil {
			slog.Error("template render failed", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

func episodesAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runID, err := parseRunID(r, db)
		if err != nil {
			writeError(w, http.StatusBadRequest, "no simulation run available")
			return
		}

		list, err := data.GetEpisodes(db, runID, queryResultLimitDefault)
		if err != nil {
			slog.Error("failed to get episodes", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to get episodes")
			return
		}

		writeJSON(w, http.StatusOK, list)
	}
}

func summaryAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runID, err := parseRunID(r, db)
		if err != nil {
			writeError(w, http.StatusBadRequest, "no simulation run available")
			return
		}

		s, err := data.GetRunSummary(db, runID)
		if err != nil {
			slog.Error("failed to get run summary", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to get summary")
			return
		}

		writeJSON(w, http.StatusOK, s)
	}
}

func distributionAPIHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runID, err := parseRunID(r, db)
		if err != nil {
			writeError(w, http.StatusBadRequest, "no simulation run available")
			return
		}

		d, err := data.GetScoreDistribution(db, runID)
		if err != nil {
			slog.Error("failed to get score distribution", "error", err)
			writeError(w, http.StatusInternalServerError, "failed to get distribution")
			return
		}

		writeJSON(w, http.StatusOK, d)
	}
}
