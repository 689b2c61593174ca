package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"news-pulse/services/distributor"
	"strconv"

	"github.com/rs/zerolog/log"
)

func (service *Impl) handleNewsData(w http.ResponseWriter, r *http.Request) {
	snapshot, err := service.distributor.Query(r.Context())
	switch {
	case errors.Is(err, distributor.ErrInitializing):
		respondWithJSON(w, http.StatusAccepted, errorResponse{Error: initializingMessage})
	case err != nil:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("Cannot build news snapshot")
		respondWithJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	default:
		respondWithJSON(w, http.StatusOK, snapshot)
	}
}

func (service *Impl) handleStatus(w http.ResponseWriter, _ *http.Request) {
	report := service.health.Report()
	respondWithJSON(w, http.StatusOK, statusResponse{
		ScraperReady:      report.Ready,
		ChromeInitialized: report.FullCapability,
		State:             report.State,
	})
}

func (service *Impl) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	if service.scheduler.Trigger() {
		respondWithJSON(w, http.StatusAccepted, refreshResponse{Triggered: true})
		return
	}
	respondWithJSON(w, http.StatusOK, refreshResponse{Triggered: false})
}

func (service *Impl) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get(paramLimit); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be an integer"})
			return
		}
		limit = parsed
	}

	runs, err := service.history.Latest(limit)
	if err != nil {
		log.Error().Err(err).Msg("Cannot read fetch history")
		respondWithJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}
	respondWithJSON(w, http.StatusOK, runs)
}

func (service *Impl) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, service.health.Report())
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set(headerContentType, contentTypeJSON)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	w.Header().Set(headerContentType, contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(response)
}
