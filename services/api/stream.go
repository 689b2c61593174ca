package api

import (
	"context"
	"fmt"
	"net/http"
	"news-pulse/models/constants"
	"news-pulse/services/distributor"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type sseEmitter struct {
	ctx     context.Context
	w       http.ResponseWriter
	flusher http.Flusher
}

func (e *sseEmitter) Emit(data []byte) error {
	if e.ctx.Err() != nil {
		return distributor.ErrSubscriberGone
	}
	if _, err := fmt.Fprintf(e.w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("%w: %v", distributor.ErrSubscriberGone, err)
	}
	e.flusher.Flush()
	return nil
}

func (service *Impl) handleNewsStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondWithJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}

	subscriberID := uuid.NewString()
	w.Header().Set(headerContentType, contentTypeStream)
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	log.Info().Str(constants.LogSubscriberID, subscriberID).Msg("Stream subscriber connected")
	err := service.distributor.Stream(r.Context(), &sseEmitter{ctx: r.Context(), w: w, flusher: flusher})
	if err != nil {
		log.Error().Err(err).Str(constants.LogSubscriberID, subscriberID).Msg("Stream ended with error")
	}
	log.Info().Str(constants.LogSubscriberID, subscriberID).Msg("Stream subscriber disconnected")
}
