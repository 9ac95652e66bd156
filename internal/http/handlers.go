package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"ai-interaction-service/internal/artifacts"
	"ai-interaction-service/internal/service/analytics"
	"ai-interaction-service/internal/service/interaction"
)

// maxUploadBytes bounds transcription uploads (Whisper's own cap is 25MB).
const maxUploadBytes = 25 << 20

// Handlers holds the HTTP handlers for the interaction API.
type Handlers struct {
	orch      *interaction.Orchestrator
	agg       *analytics.Aggregator
	artifacts *artifacts.Store
	logger    zerolog.Logger
}

// NewHandlers wires the API handlers to their collaborators.
func NewHandlers(
	orch *interaction.Orchestrator,
	agg *analytics.Aggregator,
	artifactStore *artifacts.Store,
	logger zerolog.Logger,
) *Handlers {
	return &Handlers{
		orch:      orch,
		agg:       agg,
		artifacts: artifactStore,
		logger:    logger.With().Str("component", "http").Logger(),
	}
}

type chatRequest struct {
	Message string `json:"message"`
	Voice   bool   `json:"voice"`
}

type chatResponse struct {
	Answer   string `json:"answer"`
	AudioURL string `json:"audio_url,omitempty"`
}

type transcribeResponse struct {
	Transcription string `json:"transcription"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Chat handles POST /chat.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "validation error: malformed JSON body")
		return
	}

	res, err := h.orch.Chat(r.Context(), req.Message, req.Voice)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	resp := chatResponse{Answer: res.Answer}
	if res.ArtifactID != "" {
		resp.AudioURL = "/download/" + res.ArtifactID
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// Transcribe handles POST /transcribe (multipart upload, field "audio").
func (h *Handlers) Transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("audio")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "validation error: no audio file provided")
		return
	}
	defer file.Close()

	res, err := h.orch.Transcribe(r.Context(), header.Filename, file)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, transcribeResponse{Transcription: res.Transcription})
}

// Download handles GET /download/{id}.
func (h *Handlers) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	path, err := h.artifacts.Path(id)
	if err != nil {
		h.writeError(w, http.StatusNotFound, "not found: file not found")
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="`+id+`"`)
	w.Header().Set("Content-Type", "audio/mpeg")
	http.ServeFile(w, r, path)
}

// Analytics handles GET /analytics.
func (h *Handlers) Analytics(w http.ResponseWriter, r *http.Request) {
	top, err := h.agg.MostCommonQueries(r.Context(), analytics.DefaultTopN)
	if err != nil {
		h.writeFailure(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"most_common_queries": top})
}

// writeFailure maps pipeline errors onto HTTP statuses: client input
// failures are 400, everything else is a service failure.
func (h *Handlers) writeFailure(w http.ResponseWriter, err error) {
	var verr *interaction.ValidationError
	switch {
	case errors.As(err, &verr):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, artifacts.ErrNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Request failed")
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorResponse{Error: msg})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}
