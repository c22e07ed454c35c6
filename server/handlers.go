package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"Sampler/core/catalog"
	"Sampler/core/hub"
	"Sampler/core/playback"
	"Sampler/logger"
	"Sampler/model"

	"github.com/gorilla/mux"
)

// Player is the playback surface the handlers drive; *playback.Loop
// implements it.
type Player interface {
	Toggle(ctx context.Context, id, source string) (playback.Snapshot, error)
	Snapshot(ctx context.Context) (playback.Snapshot, error)
}

// APIHandler 处理所有API请求
type APIHandler struct {
	catalog *catalog.Catalog
	player  Player
	hub     *hub.Hub
}

// NewAPIHandler 创建新的API处理器
func NewAPIHandler(c *catalog.Catalog, player Player, h *hub.Hub) *APIHandler {
	return &APIHandler{catalog: c, player: player, hub: h}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"data":    data,
	}); err != nil {
		logger.Warn("write response", logger.ErrorField(err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// views pairs every sound with whether it is the one playing.
func views(sounds []model.Sound, snap playback.Snapshot) []model.SoundView {
	out := make([]model.SoundView, len(sounds))
	for i, s := range sounds {
		out[i] = model.SoundView{Sound: s, Playing: snap.Playing(s.ID)}
	}
	return out
}

// GetSoundsHandler lists the catalog in order with each sound's playing flag.
func (h *APIHandler) GetSoundsHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := h.player.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, views(h.catalog.List(), snap))
}

// AddSoundHandler handles the add-sound form. It accepts a JSON draft or a
// url-encoded form with name, source and label fields.
func (h *APIHandler) AddSoundHandler(w http.ResponseWriter, r *http.Request) {
	var draft model.Draft
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10)).Decode(&draft); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form body")
			return
		}
		draft = model.Draft{
			Name:   r.FormValue("name"),
			Source: r.FormValue("source"),
			Label:  r.FormValue("label"),
		}
	}

	s, err := h.catalog.Submit(draft)
	if errors.Is(err, catalog.ErrIncompleteDraft) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	logger.Info("sound added", logger.String("id", s.ID), logger.String("name", s.Name))
	writeJSON(w, http.StatusCreated, s)
}

// ToggleHandler plays or stops one sound.
func (h *APIHandler) ToggleHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	snap, err := h.toggle(r.Context(), id)
	switch {
	case errors.Is(err, errUnknownSound):
		writeError(w, http.StatusNotFound, err.Error())
	case err != nil:
		writeError(w, http.StatusServiceUnavailable, err.Error())
	default:
		writeJSON(w, http.StatusOK, snap)
	}
}

// PlaybackHandler returns the current playback snapshot.
func (h *APIHandler) PlaybackHandler(w http.ResponseWriter, r *http.Request) {
	snap, err := h.player.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

var errUnknownSound = errors.New("unknown sound")

// toggle resolves id against the catalog so only known sounds reach the
// coordinator.
func (h *APIHandler) toggle(ctx context.Context, id string) (playback.Snapshot, error) {
	s, ok := h.catalog.Get(id)
	if !ok {
		logger.Warn("toggle for unknown sound", logger.String("id", id))
		return playback.Snapshot{}, errUnknownSound
	}
	return h.player.Toggle(ctx, s.ID, s.Source)
}
