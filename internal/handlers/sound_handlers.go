package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"activity-hub/internal/sound"
)

// SoundHandler serves the preloaded sound buffers to pages
type SoundHandler struct {
	sounds *sound.Manager
}

// NewSoundHandler creates a new sound handler
func NewSoundHandler(sounds *sound.Manager) *SoundHandler {
	return &SoundHandler{
		sounds: sounds,
	}
}

// GetSound returns the raw bytes of one loaded sound. A slot that never
// loaded is a 404; the page treats that sound as silently unavailable.
// GET /sounds/{name}
func (sh *SoundHandler) GetSound(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	name := vars["name"]

	buf, ok := sh.sounds.Buffer(name)
	if !ok {
		http.Error(w, "sound not loaded", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", buf.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(buf.Data)
}
