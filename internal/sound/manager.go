// Package sound preloads the named sound assets into an in-memory buffer
// cache. Preloading is best effort: a sound that fails to load is logged and
// stays unplayable, it never fails initialization.
package sound

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Buffer is one loaded sound, ready to hand to the page.
type Buffer struct {
	Name        string
	Data        []byte
	ContentType string
}

// Manager caches loaded sound buffers by name.
type Manager struct {
	mu      sync.RWMutex
	buffers map[string]*Buffer
	client  *http.Client
	baseDir string
}

// NewManager creates an empty cache. Relative sound paths resolve against
// baseDir; http(s) URLs are fetched.
func NewManager(baseDir string) *Manager {
	return &Manager{
		buffers: make(map[string]*Buffer),
		client:  &http.Client{Timeout: 10 * time.Second},
		baseDir: baseDir,
	}
}

// Preload loads every named sound file into the cache. Per-sound failures
// are logged and skipped; Preload itself never fails.
func (m *Manager) Preload(ctx context.Context, files map[string]string) {
	var wg sync.WaitGroup
	for name, path := range files {
		wg.Add(1)
		go func(name, path string) {
			defer wg.Done()
			if err := m.load(ctx, name, path); err != nil {
				log.Warn().Err(err).Str("sound", name).Str("path", path).Msg("failed to preload sound")
			}
		}(name, path)
	}
	wg.Wait()

	log.Info().Int("loaded", m.Len()).Int("configured", len(files)).Msg("sound preload finished")
}

func (m *Manager) load(ctx context.Context, name, path string) error {
	data, err := m.fetch(ctx, path)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("sound file is empty")
	}

	buf := &Buffer{
		Name:        name,
		Data:        data,
		ContentType: sniffContentType(path, data),
	}

	m.mu.Lock()
	m.buffers[name] = buf
	m.mu.Unlock()
	return nil
}

func (m *Manager) fetch(ctx context.Context, path string) ([]byte, error) {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		resp, err := m.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch sound: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}

	full := path
	if m.baseDir != "" && !strings.HasPrefix(path, "/") {
		// configured paths are relative, e.g. "sounds/click.mp3"
		full = m.baseDir + "/" + strings.TrimPrefix(path, "sounds/")
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("failed to read sound file: %w", err)
	}
	return data, nil
}

// Buffer returns the loaded buffer for name, or false if that slot never
// loaded.
func (m *Manager) Buffer(name string) (*Buffer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	buf, ok := m.buffers[name]
	return buf, ok
}

// Len returns the number of loaded buffers
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.buffers)
}

func sniffContentType(path string, data []byte) string {
	switch {
	case strings.HasSuffix(path, ".mp3"):
		return "audio/mpeg"
	case strings.HasSuffix(path, ".wav"):
		return "audio/wav"
	case strings.HasSuffix(path, ".ogg"):
		return "audio/ogg"
	}
	return http.DetectContentType(data)
}
