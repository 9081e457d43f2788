// Package roster loads the student roster document and provides the random
// selection helpers built on it.
package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"activity-hub/internal/models"
)

// Roster is the loaded set of student records.
type Roster struct {
	Students []models.Student
}

// Load reads the roster document (`{"students": [...]}`) from a file path or
// http(s) URL. Absence or malformed content degrades to an empty roster, not
// a failure.
func Load(ctx context.Context, source string) *Roster {
	data, err := fetch(ctx, source)
	if err != nil {
		log.Warn().Err(err).Str("source", source).Msg("roster not available, using empty roster")
		return &Roster{}
	}

	var file models.RosterFile
	if err := json.Unmarshal(data, &file); err != nil {
		log.Warn().Err(err).Str("source", source).Msg("failed to parse roster, using empty roster")
		return &Roster{}
	}

	log.Info().Int("students", len(file.Students)).Str("source", source).Msg("roster loaded")
	return &Roster{Students: file.Students}
}

func fetch(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		client := &http.Client{Timeout: 10 * time.Second}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch roster: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	return data, nil
}

// Len returns the roster size
func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Students)
}
