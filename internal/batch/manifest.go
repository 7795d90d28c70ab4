package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"rayprobe/internal/scene"
)

// Manifest describes one rendered scene sweep.
type Manifest struct {
	RunID   string          `json:"run_id"`
	Scene   string          `json:"scene"`
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Format  string          `json:"format"`
	Created time.Time       `json:"created"`
	Frames  []ManifestEntry `json:"frames"`
}

// ManifestEntry represents one cursor sample in the output manifest.
type ManifestEntry struct {
	Index  int        `json:"index"`
	Cursor [3]float64 `json:"cursor"`
	Clear  bool       `json:"clear"`
	Hits   []int      `json:"hits"`
	Image  string     `json:"image,omitempty"`
	Digest string     `json:"digest"`
	Reused bool       `json:"reused,omitempty"`
	Error  string     `json:"error,omitempty"`
}

// NewManifest builds the manifest for results under a fresh run ID.
func NewManifest(sc scene.Scene, format string, results []Result) Manifest {
	m := Manifest{
		RunID:   uuid.NewString(),
		Scene:   sc.Name,
		Width:   sc.Width,
		Height:  sc.Height,
		Format:  format,
		Created: time.Now().UTC(),
		Frames:  make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		m.Frames[i] = ManifestEntry{
			Index:  r.Index,
			Cursor: r.Cursor,
			Clear:  r.Clear,
			Hits:   r.Hits,
			Image:  r.Image,
			Digest: fmt.Sprintf("%016x", r.Digest),
			Reused: r.Reused,
			Error:  r.Error,
		}
	}
	return m
}

// WriteManifest writes m as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
