package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry records one converted source file and its outputs.
type ManifestEntry struct {
	Source  string   `json:"source"`
	Outputs []Output `json:"outputs"`
	Error   string   `json:"error,omitempty"`
}

// WriteManifest writes a JSON summary of the batch run next to the
// converted images.
func WriteManifest(path string, results []Result) error {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, ManifestEntry{
			Source:  r.Source,
			Outputs: r.Outputs,
			Error:   r.Error,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write manifest: %w", err)
	}
	return nil
}
