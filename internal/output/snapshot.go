package output

import (
	"encoding/json"
	"fmt"
	"os"

	"jobdigest/internal/model"
)

// WriteSnapshot saves the cycle's matches as indented JSON for debugging and
// downstream tooling. An empty match list writes an empty array, not null.
func WriteSnapshot(path string, jobs []model.Job) error {
	if jobs == nil {
		jobs = []model.Job{}
	}
	data, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
