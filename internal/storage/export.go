package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Positions [][]int `json:"positions"`
}

// Export writes a run's metadata and positions as indented JSON.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	positions, err := s.LoadPositions(runID)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ExportData{RunMetadata: *meta, Positions: positions})
}
