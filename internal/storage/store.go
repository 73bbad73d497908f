package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"
)

const (
	metadataFile  = "metadata.json"
	positionsFile = "positions.csv"
)

// ErrRunExists indicates a save under an ID that is already stored.
var ErrRunExists = errors.New("storage: run already exists")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Width     int                `json:"width"`
	Height    int                `json:"height"`
	Speed     string             `json:"speed"`
	Mode      string             `json:"mode"`
	Tail      int                `json:"tail"`
	Seed      int64              `json:"seed"`
	Frames    int                `json:"frames"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a run's metadata and per-frame head positions and returns the
// run ID. An empty meta.ID is replaced with a generated one.
func (s *Store) Save(meta RunMetadata, frames [][]int) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Frames = len(frames)

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return "", err
	}

	runDir, err := s.createRunDir(&meta)
	if err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, positionsFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	header := []string{"frame"}
	for i := 0; i < meta.Width; i++ {
		header = append(header, fmt.Sprintf("c%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, positions := range frames {
		row := make([]string, 0, len(positions)+1)
		row = append(row, strconv.Itoa(i))
		for _, p := range positions {
			row = append(row, strconv.Itoa(p))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// createRunDir creates a fresh directory for meta. A generated ID gets a
// numeric suffix when taken; an explicit ID that already exists is an error.
func (s *Store) createRunDir(meta *RunMetadata) (string, error) {
	if meta.ID != "" {
		runDir := filepath.Join(s.baseDir, meta.ID)
		if err := os.Mkdir(runDir, 0755); err != nil {
			if os.IsExist(err) {
				return "", fmt.Errorf("%w: %s", ErrRunExists, meta.ID)
			}
			return "", err
		}
		return runDir, nil
	}

	base := fmt.Sprintf("%s_%d_%d", meta.Mode, meta.Timestamp.UnixMilli(), meta.Seed)
	for i := 0; ; i++ {
		id := base
		if i > 0 {
			id = fmt.Sprintf("%s-%d", base, i)
		}
		runDir := filepath.Join(s.baseDir, id)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			meta.ID = id
			return runDir, nil
		}
		if !os.IsExist(err) {
			return "", err
		}
	}
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadPositions returns the head positions of every recorded frame.
func (s *Store) LoadPositions(runID string) ([][]int, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, positionsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return [][]int{}, nil
	}

	frames := make([][]int, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 1 {
			continue
		}

		positions := make([]int, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			v, err := strconv.Atoi(record[j])
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", positionsFile, i+1, err)
			}
			positions = append(positions, v)
		}
		frames = append(frames, positions)
	}

	return frames, nil
}
