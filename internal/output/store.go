package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hydrolab/swe1d/internal/swe"
)

const (
	metadataFile  = "metadata.json"
	snapshotsFile = "snapshots.txt"
)

// Store keeps each run in its own directory under baseDir: the snapshot
// stream plus a metadata.json describing how it was produced.
type Store struct {
	baseDir string
}

func NewStore(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID            string             `json:"id"`
	Scenario      string             `json:"scenario"`
	Spatial       string             `json:"spatial"`
	Integrator    string             `json:"integrator"`
	N             int                `json:"n"`
	Dx            float64            `json:"dx"`
	Dt            float64            `json:"dt"`
	Duration      float64            `json:"duration"`
	FPS           int                `json:"fps"`
	Gravity       float64            `json:"gravity"`
	Timestamp     time.Time          `json:"timestamp"`
	SnapshotTimes []float64          `json:"snapshot_times"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Run is an in-progress recording. Emit during the simulation, then Close
// exactly once with the final metric values.
type Run struct {
	dir    string
	meta   RunMetadata
	file   *os.File
	writer *Writer
}

// Begin allocates a run directory and opens the snapshot stream. The
// metadata ID and timestamp are filled in here.
func (s *Store) Begin(meta RunMetadata, x []float64) (*Run, error) {
	meta.Timestamp = time.Now()
	meta.ID = fmt.Sprintf("%s_%d", meta.Scenario, meta.Timestamp.UnixNano())

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	f, err := os.Create(filepath.Join(dir, snapshotsFile))
	if err != nil {
		return nil, err
	}
	return &Run{dir: dir, meta: meta, file: f, writer: NewWriter(f, x)}, nil
}

func (r *Run) ID() string  { return r.meta.ID }
func (r *Run) Dir() string { return r.dir }

func (r *Run) Emit(snap swe.Snapshot) error {
	if err := r.writer.WriteBlock(snap.State.H); err != nil {
		return err
	}
	r.meta.SnapshotTimes = append(r.meta.SnapshotTimes, snap.Time)
	return nil
}

func (r *Run) Close(metrics map[string]float64) error {
	if err := r.writer.Flush(); err != nil {
		r.file.Close()
		return err
	}
	if err := r.file.Close(); err != nil {
		return err
	}

	r.meta.Metrics = metrics
	f, err := os.Create(filepath.Join(r.dir, metadataFile))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(r.meta)
}

// List returns metadata for every completed run, skipping directories
// without a readable metadata.json (interrupted runs).
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

// LoadProfiles reads back a run's snapshot stream as parsed blocks.
func (s *Store) LoadProfiles(runID string) (*RunMetadata, []Block, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.Open(filepath.Join(s.baseDir, runID, snapshotsFile))
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	blocks, err := ReadBlocks(f, meta.N)
	if err != nil {
		return nil, nil, err
	}
	return meta, blocks, nil
}
