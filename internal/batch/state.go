package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// StateFile is kept in the output directory to skip unchanged inputs.
const StateFile = ".aliverse-batch.json"

// State tracks the content hash of every input that rendered cleanly.
type State struct {
	Format      string            `json:"format"`
	FileHashes  map[string]string `json:"file_hashes"`
	LastUpdated time.Time         `json:"last_updated"`
}

// LoadState reads the state file from dir. A missing file is an empty state.
func LoadState(dir string) (*State, error) {
	data, err := os.ReadFile(filepath.Join(dir, StateFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &State{FileHashes: make(map[string]string)}, nil
		}
		return nil, err
	}

	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.FileHashes == nil {
		s.FileHashes = make(map[string]string)
	}
	return &s, nil
}

// Save writes the state file into dir.
func (s *State) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	s.LastUpdated = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, StateFile), data, 0o644)
}

// IsFileChanged returns true if the file's content hash differs from the
// stored hash.
func (s *State) IsFileChanged(relPath, contentHash string) bool {
	stored, ok := s.FileHashes[relPath]
	return !ok || stored != contentHash
}
