package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// DefaultStateFile is the state file looked up in the working directory.
const DefaultStateFile = "btpipe_state.json"

// Logical resource names recorded in the state file. Once recorded, an
// identifier is always probed and reused before any create is attempted.
const (
	ResourceBucket        = "bucket_name"
	ResourceRoleName      = "role_name"
	ResourceRoleARN       = "role_arn"
	ResourceJobName       = "job_name"
	ResourceJobARN        = "job_arn"
	ResourceModelARN      = "model_arn"
	ResourceBaseModel     = "base_model_id"
	ResourceTrainingURI   = "training_data_uri"
	ResourceValidationURI = "validation_data_uri"
)

// State is the persisted pipeline state. The file is the sole source of
// truth across process restarts; no other cache exists.
type State struct {
	Resources   map[string]string `json:"resources"`
	Region      string            `json:"region"`
	LastUpdated time.Time         `json:"last_updated"`
}

// Store owns the state file with single-writer discipline: the file is read
// once at load and rewritten after each successful mutation. Concurrent
// invocations against the same file are out of scope and produce undefined
// interleavings.
type Store struct {
	path  string
	state State
}

// StateFileExists reports whether a state file is present, which a new run
// treats as the signal that resources from an earlier run can be reused.
func StateFileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadStore reads the state file at path, or starts an empty state bound to
// region when no file exists yet.
func LoadStore(path, region string) (*Store, error) {
	s := &Store{
		path: path,
		state: State{
			Resources: make(map[string]string),
			Region:    region,
		},
	}

	data, err := os.ReadFile(path) // #nosec G304
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &s.state); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	if s.state.Resources == nil {
		s.state.Resources = make(map[string]string)
	}
	if s.state.Region == "" {
		s.state.Region = region
	}

	return s, nil
}

// Path returns the location of the state file.
func (s *Store) Path() string { return s.path }

// Region returns the region the state was initialized with.
func (s *Store) Region() string { return s.state.Region }

// Get returns a recorded resource identifier.
func (s *Store) Get(name string) (string, bool) {
	v, ok := s.state.Resources[name]
	return v, ok && v != ""
}

// Record stores a resource identifier and persists the state immediately,
// so a crash after a successful provisioning step never loses the handle.
func (s *Store) Record(name, identifier string) error {
	s.state.Resources[name] = identifier
	s.state.LastUpdated = time.Now().UTC()
	return s.save()
}

// Snapshot returns a copy of the current state for reporting.
func (s *Store) Snapshot() State {
	copied := s.state
	copied.Resources = make(map[string]string, len(s.state.Resources))
	for k, v := range s.state.Resources {
		copied.Resources[k] = v
	}
	return copied
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state file %s: %w", s.path, err)
	}
	return nil
}
