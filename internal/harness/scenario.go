package harness

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// Verdicts a submission can expect.
const (
	ExpectMutant  = "mutant"
	ExpectHuman   = "human"
	ExpectInvalid = "invalid"
)

// Storage backends a scenario can run against.
const (
	StorageSQLite = "sqlite" // in-memory SQLite database
	StorageMemory = "memory"
)

// Scenario defines one replay.
type Scenario struct {
	// Name identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description is a human-readable summary.
	Description string `yaml:"description"`

	// Storage selects the backend. Empty means sqlite.
	Storage string `yaml:"storage,omitempty"`

	// Submissions are classified in order.
	Submissions []Submission `yaml:"submissions"`

	// ExpectStats, if set, is compared with the final statistics.
	ExpectStats *StatsExpectation `yaml:"expect_stats,omitempty"`
}

// Submission is one grid sent to the ledger.
type Submission struct {
	DNA    []string `yaml:"dna"`
	Expect string   `yaml:"expect"`

	// Repeat submits the grid this many times. Zero means once.
	Repeat int `yaml:"repeat,omitempty"`
}

// StatsExpectation is the expected final state of the ledger.
type StatsExpectation struct {
	CountMutant int64    `yaml:"count_mutant_dna"`
	CountHuman  int64    `yaml:"count_human_dna"`
	Ratio       *float64 `yaml:"ratio,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Storage != "" && s.Storage != StorageSQLite && s.Storage != StorageMemory {
		return fmt.Errorf("storage %q: must be %s or %s", s.Storage, StorageSQLite, StorageMemory)
	}
	if len(s.Submissions) == 0 {
		return fmt.Errorf("submissions list is required and must be non-empty")
	}

	valid := []string{ExpectMutant, ExpectHuman, ExpectInvalid}
	for i, sub := range s.Submissions {
		if !slices.Contains(valid, sub.Expect) {
			return fmt.Errorf("submission %d: expect %q must be one of %v", i, sub.Expect, valid)
		}
		if sub.Repeat < 0 {
			return fmt.Errorf("submission %d: repeat must not be negative", i)
		}
	}
	return nil
}
