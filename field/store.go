package field

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
)

// Store holds the ordered sequence of field samples. Immutable once
// loaded; playback treats it as cyclic.
type Store struct {
	samples []Sample
}

// NewStore wraps an already-ordered slice of samples.
func NewStore(samples []Sample) *Store {
	return &Store{samples: samples}
}

// Len returns the number of samples.
func (st *Store) Len() int {
	if st == nil {
		return 0
	}
	return len(st.samples)
}

// At returns the sample at index i. Panics on out-of-range access,
// matching slice semantics; callers index modulo Len.
func (st *Store) At(i int) *Sample {
	return &st.samples[i]
}

// Load reads a sample file, dispatching on extension (.json or .csv).
func Load(path string) (*Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return LoadJSON(path)
	case ".csv":
		return LoadCSV(path)
	default:
		return nil, fmt.Errorf("field: unsupported sample file %q (want .json or .csv)", path)
	}
}

// LoadJSON reads the converter's JSON array of records. Null component
// values stay nil on the loaded samples.
func LoadJSON(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading sample file: %w", err)
	}

	var samples []Sample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("parsing sample file: %w", err)
	}

	return &Store{samples: samples}, nil
}

// LoadCSV reads an exported CSV capture. Empty cells become nil
// measurements, same as JSON nulls.
func LoadCSV(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sample file: %w", err)
	}
	defer f.Close()

	var samples []Sample
	if err := gocsv.UnmarshalFile(f, &samples); err != nil {
		return nil, fmt.Errorf("parsing sample file: %w", err)
	}

	return &Store{samples: samples}, nil
}
