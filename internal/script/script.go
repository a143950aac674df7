// Package script replays a YAML list of add/remove steps against a store.
//
// A script looks like:
//
//	- add: Buy milk!
//	- add: Practice React!
//	- remove: 1 # 1-based position in the list when the step runs
package script

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/tada/internal/store"
)

// ErrInvalidStep is returned by Parse for a malformed step.
var ErrInvalidStep = errors.New("invalid step")

// Step is one entry of a script. Exactly one field is set.
type Step struct {
	Add    *string `yaml:"add"`
	Remove *int    `yaml:"remove"`
}

// Script is an ordered list of steps.
type Script []Step

// Result summarises an Apply run.
type Result struct {
	Added   int
	Removed int
	Skipped int // removals whose position was out of range
}

// Parse decodes and validates a script.
func Parse(data []byte) (Script, error) {
	var sc Script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}

	for i, st := range sc {
		switch {
		case st.Add != nil && st.Remove != nil:
			return nil, fmt.Errorf("step %d: %w: both add and remove set", i+1, ErrInvalidStep)
		case st.Add == nil && st.Remove == nil:
			return nil, fmt.Errorf("step %d: %w: expected add or remove", i+1, ErrInvalidStep)
		case st.Remove != nil && *st.Remove < 1:
			return nil, fmt.Errorf("step %d: %w: remove position must be at least 1", i+1, ErrInvalidStep)
		}
	}

	return sc, nil
}

// Apply runs sc against s in order. A failed add stops the run and is
// returned with the step number; an out-of-range removal is skipped.
func Apply(s *store.Store, sc Script, log zerolog.Logger) (Result, error) {
	var res Result

	for i, st := range sc {
		if st.Add != nil {
			item, err := s.Add(*st.Add)
			if err != nil {
				return res, fmt.Errorf("step %d: %w", i+1, err)
			}
			log.Debug().Int("step", i+1).Str("id", item.ID).Msg("added")
			res.Added++
			continue
		}

		pos := *st.Remove
		items := s.List()
		if pos > len(items) {
			log.Warn().Int("step", i+1).Int("position", pos).Int("len", len(items)).Msg("remove position out of range")
			res.Skipped++
			continue
		}
		if s.Remove(items[pos-1].ID) {
			res.Removed++
		}
	}

	return res, nil
}
