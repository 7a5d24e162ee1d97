// Package wheel is the spinning-wheel collaborator: it lands on a segment of
// the active wheel and reports the value and segment index to the session.
package wheel

import (
	"fmt"
	"math/rand/v2"
	"os"
	"sync"

	"github.com/bitblaster/ruotafortuna/engine"
	"gopkg.in/yaml.v3"
)

// Spinner picks a segment index on a wheel of n segments.
type Spinner interface {
	Spin(n int) int
}

// RandomSpinner lands uniformly on any segment.
type RandomSpinner struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSpinner returns a spinner seeded with seed.
func NewRandomSpinner(seed uint64) *RandomSpinner {
	return &RandomSpinner{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *RandomSpinner) Spin(n int) int {
	if n <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// SequenceSpinner replays fixed segment indices in order, wrapping around.
type SequenceSpinner struct {
	mu   sync.Mutex
	seq  []int
	next int
}

func NewSequenceSpinner(seq ...int) *SequenceSpinner {
	return &SequenceSpinner{seq: seq}
}

func (s *SequenceSpinner) Spin(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.seq) == 0 || n <= 0 {
		return 0
	}
	i := s.seq[s.next%len(s.seq)]
	s.next++
	return ((i % n) + n) % n
}

// Tables holds the wheel used for each round type.
type Tables struct {
	Normal  engine.Wheel
	Express engine.Wheel
}

// DefaultTables returns the built-in wheels.
func DefaultTables() Tables {
	return Tables{Normal: engine.NormalWheel, Express: engine.ExpressWheel}
}

// For returns the wheel for a round type.
func (t Tables) For(rt engine.RoundType) engine.Wheel {
	if rt == engine.RoundExpress {
		return t.Express
	}
	return t.Normal
}

// Land spins w and returns the landing value and segment index.
func Land(s Spinner, w engine.Wheel) (engine.WheelValue, int) {
	i := s.Spin(len(w))
	return w[i], i
}

type tablesFile struct {
	Normal  []string `yaml:"normal"`
	Express []string `yaml:"express"`
}

// LoadTables reads custom wheels from a YAML file:
//
//	normal: [bankrupt, 1000, 200, ...]
//	express: [bankrupt, 4000, express, ...]
//
// An empty path returns the built-in wheels. A missing list keeps the default
// for that round type.
func LoadTables(path string, rules engine.HouseRules) (Tables, error) {
	t := DefaultTables()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("read wheel file: %w", err)
	}
	var f tablesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Tables{}, fmt.Errorf("parse wheel file: %w", err)
	}
	if len(f.Normal) > 0 {
		if t.Normal, err = parseWheel(f.Normal, rules); err != nil {
			return Tables{}, fmt.Errorf("normal wheel: %w", err)
		}
	}
	if len(f.Express) > 0 {
		if t.Express, err = parseWheel(f.Express, rules); err != nil {
			return Tables{}, fmt.Errorf("express wheel: %w", err)
		}
	}
	return t, nil
}

func parseWheel(labels []string, rules engine.HouseRules) (engine.Wheel, error) {
	w := make(engine.Wheel, len(labels))
	for i, l := range labels {
		v, err := engine.ParseWheelValue(l)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		w[i] = v
	}
	if len(w) <= rules.JollySegment {
		return nil, fmt.Errorf("%d segments, the Jolly segment is %d", len(w), rules.JollySegment)
	}
	return w, nil
}
