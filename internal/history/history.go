// Package history records the actions applied to a game session, one record
// per command, for replay and auditing.
package history

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Record is one applied action.
type Record struct {
	GameID    uuid.UUID      `json:"gameId"`
	Index     int            `json:"index"`
	Player    int            `json:"player"` // -1 for game-level actions
	Action    string         `json:"action"`
	Payload   map[string]any `json:"payload,omitempty"`
	Timestamp int64          `json:"timestamp"` // unix millis
}

// Recorder stores action records. Implementations must be safe for concurrent use.
type Recorder interface {
	Record(ctx context.Context, rec Record) error
}

// Nop discards every record.
type Nop struct{}

func (Nop) Record(context.Context, Record) error { return nil }

// Memory keeps records in process.
type Memory struct {
	mu      sync.Mutex
	records []Record
}

func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Record(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

// Records returns a copy of everything recorded so far.
func (m *Memory) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Record(nil), m.records...)
}
