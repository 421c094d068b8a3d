package memory

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator issues identifiers for new tweets
type IDGenerator interface {
	NextID() string
}

// SequenceGenerator hands out decimal ids from a counter that only moves forward,
// so an id is never reissued after its tweet is deleted.
type SequenceGenerator struct {
	next atomic.Int64
}

// NewSequenceGenerator creates a generator whose first id is start
func NewSequenceGenerator(start int64) *SequenceGenerator {
	g := &SequenceGenerator{}
	g.next.Store(start)
	return g
}

// NextID returns the next id in the sequence
func (g *SequenceGenerator) NextID() string {
	return strconv.FormatInt(g.next.Add(1)-1, 10)
}

// UUIDGenerator issues random v4 UUIDs
type UUIDGenerator struct{}

// NextID returns a new random UUID
func (UUIDGenerator) NextID() string {
	return uuid.New().String()
}

// Strategy names accepted by NewIDGenerator
const (
	StrategySequence = "sequence"
	StrategyUUID     = "uuid"
)

// NewIDGenerator builds the generator for the configured strategy. The sequence
// strategy starts right after the seeded tweets.
func NewIDGenerator(strategy string, seeded int) IDGenerator {
	if strategy == StrategyUUID {
		return UUIDGenerator{}
	}
	return NewSequenceGenerator(int64(seeded) + 1)
}
