package id

import (
	"github.com/google/uuid"
)

// Generator creates opaque IDs for refresh cycles and snapshots.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator issues time-ordered v7 UUIDs so refresh ids sort by start time.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return v.String(), nil
}

// SequenceGenerator returns ids from a fixed list, then repeats the last one. Used in tests.
type SequenceGenerator struct {
	IDs  []string
	next int
}

func (g *SequenceGenerator) NewID() (string, error) {
	if len(g.IDs) == 0 {
		return "", nil
	}
	if g.next >= len(g.IDs) {
		return g.IDs[len(g.IDs)-1], nil
	}
	v := g.IDs[g.next]
	g.next++
	return v, nil
}
