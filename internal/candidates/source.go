// Package candidates supplies profiles for vibe-call pairing. The source is
// an injected capability so the matching engine stays independent of any
// concrete catalog.
package candidates

import (
	"errors"
	"math/rand"

	"github.com/google/uuid"
)

type Candidate struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	Age       int       `json:"age"`
	Interests []string  `json:"interests"`
}

type Source interface {
	Random() (*Candidate, error)
}

var ErrEmptyPool = errors.New("candidate pool is empty")

// StaticPool serves a fixed in-memory candidate set (demo catalog).
type StaticPool struct {
	pool []Candidate
}

func NewStaticPool() *StaticPool {
	return &StaticPool{pool: []Candidate{
		{ID: uuid.New(), Username: "sarah", FirstName: "Sarah", Age: 24, Interests: []string{"coffee", "hiking", "indie films"}},
		{ID: uuid.New(), Username: "maya", FirstName: "Maya", Age: 23, Interests: []string{"art", "music", "travel"}},
		{ID: uuid.New(), Username: "alex", FirstName: "Alex", Age: 25, Interests: []string{"books", "photography", "cooking"}},
		{ID: uuid.New(), Username: "jordan", FirstName: "Jordan", Age: 24, Interests: []string{"gaming", "design", "memes"}},
		{ID: uuid.New(), Username: "riley", FirstName: "Riley", Age: 26, Interests: []string{"yoga", "meditation", "nature"}},
	}}
}

func (p *StaticPool) Random() (*Candidate, error) {
	if len(p.pool) == 0 {
		return nil, ErrEmptyPool
	}
	c := p.pool[rand.Intn(len(p.pool))]
	return &c, nil
}
