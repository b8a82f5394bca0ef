// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/leetcode-tracker/internal/model"
)

// EventType names what happened to a problem.
type EventType string

const (
	ProblemCreated EventType = "created"
	ProblemUpdated EventType = "updated"
	ProblemDeleted EventType = "deleted"
)

// ProblemEvent is published after a problem write commits. It carries
// enough for the activity feed to render without querying the database.
type ProblemEvent struct {
	ID         string           `json:"id"`
	Type       EventType        `json:"type"`
	ProblemID  int64            `json:"problem_id"`
	Name       string           `json:"name"`
	Difficulty model.Difficulty `json:"difficulty"`
	Topic      string           `json:"topic"`
	Username   string           `json:"username"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewProblemEvent stamps a fresh event for p.
func NewProblemEvent(typ EventType, p *model.Problem) ProblemEvent {
	return ProblemEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		ProblemID:  p.ID,
		Name:       p.Name,
		Difficulty: p.Difficulty,
		Topic:      p.Topic,
		Username:   p.Username,
		OccurredAt: time.Now().UTC(),
	}
}
