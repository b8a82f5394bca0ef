package model

import (
	"strings"
)

// Difficulty is the closed set of problem difficulties.
type Difficulty string

const (
	Easy   Difficulty = "Easy"
	Medium Difficulty = "Medium"
	Hard   Difficulty = "Hard"
)

// Difficulties lists every valid Difficulty in display order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

// Valid reports whether d is one of Easy, Medium or Hard.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Problem is a logged practice problem joined with its owner's username.
// UserID never leaves the service; responses carry Username instead.
type Problem struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	DateSolved Date       `json:"date_solved"`
	Difficulty Difficulty `json:"difficulty"`
	Topic      string     `json:"topic"`
	Notes      *string    `json:"notes"`
	UserID     int64      `json:"-"`
	Username   string     `json:"username"`
}

// ProblemCreate is the POST /problems payload. PUT /problems/:name takes the
// same shape and replaces every field, so nothing is optional except Notes.
type ProblemCreate struct {
	Name       string     `json:"name" validate:"required,max=255"`
	DateSolved *Date      `json:"date_solved" validate:"required"`
	Difficulty Difficulty `json:"difficulty" validate:"required,oneof=Easy Medium Hard"`
	Topic      string     `json:"topic" validate:"required,max=255"`
	Notes      *string    `json:"notes"`
	Username   string     `json:"username" validate:"required,max=255"`
}

// Validate trims the text fields and checks them against the struct tags.
func (r *ProblemCreate) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Topic = strings.TrimSpace(r.Topic)
	r.Username = strings.TrimSpace(r.Username)
	return validate.Struct(r)
}

// Problem builds the row for r owned by userID.
func (r *ProblemCreate) Problem(userID int64) *Problem {
	p := &Problem{
		Name:       r.Name,
		Difficulty: r.Difficulty,
		Topic:      r.Topic,
		Notes:      r.Notes,
		UserID:     userID,
		Username:   r.Username,
	}
	if r.DateSolved != nil {
		p.DateSolved = *r.DateSolved
	}
	return p
}

// Stats is the GET /stats response. Easy+Medium+Hard always equals Total.
type Stats struct {
	Total  int64 `json:"total"`
	Easy   int64 `json:"easy"`
	Medium int64 `json:"medium"`
	Hard   int64 `json:"hard"`
}

// Message is a plain confirmation body.
type Message struct {
	Message string `json:"message"`
}
