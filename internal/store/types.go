package store

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Candidate is the single document kept per applicant, keyed by email.
type Candidate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Position  string             `bson:"position,omitempty" json:"position,omitempty"`
	TechStack []string           `bson:"tech_stack" json:"tech_stack"`
	Meta      map[string]any     `bson:"meta,omitempty" json:"meta,omitempty"`
	CreatedAt time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
	Answers   []Answer           `bson:"answers" json:"answers"`
}

// Answer is one submitted response. Answers are append-only: once pushed onto
// a candidate document they are never mutated or removed.
type Answer struct {
	QuestionID *string   `bson:"question_id" json:"question_id"`
	Question   string    `bson:"question" json:"question"`
	Answer     string    `bson:"answer" json:"answer"`
	Tech       string    `bson:"tech" json:"tech"`
	Score      *float64  `bson:"score" json:"score"`
	Timestamp  time.Time `bson:"timestamp" json:"timestamp"`
}

// Profile carries the updatable candidate fields for an upsert. It
// deliberately has no answers field so a profile write can never clobber the
// answer history.
type Profile struct {
	Name      string
	Phone     string
	Position  string
	TechStack []string
	Meta      map[string]any
}
