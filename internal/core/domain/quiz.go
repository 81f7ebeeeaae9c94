package domain

import (
	"time"

	"github.com/google/uuid"
)

// PartKind distinguishes presentational parts from ones expecting an answer.
type PartKind string

const (
	PartContent  PartKind = "content"
	PartInteract PartKind = "interact"
)

// AnswerType enumerates the supported answer widgets.
type AnswerType string

const (
	AnswerBool     AnswerType = "bool"
	AnswerNumber   AnswerType = "number"
	AnswerShort    AnswerType = "short"
	AnswerLong     AnswerType = "long"
	AnswerFillIn   AnswerType = "fill_in"
	AnswerMatch    AnswerType = "match"
	AnswerSingle   AnswerType = "single"
	AnswerMultiple AnswerType = "multiple"
)

// AnswerSpec describes what kind of answer an interactive part expects.
// Options are only meaningful for single/multiple/match types.
type AnswerSpec struct {
	Type    AnswerType `json:"type" bson:"type"`
	Options []string   `json:"options,omitempty" bson:"options,omitempty"`
	Shuffle bool       `json:"shuffle,omitempty" bson:"shuffle,omitempty"`
}

// Part is a single element of a quiz: either static content or an
// interactive question worth some number of points.
type Part struct {
	ID        uuid.UUID      `json:"id" bson:"id"`
	Kind      PartKind       `json:"kind" bson:"kind"`
	Title     string         `json:"title,omitempty" bson:"title,omitempty"`
	Text      string         `json:"text" bson:"text"`
	Answer    *AnswerSpec    `json:"answer,omitempty" bson:"answer,omitempty"`
	TimeLimit *time.Duration `json:"time_limit,omitempty" bson:"time_limit,omitempty"`
	Value     float64        `json:"value,omitempty" bson:"value,omitempty"`
	Partial   bool           `json:"partial,omitempty" bson:"partial,omitempty"`
}

// Quiz is the aggregate root for authored quizzes. Author is the creator's
// user id; ownership checks compare it against the authenticated identity.
type Quiz struct {
	ID          uuid.UUID `json:"id" bson:"id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Author      uuid.UUID `json:"author" bson:"author"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	Parts       []Part    `json:"parts" bson:"parts"`

	TimeLimit   *time.Duration `json:"time_limit,omitempty" bson:"time_limit,omitempty"`
	ExpectFocus bool           `json:"expect_focus" bson:"expect_focus"`
	ShowAnswer  bool           `json:"show_answer" bson:"show_answer"`
	ShowResults bool           `json:"show_results" bson:"show_results"`

	Public       bool           `json:"public" bson:"public"`
	OpenOn       *time.Time     `json:"open_on,omitempty" bson:"open_on,omitempty"`
	CloseOn      *time.Time     `json:"close_on,omitempty" bson:"close_on,omitempty"`
	BeginBuffer  *time.Duration `json:"begin_buffer,omitempty" bson:"begin_buffer,omitempty"`
	Participants []string       `json:"participants" bson:"participants"`
}

// OwnedBy reports whether the quiz was created by the given user.
func (q *Quiz) OwnedBy(userID uuid.UUID) bool {
	return q.Author == userID
}
