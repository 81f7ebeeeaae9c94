package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit actions recorded by the async event pipeline.
const (
	AuditUserRegistered = "user.registered"
	AuditUserDeleted    = "user.deleted"
	AuditUserLoggedIn   = "user.logged_in"
	AuditQuizCreated    = "quiz.created"
	AuditQuizDeleted    = "quiz.deleted"
)

// AuditEvent records a privileged mutation for later inspection.
type AuditEvent struct {
	ID      uuid.UUID `bson:"id"`
	Actor   uuid.UUID `bson:"actor"`
	Action  string    `bson:"action"`
	Subject string    `bson:"subject,omitempty"`
	At      time.Time `bson:"at"`
}
