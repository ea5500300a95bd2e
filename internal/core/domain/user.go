package domain

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	CustomerNo string
	Email      string
	FirstName  string
	LastName   string
}

// A JournalEntry is a dispatched intent as recorded by the intent journal.
type JournalEntry struct {
	ID         uuid.UUID
	SessionID  string
	Name       string
	OccurredAt time.Time
	Payload    []byte
}
