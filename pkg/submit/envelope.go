package submit

import (
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Envelope wraps a record with the metadata assigned at hand-off time.
type Envelope struct {
	ID          uuid.UUID         `json:"id"`
	SubmittedAt time.Time         `json:"submittedAt"`
	Record      wizard.FormRecord `json:"record"`
}

// stamper assigns submission ids and timestamps. Tests override both.
type stamper struct {
	newID func() uuid.UUID
	now   func() time.Time
}

func defaultStamper() stamper {
	return stamper{newID: uuid.New, now: time.Now}
}

func (s stamper) wrap(record wizard.FormRecord) Envelope {
	newID, now := s.newID, s.now
	if newID == nil {
		newID = uuid.New
	}
	if now == nil {
		now = time.Now
	}
	return Envelope{ID: newID(), SubmittedAt: now().UTC(), Record: record}
}
