package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Memory is a titled note recorded after a trip, stored in a numbered slot.
// Uploading into an occupied slot replaces what was there.
type Memory struct {
	ID         uuid.UUID
	Title      string
	Slot       int
	Note       string
	UploadDate time.Time
}

// Validate checks the title and slot.
func (m Memory) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return ErrTitleRequired
	}
	if m.Slot < 0 {
		return ErrInvalidMemorySlot
	}
	return nil
}
