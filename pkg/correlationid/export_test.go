package correlationid

import (
	"time"

	"github.com/google/uuid"
)

// NewGeneratorWithSource exposes the generator with an injectable UUID source and clock.
func NewGeneratorWithSource(newV7 func() (uuid.UUID, error), now func() time.Time) Generator {
	return newUUIDv7Generator(newV7, now)
}
