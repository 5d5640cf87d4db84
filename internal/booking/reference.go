package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NewReference generates a payment reference: a millisecond timestamp prefix
// plus a random suffix, unique per payment attempt.
func NewReference(now time.Time) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("BPC-%d-%s", now.UnixMilli(), suffix)
}
