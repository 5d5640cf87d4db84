package catalog

import "time"

// Entry kinds. Consultations are booked against a client-chosen time window;
// events carry a fixed occurrence.
const (
	KindConsultation = "consultation"
	KindEvent        = "event"
)

// Entry is a bookable service or event definition. Prices are stored in kobo.
type Entry struct {
	ID              string     `json:"id"`
	Kind            string     `json:"kind"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	PriceKobo       int64      `json:"price_kobo"`
	StartsAt        *time.Time `json:"starts_at,omitempty"`
	EndsAt          *time.Time `json:"ends_at,omitempty"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Free reports whether booking this entry requires no payment.
func (e *Entry) Free() bool {
	return e.PriceKobo == 0
}
