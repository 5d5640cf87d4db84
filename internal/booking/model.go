package booking

import "time"

// Payment status values. Status only moves forward: pending bookings become
// paid or failed; zero-price bookings are created free and stay free.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusFree    = "free"
	StatusFailed  = "failed"
)

// Booking is one reservation attempt for a consultation slot or event
// registration. Amounts are in kobo; the amount is computed from the catalog
// at intake and never taken from the client.
type Booking struct {
	ID               string     `json:"id"`
	CatalogID        string     `json:"catalog_id"`
	FullName         string     `json:"full_name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone,omitempty"`
	StartsAt         time.Time  `json:"starts_at"`
	EndsAt           time.Time  `json:"ends_at"`
	Timezone         string     `json:"timezone"`
	AmountKobo       int64      `json:"amount_kobo"`
	PaymentStatus    string     `json:"payment_status"`
	PaymentReference *string    `json:"payment_reference,omitempty"`
	CalendarEventID  *string    `json:"calendar_event_id,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// Terminal reports whether the booking has reached a final payment state.
func (b *Booking) Terminal() bool {
	return b.PaymentStatus != StatusPending
}

// Reference returns the payment reference or "".
func (b *Booking) Reference() string {
	if b.PaymentReference == nil {
		return ""
	}
	return *b.PaymentReference
}
