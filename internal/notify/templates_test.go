package notify

import (
	"strings"
	"testing"
	"time"
)

func TestBookingConfirmationEmailPaid(t *testing.T) {
	msg := BookingConfirmationEmail(BookingDetails{
		FullName:    "Ada Obi",
		Email:       "ada@example.com",
		ServiceName: "Strategy Session",
		StartsAt:    time.Date(2026, 4, 10, 14, 0, 0, 0, time.UTC),
		Timezone:    "Africa/Lagos",
		AmountKobo:  500000,
		Reference:   "BPC-1-abcd1234",
	})

	if msg.To != "ada@example.com" {
		t.Errorf("unexpected recipient: %s", msg.To)
	}
	if !strings.Contains(msg.Subject, "Strategy Session") {
		t.Errorf("subject missing service name: %s", msg.Subject)
	}
	if !strings.Contains(msg.Body, "Hi Ada,") {
		t.Errorf("body missing greeting: %s", msg.Body)
	}
	if !strings.Contains(msg.Body, "₦5000.00") {
		t.Errorf("body missing naira amount: %s", msg.Body)
	}
	if !strings.Contains(msg.Body, "BPC-1-abcd1234") {
		t.Errorf("body missing reference: %s", msg.Body)
	}
}

func TestBookingConfirmationEmailFree(t *testing.T) {
	msg := BookingConfirmationEmail(BookingDetails{
		FullName:    "Ada Obi",
		Email:       "ada@example.com",
		ServiceName: "Discovery Call",
		StartsAt:    time.Date(2026, 4, 10, 14, 0, 0, 0, time.UTC),
		Timezone:    "Africa/Lagos",
		Free:        true,
	})

	if !strings.Contains(msg.Body, "Amount: Free") {
		t.Errorf("free booking body missing free marker: %s", msg.Body)
	}
	if strings.Contains(msg.Body, "Payment reference") {
		t.Errorf("free booking body must not mention a reference: %s", msg.Body)
	}
}

func TestLeadInternalEmail(t *testing.T) {
	msg := LeadInternalEmail("team@brightpath.example", LeadDetails{
		Kind:     "contact",
		FullName: "Chidi Eze",
		Email:    "chidi@example.com",
		Message:  "We need help scaling our operations.",
	})

	if msg.To != "team@brightpath.example" {
		t.Errorf("unexpected recipient: %s", msg.To)
	}
	if !strings.Contains(msg.Subject, "contact") {
		t.Errorf("subject missing kind: %s", msg.Subject)
	}
	if !strings.Contains(msg.Body, "scaling our operations") {
		t.Errorf("body missing message: %s", msg.Body)
	}
}
