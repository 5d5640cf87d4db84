package notify

import (
	"fmt"
	"strings"
	"time"
)

// nairaFromKobo renders a kobo amount as a naira string for email copy.
func nairaFromKobo(kobo int64) string {
	return fmt.Sprintf("₦%.2f", float64(kobo)/100)
}

// BookingDetails carries the fields the booking emails need.
type BookingDetails struct {
	FullName    string
	Email       string
	ServiceName string
	StartsAt    time.Time
	EndsAt      time.Time
	Timezone    string
	AmountKobo  int64
	Free        bool
	Reference   string
}

// BookingConfirmationEmail is sent to the client once their booking is final.
func BookingConfirmationEmail(d BookingDetails) EmailMessage {
	when := d.StartsAt.Format("Monday, January 2, 2006 at 3:04 PM")

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\n", firstName(d.FullName))
	fmt.Fprintf(&b, "Your booking for %s is confirmed.\n\n", d.ServiceName)
	fmt.Fprintf(&b, "When: %s (%s)\n", when, d.Timezone)
	if d.Free {
		b.WriteString("Amount: Free\n")
	} else {
		fmt.Fprintf(&b, "Amount paid: %s\n", nairaFromKobo(d.AmountKobo))
		if d.Reference != "" {
			fmt.Fprintf(&b, "Payment reference: %s\n", d.Reference)
		}
	}
	b.WriteString("\nA calendar invitation will follow shortly.\n\nBrightPath Consulting\n")

	return EmailMessage{
		To:      d.Email,
		ToName:  d.FullName,
		Subject: fmt.Sprintf("Booking confirmed: %s", d.ServiceName),
		Body:    b.String(),
	}
}

// BookingInternalEmail alerts the team about a confirmed booking.
func BookingInternalEmail(to string, d BookingDetails) EmailMessage {
	amount := "Free"
	if !d.Free {
		amount = nairaFromKobo(d.AmountKobo)
	}
	body := fmt.Sprintf(
		"New confirmed booking\n\nClient: %s (%s)\nService: %s\nWhen: %s (%s)\nAmount: %s\nReference: %s\n",
		d.FullName, d.Email, d.ServiceName,
		d.StartsAt.Format("Mon, 02 Jan 2006 15:04"), d.Timezone,
		amount, d.Reference,
	)
	return EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("New booking: %s - %s", d.ServiceName, d.FullName),
		Body:    body,
	}
}

// LeadDetails carries the fields lead notification emails need.
type LeadDetails struct {
	Kind     string
	FullName string
	Email    string
	Phone    string
	Subject  string
	Message  string
}

// LeadInternalEmail alerts the team about a new contact or careers submission.
func LeadInternalEmail(to string, d LeadDetails) EmailMessage {
	var b strings.Builder
	fmt.Fprintf(&b, "New %s submission\n\n", d.Kind)
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\n", d.FullName, d.Email)
	if d.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", d.Phone)
	}
	if d.Subject != "" {
		fmt.Fprintf(&b, "Subject: %s\n", d.Subject)
	}
	if d.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", d.Message)
	}
	return EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("New %s lead: %s", d.Kind, d.FullName),
		Body:    b.String(),
	}
}

func firstName(full string) string {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "there"
	}
	return parts[0]
}
