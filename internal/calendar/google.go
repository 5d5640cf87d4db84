// Package calendar creates consultation events on the firm's Google Calendar
// after a booking is confirmed.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/brightpath-consulting/platform/pkg/logging"
)

// Event is the provider-neutral shape handed to an inserter.
type Event struct {
	Summary     string
	Description string
	StartsAt    string // RFC3339
	EndsAt      string // RFC3339
	Timezone    string
	Attendees   []string
}

// EventInserter creates one calendar event and returns its provider id.
type EventInserter interface {
	InsertEvent(ctx context.Context, ev Event) (string, error)
}

// GoogleInserter talks to the Google Calendar API with a service account.
type GoogleInserter struct {
	service    *gcal.Service
	calendarID string
	logger     *logging.Logger
}

// NewGoogleInserter builds the inserter from service-account credentials JSON.
func NewGoogleInserter(ctx context.Context, credentialsJSON, calendarID string, logger *logging.Logger) (*GoogleInserter, error) {
	if strings.TrimSpace(credentialsJSON) == "" {
		return nil, errors.New("calendar: google credentials are required")
	}
	if strings.TrimSpace(calendarID) == "" {
		calendarID = "primary"
	}
	if logger == nil {
		logger = logging.Default()
	}

	service, err := gcal.NewService(ctx,
		option.WithCredentialsJSON([]byte(credentialsJSON)),
		option.WithScopes(gcal.CalendarEventsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("calendar: failed to create calendar service: %w", err)
	}

	return &GoogleInserter{
		service:    service,
		calendarID: calendarID,
		logger:     logger,
	}, nil
}

// InsertEvent creates the event and returns Google's event id.
func (g *GoogleInserter) InsertEvent(ctx context.Context, ev Event) (string, error) {
	item := &gcal.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start: &gcal.EventDateTime{
			DateTime: ev.StartsAt,
			TimeZone: ev.Timezone,
		},
		End: &gcal.EventDateTime{
			DateTime: ev.EndsAt,
			TimeZone: ev.Timezone,
		},
	}
	for _, email := range ev.Attendees {
		if strings.TrimSpace(email) == "" {
			continue
		}
		item.Attendees = append(item.Attendees, &gcal.EventAttendee{Email: email})
	}

	created, err := g.service.Events.Insert(g.calendarID, item).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("calendar: insert event: %w", err)
	}

	g.logger.Info("calendar event created", "event_id", created.Id, "summary", ev.Summary)
	return created.Id, nil
}

// NoopInserter satisfies EventInserter when no calendar is configured.
// Bookings still confirm; only the scheduling side effect is skipped.
type NoopInserter struct{}

func (NoopInserter) InsertEvent(ctx context.Context, ev Event) (string, error) {
	return "", errors.New("calendar: not configured")
}
