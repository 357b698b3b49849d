package calendar

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Client is a wrapper around the Google Calendar API service.
type Client struct {
	service *calendar.Service
}

// NewClient creates a new Google Calendar API client using the provided
// client options.
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	service, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	return &Client{service: service}, nil
}

// FindEventsByShiftKey finds events in a calendar that were created for
// a given shift, via the shiftKey private extended property.
func (c *Client) FindEventsByShiftKey(ctx context.Context, calendarID, shiftKey string) ([]*calendar.Event, error) {
	query := fmt.Sprintf("%s=%s", shiftKeyProperty, shiftKey)

	eventsList, err := c.service.Events.List(calendarID).
		Context(ctx).
		PrivateExtendedProperty(query).
		SingleEvents(true).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to find events by shift key: %w", err)
	}

	return eventsList.Items, nil
}

// EventsInRange retrieves the events of a calendar within a time window.
func (c *Client) EventsInRange(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]*calendar.Event, error) {
	eventsList, err := c.service.Events.List(calendarID).
		Context(ctx).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		SingleEvents(true).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	return eventsList.Items, nil
}

// InsertEvent inserts a new event into a calendar.
// Important: Sets sendUpdates="none" to prevent notifications.
func (c *Client) InsertEvent(ctx context.Context, calendarID string, event *calendar.Event) error {
	_, err := c.service.Events.Insert(calendarID, event).
		Context(ctx).
		SendUpdates("none").
		Do()
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}

	return nil
}

// UpdateEvent updates an existing event in a calendar.
func (c *Client) UpdateEvent(ctx context.Context, calendarID, eventID string, event *calendar.Event) error {
	_, err := c.service.Events.Update(calendarID, eventID, event).
		Context(ctx).
		SendUpdates("none").
		Do()
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}

	return nil
}

// DeleteEvent deletes an event from a calendar.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	err := c.service.Events.Delete(calendarID, eventID).
		Context(ctx).
		SendUpdates("none").
		Do()
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	return nil
}

// EventAPI is the slice of the calendar client the Google sink needs.
// Split out so tests can substitute a fake.
type EventAPI interface {
	FindEventsByShiftKey(ctx context.Context, calendarID, shiftKey string) ([]*calendar.Event, error)
	EventsInRange(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]*calendar.Event, error)
	InsertEvent(ctx context.Context, calendarID string, event *calendar.Event) error
	UpdateEvent(ctx context.Context, calendarID, eventID string, event *calendar.Event) error
	DeleteEvent(ctx context.Context, calendarID, eventID string) error
}

// GoogleSink writes events into a Google Calendar, updating in place
// any event previously created for the same shift so that re-running
// the tool does not duplicate events. Events created by an earlier run
// whose shift no longer appears in the roster are removed.
type GoogleSink struct {
	api        EventAPI
	calendarID string
}

// NewGoogleSink creates a sink that writes into the given calendar.
func NewGoogleSink(api EventAPI, calendarID string) *GoogleSink {
	return &GoogleSink{api: api, calendarID: calendarID}
}

// Write upserts each event. Failures are collected so one bad event
// does not abort the rest of the run.
func (s *GoogleSink) Write(ctx context.Context, events []*calendar.Event) error {
	var failed int

	for _, event := range events {
		key := eventShiftKey(event)

		existing, err := s.api.FindEventsByShiftKey(ctx, s.calendarID, key)
		if err != nil {
			log.Printf("Warning: lookup for shift %s failed: %v", key, err)
			failed++
			continue
		}

		if len(existing) > 0 {
			if err := s.api.UpdateEvent(ctx, s.calendarID, existing[0].Id, event); err != nil {
				log.Printf("Warning: failed to update event for shift %s: %v", key, err)
				failed++
				continue
			}
			log.Printf("Updated event for shift %s", key)
			continue
		}

		if err := s.api.InsertEvent(ctx, s.calendarID, event); err != nil {
			log.Printf("Warning: failed to insert event for shift %s: %v", key, err)
			failed++
			continue
		}
		log.Printf("Added event for shift %s", key)
	}

	failed += s.removeStale(ctx, events)

	if failed > 0 {
		return fmt.Errorf("%d of %d events failed", failed, len(events))
	}

	return nil
}

// removeStale deletes previously created shift events inside the
// synced window whose shift no longer appears in the roster. Returns
// the number of failed deletions.
func (s *GoogleSink) removeStale(ctx context.Context, events []*calendar.Event) int {
	timeMin, timeMax, ok := eventWindow(events)
	if !ok {
		return 0
	}

	current := make(map[string]bool, len(events))
	for _, event := range events {
		current[eventShiftKey(event)] = true
	}

	existing, err := s.api.EventsInRange(ctx, s.calendarID, timeMin, timeMax)
	if err != nil {
		log.Printf("Warning: stale event lookup failed: %v", err)
		return 1
	}

	var failed int
	for _, event := range existing {
		// Only touch events this tool created
		key := eventShiftKey(event)
		if key == "" || current[key] {
			continue
		}

		if err := s.api.DeleteEvent(ctx, s.calendarID, event.Id); err != nil {
			log.Printf("Warning: failed to remove stale event for shift %s: %v", key, err)
			failed++
			continue
		}
		log.Printf("Removed stale event for shift %s", key)
	}

	return failed
}

// eventWindow returns the time span covered by the events.
func eventWindow(events []*calendar.Event) (timeMin, timeMax time.Time, ok bool) {
	for _, event := range events {
		start, err := eventTime(event.Start)
		if err != nil {
			continue
		}
		end, err := eventTime(event.End)
		if err != nil {
			continue
		}

		if !ok || start.Before(timeMin) {
			timeMin = start
		}
		if !ok || end.After(timeMax) {
			timeMax = end
		}
		ok = true
	}
	return timeMin, timeMax, ok
}
