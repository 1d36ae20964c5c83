package video

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// GoogleMeetCreator books a calendar event with Meet conference data and
// returns its hangout link.
type GoogleMeetCreator struct {
	events     *calendar.EventsService
	calendarID string
}

// NewGoogleMeetCreator returns nil, nil when no credentials file is set.
func NewGoogleMeetCreator(ctx context.Context, credentialsFile, calendarID string) (*GoogleMeetCreator, error) {
	if credentialsFile == "" {
		return nil, nil
	}

	svc, err := calendar.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("video: calendar client: %w", err)
	}
	if calendarID == "" {
		calendarID = "primary"
	}
	return &GoogleMeetCreator{events: svc.Events, calendarID: calendarID}, nil
}

func (g *GoogleMeetCreator) CreateMeeting(ctx context.Context, m Meeting) (string, error) {
	created, err := g.events.
		Insert(g.calendarID, meetEvent(m, uuid.NewString())).
		ConferenceDataVersion(1).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("video: insert event: %w", err)
	}
	return joinURL(created)
}

func meetEvent(m Meeting, requestID string) *calendar.Event {
	attendees := make([]*calendar.EventAttendee, 0, len(m.Attendees))
	for _, email := range m.Attendees {
		if email != "" {
			attendees = append(attendees, &calendar.EventAttendee{Email: email})
		}
	}

	return &calendar.Event{
		Summary:   m.Summary,
		Start:     &calendar.EventDateTime{DateTime: m.Start.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		End:       &calendar.EventDateTime{DateTime: m.End.UTC().Format(time.RFC3339), TimeZone: "UTC"},
		Attendees: attendees,
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             requestID,
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}
}

func joinURL(ev *calendar.Event) (string, error) {
	if ev == nil {
		return "", errors.New("video: empty event")
	}
	if ev.HangoutLink != "" {
		return ev.HangoutLink, nil
	}
	if ev.ConferenceData != nil {
		for _, ep := range ev.ConferenceData.EntryPoints {
			if ep.EntryPointType == "video" && ep.Uri != "" {
				return ep.Uri, nil
			}
		}
	}
	return "", errors.New("video: event has no conference link")
}
