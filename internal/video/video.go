package video

import (
	"context"
	"fmt"
	"time"

	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
)

// Meeting describes the conference to create for one appointment.
type Meeting struct {
	Summary   string
	Start     time.Time
	End       time.Time
	Attendees []string
}

// MeetingCreator returns a shareable join URL for a new conference.
type MeetingCreator interface {
	CreateMeeting(ctx context.Context, m Meeting) (string, error)
}

// Registry maps a service's video platform to its creator.
type Registry struct {
	creators map[string]MeetingCreator
}

func NewRegistry() *Registry {
	return &Registry{creators: map[string]MeetingCreator{}}
}

// Register ignores a nil creator so unconfigured platforms stay unknown.
func (r *Registry) Register(platform string, c MeetingCreator) {
	if c == nil {
		return
	}
	r.creators[platform] = c
}

// CreateMeeting dispatches to the creator for platform. An unconfigured
// platform is reported as an external service failure.
func (r *Registry) CreateMeeting(ctx context.Context, platform string, m Meeting) (string, error) {
	if r == nil {
		return "", httperr.External("video_unavailable", fmt.Errorf("video: no registry"))
	}
	c, ok := r.creators[platform]
	if !ok {
		return "", httperr.External("video_unavailable", fmt.Errorf("video: platform %q not configured", platform))
	}

	url, err := c.CreateMeeting(ctx, m)
	if err != nil {
		return "", httperr.External("video_failed", err)
	}
	return url, nil
}
