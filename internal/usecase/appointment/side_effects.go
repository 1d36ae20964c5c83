package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/expert-scheduler/internal/metrics"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
	"github.com/BruksfildServices01/expert-scheduler/internal/notify"
	"github.com/BruksfildServices01/expert-scheduler/internal/video"
)

// MeetingScheduler creates a conference on the named platform.
type MeetingScheduler interface {
	CreateMeeting(ctx context.Context, platform string, m video.Meeting) (string, error)
}

type Notifier interface {
	Dispatch(n notify.Notification)
}

// SideEffects bundles the best-effort work that follows a committed
// booking. Every field is optional.
type SideEffects struct {
	Video        MeetingScheduler
	Notify       Notifier
	Audit        *audit.Dispatcher
	Metrics      *metrics.BookingMetrics
	Logger       *zap.Logger
	VideoTimeout time.Duration
}

func (s *SideEffects) logger() *zap.Logger {
	if s == nil || s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *SideEffects) meter() *metrics.BookingMetrics {
	if s == nil {
		return nil
	}
	return s.Metrics
}

func (s *SideEffects) dispatchAudit(ev audit.Event) {
	if s == nil {
		return
	}
	s.Audit.Dispatch(ev)
}

// attachMeeting asks the service's video platform for a join link and
// stores it on ap. The booking is already committed; failures are logged.
func (s *SideEffects) attachMeeting(
	ctx context.Context,
	repo domain.Repository,
	ap *models.Appointment,
	svc *models.Service,
	attendees ...string,
) {
	if s == nil || s.Video == nil || svc == nil || svc.VideoPlatform == models.VideoPlatformNone {
		return
	}

	timeout := s.VideoTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	vctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	url, err := s.Video.CreateMeeting(vctx, svc.VideoPlatform, video.Meeting{
		Summary:   svc.Name,
		Start:     ap.StartTime,
		End:       ap.EndTime,
		Attendees: attendees,
	})
	if err != nil {
		s.logger().Warn("meeting link not attached",
			zap.Uint("appointment_id", ap.ID),
			zap.String("platform", svc.VideoPlatform),
			zap.Error(err),
		)
		s.meter().ObserveSideEffectFailure("video")
		return
	}

	if err := repo.SetMeetingURL(vctx, ap.ID, url); err != nil {
		s.logger().Warn("meeting link not saved", zap.Uint("appointment_id", ap.ID), zap.Error(err))
		s.meter().ObserveSideEffectFailure("video")
		return
	}
	ap.MeetingURL = url
}

// notifyBooking queues confirmations for the client and the expert.
func (s *SideEffects) notifyBooking(
	ctx context.Context,
	ap *models.Appointment,
	svc *models.Service,
	client *models.User,
	expert *models.User,
) {
	if s == nil || s.Notify == nil {
		return
	}
	for _, n := range notify.BookingConfirmation(notify.Booking{
		Appointment: ap,
		Client:      client,
		Expert:      expert,
		Service:     svc,
	}) {
		s.Notify.Dispatch(n)
	}
}

func auditEvent(ap *models.Appointment, actorID uint, action string, meta any) audit.Event {
	id := ap.ID
	uid := actorID
	ev := audit.Event{
		ExpertID: ap.ExpertID,
		UserID:   &uid,
		Action:   action,
		Entity:   "appointment",
		Metadata: meta,
	}
	if id != 0 {
		ev.EntityID = &id
	}
	return ev
}
