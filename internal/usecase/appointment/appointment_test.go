package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/expert-scheduler/internal/authz"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
	"github.com/BruksfildServices01/expert-scheduler/internal/notify"
	"github.com/BruksfildServices01/expert-scheduler/internal/testutil"
	"github.com/BruksfildServices01/expert-scheduler/internal/video"
)

// ------------------------------------------------------
// fakes
// ------------------------------------------------------

type fakeMeetings struct {
	mu    sync.Mutex
	url   string
	err   error
	calls int
}

func (f *fakeMeetings) CreateMeeting(_ context.Context, _ string, _ video.Meeting) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.url, f.err
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (f *fakeNotifier) Dispatch(n notify.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
}

// ------------------------------------------------------
// fixture
// ------------------------------------------------------

type env struct {
	db       *gorm.DB
	repo     *repository.AppointmentGormRepository
	meetings *fakeMeetings
	notifier *fakeNotifier
	fx       *SideEffects

	client       authz.Actor
	expert       authz.Actor
	otherExpert  authz.Actor
	service      models.Service
	videoService models.Service
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)

	clientUser := models.User{Name: "Ada", Email: "ada@example.com", Phone: "+15550001", PasswordHash: "x", Role: models.RoleClient}
	require.NoError(t, db.Create(&clientUser).Error)

	expertUser := models.User{Name: "Grace", Email: "grace@example.com", PasswordHash: "x", Role: models.RoleExpert}
	require.NoError(t, db.Create(&expertUser).Error)
	expert := models.Expert{UserID: expertUser.ID, Title: "Coach"}
	require.NoError(t, db.Create(&expert).Error)

	otherUser := models.User{Name: "Linus", Email: "linus@example.com", PasswordHash: "x", Role: models.RoleExpert}
	require.NoError(t, db.Create(&otherUser).Error)
	other := models.Expert{UserID: otherUser.ID, Title: "Mentor"}
	require.NoError(t, db.Create(&other).Error)

	svc := models.Service{ExpertID: expert.ID, Name: "Session", DurationMin: 60, Price: 50}
	require.NoError(t, db.Create(&svc).Error)
	videoSvc := models.Service{ExpertID: expert.ID, Name: "Video call", DurationMin: 30, Price: 30, VideoPlatform: models.VideoPlatformGoogleMeet}
	require.NoError(t, db.Create(&videoSvc).Error)

	meetings := &fakeMeetings{url: "https://meet.google.com/abc-defg-hij"}
	notifier := &fakeNotifier{}

	return &env{
		db:           db,
		repo:         repository.NewAppointmentGormRepository(db),
		meetings:     meetings,
		notifier:     notifier,
		fx:           &SideEffects{Video: meetings, Notify: notifier},
		client:       authz.Actor{UserID: clientUser.ID, Email: clientUser.Email, Role: models.RoleClient},
		expert:       authz.Actor{UserID: expertUser.ID, Email: expertUser.Email, Role: models.RoleExpert, ExpertID: expert.ID},
		otherExpert:  authz.Actor{UserID: otherUser.ID, Role: models.RoleExpert, ExpertID: other.ID},
		service:      svc,
		videoService: videoSvc,
	}
}

func (e *env) book(t *testing.T, start, end string) *models.Appointment {
	t.Helper()
	ap, err := NewCreateAppointment(e.repo, e.fx).Execute(context.Background(), e.client, CreateAppointmentInput{
		ServiceID: e.service.ID,
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)
	return ap
}

func ptr[T any](v T) *T { return &v }

// ------------------------------------------------------
// create
// ------------------------------------------------------

func TestCreate_PersistsScheduledAndNotifies(t *testing.T) {
	e := newEnv(t)

	ap := e.book(t, "2030-05-06T10:00:00Z", "2030-05-06T11:00:00Z")

	assert.NotZero(t, ap.ID)
	assert.Equal(t, "scheduled", ap.Status)
	assert.Equal(t, e.service.ExpertID, ap.ExpertID)
	assert.Equal(t, e.client.UserID, ap.ClientID)
	assert.Zero(t, e.meetings.calls, "service without platform asks for no meeting")

	// client email + sms, expert email
	assert.Len(t, e.notifier.sent, 3)
}

func TestCreate_NormalisesOffsetsToUTC(t *testing.T) {
	e := newEnv(t)

	ap := e.book(t, "2030-05-06T12:00:00+02:00", "2030-05-06T13:00:00+02:00")
	assert.Equal(t, 10, ap.StartTime.Hour())

	_, err := NewCreateAppointment(e.repo, e.fx).Execute(context.Background(), e.client, CreateAppointmentInput{
		ServiceID: e.service.ID,
		StartTime: "2030-05-06T10:30:00Z",
		EndTime:   "2030-05-06T11:30:00Z",
	})
	assert.Equal(t, httperr.KindSlotUnavailable, httperr.KindOf(err))
}

func TestCreate_AttachesMeetingLink(t *testing.T) {
	e := newEnv(t)

	ap, err := NewCreateAppointment(e.repo, e.fx).Execute(context.Background(), e.client, CreateAppointmentInput{
		ServiceID: e.videoService.ID,
		StartTime: "2030-05-06T10:00:00Z",
		EndTime:   "2030-05-06T10:30:00Z",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://meet.google.com/abc-defg-hij", ap.MeetingURL)

	stored, err := e.repo.GetAppointment(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, ap.MeetingURL, stored.MeetingURL)
}

func TestCreate_VideoFailureKeepsBooking(t *testing.T) {
	e := newEnv(t)
	e.meetings.err = errors.New("calendar down")

	ap, err := NewCreateAppointment(e.repo, e.fx).Execute(context.Background(), e.client, CreateAppointmentInput{
		ServiceID: e.videoService.ID,
		StartTime: "2030-05-06T10:00:00Z",
		EndTime:   "2030-05-06T10:30:00Z",
	})
	require.NoError(t, err)
	assert.Empty(t, ap.MeetingURL)

	_, err = e.repo.GetAppointment(context.Background(), ap.ID)
	assert.NoError(t, err)
	assert.NotEmpty(t, e.notifier.sent)
}

func TestCreate_Rejections(t *testing.T) {
	e := newEnv(t)
	e.book(t, "2030-05-06T10:00:00Z", "2030-05-06T11:00:00Z")
	uc := NewCreateAppointment(e.repo, e.fx)

	tests := []struct {
		name  string
		actor authz.Actor
		in    CreateAppointmentInput
		want  httperr.Kind
	}{
		{"anonymous", authz.Actor{}, CreateAppointmentInput{ServiceID: e.service.ID}, httperr.KindAuthRequired},
		{"expert role", e.expert, CreateAppointmentInput{ServiceID: e.service.ID}, httperr.KindPermissionDenied},
		{"missing service", e.client, CreateAppointmentInput{ServiceID: 999, StartTime: "2030-05-07T10:00:00Z", EndTime: "2030-05-07T11:00:00Z"}, httperr.KindNotFound},
		{"bad timestamp", e.client, CreateAppointmentInput{ServiceID: e.service.ID, StartTime: "tomorrow", EndTime: "2030-05-07T11:00:00Z"}, httperr.KindValidation},
		{"end before start", e.client, CreateAppointmentInput{ServiceID: e.service.ID, StartTime: "2030-05-07T11:00:00Z", EndTime: "2030-05-07T10:00:00Z"}, httperr.KindValidation},
		{"overlap", e.client, CreateAppointmentInput{ServiceID: e.service.ID, StartTime: "2030-05-06T10:59:00Z", EndTime: "2030-05-06T11:30:00Z"}, httperr.KindSlotUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.actor, tt.in)
			assert.Equal(t, tt.want, httperr.KindOf(err))
		})
	}
}

func TestCreate_BackToBackAllowed(t *testing.T) {
	e := newEnv(t)
	e.book(t, "2030-05-06T10:00:00Z", "2030-05-06T11:00:00Z")
	e.book(t, "2030-05-06T11:00:00Z", "2030-05-06T12:00:00Z")
}

func TestCreate_CancelledSlotIsBookable(t *testing.T) {
	e := newEnv(t)
	ap := e.book(t, "2030-05-06T10:00:00Z", "2030-05-06T11:00:00Z")

	_, err := NewCancelAppointment(e.repo, e.fx).Execute(context.Background(), e.expert, ap.ID)
	require.NoError(t, err)

	e.book(t, "2030-05-06T10:00:00Z", "2030-05-06T11:00:00Z")
}

func TestCreate_ConcurrentRequestsOneWins(t *testing.T) {
	e := newEnv(t)
	uc := NewCreateAppointment(e.repo, &SideEffects{})

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results []httperr.Kind
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.Execute(context.Background(), e.client, CreateAppointmentInput{
				ServiceID: e.service.ID,
				StartTime: "2030-05-06T14:00:00Z",
				EndTime:   "2030-05-06T15:00:00Z",
			})
			kind := httperr.Kind("")
			if err != nil {
				kind = httperr.KindOf(err)
			}
			mu.Lock()
			results = append(results, kind)
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.ElementsMatch(t, []httperr.Kind{"", httperr.KindSlotUnavailable}, results)
}

// ------------------------------------------------------
// basket
// ------------------------------------------------------

func TestCreateMulti_PartialFailure(t *testing.T) {
	e := newEnv(t)
	uc := NewCreateMultiAppointments(e.repo, e.fx)

	res, err := uc.Execute(context.Background(), e.client, []BasketItem{
		{Service: e.service.ID, Date: "2030-05-06", Time: "09:00"},
		{Service: 424242, Date: "2030-05-06", Time: "10:00"},
		{Service: e.videoService.ID, Date: "2030-05-06", Time: "11:00"},
	})
	require.NoError(t, err)

	require.Len(t, res.Appointments, 2)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, 1, res.Failures[0].Index)
	assert.Equal(t, httperr.KindNotFound, res.Failures[0].Kind)
	assert.True(t, res.AnySucceeded())

	assert.Equal(t, "10:00", res.Appointments[0].EndTime.Format("15:04"), "end = start + duration")
	assert.Equal(t, "https://meet.google.com/abc-defg-hij", res.Appointments[1].MeetingURL)
	assert.Empty(t, e.notifier.sent, "basket checkout sends no notifications")
}

func TestCreateMulti_ItemsGoThroughConflictGate(t *testing.T) {
	e := newEnv(t)
	e.book(t, "2030-05-06T09:00:00Z", "2030-05-06T10:00:00Z")

	res, err := NewCreateMultiAppointments(e.repo, e.fx).Execute(context.Background(), e.client, []BasketItem{
		{Service: e.service.ID, Date: "2030-05-06", Time: "09:30"},
		{Service: e.service.ID, Date: "2030-05-06", Time: "12:00"},
		{Service: e.service.ID, Date: "2030-05-06", Time: "12:30"},
		{Service: e.service.ID, Date: "06/05/2030", Time: "12:30"},
	})
	require.NoError(t, err)

	require.Len(t, res.Appointments, 1)
	require.Len(t, res.Failures, 3)
	assert.Equal(t, httperr.KindSlotUnavailable, res.Failures[0].Kind)
	assert.Equal(t, 2, res.Failures[1].Index, "second basket item for the same slot conflicts with the first")
	assert.Equal(t, httperr.KindSlotUnavailable, res.Failures[1].Kind)
	assert.Equal(t, httperr.KindValidation, res.Failures[2].Kind)
}

func TestCreateMulti_AllFailed(t *testing.T) {
	e := newEnv(t)

	res, err := NewCreateMultiAppointments(e.repo, e.fx).Execute(context.Background(), e.client, []BasketItem{
		{Service: 0, Date: "2030-05-06", Time: "09:00"},
	})
	require.NoError(t, err)
	assert.False(t, res.AnySucceeded())

	_, err = NewCreateMultiAppointments(e.repo, e.fx).Execute(context.Background(), e.client, nil)
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))

	_, err = NewCreateMultiAppointments(e.repo, e.fx).Execute(context.Background(), e.expert, []BasketItem{{Service: 1}})
	assert.Equal(t, httperr.KindPermissionDenied, httperr.KindOf(err))
}

// ------------------------------------------------------
// update / transitions / delete
// ------------------------------------------------------

func TestUpdate_ShiftOverlappingItselfOnly(t *testing.T) {
	e := newEnv(t)
	ap := e.book(t, "2030-05-06T10:00:00Z", "2030-05-06T11:00:00Z")

	got, err := NewUpdateAppointment(e.repo, e.fx).Execute(context.Background(), e.expert, ap.ID, UpdateAppointmentInput{
		StartTime: ptr("2030-05-06T10:30:00Z"),
		EndTime:   ptr("2030-05-06T11:30:00Z"),
	})
	require.NoError(t, err)
	assert.Equal(t, 10, got.StartTime.Hour())
	assert.Equal(t, 30, got.StartTime.Minute())
}

func TestUpdate_PartialKeepsFields(t *testing.T) {
	e := newEnv(t)
	ap := e.book(t, "2030-05-06T10:00:00Z", "2030-05-06T11:00:00Z")

	got, err := NewUpdateAppointment(e.repo, e.fx).Execute(context.Background(), e.expert, ap.ID, UpdateAppointmentInput{
		Notes: ptr("bring notes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "bring notes", got.Notes)
	assert.True(t, got.StartTime.Equal(ap.StartTime))
	assert.Equal(t, ap.ServiceID, got.ServiceID)

	_, err = NewUpdateAppointment(e.repo, e.fx).Execute(context.Background(), e.expert, ap.ID, UpdateAppointmentInput{
		EndTime: ptr("2030-05-06T09:00:00Z"),
	})
	assert.Equal(t, httperr.KindValidation, httperr.KindOf(err))
}

func TestUpdate_RejectsOverlapWithOther(t *testing.T) {
	e := newEnv(t)
	e.book(t, "2030-05-06T09:00:00Z", "2030-05-06T10:00:00Z")
	ap := e.book(t, "2030-05-06T10:00:00Z", "2030-05-06T11:00:00Z")

	_, err := NewUpdateAppointment(e.repo, e.fx).Execute(context.Background(), e.expert, ap.ID, UpdateAppointmentInput{
		StartTime: ptr("2030-05-06T09:30:00Z"),
	})
	assert.Equal(t, httperr.KindSlotUnavailable, httperr.KindOf(err))
}

func TestUpdate_ReferencesAndOwnership(t *testing.T) {
	e := newEnv(t)
	ap := e.book(t, "2030-05-06T10:00:00Z", "2030-05-06T11:00:00Z")
	uc := NewUpdateAppointment(e.repo, e.fx)
	ctx := context.Background()

	_, err := uc.Execute(ctx, e.client, ap.ID, UpdateAppointmentInput{Notes: ptr("x")})
	assert.Equal(t, httperr.KindPermissionDenied, httperr.KindOf(err))

	_, err = uc.Execute(ctx, e.otherExpert, ap.ID, UpdateAppointmentInput{Notes: ptr("x")})
	assert.Equal(t, httperr.KindPermissionDenied, httperr.KindOf(err))

	_, err = uc.Execute(ctx, e.expert, 9999, UpdateAppointmentInput{})
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	_, err = uc.Execute(ctx, e.expert, ap.ID, UpdateAppointmentInput{ClientID: ptr(uint(9999))})
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	_, err = uc.Execute(ctx, e.expert, ap.ID, UpdateAppointmentInput{ServiceID: ptr(uint(9999))})
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))

	got, err := uc.Execute(ctx, e.expert, ap.ID, UpdateAppointmentInput{ServiceID: ptr(e.videoService.ID)})
	require.NoError(t, err)
	assert.Equal(t, e.videoService.ID, got.ServiceID)
}

func TestUpdate_StatusTransitions(t *testing.T) {
	e := newEnv(t)
	ap := e.book(t, "2030-05-06T10:00:00Z", "2030-05-06T11:00:00Z")
	uc := NewUpdateAppointment(e.repo, e.fx)
	ctx := context.Background()

	_, err := uc.Execute(ctx, e.expert, ap.ID, UpdateAppointmentInput{Status: ptr("archived")})
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	got, err := uc.Execute(ctx, e.expert, ap.ID, UpdateAppointmentInput{Status: ptr("completed")})
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)
	assert.NotNil(t, got.CompletedAt)

	_, err = uc.Execute(ctx, e.expert, ap.ID, UpdateAppointmentInput{Status: ptr("scheduled")})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = uc.Execute(ctx, e.expert, ap.ID, UpdateAppointmentInput{Notes: ptr("late edit")})
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestCancelAndComplete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	ap := e.book(t, "2030-05-06T10:00:00Z", "2030-05-06T11:00:00Z")
	got, err := NewCompleteAppointment(e.repo, e.fx).Execute(ctx, e.expert, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", got.Status)

	_, err = NewCancelAppointment(e.repo, e.fx).Execute(ctx, e.expert, ap.ID)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = NewCancelAppointment(e.repo, e.fx).Execute(ctx, e.client, ap.ID)
	assert.Equal(t, httperr.KindPermissionDenied, httperr.KindOf(err))

	_, err = NewCancelAppointment(e.repo, e.fx).Execute(ctx, authz.Actor{}, ap.ID)
	assert.Equal(t, httperr.KindAuthRequired, httperr.KindOf(err))
}

func TestDelete_OwnerOnlyAndHard(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ap := e.book(t, "2030-05-06T10:00:00Z", "2030-05-06T11:00:00Z")
	uc := NewDeleteAppointment(e.repo, e.fx)

	assert.Equal(t, httperr.KindPermissionDenied, httperr.KindOf(uc.Execute(ctx, e.otherExpert, ap.ID)))
	require.NoError(t, uc.Execute(ctx, e.expert, ap.ID))

	var n int64
	e.db.Unscoped().Model(&models.Appointment{}).Count(&n)
	assert.Zero(t, n)

	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(uc.Execute(ctx, e.expert, ap.ID)))
}

// ------------------------------------------------------
// reads
// ------------------------------------------------------

func TestGetAndList_Visibility(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ap := e.book(t, "2030-05-06T11:00:00Z", "2030-05-06T12:00:00Z")
	e.book(t, "2030-05-06T09:00:00Z", "2030-05-06T10:00:00Z")

	get := NewGetAppointment(e.repo)
	_, err := get.Execute(ctx, e.client, ap.ID)
	assert.NoError(t, err)
	_, err = get.Execute(ctx, e.expert, ap.ID)
	assert.NoError(t, err)
	_, err = get.Execute(ctx, e.otherExpert, ap.ID)
	assert.Equal(t, httperr.KindPermissionDenied, httperr.KindOf(err))
	_, err = get.Execute(ctx, authz.Actor{}, ap.ID)
	assert.Equal(t, httperr.KindAuthRequired, httperr.KindOf(err))

	list := NewListAppointments(e.repo)
	rows, err := list.ForClient(ctx, e.client, e.client.UserID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].StartTime.Before(rows[1].StartTime))
	assert.Equal(t, "Session", rows[0].ServiceName)

	rows, err = list.ForExpert(ctx, e.expert, e.expert.ExpertID)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "Ada", rows[0].ClientName)

	_, err = list.ForExpert(ctx, e.otherExpert, e.expert.ExpertID)
	assert.Equal(t, httperr.KindPermissionDenied, httperr.KindOf(err))

	_, err = list.ForClient(ctx, e.expert, e.client.UserID)
	assert.Equal(t, httperr.KindPermissionDenied, httperr.KindOf(err))

	_, err = list.ForExpert(ctx, e.expert, 9999)
	assert.Equal(t, httperr.KindNotFound, httperr.KindOf(err))
}
