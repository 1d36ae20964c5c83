package catalog

import (
	"context"
	"io"
	"strings"

	"github.com/BruksfildServices01/expert-scheduler/internal/audit"
	"github.com/BruksfildServices01/expert-scheduler/internal/authz"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/expert-scheduler/internal/httperr"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

// ImageUploader stores a normalised service image and returns its URL.
type ImageUploader interface {
	UploadServiceImage(ctx context.Context, serviceID uint, r io.Reader) (string, error)
}

// --------- Requests ---------

type CreateServiceInput struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	DurationMin   int     `json:"duration_min" binding:"required,min=1"`
	Price         float64 `json:"price" binding:"min=0"`
	VideoPlatform string  `json:"video_platform"`
}

type UpdateServiceInput struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	DurationMin   *int     `json:"duration_min,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	VideoPlatform *string  `json:"video_platform,omitempty"`
}

// --------- Use case ---------

type Services struct {
	repo   domain.Repository
	images ImageUploader
	audit  *audit.Dispatcher
}

func NewServices(repo domain.Repository, images ImageUploader, dispatcher *audit.Dispatcher) *Services {
	return &Services{repo: repo, images: images, audit: dispatcher}
}

func (uc *Services) List(ctx context.Context, expertID uint) ([]models.Service, error) {
	if _, err := uc.repo.GetExpert(ctx, expertID); err != nil {
		return nil, err
	}
	return uc.repo.ListServices(ctx, expertID)
}

func (uc *Services) Create(ctx context.Context, actor authz.Actor, in CreateServiceInput) (*models.Service, error) {
	if err := authz.Authenticated(actor); err != nil {
		return nil, err
	}
	if !actor.IsExpert() {
		return nil, httperr.PermissionDenied("wrong_role", "Your role cannot perform this action.")
	}

	expert, err := uc.repo.GetExpertByUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(actor, authz.ActionServiceManage, authz.Resource{OwnerUserID: expert.UserID}); err != nil {
		return nil, err
	}

	svc := &models.Service{
		ExpertID:      expert.ID,
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		DurationMin:   in.DurationMin,
		Price:         in.Price,
		VideoPlatform: strings.ToLower(strings.TrimSpace(in.VideoPlatform)),
	}
	if err := validateService(svc); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	uc.record(actor, svc, "created")
	return svc, nil
}

func (uc *Services) Update(ctx context.Context, actor authz.Actor, id uint, in UpdateServiceInput) (*models.Service, error) {
	svc, err := uc.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		svc.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		svc.Description = strings.TrimSpace(*in.Description)
	}
	if in.DurationMin != nil {
		svc.DurationMin = *in.DurationMin
	}
	if in.Price != nil {
		svc.Price = *in.Price
	}
	if in.VideoPlatform != nil {
		svc.VideoPlatform = strings.ToLower(strings.TrimSpace(*in.VideoPlatform))
	}
	if err := validateService(svc); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateService(ctx, svc); err != nil {
		return nil, err
	}

	uc.record(actor, svc, "updated")
	return svc, nil
}

// Delete removes the service. Appointments keep referencing its id.
func (uc *Services) Delete(ctx context.Context, actor authz.Actor, id uint) error {
	svc, err := uc.owned(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := uc.repo.DeleteService(ctx, id); err != nil {
		return err
	}

	uc.record(actor, svc, "deleted")
	return nil
}

func (uc *Services) UploadImage(ctx context.Context, actor authz.Actor, id uint, r io.Reader) (*models.Service, error) {
	svc, err := uc.owned(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if uc.images == nil {
		return nil, httperr.New(httperr.KindExternal, "storage_unavailable", "Image storage is not configured.")
	}

	url, err := uc.images.UploadServiceImage(ctx, svc.ID, r)
	if err != nil {
		return nil, err
	}

	svc.ImageURL = url
	if err := uc.repo.UpdateService(ctx, svc); err != nil {
		return nil, err
	}

	uc.record(actor, svc, "image_uploaded")
	return svc, nil
}

// owned loads the service and requires actor to be the expert behind it.
func (uc *Services) owned(ctx context.Context, actor authz.Actor, id uint) (*models.Service, error) {
	if err := authz.Authenticated(actor); err != nil {
		return nil, err
	}

	svc, err := uc.repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}

	res := authz.Resource{}
	if expert, err := uc.repo.GetExpert(ctx, svc.ExpertID); err == nil {
		res.OwnerUserID = expert.UserID
	}
	if err := authz.Check(actor, authz.ActionServiceManage, res); err != nil {
		return nil, err
	}
	return svc, nil
}

func (uc *Services) record(actor authz.Actor, svc *models.Service, op string) {
	uid, sid := actor.UserID, svc.ID
	uc.audit.Dispatch(audit.Event{
		ExpertID: svc.ExpertID,
		UserID:   &uid,
		Action:   audit.ActionServiceChanged,
		Entity:   "service",
		EntityID: &sid,
		Metadata: map[string]any{"op": op},
	})
}

func validateService(s *models.Service) error {
	if s.Name == "" {
		return httperr.Validation("missing_name", "name is required.")
	}
	if s.DurationMin <= 0 {
		return httperr.Validation("invalid_duration", "duration_min must be greater than zero.")
	}
	if s.Price < 0 {
		return httperr.Validation("invalid_price", "price cannot be negative.")
	}
	// Only platforms with a meeting creator are offered.
	switch s.VideoPlatform {
	case models.VideoPlatformNone, models.VideoPlatformGoogleMeet:
		return nil
	}
	return httperr.Validation("invalid_video_platform", "video_platform must be google_meet or empty.")
}
