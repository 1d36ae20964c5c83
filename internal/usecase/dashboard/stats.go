package dashboard

import (
	"context"

	"github.com/BruksfildServices01/expert-scheduler/internal/authz"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/dashboard"
	"github.com/BruksfildServices01/expert-scheduler/internal/dto"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
	"github.com/BruksfildServices01/expert-scheduler/internal/timezone"
)

type ExpertLookup interface {
	GetExpert(ctx context.Context, expertID uint) (*models.Expert, error)
}

// ======================================================
// OUTPUT
// ======================================================

type ExpertStats struct {
	ExpertID      uint                     `json:"expert_id"`
	Revenue       float64                  `json:"revenue"`
	ClientCount   int64                    `json:"client_count"`
	ByStatus      map[string]int64         `json:"by_status"`
	AverageRating float64                  `json:"average_rating"`
	ReviewCount   int64                    `json:"review_count"`
	Upcoming      []dto.AppointmentListDTO `json:"upcoming"`
}

type ClientStats struct {
	ClientID uint                     `json:"client_id"`
	Upcoming []dto.AppointmentListDTO `json:"upcoming"`
}

// ======================================================
// USE CASE
// ======================================================

type Stats struct {
	repo    domain.Repository
	experts ExpertLookup
}

func NewStats(repo domain.Repository, experts ExpertLookup) *Stats {
	return &Stats{repo: repo, experts: experts}
}

func (uc *Stats) ForExpert(ctx context.Context, actor authz.Actor, expertID uint) (*ExpertStats, error) {
	if err := authz.Authenticated(actor); err != nil {
		return nil, err
	}

	expert, err := uc.experts.GetExpert(ctx, expertID)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(actor, authz.ActionDashboardView, authz.Resource{OwnerUserID: expert.UserID}); err != nil {
		return nil, err
	}

	out := &ExpertStats{ExpertID: expertID}

	if out.Revenue, err = uc.repo.ExpertRevenue(ctx, expertID); err != nil {
		return nil, err
	}
	if out.ClientCount, err = uc.repo.ExpertClientCount(ctx, expertID); err != nil {
		return nil, err
	}
	if out.ByStatus, err = uc.repo.StatusBreakdown(ctx, expertID); err != nil {
		return nil, err
	}
	if out.AverageRating, out.ReviewCount, err = uc.repo.AverageRating(ctx, expertID); err != nil {
		return nil, err
	}

	upcoming, err := uc.repo.UpcomingForExpert(ctx, expertID, timezone.Now())
	if err != nil {
		return nil, err
	}
	out.Upcoming = dto.AppointmentList(upcoming)

	return out, nil
}

func (uc *Stats) ForClient(ctx context.Context, actor authz.Actor, clientID uint) (*ClientStats, error) {
	if err := authz.Check(actor, authz.ActionDashboardView, authz.Resource{ClientID: clientID}); err != nil {
		return nil, err
	}

	upcoming, err := uc.repo.UpcomingForClient(ctx, clientID, timezone.Now())
	if err != nil {
		return nil, err
	}
	return &ClientStats{ClientID: clientID, Upcoming: dto.AppointmentList(upcoming)}, nil
}
