package catalog

import (
	"context"

	"github.com/BruksfildServices01/expert-scheduler/internal/authz"
	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/expert-scheduler/internal/models"
)

type ListClients struct {
	repo domain.Repository
}

func NewListClients(repo domain.Repository) *ListClients {
	return &ListClients{repo: repo}
}

// Execute lists the users who ever booked with the expert, optionally
// filtered by name, phone or email.
func (uc *ListClients) Execute(ctx context.Context, actor authz.Actor, expertID uint, query string) ([]models.User, error) {
	if err := authz.Authenticated(actor); err != nil {
		return nil, err
	}

	expert, err := uc.repo.GetExpert(ctx, expertID)
	if err != nil {
		return nil, err
	}
	if err := authz.Check(actor, authz.ActionClientsView, authz.Resource{OwnerUserID: expert.UserID}); err != nil {
		return nil, err
	}

	return uc.repo.ListClients(ctx, expertID, query)
}
