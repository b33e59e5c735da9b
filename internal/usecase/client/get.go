package client

import (
	"context"

	domain "github.com/BruksfildServices01/agenda/internal/domain/client"
	"github.com/BruksfildServices01/agenda/internal/models"
)

type GetClient struct {
	repo domain.Repository
}

func NewGetClient(repo domain.Repository) *GetClient {
	return &GetClient{repo: repo}
}

// Execute returns the client with its appointment history, newest first.
func (uc *GetClient) Execute(ctx context.Context, clientID uint) (*models.Client, error) {
	c, err := uc.repo.GetByID(ctx, clientID)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return c, nil
}

type ListClients struct {
	repo domain.Repository
}

func NewListClients(repo domain.Repository) *ListClients {
	return &ListClients{repo: repo}
}

func (uc *ListClients) Execute(ctx context.Context, query string) ([]models.Client, error) {
	return uc.repo.List(ctx, query)
}
