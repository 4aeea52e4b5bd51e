package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/Skotchmaster/furnico/internal/models"
	"github.com/Skotchmaster/furnico/internal/repo"
	"github.com/Skotchmaster/furnico/internal/transport"
)

type AddressService struct {
	Repo *repo.GormRepo
}

func (s *AddressService) List(ctx context.Context, userID uuid.UUID) ([]models.Address, error) {
	return s.Repo.ListAddresses(ctx, userID)
}

func (s *AddressService) Add(ctx context.Context, userID uuid.UUID, req transport.AddressRequest) (*models.Address, error) {
	a := fromRequest(req)
	a.UserID = userID
	if err := s.Repo.CreateAddress(ctx, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AddressService) Update(ctx context.Context, userID, id uuid.UUID, req transport.AddressRequest) (*models.Address, error) {
	a := fromRequest(req)
	a.ID = id
	a.UserID = userID
	if err := s.Repo.UpdateAddress(ctx, &a); err != nil {
		return nil, notFoundOr(err, "address")
	}
	out, err := s.Repo.GetAddress(ctx, userID, id)
	if err != nil {
		return nil, notFoundOr(err, "address")
	}
	return out, nil
}

func (s *AddressService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.Repo.DeleteAddress(ctx, userID, id); err != nil {
		return notFoundOr(err, "address")
	}
	return nil
}

func fromRequest(req transport.AddressRequest) models.Address {
	return models.Address{
		Name:   strings.TrimSpace(req.Name),
		Street: strings.TrimSpace(req.Street),
		City:   strings.TrimSpace(req.City),
		State:  strings.TrimSpace(req.State),
		Zip:    strings.TrimSpace(req.Zip),
	}
}
