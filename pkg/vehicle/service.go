package vehicle

import (
	"context"
	"strings"
)

const (
	minYear = 1885
	maxYear = 2100
)

type ServiceVehicle interface {
	List(ctx context.Context, userID string) ([]*Vehicle, error)
	Create(ctx context.Context, userID string, year int, vehicleMake, model string) (*Vehicle, error)
	Get(ctx context.Context, userID, id string) (*Vehicle, error)
	Delete(ctx context.Context, userID, id string) error
}

type VehicleService struct {
	Repo Repository
}

func NewService(repo Repository) *VehicleService {
	return &VehicleService{Repo: repo}
}

func (s *VehicleService) List(ctx context.Context, userID string) ([]*Vehicle, error) {
	return s.Repo.ListByUser(ctx, userID)
}

func (s *VehicleService) Create(ctx context.Context, userID string, year int, vehicleMake, model string) (*Vehicle, error) {
	vehicleMake, model = strings.TrimSpace(vehicleMake), strings.TrimSpace(model)
	if year < minYear || year > maxYear || vehicleMake == "" || model == "" {
		return nil, ErrInvalidInput
	}

	v := &Vehicle{UserID: userID, Year: year, Make: vehicleMake, Model: model}
	if err := s.Repo.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Get hides vehicles of other users behind ErrNotFound.
func (s *VehicleService) Get(ctx context.Context, userID, id string) (*Vehicle, error) {
	v, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v.UserID != userID {
		return nil, ErrNotFound
	}
	return v, nil
}

func (s *VehicleService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}
