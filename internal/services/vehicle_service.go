package services

import (
	"context"

	"poputkaBack/internal/models"
	"poputkaBack/internal/repositories"
)

type VehicleService struct {
	VehicleRepo *repositories.VehicleRepository
}

func (s *VehicleService) CreateVehicle(ctx context.Context, userID int, req models.CreateVehicleRequest) (models.Vehicle, error) {
	if req.Brand == "" || req.Model == "" {
		return models.Vehicle{}, models.Validationf("brand and model are required")
	}
	if req.Seats < 1 {
		return models.Vehicle{}, models.Validationf("seats must be at least 1")
	}
	vehicleType := req.VehicleType
	if vehicleType == "" {
		vehicleType = "car"
	}

	vehicle := models.Vehicle{
		UserID:      userID,
		VehicleType: vehicleType,
		Brand:       req.Brand,
		Model:       req.Model,
		Seats:       req.Seats,
	}
	id, err := s.VehicleRepo.CreateVehicle(ctx, vehicle)
	if err != nil {
		return models.Vehicle{}, err
	}
	return s.VehicleRepo.GetVehicleByID(ctx, id)
}

func (s *VehicleService) GetVehiclesByUserID(ctx context.Context, userID int) ([]models.Vehicle, error) {
	return s.VehicleRepo.GetVehiclesByUserID(ctx, userID)
}
