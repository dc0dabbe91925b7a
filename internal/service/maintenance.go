package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"fleetflow/internal/domain"
	"fleetflow/internal/redis"
	"fleetflow/internal/repository"
)

// MaintenanceService records vehicle costs and moves vehicles in and out of
// the shop.
type MaintenanceService struct {
	uow                 repository.UnitOfWork
	vehicleRepo         repository.VehicleRepository
	maintenanceRepo     repository.MaintenanceRepository
	listingCache        redis.ListingCacheInterface
	notificationService *NotificationService
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(
	uow repository.UnitOfWork,
	vehicleRepo repository.VehicleRepository,
	maintenanceRepo repository.MaintenanceRepository,
	listingCache redis.ListingCacheInterface,
	notificationService *NotificationService,
) *MaintenanceService {
	return &MaintenanceService{
		uow:                 uow,
		vehicleRepo:         vehicleRepo,
		maintenanceRepo:     maintenanceRepo,
		listingCache:        listingCache,
		notificationService: notificationService,
	}
}

// LogMaintenanceRequest contains the parameters for logging a service cost.
type LogMaintenanceRequest struct {
	VehicleID string
	Cost      float64
}

// LogMaintenance appends a Service cost log and pulls the vehicle into the
// shop, atomically. Vehicles out on a dispatched trip are rejected; the trip
// must be completed first so the dispatch invariant holds.
func (s *MaintenanceService) LogMaintenance(ctx context.Context, req LogMaintenanceRequest) (*domain.MaintenanceLog, error) {
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if !isFinitePositive(req.Cost) {
		return nil, ErrInvalidCost
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}

	if vehicle.Status == domain.VehicleStatusOnTrip {
		return nil, ErrVehicleOnTrip
	}

	log := &domain.MaintenanceLog{
		ID:        uuid.New().String(),
		VehicleID: req.VehicleID,
		Type:      domain.LogTypeService,
		Cost:      req.Cost,
		LoggedAt:  time.Now(),
	}

	err = s.uow.WithinTx(ctx, func(repos repository.Repositories) error {
		if err := repos.Maintenance.Create(ctx, log); err != nil {
			return err
		}

		// A vehicle already in the shop just collects another log entry.
		if vehicle.Status == domain.VehicleStatusInShop {
			return nil
		}

		err := repos.Vehicles.UpdateStatusFrom(ctx, req.VehicleID,
			domain.VehicleStatusAvailable, domain.VehicleStatusInShop)
		if errors.Is(err, repository.ErrConflict) {
			// Dispatched between the precondition read and the write.
			return ErrVehicleOnTrip
		}
		return err
	})
	if err != nil {
		return nil, wrapTxErr(err)
	}

	if s.listingCache != nil {
		_ = s.listingCache.InvalidateListings(ctx)
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyVehicleInShop(ctx, vehicle.LicensePlate, req.Cost)
	}

	return log, nil
}

// LogFuelRequest contains the parameters for logging a fuel cost.
type LogFuelRequest struct {
	VehicleID string
	Cost      float64
}

// LogFuel appends a Fuel cost log. Fuel entries never change vehicle status.
func (s *MaintenanceService) LogFuel(ctx context.Context, req LogFuelRequest) (*domain.MaintenanceLog, error) {
	if req.VehicleID == "" {
		return nil, ErrInvalidVehicleID
	}
	if !isFinitePositive(req.Cost) {
		return nil, ErrInvalidCost
	}

	if _, err := s.vehicleRepo.GetByID(ctx, req.VehicleID); err != nil {
		return nil, err
	}

	log := &domain.MaintenanceLog{
		ID:        uuid.New().String(),
		VehicleID: req.VehicleID,
		Type:      domain.LogTypeFuel,
		Cost:      req.Cost,
		LoggedAt:  time.Now(),
	}

	if err := s.maintenanceRepo.Create(ctx, log); err != nil {
		return nil, wrapTxErr(err)
	}
	return log, nil
}

// ReturnToService moves a vehicle from the shop back into the available
// fleet. Only the InShop -> Available transition is permitted.
func (s *MaintenanceService) ReturnToService(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	if vehicleID == "" {
		return nil, ErrInvalidVehicleID
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if vehicle.Status != domain.VehicleStatusInShop ||
		!vehicle.Status.CanTransition(domain.VehicleStatusAvailable) {
		return nil, ErrVehicleNotInShop
	}

	err = s.vehicleRepo.UpdateStatusFrom(ctx, vehicleID,
		domain.VehicleStatusInShop, domain.VehicleStatusAvailable)
	if errors.Is(err, repository.ErrConflict) {
		return nil, ErrVehicleNotInShop
	}
	if err != nil {
		return nil, wrapTxErr(err)
	}

	vehicle.Status = domain.VehicleStatusAvailable

	if s.listingCache != nil {
		_ = s.listingCache.InvalidateListings(ctx)
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyVehicleReturned(ctx, vehicle.LicensePlate)
	}

	return vehicle, nil
}

// RecentServices retrieves the most recent Service logs with vehicle plates.
func (s *MaintenanceService) RecentServices(ctx context.Context, limit int) ([]*domain.MaintenanceEntry, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.maintenanceRepo.Recent(ctx, domain.LogTypeService, limit)
}
