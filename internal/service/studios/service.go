package studios

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
	studioRepo "github.com/m04kA/FitGrid-BookingService/internal/infra/storage/studio"
	"github.com/m04kA/FitGrid-BookingService/internal/service/studios/models"
	"github.com/m04kA/FitGrid-BookingService/pkg/types"
)

// Service сервис для работы со студиями
type Service struct {
	studioRepo StudioRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса студий
func NewService(studioRepo StudioRepository, logger Logger) *Service {
	return &Service{
		studioRepo: studioRepo,
		logger:     logger,
	}
}

// Create создает новую студию
// Доступно только администраторам, проверка прав на уровне API
func (s *Service) Create(ctx context.Context, req *models.CreateStudioRequest) (*models.StudioResponse, error) {
	s.logger.Info("Create: creating studio name=%s, capacity=%d, hours=%s-%s",
		req.Name, req.CapacityPerSlot, req.OpenTime, req.CloseTime)

	studio, err := s.buildStudio(req)
	if err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.studioRepo.Create(ctx, studio)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created studio id=%d", created.ID)
	return models.FromDomainStudio(created), nil
}

// GetByID получает студию по ID
func (s *Service) GetByID(ctx context.Context, studioID int64) (*models.StudioResponse, error) {
	s.logger.Info("GetByID: fetching studio id=%d", studioID)

	studio, err := s.studioRepo.GetByID(ctx, studioID)
	if err != nil {
		if errors.Is(err, studioRepo.ErrStudioNotFound) {
			s.logger.Warn("GetByID: studio id=%d not found", studioID)
			return nil, ErrStudioNotFound
		}
		s.logger.Error("GetByID: repository error for studio id=%d: %v", studioID, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStudio(studio), nil
}

// List получает список всех студий
func (s *Service) List(ctx context.Context) (*models.StudioListResponse, error) {
	s.logger.Info("List: fetching studios")

	studios, err := s.studioRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d studios", len(studios))
	return models.FromDomainStudioList(studios), nil
}

// buildStudio валидирует запрос и собирает domain модель
func (s *Service) buildStudio(req *models.CreateStudioRequest) (*domain.Studio, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	if req.CapacityPerSlot < domain.MinCapacityPerSlot || req.CapacityPerSlot > domain.MaxCapacityPerSlot {
		return nil, fmt.Errorf("%w: capacityPerSlot must be between %d and %d",
			ErrInvalidInput, domain.MinCapacityPerSlot, domain.MaxCapacityPerSlot)
	}

	openTime, err := types.NewTimeStringFromString(req.OpenTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
	}

	closeTime, err := types.NewTimeStringFromString(req.CloseTime)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
	}

	if !openTime.IsBefore(closeTime) {
		return nil, fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}

	studio := &domain.Studio{
		Name:            name,
		CapacityPerSlot: req.CapacityPerSlot,
		OpenTime:        openTime,
		CloseTime:       closeTime,
	}

	// Рабочее окно должно вмещать хотя бы один полный слот
	if studio.SlotsPerDay() == 0 {
		return nil, fmt.Errorf("%w: working hours must fit at least one %d-minute slot",
			ErrInvalidInput, domain.SlotDurationMinutes)
	}

	return studio, nil
}
