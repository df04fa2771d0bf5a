package models

import (
	"time"

	"github.com/m04kA/FitGrid-BookingService/internal/domain"
)

// Request модели

// CreateStudioRequest запрос на создание студии
type CreateStudioRequest struct {
	Name            string `json:"name"`
	CapacityPerSlot int    `json:"capacityPerSlot"` // Максимум участников в одном слоте
	OpenTime        string `json:"openTime"`        // "09:00"
	CloseTime       string `json:"closeTime"`       // "21:00"
}

// Response модели

// StudioResponse ответ с данными студии
type StudioResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	CapacityPerSlot int       `json:"capacityPerSlot"`
	OpenTime        string    `json:"openTime"`
	CloseTime       string    `json:"closeTime"`
	SlotsPerDay     int       `json:"slotsPerDay"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// StudioListResponse ответ со списком студий
type StudioListResponse struct {
	Studios []StudioResponse `json:"studios"`
}

// Методы конвертации

// FromDomainStudio конвертирует domain модель в DTO
func FromDomainStudio(s *domain.Studio) *StudioResponse {
	if s == nil {
		return nil
	}

	return &StudioResponse{
		ID:              s.ID,
		Name:            s.Name,
		CapacityPerSlot: s.CapacityPerSlot,
		OpenTime:        s.OpenTime.String(),
		CloseTime:       s.CloseTime.String(),
		SlotsPerDay:     s.SlotsPerDay(),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainStudioList конвертирует список domain моделей в DTO
func FromDomainStudioList(studios []*domain.Studio) *StudioListResponse {
	if studios == nil {
		return &StudioListResponse{Studios: []StudioResponse{}}
	}

	resp := &StudioListResponse{
		Studios: make([]StudioResponse, len(studios)),
	}

	for i, studio := range studios {
		if studioResp := FromDomainStudio(studio); studioResp != nil {
			resp.Studios[i] = *studioResp
		}
	}

	return resp
}
