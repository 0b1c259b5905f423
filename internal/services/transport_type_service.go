package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"transportbooking/internal/domain"
	"transportbooking/internal/domain/models"
	"transportbooking/internal/repositories"
	"transportbooking/internal/utils"
)

type TransportTypeService struct {
	Types     repositories.TransportTypeRepository
	RequestID string
}

func (s TransportTypeService) List(ctx context.Context) ([]models.TransportType, error) {
	types, err := s.Types.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return types, nil
}

func (s TransportTypeService) GetByID(ctx context.Context, id string) (models.TransportType, error) {
	tt, err := s.Types.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TransportType{}, domain.NotFoundError{
				Resource: "transport type",
				Msg:      fmt.Sprintf("transport type with ID %s not found", id),
			}
		}
		return models.TransportType{}, domain.InternalError{Err: err}
	}
	return tt, nil
}

func (s TransportTypeService) Create(ctx context.Context, name string) (models.TransportType, error) {
	if strings.TrimSpace(name) == "" {
		return models.TransportType{}, domain.ValidationError{Field: "transportType", Msg: "transport type must be filled in"}
	}
	if _, err := s.Types.FindByName(ctx, name); err == nil {
		return models.TransportType{}, domain.ConflictError{Resource: "transport type", Msg: "a transport type with this name already exists"}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.TransportType{}, domain.InternalError{Err: err}
	}

	id, err := s.Types.NextID(ctx)
	if err != nil {
		return models.TransportType{}, domain.InternalError{Err: err}
	}
	tt := models.TransportType{IDTransportType: id, TransportType: name}
	if err := s.Types.Insert(ctx, tt); err != nil {
		return models.TransportType{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "transport_type", "create", fmt.Sprintf("type=%s", id))
	return tt, nil
}

func (s TransportTypeService) Update(ctx context.Context, id, name string) (models.TransportType, error) {
	if strings.TrimSpace(name) == "" {
		return models.TransportType{}, domain.ValidationError{Field: "transportType", Msg: "transport type must be filled in"}
	}
	updated, err := s.Types.Update(ctx, models.TransportType{IDTransportType: id, TransportType: name})
	if err != nil {
		return models.TransportType{}, domain.InternalError{Err: err}
	}
	if !updated {
		return models.TransportType{}, domain.NotFoundError{
			Resource: "transport type",
			Msg:      fmt.Sprintf("transport type with ID %s not found", id),
		}
	}
	return models.TransportType{IDTransportType: id, TransportType: name}, nil
}

func (s TransportTypeService) Delete(ctx context.Context, id string) error {
	deleted, err := s.Types.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !deleted {
		return domain.NotFoundError{
			Resource: "transport type",
			Msg:      fmt.Sprintf("transport type with ID %s not found", id),
		}
	}
	utils.LogEvent(s.RequestID, "transport_type", "delete", fmt.Sprintf("type=%s", id))
	return nil
}
