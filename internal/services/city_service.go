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

type CityService struct {
	Cities    repositories.CityRepository
	RequestID string
}

func (s CityService) List(ctx context.Context) ([]models.City, error) {
	cities, err := s.Cities.List(ctx)
	if err != nil {
		return nil, domain.InternalError{Err: err}
	}
	return cities, nil
}

func (s CityService) GetByID(ctx context.Context, id string) (models.City, error) {
	city, err := s.Cities.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.City{}, domain.NotFoundError{
				Resource: "city",
				Msg:      fmt.Sprintf("city with ID %s not found", id),
			}
		}
		return models.City{}, domain.InternalError{Err: err}
	}
	return city, nil
}

func (s CityService) Create(ctx context.Context, cityName string) (models.City, error) {
	if strings.TrimSpace(cityName) == "" {
		return models.City{}, domain.ValidationError{Field: "cityName", Msg: "city name must be filled in"}
	}
	if _, err := s.Cities.FindByName(ctx, cityName); err == nil {
		return models.City{}, domain.ConflictError{Resource: "city", Msg: "a city with this name already exists"}
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.City{}, domain.InternalError{Err: err}
	}

	id, err := s.Cities.NextID(ctx)
	if err != nil {
		return models.City{}, domain.InternalError{Err: err}
	}
	city := models.City{IDCity: id, CityName: cityName}
	if err := s.Cities.Insert(ctx, city); err != nil {
		return models.City{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.RequestID, "city", "create", fmt.Sprintf("city=%s", id))
	return city, nil
}

func (s CityService) Update(ctx context.Context, id, cityName string) (models.City, error) {
	if strings.TrimSpace(cityName) == "" {
		return models.City{}, domain.ValidationError{Field: "cityName", Msg: "city name must be filled in"}
	}
	updated, err := s.Cities.Update(ctx, models.City{IDCity: id, CityName: cityName})
	if err != nil {
		return models.City{}, domain.InternalError{Err: err}
	}
	if !updated {
		return models.City{}, domain.NotFoundError{
			Resource: "city",
			Msg:      fmt.Sprintf("city with ID %s not found", id),
		}
	}
	return models.City{IDCity: id, CityName: cityName}, nil
}

func (s CityService) Delete(ctx context.Context, id string) error {
	deleted, err := s.Cities.Delete(ctx, id)
	if err != nil {
		return domain.InternalError{Err: err}
	}
	if !deleted {
		return domain.NotFoundError{
			Resource: "city",
			Msg:      fmt.Sprintf("city with ID %s not found", id),
		}
	}
	utils.LogEvent(s.RequestID, "city", "delete", fmt.Sprintf("city=%s", id))
	return nil
}
