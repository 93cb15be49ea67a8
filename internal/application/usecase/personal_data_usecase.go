package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/zonekids/zonekids-api/internal/application/dto"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/internal/domain/repository"
	"github.com/zonekids/zonekids-api/internal/domain/validation"
)

// PersonalDataUseCase datos de despacho del usuario (se precargan en el checkout).
type PersonalDataUseCase struct {
	repo repository.PersonalDataRepository
}

// NewPersonalDataUseCase construye el caso de uso.
func NewPersonalDataUseCase(repo repository.PersonalDataRepository) *PersonalDataUseCase {
	return &PersonalDataUseCase{repo: repo}
}

// Get devuelve los datos del usuario; nil, nil si aún no los registra.
func (uc *PersonalDataUseCase) Get(ctx context.Context, userID string) (*dto.PersonalDataResponse, error) {
	d, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	return toPersonalDataResponse(d), nil
}

// Save crea o reemplaza los datos del usuario.
func (uc *PersonalDataUseCase) Save(ctx context.Context, userID string, in dto.PersonalDataRequest) (*dto.PersonalDataResponse, error) {
	existing, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	d := &entity.PersonalData{
		UserID:     userID,
		FullName:   strings.TrimSpace(in.FullName),
		LastName:   strings.TrimSpace(in.LastName),
		Phone:      strings.TrimSpace(in.Phone),
		Address:    strings.TrimSpace(in.Address),
		City:       strings.TrimSpace(in.City),
		Country:    strings.TrimSpace(in.Country),
		PostalCode: strings.TrimSpace(in.PostalCode),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.RUT != "" {
		d.RUT = validation.FormatRUT(in.RUT)
	}
	if existing != nil {
		d.CreatedAt = existing.CreatedAt
	}
	if err := uc.repo.Upsert(ctx, d); err != nil {
		return nil, err
	}
	return toPersonalDataResponse(d), nil
}

func toPersonalDataResponse(d *entity.PersonalData) *dto.PersonalDataResponse {
	return &dto.PersonalDataResponse{
		UserID:     d.UserID,
		FullName:   d.FullName,
		LastName:   d.LastName,
		Phone:      d.Phone,
		Address:    d.Address,
		City:       d.City,
		Country:    d.Country,
		PostalCode: d.PostalCode,
		RUT:        d.RUT,
		UpdatedAt:  d.UpdatedAt,
	}
}
