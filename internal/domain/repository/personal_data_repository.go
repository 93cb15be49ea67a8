package repository

import (
	"context"

	"github.com/zonekids/zonekids-api/internal/domain/entity"
)

// PersonalDataRepository persistencia de los datos personales (uno por usuario).
type PersonalDataRepository interface {
	GetByUser(ctx context.Context, userID string) (*entity.PersonalData, error)
	Upsert(ctx context.Context, data *entity.PersonalData) error
}
