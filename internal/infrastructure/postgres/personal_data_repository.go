package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/internal/domain/repository"
)

var _ repository.PersonalDataRepository = (*PersonalDataRepo)(nil)

// PersonalDataRepo datos personales, una fila por usuario.
type PersonalDataRepo struct {
	q Querier
}

// NewPersonalDataRepository construye el repositorio.
func NewPersonalDataRepository(q Querier) *PersonalDataRepo {
	return &PersonalDataRepo{q: q}
}

// GetByUser nil, nil si el usuario aún no registra datos.
func (r *PersonalDataRepo) GetByUser(ctx context.Context, userID string) (*entity.PersonalData, error) {
	var d entity.PersonalData
	err := r.q.QueryRow(ctx, `
		SELECT user_id, full_name, last_name, phone, address, city, country, postal_code, rut, created_at, updated_at
		FROM personal_data WHERE user_id = $1`, userID,
	).Scan(&d.UserID, &d.FullName, &d.LastName, &d.Phone, &d.Address, &d.City, &d.Country, &d.PostalCode, &d.RUT, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get personal data: %w", err)
	}
	return &d, nil
}

// Upsert inserta o reemplaza los datos del usuario. created_at se conserva en la actualización.
func (r *PersonalDataRepo) Upsert(ctx context.Context, d *entity.PersonalData) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO personal_data (user_id, full_name, last_name, phone, address, city, country, postal_code, rut, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name, last_name = EXCLUDED.last_name, phone = EXCLUDED.phone,
			address = EXCLUDED.address, city = EXCLUDED.city, country = EXCLUDED.country,
			postal_code = EXCLUDED.postal_code, rut = EXCLUDED.rut, updated_at = EXCLUDED.updated_at`,
		d.UserID, d.FullName, d.LastName, d.Phone, d.Address, d.City, d.Country, d.PostalCode, d.RUT, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("usuario %s inexistente: %w", d.UserID, err)
		}
		return fmt.Errorf("upsert personal data: %w", err)
	}
	return nil
}
