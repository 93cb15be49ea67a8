package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/zonekids/zonekids-api/internal/application/dto"
	"github.com/zonekids/zonekids-api/internal/domain"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/internal/domain/repository"
	"github.com/zonekids/zonekids-api/pkg/logger"
)

// Actor usuario autenticado que ejecuta la operación.
type Actor struct {
	UserID string
	Email  string
	Role   string
}

// UserUseCase administración de cuentas. Solo el administrador jefe
// (ownerEmail) puede crear admins, elevar a admin o tocar su propia cuenta de jefe.
type UserUseCase struct {
	repo       repository.UserRepository
	ownerEmail string
	log        *logger.Logger
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, ownerEmail string, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, ownerEmail: strings.ToLower(ownerEmail), log: log.Named("usuarios")}
}

// IsOwner indica si el email corresponde al administrador jefe.
func (uc *UserUseCase) IsOwner(email string) bool {
	return uc.ownerEmail != "" && strings.EqualFold(email, uc.ownerEmail)
}

// List lista usuarios.
func (uc *UserUseCase) List(ctx context.Context, limit int) ([]dto.UserResponse, error) {
	list, err := uc.repo.List(ctx, dto.ClampLimit(limit))
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *uc.toUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return uc.toUserResponse(user), nil
}

// Create da de alta un usuario. Rol por defecto: cliente.
func (uc *UserUseCase) Create(ctx context.Context, actor Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleCliente
	}
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	if role == entity.RoleAdmin && !uc.IsOwner(actor.Email) {
		return nil, domain.ErrOwnerOnly
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.UserStatusActive
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       status,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("actor", actor.Email).Str("user_id", user.ID).Str("rol", role).Msg("usuario creado")
	return uc.toUserResponse(user), nil
}

// Update aplica los campos presentes. Elevar a admin requiere ser el jefe.
func (uc *UserUseCase) Update(ctx context.Context, actor Actor, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if err := uc.guardOwnerAccount(actor, user); err != nil {
		return nil, err
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != user.Email {
			other, err := uc.repo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Role != nil && *in.Role != user.Role {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		if *in.Role == entity.RoleAdmin && !uc.IsOwner(actor.Email) {
			return nil, domain.ErrOwnerOnly
		}
		user.Role = *in.Role
	}
	if in.Status != nil {
		user.Status = *in.Status
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return uc.toUserResponse(user), nil
}

// SetStatus activa o desactiva una cuenta.
func (uc *UserUseCase) SetStatus(ctx context.Context, actor Actor, id, status string) (*dto.UserResponse, error) {
	if status != entity.UserStatusActive && status != entity.UserStatusInactive {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if err := uc.guardOwnerAccount(actor, user); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	user.Status = status
	return uc.toUserResponse(user), nil
}

// Delete elimina una cuenta. La cuenta del jefe solo la puede borrar el jefe.
func (uc *UserUseCase) Delete(ctx context.Context, actor Actor, id string) error {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.guardOwnerAccount(actor, user); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("actor", actor.Email).Str("user_id", id).Msg("usuario eliminado")
	return nil
}

func (uc *UserUseCase) guardOwnerAccount(actor Actor, target *entity.User) error {
	if uc.IsOwner(target.Email) && !uc.IsOwner(actor.Email) {
		return domain.ErrOwnerOnly
	}
	return nil
}

func (uc *UserUseCase) toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		IsOwner:   uc.IsOwner(u.Email),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
