package auth

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
	"github.com/zonekids/zonekids-api/internal/domain/validation"
	"github.com/zonekids/zonekids-api/pkg/jwt"
	"github.com/zonekids/zonekids-api/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y perfil.
type AuthUseCase struct {
	userRepo     repository.UserRepository
	personalRepo repository.PersonalDataRepository
	jwtCfg       JWTConfig
	ownerEmail   string
	log          *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth. ownerEmail identifica al administrador jefe.
func NewAuthUseCase(userRepo repository.UserRepository, personalRepo repository.PersonalDataRepository, jwtCfg JWTConfig, ownerEmail string, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		userRepo:     userRepo,
		personalRepo: personalRepo,
		jwtCfg:       jwtCfg,
		ownerEmail:   strings.ToLower(ownerEmail),
		log:          log.Named("auth"),
	}
}

// Register crea una cuenta cliente. El rol nunca se toma del body.
// Si viene RUT se guarda en los datos personales.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
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
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         entity.RoleCliente,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if in.RUT != "" && uc.personalRepo != nil {
		pd := &entity.PersonalData{
			UserID:    user.ID,
			FullName:  user.Name,
			RUT:       validation.FormatRUT(in.RUT),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := uc.personalRepo.Upsert(ctx, pd); err != nil {
			uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo guardar el RUT del registro")
		}
	}
	uc.log.Info().Str("user_id", user.ID).Msg("usuario registrado")
	return uc.toUserResponse(user), nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// Credenciales incorrectas -> ErrUnauthorized; cuenta inactiva -> ErrForbidden.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *uc.toUserResponse(user),
	}, nil
}

// Me devuelve el usuario autenticado. nil, nil si ya no existe.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	return uc.toUserResponse(user), nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (uc *AuthUseCase) toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		IsOwner:   uc.ownerEmail != "" && u.Email == uc.ownerEmail,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
