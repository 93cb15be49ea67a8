package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/zonekids/zonekids-api/internal/application/apptest"
	"github.com/zonekids/zonekids-api/internal/application/auth"
	"github.com/zonekids/zonekids-api/internal/application/dto"
	"github.com/zonekids/zonekids-api/internal/domain"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
	"github.com/zonekids/zonekids-api/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T, users ...*entity.User) (*auth.AuthUseCase, *apptest.Users, *apptest.PersonalData) {
	t.Helper()
	ur := apptest.NewUsers(users...)
	pr := apptest.NewPersonalData()
	uc := auth.NewAuthUseCase(ur, pr, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "zonekids"}, "jefe@zonekids.cl", nil)
	return uc, ur, pr
}

func userWithPassword(t *testing.T, id, email, password, status string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{ID: id, Name: "Ana", Email: email, PasswordHash: string(hash), Role: entity.RoleAdmin, Status: status, CreatedAt: time.Now()}
}

func TestRegister_CreaClienteYGuardaRUT(t *testing.T) {
	uc, ur, pr := newAuth(t)
	ctx := context.Background()

	out, err := uc.Register(ctx, dto.RegisterRequest{Name: "Ana Pérez", Email: " Ana@ZoneKids.cl ", Password: "secreta123", RUT: "123456785"})
	require.NoError(t, err)
	assert.Equal(t, "ana@zonekids.cl", out.Email)
	assert.Equal(t, entity.RoleCliente, out.Role)
	assert.Equal(t, entity.UserStatusActive, out.Status)

	stored, _ := ur.GetByID(ctx, out.ID)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta123", stored.PasswordHash)

	pd, _ := pr.GetByUser(ctx, out.ID)
	require.NotNil(t, pd)
	assert.Equal(t, "12345678-5", pd.RUT)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, _ := newAuth(t, userWithPassword(t, "u1", "ana@zonekids.cl", "secreta123", entity.UserStatusActive))
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Name: "Ana", Email: "ana@zonekids.cl", Password: "otraclave1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin(t *testing.T) {
	active := userWithPassword(t, "u1", "jefe@zonekids.cl", "secreta123", entity.UserStatusActive)
	inactive := userWithPassword(t, "u2", "off@zonekids.cl", "secreta123", entity.UserStatusInactive)
	uc, _, _ := newAuth(t, active, inactive)
	ctx := context.Background()

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "JEFE@zonekids.cl", Password: "secreta123"})
	require.NoError(t, err)
	assert.True(t, out.User.IsOwner)

	id, err := jwt.Parse(secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, entity.RoleAdmin, id.Role)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "jefe@zonekids.cl", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@zonekids.cl", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "off@zonekids.cl", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMe(t *testing.T) {
	uc, _, _ := newAuth(t, userWithPassword(t, "u1", "ana@zonekids.cl", "secreta123", entity.UserStatusActive))
	out, err := uc.Me(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "ana@zonekids.cl", out.Email)
	assert.False(t, out.IsOwner)

	out, err = uc.Me(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, out)
}
