package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zonekids/zonekids-api/internal/application/apptest"
	"github.com/zonekids/zonekids-api/internal/application/dto"
	"github.com/zonekids/zonekids-api/internal/application/usecase"
	"github.com/zonekids/zonekids-api/internal/domain"
	"github.com/zonekids/zonekids-api/internal/domain/entity"
)

const ownerEmail = "jefe@zonekids.cl"

var (
	jefe      = usecase.Actor{UserID: "u-jefe", Email: ownerEmail, Role: entity.RoleAdmin}
	otroAdmin = usecase.Actor{UserID: "u-admin", Email: "admin@zonekids.cl", Role: entity.RoleAdmin}
)

func newUsers(t *testing.T) (*usecase.UserUseCase, *apptest.Users) {
	t.Helper()
	repo := apptest.NewUsers(
		&entity.User{ID: "u-jefe", Name: "Jefe", Email: ownerEmail, Role: entity.RoleAdmin, Status: entity.UserStatusActive},
		&entity.User{ID: "u-admin", Name: "Admin", Email: "admin@zonekids.cl", Role: entity.RoleAdmin, Status: entity.UserStatusActive},
		&entity.User{ID: "u-cli", Name: "Cliente", Email: "cli@zonekids.cl", Role: entity.RoleCliente, Status: entity.UserStatusActive},
	)
	return usecase.NewUserUseCase(repo, "JEFE@zonekids.cl", nil), repo
}

func TestUserUseCase_CrearAdminSoloJefe(t *testing.T) {
	uc, _ := newUsers(t)
	ctx := context.Background()
	in := dto.CreateUserRequest{Name: "Nuevo", Email: "nuevo@zonekids.cl", Password: "secreta123", Role: entity.RoleAdmin}

	_, err := uc.Create(ctx, otroAdmin, in)
	assert.ErrorIs(t, err, domain.ErrOwnerOnly)

	out, err := uc.Create(ctx, jefe, in)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)
}

func TestUserUseCase_CrearPorDefectoCliente(t *testing.T) {
	uc, _ := newUsers(t)
	out, err := uc.Create(context.Background(), otroAdmin, dto.CreateUserRequest{Name: "Vero", Email: "Vero@zonekids.cl", Password: "secreta123"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCliente, out.Role)
	assert.Equal(t, "vero@zonekids.cl", out.Email)

	_, err = uc.Create(context.Background(), otroAdmin, dto.CreateUserRequest{Name: "Vero", Email: "vero@zonekids.cl", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestUserUseCase_ElevarAAdmin(t *testing.T) {
	uc, _ := newUsers(t)
	ctx := context.Background()
	admin := entity.RoleAdmin

	_, err := uc.Update(ctx, otroAdmin, "u-cli", dto.UpdateUserRequest{Role: &admin})
	assert.ErrorIs(t, err, domain.ErrOwnerOnly)

	out, err := uc.Update(ctx, jefe, "u-cli", dto.UpdateUserRequest{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, out.Role)
}

func TestUserUseCase_CuentaDelJefeProtegida(t *testing.T) {
	uc, _ := newUsers(t)
	ctx := context.Background()

	_, err := uc.SetStatus(ctx, otroAdmin, "u-jefe", entity.UserStatusInactive)
	assert.ErrorIs(t, err, domain.ErrOwnerOnly)

	err = uc.Delete(ctx, otroAdmin, "u-jefe")
	assert.ErrorIs(t, err, domain.ErrOwnerOnly)

	out, err := uc.SetStatus(ctx, otroAdmin, "u-cli", entity.UserStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, entity.UserStatusInactive, out.Status)
}

func TestUserUseCase_ListMarcaJefe(t *testing.T) {
	uc, _ := newUsers(t)
	list, err := uc.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	owners := 0
	for _, u := range list {
		if u.IsOwner {
			owners++
			assert.Equal(t, ownerEmail, u.Email)
		}
	}
	assert.Equal(t, 1, owners)
}

func TestUserUseCase_DeleteInexistente(t *testing.T) {
	uc, _ := newUsers(t)
	assert.ErrorIs(t, uc.Delete(context.Background(), jefe, "nope"), domain.ErrUserNotFound)
}
