package dto

import "time"

// CreateUserRequest alta de usuario desde el panel (password en texto, se hashea en el use case).
type CreateUserRequest struct {
	Name     string `json:"nombre" validate:"required,min=3,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"contrasena" validate:"required,min=8"`
	Role     string `json:"rol" validate:"omitempty,oneof=cliente vendedor admin"`
	Status   string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// UpdateUserRequest edición parcial: solo se aplican los campos presentes.
type UpdateUserRequest struct {
	Name     *string `json:"nombre" validate:"omitempty,min=3,max=200"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"contrasena" validate:"omitempty,min=8"`
	Role     *string `json:"rol" validate:"omitempty,oneof=cliente vendedor admin"`
	Status   *string `json:"estado" validate:"omitempty,oneof=activo inactivo"`
}

// UserStatusRequest body de PATCH /usuarios/:id/estado.
type UserStatusRequest struct {
	Status string `json:"estado" validate:"required,oneof=activo inactivo"`
}

// RegisterRequest registro público: siempre crea rol cliente.
type RegisterRequest struct {
	Name     string `json:"nombre" validate:"required,personname,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"contrasena" validate:"required,min=8"`
	RUT      string `json:"rut" validate:"omitempty,rut"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"contrasena" validate:"required"`
}

// UserResponse usuario sin contraseña.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Email     string    `json:"email"`
	Role      string    `json:"rol"`
	Status    string    `json:"estado"`
	IsOwner   bool      `json:"esJefe"`
	CreatedAt time.Time `json:"fechaCreacion"`
	UpdatedAt time.Time `json:"fechaActualizacion"`
}

// LoginResponse token JWT más el usuario.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"usuario"`
}

// PersonalDataRequest body de PUT /datos-personales.
type PersonalDataRequest struct {
	FullName   string `json:"nombreCompleto" validate:"required,min=3,max=200"`
	LastName   string `json:"apellido" validate:"max=200"`
	Phone      string `json:"telefono" validate:"max=30"`
	Address    string `json:"direccion" validate:"required,min=5,max=300"`
	City       string `json:"ciudad" validate:"max=100"`
	Country    string `json:"pais" validate:"max=100"`
	PostalCode string `json:"codigoPostal" validate:"max=20"`
	RUT        string `json:"rut" validate:"omitempty,rut"`
}

// PersonalDataResponse datos personales del usuario.
type PersonalDataResponse struct {
	UserID     string    `json:"usuarioId"`
	FullName   string    `json:"nombreCompleto"`
	LastName   string    `json:"apellido"`
	Phone      string    `json:"telefono"`
	Address    string    `json:"direccion"`
	City       string    `json:"ciudad"`
	Country    string    `json:"pais"`
	PostalCode string    `json:"codigoPostal"`
	RUT        string    `json:"rut"`
	UpdatedAt  time.Time `json:"fechaActualizacion"`
}
