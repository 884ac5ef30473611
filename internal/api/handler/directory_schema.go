package handler

import "github.com/odontocare/clinic-network/internal/core/domain"

// --- Request / Response types ---

type userRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Rol      string `json:"rol"      validate:"required,oneof=admin doctor secretariat patient"`
}

type doctorRequest struct {
	Nombre       string `json:"nombre"       validate:"required"`
	Apellido     string `json:"apellido"     validate:"required"`
	Especialidad string `json:"especialidad" validate:"required"`
}

type specialtyRequest struct {
	Especialidad string `json:"especialidad" validate:"required"`
}

type patientRequest struct {
	Nombre   string `json:"nombre"   validate:"required"`
	Apellido string `json:"apellido" validate:"required"`
	Telefono int64  `json:"telefono" validate:"required,gt=0"`
	Estado   string `json:"estado"   validate:"required,oneof=activo inactivo"`
}

type patientUpdateRequest struct {
	Telefono int64  `json:"telefono" validate:"required,gt=0"`
	Estado   string `json:"estado"   validate:"required,oneof=activo inactivo"`
}

type clinicRequest struct {
	Nombre    string `json:"nombre"    validate:"required"`
	Direccion string `json:"direccion" validate:"required"`
}

// accountResponse shows a generated account once, including its password.
type accountResponse struct {
	IDUsuario int64  `json:"id_usuario"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Rol       string `json:"rol"`
}

type doctorCreatedResponse struct {
	Doctor *domain.Doctor  `json:"doctor"`
	User   accountResponse `json:"user"`
}

type patientCreatedResponse struct {
	Paciente *domain.Patient `json:"paciente"`
	User     accountResponse `json:"user"`
}
