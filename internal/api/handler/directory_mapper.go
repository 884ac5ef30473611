package handler

import (
	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/core/ports"
)

// --- Request → Service input ---

func toUserInput(r userRequest) ports.NewUserInput {
	return ports.NewUserInput{Username: r.Username, Password: r.Password, Role: domain.Role(r.Rol)}
}

func toDoctorInput(r doctorRequest) ports.NewDoctorInput {
	return ports.NewDoctorInput{FirstName: r.Nombre, LastName: r.Apellido, Specialty: r.Especialidad}
}

func toPatientInput(r patientRequest) ports.NewPatientInput {
	return ports.NewPatientInput{
		FirstName: r.Nombre,
		LastName:  r.Apellido,
		Phone:     r.Telefono,
		State:     domain.PatientState(r.Estado),
	}
}

func toClinicInput(r clinicRequest) ports.NewClinicInput {
	return ports.NewClinicInput{Name: r.Nombre, Address: r.Direccion}
}

// mapAll converts every element of in with fn.
func mapAll[R, I any](in []R, fn func(R) I) []I {
	out := make([]I, len(in))
	for i, r := range in {
		out[i] = fn(r)
	}
	return out
}

// --- Service result → HTTP response ---

func toAccountResponse(c *ports.Credentials) accountResponse {
	return accountResponse{
		IDUsuario: c.User.ID,
		Username:  c.User.Username,
		Password:  c.Password,
		Rol:       string(c.User.Role),
	}
}
