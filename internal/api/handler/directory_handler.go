package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/core/ports"
)

// DirectoryHandler serves the identity service's administrative endpoints
// for users, doctors, patients and clinics.
type DirectoryHandler struct {
	service ports.DirectoryService
}

// NewDirectoryHandler creates a DirectoryHandler backed by the given service.
func NewDirectoryHandler(service ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

// ── Users ────────────────────────────────────────────────────────────────────

// ListUsers handles GET /api/v1/admin/usuarios.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Router       /api/v1/admin/usuarios [get]
func (h *DirectoryHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(users))
}

// GetUser handles GET /api/v1/admin/usuario/:id.
//
// @Summary      Get a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  emptyResponse
// @Router       /api/v1/admin/usuario/{id} [get]
func (h *DirectoryHandler) GetUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.service.GetUser(c.Request().Context(), id)
	if errors.Is(err, domain.ErrUserNotFound) {
		return c.JSON(http.StatusNotFound, emptyResponse{})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// CreateUser handles POST /api/v1/admin/usuario.
//
// @Summary      Create a user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      userRequest  true  "User"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/v1/admin/usuario [post]
func (h *DirectoryHandler) CreateUser(c echo.Context) error {
	var req userRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	user, err := h.service.CreateUser(c.Request().Context(), toUserInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// CreateUsers handles POST /api/v1/admin/usuarios. Either every user is
// created or none is.
//
// @Summary      Create users in bulk
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []userRequest  true  "Users"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/v1/admin/usuarios [post]
func (h *DirectoryHandler) CreateUsers(c echo.Context) error {
	reqs, err := bindBatch[userRequest](c, "usuario")
	if err != nil {
		return err
	}
	if err := h.service.CreateUsers(c.Request().Context(), mapAll(reqs, toUserInput)); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Usuarios creados con exito"})
}

// DeleteUser handles DELETE /api/v1/admin/usuario/:id.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/admin/usuario/{id} [delete]
func (h *DirectoryHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteUser(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Usuario eliminado"})
}

// ── Doctors ──────────────────────────────────────────────────────────────────

// ListDoctors handles GET /api/v1/admin/doctores.
//
// @Summary      List doctors
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Doctor
// @Router       /api/v1/admin/doctores [get]
func (h *DirectoryHandler) ListDoctors(c echo.Context) error {
	doctors, err := h.service.ListDoctors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(doctors))
}

// GetDoctor handles GET /api/v1/admin/doctor/:id.
//
// When the appointments service calls on behalf of a doctor, id is the
// doctor's user ID. Otherwise it is the doctor ID.
//
// @Summary      Get a doctor
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Doctor ID, or user ID for service tokens proxying a doctor"
// @Success      200  {object}  domain.Doctor
// @Failure      404  {object}  emptyResponse
// @Router       /api/v1/admin/doctor/{id} [get]
func (h *DirectoryHandler) GetDoctor(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	doctor, err := h.service.GetDoctor(c.Request().Context(), actor, id)
	if errors.Is(err, domain.ErrDoctorNotFound) {
		return c.JSON(http.StatusNotFound, emptyResponse{})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, doctor)
}

// CreateDoctor handles POST /api/v1/admin/doctor. The doctor's account is
// created with a generated password, returned once in the response.
//
// @Summary      Create a doctor and its account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      doctorRequest  true  "Doctor"
// @Success      201   {object}  doctorCreatedResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/v1/admin/doctor [post]
func (h *DirectoryHandler) CreateDoctor(c echo.Context) error {
	var req doctorRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	doctor, creds, err := h.service.CreateDoctor(c.Request().Context(), toDoctorInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, doctorCreatedResponse{Doctor: doctor, User: toAccountResponse(creds)})
}

// CreateDoctors handles POST /api/v1/admin/doctores.
//
// @Summary      Create doctors in bulk
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []doctorRequest  true  "Doctors"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/v1/admin/doctores [post]
func (h *DirectoryHandler) CreateDoctors(c echo.Context) error {
	reqs, err := bindBatch[doctorRequest](c, "doctor")
	if err != nil {
		return err
	}
	if err := h.service.CreateDoctors(c.Request().Context(), mapAll(reqs, toDoctorInput)); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Doctores creados con exito"})
}

// UpdateDoctor handles PUT /api/v1/admin/doctor/:id.
//
// @Summary      Change a doctor's specialty
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Doctor ID"
// @Param        body  body      specialtyRequest  true  "Specialty"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/admin/doctor/{id} [put]
func (h *DirectoryHandler) UpdateDoctor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req specialtyRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := h.service.UpdateDoctorSpecialty(c.Request().Context(), id, req.Especialidad); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Especialidad de doctor cambiada"})
}

// DeleteDoctor handles DELETE /api/v1/admin/doctor/:id. The doctor's
// account is deleted with it.
//
// @Summary      Delete a doctor and its account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Doctor ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/admin/doctor/{id} [delete]
func (h *DirectoryHandler) DeleteDoctor(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteDoctor(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Doctor eliminado"})
}

// ── Patients ─────────────────────────────────────────────────────────────────

// ListPatients handles GET /api/v1/admin/pacientes?estado=.
//
// @Summary      List patients
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        estado  query     string  false  "activo or inactivo"
// @Success      200     {array}   domain.Patient
// @Failure      400     {object}  errorResponse
// @Router       /api/v1/admin/pacientes [get]
func (h *DirectoryHandler) ListPatients(c echo.Context) error {
	f, err := patientFilter(c)
	if err != nil {
		return err
	}
	patients, err := h.service.ListPatients(c.Request().Context(), f)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(patients))
}

// GetPatient handles GET /api/v1/admin/paciente/:id?estado=.
//
// When the appointments service calls on behalf of a patient, id is the
// patient's user ID and estado is ignored. Otherwise id is the patient ID.
//
// @Summary      Get a patient
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id      path      int     true   "Patient ID, or user ID for service tokens proxying a patient"
// @Param        estado  query     string  false  "activo or inactivo"
// @Success      200     {object}  domain.Patient
// @Failure      404     {object}  emptyResponse
// @Router       /api/v1/admin/paciente/{id} [get]
func (h *DirectoryHandler) GetPatient(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	f, err := patientFilter(c)
	if err != nil {
		return err
	}
	patient, err := h.service.GetPatient(c.Request().Context(), actor, id, f)
	if errors.Is(err, domain.ErrPatientNotFound) {
		return c.JSON(http.StatusNotFound, emptyResponse{})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, patient)
}

// CreatePatient handles POST /api/v1/admin/paciente.
//
// @Summary      Create a patient and its account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      patientRequest  true  "Patient"
// @Success      201   {object}  patientCreatedResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/v1/admin/paciente [post]
func (h *DirectoryHandler) CreatePatient(c echo.Context) error {
	var req patientRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	patient, creds, err := h.service.CreatePatient(c.Request().Context(), toPatientInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, patientCreatedResponse{Paciente: patient, User: toAccountResponse(creds)})
}

// CreatePatients handles POST /api/v1/admin/pacientes.
//
// @Summary      Create patients in bulk
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []patientRequest  true  "Patients"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/v1/admin/pacientes [post]
func (h *DirectoryHandler) CreatePatients(c echo.Context) error {
	reqs, err := bindBatch[patientRequest](c, "paciente")
	if err != nil {
		return err
	}
	if err := h.service.CreatePatients(c.Request().Context(), mapAll(reqs, toPatientInput)); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Pacientes creados con exito"})
}

// UpdatePatient handles PUT /api/v1/admin/paciente/:id.
//
// @Summary      Update a patient's phone and state
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Patient ID"
// @Param        body  body      patientUpdateRequest  true  "Phone and state"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/admin/paciente/{id} [put]
func (h *DirectoryHandler) UpdatePatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req patientUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	err = h.service.UpdatePatient(c.Request().Context(), id, req.Telefono, domain.PatientState(req.Estado))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Datos del paciente actualizados"})
}

// DeletePatient handles DELETE /api/v1/admin/paciente/:id.
//
// @Summary      Delete a patient and its account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Patient ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/admin/paciente/{id} [delete]
func (h *DirectoryHandler) DeletePatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeletePatient(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Paciente eliminado"})
}

// ── Clinics ──────────────────────────────────────────────────────────────────

// ListClinics handles GET /api/v1/admin/centros.
//
// @Summary      List clinics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Clinic
// @Router       /api/v1/admin/centros [get]
func (h *DirectoryHandler) ListClinics(c echo.Context) error {
	clinics, err := h.service.ListClinics(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(clinics))
}

// GetClinic handles GET /api/v1/admin/centro/:id.
//
// @Summary      Get a clinic
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Clinic ID"
// @Success      200  {object}  domain.Clinic
// @Failure      404  {object}  emptyResponse
// @Router       /api/v1/admin/centro/{id} [get]
func (h *DirectoryHandler) GetClinic(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	clinic, err := h.service.GetClinic(c.Request().Context(), id)
	if errors.Is(err, domain.ErrClinicNotFound) {
		return c.JSON(http.StatusNotFound, emptyResponse{})
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clinic)
}

// CreateClinic handles POST /api/v1/admin/centro.
//
// @Summary      Create a clinic
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      clinicRequest  true  "Clinic"
// @Success      201   {object}  domain.Clinic
// @Failure      400   {object}  errorResponse
// @Router       /api/v1/admin/centro [post]
func (h *DirectoryHandler) CreateClinic(c echo.Context) error {
	var req clinicRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	clinic, err := h.service.CreateClinic(c.Request().Context(), toClinicInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, clinic)
}

// CreateClinics handles POST /api/v1/admin/centros.
//
// @Summary      Create clinics in bulk
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []clinicRequest  true  "Clinics"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/v1/admin/centros [post]
func (h *DirectoryHandler) CreateClinics(c echo.Context) error {
	reqs, err := bindBatch[clinicRequest](c, "centro")
	if err != nil {
		return err
	}
	if err := h.service.CreateClinics(c.Request().Context(), mapAll(reqs, toClinicInput)); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Centros creados con exito"})
}

// UpdateClinic handles PUT /api/v1/admin/centro/:id.
//
// @Summary      Update a clinic
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "Clinic ID"
// @Param        body  body      clinicRequest  true  "Clinic"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/v1/admin/centro/{id} [put]
func (h *DirectoryHandler) UpdateClinic(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req clinicRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}
	if err := h.service.UpdateClinic(c.Request().Context(), id, toClinicInput(req)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Datos del centro actualizados"})
}

// DeleteClinic handles DELETE /api/v1/admin/centro/:id.
//
// @Summary      Delete a clinic
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Clinic ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/v1/admin/centro/{id} [delete]
func (h *DirectoryHandler) DeleteClinic(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteClinic(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Centro eliminado"})
}

// ── helpers ──────────────────────────────────────────────────────────────────

// bindBatch decodes a non-empty JSON array and validates every element
// before anything is written.
func bindBatch[T any](c echo.Context, item string) ([]T, error) {
	if c.Request().ContentLength == 0 {
		return nil, errBadJSON()
	}
	var reqs []T
	if err := c.Bind(&reqs); err != nil {
		return nil, errBadJSON()
	}
	if len(reqs) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}
	for i := range reqs {
		if err := c.Validate(&reqs[i]); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest,
				fmt.Sprintf("%s[%d]: %s", item, i, err.Error()))
		}
	}
	return reqs, nil
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "id no valido")
	}
	return id, nil
}

func patientFilter(c echo.Context) (ports.PatientFilter, error) {
	state := domain.PatientState(c.QueryParam("estado"))
	if state != "" && !state.Valid() {
		return ports.PatientFilter{}, echo.NewHTTPError(http.StatusBadRequest, "estado debe ser activo o inactivo")
	}
	return ports.PatientFilter{State: state}, nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
