package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/core/ports"
	"github.com/odontocare/clinic-network/internal/pkg/token"
)

const routerSecret = "router-secret"

type fakeAppointments struct {
	ports.AppointmentService
	createErr error
}

func (f *fakeAppointments) CreateAsPatient(ctx context.Context, userID int64, in ports.PatientBookingInput) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &domain.Appointment{ID: 1, ScheduledAt: in.ScheduledAt, Reason: in.Reason, Status: domain.StatusPending,
		PatientID: userID, DoctorID: in.DoctorID, ClinicID: in.ClinicID, RegisteredBy: userID}, nil
}

func (f *fakeAppointments) SearchAsAdmin(ctx context.Context, filter ports.AppointmentFilter) ([]*domain.Appointment, error) {
	if filter.Empty() {
		return nil, domain.ErrMissingFilter
	}
	return nil, nil
}

func (f *fakeAppointments) Cancel(ctx context.Context, id int64) (domain.CancelOutcome, error) {
	if id == 404 {
		return 0, domain.ErrAppointmentNotFound
	}
	return domain.AlreadyCancelled, nil
}

type fakeDirectory struct {
	ports.DirectoryService
}

func (fakeDirectory) GetDoctor(ctx context.Context, actor domain.Actor, id int64) (*domain.Doctor, error) {
	return &domain.Doctor{ID: id, LastName: "Ruiz"}, nil
}

func (fakeDirectory) ListDoctors(ctx context.Context) ([]*domain.Doctor, error) {
	return []*domain.Doctor{{ID: 1}}, nil
}

func (fakeDirectory) CreateUser(ctx context.Context, in ports.NewUserInput) (*domain.User, error) {
	return nil, &domain.UserExistsError{Username: in.Username}
}

func userToken(t *testing.T, id int64, role domain.Role) string {
	t.Helper()
	signed, _, err := token.NewCodec(routerSecret).IssueUser(id, role, time.Hour)
	require.NoError(t, err)
	return "Bearer " + signed
}

func serviceToken(t *testing.T, proxied domain.Role) string {
	t.Helper()
	signed, _, err := token.NewCodec(routerSecret).IssueService(proxied, time.Hour)
	require.NoError(t, err)
	return "Bearer " + signed
}

func serve(t *testing.T, h http.Handler, method, path, auth, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func newTestAppointmentsRouter(svc ports.AppointmentService) http.Handler {
	return NewAppointmentsRouter(AppointmentsDeps{
		Appointments: svc,
		Codec:        token.NewCodec(routerSecret),
		Log:          zerolog.Nop(),
	})
}

func TestAppointmentsRouter_Authorization(t *testing.T) {
	e := newTestAppointmentsRouter(&fakeAppointments{})
	body := `{"fecha":"2024-03-01T10:00:00Z","motivo":"checkup","id_doctor":5,"id_centro":2}`

	rec := serve(t, e, http.MethodPost, "/api/v1/citas", "", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(t, e, http.MethodPost, "/api/v1/citas", "Basic abc", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(t, e, http.MethodPost, "/api/v1/citas", userToken(t, 3, domain.RoleFrontDesk), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(t, e, http.MethodPost, "/api/v1/citas", serviceToken(t, domain.RolePatient), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(t, e, http.MethodPost, "/api/v1/citas", userToken(t, 7, domain.RolePatient), body)
	require.Equal(t, http.StatusCreated, rec.Code)
	got := decode(t, rec)
	assert.EqualValues(t, 7, got["id_paciente"])
	assert.Equal(t, "Pendiente", got["estado"])
	assert.Equal(t, "2024-03-01T10:00:00Z", got["fecha"])
}

func TestAppointmentsRouter_ExpiredToken(t *testing.T) {
	e := newTestAppointmentsRouter(&fakeAppointments{})

	signed, _, err := token.NewCodec(routerSecret).IssueUser(1, domain.RoleAdmin, -time.Minute)
	require.NoError(t, err)

	rec := serve(t, e, http.MethodPut, "/api/v1/citas/1", "Bearer "+signed, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "token expired", decode(t, rec)["error"])
}

func TestAppointmentsRouter_ConflictIsBadRequestWithMessage(t *testing.T) {
	conflict := &domain.SlotConflictError{
		DoctorLastName: "Ruiz",
		ClinicName:     "Centro Norte",
		At:             time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	e := newTestAppointmentsRouter(&fakeAppointments{createErr: conflict})
	body := `{"fecha":"2024-03-01T10:00:00Z","motivo":"checkup","id_doctor":5,"id_centro":2}`

	rec := serve(t, e, http.MethodPost, "/api/v1/citas", userToken(t, 8, domain.RolePatient), body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	msg, _ := decode(t, rec)["message"].(string)
	assert.Contains(t, msg, "Ruiz")
	assert.Contains(t, msg, "Centro Norte")
	assert.Contains(t, msg, "2024-03-01")
	assert.Contains(t, msg, "10:00")
}

func TestAppointmentsRouter_ErrorMapping(t *testing.T) {
	e := newTestAppointmentsRouter(&fakeAppointments{createErr: domain.ErrBookingReference})
	admin := userToken(t, 1, domain.RoleAdmin)

	rec := serve(t, e, http.MethodPost, "/api/v1/citas", userToken(t, 7, domain.RolePatient),
		`{"fecha":"2024-03-01T10:00:00Z","motivo":"checkup","id_doctor":5,"id_centro":2}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, e, http.MethodGet, "/api/v1/citas", admin, `{"motivo":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, e, http.MethodGet, "/api/v1/citas", admin, `{"id_centro":2}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "{}\n", rec.Body.String())

	rec = serve(t, e, http.MethodPut, "/api/v1/citas/404", admin, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, e, http.MethodPut, "/api/v1/citas/42", admin, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "La cita ya estaba cancelada", decode(t, rec)["message"])
}

func TestIdentityRouter_ServiceTokenScope(t *testing.T) {
	e := NewIdentityRouter(IdentityDeps{
		Directory: fakeDirectory{},
		Codec:     token.NewCodec(routerSecret),
		Log:       zerolog.Nop(),
	})
	svc := serviceToken(t, domain.RoleDoctor)

	rec := serve(t, e, http.MethodGet, "/api/v1/admin/doctor/12", svc, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ruiz", decode(t, rec)["apellido"])

	rec = serve(t, e, http.MethodGet, "/api/v1/admin/doctores", svc, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(t, e, http.MethodGet, "/api/v1/admin/doctores", userToken(t, 1, domain.RoleAdmin), "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIdentityRouter_UserExistsIsInternalWithMessage(t *testing.T) {
	e := NewIdentityRouter(IdentityDeps{
		Directory: fakeDirectory{},
		Codec:     token.NewCodec(routerSecret),
		Log:       zerolog.Nop(),
	})

	rec := serve(t, e, http.MethodPost, "/api/v1/admin/usuario", userToken(t, 1, domain.RoleAdmin),
		`{"username":"ana","password":"x","rol":"doctor"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "El usuario ana ya existe", decode(t, rec)["error"])
}

func TestRouters_Probes(t *testing.T) {
	e := newTestAppointmentsRouter(&fakeAppointments{})

	rec := serve(t, e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, e, http.MethodGet, "/health/ready", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = serve(t, e, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
