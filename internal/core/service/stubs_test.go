package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/odontocare/clinic-network/internal/core/domain"
	"github.com/odontocare/clinic-network/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*domain.User
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[int64]*domain.User)}
	for _, u := range users {
		clone := *u
		r.users[u.ID] = &clone
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return nil, &domain.UserExistsError{Username: u.Username}
		}
	}
	r.nextID++
	clone := *u
	clone.ID = r.nextID
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id int64, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Password = password
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubDoctorRepo struct {
	nextID    int64
	doctors   map[int64]*domain.Doctor
	createErr error
}

func newStubDoctorRepo(doctors ...*domain.Doctor) *stubDoctorRepo {
	r := &stubDoctorRepo{doctors: make(map[int64]*domain.Doctor)}
	for _, d := range doctors {
		clone := *d
		r.doctors[d.ID] = &clone
		if d.ID > r.nextID {
			r.nextID = d.ID
		}
	}
	return r
}

func (r *stubDoctorRepo) Create(_ context.Context, d *domain.Doctor) (*domain.Doctor, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *d
	clone.ID = r.nextID
	r.doctors[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubDoctorRepo) FindByID(_ context.Context, id int64) (*domain.Doctor, error) {
	d, ok := r.doctors[id]
	if !ok {
		return nil, domain.ErrDoctorNotFound
	}
	clone := *d
	return &clone, nil
}

func (r *stubDoctorRepo) FindByUserID(_ context.Context, userID int64) (*domain.Doctor, error) {
	for _, d := range r.doctors {
		if d.UserID == userID {
			clone := *d
			return &clone, nil
		}
	}
	return nil, domain.ErrDoctorNotFound
}

func (r *stubDoctorRepo) List(_ context.Context) ([]*domain.Doctor, error) {
	out := make([]*domain.Doctor, 0, len(r.doctors))
	for _, d := range r.doctors {
		clone := *d
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubDoctorRepo) UpdateSpecialty(_ context.Context, id int64, specialty string) error {
	d, ok := r.doctors[id]
	if !ok {
		return domain.ErrDoctorNotFound
	}
	d.Specialty = specialty
	return nil
}

func (r *stubDoctorRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.doctors[id]; !ok {
		return domain.ErrDoctorNotFound
	}
	delete(r.doctors, id)
	return nil
}

type stubPatientRepo struct {
	nextID   int64
	patients map[int64]*domain.Patient
}

func newStubPatientRepo(patients ...*domain.Patient) *stubPatientRepo {
	r := &stubPatientRepo{patients: make(map[int64]*domain.Patient)}
	for _, p := range patients {
		clone := *p
		r.patients[p.ID] = &clone
		if p.ID > r.nextID {
			r.nextID = p.ID
		}
	}
	return r
}

func (r *stubPatientRepo) Create(_ context.Context, p *domain.Patient) (*domain.Patient, error) {
	r.nextID++
	clone := *p
	clone.ID = r.nextID
	r.patients[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPatientRepo) FindByID(_ context.Context, id int64, f ports.PatientFilter) (*domain.Patient, error) {
	p, ok := r.patients[id]
	if !ok || (f.State != "" && p.State != f.State) {
		return nil, domain.ErrPatientNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPatientRepo) FindByUserID(_ context.Context, userID int64) (*domain.Patient, error) {
	for _, p := range r.patients {
		if p.UserID == userID {
			clone := *p
			return &clone, nil
		}
	}
	return nil, domain.ErrPatientNotFound
}

func (r *stubPatientRepo) List(_ context.Context, f ports.PatientFilter) ([]*domain.Patient, error) {
	var out []*domain.Patient
	for _, p := range r.patients {
		if f.State != "" && p.State != f.State {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubPatientRepo) Update(_ context.Context, id int64, phone int64, state domain.PatientState) error {
	p, ok := r.patients[id]
	if !ok {
		return domain.ErrPatientNotFound
	}
	p.Phone = phone
	p.State = state
	return nil
}

func (r *stubPatientRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.patients[id]; !ok {
		return domain.ErrPatientNotFound
	}
	delete(r.patients, id)
	return nil
}

type stubClinicRepo struct {
	nextID  int64
	clinics map[int64]*domain.Clinic
}

func newStubClinicRepo() *stubClinicRepo {
	return &stubClinicRepo{clinics: make(map[int64]*domain.Clinic)}
}

func (r *stubClinicRepo) Create(_ context.Context, c *domain.Clinic) (*domain.Clinic, error) {
	r.nextID++
	clone := *c
	clone.ID = r.nextID
	r.clinics[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubClinicRepo) FindByID(_ context.Context, id int64) (*domain.Clinic, error) {
	c, ok := r.clinics[id]
	if !ok {
		return nil, domain.ErrClinicNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubClinicRepo) List(_ context.Context) ([]*domain.Clinic, error) {
	out := make([]*domain.Clinic, 0, len(r.clinics))
	for _, c := range r.clinics {
		clone := *c
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubClinicRepo) Update(_ context.Context, id int64, name, address string) error {
	c, ok := r.clinics[id]
	if !ok {
		return domain.ErrClinicNotFound
	}
	c.Name, c.Address = name, address
	return nil
}

func (r *stubClinicRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.clinics[id]; !ok {
		return domain.ErrClinicNotFound
	}
	delete(r.clinics, id)
	return nil
}

// stubAppointmentRepo mirrors the partial unique index of the real table:
// a second live appointment on the same slot is rejected.
type stubAppointmentRepo struct {
	mu           sync.Mutex
	nextID       int64
	appointments map[int64]*domain.Appointment
	lastFilter   ports.AppointmentFilter
}

func newStubAppointmentRepo() *stubAppointmentRepo {
	return &stubAppointmentRepo{appointments: make(map[int64]*domain.Appointment)}
}

func (r *stubAppointmentRepo) Create(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.Status != domain.StatusCancelled {
		for _, existing := range r.appointments {
			if existing.Status != domain.StatusCancelled && existing.Slot() == a.Slot() {
				return nil, domain.ErrSlotTaken
			}
		}
	}
	r.nextID++
	clone := *a
	clone.ID = r.nextID
	r.appointments[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubAppointmentRepo) FindActiveInSlot(_ context.Context, slot domain.Slot) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.appointments {
		if a.Status != domain.StatusCancelled && a.Slot() == slot {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAppointmentNotFound
}

func (r *stubAppointmentRepo) Search(_ context.Context, f ports.AppointmentFilter) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = f
	var out []*domain.Appointment
	for _, a := range r.appointments {
		if f.PatientID != 0 && a.PatientID != f.PatientID ||
			f.DoctorID != 0 && a.DoctorID != f.DoctorID ||
			f.ClinicID != 0 && a.ClinicID != f.ClinicID ||
			f.Status != "" && a.Status != f.Status {
			continue
		}
		if !f.Day.IsZero() && (a.ScheduledAt.Before(f.Day) || !a.ScheduledAt.Before(f.Day.Add(24*time.Hour))) {
			continue
		}
		clone := *a
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (r *stubAppointmentRepo) Cancel(_ context.Context, id int64) (domain.CancelOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.appointments[id]
	if !ok {
		return 0, domain.ErrAppointmentNotFound
	}
	if a.Status == domain.StatusCancelled {
		return domain.AlreadyCancelled, nil
	}
	a.Status = domain.StatusCancelled
	return domain.Cancelled, nil
}

// memoryLocker blocks until the slot is free, like a lock that is always
// eventually acquired.
type memoryLocker struct {
	mu    sync.Mutex
	slots map[string]*sync.Mutex
}

func newMemoryLocker() *memoryLocker {
	return &memoryLocker{slots: make(map[string]*sync.Mutex)}
}

func (l *memoryLocker) WithSlotLock(ctx context.Context, slot domain.Slot, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	m, ok := l.slots[slot.Key()]
	if !ok {
		m = &sync.Mutex{}
		l.slots[slot.Key()] = m
	}
	l.mu.Unlock()

	m.Lock()
	defer m.Unlock()
	return fn(ctx)
}

// busyLocker reports every slot as held elsewhere.
type busyLocker struct{}

func (busyLocker) WithSlotLock(context.Context, domain.Slot, func(context.Context) error) error {
	return domain.ErrSlotBusy
}

// stubDirectory resolves doctors and patients the way the identity service
// does for the given requester role.
type stubDirectory struct {
	doctors  []*domain.Doctor
	patients []*domain.Patient
	clinics  []*domain.Clinic

	mu         sync.Mutex
	requesters []domain.Role
}

func (d *stubDirectory) Doctor(_ context.Context, id int64, requester domain.Role) (*domain.Doctor, bool) {
	d.record(requester)
	for _, doc := range d.doctors {
		if requester == domain.RoleDoctor && doc.UserID == id || requester != domain.RoleDoctor && doc.ID == id {
			return doc, true
		}
	}
	return nil, false
}

func (d *stubDirectory) Patient(_ context.Context, id int64, requester domain.Role) (*domain.Patient, bool) {
	d.record(requester)
	for _, p := range d.patients {
		if requester == domain.RolePatient && p.UserID == id {
			return p, true
		}
		if requester != domain.RolePatient && p.ID == id && p.State == domain.PatientActive {
			return p, true
		}
	}
	return nil, false
}

func (d *stubDirectory) Clinic(_ context.Context, id int64) (*domain.Clinic, bool) {
	for _, c := range d.clinics {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

func (d *stubDirectory) record(r domain.Role) {
	d.mu.Lock()
	d.requesters = append(d.requesters, r)
	d.mu.Unlock()
}
