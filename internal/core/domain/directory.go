package domain

// PatientState is the administrative state of a patient record.
type PatientState string

const (
	PatientActive   PatientState = "activo"
	PatientInactive PatientState = "inactivo"
)

// Valid reports whether s is a known patient state.
func (s PatientState) Valid() bool {
	return s == PatientActive || s == PatientInactive
}

// Doctor is a practitioner, linked to the account it logs in with.
type Doctor struct {
	ID        int64  `json:"id_doctor"`
	UserID    int64  `json:"id_usuario"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	Specialty string `json:"especialidad"`
}

// Patient is a person that can be booked, linked to its account.
type Patient struct {
	ID        int64        `json:"id_paciente"`
	UserID    int64        `json:"id_usuario"`
	FirstName string       `json:"nombre"`
	LastName  string       `json:"apellido"`
	Phone     int64        `json:"telefono"`
	State     PatientState `json:"estado"`
}

// Active reports whether the patient can be booked and can log in.
func (p *Patient) Active() bool {
	return p != nil && p.State != PatientInactive
}

// Clinic is a physical location where appointments take place.
type Clinic struct {
	ID      int64  `json:"id_centro"`
	Name    string `json:"nombre"`
	Address string `json:"direccion"`
}
