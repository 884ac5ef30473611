package handler

// --- Request / Response types ---

type patientAppointmentRequest struct {
	Fecha    string `json:"fecha"     validate:"required"`
	Motivo   string `json:"motivo"    validate:"required,max=100"`
	IDDoctor int64  `json:"id_doctor" validate:"required,gt=0"`
	IDCentro int64  `json:"id_centro" validate:"required,gt=0"`
}

// adminAppointmentRequest adds the fields only an administrator may set.
type adminAppointmentRequest struct {
	patientAppointmentRequest
	Estado     string `json:"estado"      validate:"required,oneof=Pendiente Activa Cancelada"`
	IDPaciente int64  `json:"id_paciente" validate:"required,gt=0"`
}

type adminSearchRequest struct {
	Fecha      string `json:"fecha"`
	Estado     string `json:"estado"      validate:"omitempty,oneof=Pendiente Activa Cancelada"`
	IDPaciente int64  `json:"id_paciente" validate:"gte=0"`
	IDDoctor   int64  `json:"id_doctor"   validate:"gte=0"`
	IDCentro   int64  `json:"id_centro"   validate:"gte=0"`
}

type daySearchRequest struct {
	Fecha string `json:"fecha" validate:"required"`
}

type appointmentResponse struct {
	IDCita            int64  `json:"id_cita"`
	Fecha             string `json:"fecha"`
	Motivo            string `json:"motivo"`
	Estado            string `json:"estado"`
	IDPaciente        int64  `json:"id_paciente"`
	IDDoctor          int64  `json:"id_doctor"`
	IDCentro          int64  `json:"id_centro"`
	IDUsuarioRegistra int64  `json:"id_usuario_registra"`
}
