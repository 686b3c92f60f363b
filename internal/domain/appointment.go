package domain

// Appointment is the booking payload submitted to the backend.
type Appointment struct {
	DoctorID      int           `json:"doctor_id"`
	DateTime      string        `json:"appointment_datetime"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Notes         string        `json:"notes"`
}
