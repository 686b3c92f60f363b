package appointment

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"queencare-storefront/internal/domain"
)

// UnknownDoctor is shown in the confirmation when the doctor id is not in
// the catalog.
const UnknownDoctor = "غير محدد"

type doctorLookup interface {
	Doctor(id int) (domain.Doctor, bool)
}

type submitter interface {
	CreateAppointment(ctx context.Context, appt domain.Appointment) error
}

// Input mirrors the booking form.
type Input struct {
	DoctorID      int
	Date          string
	Time          string
	PaymentMethod domain.PaymentMethod
	Notes         string
}

// Confirmation is what the visitor sees once the backend accepts a booking.
type Confirmation struct {
	DoctorName  string `json:"doctorName"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	PaymentName string `json:"paymentName"`
}

// Lines renders the confirmation body.
func (c Confirmation) Lines() []string {
	return []string{
		"✅ تم حجز الموعد بنجاح!",
		"📋 تفاصيل الموعد:",
		"👩‍⚕️ الطبيب: " + c.DoctorName,
		"📅 التاريخ: " + c.Date,
		"🕐 الوقت: " + c.Time,
		"💳 طريقة الدفع: " + c.PaymentName,
		"📞 سيتم التواصل معك قريباً لتأكيد الموعد",
	}
}

type Service struct {
	doctors doctorLookup
	backend submitter
	logger  *log.Logger
}

func New(doctors doctorLookup, backend submitter, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{doctors: doctors, backend: backend, logger: logger}
}

// DateTime joins the form's date and time into the backend's
// minute-precision timestamp.
func DateTime(date, clock string) string {
	return fmt.Sprintf("%sT%s:00", strings.TrimSpace(date), strings.TrimSpace(clock))
}

// Book submits the appointment for a signed-in user. Nothing is sent
// without a user or with an empty required field.
func (s *Service) Book(ctx context.Context, user *domain.User, in Input) (*Confirmation, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if in.DoctorID <= 0 || strings.TrimSpace(in.Date) == "" || strings.TrimSpace(in.Time) == "" ||
		strings.TrimSpace(string(in.PaymentMethod)) == "" {
		return nil, domain.ErrMissingSelection
	}

	appt := domain.Appointment{
		DoctorID:      in.DoctorID,
		DateTime:      DateTime(in.Date, in.Time),
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
	}
	if err := s.backend.CreateAppointment(ctx, appt); err != nil {
		s.logger.Printf("appointment: book doctor=%d at=%s error=%v", appt.DoctorID, appt.DateTime, err)
		return nil, err
	}

	name := UnknownDoctor
	if doc, ok := s.doctors.Doctor(in.DoctorID); ok {
		name = doc.Name
	}
	s.logger.Printf("appointment: booked doctor=%d at=%s", appt.DoctorID, appt.DateTime)
	return &Confirmation{
		DoctorName:  name,
		Date:        strings.TrimSpace(in.Date),
		Time:        strings.TrimSpace(in.Time),
		PaymentName: in.PaymentMethod.DisplayName(),
	}, nil
}
