package domain

import "time"

// AppointmentStatus represents the lifecycle state of a booking.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentApproved  AppointmentStatus = "approved"
	AppointmentRejected  AppointmentStatus = "rejected"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// appointmentTransitions defines the allowed state machine transitions.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentPending:  {AppointmentApproved, AppointmentRejected, AppointmentCancelled},
	AppointmentApproved: {AppointmentCompleted, AppointmentCancelled},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// DoctorSnapshot is the denormalized doctor info embedded on an appointment
// at booking time. It is a historical copy and is not kept in sync with the
// canonical Doctor record; join on DoctorID for live data.
type DoctorSnapshot struct {
	FirstName          string  `json:"first_name"`
	LastName           string  `json:"last_name"`
	Specialization     string  `json:"specialization"`
	FeePerConsultation float64 `json:"fee_per_consultation"`
	Phone              string  `json:"phone"`
}

// PatientSnapshot is the denormalized patient info embedded at booking time.
type PatientSnapshot struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Appointment links a patient to a doctor for a date and time slot.
// Date is "DD-MM-YY" and Time is 24-hour "HH:mm"; both are stored as opaque
// strings and only interpreted transiently by the availability check.
type Appointment struct {
	ID        string            `json:"id"`
	PatientID string            `json:"patient_id"`
	DoctorID  string            `json:"doctor_id"`
	Doctor    DoctorSnapshot    `json:"doctor_info"`
	Patient   PatientSnapshot   `json:"patient_info"`
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Status    AppointmentStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
