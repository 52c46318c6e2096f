package domain

import "time"

// DoctorStatus represents the lifecycle state of a doctor application.
type DoctorStatus string

const (
	DoctorPending  DoctorStatus = "pending"
	DoctorApproved DoctorStatus = "approved"
	DoctorRejected DoctorStatus = "rejected"
)

// doctorTransitions defines the allowed application state machine.
// Approved and rejected are terminal; re-application is not modeled.
var doctorTransitions = map[DoctorStatus][]DoctorStatus{
	DoctorPending: {DoctorApproved, DoctorRejected},
}

// CanTransitionTo reports whether a transition from the current status to next is valid.
func (s DoctorStatus) CanTransitionTo(next DoctorStatus) bool {
	for _, allowed := range doctorTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Timings is the doctor's daily consultation window as opaque "HH:mm" bounds.
type Timings struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Doctor is a practitioner profile. UserID is a weak reference to the owning
// User account; integrity between the two is advisory, not enforced at write
// time.
type Doctor struct {
	ID                 string       `json:"id"`
	UserID             string       `json:"user_id"`
	FirstName          string       `json:"first_name"`
	LastName           string       `json:"last_name"`
	Phone              string       `json:"phone"`
	Email              string       `json:"email"`
	Website            string       `json:"website,omitempty"`
	Address            string       `json:"address"`
	Specialization     string       `json:"specialization"`
	Experience         string       `json:"experience"`
	FeePerConsultation float64      `json:"fee_per_consultation"`
	Status             DoctorStatus `json:"status"`
	Timings            Timings      `json:"timings"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// FullName joins the first and last name for display and notifications.
func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}
