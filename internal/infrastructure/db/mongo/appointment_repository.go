package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/clinicbook/booking-system/internal/core/domain"
)

const appointmentsCollection = "appointments"

// AppointmentRepository implements ports.AppointmentRepository backed by the
// appointments collection.
type AppointmentRepository struct {
	coll *mongo.Collection
}

func NewAppointmentRepository(db *mongo.Database) *AppointmentRepository {
	return &AppointmentRepository{coll: db.Collection(appointmentsCollection)}
}

type appointmentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	PatientID string             `bson:"patient_id"`
	DoctorID  string             `bson:"doctor_id"`
	Doctor    doctorSnapshotDoc  `bson:"doctor_info"`
	Patient   patientSnapshotDoc `bson:"patient_info"`
	Date      string             `bson:"date"`
	Time      string             `bson:"time"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

// Snapshots are historical copies captured at booking time, never re-derived
// from the canonical doctor/user documents.
type doctorSnapshotDoc struct {
	FirstName          string  `bson:"first_name"`
	LastName           string  `bson:"last_name"`
	Specialization     string  `bson:"specialization"`
	FeePerConsultation float64 `bson:"fee_per_consultation"`
	Phone              string  `bson:"phone"`
}

type patientSnapshotDoc struct {
	Name  string `bson:"name"`
	Email string `bson:"email"`
	Phone string `bson:"phone,omitempty"`
}

func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toAppointmentDoc(a))
	if err != nil {
		return "", fmt.Errorf("insert appointment: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert appointment: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *AppointmentRepository) FindByID(ctx context.Context, id string) (*domain.Appointment, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAppointmentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc appointmentDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("find appointment: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *AppointmentRepository) FindByDoctorAndDate(ctx context.Context, doctorID, date string) ([]*domain.Appointment, error) {
	return r.findAll(ctx, bson.M{"doctor_id": doctorID, "date": date})
}

func (r *AppointmentRepository) ListByDoctor(ctx context.Context, doctorID string) ([]*domain.Appointment, error) {
	return r.findAll(ctx, bson.M{"doctor_id": doctorID})
}

func (r *AppointmentRepository) ListByPatient(ctx context.Context, patientID string) ([]*domain.Appointment, error) {
	return r.findAll(ctx, bson.M{"patient_id": patientID})
}

func (r *AppointmentRepository) findAll(ctx context.Context, filter bson.M) ([]*domain.Appointment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find appointments: %w", err)
	}
	defer cur.Close(ctx)

	var appointments []*domain.Appointment
	for cur.Next(ctx) {
		var doc appointmentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode appointment: %w", err)
		}
		appointments = append(appointments, doc.toDomain())
	}
	return appointments, cur.Err()
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id string, status domain.AppointmentStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrAppointmentNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("update appointment status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

// EnsureIndexes creates the lookup indexes the availability check and the
// per-doctor/per-patient listings rely on.
func (r *AppointmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "patient_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func toAppointmentDoc(a *domain.Appointment) appointmentDoc {
	return appointmentDoc{
		PatientID: a.PatientID,
		DoctorID:  a.DoctorID,
		Doctor: doctorSnapshotDoc{
			FirstName:          a.Doctor.FirstName,
			LastName:           a.Doctor.LastName,
			Specialization:     a.Doctor.Specialization,
			FeePerConsultation: a.Doctor.FeePerConsultation,
			Phone:              a.Doctor.Phone,
		},
		Patient: patientSnapshotDoc{
			Name:  a.Patient.Name,
			Email: a.Patient.Email,
			Phone: a.Patient.Phone,
		},
		Date:      a.Date,
		Time:      a.Time,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func (d *appointmentDoc) toDomain() *domain.Appointment {
	return &domain.Appointment{
		ID:        d.ID.Hex(),
		PatientID: d.PatientID,
		DoctorID:  d.DoctorID,
		Doctor: domain.DoctorSnapshot{
			FirstName:          d.Doctor.FirstName,
			LastName:           d.Doctor.LastName,
			Specialization:     d.Doctor.Specialization,
			FeePerConsultation: d.Doctor.FeePerConsultation,
			Phone:              d.Doctor.Phone,
		},
		Patient: domain.PatientSnapshot{
			Name:  d.Patient.Name,
			Email: d.Patient.Email,
			Phone: d.Patient.Phone,
		},
		Date:      d.Date,
		Time:      d.Time,
		Status:    domain.AppointmentStatus(d.Status),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
