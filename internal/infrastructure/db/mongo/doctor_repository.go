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

const doctorsCollection = "doctors"

// DoctorRepository implements ports.DoctorRepository backed by the doctors collection.
type DoctorRepository struct {
	coll *mongo.Collection
}

func NewDoctorRepository(db *mongo.Database) *DoctorRepository {
	return &DoctorRepository{coll: db.Collection(doctorsCollection)}
}

type doctorDoc struct {
	ID                 primitive.ObjectID `bson:"_id,omitempty"`
	UserID             string             `bson:"user_id"`
	FirstName          string             `bson:"first_name"`
	LastName           string             `bson:"last_name"`
	Phone              string             `bson:"phone"`
	Email              string             `bson:"email"`
	Website            string             `bson:"website,omitempty"`
	Address            string             `bson:"address"`
	Specialization     string             `bson:"specialization"`
	Experience         string             `bson:"experience"`
	FeePerConsultation float64            `bson:"fee_per_consultation"`
	Status             string             `bson:"status"`
	TimingsStart       string             `bson:"timings_start"`
	TimingsEnd         string             `bson:"timings_end"`
	CreatedAt          time.Time          `bson:"created_at"`
	UpdatedAt          time.Time          `bson:"updated_at"`
}

func (r *DoctorRepository) Create(ctx context.Context, doctor *domain.Doctor) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.InsertOne(ctx, toDoctorDoc(doctor))
	if err != nil {
		return "", fmt.Errorf("insert doctor: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert doctor: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *DoctorRepository) FindByID(ctx context.Context, id string) (*domain.Doctor, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrDoctorNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *DoctorRepository) FindByUserID(ctx context.Context, userID string) (*domain.Doctor, error) {
	return r.findOne(ctx, bson.M{"user_id": userID})
}

func (r *DoctorRepository) findOne(ctx context.Context, filter bson.M) (*domain.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc doctorDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDoctorNotFound
		}
		return nil, fmt.Errorf("find doctor: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *DoctorRepository) List(ctx context.Context, status domain.DoctorStatus) ([]*domain.Doctor, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = string(status)
	}

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list doctors: %w", err)
	}
	defer cur.Close(ctx)

	var doctors []*domain.Doctor
	for cur.Next(ctx) {
		var doc doctorDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode doctor: %w", err)
		}
		doctors = append(doctors, doc.toDomain())
	}
	return doctors, cur.Err()
}

func (r *DoctorRepository) UpdateStatus(ctx context.Context, id string, status domain.DoctorStatus) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrDoctorNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{"status": string(status), "updated_at": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("update doctor status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDoctorNotFound
	}
	return nil
}

func (r *DoctorRepository) UpdateProfile(ctx context.Context, doctor *domain.Doctor) error {
	oid, err := primitive.ObjectIDFromHex(doctor.ID)
	if err != nil {
		return domain.ErrDoctorNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{
		"$set": bson.M{
			"first_name":           doctor.FirstName,
			"last_name":            doctor.LastName,
			"phone":                doctor.Phone,
			"email":                doctor.Email,
			"website":              doctor.Website,
			"address":              doctor.Address,
			"specialization":       doctor.Specialization,
			"experience":           doctor.Experience,
			"fee_per_consultation": doctor.FeePerConsultation,
			"timings_start":        doctor.Timings.Start,
			"timings_end":          doctor.Timings.End,
			"updated_at":           doctor.UpdatedAt,
		},
	})
	if err != nil {
		return fmt.Errorf("update doctor profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrDoctorNotFound
	}
	return nil
}

// EnsureIndexes creates the owner and status lookup indexes.
func (r *DoctorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func toDoctorDoc(d *domain.Doctor) doctorDoc {
	return doctorDoc{
		UserID:             d.UserID,
		FirstName:          d.FirstName,
		LastName:           d.LastName,
		Phone:              d.Phone,
		Email:              d.Email,
		Website:            d.Website,
		Address:            d.Address,
		Specialization:     d.Specialization,
		Experience:         d.Experience,
		FeePerConsultation: d.FeePerConsultation,
		Status:             string(d.Status),
		TimingsStart:       d.Timings.Start,
		TimingsEnd:         d.Timings.End,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

func (d *doctorDoc) toDomain() *domain.Doctor {
	return &domain.Doctor{
		ID:                 d.ID.Hex(),
		UserID:             d.UserID,
		FirstName:          d.FirstName,
		LastName:           d.LastName,
		Phone:              d.Phone,
		Email:              d.Email,
		Website:            d.Website,
		Address:            d.Address,
		Specialization:     d.Specialization,
		Experience:         d.Experience,
		FeePerConsultation: d.FeePerConsultation,
		Status:             domain.DoctorStatus(d.Status),
		Timings:            domain.Timings{Start: d.TimingsStart, End: d.TimingsEnd},
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}
