package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/clinicbook/booking-system/internal/core/domain"
)

const usersCollection = "users"

// UserRepository implements ports.UserRepository backed by the users collection.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	IsAdmin      bool               `bson:"is_admin"`
	IsDoctor     bool               `bson:"is_doctor"`
	Unseen       []notificationDoc  `bson:"unseen_notifications"`
	Seen         []notificationDoc  `bson:"seen_notifications"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

type notificationDoc struct {
	ID          string    `bson:"id"`
	Type        string    `bson:"type"`
	Message     string    `bson:"message"`
	OnClickPath string    `bson:"on_click_path"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := userDoc{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		IsAdmin:      user.IsAdmin,
		IsDoctor:     user.IsDoctor,
		Unseen:       toNotificationDocs(user.UnseenNotifications),
		Seen:         toNotificationDocs(user.SeenNotifications),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", domain.ErrEmailTaken
		}
		return "", fmt.Errorf("insert user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert user: unexpected id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) FindAdmins(ctx context.Context) ([]*domain.User, error) {
	return r.findAll(ctx, bson.M{"is_admin": true})
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	return r.findAll(ctx, bson.M{})
}

func (r *UserRepository) findAll(ctx context.Context, filter bson.M) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*domain.User
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toDomain())
	}
	return users, cur.Err()
}

func (r *UserRepository) SetDoctorFlag(ctx context.Context, id string, isDoctor bool) error {
	return r.updateByID(ctx, id, bson.M{
		"$set": bson.M{"is_doctor": isDoctor, "updated_at": time.Now().UTC()},
	})
}

func (r *UserRepository) PushNotification(ctx context.Context, id string, n domain.Notification) error {
	return r.updateByID(ctx, id, bson.M{
		"$push": bson.M{"unseen_notifications": toNotificationDoc(n)},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *UserRepository) SetNotifications(ctx context.Context, id string, seen, unseen []domain.Notification) error {
	return r.updateByID(ctx, id, bson.M{
		"$set": bson.M{
			"seen_notifications":   toNotificationDocs(seen),
			"unseen_notifications": toNotificationDocs(unseen),
			"updated_at":           time.Now().UTC(),
		},
	})
}

func (r *UserRepository) updateByID(ctx context.Context, id string, update bson.M) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email index on the users collection.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (d *userDoc) toDomain() *domain.User {
	return &domain.User{
		ID:                  d.ID.Hex(),
		Name:                d.Name,
		Email:               d.Email,
		PasswordHash:        d.PasswordHash,
		IsAdmin:             d.IsAdmin,
		IsDoctor:            d.IsDoctor,
		UnseenNotifications: toDomainNotifications(d.Unseen),
		SeenNotifications:   toDomainNotifications(d.Seen),
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

func toNotificationDoc(n domain.Notification) notificationDoc {
	return notificationDoc{
		ID:          n.ID,
		Type:        n.Type,
		Message:     n.Message,
		OnClickPath: n.OnClickPath,
		CreatedAt:   n.CreatedAt,
	}
}

func toNotificationDocs(ns []domain.Notification) []notificationDoc {
	docs := make([]notificationDoc, len(ns))
	for i, n := range ns {
		docs[i] = toNotificationDoc(n)
	}
	return docs
}

func toDomainNotifications(docs []notificationDoc) []domain.Notification {
	if len(docs) == 0 {
		return nil
	}
	ns := make([]domain.Notification, len(docs))
	for i, d := range docs {
		ns[i] = domain.Notification{
			ID:          d.ID,
			Type:        d.Type,
			Message:     d.Message,
			OnClickPath: d.OnClickPath,
			CreatedAt:   d.CreatedAt,
		}
	}
	return ns
}
