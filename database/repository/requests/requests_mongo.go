package requestsRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bizhub/database"
	"bizhub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRequestRepo implements RequestRepository using MongoDB.
type MongoRequestRepo struct {
	coll *mongo.Collection
}

func NewMongoRequestRepo() RequestRepository {
	repo := &MongoRequestRepo{coll: database.Database().Collection("service_requests")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create service request indexes: %v\n", err)
	}
	return repo
}

func (r *MongoRequestRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "dateTimes", Value: 1}}},
	})
	return err
}

func (r *MongoRequestRepo) Create(ctx context.Context, req *models.ServiceRequest) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to insert service request: %w", err)
	}
	return nil
}

func (r *MongoRequestRepo) GetByID(ctx context.Context, businessID, id string) (*models.ServiceRequest, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var req models.ServiceRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id, "businessId": businessID}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to fetch service request %s: %w", id, err)
	}
	return &req, nil
}

func (r *MongoRequestRepo) CountSince(ctx context.Context, businessID string, since time.Time) (int, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"businessId": businessID,
		"createdAt":  bson.M{"$gte": since},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count service requests: %w", err)
	}
	return int(n), nil
}

func (r *MongoRequestRepo) ListBooked(ctx context.Context, businessID string, from, to time.Time) ([]models.ServiceRequest, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"businessId": businessID,
		"status":     bson.M{"$in": []string{models.RequestStatusPending, models.RequestStatusAccepted}},
		"dateTimes":  bson.M{"$elemMatch": bson.M{"$gte": from, "$lt": to}},
	}
	opts := options.Find().SetProjection(bson.M{"id": 1, "businessId": 1, "dateTimes": 1, "duration": 1, "status": 1})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list booked requests: %w", err)
	}
	defer cursor.Close(ctx)

	booked := []models.ServiceRequest{}
	if err := cursor.All(ctx, &booked); err != nil {
		return nil, fmt.Errorf("failed to decode booked requests: %w", err)
	}
	return booked, nil
}
