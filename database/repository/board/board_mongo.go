package boardRepo

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

// MongoBoardRepo implements BoardRepository using MongoDB.
type MongoBoardRepo struct {
	coll *mongo.Collection
}

func NewMongoBoardRepo() BoardRepository {
	repo := &MongoBoardRepo{coll: database.Database().Collection("board_actions")}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create board action indexes: %v\n", err)
	}
	return repo
}

func (r *MongoBoardRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "businessId", Value: 1}, {Key: "boardRef", Value: 1}, {Key: "actionType", Value: 1}}},
	})
	return err
}

func (r *MongoBoardRepo) Create(ctx context.Context, action *models.BoardAction) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, action); err != nil {
		return fmt.Errorf("failed to insert board action: %w", err)
	}
	return nil
}

func (r *MongoBoardRepo) GetByID(ctx context.Context, id string) (*models.BoardAction, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var action models.BoardAction
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&action); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrActionNotFound
		}
		return nil, fmt.Errorf("failed to fetch board action %s: %w", id, err)
	}
	return &action, nil
}

func (r *MongoBoardRepo) Update(ctx context.Context, action *models.BoardAction) error {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	action.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": action.ID}, action)
	if err != nil {
		return fmt.Errorf("failed to update board action %s: %w", action.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrActionNotFound
	}
	return nil
}

func (r *MongoBoardRepo) CountByType(ctx context.Context, businessID, boardRef, actionType string) (int, error) {
	ctx, cancel := database.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{
		"businessId": businessID,
		"boardRef":   boardRef,
		"actionType": actionType,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count board actions: %w", err)
	}
	return int(n), nil
}

func (r *MongoBoardRepo) ListByBoard(ctx context.Context, businessID, boardRef string) ([]models.BoardAction, error) {
	ctx, cancel := database.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"businessId": businessID, "boardRef": boardRef}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list board actions: %w", err)
	}
	defer cursor.Close(ctx)

	actions := []models.BoardAction{}
	if err := cursor.All(ctx, &actions); err != nil {
		return nil, fmt.Errorf("failed to decode board actions: %w", err)
	}
	return actions, nil
}
