package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/muje-team/muje-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrStoryNotFound is returned when a story id does not resolve to a document.
var ErrStoryNotFound = fmt.Errorf("story not found")

// StoryRepository defines the interface for story data operations.
type StoryRepository interface {
	CreateStory(ctx context.Context, story *models.Story) error
	GetStoryByID(ctx context.Context, id string) (*models.Story, error)
	GetAllStories(ctx context.Context) ([]models.Story, error)
	GetStoriesByOwnerID(ctx context.Context, ownerID uint) ([]models.Story, error)
	UpdateStoryContent(ctx context.Context, id string, content string, categories []string) error
	DeleteStory(ctx context.Context, id string) error
	AddEmpathy(ctx context.Context, storyID string, viewerID uint) (bool, error)
	RemoveEmpathy(ctx context.Context, storyID string, viewerID uint) (bool, error)
	AppendSticker(ctx context.Context, storyID string, receipt models.StickerReceipt) (bool, error)
}

// MongoStoryRepository implements StoryRepository for MongoDB.
type MongoStoryRepository struct {
	collection *mongo.Collection
}

// NewMongoStoryRepository creates a new MongoStoryRepository.
func NewMongoStoryRepository(db *mongo.Database) *MongoStoryRepository {
	return &MongoStoryRepository{collection: db.Collection("stories")}
}

// CreateStory creates a new story in MongoDB.
func (r *MongoStoryRepository) CreateStory(ctx context.Context, story *models.Story) error {
	story.ID = primitive.NewObjectID()
	story.CreatedAt = time.Now()
	story.UpdatedAt = story.CreatedAt
	_, err := r.collection.InsertOne(ctx, story)
	return err
}

// GetStoryByID retrieves a story by ID from MongoDB.
func (r *MongoStoryRepository) GetStoryByID(ctx context.Context, id string) (*models.Story, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrStoryNotFound
	}

	var story models.Story
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&story)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrStoryNotFound
		}
		return nil, err
	}
	return &story, nil
}

// GetAllStories retrieves the full story collection ordered newest-first.
// Feeds are recomputed from the full set on every read; there is no
// incremental diffing.
func (r *MongoStoryRepository) GetAllStories(ctx context.Context) ([]models.Story, error) {
	var stories []models.Story
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// GetStoriesByOwnerID retrieves all stories owned by a user, newest first.
func (r *MongoStoryRepository) GetStoriesByOwnerID(ctx context.Context, ownerID uint) ([]models.Story, error) {
	var stories []models.Story
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"owner_id": ownerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// UpdateStoryContent updates the content and categories of a story.
func (r *MongoStoryRepository) UpdateStoryContent(ctx context.Context, id string, content string, categories []string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrStoryNotFound
	}

	update := bson.M{
		"$set": bson.M{
			"content":    content,
			"categories": categories,
			"updated_at": time.Now(),
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrStoryNotFound
	}
	return nil
}

// DeleteStory deletes a story by ID from MongoDB.
func (r *MongoStoryRepository) DeleteStory(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrStoryNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrStoryNotFound
	}
	return nil
}

// AddEmpathy inserts the viewer into the empathizer set and increments the
// counter in one guarded update. Returns false when the viewer was already
// in the set, so a racing double-tap settles without double-counting.
func (r *MongoStoryRepository) AddEmpathy(ctx context.Context, storyID string, viewerID uint) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(storyID)
	if err != nil {
		return false, ErrStoryNotFound
	}

	filter := bson.M{"_id": objID, "empathized_by": bson.M{"$ne": viewerID}}
	update := bson.M{
		"$addToSet": bson.M{"empathized_by": viewerID},
		"$inc":      bson.M{"empathy_count": 1},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// RemoveEmpathy removes the viewer from the empathizer set and decrements
// the counter. The filter keeps the counter from ever dropping below the
// set size. Returns false when the viewer was not in the set.
func (r *MongoStoryRepository) RemoveEmpathy(ctx context.Context, storyID string, viewerID uint) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(storyID)
	if err != nil {
		return false, ErrStoryNotFound
	}

	filter := bson.M{"_id": objID, "empathized_by": viewerID}
	update := bson.M{
		"$pull": bson.M{"empathized_by": viewerID},
		"$inc":  bson.M{"empathy_count": -1},
	}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// AppendSticker appends a receipt unless the sender already has one on the
// story. Returns false on a duplicate, which enforces the one-receipt-per-
// (story, sender) invariant even under racing requests.
func (r *MongoStoryRepository) AppendSticker(ctx context.Context, storyID string, receipt models.StickerReceipt) (bool, error) {
	objID, err := primitive.ObjectIDFromHex(storyID)
	if err != nil {
		return false, ErrStoryNotFound
	}

	filter := bson.M{"_id": objID, "stickers.sender_id": bson.M{"$ne": receipt.SenderID}}
	update := bson.M{"$push": bson.M{"stickers": receipt}}
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
