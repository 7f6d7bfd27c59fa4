package activities

import (
	"context"
	"errors"
	"log"
	"time"

	"Backend-FacilityWatch-001/src/database"
	"Backend-FacilityWatch-001/src/models"
	formsvc "Backend-FacilityWatch-001/src/services/forms"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var activityCollection *mongo.Collection

func init() {
	// เชื่อมต่อกับ MongoDB
	if err := database.ConnectMongoDB(); err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	activityCollection = database.ActivityCollection
	if activityCollection == nil {
		log.Fatal("Failed to get the activities collection")
	}
}

// CreateActivity creates a new data-collection activity (Draft by default).
func CreateActivity(ctx context.Context, activity *models.Activity) (*models.Activity, error) {
	now := time.Now()
	activity.ID = primitive.NewObjectID()
	if activity.Status == "" {
		activity.Status = "Draft"
	}
	if activity.DataCollectionLevel == "" {
		activity.DataCollectionLevel = "Facility"
	}
	activity.CreatedAt = now
	activity.UpdatedAt = now

	if _, err := activityCollection.InsertOne(ctx, activity); err != nil {
		return nil, err
	}
	return activity, nil
}

// GetActivities retrieves activities with pagination and title search.
func GetActivities(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse, error) {
	params.Normalize()

	filter := bson.M{}
	if params.Search != "" {
		filter["title"] = bson.M{"$regex": params.Search, "$options": "i"}
	}

	total, err := activityCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(params.Sort())

	cursor, err := activityCollection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(activities, total, params), nil
}

// GetActivityByID retrieves one activity.
func GetActivityByID(ctx context.Context, id primitive.ObjectID) (*models.Activity, error) {
	var activity models.Activity
	err := activityCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&activity)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("activity not found")
		}
		return nil, err
	}
	return &activity, nil
}

// UpdateActivity updates title/description/category/status fields.
func UpdateActivity(ctx context.Context, id primitive.ObjectID, activity *models.Activity) (*models.Activity, error) {
	update := bson.M{"$set": bson.M{
		"title":               activity.Title,
		"description":         activity.Description,
		"category":            activity.Category,
		"dataCollectionLevel": activity.DataCollectionLevel,
		"status":              activity.Status,
		"updatedAt":           time.Now(),
	}}

	res, err := activityCollection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, errors.New("activity not found")
	}
	return GetActivityByID(ctx, id)
}

// DeleteActivity removes an activity and its form definition.
func DeleteActivity(ctx context.Context, id primitive.ObjectID) error {
	res, err := activityCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("activity not found")
	}
	return formsvc.DeleteFormDefinition(ctx, id)
}
