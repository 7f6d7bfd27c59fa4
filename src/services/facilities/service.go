package facilities

import (
	"context"
	"errors"
	"log"

	"Backend-FacilityWatch-001/src/database"
	"Backend-FacilityWatch-001/src/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var facilityCollection *mongo.Collection

func init() {
	// เชื่อมต่อกับ MongoDB
	if err := database.ConnectMongoDB(); err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	facilityCollection = database.FacilityCollection
	if facilityCollection == nil {
		log.Fatal("Failed to get the facilities collection")
	}
}

// CreateFacility registers a monitored facility.
func CreateFacility(ctx context.Context, facility *models.Facility) (*models.Facility, error) {
	facility.ID = primitive.NewObjectID()
	if _, err := facilityCollection.InsertOne(ctx, facility); err != nil {
		return nil, err
	}
	return facility, nil
}

// GetFacilities retrieves facilities with pagination and name/state search.
func GetFacilities(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse, error) {
	params.Normalize()

	filter := bson.M{}
	if params.Search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": params.Search, "$options": "i"}},
			{"state": bson.M{"$regex": params.Search, "$options": "i"}},
			{"lga": bson.M{"$regex": params.Search, "$options": "i"}},
		}
	}

	total, err := facilityCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(params.Sort())

	cursor, err := facilityCollection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var facilities []models.Facility
	if err := cursor.All(ctx, &facilities); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(facilities, total, params), nil
}

// GetFacilityByID retrieves one facility.
func GetFacilityByID(ctx context.Context, id primitive.ObjectID) (*models.Facility, error) {
	var facility models.Facility
	err := facilityCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&facility)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("facility not found")
		}
		return nil, err
	}
	return &facility, nil
}

// UpdateFacility replaces a facility's editable fields.
func UpdateFacility(ctx context.Context, id primitive.ObjectID, facility *models.Facility) (*models.Facility, error) {
	facility.ID = id
	res, err := facilityCollection.ReplaceOne(ctx, bson.M{"_id": id}, facility)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, errors.New("facility not found")
	}
	return facility, nil
}

// DeleteFacility removes a facility.
func DeleteFacility(ctx context.Context, id primitive.ObjectID) error {
	res, err := facilityCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("facility not found")
	}
	return nil
}
