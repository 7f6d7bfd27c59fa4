package users

import (
	"context"
	"errors"
	"log"
	"time"

	"Backend-FacilityWatch-001/src/database"
	"Backend-FacilityWatch-001/src/models"
	"Backend-FacilityWatch-001/src/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

var userCollection *mongo.Collection

func init() {
	// เชื่อมต่อกับ MongoDB
	if err := database.ConnectMongoDB(); err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	userCollection = database.UserCollection
	if userCollection == nil {
		log.Fatal("Failed to get the users collection")
	}
}

// CreateUser hashes the password and stores a new user. Emails are unique.
func CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	count, err := userCollection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hash),
		Role:      req.Role,
		CreatedAt: time.Now(),
	}

	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetUsers retrieves users with pagination.
func GetUsers(ctx context.Context, params models.PaginationParams) (*models.PaginatedResponse, error) {
	params.Normalize()

	filter := bson.M{}
	if params.Search != "" {
		filter["$or"] = []bson.M{
			{"name": bson.M{"$regex": params.Search, "$options": "i"}},
			{"email": bson.M{"$regex": params.Search, "$options": "i"}},
		}
	}

	total, err := userCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(params.Sort())

	cursor, err := userCollection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []models.User
	if err := cursor.All(ctx, &out); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(out, total, params), nil
}

// GetUserByID retrieves one user.
func GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// Login checks credentials and issues a JWT with the user's role claim.
func Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("invalid email or password")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errors.New("invalid email or password")
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return &models.LoginResponse{Token: token, User: user}, nil
}
