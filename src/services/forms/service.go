package forms

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"Backend-FacilityWatch-001/src/database"
	formcore "Backend-FacilityWatch-001/src/forms"
	"Backend-FacilityWatch-001/src/models"
	"Backend-FacilityWatch-001/src/utils"

	"github.com/xuri/excelize/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var formDefinitionCollection *mongo.Collection

const cacheTTL = 10 * time.Minute

func init() {
	// เชื่อมต่อกับ MongoDB
	if err := database.ConnectMongoDB(); err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	formDefinitionCollection = database.FormDefinitionCollection
	if formDefinitionCollection == nil {
		log.Fatal("Failed to get the formDefinitions collection")
	}
}

// ErrValidation is returned by Save when the definition fails the save gate.
// The ValidationResult carries the per-question errors for the response.
type ErrValidation struct {
	Result models.ValidationResult
}

func (e *ErrValidation) Error() string { return "form definition failed validation" }

func cacheKey(activityID primitive.ObjectID) string {
	return fmt.Sprintf("formdef:%s", activityID.Hex())
}

// SaveFormDefinition validates the definition and replaces the stored tree
// for its activity wholesale. The in-memory tree is never persisted partially:
// on validation failure nothing is written and the caller keeps its draft.
func SaveFormDefinition(ctx context.Context, def *models.FormDefinition) (*models.ValidationResult, error) {
	result := formcore.ValidateForm(def)
	if !result.Valid {
		return &result, &ErrValidation{Result: result}
	}

	if def.ID.IsZero() {
		def.ID = primitive.NewObjectID()
	}

	filter := bson.M{"activityId": def.ActivityID}
	opts := options.Replace().SetUpsert(true)
	if _, err := formDefinitionCollection.ReplaceOne(ctx, filter, def, opts); err != nil {
		return nil, err
	}

	if err := utils.InvalidateCache(cacheKey(def.ActivityID)); err != nil {
		log.Println("[forms] cache invalidation failed:", err)
	}

	log.Printf("[forms] saved definition activity=%s pages=%d", def.ActivityID.Hex(), len(def.Pages))
	return &result, nil
}

// GetFormDefinition loads the definition for an activity, read-through
// cached. Returns (nil, nil) when the activity has no saved form yet.
func GetFormDefinition(ctx context.Context, activityID primitive.ObjectID) (*models.FormDefinition, error) {
	var cached models.FormDefinition
	if hit, err := utils.GetCachedJSON(cacheKey(activityID), &cached); err != nil {
		log.Println("[forms] cache read failed:", err)
	} else if hit {
		return &cached, nil
	}

	var def models.FormDefinition
	err := formDefinitionCollection.FindOne(ctx, bson.M{"activityId": activityID}).Decode(&def)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	if err := utils.CacheJSON(cacheKey(activityID), &def, cacheTTL); err != nil {
		log.Println("[forms] cache write failed:", err)
	}
	return &def, nil
}

// DeleteFormDefinition removes the stored definition for an activity.
func DeleteFormDefinition(ctx context.Context, activityID primitive.ObjectID) error {
	if _, err := formDefinitionCollection.DeleteOne(ctx, bson.M{"activityId": activityID}); err != nil {
		return err
	}
	return utils.InvalidateCache(cacheKey(activityID))
}

// Preview evaluates the saved definition against a posted answer set and
// returns the live render contract.
func Preview(ctx context.Context, activityID primitive.ObjectID, answers models.AnswerSet) (*formcore.RenderResult, error) {
	def, err := GetFormDefinition(ctx, activityID)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, errors.New("activity has no form definition")
	}
	result := formcore.Evaluate(def, answers)
	return &result, nil
}

// ImportWorkbook parses a two-sheet xlsx workbook (primary question sheet
// plus an optional "options" sheet), merges the resulting fragment into the
// activity's definition and saves it through the same validation gate as a
// manual save.
func ImportWorkbook(ctx context.Context, activityID primitive.ObjectID, workbook []byte) (*models.ValidationResult, int, error) {
	f, err := excelize.OpenReader(bytes.NewReader(workbook))
	if err != nil {
		return nil, 0, fmt.Errorf("cannot read workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, errors.New("workbook has no sheets")
	}

	primary, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, 0, fmt.Errorf("cannot read sheet %q: %w", sheets[0], err)
	}

	var optionRows [][]string
	for _, name := range sheets[1:] {
		if name == "options" {
			optionRows, err = f.GetRows(name)
			if err != nil {
				return nil, 0, fmt.Errorf("cannot read options sheet: %w", err)
			}
			break
		}
	}

	rows := formcore.ParseSheet(primary)
	if len(rows) == 0 {
		return nil, 0, errors.New("no valid questions found in file")
	}
	fragment := formcore.BuildFragment(rows, formcore.ParseOptionsSheet(optionRows))

	def, err := GetFormDefinition(ctx, activityID)
	if err != nil {
		return nil, 0, err
	}
	if def == nil {
		def = formcore.NewDefinition(activityID)
	}

	draft := formcore.Clone(def)
	formcore.Merge(draft, fragment)

	result, err := SaveFormDefinition(ctx, draft)
	if err != nil {
		return result, len(rows), err
	}
	return result, len(rows), nil
}
