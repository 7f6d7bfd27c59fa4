package reports

import (
	"context"
	"errors"
	"log"
	"time"

	"Backend-FacilityWatch-001/src/database"
	formcore "Backend-FacilityWatch-001/src/forms"
	"Backend-FacilityWatch-001/src/models"
	formsvc "Backend-FacilityWatch-001/src/services/forms"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var reportCollection *mongo.Collection

func init() {
	// เชื่อมต่อกับ MongoDB
	if err := database.ConnectMongoDB(); err != nil {
		log.Fatal("MongoDB connection error:", err)
	}

	reportCollection = database.ReportCollection
	if reportCollection == nil {
		log.Fatal("Failed to get the reports collection")
	}
}

// SubmitReport stores an answer set for an activity. The definition is
// evaluated server-side so the stored report carries the section scores and
// total at submission time; this core never writes into the answer values.
func SubmitReport(ctx context.Context, report *models.ActivityReport) (*models.ActivityReport, error) {
	if report.ActivityID.IsZero() {
		return nil, errors.New("activity ID is required")
	}

	def, err := formsvc.GetFormDefinition(ctx, report.ActivityID)
	if err != nil {
		return nil, err
	}
	if def == nil {
		return nil, errors.New("activity has no form definition")
	}

	// required-field check runs only over visible questions: answers hidden
	// by showIf are not demanded from the collector
	rendered := formcore.Evaluate(def, report.Answers)
	var missing []string
	def.EachQuestion(func(_ *models.FormPage, s *models.FormSection, q *models.Question) {
		if s.IsRepeatable || !q.Required {
			return
		}
		state, ok := rendered.Questions[q.ID]
		if ok && state.Visible && !formcore.Answered(state.Value) {
			missing = append(missing, q.QuestionText)
		}
	})
	if len(missing) > 0 {
		return nil, &ErrMissingAnswers{Questions: missing}
	}

	report.ID = primitive.NewObjectID()
	report.Score = rendered.TotalScore
	report.SectionScores = rendered.SectionScores
	if report.Status == "" {
		report.Status = "Pending"
	}
	report.SubmissionDate = time.Now()

	if _, err := reportCollection.InsertOne(ctx, report); err != nil {
		return nil, err
	}

	log.Printf("[reports] inserted id=%s activity=%s score=%.2f",
		report.ID.Hex(), report.ActivityID.Hex(), report.Score)
	return report, nil
}

// ErrMissingAnswers lists required visible questions with no answer.
type ErrMissingAnswers struct {
	Questions []string
}

func (e *ErrMissingAnswers) Error() string { return "required questions are unanswered" }

// GetReportByID retrieves a report by its ID.
func GetReportByID(ctx context.Context, id primitive.ObjectID) (*models.ActivityReport, error) {
	var report models.ActivityReport
	err := reportCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("report not found")
		}
		return nil, err
	}
	return &report, nil
}

// GetReportsByActivity retrieves reports for an activity, newest first.
func GetReportsByActivity(ctx context.Context, activityID primitive.ObjectID, params models.PaginationParams) (*models.PaginatedResponse, error) {
	params.Normalize()

	filter := bson.M{"activityId": activityID}

	total, err := reportCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	findOpts := options.Find().
		SetSkip(params.GetSkip()).
		SetLimit(int64(params.Limit)).
		SetSort(bson.D{{Key: "submissionDate", Value: -1}})

	cursor, err := reportCollection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reports []models.ActivityReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, err
	}

	return models.NewPaginatedResponse(reports, total, params), nil
}

// GetAnswers returns the raw answer set for one report; read-only input for
// re-rendering a submitted form.
func GetAnswers(ctx context.Context, reportID primitive.ObjectID) (*models.AnswerSet, error) {
	report, err := GetReportByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	return &report.Answers, nil
}
