package seeder

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Backend-FacilityWatch-001/src/models"
	formsvc "Backend-FacilityWatch-001/src/services/forms"
)

func scorePtr(v float64) *float64 { return &v }

// SeedSampleForm creates a demo facility-inspection form for one activity:
// a scored checklist with conditional questions, a computed total and a
// repeatable staff section. Useful for manual testing of the fill UI.
func SeedSampleForm(ctx context.Context, activityID primitive.ObjectID) error {
	def := &models.FormDefinition{
		ActivityID: activityID,
		Pages: []models.FormPage{
			{
				ID:   primitive.NewObjectID().Hex(),
				Name: "Page 1",
				Sections: []models.FormSection{
					{
						ID:   primitive.NewObjectID().Hex(),
						Name: "General Information",
						Questions: []models.Question{
							{
								ID:           primitive.NewObjectID().Hex(),
								FieldName:    "facility_name",
								QuestionText: "Facility name",
								AnswerType:   models.AnswerText,
								Required:     true,
								ColumnSize:   6,
							},
							{
								ID:           primitive.NewObjectID().Hex(),
								FieldName:    "visit_date",
								QuestionText: "Date of visit",
								AnswerType:   models.AnswerDate,
								Required:     true,
								ColumnSize:   6,
							},
							{
								ID:             primitive.NewObjectID().Hex(),
								FieldName:      "bed_count",
								QuestionText:   "Number of beds",
								QuestionHelper: "Total installed beds, occupied or not",
								AnswerType:     models.AnswerNumber,
								Required:       true,
								ColumnSize:     4,
							},
							{
								ID:           primitive.NewObjectID().Hex(),
								FieldName:    "ward_count",
								QuestionText: "Number of wards",
								AnswerType:   models.AnswerNumber,
								ColumnSize:   4,
							},
							{
								ID:           primitive.NewObjectID().Hex(),
								FieldName:    "beds_per_ward",
								QuestionText: "Average beds per ward",
								AnswerType:   models.AnswerComputed,
								ColumnSize:   4,
								Metadata: map[string]any{
									models.MetaComputedFormula: "bed_count / ward_count",
								},
							},
						},
					},
					{
						ID:   primitive.NewObjectID().Hex(),
						Name: "Power Supply",
						Questions: []models.Question{
							{
								ID:           primitive.NewObjectID().Hex(),
								FieldName:    "power_source",
								QuestionText: "Primary power source",
								AnswerType:   models.AnswerRadio,
								Required:     true,
								ColumnSize:   6,
								Options: []models.Option{
									{Label: "National grid", Value: "grid", Score: scorePtr(5)},
									{Label: "Generator", Value: "generator", Score: scorePtr(3)},
									{Label: "Solar", Value: "solar", Score: scorePtr(4)},
									{Label: "None", Value: "none", Score: scorePtr(0)},
								},
							},
							{
								ID:             primitive.NewObjectID().Hex(),
								FieldName:      "generator_fuel_days",
								QuestionText:   "Days of generator fuel in stock",
								QuestionHelper: "Only asked when the facility runs on a generator",
								AnswerType:     models.AnswerNumber,
								ColumnSize:     6,
								Metadata: map[string]any{
									models.MetaShowIf: "power_source == 'generator'",
								},
							},
						},
					},
				},
			},
			{
				ID:   primitive.NewObjectID().Hex(),
				Name: "Page 2",
				Sections: []models.FormSection{
					{
						ID:           primitive.NewObjectID().Hex(),
						Name:         "Staff on Duty",
						IsRepeatable: true,
						GroupName:    "staff_on_duty",
						Questions: []models.Question{
							{
								ID:           primitive.NewObjectID().Hex(),
								FieldName:    "staff_name",
								QuestionText: "Staff name",
								AnswerType:   models.AnswerText,
								Required:     true,
								ColumnSize:   6,
							},
							{
								ID:           primitive.NewObjectID().Hex(),
								FieldName:    "staff_cadre",
								QuestionText: "Cadre",
								AnswerType:   models.AnswerDropdown,
								ColumnSize:   6,
								Options: []models.Option{
									{Label: "Doctor", Value: "doctor"},
									{Label: "Nurse", Value: "nurse"},
									{Label: "Midwife", Value: "midwife"},
									{Label: "CHEW", Value: "chew"},
								},
							},
							{
								ID:           primitive.NewObjectID().Hex(),
								FieldName:    "staff_years",
								QuestionText: "Years of service",
								AnswerType:   models.AnswerNumber,
								ColumnSize:   4,
							},
						},
					},
					{
						ID:   primitive.NewObjectID().Hex(),
						Name: "Observations",
						Questions: []models.Question{
							{
								ID:           primitive.NewObjectID().Hex(),
								FieldName:    "services_offered",
								QuestionText: "Services offered",
								AnswerType:   models.AnswerCheckbox,
								ColumnSize:   12,
								Options: []models.Option{
									{Label: "Outpatient", Value: "opd", Score: scorePtr(1)},
									{Label: "Maternity", Value: "maternity", Score: scorePtr(2)},
									{Label: "Laboratory", Value: "lab", Score: scorePtr(2)},
									{Label: "Surgery", Value: "surgery", Score: scorePtr(3), ShowIf: "bed_count > 10"},
								},
							},
							{
								ID:           primitive.NewObjectID().Hex(),
								FieldName:    "inspection_photo",
								QuestionText: "Photo of the facility entrance",
								AnswerType:   models.AnswerFile,
								ColumnSize:   6,
								Metadata: map[string]any{
									models.MetaAllowedFileTypes: "jpg,jpeg,png",
								},
							},
							{
								ID:           primitive.NewObjectID().Hex(),
								FieldName:    "general_remarks",
								QuestionText: "General remarks",
								AnswerType:   models.AnswerTextarea,
								ColumnSize:   12,
								Metadata: map[string]any{
									models.MetaDisplayReviewersComment: true,
								},
							},
						},
					},
				},
			},
		},
	}

	if _, err := formsvc.SaveFormDefinition(ctx, def); err != nil {
		return err
	}

	log.Println("✅ Seeded sample inspection form for activity", activityID.Hex())
	return nil
}
