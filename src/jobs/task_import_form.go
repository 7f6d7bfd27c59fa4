package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TypeFormImport = "form:import"

type FormImportPayload struct {
	ActivityID string `json:"activity_id"`
	Workbook   []byte `json:"workbook"`
}

func NewFormImportTask(activityID string, workbook []byte) (*asynq.Task, error) {
	payload, err := json.Marshal(FormImportPayload{ActivityID: activityID, Workbook: workbook})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeFormImport, payload), nil
}
