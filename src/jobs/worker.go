package jobs

import (
	"context"
	"encoding/json"
	"log"

	"Backend-FacilityWatch-001/src/database"
	formsvc "Backend-FacilityWatch-001/src/services/forms"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HandleFormImportTask imports a bulk-upload workbook in the background.
// Validation failures are final (retrying the same workbook cannot succeed),
// so the task is completed with a log entry instead of being retried.
func HandleFormImportTask(ctx context.Context, t *asynq.Task) error {
	log.Println("🎯 Start form import task")

	var payload FormImportPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Println("❌ Payload decode error:", err)
		return err
	}

	activityID, err := primitive.ObjectIDFromHex(payload.ActivityID)
	if err != nil {
		log.Println("❌ Bad activity id in payload:", err)
		return err
	}

	result, count, err := formsvc.ImportWorkbook(ctx, activityID, payload.Workbook)
	if err != nil {
		if result != nil && !result.Valid {
			log.Printf("⚠️ Import for activity %s rejected by validation: %v", payload.ActivityID, result.Alerts)
			return nil
		}
		log.Println("❌ Import failed:", err)
		return err
	}

	log.Printf("✅ Imported %d questions into activity %s", count, payload.ActivityID)
	return nil
}

// StartWorker runs the asynq worker loop. Skipped entirely when Redis is
// not configured.
func StartWorker() {
	if database.RedisURI == "" {
		log.Println("⚠️ Redis not available. Background worker not started.")
		return
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: database.RedisURI},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeFormImport, HandleFormImportTask)

	go func() {
		if err := srv.Run(mux); err != nil {
			log.Println("❌ Asynq worker stopped:", err)
		}
	}()
	log.Println("✅ Background worker started")
}
