package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TypeRequestPush = "push:service_request"
	TypeActionPush  = "push:board_action"

	// QueuePush is the asynq queue push deliveries run on.
	QueuePush = "push"
)

// PushPayload identifies the record a push is about. The worker reloads the
// record so the task never carries stale customer data.
type PushPayload struct {
	BusinessID string `json:"businessId"`
	RecordID   string `json:"recordId"`
}

func NewRequestPushTask(businessID, requestID string) (*asynq.Task, []asynq.Option, error) {
	return newPushTask(TypeRequestPush, PushPayload{BusinessID: businessID, RecordID: requestID})
}

func NewActionPushTask(businessID, actionID string) (*asynq.Task, []asynq.Option, error) {
	return newPushTask(TypeActionPush, PushPayload{BusinessID: businessID, RecordID: actionID})
}

func newPushTask(taskType string, payload PushPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(taskType, b)
	opts := []asynq.Option{
		asynq.Queue(QueuePush),
		asynq.MaxRetry(5),
		asynq.Timeout(30 * time.Second),
	}
	return task, opts, nil
}

// DecodePushPayload reads a push task payload. Malformed payloads are not retried.
func DecodePushPayload(task *asynq.Task) (PushPayload, error) {
	var p PushPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid %s payload: %v: %w", task.Type(), err, asynq.SkipRetry)
	}
	if p.BusinessID == "" || p.RecordID == "" {
		return p, fmt.Errorf("incomplete %s payload: %w", task.Type(), asynq.SkipRetry)
	}
	return p, nil
}
