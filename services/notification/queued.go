package notification

import (
	"context"
	"fmt"

	"bizhub/models"
	"bizhub/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the part of the asynq client used to schedule pushes.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// QueuedNotificationService hands pushes to the background worker instead of
// calling FCM inside the request.
type QueuedNotificationService struct {
	client Enqueuer
	logger *zap.Logger
}

func NewQueuedNotificationService(client Enqueuer, logger *zap.Logger) *QueuedNotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QueuedNotificationService{client: client, logger: logger}
}

func (s *QueuedNotificationService) NotifyNewRequest(ctx context.Context, business *models.Business, req *models.ServiceRequest) error {
	task, opts, err := tasks.NewRequestPushTask(business.ID, req.ID)
	if err != nil {
		return err
	}
	return s.enqueue(ctx, task, opts)
}

func (s *QueuedNotificationService) NotifyActionCreated(ctx context.Context, business *models.Business, action *models.BoardAction) error {
	task, opts, err := tasks.NewActionPushTask(business.ID, action.ID)
	if err != nil {
		return err
	}
	return s.enqueue(ctx, task, opts)
}

func (s *QueuedNotificationService) enqueue(ctx context.Context, task *asynq.Task, opts []asynq.Option) error {
	info, err := s.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", task.Type(), err)
	}
	s.logger.Debug("push enqueued", zap.String("taskID", info.ID), zap.String("type", task.Type()))
	return nil
}
