package cron

import (
	"context"
	"fmt"
	"time"

	"bizhub/config"
	boardRepo "bizhub/database/repository/board"
	businessRepo "bizhub/database/repository/business"
	requestsRepo "bizhub/database/repository/requests"
	"bizhub/services/notification"
	"bizhub/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// PushDeps are what the push handlers read from and deliver through.
type PushDeps struct {
	Notifier   notification.NotificationService
	Businesses businessRepo.BusinessRepository
	Requests   requestsRepo.RequestRepository
	Actions    boardRepo.BoardRepository
	Logger     *zap.Logger
}

// RedisOpt is the asynq connection built from the app config.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewPushMux routes push tasks to their handlers.
func NewPushMux(deps PushDeps) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeRequestPush, handleRequestPush(deps))
	mux.HandleFunc(tasks.TypeActionPush, handleActionPush(deps))
	return mux
}

// StartPushWorker runs the push worker in the background, retrying startup
// with a linear backoff. The returned server must be shut down on exit.
func StartPushWorker(deps PushDeps) *asynq.Server {
	log := logger(deps)
	srv := asynq.NewServer(RedisOpt(), asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{tasks.QueuePush: 1},
		Logger:      log.Sugar(),
	})
	mux := NewPushMux(deps)

	go func() {
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Start(mux)
			if err == nil {
				log.Info("push worker started")
				return
			}
			log.Warn("push worker failed to start", zap.Int("attempt", attempt), zap.Error(err))
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
		log.Error("push worker gave up after repeated start failures")
	}()
	return srv
}

func handleRequestPush(deps PushDeps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.DecodePushPayload(task)
		if err != nil {
			return err
		}
		biz, err := deps.Businesses.GetByID(ctx, p.BusinessID)
		if err != nil {
			return fmt.Errorf("load business %s: %w", p.BusinessID, err)
		}
		req, err := deps.Requests.GetByID(ctx, p.BusinessID, p.RecordID)
		if err != nil {
			return fmt.Errorf("load request %s: %w", p.RecordID, err)
		}
		if err := deps.Notifier.NotifyNewRequest(ctx, biz, req); err != nil {
			logger(deps).Warn("request push failed", zap.String("requestID", req.ID), zap.Error(err))
			return err
		}
		return nil
	}
}

func handleActionPush(deps PushDeps) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.DecodePushPayload(task)
		if err != nil {
			return err
		}
		biz, err := deps.Businesses.GetByID(ctx, p.BusinessID)
		if err != nil {
			return fmt.Errorf("load business %s: %w", p.BusinessID, err)
		}
		action, err := deps.Actions.GetByID(ctx, p.RecordID)
		if err != nil {
			return fmt.Errorf("load action %s: %w", p.RecordID, err)
		}
		if err := deps.Notifier.NotifyActionCreated(ctx, biz, action); err != nil {
			logger(deps).Warn("action push failed", zap.String("actionID", action.ID), zap.Error(err))
			return err
		}
		return nil
	}
}

func logger(deps PushDeps) *zap.Logger {
	if deps.Logger == nil {
		return zap.NewNop()
	}
	return deps.Logger
}
