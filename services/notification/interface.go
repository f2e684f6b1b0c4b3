package notification

import (
	"context"
	"fmt"

	"bizhub/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Messenger is the part of the FCM client used to deliver pushes.
type Messenger interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// NotificationService defines methods for sending FCM pushes to business owners.
type NotificationService interface {
	NotifyNewRequest(ctx context.Context, business *models.Business, req *models.ServiceRequest) error
	NotifyActionCreated(ctx context.Context, business *models.Business, action *models.BoardAction) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	client Messenger
	logger *zap.Logger
}

// NewDefaultNotificationService builds the service. A nil client turns every
// notification into a no-op, which is how environments without Firebase run.
func NewDefaultNotificationService(client Messenger, logger *zap.Logger) *DefaultNotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{client: client, logger: logger}
}

func (s *DefaultNotificationService) NotifyNewRequest(ctx context.Context, business *models.Business, req *models.ServiceRequest) error {
	body := fmt.Sprintf("%s sent a request", req.Customer.Name)
	if req.TotalPrice > 0 {
		body = fmt.Sprintf("%s sent a request worth %.2f %s", req.Customer.Name, req.TotalPrice, req.Currency)
	}
	return s.send(ctx, business, "New service request", body, map[string]string{
		"type":      "service_request",
		"requestId": req.ID,
		"serviceId": req.ServiceID,
	})
}

func (s *DefaultNotificationService) NotifyActionCreated(ctx context.Context, business *models.Business, action *models.BoardAction) error {
	return s.send(ctx, business, "Board action created", action.Title, map[string]string{
		"type":       "board_action",
		"actionId":   action.ID,
		"actionType": action.ActionType,
		"boardRef":   action.BoardRef,
	})
}

func (s *DefaultNotificationService) send(ctx context.Context, business *models.Business, title, body string, data map[string]string) error {
	if s.client == nil || business == nil || business.FCMToken == "" {
		return nil
	}
	data["role"] = "business"
	msg := &messaging.Message{
		Token: business.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}
	id, err := s.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send FCM message to business %s: %w", business.ID, err)
	}
	s.logger.Debug("push sent", zap.String("businessID", business.ID), zap.String("messageID", id))
	return nil
}
