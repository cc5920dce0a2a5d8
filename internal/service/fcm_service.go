package service

import (
	"context"

	"lokma/internal/logger"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// PushMessage is the notification payload. Data values must be strings for FCM.
type PushMessage struct {
	Title string
	Body  string
	Data  map[string]string
}

// PushResult counts per-token outcomes of a multicast.
type PushResult struct {
	SuccessCount int
	FailureCount int
}

// FCMService sends push notifications via Firebase Cloud Messaging.
type FCMService struct {
	client *messaging.Client
}

// NewFCMService creates an FCM service. Returns nil if Firebase is not configured.
func NewFCMService(serviceAccountPath string) *FCMService {
	log := logger.Component("fcm")
	if serviceAccountPath == "" {
		return nil
	}
	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(serviceAccountPath))
	if err != nil {
		log.Error().Err(err).Msg("init firebase app")
		return nil
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		log.Error().Err(err).Msg("get messaging client")
		return nil
	}
	return &FCMService{client: client}
}

// SendMulticast sends one batched request for all tokens. A nil service or an empty
// token set is a no-op. Per-token failures are counted, not acted upon.
func (s *FCMService) SendMulticast(ctx context.Context, tokens []string, msg PushMessage) (*PushResult, error) {
	if s == nil || len(tokens) == 0 {
		return &PushResult{}, nil
	}
	resp, err := s.client.SendEachForMulticast(ctx, &messaging.MulticastMessage{
		Tokens: tokens,
		Notification: &messaging.Notification{
			Title: msg.Title,
			Body:  msg.Body,
		},
		Data: msg.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}
	return &PushResult{SuccessCount: resp.SuccessCount, FailureCount: resp.FailureCount}, nil
}
