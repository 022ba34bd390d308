package services

import (
	"context"
	"log"

	"firebase.google.com/go/messaging"

	"poputkaBack/internal/repositories"
)

// NotificationService pushes FCM notifications. Client may be nil when
// Firebase credentials are not configured, every send becomes a no-op then.
type NotificationService struct {
	Client   *messaging.Client
	UserRepo *repositories.UserRepository
	ErrorLog *log.Logger
}

// SendToUser delivers a push to the user's registered device token.
// Delivery is best effort: failures are logged, never returned.
func (s *NotificationService) SendToUser(ctx context.Context, userID int, title, body string, data map[string]string) {
	if s.Client == nil {
		return
	}

	token, err := s.UserRepo.GetFCMToken(ctx, userID)
	if err != nil {
		s.ErrorLog.Printf("fcm token lookup for user %d: %v", userID, err)
		return
	}
	if token == "" {
		return
	}

	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority_channel",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority": "10",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: title,
						Body:  body,
					},
					Sound: "default",
				},
			},
		},
	}

	if _, err := s.Client.Send(ctx, message); err != nil {
		s.ErrorLog.Printf("fcm send to user %d: %v", userID, err)
	}
}
