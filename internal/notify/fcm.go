// Package notify delivers shared celebrations to client devices through
// Firebase Cloud Messaging.
package notify

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"github.com/msomdec/trainer-streaks/internal/service"
)

// ErrNoCredentials is returned by NewFCM when neither credential source is configured.
var ErrNoCredentials = errors.New("no firebase credentials configured")

// sender is the subset of *messaging.Client used by FCM.
type sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// FCM implements service.Notifier on top of Firebase Cloud Messaging.
type FCM struct {
	client sender
}

var _ service.Notifier = (*FCM)(nil)

// NewFCM initializes the messaging client. encodedJSON is a base64-encoded
// service account key and takes precedence over credentialsFile.
func NewFCM(ctx context.Context, encodedJSON, credentialsFile string) (*FCM, error) {
	var opt option.ClientOption
	switch {
	case encodedJSON != "":
		decoded, err := base64.StdEncoding.DecodeString(encodedJSON)
		if err != nil {
			return nil, fmt.Errorf("decode firebase credentials: %w", err)
		}
		opt = option.WithCredentialsJSON(decoded)
	case credentialsFile != "":
		if _, err := os.Stat(credentialsFile); err != nil {
			return nil, fmt.Errorf("firebase credentials file: %w", err)
		}
		opt = option.WithCredentialsFile(credentialsFile)
	default:
		return nil, ErrNoCredentials
	}

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("get messaging client: %w", err)
	}
	return &FCM{client: client}, nil
}

// Notify sends one push message to deviceToken.
func (f *FCM) Notify(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	if deviceToken == "" {
		return service.ErrSharingUnavailable
	}
	msg := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
	}

	id, err := f.client.Send(ctx, msg)
	if err != nil {
		if messaging.IsUnregistered(err) || messaging.IsInvalidArgument(err) {
			return fmt.Errorf("%w: %v", service.ErrSharingUnavailable, err)
		}
		return fmt.Errorf("send push: %w", err)
	}
	slog.Debug("push sent", "message_id", id)
	return nil
}
