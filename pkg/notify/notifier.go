package notify

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
)

// Sender is the subset of the FCM client used to deliver a message.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// ErrorCode classifies a provider failure.
type ErrorCode int

const (
	SendFailure ErrorCode = iota
	InvalidToken
)

func (c ErrorCode) String() string {
	if c == InvalidToken {
		return "invalid-token"
	}
	return "send-failure"
}

// SendError wraps a provider failure with its classification.
type SendError struct {
	Code ErrorCode
	Err  error
}

func (e *SendError) Error() string {
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *SendError) Unwrap() error { return e.Err }

// Message is the provider's own message, or a generic fallback when it has none.
func (e *SendError) Message() string {
	if e.Err == nil || e.Err.Error() == "" {
		return MsgSendFailed
	}
	return e.Err.Error()
}

// invalidTokenChecks match FCM's UNREGISTERED and INVALID_ARGUMENT responses.
var invalidTokenChecks = []func(error) bool{
	messaging.IsUnregistered,
	messaging.IsInvalidArgument,
}

// Classify maps a provider error to an ErrorCode.
func Classify(err error) ErrorCode {
	for _, check := range invalidTokenChecks {
		if check(err) {
			return InvalidToken
		}
	}
	return SendFailure
}

// Notifier delivers validated requests through the provider.
type Notifier struct {
	sender Sender
}

func NewNotifier(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

// Send delivers req and returns the provider message id. Failures are
// returned as *SendError.
func (n *Notifier) Send(ctx context.Context, req NotificationRequest) (string, error) {
	id, err := n.sender.Send(ctx, req.Message())
	if err != nil {
		return "", &SendError{Code: Classify(err), Err: err}
	}
	return id, nil
}
