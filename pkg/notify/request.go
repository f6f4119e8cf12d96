package notify

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"firebase.google.com/go/v4/messaging"
	"github.com/go-playground/validator/v10"
)

// Route selects which target a request is addressed to.
type Route int

const (
	TopicRoute Route = iota
	TokenRoute
)

func (r Route) String() string {
	switch r {
	case TopicRoute:
		return "topic"
	case TokenRoute:
		return "token"
	default:
		return fmt.Sprintf("route(%d)", int(r))
	}
}

// RequiredMessage is the client-facing error for a request missing required fields.
func (r Route) RequiredMessage() string {
	if r == TokenRoute {
		return MsgTokenRequired
	}
	return MsgTopicRequired
}

const (
	MsgSent          = "Notification sent successfully"
	MsgTopicRequired = "Title and body are required"
	MsgTokenRequired = "Token, title, and body are required"
	MsgInvalidToken  = "Invalid or unregistered token"
	MsgSendFailed    = "Failed to send notification"
)

// Target is either a topic or a device token. Exactly one field is set.
type Target struct {
	Topic string
	Token string
}

func TopicTarget(name string) Target { return Target{Topic: name} }

func TokenTarget(token string) Target { return Target{Token: token} }

// Payload is the JSON body accepted by the notify routes.
type Payload struct {
	Token string `json:"token" validate:"required"`
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// NotificationRequest is a validated request bound to a single target.
type NotificationRequest struct {
	Title  string
	Body   string
	Target Target
}

// Message builds the provider message for the request.
func (r NotificationRequest) Message() *messaging.Message {
	return &messaging.Message{
		Notification: &messaging.Notification{
			Title: r.Title,
			Body:  r.Body,
		},
		Topic: r.Target.Topic,
		Token: r.Target.Token,
	}
}

// ValidationError lists the required fields missing from a payload.
type ValidationError struct {
	Route   Route
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s notification: missing required fields: %s", e.Route, strings.Join(e.Missing, ", "))
}

// Validator checks route payloads for the presence of required fields.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	return &Validator{validate: v}
}

var routeFields = map[Route][]string{
	TopicRoute: {"Title", "Body"},
	TokenRoute: {"Token", "Title", "Body"},
}

// Validate returns the request for route, or a *ValidationError if a required
// field is empty. topic is used as the target of TopicRoute requests.
func (v *Validator) Validate(p Payload, route Route, topic string) (NotificationRequest, error) {
	fields, ok := routeFields[route]
	if !ok {
		return NotificationRequest{}, fmt.Errorf("unknown route %s", route)
	}

	if err := v.validate.StructPartial(p, fields...); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return NotificationRequest{}, err
		}
		missing := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			missing = append(missing, fe.Field())
		}
		return NotificationRequest{}, &ValidationError{Route: route, Missing: missing}
	}

	req := NotificationRequest{Title: p.Title, Body: p.Body}
	if route == TokenRoute {
		req.Target = TokenTarget(p.Token)
	} else {
		req.Target = TopicTarget(topic)
	}
	return req, nil
}
