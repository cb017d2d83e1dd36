package pubsub

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"time"

	"storeapi/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	// EventTypeUserRegistered tags account registration messages.
	EventTypeUserRegistered = "user.registered"

	// TemplateConfirmEmail is the mail template a subscriber renders for the
	// message. The mailer subscription filters on attributes.template.
	TemplateConfirmEmail = "confirm-email"
)

// outboundMessage is the transport-neutral form of an event.
type outboundMessage struct {
	Data        []byte
	Attributes  map[string]string
	OrderingKey string
}

// newUserRegisteredMessage builds the message for a registration. Messages for
// one user share an ordering key so a re-sent confirmation never overtakes
// the first one.
func newUserRegisteredMessage(event *service.UserRegisteredEvent) (*outboundMessage, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	attributes := map[string]string{
		"event_type": EventTypeUserRegistered,
		"template":   TemplateConfirmEmail,
		"user_id":    strconv.FormatInt(event.UserID, 10),
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return &outboundMessage{
		Data:        data,
		Attributes:  attributes,
		OrderingKey: userOrderingKey(event.UserID),
	}, nil
}

func userOrderingKey(userID int64) string {
	return "user-" + strconv.FormatInt(userID, 10)
}

// PubSubPushMessage is the body Google Pub/Sub sends to push subscriptions.
type PubSubPushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
		OrderingKey string            `json:"orderingKey,omitempty"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// pushEnvelope wraps msg the way a push subscription would deliver it.
func pushEnvelope(msg *outboundMessage, subscription string, now time.Time) *PubSubPushMessage {
	envelope := &PubSubPushMessage{Subscription: subscription}
	envelope.Message.Data = base64.StdEncoding.EncodeToString(msg.Data)
	envelope.Message.Attributes = msg.Attributes
	envelope.Message.MessageID = uuid.NewString()
	envelope.Message.PublishTime = now.UTC().Format(time.RFC3339Nano)
	envelope.Message.OrderingKey = msg.OrderingKey

	return envelope
}
