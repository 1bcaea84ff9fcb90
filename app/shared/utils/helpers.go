// Package utils carries the small message-plumbing helpers every
// module's handlers and routers share.
package utils

import (
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// TopicMetadataKey is the metadata key the routers read to resolve
// where a handler's result message should be published.
const TopicMetadataKey = "topic"

// Helpers is the message helper surface handlers depend on.
type Helpers interface {
	UnmarshalPayload(msg *message.Message, target any) error
	CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error)
	CreateNewMessage(payload any, topic string) (*message.Message, error)
}

type helpers struct{}

// NewHelpers returns the standard Helpers implementation.
func NewHelpers() Helpers {
	return helpers{}
}

func (helpers) UnmarshalPayload(msg *message.Message, target any) error {
	if err := json.Unmarshal(msg.Payload, target); err != nil {
		return fmt.Errorf("failed to unmarshal %T payload: %w", target, err)
	}
	return nil
}

// CreateResultMessage builds a message carrying payload, tagged with
// the publish topic and the original message's correlation id so the
// whole request/result flow can be traced as one unit.
func (helpers) CreateResultMessage(original *message.Message, payload any, topic string) (*message.Message, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %T payload: %w", payload, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.Metadata.Set(TopicMetadataKey, topic)
	if original != nil {
		middleware.SetCorrelationID(middleware.MessageCorrelationID(original), msg)
	}
	return msg, nil
}

// CreateNewMessage builds a message with a fresh correlation id, for
// flows that start inside this service rather than from an inbound
// request.
func (h helpers) CreateNewMessage(payload any, topic string) (*message.Message, error) {
	msg, err := h.CreateResultMessage(nil, payload, topic)
	if err != nil {
		return nil, err
	}
	middleware.SetCorrelationID(watermill.NewUUID(), msg)
	return msg, nil
}
