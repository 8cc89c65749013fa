package mq

import (
	"context"
	"errors"
)

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// Backend defines the broker-agnostic operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// ErrNoChannel is returned when an MQ was constructed without a channel name.
var ErrNoChannel = errors.New("mq channel is not configured")

// MQ binds a backend to a single named channel. The app runs exactly one
// queue, so the channel is fixed at construction instead of threaded
// through every call.
type MQ struct {
	backend Backend
	channel string
}

// New constructs an MQ for the provided backend, bound to channel.
func New(backend Backend, channel string) *MQ {
	return &MQ{backend: backend, channel: channel}
}

// Publish sends a message to the bound channel.
func (m *MQ) Publish(ctx context.Context, data []byte, attrs map[string]string) (string, error) {
	if m.channel == "" {
		return "", ErrNoChannel
	}
	return m.backend.Publish(ctx, m.channel, data, attrs)
}

// Subscribe consumes messages from the bound channel.
func (m *MQ) Subscribe(ctx context.Context, handler Handler) error {
	if m.channel == "" {
		return ErrNoChannel
	}
	return m.backend.Subscribe(ctx, m.channel, handler)
}

// Channel returns the bound channel name.
func (m *MQ) Channel() string {
	return m.channel
}

// Close closes the underlying backend.
func (m *MQ) Close() error {
	return m.backend.Close()
}
