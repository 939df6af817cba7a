// Package redispub broadcasts order events on a redis pub/sub channel.
package redispub

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is used when no channel is configured.
const DefaultChannel = "order_events"

// Config holds redis connection details.
type Config struct {
	Addr     string
	Password string
	DB       int
	Channel  string
}

// Publisher wraps a redis client used for pub/sub.
type Publisher struct {
	rdb     *redis.Client
	channel string
}

// Envelope is the message sent on the channel.
type Envelope struct {
	RoutingKey string          `json:"routingKey"`
	Payload    json.RawMessage `json:"payload"`
}

// NewPublisher connects to redis and verifies the connection.
func NewPublisher(ctx context.Context, cfg Config) (*Publisher, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}
	return newPublisher(rdb, cfg.Channel), nil
}

func newPublisher(rdb *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{rdb: rdb, channel: channel}
}

// Publish sends the event wrapped in an Envelope. body must be valid JSON.
func (p *Publisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	msg, err := Encode(routingKey, body)
	if err != nil {
		return err
	}
	if err := p.rdb.Publish(ctx, p.channel, msg).Err(); err != nil {
		return fmt.Errorf("failed to publish to redis channel %s: %w", p.channel, err)
	}
	return nil
}

// Subscribe returns the channel of raw messages for consumers such as dashboards.
func (p *Publisher) Subscribe(ctx context.Context) *redis.PubSub {
	return p.rdb.Subscribe(ctx, p.channel)
}

// Close closes the connection.
func (p *Publisher) Close() error {
	return p.rdb.Close()
}

// Encode builds the wire form of an event.
func Encode(routingKey string, body []byte) (string, error) {
	if !json.Valid(body) {
		return "", fmt.Errorf("event body for %s is not valid JSON", routingKey)
	}
	raw, err := json.Marshal(Envelope{RoutingKey: routingKey, Payload: body})
	if err != nil {
		return "", fmt.Errorf("encode event envelope: %w", err)
	}
	return string(raw), nil
}

// Decode parses a message produced by Encode.
func Decode(msg string) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal([]byte(msg), &env); err != nil {
		return Envelope{}, fmt.Errorf("decode event envelope: %w", err)
	}
	return env, nil
}
