package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Handler processes one event. Returning an error leaves the message
// pending; the subscriber retries it every PendingInterval.
type Handler func(ctx context.Context, event Event) error

type Subscriber struct {
	client        *redis.Client
	group         string
	consumer      string
	stream        string
	handler       Handler
	batchSize     int64
	blockDuration time.Duration
	retryDelay    time.Duration
	pendingEvery  time.Duration
}

type SubscriberConfig struct {
	Group         string
	Consumer      string
	Stream        string
	Handler       Handler
	BatchSize     int64
	BlockDuration time.Duration
	RetryDelay    time.Duration

	// PendingInterval is how often this consumer's unacknowledged messages
	// are read again.
	PendingInterval time.Duration
}

func NewSubscriber(client *redis.Client, config SubscriberConfig) *Subscriber {
	if config.BatchSize == 0 {
		config.BatchSize = 10
	}
	if config.BlockDuration == 0 {
		config.BlockDuration = 5 * time.Second
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = time.Second
	}
	if config.PendingInterval == 0 {
		config.PendingInterval = 5 * time.Second
	}

	return &Subscriber{
		client:        client,
		group:         config.Group,
		consumer:      config.Consumer,
		stream:        config.Stream,
		handler:       config.Handler,
		batchSize:     config.BatchSize,
		blockDuration: config.BlockDuration,
		retryDelay:    config.RetryDelay,
		pendingEvery:  config.PendingInterval,
	}
}

// Start creates the consumer group if needed and consumes until ctx is done.
func (s *Subscriber) Start(ctx context.Context) error {
	if err := s.ensureGroup(ctx); err != nil {
		return err
	}

	log.Printf("Subscriber started: stream=%s, group=%s, consumer=%s", s.stream, s.group, s.consumer)

	// Retry whatever this consumer left unacknowledged before it last stopped.
	s.replayPending(ctx)
	nextReplay := time.Now().Add(s.pendingEvery)

	for {
		select {
		case <-ctx.Done():
			log.Printf("Subscriber stopping: %s", s.stream)
			return ctx.Err()
		default:
		}

		if _, _, err := s.readMessages(ctx, ">"); err != nil {
			if ctx.Err() != nil {
				continue
			}
			log.Printf("Error reading messages: %v", err)
			select {
			case <-ctx.Done():
			case <-time.After(s.retryDelay):
			}
		}

		if !time.Now().Before(nextReplay) {
			s.replayPending(ctx)
			nextReplay = time.Now().Add(s.pendingEvery)
		}
	}
}

// replayPending walks this consumer's whole pending list once, a batch at a
// time. Messages that fail again stay pending for the next pass.
func (s *Subscriber) replayPending(ctx context.Context) {
	cursor := "0"
	for ctx.Err() == nil {
		lastID, n, err := s.readMessages(ctx, cursor)
		if err != nil {
			log.Printf("Error replaying pending messages: %v", err)
			return
		}
		if n == 0 {
			return
		}
		cursor = lastID
	}
}

func (s *Subscriber) ensureGroup(ctx context.Context) error {
	err := s.client.XGroupCreateMkStream(ctx, s.stream, s.group, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

// readMessages handles one batch starting at id: ">" for new messages, or a
// pending-list cursor ("0" for the start). It returns the last message id
// read and how many messages the batch held.
func (s *Subscriber) readMessages(ctx context.Context, id string) (string, int, error) {
	streams, err := s.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    s.group,
		Consumer: s.consumer,
		Streams:  []string{s.stream, id},
		Count:    s.batchSize,
		Block:    s.blockFor(id),
	}).Result()

	if err == redis.Nil {
		return id, 0, nil
	}
	if err != nil {
		return id, 0, fmt.Errorf("failed to read from stream: %w", err)
	}

	lastID, count := id, 0
	for _, stream := range streams {
		for _, message := range stream.Messages {
			lastID = message.ID
			count++
			if err := s.processMessage(ctx, message); err != nil {
				log.Printf("Failed to process message %s: %v", message.ID, err)
				continue
			}

			if err := s.client.XAck(ctx, s.stream, s.group, message.ID).Err(); err != nil {
				log.Printf("Failed to ACK message %s: %v", message.ID, err)
			}
		}
	}

	return lastID, count, nil
}

func (s *Subscriber) blockFor(id string) time.Duration {
	if id == ">" {
		return s.blockDuration
	}
	// Pending replay never blocks.
	return -1
}

// processMessage returns nil for malformed messages so they are acked; no
// retry can fix them.
func (s *Subscriber) processMessage(ctx context.Context, message redis.XMessage) error {
	eventData, ok := message.Values["event"].(string)
	if !ok {
		log.Printf("Dropping message %s on %s: no event field", message.ID, s.stream)
		return nil
	}

	var event Event
	if err := json.Unmarshal([]byte(eventData), &event); err != nil {
		log.Printf("Dropping message %s on %s: %v", message.ID, s.stream, err)
		return nil
	}

	return s.handler(ctx, event)
}
