// Package pubsub mirrors playback changes onto a Redis channel so other
// services (lighting, stream overlays) can follow the soundboard.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"Sampler/config"
	"Sampler/core/playback"
	"Sampler/logger"

	"github.com/go-redis/redis/v8"
)

// PlaybackChannel is the Redis channel snapshots are published on.
const PlaybackChannel = "sampler:playback"

const queueSize = 32

// Publisher publishes playback snapshots from its own goroutine so the
// playback loop never waits on the network.
type Publisher struct {
	client  *redis.Client
	channel string
	queue   chan playback.Snapshot
	done    chan struct{}
}

// ConnectRedis 初始化Redis连接
func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewPublisher starts a publisher on client.
func NewPublisher(client *redis.Client, channel string) *Publisher {
	p := &Publisher{
		client:  client,
		channel: channel,
		queue:   make(chan playback.Snapshot, queueSize),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

// PlaybackChanged queues snap for publishing. It drops the snapshot when the
// queue is full.
func (p *Publisher) PlaybackChanged(snap playback.Snapshot) {
	select {
	case p.queue <- snap:
	default:
		logger.Warn("redis publish queue full, snapshot dropped", logger.String("playingId", snap.PlayingID))
	}
}

// Close drains the queue and closes the Redis client.
func (p *Publisher) Close() error {
	close(p.queue)
	<-p.done
	return p.client.Close()
}

func (p *Publisher) run() {
	defer close(p.done)

	for snap := range p.queue {
		payload, err := json.Marshal(snap)
		if err != nil {
			logger.Error("marshal playback snapshot", logger.ErrorField(err))
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err = p.client.Publish(ctx, p.channel, payload).Err()
		cancel()
		if err != nil {
			logger.Warn("redis publish failed", logger.String("channel", p.channel), logger.ErrorField(err))
		}
	}
}
