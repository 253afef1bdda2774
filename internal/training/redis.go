package training

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// RedisSink appends samples to a Redis stream the training loop consumes
// with consumer groups. One entry per sample, JSON payload under "sample".
type RedisSink struct {
	client *redis.Client
	stream string
}

func NewRedisSink(addr, stream string) *RedisSink {
	return &RedisSink{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		stream: stream,
	}
}

func (r *RedisSink) Record(ctx context.Context, s Sample) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return r.client.XAdd(ctx, &redis.XAddArgs{
		Stream: r.stream,
		Values: map[string]any{"sample": payload},
	}).Err()
}

func (r *RedisSink) Close() error {
	return r.client.Close()
}
