//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const streamAvailabilityChanged = "stream:availability:changed"

type AvailabilityChangedEvent struct {
	EventID  string `json:"event_id"`
	CenterID string `json:"center_id"`
	Date     string `json:"date,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	centerID := flag.String("center", "ctr-003", "center whose slots changed")
	date := flag.String("date", "", "affected date (YYYY-MM-DD), empty for all dates")
	reason := flag.String("reason", "booking", "change reason")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := AvailabilityChangedEvent{
		EventID:  uuid.NewString(),
		CenterID: *centerID,
		Date:     *date,
		Reason:   *reason,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: streamAvailabilityChanged,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	log.Printf("Published %s to %s: %s", id, streamAvailabilityChanged, data)
}
