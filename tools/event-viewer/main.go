// Event Viewer - tails the interaction event topic and prints each
// logged interaction as it arrives.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/segmentio/kafka-go"
)

// InteractionEvent mirrors the payload published by the service.
type InteractionEvent struct {
	EventType   string `json:"eventType"`
	RecordID    uint   `json:"recordId"`
	Timestamp   string `json:"timestamp"`
	UserQuery   string `json:"userQuery"`
	RequestType string `json:"requestType"`
	VoiceOutput bool   `json:"voiceOutput"`
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

func main() {
	brokers := flag.String("brokers", "localhost:9092", "Kafka brokers (comma-separated)")
	topic := flag.String("topic", "ai.interactions.logged", "interaction event topic")
	flag.Parse()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   strings.Split(*brokers, ","),
		Topic:     *topic,
		Partition: 0,
		MinBytes:  1,
		MaxBytes:  10e6,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		cancel()
	}()

	// Only show recent messages.
	_ = reader.SetOffsetAt(ctx, time.Now().Add(-1*time.Hour))

	log.Printf("Consuming from Kafka topic: %s partition 0 (last hour)", *topic)

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("Kafka read error on %s: %v", *topic, err)
			time.Sleep(time.Second)
			continue
		}

		var event InteractionEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Printf("JSON unmarshal error: %v", err)
			continue
		}

		log.Printf("record=%d type=%s voice=%v query=%q at %s",
			event.RecordID, event.RequestType, event.VoiceOutput,
			truncate(event.UserQuery, 60), event.Timestamp)
	}
}
