//go:build integration

package kafka_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/loanscore/internal/infrastructure/kafka"
	"github.com/bibbank/loanscore/pkg/events"
	pkgkafka "github.com/bibbank/loanscore/pkg/kafka"
	"github.com/bibbank/loanscore/pkg/testutil"
)

func TestPublisher_RoundTripThroughBroker(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	kc := testutil.NewKafkaContainer(ctx, t)
	t.Cleanup(func() { kc.Cleanup(t) })

	const topic = "loanscore.assessments.it"
	conn, err := kafkago.DialContext(ctx, "tcp", kc.Brokers[0])
	require.NoError(t, err)
	require.NoError(t, conn.CreateTopics(kafkago.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1}))
	require.NoError(t, conn.Close())

	producer, err := pkgkafka.NewProducer(pkgkafka.Config{Brokers: kc.Brokers, ClientID: "loanscore-it"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = producer.Close() })

	pub := kafka.NewPublisher(producer, topic, slog.New(slog.NewTextHandler(io.Discard, nil)))

	aggID := uuid.New()
	evt, err := events.NewJSONEvent("loanscore.assessment.completed", aggID, "loan_assessment", map[string]string{"recommendation": "APPROVED"})
	require.NoError(t, err)
	require.NoError(t, pub.Publish(ctx, evt))

	reader := kafkago.NewReader(kafkago.ReaderConfig{Brokers: kc.Brokers, Topic: topic, Partition: 0})
	t.Cleanup(func() { _ = reader.Close() })

	msg, err := reader.ReadMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, aggID.String(), string(msg.Key))

	var env events.Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, "loanscore.assessment.completed", env.EventType)
	assert.JSONEq(t, `{"recommendation":"APPROVED"}`, string(env.Payload))
}
