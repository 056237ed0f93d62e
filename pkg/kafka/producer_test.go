package kafka

import (
	"context"
	"testing"
	"time"
)

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers:  []string{"localhost:9092", "localhost:9093"},
		ClientID: "loanscore-test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(p.brokers) != 2 {
		t.Fatalf("expected 2 brokers, got %d", len(p.brokers))
	}
	if p.transport.ClientID != "loanscore-test" {
		t.Errorf("expected client id loanscore-test, got %s", p.transport.ClientID)
	}
	if p.batchTimeout != 10*time.Millisecond {
		t.Errorf("expected default batch timeout 10ms, got %s", p.batchTimeout)
	}
	if len(p.writers) != 0 {
		t.Errorf("expected empty writers map, got %d entries", len(p.writers))
	}
}

func TestNewProducerTLSAndSASL(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers:       []string{"kafka:9093"},
		TLS:           true,
		SASLEnabled:   true,
		SASLMechanism: "SCRAM-SHA-512",
		SASLUsername:  "scorer",
		SASLPassword:  "secret",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.transport.TLS == nil {
		t.Error("expected TLS config on transport")
	}
	if p.transport.SASL == nil {
		t.Fatal("expected SASL mechanism on transport")
	}
	if got := p.transport.SASL.Name(); got != "SCRAM-SHA-512" {
		t.Errorf("expected SCRAM-SHA-512, got %s", got)
	}
}

func TestNewProducerUnknownSASL(t *testing.T) {
	_, err := NewProducer(Config{
		Brokers:       []string{"kafka:9093"},
		SASLEnabled:   true,
		SASLMechanism: "GSSAPI",
	})
	if err == nil {
		t.Fatal("expected error for unsupported SASL mechanism")
	}
}

func TestConfigEnabled(t *testing.T) {
	if (Config{}).Enabled() {
		t.Error("empty config should not be enabled")
	}
	if (Config{Brokers: []string{""}}).Enabled() {
		t.Error("blank broker should not enable the producer")
	}
	if !(Config{Brokers: []string{"kafka:9092"}}).Enabled() {
		t.Error("expected config with broker to be enabled")
	}
}

func TestToKafkaMessages(t *testing.T) {
	out := toKafkaMessages([]Message{{
		Key:   []byte("assessment-123"),
		Value: []byte(`{"recommendation":"APPROVED"}`),
		Headers: map[string]string{
			"event_type": "loanscore.assessment.completed",
		},
	}})

	if len(out) != 1 {
		t.Fatalf("expected 1 message, got %d", len(out))
	}
	if string(out[0].Key) != "assessment-123" {
		t.Errorf("unexpected key: %s", out[0].Key)
	}
	if len(out[0].Headers) != 1 || out[0].Headers[0].Key != "event_type" {
		t.Errorf("unexpected headers: %+v", out[0].Headers)
	}
}

func TestPublishNoMessages(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := p.Publish(context.Background(), "loanscore.events"); err != nil {
		t.Fatalf("expected nil error for empty publish, got %v", err)
	}
	if len(p.writers) != 0 {
		t.Error("empty publish should not create a writer")
	}
}

func TestGetOrCreateWriter(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w1 := p.getOrCreateWriter("topic-a")
	w2 := p.getOrCreateWriter("topic-a")
	if w1 != w2 {
		t.Error("expected same writer instance for same topic")
	}

	w3 := p.getOrCreateWriter("topic-b")
	if w1 == w3 {
		t.Error("expected different writer instance for different topic")
	}
	if w1.Transport != p.transport {
		t.Error("expected writer to share the producer transport")
	}

	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error on close: %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("expected 0 writers after close, got %d", len(p.writers))
	}
}
