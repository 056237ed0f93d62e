package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()

	before := time.Now().UTC()
	event := NewBaseEvent("AssessmentCompleted", aggregateID, "LoanAssessment", []byte(`{}`))
	after := time.Now().UTC()

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, "AssessmentCompleted", event.EventType())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "LoanAssessment", event.AggregateType())
	assert.False(t, event.OccurredAt().Before(before))
	assert.False(t, event.OccurredAt().After(after))
}

func TestBaseEventImplementsDomainEvent(t *testing.T) {
	var _ DomainEvent = BaseEvent{}
}

func TestNewJSONEvent(t *testing.T) {
	body := map[string]any{"recommendation": "APPROVED", "score": 0.72}

	event, err := NewJSONEvent("loanscore.assessment.completed", uuid.New(), "LoanAssessment", body)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(event.Payload(), &parsed))
	assert.Equal(t, "APPROVED", parsed["recommendation"])
}

func TestNewJSONEventMarshalError(t *testing.T) {
	_, err := NewJSONEvent("bad", uuid.New(), "LoanAssessment", make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad")
}

func TestToEnvelope(t *testing.T) {
	event := NewBaseEvent("Reviewed", uuid.New(), "LoanAssessment", []byte(`{"band":"MEDIUM_RISK"}`))

	env := ToEnvelope(event)
	assert.Equal(t, event.EventID(), env.EventID)
	assert.Equal(t, event.AggregateID(), env.AggregateID)

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"payload":{"band":"MEDIUM_RISK"}`)
}

func TestToEnvelopeEmptyPayload(t *testing.T) {
	env := ToEnvelope(NewBaseEvent("Empty", uuid.New(), "LoanAssessment", nil))

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"payload":null`)
}

func TestEventCollector(t *testing.T) {
	collector := &EventCollector{}
	aggregateID := uuid.New()

	collector.Record(NewBaseEvent("Event1", aggregateID, "Aggregate", nil))
	collector.Record(NewBaseEvent("Event2", aggregateID, "Aggregate", nil))

	require.Len(t, collector.Events(), 2)
	assert.Equal(t, "Event1", collector.Events()[0].EventType())

	cleared := collector.ClearEvents()
	assert.Len(t, cleared, 2)
	assert.Empty(t, collector.Events())
	assert.Nil(t, collector.ClearEvents())
}
