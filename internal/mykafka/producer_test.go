package mykafka

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProducerWithoutBrokers(t *testing.T) {
	// An unset KAFKA_ADDRESS reaches this as a single empty string;
	// all of these mean "events disabled", never a broken writer.
	for _, addrs := range [][]string{nil, {}, {""}} {
		p, err := NewProducer(addrs)
		require.NoError(t, err)
		require.Nil(t, p)
	}
}

func TestNewProducerWithBroker(t *testing.T) {
	p, err := NewProducer([]string{"", "localhost:9092"})
	require.NoError(t, err)
	require.NotNil(t, p)
	require.NoError(t, p.Close())
}

func TestNilProducerIsNoop(t *testing.T) {
	var p *Producer

	err := p.PublishEvent(context.Background(), "user_events", "1", map[string]any{"type": "user_registered"})
	require.NoError(t, err)
	require.NoError(t, p.Close())
}
