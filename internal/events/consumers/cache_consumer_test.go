package consumers

import (
	"context"
	"errors"
	"testing"

	"referral-server/internal/clients/kafka"
	"referral-server/internal/observability"

	"github.com/stretchr/testify/assert"
)

type countingInvalidator struct {
	calls    int
	failures int
	err      error
}

func (i *countingInvalidator) Invalidate(context.Context) error {
	i.calls++
	if i.err != nil || i.calls <= i.failures {
		return errors.New("cache down")
	}
	return nil
}

type sliceSource []kafka.EventMessage

func (s sliceSource) ConsumeEvents(ctx context.Context, handler func(context.Context, kafka.EventMessage) error) error {
	for _, event := range s {
		handler(ctx, event)
	}
	return nil
}

func TestCacheConsumer(t *testing.T) {
	tests := []struct {
		name      string
		events    []kafka.EventMessage
		wantCalls int
	}{
		{
			name:      "referral events invalidate",
			events:    []kafka.EventMessage{{Type: "referral.created"}, {Type: "referral.deleted"}},
			wantCalls: 2,
		},
		{
			name:      "other events are ignored",
			events:    []kafka.EventMessage{{Type: "user.signed_up"}},
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := &countingInvalidator{}
			c := NewCacheConsumer(sliceSource(tt.events), inv, observability.NewNopLogger())

			assert.NoError(t, c.Start(context.Background()))
			assert.Equal(t, tt.wantCalls, inv.calls)
		})
	}
}

func TestCacheConsumer_RetriesFailedInvalidation(t *testing.T) {
	tests := []struct {
		name      string
		inv       *countingInvalidator
		wantErr   bool
		wantCalls int
	}{
		{name: "recovers after transient failures", inv: &countingInvalidator{failures: 2}, wantCalls: 3},
		{name: "gives up after every attempt fails", inv: &countingInvalidator{err: errors.New("cache down")}, wantErr: true, wantCalls: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCacheConsumer(nil, tt.inv, observability.NewNopLogger())
			c.retryDelay = 0

			err := c.handle(context.Background(), kafka.EventMessage{Type: "referral.updated"})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, tt.inv.calls)
		})
	}
}
