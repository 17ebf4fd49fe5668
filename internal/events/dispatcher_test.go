package events_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/community-service/internal/events"
)

func TestInMemoryDispatcher(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to subscribers of the event type", func(t *testing.T) {
		dispatcher := events.NewInMemoryDispatcher()

		var got []events.Event
		dispatcher.Subscribe(events.EventLoginSucceeded, func(_ context.Context, event events.Event) error {
			got = append(got, event)
			return nil
		})

		event := events.Event{ID: "e1", Type: events.EventLoginSucceeded, Timestamp: time.Now()}
		require.NoError(t, dispatcher.Publish(ctx, event))
		require.Len(t, got, 1)
		assert.Equal(t, "e1", got[0].ID)
	})

	t.Run("other event types are not delivered", func(t *testing.T) {
		dispatcher := events.NewInMemoryDispatcher()

		called := false
		dispatcher.Subscribe(events.EventLoginFailed, func(context.Context, events.Event) error {
			called = true
			return nil
		})

		require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventLoginSucceeded}))
		assert.False(t, called)
	})

	t.Run("a failing handler does not fail publish or starve others", func(t *testing.T) {
		dispatcher := events.NewInMemoryDispatcher()

		dispatcher.Subscribe(events.EventPostHidden, func(context.Context, events.Event) error {
			return errors.New("audit sink down")
		})
		delivered := false
		dispatcher.Subscribe(events.EventPostHidden, func(context.Context, events.Event) error {
			delivered = true
			return nil
		})

		assert.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventPostHidden}))
		assert.True(t, delivered)
	})
}
