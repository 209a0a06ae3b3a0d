package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDeliversToSubscribersInOrder(t *testing.T) {
	d := NewInMemoryDispatcher(nil)
	var got []string
	d.Subscribe(EventContactAdded, func(_ context.Context, e Event) error {
		got = append(got, "first:"+e.Actor.ID)
		return errors.New("ignored")
	})
	d.Subscribe(EventContactAdded, func(_ context.Context, e Event) error {
		got = append(got, "second:"+e.Actor.ID)
		return nil
	})
	d.Subscribe(EventSessionEnded, func(context.Context, Event) error {
		got = append(got, "wrong")
		return nil
	})

	err := d.Publish(context.Background(), New(EventContactAdded, "s1", Actor{ID: "1"}, nil))
	require.NoError(t, err)
	assert.Equal(t, []string{"first:1", "second:1"}, got)
}

func TestNewStampsIdentity(t *testing.T) {
	a := New(EventSessionStarted, "s1", Actor{ID: "1"}, nil)
	b := New(EventSessionStarted, "s1", Actor{ID: "1"}, nil)
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.Timestamp.IsZero())
}
