package network

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tactics-server/pkg/api"
	"tactics-server/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Silence()
	os.Exit(m.Run())
}

func TestBroadcaster_FanOut(t *testing.T) {
	b := NewBroadcaster()
	a := b.Register("a")
	c := b.Register("c")

	b.Broadcast(api.Event{Type: "ROUND_START", Seq: 1})
	b.SendTo("c", api.Event{Type: "PREVIEW", Seq: 2})

	require.Len(t, a, 1)
	require.Len(t, c, 2)
	assert.Equal(t, "ROUND_START", (<-a).Type)
	assert.Equal(t, 1, (<-c).Seq)
	assert.Equal(t, "PREVIEW", (<-c).Type)
	assert.Equal(t, 2, b.SubscriberCount())
}

func TestBroadcaster_Unregister(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("a")
	b.Unregister("a")

	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, b.SubscriberCount())

	// Sending to a gone session is a no-op.
	b.SendTo("a", api.Event{Type: "HIT"})
}

func TestBroadcaster_ReRegisterClosesOld(t *testing.T) {
	b := NewBroadcaster()
	old := b.Register("a")
	fresh := b.Register("a")

	_, open := <-old
	assert.False(t, open)

	b.SendTo("a", api.Event{Type: "HIT"})
	assert.Len(t, fresh, 1)
}

func TestBroadcaster_FullChannelDrops(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Register("slow")
	for i := 0; i < subscriberBuffer+10; i++ {
		b.Broadcast(api.Event{Seq: i})
	}
	assert.Len(t, ch, subscriberBuffer)
}
