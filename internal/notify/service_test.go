package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ariefcatur/boutique-orders/internal/boutique"
	kafkax "github.com/ariefcatur/boutique-orders/internal/kafka"
	"github.com/ariefcatur/boutique-orders/internal/orders"
	"github.com/ariefcatur/boutique-orders/internal/redisx"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memDedup struct{ seen map[string]bool }

func (d *memDedup) First(_ context.Context, id string) (bool, error) {
	if d.seen[id] {
		return false, nil
	}
	d.seen[id] = true
	return true, nil
}

func (d *memDedup) Forget(_ context.Context, id string) error {
	delete(d.seen, id)
	return nil
}

type memInbox struct {
	got  map[int64][]redisx.Notification
	fail bool
}

func (b *memInbox) Push(_ context.Context, customerID int64, n redisx.Notification) error {
	if b.fail {
		return errors.New("redis down")
	}
	b.got[customerID] = append(b.got[customerID], n)
	return nil
}

func newService() (*Service, *memDedup, *memInbox) {
	d := &memDedup{seen: map[string]bool{}}
	in := &memInbox{got: map[int64][]redisx.Notification{}}
	return New(d, in, zap.NewNop()), d, in
}

func statusEvent(id string) kafkago.Message {
	env := orders.Envelope{
		EventID:      id,
		EventType:    orders.EventOrderStatusChanged,
		EventVersion: 1,
		OccurredAt:   time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
		Payload: kafkax.MustMarshal(orders.OrderStatusChangedPayload{
			OrderID: 4, CustomerID: 3, Kind: boutique.KindRent,
			From: boutique.StatusPending, To: boutique.StatusConfirmed,
		}),
	}
	return kafkago.Message{Topic: orders.TopicOrderStatusChanged, Value: kafkax.MustMarshal(env)}
}

func TestHandleStatusChanged(t *testing.T) {
	s, _, in := newService()
	require.NoError(t, s.Handle(context.Background(), statusEvent("e-1")))

	require.Len(t, in.got[3], 1)
	n := in.got[3][0]
	assert.Equal(t, int64(4), n.OrderID)
	assert.Equal(t, "Your rent order #4 is now Confirmed.", n.Message)
}

func TestHandleDeduplicates(t *testing.T) {
	s, _, in := newService()
	ctx := context.Background()
	require.NoError(t, s.Handle(ctx, statusEvent("e-1")))
	require.NoError(t, s.Handle(ctx, statusEvent("e-1")))
	assert.Len(t, in.got[3], 1)
}

func TestHandleReleasesEventOnPushFailure(t *testing.T) {
	s, d, in := newService()
	in.fail = true
	require.Error(t, s.Handle(context.Background(), statusEvent("e-1")))
	assert.False(t, d.seen["e-1"])

	in.fail = false
	require.NoError(t, s.Handle(context.Background(), statusEvent("e-1")))
	assert.Len(t, in.got[3], 1)
}

func TestHandleSkipsGarbageAndUnknownTypes(t *testing.T) {
	s, _, in := newService()
	ctx := context.Background()
	require.NoError(t, s.Handle(ctx, kafkago.Message{Value: []byte("not json")}))

	env := orders.Envelope{EventID: "x", EventType: "SomethingElse", Payload: []byte(`{}`)}
	require.NoError(t, s.Handle(ctx, kafkago.Message{Value: kafkax.MustMarshal(env)}))
	assert.Empty(t, in.got)
}

func TestBuildOrderPlaced(t *testing.T) {
	env := orders.Envelope{
		EventID:   "e-2",
		EventType: orders.EventOrderPlaced,
		Payload: kafkax.MustMarshal(orders.OrderPlacedPayload{
			OrderID: 9, CustomerID: 5, Kind: boutique.KindTailoring,
		}),
	}
	cid, n, ok, err := Build(env)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(5), cid)
	assert.Equal(t, "We received your tailoring order #9.", n.Message)
}
