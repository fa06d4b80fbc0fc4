package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBus_DeliversToExactSubscription(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe("balance", "acc-1", 4)
	defer cancel()

	change := Change{EntityType: "balance", ID: "acc-1", Op: OpUpdated, OccurredAt: time.Now()}
	assert.NoError(t, bus.Publish(context.Background(), change))

	select {
	case got := <-ch:
		assert.Equal(t, change, got)
	default:
		t.Fatal("expected a buffered change")
	}
}

func TestBus_ScopesByRecord(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe("balance", "acc-1", 4)
	defer cancel()

	assert.NoError(t, bus.Publish(context.Background(), Change{EntityType: "balance", ID: "acc-2", Op: OpUpdated}))
	assert.NoError(t, bus.Publish(context.Background(), Change{EntityType: "transaction", ID: "acc-1", Op: OpCreated}))

	select {
	case got := <-ch:
		t.Fatalf("change for another record delivered: %+v", got)
	default:
	}
}

func TestBus_EmptyIDReceivesWholeEntityType(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe("transaction", "", 4)
	defer cancel()

	assert.NoError(t, bus.Publish(context.Background(), Change{EntityType: "transaction", ID: "t1", Op: OpCreated}))
	assert.NoError(t, bus.Publish(context.Background(), Change{EntityType: "transaction", ID: "t2", Op: OpDeleted}))
	assert.NoError(t, bus.Publish(context.Background(), Change{EntityType: "account", ID: "a1", Op: OpCreated}))

	var got []Change
	for done := false; !done; {
		select {
		case c := <-ch:
			got = append(got, c)
		default:
			done = true
		}
	}
	assert.Len(t, got, 2)
}

func TestBus_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe("balance", "acc-1", 1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 10; i++ {
			_ = bus.Publish(context.Background(), Change{EntityType: "balance", ID: "acc-1", Op: OpUpdated})
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
	assert.Len(t, ch, 1)
}

func TestBus_CancelClosesChannel(t *testing.T) {
	bus := NewBus()
	ch, cancel := bus.Subscribe("account", "a1", 1)

	cancel()
	cancel() // second call is a no-op

	_, open := <-ch
	assert.False(t, open)

	// publishing after cancel must not panic or deliver
	assert.NoError(t, bus.Publish(context.Background(), Change{EntityType: "account", ID: "a1", Op: OpDeleted}))
}

type failingPublisher struct{ err error }

func (f failingPublisher) Publish(ctx context.Context, change Change) error { return f.err }

func TestMulti_JoinsErrors(t *testing.T) {
	boom := errors.New("broker down")
	m := Multi{Nop{}, failingPublisher{err: boom}, Nop{}}

	err := m.Publish(context.Background(), Change{EntityType: "balance", ID: "x", Op: OpUpdated})
	assert.ErrorIs(t, err, boom)
}

func TestMulti_AllHealthy(t *testing.T) {
	m := Multi{Nop{}, Nop{}}
	assert.NoError(t, m.Publish(context.Background(), Change{EntityType: "balance", ID: "x", Op: OpUpdated}))
}
