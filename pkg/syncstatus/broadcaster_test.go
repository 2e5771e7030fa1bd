package syncstatus

import (
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeDeliversCurrentStatusImmediately(t *testing.T) {
	b := NewBroadcaster()
	b.Publish(StateSyncing, "working")

	var got []Status
	unsub := b.Subscribe(func(s Status) {
		got = append(got, s)
	})
	defer unsub()

	require.Len(t, got, 1)
	assert.Equal(t, StateSyncing, got[0].State)
	assert.Equal(t, "working", got[0].Message)
}

func TestPublishNotifiesInSubscriptionOrder(t *testing.T) {
	b := NewBroadcaster()

	var order []string
	unsub1 := b.Subscribe(func(s Status) {
		if s.State == StateSuccess {
			order = append(order, "first")
		}
	})
	defer unsub1()
	unsub2 := b.Subscribe(func(s Status) {
		if s.State == StateSuccess {
			order = append(order, "second")
		}
	})
	defer unsub2()

	b.Publish(StateSuccess, "done")

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBroadcaster()

	count := 0
	unsub := b.Subscribe(func(s Status) { count++ })
	unsub()
	unsub() // second call is a no-op

	b.Publish(StateError, "boom")

	assert.Equal(t, 1, count, "only the immediate delivery should have happened")
}

func TestSubscribeDuringPublishKeepsEmissionOrder(t *testing.T) {
	b := NewBroadcaster()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			b.Publish(StateSyncing, strconv.Itoa(i))
		}
	}()

	// 订阅与发布并发时，首次投递的初始状态不能晚于更新的状态到达
	for j := 0; j < 20; j++ {
		var mu sync.Mutex
		var seen []int
		unsub := b.Subscribe(func(s Status) {
			idx := -1
			if s.Message != "" {
				idx, _ = strconv.Atoi(s.Message)
			}
			mu.Lock()
			seen = append(seen, idx)
			mu.Unlock()
		})

		mu.Lock()
		for k := 1; k < len(seen); k++ {
			assert.Greater(t, seen[k], seen[k-1], "subscriber saw statuses out of publish order")
		}
		mu.Unlock()
		unsub()
	}

	wg.Wait()
}

func TestPublishStampsTimestamp(t *testing.T) {
	b := NewBroadcaster()
	b.Publish(StateError, "boom")

	got := b.Current()
	assert.Equal(t, StateError, got.State)
	assert.False(t, got.Timestamp.IsZero())
}

func TestCompareAndRevert(t *testing.T) {
	b := NewBroadcaster()

	gen := b.Publish(StateSuccess, "synced")
	require.True(t, b.CompareAndRevert(gen))
	assert.Equal(t, StateIdle, b.Current().State)

	gen = b.Publish(StateSuccess, "synced")
	b.Publish(StateSyncing, "new work arrived")
	assert.False(t, b.CompareAndRevert(gen), "newer status must not be reverted")
	assert.Equal(t, StateSyncing, b.Current().State)
}
