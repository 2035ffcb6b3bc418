package ws

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/metrics"
	"github.com/AgusWeb1999/ChooseYourWorker-sub001/internal/services/dto"
)

func newTestHub() *Hub {
	return NewHub(metrics.NewCollector(prometheus.NewRegistry()))
}

func recvEvent(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case event, ok := <-sub.C:
		require.True(t, ok, "channel closed unexpectedly")
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestHub_PublishDeliversToAllSubscribers(t *testing.T) {
	hub := newTestHub()
	subA := hub.Subscribe("conv-1", "user-a")
	subB := hub.Subscribe("conv-1", "user-b")
	defer subA.Close()
	defer subB.Close()

	hub.Publish("conv-1", dto.MessageResponse{ID: "m1", Content: "hola"})

	for _, sub := range []*Subscription{subA, subB} {
		event := recvEvent(t, sub)
		assert.Equal(t, "message", event.Type)
		assert.Equal(t, "m1", event.Message.ID)
	}
}

func TestHub_RedeliveryDeduplicated(t *testing.T) {
	hub := newTestHub()
	sub := hub.Subscribe("conv-1", "user-a")
	defer sub.Close()

	message := dto.MessageResponse{ID: "m1", Content: "hola"}
	hub.Publish("conv-1", message)
	hub.Publish("conv-1", message)
	hub.Publish("conv-1", dto.MessageResponse{ID: "m2", Content: "otra"})

	first := recvEvent(t, sub)
	second := recvEvent(t, sub)
	assert.Equal(t, "m1", first.Message.ID)
	assert.Equal(t, "m2", second.Message.ID, "повтор m1 не должен доставляться")

	select {
	case event := <-sub.C:
		t.Fatalf("unexpected extra event: %+v", event)
	default:
	}
}

func TestHub_OtherConversationNotDelivered(t *testing.T) {
	hub := newTestHub()
	sub := hub.Subscribe("conv-1", "user-a")
	defer sub.Close()

	hub.Publish("conv-2", dto.MessageResponse{ID: "m1"})

	select {
	case event := <-sub.C:
		t.Fatalf("event leaked across conversations: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	hub := newTestHub()
	sub := hub.Subscribe("conv-1", "user-a")

	sub.Close()
	sub.Close()

	_, ok := <-sub.C
	assert.False(t, ok, "channel must be closed")

	// Публикация после закрытия не должна паниковать
	hub.Publish("conv-1", dto.MessageResponse{ID: "m1"})
}

func TestHub_PublishAfterCloseSkipsSubscriber(t *testing.T) {
	hub := newTestHub()
	keep := hub.Subscribe("conv-1", "user-a")
	gone := hub.Subscribe("conv-1", "user-b")
	defer keep.Close()

	gone.Close()
	hub.Publish("conv-1", dto.MessageResponse{ID: "m1"})

	event := recvEvent(t, keep)
	assert.Equal(t, "m1", event.Message.ID)
}

// Публикация и закрытие подписки бегут с разных горутин: Publish с
// HTTP-обработчика, Close из teardown соединения. Снимок подписок,
// взятый до Close, не должен приводить к записи в закрытый канал.
func TestHub_ConcurrentPublishAndClose(t *testing.T) {
	hub := newTestHub()

	for i := 0; i < 500; i++ {
		sub := hub.Subscribe("conv-1", "user-a")

		done := make(chan struct{})
		go func() {
			for range sub.C {
			}
			close(done)
		}()

		var wg sync.WaitGroup
		for p := 0; p < 4; p++ {
			wg.Add(1)
			go func(p int) {
				defer wg.Done()
				hub.Publish("conv-1", dto.MessageResponse{ID: fmt.Sprintf("m-%d-%d", i, p)})
			}(p)
		}
		go sub.Close()

		wg.Wait()
		sub.Close()
		<-done
	}
}
