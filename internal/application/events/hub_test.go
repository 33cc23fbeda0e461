package events_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pines-admin-api/internal/application/events"
)

func TestHub_PublicaSoloAlUsuario(t *testing.T) {
	h := events.NewHub(4)
	a, cancelA := h.Subscribe("u1")
	defer cancelA()
	b, cancelB := h.Subscribe("u2")
	defer cancelB()

	n := h.Publish(events.Event{Type: events.TypeBalanceChanged, UserID: "u1"})
	assert.Equal(t, 1, n)

	ev := <-a
	assert.Equal(t, events.TypeBalanceChanged, ev.Type)
	assert.False(t, ev.At.IsZero())
	assert.Empty(t, b)
}

func TestHub_CancelCierraYDesuscribe(t *testing.T) {
	h := events.NewHub(1)
	ch, cancel := h.Subscribe("u1")
	require.Equal(t, 1, h.Subscribers("u1"))

	cancel()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, h.Subscribers("u1"))
	assert.Zero(t, h.Publish(events.Event{UserID: "u1"}))
}

func TestHub_PublicarNoBloqueaConBufferLleno(t *testing.T) {
	h := events.NewHub(1)
	_, cancel := h.Subscribe("u1")
	defer cancel()

	assert.Equal(t, 1, h.Publish(events.Event{UserID: "u1"}))
	assert.Equal(t, 0, h.Publish(events.Event{UserID: "u1"}), "el segundo evento se descarta")
}

func TestHub_PinsIssuedLlevaOrdenYCantidad(t *testing.T) {
	h := events.NewHub(2)
	ch, cancel := h.Subscribe("u1")
	defer cancel()

	h.PinsIssued("u1", "ord-1", 7)

	ev := <-ch
	assert.Equal(t, events.TypePinsIssued, ev.Type)
	assert.Equal(t, "ord-1", ev.Data["order_id"])
	assert.Equal(t, 7, ev.Data["count"])
}
