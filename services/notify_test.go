package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Order", capitalize("order"))
	assert.Equal(t, "Payment", capitalize("payment"))
	assert.Equal(t, "", capitalize(""))
}

func TestNilEventPublisherIsSafe(t *testing.T) {
	var events *EventPublisher

	// A missing broker must never take a request down with it.
	assert.NotPanics(t, func() {
		events.Publish("order.created", map[string]string{"order_id": "x"})
		events.Close()
	})
}
