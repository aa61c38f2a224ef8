package services

import (
	"testing"
)

func TestEventHub_SubscribePublish(t *testing.T) {
	hub := NewEventHub()

	ch := hub.Subscribe("client-1")
	if hub.ClientCount() != 1 {
		t.Errorf("ClientCount = %d, expected 1", hub.ClientCount())
	}

	hub.Publish(EntityEvent{Entity: "task", Action: "updated", ID: 7, ProjectID: 2})

	select {
	case event := <-ch:
		if event.Entity != "task" || event.Action != "updated" || event.ID != 7 {
			t.Errorf("received %+v", event)
		}
	default:
		t.Fatal("subscriber should have received the event")
	}
}

func TestEventHub_Unsubscribe(t *testing.T) {
	hub := NewEventHub()

	ch := hub.Subscribe("client-1")
	hub.Unsubscribe("client-1")

	if hub.ClientCount() != 0 {
		t.Errorf("ClientCount = %d, expected 0", hub.ClientCount())
	}
	if _, open := <-ch; open {
		t.Error("channel should be closed after unsubscribe")
	}

	// Unsubscribing twice is a no-op.
	hub.Unsubscribe("client-1")
}

func TestEventHub_SlowClientDoesNotBlock(t *testing.T) {
	hub := NewEventHub()
	hub.Subscribe("slow")

	// The subscriber buffer holds 100 events; publishing past that must
	// drop rather than block.
	for i := 0; i < 150; i++ {
		hub.Publish(EntityEvent{Entity: "task", Action: "updated", ID: uint(i)})
	}
}
