package kiosk

import (
	"strings"
	"testing"

	"github.com/anakkallumkal/kiosk-core/core/live"
)

func TestConfirmBookingRecordsDetails(t *testing.T) {
	log := newSessionLog()
	dispatcher := newToolDispatcher(log)

	var confirmed *BookingDetails
	dispatcher.SetCallbacks(func(booking BookingDetails) { confirmed = &booking }, nil)

	result := dispatcher.Handle(live.ToolCallRequest{
		ID:   "call-1",
		Name: "confirmBooking",
		Args: map[string]any{
			"date":            "2026-09-05",
			"time":            "7 PM",
			"people":          4,
			"specialRequests": "Karimeen Pollichathu reserved",
		},
	})

	if result.ID != "call-1" || result.Name != "confirmBooking" {
		t.Fatalf("expected result to echo the call identity, got %+v", result)
	}
	if result.Response["status"] != "confirmed" {
		t.Fatalf("expected status confirmed, got %v", result.Response["status"])
	}

	booking := dispatcher.ActiveBooking()
	if booking == nil {
		t.Fatal("expected an active booking")
	}
	if booking.Date != "2026-09-05" || booking.Time != "7 PM" || booking.People != 4 {
		t.Fatalf("expected booking details to be recorded, got %+v", booking)
	}
	if confirmed == nil || confirmed.People != 4 {
		t.Fatalf("expected the confirmation callback to fire, got %+v", confirmed)
	}

	entries := log.Entries()
	if len(entries) != 1 || entries[0].Severity != SeveritySuccess {
		t.Fatalf("expected one success log entry, got %+v", entries)
	}
	if !strings.Contains(entries[0].Message, "Table reserved for 4") {
		t.Fatalf("expected reservation message, got %q", entries[0].Message)
	}
}

func TestConfirmBookingRejectsMissingFields(t *testing.T) {
	dispatcher := newToolDispatcher(newSessionLog())

	callbackFired := false
	dispatcher.SetCallbacks(func(BookingDetails) { callbackFired = true }, nil)

	result := dispatcher.Handle(live.ToolCallRequest{
		ID:   "call-2",
		Name: "confirmBooking",
		Args: map[string]any{"date": "2026-09-05", "time": "7 PM"},
	})

	if result.Response["status"] != "invalid" {
		t.Fatalf("expected status invalid, got %v", result.Response["status"])
	}
	if result.Response["error"] == "" {
		t.Fatal("expected an error description in the result")
	}
	if dispatcher.ActiveBooking() != nil {
		t.Fatal("expected no booking to be recorded")
	}
	if callbackFired {
		t.Fatal("expected no confirmation callback for a rejected booking")
	}
}

func TestConfirmOrderRecordsDetailsAndDeliveryTime(t *testing.T) {
	log := newSessionLog()
	dispatcher := newToolDispatcher(log)

	var confirmed *OrderDetails
	dispatcher.SetCallbacks(nil, func(order OrderDetails) { confirmed = &order })

	result := dispatcher.Handle(live.ToolCallRequest{
		ID:   "call-3",
		Name: "confirmOrder",
		Args: map[string]any{
			"items":   []any{"Kerala Sadhya", "Kulukki Sarbath"},
			"address": "Pala, Kottayam",
			"phone":   "9876543210",
		},
	})

	if result.Response["status"] != "confirmed" {
		t.Fatalf("expected status confirmed, got %v", result.Response["status"])
	}
	if result.Response["deliveryTime"] != "45 mins" {
		t.Fatalf("expected delivery time in the result, got %v", result.Response["deliveryTime"])
	}

	order := dispatcher.ActiveOrder()
	if order == nil {
		t.Fatal("expected an active order")
	}
	if len(order.Items) != 2 || order.Address != "Pala, Kottayam" || order.Phone != "9876543210" {
		t.Fatalf("expected order details to be recorded, got %+v", order)
	}
	if confirmed == nil || len(confirmed.Items) != 2 {
		t.Fatalf("expected the confirmation callback to fire, got %+v", confirmed)
	}
}

func TestConfirmOrderRejectsEmptyItems(t *testing.T) {
	dispatcher := newToolDispatcher(newSessionLog())

	result := dispatcher.Handle(live.ToolCallRequest{
		ID:   "call-4",
		Name: "confirmOrder",
		Args: map[string]any{"items": []any{}, "address": "Pala"},
	})

	if result.Response["status"] != "invalid" {
		t.Fatalf("expected status invalid, got %v", result.Response["status"])
	}
	if dispatcher.ActiveOrder() != nil {
		t.Fatal("expected no order to be recorded")
	}
}

func TestUnknownToolStillReturnsResult(t *testing.T) {
	dispatcher := newToolDispatcher(newSessionLog())

	result := dispatcher.Handle(live.ToolCallRequest{ID: "call-5", Name: "cancelBooking"})

	if result.ID != "call-5" || result.Name != "cancelBooking" {
		t.Fatalf("expected result to echo the call identity, got %+v", result)
	}
	if len(result.Response) != 0 {
		t.Fatalf("expected an empty response for an unknown tool, got %v", result.Response)
	}
}

func TestActiveBookingReturnsIndependentCopy(t *testing.T) {
	dispatcher := newToolDispatcher(newSessionLog())

	dispatcher.Handle(live.ToolCallRequest{
		Name: "confirmBooking",
		Args: map[string]any{"date": "2026-09-05", "time": "7 PM", "people": 2},
	})

	snapshot := dispatcher.ActiveBooking()
	snapshot.People = 99

	if dispatcher.ActiveBooking().People != 2 {
		t.Fatal("expected mutations of the snapshot not to affect the dispatcher")
	}
}

func TestResetDiscardsConfirmations(t *testing.T) {
	dispatcher := newToolDispatcher(newSessionLog())

	dispatcher.Handle(live.ToolCallRequest{
		Name: "confirmBooking",
		Args: map[string]any{"date": "2026-09-05", "time": "7 PM", "people": 2},
	})
	dispatcher.Handle(live.ToolCallRequest{
		Name: "confirmOrder",
		Args: map[string]any{"items": []any{"Beef Roast"}, "address": "Pala"},
	})

	dispatcher.Reset()

	if dispatcher.ActiveBooking() != nil || dispatcher.ActiveOrder() != nil {
		t.Fatal("expected reset to discard the active booking and order")
	}
}
