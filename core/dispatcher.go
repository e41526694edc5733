package kiosk

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/anakkallumkal/kiosk-core/core/live"
	"github.com/jinzhu/copier"
)

const (
	toolConfirmBooking = "confirmBooking"
	toolConfirmOrder   = "confirmOrder"

	orderDeliveryTime = "45 mins"
)

// BookingDetails is an immutable snapshot of one confirmed table booking.
// Only one booking is active at a time; the latest confirmation wins.
type BookingDetails struct {
	Date            string `json:"date" jsonschema_description:"Date of booking"`
	Time            string `json:"time" jsonschema_description:"Time of booking"`
	People          int    `json:"people" jsonschema_description:"Number of people"`
	SpecialRequests string `json:"specialRequests,omitempty" jsonschema_description:"Reserved dishes or allergy notes"`
}

// OrderDetails is an immutable snapshot of one confirmed delivery order.
// Only one order is active at a time; the latest confirmation wins.
type OrderDetails struct {
	Items    []string `json:"items" jsonschema_description:"List of food items ordered"`
	Address  string   `json:"address" jsonschema_description:"Delivery address"`
	Landmark string   `json:"landmark,omitempty" jsonschema_description:"Nearby landmark"`
	Phone    string   `json:"phone,omitempty" jsonschema_description:"Contact number"`
}

// toolDispatcher interprets structured function calls arriving over the
// session and always produces exactly one result per request, even for
// unknown tools, so the remote model's turn never stalls.
type toolDispatcher struct {
	mu      sync.Mutex
	booking *BookingDetails
	order   *OrderDetails

	log *sessionLog

	onBookingConfirmed func(booking BookingDetails)
	onOrderConfirmed   func(order OrderDetails)
}

func newToolDispatcher(log *sessionLog) *toolDispatcher {
	return &toolDispatcher{
		log:                log,
		onBookingConfirmed: func(BookingDetails) {},
		onOrderConfirmed:   func(OrderDetails) {},
	}
}

func (d *toolDispatcher) SetCallbacks(onBookingConfirmed func(BookingDetails), onOrderConfirmed func(OrderDetails)) {
	if d == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if onBookingConfirmed != nil {
		d.onBookingConfirmed = onBookingConfirmed
	}
	if onOrderConfirmed != nil {
		d.onOrderConfirmed = onOrderConfirmed
	}
}

// Handle executes one tool call. Unknown names return an empty result
// object; missing required fields return a status "invalid" result instead
// of being accepted silently.
func (d *toolDispatcher) Handle(call live.ToolCallRequest) live.ToolCallResult {
	result := live.ToolCallResult{ID: call.ID, Name: call.Name, Response: map[string]any{}}

	switch call.Name {
	case toolConfirmBooking:
		result.Response = d.confirmBooking(call.Args)
	case toolConfirmOrder:
		result.Response = d.confirmOrder(call.Args)
	}

	return result
}

func (d *toolDispatcher) confirmBooking(args map[string]any) map[string]any {
	var booking BookingDetails
	if err := decodeArguments(args, &booking); err != nil {
		return invalidResult(err)
	}

	if booking.Date == "" || booking.Time == "" || booking.People <= 0 {
		return invalidResult(fmt.Errorf("booking requires date, time and people"))
	}

	d.mu.Lock()
	d.booking = &booking
	onConfirmed := d.onBookingConfirmed
	d.mu.Unlock()

	d.log.Append(SenderSystem, SeveritySuccess,
		fmt.Sprintf("Table reserved for %d on %s at %s.", booking.People, booking.Date, booking.Time))
	onConfirmed(booking)

	return map[string]any{"status": "confirmed"}
}

func (d *toolDispatcher) confirmOrder(args map[string]any) map[string]any {
	var order OrderDetails
	if err := decodeArguments(args, &order); err != nil {
		return invalidResult(err)
	}

	if len(order.Items) == 0 || order.Address == "" {
		return invalidResult(fmt.Errorf("order requires at least one item and an address"))
	}

	d.mu.Lock()
	d.order = &order
	onConfirmed := d.onOrderConfirmed
	d.mu.Unlock()

	d.log.Append(SenderSystem, SeveritySuccess,
		fmt.Sprintf("Order placed for %s.", order.Address))
	onConfirmed(order)

	return map[string]any{"status": "confirmed", "deliveryTime": orderDeliveryTime}
}

// ActiveBooking returns a copy of the active booking, or nil when none has
// been confirmed.
func (d *toolDispatcher) ActiveBooking() *BookingDetails {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.booking == nil {
		return nil
	}
	booking := BookingDetails{}
	copier.Copy(&booking, d.booking)
	return &booking
}

// ActiveOrder returns a copy of the active order, or nil when none has been
// confirmed.
func (d *toolDispatcher) ActiveOrder() *OrderDetails {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.order == nil {
		return nil
	}
	order := OrderDetails{}
	copier.Copy(&order, d.order)
	return &order
}

// Reset discards the active booking and order so the next session starts
// clean.
func (d *toolDispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.booking = nil
	d.order = nil
}

func decodeArguments(args map[string]any, target any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("failed to encode tool arguments: %w", err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode tool arguments: %w", err)
	}
	return nil
}

func invalidResult(err error) map[string]any {
	return map[string]any{"status": "invalid", "error": strings.TrimSpace(err.Error())}
}
