package kiosk

import (
	"github.com/anakkallumkal/kiosk-core/core/live"
	"github.com/invopop/jsonschema"
)

// kioskTools declares the two business actions the model can invoke. The
// parameter schemas are reflected from the snapshot structs so the wire
// declaration and the dispatcher's decoding can never drift apart.
func kioskTools() []live.ToolDeclaration {
	reflector := jsonschema.Reflector{DoNotReference: true}

	return []live.ToolDeclaration{
		{
			Name:        toolConfirmBooking,
			Description: "Confirms a table booking with the provided details.",
			Parameters:  reflector.Reflect(&BookingDetails{}),
		},
		{
			Name:        toolConfirmOrder,
			Description: "Confirms a food delivery order.",
			Parameters:  reflector.Reflect(&OrderDetails{}),
		},
	}
}
