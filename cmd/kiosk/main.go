// Command kiosk runs the Anakkallumkal Cafe voice kiosk in the terminal:
// it wires the default audio device and the Gemini live transport into a
// session and drives it from a small TUI.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	kiosk "github.com/anakkallumkal/kiosk-core/core"
	"github.com/anakkallumkal/kiosk-core/core/audio/miniaudio"
	"github.com/anakkallumkal/kiosk-core/core/audio/portaudio"
	"github.com/anakkallumkal/kiosk-core/core/cafe"
	"github.com/anakkallumkal/kiosk-core/core/live/gemini"
)

func main() {
	usePortaudio := flag.Bool("portaudio", false, "capture the microphone through PortAudio instead of the default backend")
	ephemeralTokens := flag.Bool("ephemeral-tokens", false, "authenticate the live session with short-lived tokens instead of the raw API key")
	flag.Parse()

	var clientOpts []gemini.ClientOption
	if *ephemeralTokens {
		clientOpts = append(clientOpts, gemini.WithEphemeralTokens())
	}

	sessionOpts := []kiosk.SessionOption{
		kiosk.WithLiveClient(gemini.NewClient(clientOpts...)),
		kiosk.WithAudioDevice(miniaudio.NewClient()),
		kiosk.WithInstruction(cafe.SystemInstruction),
	}

	if *usePortaudio {
		capture, err := portaudio.NewClient(0)
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to open PortAudio capture:", err)
			os.Exit(1)
		}
		defer capture.Close()
		sessionOpts = append(sessionOpts, kiosk.WithCaptureDevice(capture))
	}

	var program *tea.Program

	// Session callbacks fire on transport and device goroutines; they are
	// forwarded into the program's message loop instead of touching the
	// model directly.
	session := kiosk.NewSession(append(sessionOpts,
		kiosk.WithStateChangedCallback(func(state kiosk.ConnectionState) {
			program.Send(stateChangedMsg{state: state})
		}),
		kiosk.WithLogCallback(func(entry kiosk.LogEntry) {
			program.Send(logAppendedMsg{entry: entry})
		}),
		kiosk.WithSpeakingStateChangedCallback(func(isSpeaking bool) {
			program.Send(speakingChangedMsg{isSpeaking: isSpeaking})
		}),
		kiosk.WithBookingConfirmedCallback(func(booking kiosk.BookingDetails) {
			program.Send(bookingConfirmedMsg{booking: booking})
		}),
		kiosk.WithOrderConfirmedCallback(func(order kiosk.OrderDetails) {
			program.Send(orderConfirmedMsg{order: order})
		}),
	)...)
	defer session.Disconnect()

	program = tea.NewProgram(newModel(session), tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "failed to run kiosk:", err)
		os.Exit(1)
	}
}
