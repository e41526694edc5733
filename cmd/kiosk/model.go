package main

import (
	"context"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	kiosk "github.com/anakkallumkal/kiosk-core/core"
)

type stateChangedMsg struct{ state kiosk.ConnectionState }
type logAppendedMsg struct{ entry kiosk.LogEntry }
type speakingChangedMsg struct{ isSpeaking bool }
type bookingConfirmedMsg struct{ booking kiosk.BookingDetails }
type orderConfirmedMsg struct{ order kiosk.OrderDetails }
type connectFinishedMsg struct{ err error }

type model struct {
	session *kiosk.Session

	state      kiosk.ConnectionState
	isSpeaking bool
	entries    []kiosk.LogEntry
	booking    *kiosk.BookingDetails
	order      *kiosk.OrderDetails

	viewport viewport.Model
	styles   styles
	width    int
	height   int
	ready    bool
}

func newModel(session *kiosk.Session) model {
	return model{
		session: session,
		state:   kiosk.StateDisconnected,
		styles:  newStyles(),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logWidth, logHeight := m.logPaneSize()
		if !m.ready {
			m.viewport = viewport.New(logWidth, logHeight)
			m.ready = true
		} else {
			m.viewport.Width = logWidth
			m.viewport.Height = logHeight
		}
		m.viewport.SetContent(m.renderLog())
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.session.Disconnect()
			return m, tea.Quit
		case "c":
			if m.state == kiosk.StateDisconnected || m.state == kiosk.StateError {
				return m, connectCmd(m.session)
			}
			return m, nil
		case "d":
			m.session.Disconnect()
			m.entries = nil
			m.booking = nil
			m.order = nil
			if m.ready {
				m.viewport.SetContent(m.renderLog())
			}
			return m, nil
		}

	case stateChangedMsg:
		m.state = msg.state
		return m, nil

	case logAppendedMsg:
		m.entries = append(m.entries, msg.entry)
		if m.ready {
			m.viewport.SetContent(m.renderLog())
			m.viewport.GotoBottom()
		}
		return m, nil

	case speakingChangedMsg:
		m.isSpeaking = msg.isSpeaking
		return m, nil

	case bookingConfirmedMsg:
		booking := msg.booking
		m.booking = &booking
		return m, nil

	case orderConfirmedMsg:
		order := msg.order
		m.order = &order
		return m, nil

	case connectFinishedMsg:
		// Failures are already reported through the session log.
		return m, nil
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func connectCmd(session *kiosk.Session) tea.Cmd {
	return func() tea.Msg {
		return connectFinishedMsg{err: session.Connect(context.Background())}
	}
}
