package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	kiosk "github.com/anakkallumkal/kiosk-core/core"
	"github.com/anakkallumkal/kiosk-core/core/cafe"
)

const menuPaneWidth = 36

func (m model) View() string {
	if !m.ready {
		return "Starting kiosk..."
	}

	header := m.renderHeader()
	cards := m.renderCards()
	footer := m.styles.help.Render("c connect · d disconnect · q quit")

	left := m.viewport.View()
	right := m.renderMenu()
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	sections := []string{header, body}
	if cards != "" {
		sections = append(sections, cards)
	}
	sections = append(sections, footer)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m model) renderHeader() string {
	badge := m.styles.stateColor(m.state == kiosk.StateConnected, m.state == kiosk.StateError).
		Render(strings.ToUpper(m.state.String()))

	parts := []string{
		m.styles.title.Render("Anakkallumkal Cafe"),
		badge,
	}
	if m.isSpeaking {
		parts = append(parts, m.styles.speaking.Render("● Babu is speaking"))
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, strings.Join(parts, "  "))
}

func (m model) renderMenu() string {
	var b strings.Builder
	b.WriteString(m.styles.menuHeader.Render("Menu"))
	b.WriteString("\n")

	category := ""
	for _, item := range cafe.Menu() {
		if item.Category != category {
			category = item.Category
			b.WriteString("\n")
			b.WriteString(m.styles.menuHeader.Render(category + "s"))
			b.WriteString("\n")
		}
		b.WriteString(m.styles.menuItem.Render(item.Name))
		b.WriteString(" ")
		b.WriteString(m.styles.menuPrice.Render(fmt.Sprintf("Rs. %d", item.Price)))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Width(menuPaneWidth).PaddingLeft(2).Render(b.String())
}

func (m model) renderCards() string {
	var cards []string

	if booking := m.booking; booking != nil {
		lines := []string{
			m.styles.cardTitle.Render("Booking confirmed"),
			fmt.Sprintf("%s at %s", booking.Date, booking.Time),
			fmt.Sprintf("%d people", booking.People),
		}
		if booking.SpecialRequests != "" {
			lines = append(lines, booking.SpecialRequests)
		}
		cards = append(cards, m.styles.card.Render(strings.Join(lines, "\n")))
	}

	if order := m.order; order != nil {
		lines := []string{
			m.styles.cardTitle.Render("Order confirmed"),
			strings.Join(order.Items, ", "),
			order.Address,
		}
		if order.Phone != "" {
			lines = append(lines, order.Phone)
		}
		cards = append(cards, m.styles.card.Render(strings.Join(lines, "\n")))
	}

	if len(cards) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m model) renderLog() string {
	if len(m.entries) == 0 {
		return m.styles.logSystem.Render("Press c to connect and start talking.")
	}

	width := m.viewport.Width
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	for _, entry := range m.entries {
		line := fmt.Sprintf("[%s] %s", entry.Timestamp.Format("15:04:05"), entry.Message)
		b.WriteString(m.entryStyle(entry).Render(wordwrap.String(line, width)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) entryStyle(entry kiosk.LogEntry) lipgloss.Style {
	switch {
	case entry.Severity == kiosk.SeverityWarning:
		return m.styles.logWarning
	case entry.Severity == kiosk.SeveritySuccess:
		return m.styles.logSuccess
	case entry.Sender == kiosk.SenderUser:
		return m.styles.logUser
	case entry.Sender == kiosk.SenderAssistant:
		return m.styles.logAssistant
	default:
		return m.styles.logSystem
	}
}

// logPaneSize reserves room for the header, cards, and footer around the
// scrolling transcript.
func (m model) logPaneSize() (width, height int) {
	width = m.width - menuPaneWidth
	if width < 20 {
		width = 20
	}
	height = m.height - 8
	if height < 5 {
		height = 5
	}
	return width, height
}
