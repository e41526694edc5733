package main

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title        lipgloss.Style
	stateBadge   lipgloss.Style
	speaking     lipgloss.Style
	menuHeader   lipgloss.Style
	menuItem     lipgloss.Style
	menuPrice    lipgloss.Style
	logUser      lipgloss.Style
	logAssistant lipgloss.Style
	logSystem    lipgloss.Style
	logSuccess   lipgloss.Style
	logWarning   lipgloss.Style
	card         lipgloss.Style
	cardTitle    lipgloss.Style
	help         lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		stateBadge:   lipgloss.NewStyle().Bold(true).Padding(0, 1),
		speaking:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213")),
		menuHeader:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		menuItem:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		menuPrice:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		logUser:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		logAssistant: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		logSystem:    lipgloss.NewStyle().Faint(true),
		logSuccess:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		logWarning:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		card:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		cardTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		help:         lipgloss.NewStyle().Faint(true),
	}
}

func (s styles) stateColor(connected, failed bool) lipgloss.Style {
	switch {
	case connected:
		return s.stateBadge.Foreground(lipgloss.Color("42"))
	case failed:
		return s.stateBadge.Foreground(lipgloss.Color("203"))
	default:
		return s.stateBadge.Foreground(lipgloss.Color("245"))
	}
}
