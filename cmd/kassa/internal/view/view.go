package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// View is the interface that all terminal screens implement.
type View interface {
	tea.Model
	Title() string
	ShortHelp() string
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

// BackMsg returns control to the main menu.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// LogoutMsg drops the session and returns to the login screen.
type LogoutMsg struct{}

func Logout() tea.Msg {
	return LogoutMsg{}
}
