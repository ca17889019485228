package app

import "charm.land/lipgloss/v2"

var (
	headerStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	brandStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69"))
	hintStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	sectionStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	projectStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	projectActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	dividerStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	detailTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	detailMetaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Faint(true)
)
