package ui

import styles "github.com/charmbracelet/lipgloss"

var (
	accentColor = styles.AdaptiveColor{Light: "0", Dark: "9"}
	borderColor = styles.AdaptiveColor{Light: "#555", Dark: "#555"}
	okColor     = styles.AdaptiveColor{Light: "2", Dark: "10"}
	warnColor   = styles.AdaptiveColor{Light: "3", Dark: "11"}
	errColor    = styles.AdaptiveColor{Light: "1", Dark: "9"}

	accentFg = styles.NewStyle().Foreground(accentColor)
	borderFg = styles.NewStyle().Foreground(borderColor)

	statusConnected    = styles.NewStyle().Foreground(okColor).Bold(true)
	statusConnecting   = styles.NewStyle().Foreground(warnColor)
	statusDisconnected = styles.NewStyle().Foreground(borderColor)

	errStyle = styles.NewStyle().Foreground(errColor)

	selectedTopic = styles.NewStyle().
			Border(styles.NormalBorder(), false, false, false, true).
			BorderForeground(borderColor).
			Foreground(accentColor).
			Padding(0, 0, 0, 1)
	plainTopic = styles.NewStyle().Padding(0, 0, 0, 2)

	paneStyle = styles.NewStyle().
			BorderStyle(styles.NormalBorder()).
			Foreground(borderColor).
			BorderForeground(borderColor)
)
