package styles

import "github.com/charmbracelet/lipgloss"

var (
	Primary    = lipgloss.Color("#F78C6C")
	Secondary  = lipgloss.Color("#C3E88D")
	Success    = lipgloss.Color("#89DDFF")
	Warning    = lipgloss.Color("#FFCB6B")
	Error      = lipgloss.Color("#F07178")
	Info       = lipgloss.Color("#82AAFF")
	Muted      = lipgloss.Color("#676E95")
	Background = lipgloss.Color("#292D3E")
	Foreground = lipgloss.Color("#EEFFFF")

	RoundedBorder = lipgloss.RoundedBorder()
	ThickBorder   = lipgloss.ThickBorder()
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Italic(true)

	TextStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Recipe card in a grid row
	CardStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Muted).
			Padding(0, 1)

	ActiveCardStyle = lipgloss.NewStyle().
			Border(ThickBorder).
			BorderForeground(Primary).
			Padding(0, 1)

	LikeStyle = lipgloss.NewStyle().
			Foreground(Error)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Primary)

	StatusBusy = lipgloss.NewStyle().
			Foreground(Info).
			Bold(true)

	StatusDone = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	StatusError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Dismissible error at the bottom of a screen
	SnackStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Background(lipgloss.Color("#8B2F3A")).
			Padding(0, 1)

	ProgressBarStyle = lipgloss.NewStyle().
				Foreground(Primary)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(Muted)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Background(lipgloss.Color("#34324A")).
			Padding(0, 2).
			Bold(true)

	InactiveTabStyle = lipgloss.NewStyle().
				Foreground(Muted).
				Padding(0, 2)

	// Sort dial options
	DialStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Info).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginTop(1)

	InputStyle = lipgloss.NewStyle().
			Border(RoundedBorder).
			BorderForeground(Muted).
			Padding(0, 1)

	FocusedInputStyle = lipgloss.NewStyle().
				Border(RoundedBorder).
				BorderForeground(Primary).
				Padding(0, 1)
)

func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "downloading", "processing", "loading":
		return StatusBusy
	case "complete", "saved", "published":
		return StatusDone
	case "error":
		return StatusError
	default:
		return MutedStyle
	}
}
