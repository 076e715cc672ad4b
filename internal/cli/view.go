package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/mosaickit/mosaic/pkg/grid"
	"github.com/mosaickit/mosaic/pkg/pattern"
	"github.com/mosaickit/mosaic/pkg/pipeline"
)

// Viewer styles
var (
	viewTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	viewMarkStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	viewMatchStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	viewEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
	viewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	viewHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the view command: an interactive browser over the
// eight orientations of the assembled image.
func (c *CLI) viewCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Browse the assembled image interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Execute(cmd.Context(), pipeline.Options{
				TilesPath: args[0],
				Logger:    c.Logger,
			})
			if err != nil {
				return err
			}

			model := newViewModel(res, pattern.SeaMonster())
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the result cache")

	return cmd
}

// viewModel is the bubbletea model for the orientation browser.
type viewModel struct {
	orientations []grid.Grid
	pattern      *pattern.Pattern
	index        int  // current orientation
	best         int  // orientation with the most matches
	overlay      bool // highlight pattern matches
}

func newViewModel(res *pipeline.Result, p *pattern.Pattern) viewModel {
	return viewModel{
		orientations: grid.Orientations(res.Image),
		pattern:      p,
		index:        res.Orientation,
		best:         res.Orientation,
		overlay:      res.Found,
	}
}

func (m viewModel) Init() tea.Cmd {
	return nil
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l":
			m.index = (m.index + 1) % len(m.orientations)
		case "left", "h":
			m.index = (m.index + len(m.orientations) - 1) % len(m.orientations)
		case "b":
			m.index = m.best
		case "m":
			m.overlay = !m.overlay
		}
	}
	return m, nil
}

func (m viewModel) View() string {
	img := m.orientations[m.index]

	var matches []pattern.Point
	if m.overlay {
		matches = pattern.FindMatches(img, m.pattern)
	}
	covered := make(map[[2]int]bool)
	for _, match := range matches {
		for r := 0; r < m.pattern.Rows(); r++ {
			for c := 0; c < m.pattern.Cols(); c++ {
				if m.pattern.At(r, c) {
					covered[[2]int{match.Row + r, match.Col + c}] = true
				}
			}
		}
	}

	var b strings.Builder
	b.WriteString(viewTitleStyle.Render("Assembled image"))
	b.WriteString("\n\n")
	for r := 0; r < img.Rows(); r++ {
		for c := 0; c < img.Cols(); c++ {
			switch {
			case covered[[2]int{r, c}]:
				b.WriteString(viewMatchStyle.Render("O"))
			case img[r][c]:
				b.WriteString(viewMarkStyle.Render("#"))
			default:
				b.WriteString(viewEmptyStyle.Render("."))
			}
		}
		b.WriteString("\n")
	}

	status := fmt.Sprintf("orientation %d/%d", m.index+1, len(m.orientations))
	if m.index == m.best {
		status += " (best)"
	}
	if m.overlay {
		status += fmt.Sprintf(" · %d matches", len(matches))
	}
	b.WriteString("\n")
	b.WriteString(viewStatusStyle.Render(status))
	b.WriteString("\n")
	b.WriteString(viewHelpStyle.Render("←/→ rotate · m matches · b best · q quit"))
	b.WriteString("\n")
	return b.String()
}
