package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yllada/redwarp/config"
)

// Run shows the form until the user quits and returns the last outcome.
func Run(ctx context.Context, cfg *config.Config, gen Generator) (Model, error) {
	p := tea.NewProgram(New(ctx, cfg, gen), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return Model{}, err
	}
	return final.(Model), nil
}
