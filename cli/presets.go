package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"github.com/yllada/redwarp/warp"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func (a *app) presetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the DNS presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("ID", "NAME", "IPV4", "IPV6").
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				})

			for _, p := range warp.DNSPresets() {
				v4, v6 := p.IPv4, p.IPv6
				if p.ID == warp.PresetCustom {
					v4, v6 = "--dns4-custom", "--dns6-custom"
				}
				t.Row(p.ID, p.Label, v4, v6)
			}

			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		},
	}
}
