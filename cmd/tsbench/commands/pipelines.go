package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// PipelinesCmd lists the built-in pipeline names.
var PipelinesCmd = &cobra.Command{
	Use:   "pipelines",
	Short: "List built-in pipelines",
	RunE: func(cmd *cobra.Command, args []string) error {
		items := make([]pterm.BulletListItem, 0, len(PipelineNames()))
		for _, name := range PipelineNames() {
			items = append(items, pterm.BulletListItem{Level: 0, Text: name})
		}
		return pterm.DefaultBulletList.WithItems(items).Render()
	},
}
