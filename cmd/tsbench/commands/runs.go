package commands

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"tsml/logger"
	"tsml/pkg/rundb"
)

var (
	runsPath  string
	runsLimit int
)

// RunsCmd lists recorded runs, newest first.
var RunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		rdb, err := rundb.Open(runsPath, logger.Logger)
		if err != nil {
			return err
		}
		defer rdb.Close()

		runs, err := rdb.Recent(runsLimit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			pterm.Info.Println("No runs recorded yet.")
			return nil
		}

		td := pterm.TableData{{"ID", "Pipeline", "Dataset", "Status", "Accuracy", "Took", "When"}}
		for _, r := range runs {
			td = append(td, []string{
				shortID(r.ID),
				r.Pipeline,
				r.Dataset,
				statusCell(r),
				fmt.Sprintf("%.4f", r.Accuracy),
				r.Duration.Round(time.Millisecond).String(),
				r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(td).Render()
	},
}

func statusCell(r rundb.Run) string {
	switch r.Status {
	case rundb.StatusFinished:
		return pterm.Green(r.Status)
	case rundb.StatusError:
		return pterm.Red(r.Status)
	}
	return r.Status
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	RunsCmd.Flags().StringVar(&runsPath, "db", "tsbench.db", "run database path")
	RunsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "maximum runs to show")
}
