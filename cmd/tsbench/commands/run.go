package commands

import (
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"tsml/logger"
	"tsml/pkg/data"
	"tsml/pkg/pipeline"
	"tsml/pkg/rundb"
)

var runConfigPath string

// RunCmd executes one experiment: generate, split, fit, score.
var RunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a pipeline experiment",
	Long: `Run generates the configured synthetic dataset, splits it into train and
test sets, fits the configured pipeline on the train split and reports
accuracy on the test split. With runs.record enabled the result is also
written to the run database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(runConfigPath)
		if err != nil {
			return err
		}

		dataset, labels, err := BuildDataset(cfg.Dataset)
		if err != nil {
			return err
		}
		trainX, trainY, testX, testY, err := data.TrainTestSplit(dataset, labels, cfg.Split.TestFraction, cfg.Split.Seed)
		if err != nil {
			return err
		}
		stages, err := BuildPipeline(cfg.Pipeline)
		if err != nil {
			return err
		}
		runner := pipeline.NewRunner(stages, pipeline.WithLogger(logger.Logger))

		var (
			rdb *rundb.DB
			run *rundb.Run
		)
		if cfg.Runs.Record {
			rdb, err = rundb.Open(cfg.Runs.Path, logger.Logger)
			if err != nil {
				return err
			}
			defer rdb.Close()
			run, err = rdb.Start(cfg.Pipeline.Name, cfg.Dataset.Kind, runParams(cfg))
			if err != nil {
				return err
			}
		}

		pterm.Printf("Running %s on %s (%d train / %d test)\n",
			pterm.LightCyan(cfg.Pipeline.Name), pterm.LightCyan(cfg.Dataset.Kind),
			trainX.NumInstances(), testX.NumInstances())

		start := time.Now()
		acc, err := runner.FitScore(trainX, trainY, testX, testY)
		took := time.Since(start)
		if err != nil {
			if run != nil {
				if ferr := rdb.Fail(run, took, err); ferr != nil {
					logger.Logger.Warnw("recording failed run", "error", ferr)
				}
			}
			pterm.Error.Printf("Run failed: %v\n", err)
			return err
		}
		if run != nil {
			if ferr := rdb.Finish(run, acc, took); ferr != nil {
				logger.Logger.Warnw("recording finished run", "error", ferr)
			}
		}

		pterm.Success.Println("Run complete")
		return pterm.DefaultTable.WithData(pterm.TableData{
			{"Pipeline", fmt.Sprintf("%v", runner.StageNames())},
			{"Dataset", cfg.Dataset.Kind},
			{"Train / Test", fmt.Sprintf("%d / %d", trainX.NumInstances(), testX.NumInstances())},
			{"Accuracy", fmt.Sprintf("%.4f", acc)},
			{"Took", took.Round(time.Millisecond).String()},
			{"Run ID", runner.RunID()},
		}).Render()
	},
}

func runParams(cfg *Config) map[string]any {
	return map[string]any{
		"dataset":       cfg.Dataset,
		"test_fraction": cfg.Split.TestFraction,
		"split_seed":    cfg.Split.Seed,
		"pipeline":      cfg.Pipeline,
	}
}

func init() {
	RunCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "experiment config file (TOML)")
}
