package commands

import (
	"strings"

	"github.com/spf13/viper"

	"tsml/errors"
)

// Config describes one benchmark experiment: the dataset to generate, how
// to split it, the pipeline to run and whether to record the result.
type Config struct {
	Dataset  DatasetConfig  `mapstructure:"dataset"`
	Split    SplitConfig    `mapstructure:"split"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Runs     RunsConfig     `mapstructure:"runs"`
}

type DatasetConfig struct {
	Kind      string  `mapstructure:"kind"` // waves, ragged or blobs
	Instances int     `mapstructure:"instances"`
	Length    int     `mapstructure:"length"`
	MinLength int     `mapstructure:"min_length"`
	MaxLength int     `mapstructure:"max_length"`
	Channels  int     `mapstructure:"channels"`
	Classes   int     `mapstructure:"classes"`
	Noise     float64 `mapstructure:"noise"`
	Features  int     `mapstructure:"features"`
	Spread    float64 `mapstructure:"spread"`
	Seed      int64   `mapstructure:"seed"`
}

type SplitConfig struct {
	TestFraction float64 `mapstructure:"test_fraction"`
	Seed         int64   `mapstructure:"seed"`
}

type PipelineConfig struct {
	Name       string  `mapstructure:"name"`
	K          int     `mapstructure:"k"`
	Window     int     `mapstructure:"window"`
	Trees      int     `mapstructure:"trees"`
	MaxDepth   int     `mapstructure:"max_depth"`
	Lambda     float64 `mapstructure:"lambda"`
	Components int     `mapstructure:"components"`
	Clusters   int     `mapstructure:"clusters"`
	Degree     int     `mapstructure:"degree"`
	Epochs     int     `mapstructure:"epochs"`
	LearnRate  float64 `mapstructure:"learn_rate"`
	Quantile   float64 `mapstructure:"quantile"`
	Seed       int64   `mapstructure:"seed"`
}

type RunsConfig struct {
	Path   string `mapstructure:"path"`
	Record bool   `mapstructure:"record"`
}

// SetDefaults registers the default experiment on a Viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dataset.kind", "waves")
	v.SetDefault("dataset.instances", 300)
	v.SetDefault("dataset.length", 64)
	v.SetDefault("dataset.min_length", 40)
	v.SetDefault("dataset.max_length", 64)
	v.SetDefault("dataset.channels", 1)
	v.SetDefault("dataset.classes", 3)
	v.SetDefault("dataset.noise", 0.1)
	v.SetDefault("dataset.features", 8)
	v.SetDefault("dataset.spread", 1.0)
	v.SetDefault("dataset.seed", 42)

	v.SetDefault("split.test_fraction", 0.3)
	v.SetDefault("split.seed", 7)

	v.SetDefault("pipeline.name", "summary-forest")
	v.SetDefault("pipeline.k", 1)
	v.SetDefault("pipeline.window", 10)
	v.SetDefault("pipeline.trees", 50)
	v.SetDefault("pipeline.max_depth", 0)
	v.SetDefault("pipeline.lambda", 1.0)
	v.SetDefault("pipeline.components", 2)
	v.SetDefault("pipeline.clusters", 3)
	v.SetDefault("pipeline.degree", 2)
	v.SetDefault("pipeline.epochs", 200)
	v.SetDefault("pipeline.learn_rate", 0.1)
	v.SetDefault("pipeline.quantile", 0.05)
	v.SetDefault("pipeline.seed", 1)

	v.SetDefault("runs.path", "tsbench.db")
	v.SetDefault("runs.record", false)
}

// LoadConfig reads the experiment config from the given TOML file, layered
// over defaults and TSBENCH_* environment variables. An empty path uses
// defaults and environment only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("TSBENCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return &cfg, nil
}
