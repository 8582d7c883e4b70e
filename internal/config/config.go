// Package config holds the settings shared by the command-line tools.
//
// Values are layered: defaults from New, then an optional YAML file named by
// AUC_CONFIG, then AUC_* environment variables. Command-line flags use the
// loaded values as their defaults.
package config

// Config contains tool configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Samples, Balance and Seed shape synthetic batches.
	Samples int     `koanf:"samples"`
	Balance float64 `koanf:"balance"`
	Seed    uint64  `koanf:"seed"`

	// Runs is how many times each algorithm is timed in comparisons.
	Runs int `koanf:"runs"`

	// Threshold and the weights drive threshold evaluation.
	Threshold       float64 `koanf:"threshold"`
	PrecisionWeight float64 `koanf:"precision_weight"`
	RecallWeight    float64 `koanf:"recall_weight"`

	// SweepMin, SweepMax and SweepStep bound threshold sweeps.
	SweepMin  float64 `koanf:"sweep_min"`
	SweepMax  float64 `koanf:"sweep_max"`
	SweepStep float64 `koanf:"sweep_step"`

	// SparseRatio is the largest positive fraction that selects the sparse
	// precision-recall algorithm automatically.
	SparseRatio float64 `koanf:"sparse_ratio"`

	// PoolSize sets the number of ONNX sessions used for scoring.
	PoolSize int `koanf:"pool_size"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Samples:         1_000_000,
		Balance:         0.000_03,
		Seed:            1,
		Runs:            5,
		Threshold:       0.5,
		PrecisionWeight: 1.0,
		RecallWeight:    1.0,
		SweepMin:        0.05,
		SweepMax:        1.0,
		SweepStep:       0.05,
		SparseRatio:     0.01,
		PoolSize:        1,
	}
}
