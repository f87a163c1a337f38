package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"repolens/version"
)

type Config struct {
	RepoInput          string        `json:"repo"`
	OutputFileName     string        `json:"output_file_name"`
	OwnerCount         int           `json:"owner_count"`
	MaxElementsPerKind int           `json:"max_elements_per_kind"`
	ConcurrencyLevel   int           `json:"concurrency_level"`
	WorkerMultiplier   int           `json:"worker_multiplier"`
	MaxFileSize        int64         `json:"max_file_size"`
	MaxIOPerSecond     int           `json:"max_io_per_second"`
	CloneDepth         int           `json:"clone_depth"`
	CloneTimeout       time.Duration `json:"clone_timeout"`
	LogLevel           string        `json:"log_level"`
	ConfigFile         string        `json:"config_file"`
	ConcurrencySet     bool          `json:"-"`
}

// maxWorkers caps the derived worker count so that many-core hosts do not
// hammer the repository's disk with hundreds of concurrent readers.
const maxWorkers = 32

func LoadConfig() (*Config, error) {
	cfg := &Config{
		OutputFileName:     "files.json",
		OwnerCount:         3,
		MaxElementsPerKind: 30,
		ConcurrencyLevel:   0,
		WorkerMultiplier:   4,
		MaxFileSize:        500000,
		MaxIOPerSecond:     0,
		CloneDepth:         100,
		CloneTimeout:       300 * time.Second,
		LogLevel:           "info",
	}

	repo := flag.String("repo", "", "Repository URL or local path to analyze (default: prompt).")
	output := flag.String("output", cfg.OutputFileName, fmt.Sprintf("Output file name (default: %s).", cfg.OutputFileName))
	ownerCount := flag.Int("owner-count", cfg.OwnerCount, fmt.Sprintf("Number of top contributors treated as repository owners (default: %d).", cfg.OwnerCount))
	maxElements := flag.Int("max-elements", cfg.MaxElementsPerKind, fmt.Sprintf("Maximum extracted names kept per kind per file (default: %d).", cfg.MaxElementsPerKind))
	concurrency := flag.Int("concurrency", cfg.ConcurrencyLevel, "Worker count (default: derived from CPU count and --worker-multiplier).")
	workerMultiplier := flag.Int("worker-multiplier", cfg.WorkerMultiplier, fmt.Sprintf("Workers per CPU when --concurrency is not set (default: %d).", cfg.WorkerMultiplier))
	maxFileSize := flag.Int64("max-file-size", cfg.MaxFileSize, fmt.Sprintf("Maximum file size to analyze in bytes (default: %d).", cfg.MaxFileSize))
	maxIO := flag.Int("max-io-per-second", cfg.MaxIOPerSecond, fmt.Sprintf("Maximum file reads per second across workers (default: %d, 0 means unlimited).", cfg.MaxIOPerSecond))
	cloneDepth := flag.Int("clone-depth", cfg.CloneDepth, fmt.Sprintf("History depth for shallow clones of remote repositories (default: %d).", cfg.CloneDepth))
	cloneTimeout := flag.Duration("clone-timeout", cfg.CloneTimeout, "Timeout for cloning remote repositories (default: 5m).")
	logLevel := flag.String("log-level", cfg.LogLevel, fmt.Sprintf("Log level: debug, info, warn, error, fatal, or panic (default: %s).", cfg.LogLevel))
	configFile := flag.String("config", "", "Path to JSON configuration file (default: none).")
	showVersion := flag.Bool("version", false, "Print version and exit")

	flag.Usage = displayHelp
	flag.Parse()

	if *showVersion {
		fmt.Printf("repolens version %s\n", version.Version)
		os.Exit(0)
	}

	if *configFile != "" {
		cfg.ConfigFile = *configFile
		if err := cfg.loadFromFile(cfg.ConfigFile); err != nil {
			return nil, err
		}
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "repo":
			cfg.RepoInput = strings.TrimSpace(*repo)
		case "output":
			cfg.OutputFileName = *output
		case "owner-count":
			cfg.OwnerCount = *ownerCount
		case "max-elements":
			cfg.MaxElementsPerKind = *maxElements
		case "concurrency":
			cfg.ConcurrencyLevel = *concurrency
			cfg.ConcurrencySet = true
		case "worker-multiplier":
			cfg.WorkerMultiplier = *workerMultiplier
		case "max-file-size":
			cfg.MaxFileSize = *maxFileSize
		case "max-io-per-second":
			cfg.MaxIOPerSecond = *maxIO
		case "clone-depth":
			cfg.CloneDepth = *cloneDepth
		case "clone-timeout":
			cfg.CloneTimeout = *cloneTimeout
		case "log-level":
			cfg.LogLevel = strings.ToLower(strings.TrimSpace(*logLevel))
		}
	})

	if cfg.OutputFileName == "" {
		cfg.OutputFileName = "files.json"
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Workers resolves the effective worker pool size.
func (cfg *Config) Workers() int {
	if cfg.ConcurrencySet && cfg.ConcurrencyLevel > 0 {
		return cfg.ConcurrencyLevel
	}
	workers := runtime.NumCPU() * cfg.WorkerMultiplier
	if workers < 1 {
		workers = 1
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	return workers
}

func displayHelp() {
	fmt.Println("repolens - Repository Code Analyzer with Function/Variable Extraction")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  repolens [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  repolens --repo https://github.com/user/project")
	fmt.Println("  repolens --repo ~/src/project --output project.json")
	fmt.Println("  repolens --repo . --owner-count 5 --max-elements 50")
}

func (cfg *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file: %v", err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid config file format: %v", err)
	}
	if _, ok := raw["concurrency_level"]; ok {
		cfg.ConcurrencySet = true
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("invalid config file format: %v", err)
	}
	return nil
}

func (cfg *Config) validate() error {
	if cfg.OwnerCount <= 0 {
		return fmt.Errorf("owner-count must be positive")
	}
	if cfg.MaxElementsPerKind <= 0 {
		return fmt.Errorf("max-elements must be positive")
	}
	if cfg.ConcurrencySet && cfg.ConcurrencyLevel <= 0 {
		return fmt.Errorf("concurrency level must be positive")
	}
	if cfg.WorkerMultiplier <= 0 {
		return fmt.Errorf("worker-multiplier must be positive")
	}
	if cfg.MaxFileSize < 0 {
		return fmt.Errorf("max-file-size must be zero or positive")
	}
	if cfg.MaxIOPerSecond < 0 {
		return fmt.Errorf("max-io-per-second must be zero or positive")
	}
	if cfg.CloneDepth <= 0 {
		return fmt.Errorf("clone-depth must be positive")
	}
	if cfg.CloneTimeout <= 0 {
		return fmt.Errorf("clone-timeout must be positive")
	}
	if cfg.LogLevel != "debug" && cfg.LogLevel != "info" && cfg.LogLevel != "warn" &&
		cfg.LogLevel != "error" && cfg.LogLevel != "fatal" && cfg.LogLevel != "panic" {
		return fmt.Errorf("invalid log level: %s", cfg.LogLevel)
	}
	return nil
}
