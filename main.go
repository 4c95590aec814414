package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"billboard-lyrics/config"
	"billboard-lyrics/pipeline"
)

var (
	configPath   string
	startYear    int
	endYear      int
	workers      int
	dataDir      string
	dbPath       string
	chartFile    string
	boundaryYear int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "billboard-lyrics",
		Short:         "ETL pipeline for lyrical complexity of Billboard Hot 100 songs",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "lyrics.toml", "TOML config file")
	rootCmd.PersistentFlags().IntVar(&startYear, "start-year", 0, "first chart year (overrides config)")
	rootCmd.PersistentFlags().IntVar(&endYear, "end-year", 0, "last chart year (overrides config)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "lyric fetch workers (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "interchange file directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite sink path (overrides config)")
	rootCmd.PersistentFlags().StringVar(&chartFile, "chart", "", "chart CSV file (overrides config)")
	rootCmd.PersistentFlags().IntVar(&boundaryYear, "boundary-year", 0, "recent-vs-older trend boundary (overrides config)")

	rootCmd.AddCommand(stageCmd("extract", "Fetch charts and lyrics, compute metrics, write the raw table",
		func(p *pipeline.Pipeline) error { return p.Extract() }))
	rootCmd.AddCommand(stageCmd("transform", "Clean, categorize and aggregate the latest extract",
		func(p *pipeline.Pipeline) error { return p.Transform() }))
	rootCmd.AddCommand(stageCmd("load", "Load transformed tables into the SQLite sink",
		func(p *pipeline.Pipeline) error { return p.Load() }))
	rootCmd.AddCommand(stageCmd("validate", "Run the data quality gate over the latest extract",
		func(p *pipeline.Pipeline) error { return p.Validate() }))
	rootCmd.AddCommand(stageCmd("report", "Write a summary report for the latest transformed data",
		func(p *pipeline.Pipeline) error { return p.Report() }))
	rootCmd.AddCommand(stageCmd("run", "Run every pipeline stage in order",
		func(p *pipeline.Pipeline) error { return p.Run() }))

	return rootCmd
}

func stageCmd(name, short string, fn func(*pipeline.Pipeline) error) *cobra.Command {
	return &cobra.Command{
		Use:   name,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := fn(pipeline.New(cfg)); err != nil {
				log.Printf("[main] %s failed: %v", name, err)
				return err
			}
			return nil
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if startYear != 0 {
		cfg.StartYear = startYear
	}
	if endYear != 0 {
		cfg.EndYear = endYear
	}
	if workers != 0 {
		cfg.Workers = workers
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if chartFile != "" {
		cfg.ChartFile = chartFile
	}
	if boundaryYear != 0 {
		cfg.BoundaryYear = boundaryYear
	}
	return cfg, nil
}
