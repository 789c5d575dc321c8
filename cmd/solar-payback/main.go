package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/iwvelando/solar-payback/internal/config"
	"github.com/iwvelando/solar-payback/internal/forecast"
	"github.com/iwvelando/solar-payback/pkg/constants"
	"github.com/iwvelando/solar-payback/pkg/output"
	"github.com/iwvelando/solar-payback/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	watch := flag.Bool("watch", false, "recompute and print the report every time the configuration file changes")
	flag.Parse()

	// Load the config file to get logging configuration
	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	// Initialize logging based on config and CLI override
	logger, err := config.NewLogger(conf.Logging, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	r := &reporter{logger: logger, outputFormat: *outputFormatFlag}

	if !*watch {
		if err := r.report(conf); err != nil {
			logger.Fatal("failed to compute payback",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		return
	}

	conf, err = config.WatchConfiguration(*configLocation, logger, func(updated *config.Configuration, err error) {
		if err != nil {
			logger.Error("failed to reload configuration",
				zap.String("op", "main"),
				zap.Error(err),
			)
			return
		}
		if err := r.report(updated); err != nil {
			logger.Error("failed to compute payback",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
	})
	if err != nil {
		logger.Fatal("failed to watch configuration",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if err := r.report(conf); err != nil {
		logger.Error("failed to compute payback",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	logger.Info("watching configuration for changes",
		zap.String("op", "main"),
		zap.String("config", *configLocation),
	)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	<-signals
}

// reporter prints one report at a time. Watch callbacks fire on viper's
// goroutine and may overlap with the initial report.
type reporter struct {
	mu           sync.Mutex
	logger       *zap.Logger
	outputFormat string
}

func (r *reporter) report(conf *config.Configuration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return run(r.logger, conf, r.outputFormat)
}

// run validates conf, simulates every active scenario and prints the report.
func run(logger *zap.Logger, conf *config.Configuration, outputFormatOverride string) error {
	// Determine output format (CLI override takes precedence over config)
	outputFormat := conf.Output.Format
	if outputFormatOverride != "" {
		outputFormat = outputFormatOverride
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}

	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	// Validate configuration and display any warnings
	warnings := conf.ValidateConfiguration()
	for _, warning := range warnings {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// Run the simulation to get the payback forecasts.
	results, err := forecast.GetForecast(logger, *conf)
	if err != nil {
		return err
	}

	// Handle output.
	switch outputFormat {
	case constants.OutputFormatPretty:
		output.PrettyFormat(results)
	case constants.OutputFormatCSV:
		output.CsvFormat(results)
	case constants.OutputFormatJSON:
		return output.JSONFormat(results)
	}
	return nil
}
