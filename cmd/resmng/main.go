package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vsinha/resmng/pkg/interfaces/cli/commands"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "generate" {
		runGenerate(os.Args[2:])
		return
	}

	defaults := commands.DefaultSimulateConfig()

	// Command line flags
	var (
		cycles         = flag.Int("cycles", defaults.Cycles, "Number of generated events, 0 runs until interrupted")
		interval       = flag.Duration("interval", defaults.Interval, "Pause between events")
		seed           = flag.Int64("seed", defaults.Seed, "Random seed")
		maxValue       = flag.Int64("max-value", defaults.MaxValue, "Upper bound for generated supplies")
		scenarioDir    = flag.String("scenario", "", "Path to scenario directory containing CSV files")
		configFile     = flag.String("config", "", "YAML config file; explicit flags override it")
		metricsAddr    = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address")
		fatalForecasts = flag.Bool("fatal-forecasts", false, "Abort on the first unfavorable forecast")
		logFormat      = flag.String("log-format", defaults.LogFormat, "Log encoding: console or json")
		verbose        = flag.Bool("verbose", false, "Also print rejected operations")
		help           = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	flags := commands.SimulateConfig{
		Cycles:             *cycles,
		Interval:           *interval,
		Seed:               *seed,
		MaxValue:           *maxValue,
		ScenarioDir:        *scenarioDir,
		MetricsAddr:        *metricsAddr,
		FatalForecasts:     *fatalForecasts,
		LogFormat:          *logFormat,
		Verbose:            *verbose,
		BootstrapMaterials: defaults.BootstrapMaterials,
		BootstrapProducts:  defaults.BootstrapProducts,
		Help:               *help,
	}

	config := flags
	if *configFile != "" {
		fromFile, err := commands.LoadConfigFile(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		set := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		config = fromFile.Override(flags, set)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := commands.NewSimulateCommand(config, os.Stdout, nil)
	if err := cmd.Execute(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runGenerate(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		materials = fs.Int("materials", 8, "Number of materials to generate")
		products  = fs.Int("products", 16, "Number of products to generate")
		variants  = fs.Int("variants", 8, "Number of extra variants")
		maxSupply = fs.Int64("max-supply", 512, "Upper bound of initial supplies")
		outputDir = fs.String("output", "", "Output directory for generated files")
		seed      = fs.Int64("seed", 0, "Random seed for reproducible generation")
		verbose   = fs.Bool("verbose", false, "Enable verbose output")
		help      = fs.Bool("help", false, "Show help message")
	)
	_ = fs.Parse(args)

	cmd := commands.NewGenerateCommand(commands.GenerateConfig{
		Materials: *materials,
		Products:  *products,
		Variants:  *variants,
		MaxSupply: *maxSupply,
		OutputDir: *outputDir,
		Seed:      *seed,
		Help:      *help,
		Verbose:   *verbose,
	}, os.Stdout)

	if err := cmd.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
