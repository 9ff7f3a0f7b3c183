package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vsinha/resmng/pkg/infrastructure/events"
	"github.com/vsinha/resmng/pkg/infrastructure/logging"
	"github.com/vsinha/resmng/pkg/infrastructure/metrics"
	"github.com/vsinha/resmng/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/resmng/pkg/interfaces/cli/output"
	"github.com/vsinha/resmng/pkg/resmng"
	"github.com/vsinha/resmng/pkg/simulation"
)

// ErrFatalForecast aborts a run that was asked to stop on the first
// not-available or scarce forecast.
var ErrFatalForecast = errors.New("unfavorable forecast")

// metricsRetention caps the events kept while serving metrics. The recorder
// only consumes dispatched events.
const metricsRetention = 1024

// SimulateCommand runs the random workload against a fresh Instance
type SimulateCommand struct {
	config SimulateConfig
	out    io.Writer
	logger *zap.Logger
}

// NewSimulateCommand creates a new simulate command. A nil logger is built
// from the configured log format and LOG_LEVEL.
func NewSimulateCommand(config SimulateConfig, out io.Writer, logger *zap.Logger) *SimulateCommand {
	return &SimulateCommand{
		config: config,
		out:    out,
		logger: logger,
	}
}

// Execute runs the simulation until the cycle count is reached, the context
// is cancelled or a fatal forecast occurs.
func (c *SimulateCommand) Execute(ctx context.Context) (err error) {
	if c.config.Help {
		c.showHelp()
		return nil
	}
	if err := c.config.validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	logger := c.logger
	if logger == nil {
		logger, err = logging.NewLogger(logging.Config{Encoding: c.config.LogFormat})
		if err != nil {
			return fmt.Errorf("failed to build logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
	}

	opts := resmng.Options{Logger: logger}
	if c.config.MetricsAddr != "" {
		store := events.NewInMemoryEventStore(events.WithRetention(metricsRetention))
		stop, err := c.serveMetrics(store, logger)
		if err != nil {
			return err
		}
		defer stop()
		opts.Events = store
	}

	inst, err := resmng.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create instance: %w", err)
	}

	gen, err := simulation.NewGenerator(inst, simulation.Config{
		Seed:     c.config.Seed,
		MaxValue: c.config.MaxValue,
	})
	if err != nil {
		return err
	}

	if err := c.seed(inst, gen); err != nil {
		return err
	}

	summary := simulation.NewSummary()
	defer func() {
		output.PrintSummary(c.out, summary, inst.Snapshot())
	}()

	for cycle := 0; c.config.Cycles == 0 || cycle < c.config.Cycles; cycle++ {
		if ctx.Err() != nil {
			logger.Info("simulation interrupted", zap.Int("cycle", cycle))
			return nil
		}

		ev := gen.Next()
		summary.Record(ev)
		output.PrintEvent(c.out, ev, c.config.Verbose)

		if c.config.FatalForecasts && ev.Kind == simulation.KindOrder && !ev.Failed() && ev.Outcome.Unfavorable() {
			return fmt.Errorf("cycle %d: %w: %s", ev.Cycle, ErrFatalForecast, ev.Outcome)
		}

		if c.config.Interval > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(c.config.Interval):
			}
		}
	}

	if result := inst.Validate(); !result.Valid() {
		return fmt.Errorf("ledger invariant violated: %v", result.Errors)
	}
	return nil
}

// seed loads the scenario when one is configured, otherwise it lets the
// generator build a random starting catalog.
func (c *SimulateCommand) seed(inst *resmng.Instance, gen *simulation.Generator) error {
	if c.config.ScenarioDir == "" {
		if err := gen.Bootstrap(c.config.BootstrapMaterials, c.config.BootstrapProducts); err != nil {
			return fmt.Errorf("failed to bootstrap catalog: %w", err)
		}
		return nil
	}

	scenario, err := csv.NewLoader().LoadScenario(c.config.ScenarioDir)
	if err != nil {
		return fmt.Errorf("error loading scenario: %w", err)
	}
	if _, err := scenario.Apply(inst); err != nil {
		return fmt.Errorf("error applying scenario: %w", err)
	}
	if c.config.Verbose {
		fmt.Fprintf(c.out, "Loaded scenario %s: %d materials, %d products, %d extra variants\n",
			c.config.ScenarioDir, len(scenario.Materials), len(scenario.Products), len(scenario.Variants))
	}
	return nil
}

// serveMetrics exposes the recorder on /metrics and returns a shutdown func
func (c *SimulateCommand) serveMetrics(store events.EventStore, logger *zap.Logger) (func(), error) {
	registry := prometheus.NewRegistry()
	recorder, err := metrics.NewRecorder(registry)
	if err != nil {
		return nil, err
	}
	if err := recorder.Attach(store); err != nil {
		return nil, fmt.Errorf("failed to attach metrics recorder: %w", err)
	}

	listener, err := net.Listen("tcp", c.config.MetricsAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on metrics address %s: %w", c.config.MetricsAddr, err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()
	logger.Info("serving metrics", zap.String("addr", listener.Addr().String()))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)
	}, nil
}

// showHelp displays the help message
func (c *SimulateCommand) showHelp() {
	fmt.Fprintf(c.out, `resmng - production economy simulator

USAGE:
    resmng [options]

OPTIONS:
    -cycles <n>         Number of generated events, 0 runs until interrupted (default: 500)
    -interval <d>       Pause between events, e.g. 300ms (default: 0s)
    -seed <n>           Random seed (default: 1)
    -max-value <n>      Upper bound for generated supplies (default: %d)
    -scenario <dir>     Seed the catalog from a scenario directory
    -config <file>      YAML file with the same settings; flags override it
    -metrics-addr <a>   Serve Prometheus metrics on this address, e.g. :9090
    -fatal-forecasts    Abort on the first MaterialNotAvailable or MaterialScarce forecast
    -log-format <f>     Log encoding: console or json (default: console)
    -verbose            Also print rejected operations
    -help               Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── materials.csv   # material_id,supply
    ├── products.csv    # product_key,material_id,material_amount,priority,work_complexity
    └── variants.csv    # product_key,material_id,material_amount,work_complexity (optional)

ENVIRONMENT:
    LOG_LEVEL           debug, info, warn or error (default: info)
`, simulation.DefaultMaxValue)
}
