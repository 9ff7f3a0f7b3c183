package commands

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/resmng/pkg/domain/entities"
	"github.com/vsinha/resmng/pkg/infrastructure/repositories/csv"
)

// GenerateConfig holds configuration for scenario generation
type GenerateConfig struct {
	Materials int    // Number of materials, ids 1..Materials
	Products  int    // Number of products
	Variants  int    // Extra variants spread over the products
	MaxSupply int64  // Upper bound of initial supplies
	OutputDir string // Output directory for generated files
	Seed      int64  // Random seed for reproducible generation
	Help      bool
	Verbose   bool
}

// GenerateCommand writes a random scenario directory
type GenerateCommand struct {
	config GenerateConfig
	out    io.Writer
	rand   *rand.Rand
}

// NewGenerateCommand creates a new generate command. A zero seed uses the clock.
func NewGenerateCommand(config GenerateConfig, out io.Writer) *GenerateCommand {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &GenerateCommand{
		config: config,
		out:    out,
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// Execute runs the generate command
func (cmd *GenerateCommand) Execute(ctx context.Context) error {
	if cmd.config.Help {
		cmd.printHelp()
		return nil
	}
	if err := cmd.validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.out, "Generating scenario with %d materials, %d products, %d extra variants\n",
			cmd.config.Materials, cmd.config.Products, cmd.config.Variants)
		fmt.Fprintf(cmd.out, "Output directory: %s\n", cmd.config.OutputDir)
	}

	scenario := cmd.generateScenario()
	if err := csv.WriteScenario(cmd.config.OutputDir, scenario); err != nil {
		return fmt.Errorf("failed to write scenario: %w", err)
	}

	if cmd.config.Verbose {
		fmt.Fprintf(cmd.out, "Scenario generated successfully in %s\n", cmd.config.OutputDir)
	}
	return nil
}

func (cmd *GenerateCommand) validate() error {
	if cmd.config.OutputDir == "" {
		return fmt.Errorf("output directory is required")
	}
	if cmd.config.Materials < 1 {
		return fmt.Errorf("at least one material is required, got %d", cmd.config.Materials)
	}
	if cmd.config.Products < 0 || cmd.config.Variants < 0 {
		return fmt.Errorf("product and variant counts cannot be negative")
	}
	if cmd.config.Variants > 0 && cmd.config.Products == 0 {
		return fmt.Errorf("variants need at least one product")
	}
	if cmd.config.MaxSupply < 1 {
		return fmt.Errorf("max supply must be positive, got %d", cmd.config.MaxSupply)
	}
	return nil
}

// generateScenario draws supplies, recipes and priorities. Every generated
// value is accepted by the catalog, so the scenario always applies cleanly.
func (cmd *GenerateCommand) generateScenario() *csv.Scenario {
	scenario := &csv.Scenario{
		Materials: make([]csv.MaterialRow, 0, cmd.config.Materials),
		Products:  make([]csv.ProductRow, 0, cmd.config.Products),
		Variants:  make([]csv.VariantRow, 0, cmd.config.Variants),
	}

	for i := 1; i <= cmd.config.Materials; i++ {
		scenario.Materials = append(scenario.Materials, csv.MaterialRow{
			ID:     entities.MaterialID(i),
			Supply: decimal.NewFromInt(1 + cmd.rand.Int63n(cmd.config.MaxSupply)),
		})
	}

	for i := 0; i < cmd.config.Products; i++ {
		scenario.Products = append(scenario.Products, csv.ProductRow{
			Key:            fmt.Sprintf("P%04d", i),
			MaterialID:     cmd.randomMaterial(),
			MaterialAmount: cmd.randomAmount(),
			Priority:       entities.Priority(cmd.rand.Intn(entities.PriorityClasses)),
			WorkComplexity: cmd.randomComplexity(),
		})
	}

	for i := 0; i < cmd.config.Variants; i++ {
		product := scenario.Products[cmd.rand.Intn(len(scenario.Products))]
		scenario.Variants = append(scenario.Variants, csv.VariantRow{
			ProductKey:     product.Key,
			MaterialID:     cmd.randomMaterial(),
			MaterialAmount: cmd.randomAmount(),
			WorkComplexity: cmd.randomComplexity(),
		})
	}

	return scenario
}

func (cmd *GenerateCommand) randomMaterial() entities.MaterialID {
	return entities.MaterialID(1 + cmd.rand.Intn(cmd.config.Materials))
}

// randomAmount keeps recipes small relative to supplies
func (cmd *GenerateCommand) randomAmount() decimal.Decimal {
	return decimal.NewFromInt(1 + cmd.rand.Int63n(max(cmd.config.MaxSupply/32, 1)))
}

func (cmd *GenerateCommand) randomComplexity() decimal.Decimal {
	return decimal.NewFromInt(int64(1 + cmd.rand.Intn(255)))
}

// printHelp shows usage information
func (cmd *GenerateCommand) printHelp() {
	fmt.Fprintln(cmd.out, `resmng scenario generator

USAGE:
    resmng generate [OPTIONS]

OPTIONS:
    -materials <N>      Number of materials to generate (default: 8)
    -products <N>       Number of products to generate (default: 16)
    -variants <N>       Number of extra variants spread over the products (default: 8)
    -max-supply <N>     Upper bound of initial supplies (default: 512)
    -output <DIR>       Output directory for generated files (required)
    -seed <N>           Random seed for reproducible generation (optional)
    -verbose            Enable verbose output
    -help               Show this help message

EXAMPLES:
    # Generate and simulate a reproducible scenario
    resmng generate -materials 4 -products 10 -output ./workshop -seed 12345
    resmng -scenario ./workshop -cycles 1000`)
}
