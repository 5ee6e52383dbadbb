package engine

import (
	"encoding/json"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// SizingPolicy selects how an entry order is sized from available cash.
type SizingPolicy string

const (
	// SizingAllInWhole spends all available cash on whole shares.
	SizingAllInWhole SizingPolicy = "all_in_whole"
	// SizingAllInFractional spends all available cash on fractional shares.
	SizingAllInFractional SizingPolicy = "all_in_fractional"
	// SizingFixedFraction spends a fixed fraction of available cash on
	// fractional shares.
	SizingFixedFraction SizingPolicy = "fixed_fraction"
)

var AllSizingPolicies = []any{
	SizingAllInWhole,
	SizingAllInFractional,
	SizingFixedFraction,
}

// BacktestEngineV1Config controls capital, costs and sizing for a run.
// Rates are fractions of notional (0.001 == 10 bps).
type BacktestEngineV1Config struct {
	InitialCapital float64      `yaml:"initial_capital" json:"initial_capital" validate:"gt=0" jsonschema:"title=Initial Capital,description=Starting capital for the backtest in USD,minimum=0"`
	CommissionRate float64      `yaml:"commission_rate" json:"commission_rate" validate:"gte=0" jsonschema:"title=Commission Rate,description=Commission charged per fill as a fraction of notional,minimum=0"`
	SlippageRate   float64      `yaml:"slippage_rate" json:"slippage_rate" validate:"gte=0" jsonschema:"title=Slippage Rate,description=Adverse fill price adjustment as a fraction of the close,minimum=0"`
	RiskFreeRate   float64      `yaml:"risk_free_rate" json:"risk_free_rate" validate:"gte=0" jsonschema:"title=Risk Free Rate,description=Annualized risk free rate used by the Sharpe and Sortino ratios,minimum=0"`
	SizingPolicy   SizingPolicy `yaml:"sizing_policy" json:"sizing_policy" validate:"oneof=all_in_whole all_in_fractional fixed_fraction" jsonschema:"title=Sizing Policy,description=How entry orders are sized from available cash"`
	// SizingFraction only applies to the fixed_fraction policy.
	SizingFraction float64 `yaml:"sizing_fraction" json:"sizing_fraction" validate:"gte=0,lte=1" jsonschema:"title=Sizing Fraction,description=Fraction of cash spent per entry under the fixed_fraction policy,minimum=0,maximum=1"`
	// Benchmark enables a buy-and-hold benchmark run whose alpha/beta stats
	// are attached to every report.
	Benchmark bool                       `yaml:"benchmark" json:"benchmark" jsonschema:"title=Benchmark,description=Attach buy-and-hold benchmark statistics to each report"`
	StartTime optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start of the backtest period"`
	EndTime   optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end of the backtest period"`
}

// DefaultConfig returns the config used when a field is omitted from the
// YAML document.
func DefaultConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		InitialCapital: 10000,
		CommissionRate: 0.001,
		SlippageRate:   0.0005,
		RiskFreeRate:   0.02,
		SizingPolicy:   SizingAllInWhole,
		SizingFraction: 1.0,
		Benchmark:      true,
		StartTime:      optional.None[time.Time](),
		EndTime:        optional.None[time.Time](),
	}
}

// UnmarshalYAML decodes on top of the defaults, so partial documents are
// valid configs.
func (c *BacktestEngineV1Config) UnmarshalYAML(value *yaml.Node) error {
	type rawConfig struct {
		InitialCapital *float64      `yaml:"initial_capital"`
		CommissionRate *float64      `yaml:"commission_rate"`
		SlippageRate   *float64      `yaml:"slippage_rate"`
		RiskFreeRate   *float64      `yaml:"risk_free_rate"`
		SizingPolicy   *SizingPolicy `yaml:"sizing_policy"`
		SizingFraction *float64      `yaml:"sizing_fraction"`
		Benchmark      *bool         `yaml:"benchmark"`
		StartTime      *time.Time    `yaml:"start_time"`
		EndTime        *time.Time    `yaml:"end_time"`
	}

	var raw rawConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}

	*c = DefaultConfig()

	if raw.InitialCapital != nil {
		c.InitialCapital = *raw.InitialCapital
	}

	if raw.CommissionRate != nil {
		c.CommissionRate = *raw.CommissionRate
	}

	if raw.SlippageRate != nil {
		c.SlippageRate = *raw.SlippageRate
	}

	if raw.RiskFreeRate != nil {
		c.RiskFreeRate = *raw.RiskFreeRate
	}

	if raw.SizingPolicy != nil {
		c.SizingPolicy = *raw.SizingPolicy
	}

	if raw.SizingFraction != nil {
		c.SizingFraction = *raw.SizingFraction
	}

	if raw.Benchmark != nil {
		c.Benchmark = *raw.Benchmark
	}

	if raw.StartTime != nil {
		c.StartTime = optional.Some(*raw.StartTime)
	}

	if raw.EndTime != nil {
		c.EndTime = optional.Some(*raw.EndTime)
	}

	return nil
}

// Validate checks the config before any simulation starts.
func (c *BacktestEngineV1Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "invalid backtest configuration", err)
	}

	if c.SizingPolicy == SizingFixedFraction && c.SizingFraction == 0 {
		return errors.New(errors.ErrCodeBacktestConfigError, "sizing_fraction must be positive under the fixed_fraction policy")
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && c.EndTime.Unwrap().Before(c.StartTime.Unwrap()) {
		return errors.New(errors.ErrCodeBacktestConfigError, "end_time is before start_time")
	}

	return nil
}

// GenerateSchema generates a JSON schema for the config.
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			if strings.Contains(t.String(), "engine.SizingPolicy") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: AllSizingPolicies,
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates the JSON schema as an indented string.
func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
