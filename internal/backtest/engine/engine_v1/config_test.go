package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (suite *ConfigTestSuite) TestDefaultConfigIsValid() {
	config := DefaultConfig()

	suite.NoError(config.Validate())
	suite.Equal(10000.0, config.InitialCapital)
	suite.Equal(0.001, config.CommissionRate)
	suite.Equal(0.0005, config.SlippageRate)
	suite.Equal(0.02, config.RiskFreeRate)
	suite.Equal(SizingAllInWhole, config.SizingPolicy)
	suite.True(config.Benchmark)
	suite.True(config.StartTime.IsNone())
	suite.True(config.EndTime.IsNone())
}

func (suite *ConfigTestSuite) TestPartialYAMLKeepsDefaults() {
	var config BacktestEngineV1Config

	doc := `
initial_capital: 50000
slippage_rate: 0
`
	suite.Require().NoError(yaml.Unmarshal([]byte(doc), &config))

	suite.Equal(50000.0, config.InitialCapital)
	suite.Equal(0.0, config.SlippageRate)
	// Untouched fields keep their defaults.
	suite.Equal(0.001, config.CommissionRate)
	suite.Equal(SizingAllInWhole, config.SizingPolicy)
}

func (suite *ConfigTestSuite) TestTimeRangeParsing() {
	var config BacktestEngineV1Config

	doc := `
start_time: 2024-01-02T00:00:00Z
end_time: 2024-06-28T00:00:00Z
`
	suite.Require().NoError(yaml.Unmarshal([]byte(doc), &config))
	suite.Require().NoError(config.Validate())

	suite.True(config.StartTime.IsSome())
	suite.True(config.EndTime.IsSome())
	suite.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), config.StartTime.Unwrap())
}

func (suite *ConfigTestSuite) TestValidationFailures() {
	tests := []struct {
		name   string
		mutate func(*BacktestEngineV1Config)
	}{
		{"zero capital", func(c *BacktestEngineV1Config) { c.InitialCapital = 0 }},
		{"negative capital", func(c *BacktestEngineV1Config) { c.InitialCapital = -100 }},
		{"negative commission", func(c *BacktestEngineV1Config) { c.CommissionRate = -0.001 }},
		{"negative slippage", func(c *BacktestEngineV1Config) { c.SlippageRate = -0.0005 }},
		{"unknown sizing policy", func(c *BacktestEngineV1Config) { c.SizingPolicy = "martingale" }},
		{"fraction above one", func(c *BacktestEngineV1Config) { c.SizingFraction = 1.5 }},
		{"zero fraction under fixed_fraction", func(c *BacktestEngineV1Config) {
			c.SizingPolicy = SizingFixedFraction
			c.SizingFraction = 0
		}},
		{"end before start", func(c *BacktestEngineV1Config) {
			var parsed BacktestEngineV1Config

			doc := `
start_time: 2024-06-28T00:00:00Z
end_time: 2024-01-02T00:00:00Z
`
			suite.Require().NoError(yaml.Unmarshal([]byte(doc), &parsed))
			*c = parsed
		}},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			config := DefaultConfig()
			tc.mutate(&config)

			err := config.Validate()
			suite.Error(err)
			suite.True(errors.HasCode(err, errors.ErrCodeBacktestConfigError))
		})
	}
}

func (suite *ConfigTestSuite) TestGenerateSchemaJSON() {
	config := DefaultConfig()

	schema, err := config.GenerateSchemaJSON()
	suite.Require().NoError(err)

	suite.Contains(schema, "initial_capital")
	suite.Contains(schema, "commission_rate")
	suite.Contains(schema, "sizing_policy")
	suite.Contains(schema, "all_in_whole")
	suite.Contains(schema, "backtest-engine-v1-config")
}
