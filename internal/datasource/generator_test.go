package datasource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

type GeneratorTestSuite struct {
	suite.Suite
}

func TestGeneratorSuite(t *testing.T) {
	suite.Run(t, new(GeneratorTestSuite))
}

func (suite *GeneratorTestSuite) baseConfig(pattern SimulationPattern) GeneratorConfig {
	return GeneratorConfig{
		Symbol:    "TEST",
		StartTime: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		Interval:  24 * time.Hour,
		NumBars:   100,
		Pattern:   pattern,
		Seed:      42,
	}
}

func (suite *GeneratorTestSuite) TestGeneratedSeriesIsValid() {
	for _, pattern := range []SimulationPattern{PatternIncreasing, PatternDecreasing, PatternVolatile} {
		suite.Run(string(pattern), func() {
			series, err := NewGenerator(suite.baseConfig(pattern)).Generate()
			suite.Require().NoError(err)
			suite.Len(series, 100)
			suite.NoError(types.ValidateSeries(series))

			for _, bar := range series {
				suite.Equal("TEST", bar.Symbol)
				suite.Greater(bar.Close, 0.0)
				suite.GreaterOrEqual(bar.High, bar.Open)
				suite.GreaterOrEqual(bar.High, bar.Close)
				suite.LessOrEqual(bar.Low, bar.Open)
				suite.LessOrEqual(bar.Low, bar.Close)
				suite.Greater(bar.Volume, 0.0)
			}
		})
	}
}

func (suite *GeneratorTestSuite) TestSeededGenerationIsReproducible() {
	first, err := NewGenerator(suite.baseConfig(PatternVolatile)).Generate()
	suite.Require().NoError(err)

	second, err := NewGenerator(suite.baseConfig(PatternVolatile)).Generate()
	suite.Require().NoError(err)

	suite.Equal(first, second)
}

func (suite *GeneratorTestSuite) TestIncreasingPatternTrendsUp() {
	series, err := NewGenerator(suite.baseConfig(PatternIncreasing)).Generate()
	suite.Require().NoError(err)

	suite.Greater(series[len(series)-1].Close, series[0].Close)
}

func (suite *GeneratorTestSuite) TestDecreasingPatternTrendsDown() {
	series, err := NewGenerator(suite.baseConfig(PatternDecreasing)).Generate()
	suite.Require().NoError(err)

	suite.Less(series[len(series)-1].Close, series[0].Close)
}

func (suite *GeneratorTestSuite) TestConfigValidation() {
	tests := []struct {
		name   string
		mutate func(*GeneratorConfig)
	}{
		{"missing symbol", func(c *GeneratorConfig) { c.Symbol = "" }},
		{"missing start time", func(c *GeneratorConfig) { c.StartTime = time.Time{} }},
		{"zero interval", func(c *GeneratorConfig) { c.Interval = 0 }},
		{"zero bars", func(c *GeneratorConfig) { c.NumBars = 0 }},
		{"unknown pattern", func(c *GeneratorConfig) { c.Pattern = "sideways" }},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			config := suite.baseConfig(PatternVolatile)
			tc.mutate(&config)

			_, err := NewGenerator(config).Generate()
			suite.Error(err)
			suite.True(errors.IsConfigError(err))
		})
	}
}
