package strategy

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

type RegistryTestSuite struct {
	suite.Suite
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) configFromYAML(doc string) Config {
	var cfg Config
	suite.Require().NoError(yaml.Unmarshal([]byte(doc), &cfg))

	return cfg
}

func (suite *RegistryTestSuite) TestNewFromConfigWithParams() {
	cfg := suite.configFromYAML(`
name: ma_crossover
params:
  fast_window: 3
  slow_window: 5
`)

	s, err := NewFromConfig(cfg)
	suite.NoError(err)
	suite.Equal("ma_crossover", s.Name())
	suite.Equal(6, s.MinBarsRequired())
}

func (suite *RegistryTestSuite) TestNewFromConfigDefaults() {
	tests := []struct {
		name            string
		expectedMinBars int
	}{
		{"ma_crossover", 201},
		{"rsi", 15},
		{"macd", 36},
		{"bollinger_bands", 20},
		{"mean_reversion", 20},
		{"buy_and_hold", 1},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			s, err := NewFromConfig(Config{Name: tc.name})
			suite.NoError(err)
			suite.Equal(tc.name, s.Name())
			suite.Equal(tc.expectedMinBars, s.MinBarsRequired())
		})
	}
}

func (suite *RegistryTestSuite) TestNewFromConfigUnknownName() {
	_, err := NewFromConfig(Config{Name: "momentum"})
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyNotFound))
}

func (suite *RegistryTestSuite) TestNewFromConfigInvalidParams() {
	cfg := suite.configFromYAML(`
name: ma_crossover
params:
  fast_window: 200
  slow_window: 50
`)

	_, err := NewFromConfig(cfg)
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyConfigError))
}

func (suite *RegistryTestSuite) TestAllStrategyNamesConstructible() {
	for _, name := range AllStrategyNames() {
		s, err := NewFromConfig(Config{Name: name})
		suite.NoError(err, name)
		suite.Equal(name, s.Name())
	}
}
