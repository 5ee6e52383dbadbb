package strategy

import (
	"gopkg.in/yaml.v3"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Config selects a strategy variant and its parameters, typically decoded
// from a YAML document:
//
//	name: ma_crossover
//	params:
//	  fast_window: 3
//	  slow_window: 5
//
// Omitted params fall back to the variant's defaults.
type Config struct {
	Name   string    `yaml:"name"`
	Params yaml.Node `yaml:"params"`
}

// Default parameter values per variant.
var (
	DefaultMACrossoverParams    = MACrossoverParams{FastWindow: 50, SlowWindow: 200}
	DefaultRSIParams            = RSIParams{Period: 14, Oversold: 30, Overbought: 70}
	DefaultMACDParams           = MACDParams{FastEMA: 12, SlowEMA: 26, SignalEMA: 9}
	DefaultBollingerBandsParams = BollingerBandsParams{Window: 20, NumStdDev: 2.0}
	DefaultMeanReversionParams  = MeanReversionParams{Window: 20, EntryZ: 2.0, ExitZ: 0.5}
)

// AllStrategyNames lists every registered variant.
func AllStrategyNames() []string {
	return []string{
		"ma_crossover",
		"rsi",
		"macd",
		"bollinger_bands",
		"mean_reversion",
		"buy_and_hold",
	}
}

// NewFromConfig constructs a strategy from a Config. Unknown names and
// invalid parameter combinations fail before any simulation starts.
func NewFromConfig(cfg Config) (Strategy, error) {
	switch cfg.Name {
	case "ma_crossover":
		params := DefaultMACrossoverParams
		if err := decodeParams(cfg.Params, &params); err != nil {
			return nil, err
		}

		return NewMACrossover(params)
	case "rsi":
		params := DefaultRSIParams
		if err := decodeParams(cfg.Params, &params); err != nil {
			return nil, err
		}

		return NewRSI(params)
	case "macd":
		params := DefaultMACDParams
		if err := decodeParams(cfg.Params, &params); err != nil {
			return nil, err
		}

		return NewMACD(params)
	case "bollinger_bands":
		params := DefaultBollingerBandsParams
		if err := decodeParams(cfg.Params, &params); err != nil {
			return nil, err
		}

		return NewBollingerBands(params)
	case "mean_reversion":
		params := DefaultMeanReversionParams
		if err := decodeParams(cfg.Params, &params); err != nil {
			return nil, err
		}

		return NewMeanReversion(params)
	case "buy_and_hold":
		return NewBuyAndHold(), nil
	default:
		return nil, errors.Newf(errors.ErrCodeStrategyNotFound, "unknown strategy: %q", cfg.Name)
	}
}

func decodeParams(node yaml.Node, out any) error {
	if node.IsZero() {
		return nil
	}

	if err := node.Decode(out); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "failed to decode strategy parameters", err)
	}

	return nil
}
