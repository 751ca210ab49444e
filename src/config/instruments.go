package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// StrategyParameters defaults mirror the deployed configuration: an 80%
// corridor over 30 days, checked once a minute.
type StrategyParameters struct {
	IntervalSize       float64 `json:"interval_size"`
	DaysBackToConsider int     `json:"days_back_to_consider"`
	CheckInterval      int     `json:"check_interval"`
	StopLossPercentage float64 `json:"stop_loss_percentage"`
	QuantityLimit      int64   `json:"quantity_limit"`
}

func (p *StrategyParameters) UnmarshalJSON(data []byte) error {
	type parameters StrategyParameters

	defaults := parameters{
		IntervalSize:       0.8,
		DaysBackToConsider: 30,
		CheckInterval:      60,
		StopLossPercentage: 0.1,
		QuantityLimit:      0,
	}

	if err := json.Unmarshal(data, &defaults); err != nil {
		return err
	}

	*p = StrategyParameters(defaults)

	return p.Validate()
}

func (p *StrategyParameters) Validate() error {
	if p.IntervalSize < 0 || p.IntervalSize > 1 {
		return errors.New(fmt.Sprintf("interval_size %f is out of [0, 1]", p.IntervalSize))
	}

	if p.DaysBackToConsider <= 0 {
		return errors.New(fmt.Sprintf("days_back_to_consider %d must be positive", p.DaysBackToConsider))
	}

	if p.CheckInterval <= 0 {
		return errors.New(fmt.Sprintf("check_interval %d must be positive", p.CheckInterval))
	}

	if p.StopLossPercentage < 0 || p.StopLossPercentage > 1 {
		return errors.New(fmt.Sprintf("stop_loss_percentage %f is out of [0, 1]", p.StopLossPercentage))
	}

	if p.QuantityLimit < 0 {
		return errors.New(fmt.Sprintf("quantity_limit %d must not be negative", p.QuantityLimit))
	}

	return nil
}

type InstrumentStrategyConfig struct {
	Name       string             `json:"name"`
	Parameters StrategyParameters `json:"parameters"`
}

type InstrumentConfig struct {
	Figi     string                   `json:"figi"`
	Strategy InstrumentStrategyConfig `json:"strategy"`
}

type InstrumentsConfig struct {
	Instruments []InstrumentConfig `json:"instruments"`
}

func GetInstruments(filename string) (InstrumentsConfig, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return InstrumentsConfig{}, err
	}

	var parsed InstrumentsConfig
	if err = json.Unmarshal(content, &parsed); err != nil {
		return InstrumentsConfig{}, err
	}

	if len(parsed.Instruments) == 0 {
		return InstrumentsConfig{}, errors.New(fmt.Sprintf("%s: no instruments configured", filename))
	}

	// an omitted parameters block never reaches UnmarshalJSON
	for index, instrument := range parsed.Instruments {
		if instrument.Strategy.Parameters == (StrategyParameters{}) {
			parsed.Instruments[index].Strategy.Parameters = StrategyParameters{
				IntervalSize:       0.8,
				DaysBackToConsider: 30,
				CheckInterval:      60,
				StopLossPercentage: 0.1,
				QuantityLimit:      0,
			}
		}
	}

	return parsed, nil
}
