package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/wiless/farfield"
	"github.com/wiless/farfield/antenna"
	"github.com/wiless/farfield/synth"
)

// AppConfig holds every setting of the app; flags, FFCALC_* environment
// variables and ffcalc.yaml all map onto these keys.
type AppConfig struct {
	LogLevel string `mapstructure:"log-level"`

	Data   string `mapstructure:"data"`
	Format string `mapstructure:"format"`

	Rows     int     `mapstructure:"rows"`
	Cols     int     `mapstructure:"cols"`
	Offset   int     `mapstructure:"offset"`
	RowPhase float64 `mapstructure:"row-phase"`
	ColPhase float64 `mapstructure:"col-phase"`
	Steer    string  `mapstructure:"steer"` // "theta,phi" in degrees, overrides the phases
	DX       float64 `mapstructure:"dx"`
	DY       float64 `mapstructure:"dy"`

	Qty      string  `mapstructure:"qty"`
	DB       bool    `mapstructure:"db"`
	Power    string  `mapstructure:"power"`
	Taper    string  `mapstructure:"taper"`
	Pedestal float64 `mapstructure:"pedestal"`

	Out    string `mapstructure:"out"`
	Render string `mapstructure:"render"`

	ScanFrom float64 `mapstructure:"scan-from"`
	ScanTo   float64 `mapstructure:"scan-to"`
	ScanStep float64 `mapstructure:"scan-step"`
	ScanPhi  float64 `mapstructure:"scan-phi"`
	Workers  int     `mapstructure:"workers"`

	ThetaStep float64 `mapstructure:"theta-step"`
	PhiStep   float64 `mapstructure:"phi-step"`
	ElemPower float64 `mapstructure:"element-power"`
}

func setDefaults() {
	viper.SetDefault("log-level", "info")
	viper.SetDefault("rows", 4)
	viper.SetDefault("cols", 4)
	viper.SetDefault("dx", 0.5)
	viper.SetDefault("dy", 0.5)
	viper.SetDefault("qty", farfield.TotalField.String())
	viper.SetDefault("db", true)
	viper.SetDefault("power", SumPolicy)
	viper.SetDefault("taper", "uniform")
	viper.SetDefault("scan-from", -60.0)
	viper.SetDefault("scan-to", 60.0)
	viper.SetDefault("scan-step", 5.0)
	viper.SetDefault("theta-step", 2.0)
	viper.SetDefault("phi-step", 5.0)
}

// SumPolicy is the default input power normalisation.
var SumPolicy = synth.SumMagnitude{}.Name()

// ReadAppConfig reads all the configuration for the app
func ReadAppConfig(configFile string) (*AppConfig, error) {
	setDefaults()
	viper.SetEnvPrefix("FFCALC")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("ffcalc")
	}
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %v", err)
		}
	} else {
		log.Infof("Using config %s", viper.ConfigFileUsed())
	}

	var cfg AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %v", err)
	}
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: %v", err)
	}
	log.SetLevel(lvl)
	log.Debugf("config: %+v", cfg)
	return &cfg, nil
}

// SynthConfig translates the app settings into a synthesis request.
func (c *AppConfig) SynthConfig() (synth.Config, error) {
	q, err := farfield.ParseQuantity(c.Qty)
	if err != nil {
		return synth.Config{}, err
	}
	power, ok := synth.PolicyByName(c.Power)
	if !ok {
		return synth.Config{}, fmt.Errorf("unknown power policy %q", c.Power)
	}
	taper, err := antenna.TaperByName(c.Taper, c.Rows, c.Cols, c.Pedestal)
	if err != nil {
		return synth.Config{}, err
	}
	steer, err := c.SteerCommand()
	if err != nil {
		return synth.Config{}, err
	}
	return synth.Config{
		Rows:        c.Rows,
		Cols:        c.Cols,
		IndexOffset: c.Offset,
		Steer:       steer,
		Quantity:    q,
		Decibels:    c.DB,
		Taper:       taper,
		Power:       power,
	}, nil
}

// SteerCommand returns the progressive phases, either given directly or
// derived from the "theta,phi" steering direction.
func (c *AppConfig) SteerCommand() (farfield.Steer, error) {
	if c.Steer == "" {
		return farfield.Steer{RowPhase: c.RowPhase, ColPhase: c.ColPhase}, nil
	}
	theta, phi, err := parsePair(c.Steer)
	if err != nil {
		return farfield.Steer{}, fmt.Errorf("steer %q: %v", c.Steer, err)
	}
	s := antenna.Wrapped(antenna.SteeringPhase(theta, phi, c.DX, c.DY))
	log.Debugf("Steering to theta=%.1f phi=%.1f: phases %v", theta, phi, s)
	return s, nil
}

func parsePair(s string) (a, b float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, errors.New("want two comma separated values")
	}
	if a, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, err
	}
	if b, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
