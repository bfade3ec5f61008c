// ffcalc synthesises phased-array far-field patterns from per-port solver
// exports and renders them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wiless/farfield"
	"github.com/wiless/farfield/dataset"
	"github.com/wiless/farfield/render"
	"github.com/wiless/farfield/synth"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:           "ffcalc",
	Short:         "Phased array far-field synthesis",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Synthesise one steered pattern",
	RunE:  runCalc,
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the beam across theta and report the strongest steering",
	RunE:  runScan,
}

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Write a synthetic per-port dataset for an ideal array",
	RunE:  runSynth,
}

func init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./ffcalc.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "panic|fatal|error|warn|info|debug|trace")

	for _, cmd := range []*cobra.Command{calcCmd, scanCmd, synthCmd} {
		f := cmd.Flags()
		f.Int("rows", 4, "array rows M")
		f.Int("cols", 4, "array columns N")
		f.Int("offset", 0, "index offset of the [row,col] groups in port names")
		f.Float64("dx", 0.5, "row spacing in wavelengths")
		f.Float64("dy", 0.5, "column spacing in wavelengths")
		f.String("out", "", "output file")
	}
	for _, cmd := range []*cobra.Command{calcCmd, scanCmd} {
		f := cmd.Flags()
		f.String("data", "", "per-port far-field dataset (.csv or .json)")
		f.String("format", "", "dataset format, csv or json (default from extension)")
		f.String("qty", farfield.TotalField.String(), strings.Join(farfield.Quantities[:], "|"))
		f.Bool("db", true, "scale to dB")
		f.String("power", SumPolicy, "input power policy: sum|real|accepted")
		f.String("taper", "uniform", "amplitude taper: uniform|cosine")
		f.Float64("pedestal", 0, "cosine taper pedestal in [0,1]")
	}
	calcCmd.Flags().Float64("row-phase", 0, "progressive phase per row (degree)")
	calcCmd.Flags().Float64("col-phase", 0, "progressive phase per column (degree)")
	calcCmd.Flags().String("steer", "", "steer the beam to theta,phi (degree) instead of giving phases")
	calcCmd.Flags().String("render", "", "renderer: "+strings.Join(render.Formats, "|")+" (default from --out extension)")

	scanCmd.Flags().Float64("scan-from", -60, "first steering theta (degree)")
	scanCmd.Flags().Float64("scan-to", 60, "last steering theta (degree)")
	scanCmd.Flags().Float64("scan-step", 5, "steering theta step (degree)")
	scanCmd.Flags().Float64("scan-phi", 0, "steering phi (degree)")
	scanCmd.Flags().Int("workers", 0, "parallel syntheses (default GOMAXPROCS)")

	synthCmd.Flags().Float64("theta-step", 2, "theta sampling step (degree)")
	synthCmd.Flags().Float64("phi-step", 5, "phi sampling step (degree)")
	synthCmd.Flags().Float64("element-power", 0, "element pattern |cos(theta)|^q exponent")

	rootCmd.AddCommand(calcCmd, scanCmd, synthCmd)
}

func load(cmd *cobra.Command) (*AppConfig, error) {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if err := viper.BindPFlags(cmd.InheritedFlags()); err != nil {
		return nil, err
	}
	return ReadAppConfig(configFile)
}

func runCalc(cmd *cobra.Command, args []string) error {
	cfg, err := load(cmd)
	if err != nil {
		return err
	}
	sc, err := cfg.SynthConfig()
	if err != nil {
		return err
	}
	samples, err := dataset.Load(cfg.Data, cfg.Format)
	if err != nil {
		return err
	}
	log.Infof("Loaded %d ports from %s", len(samples), cfg.Data)

	res, err := synth.Calc(samples, sc)
	if err != nil {
		return err
	}
	color.New(color.FgGreen, color.Bold).Printf("%s peak %.2f at theta=%.1f phi=%.1f (steer %v)\n",
		res.Label, res.Peak, res.PeakTheta, res.PeakPhi, res.Steer)

	if cfg.Out == "" {
		return nil
	}
	return writeResult(cfg.Out, cfg.Render, res)
}

func writeResult(path, format string, res *synth.Result) error {
	if format == "" {
		format = filepath.Ext(path)
	}
	rd, err := render.ByName(format)
	if err != nil {
		return err
	}
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rd.Render(fd, res); err != nil {
		fd.Close()
		return err
	}
	log.Infof("Wrote %s", path)
	return fd.Close()
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := load(cmd)
	if err != nil {
		return err
	}
	sc, err := cfg.SynthConfig()
	if err != nil {
		return err
	}
	samples, err := dataset.Load(cfg.Data, cfg.Format)
	if err != nil {
		return err
	}
	if cfg.ScanStep <= 0 {
		return fmt.Errorf("scan-step must be positive, got %v", cfg.ScanStep)
	}

	var steers []farfield.Steer
	var thetas []float64
	for theta := cfg.ScanFrom; theta <= cfg.ScanTo+1e-9; theta += cfg.ScanStep {
		c := *cfg
		c.Steer = fmt.Sprintf("%g,%g", theta, cfg.ScanPhi)
		s, err := c.SteerCommand()
		if err != nil {
			return err
		}
		steers = append(steers, s)
		thetas = append(thetas, theta)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	beams, best, err := synth.Scan(ctx, samples, sc, steers, cfg.Workers)
	if err != nil {
		return err
	}

	hi := color.New(color.FgGreen, color.Bold)
	fmt.Printf("%8s %16s %10s %8s %8s\n", "theta", "phases", synth.Label(sc.Quantity, sc.Decibels), "pk.theta", "pk.phi")
	for i, b := range beams {
		line := fmt.Sprintf("%8.1f %16v %10.2f %8.1f %8.1f", thetas[i], b.Steer, b.Peak, b.PeakTheta, b.PeakPhi)
		if i == best {
			hi.Println(line)
			continue
		}
		fmt.Println(line)
	}
	if cfg.Out != "" {
		c := sc
		c.Steer = beams[best].Steer
		res, err := synth.Calc(samples, c)
		if err != nil {
			return err
		}
		return writeResult(cfg.Out, "", res)
	}
	return nil
}

func runSynth(cmd *cobra.Command, args []string) error {
	cfg, err := load(cmd)
	if err != nil {
		return err
	}
	if cfg.Out == "" {
		return fmt.Errorf("synth needs --out")
	}
	sc := dataset.SyntheticConfig{
		Rows:         cfg.Rows,
		Cols:         cfg.Cols,
		Offset:       cfg.Offset,
		DX:           cfg.DX,
		DY:           cfg.DY,
		ElementPower: cfg.ElemPower,
		Prefix:       "Port",
		Theta:        dataset.Axis(0, 180, cfg.ThetaStep),
		Phi:          dataset.Axis(0, 360-cfg.PhiStep, cfg.PhiStep),
	}
	samples, err := dataset.Synthetic(sc)
	if err != nil {
		return err
	}
	fd, err := os.Create(cfg.Out)
	if err != nil {
		return err
	}
	if err := dataset.WriteCSV(fd, samples); err != nil {
		fd.Close()
		return err
	}
	log.Infof("Wrote %d ports (%dx%d bins) to %s", len(samples), len(sc.Theta), len(sc.Phi), cfg.Out)
	return fd.Close()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
