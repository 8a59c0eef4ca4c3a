package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/datacenter-sim/dcsim/sim"
)

var (
	// CLI flags for the experiment
	configPath  string  // Optional YAML file with experiment parameters
	numServers  int     // Number of servers N
	arrivalRate float64 // Poisson arrival rate λ
	serviceRate float64 // Exponential service rate μ per server
	duration    float64 // Total simulated time
	dt          float64 // Tick size
	timeoutFlag string  // Queueing timeout, "inf" disables drops
	seed        int64   // Master seed for every random stream
	policy      string  // Routing policy name
	traceLevel  string  // Decision trace level

	// CLI flags for output
	logLevel     string // Log verbosity level
	outputFormat string // Report format: text, json or yaml
	promTextfile string // Optional Prometheus textfile destination
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "dcsim",
	Short: "Discrete-time simulator for data center request routing",
}

// runCmd executes one simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one data center simulation",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		report := s.Run()

		if err := writeReports(os.Stdout, outputFormat, report); err != nil {
			logrus.Fatalf("%v", err)
		}
		if s.Trace != nil && outputFormat == formatText {
			printTraceSummary(os.Stdout, report.Policy, s.Trace)
		}
		if err := exportReports(promTextfile, report); err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Info("Simulation complete.")
	},
}

// compareCmd runs every routing policy on the same workload
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every routing policy under identical parameters and seed",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveConfig(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		runs, err := comparePolicies(cfg, sim.ValidRoutingPolicyNames())
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		reports := reportsOf(runs)

		if err := writeReports(os.Stdout, outputFormat, reports...); err != nil {
			logrus.Fatalf("%v", err)
		}
		if outputFormat == formatText {
			printComparison(os.Stdout, reports)
			for _, r := range runs {
				if r.Sim.Trace != nil {
					printTraceSummary(os.Stdout, r.Report.Policy, r.Sim.Trace)
				}
			}
		}
		if err := exportReports(promTextfile, reports...); err != nil {
			logrus.Fatalf("%v", err)
		}

		logrus.Info("Comparison complete.")
	},
}

func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// resolveConfig layers the experiment parameters: built-in defaults, then the
// --config file, then any flag the user set explicitly. Flags left at their
// default never overwrite file values.
func resolveConfig(cmd *cobra.Command) (sim.Config, error) {
	cfg := sim.DefaultConfig()
	if configPath != "" {
		fileCfg, err := loadConfigFile(configPath)
		if err != nil {
			return sim.Config{}, err
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("servers") {
		cfg.NumServers = numServers
	}
	if flags.Changed("arrival-rate") {
		cfg.ArrivalRate = arrivalRate
	}
	if flags.Changed("service-rate") {
		cfg.ServiceRate = serviceRate
	}
	if flags.Changed("duration") {
		cfg.Duration = duration
	}
	if flags.Changed("dt") {
		cfg.DT = dt
	}
	if flags.Changed("timeout") {
		t, err := parseTimeout(timeoutFlag)
		if err != nil {
			return sim.Config{}, err
		}
		cfg.RequestTimeout = t
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("policy") {
		cfg.Policy = policy
	}
	if flags.Changed("trace-level") {
		cfg.TraceLevel = traceLevel
	}

	if err := cfg.Validate(); err != nil {
		return sim.Config{}, err
	}
	cfg.Policy = sim.CanonicalRoutingPolicy(cfg.Policy)
	return cfg, nil
}

// parseTimeout accepts a positive number or "inf" (any case, optional sign).
func parseTimeout(s string) (float64, error) {
	t, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid --timeout %q: %v", sim.ErrInvalidConfig, s, err)
	}
	return t, nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// registerExperimentFlags binds the shared experiment flags to a subcommand.
// Defaults mirror sim.DefaultConfig so --help shows the reference experiment.
func registerExperimentFlags(c *cobra.Command) {
	def := sim.DefaultConfig()

	c.Flags().StringVar(&configPath, "config", "", "YAML file with experiment parameters (flags override file values)")
	c.Flags().IntVar(&numServers, "servers", def.NumServers, "Number of servers")
	c.Flags().Float64Var(&arrivalRate, "arrival-rate", def.ArrivalRate, "Poisson arrival rate (requests per time unit)")
	c.Flags().Float64Var(&serviceRate, "service-rate", def.ServiceRate, "Exponential service rate per server")
	c.Flags().Float64Var(&duration, "duration", def.Duration, "Total simulated time")
	c.Flags().Float64Var(&dt, "dt", def.DT, "Tick size")
	c.Flags().StringVar(&timeoutFlag, "timeout", strconv.FormatFloat(def.RequestTimeout, 'g', -1, 64), "Max queueing wait before a request is dropped (\"inf\" disables drops)")
	c.Flags().Int64Var(&seed, "seed", def.Seed, "Seed for arrival and service sampling")
	c.Flags().StringVar(&traceLevel, "trace-level", "none", "Decision trace level (none, decisions)")

	c.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	c.Flags().StringVar(&outputFormat, "format", formatText, "Report format (text, json, yaml)")
	c.Flags().StringVar(&promTextfile, "prom-textfile", "", "Also write report gauges to this Prometheus textfile")
}

// init sets up CLI flags and subcommands
func init() {
	registerExperimentFlags(runCmd)
	runCmd.Flags().StringVar(&policy, "policy", sim.PolicyRoundRobin, fmt.Sprintf("Routing policy %v", sim.ValidRoutingPolicyNames()))

	registerExperimentFlags(compareCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(compareCmd)
}
