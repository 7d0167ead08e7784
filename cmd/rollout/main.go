// Command rollout runs a policy against one of the demo environments and
// streams the collected experience to the configured sinks.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"rollout/pkg/config"
	"rollout/pkg/demo"
	"rollout/pkg/driver"
	"rollout/pkg/env"
	"rollout/pkg/logx"
	"rollout/pkg/metrics"
	"rollout/pkg/policy"
	"rollout/pkg/replay"
	"rollout/pkg/version"
)

var configPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "rollout",
		Short: "Collect reinforcement-learning experience from simulated environments",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a random policy against the configured environment",
		RunE:  runRollout,
	}
	runCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML config (defaults apply when omitted)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("rollout %s (commit %s, built %s)\n",
				version.Version, version.Commit, version.Date)
		},
	}

	rootCmd.AddCommand(runCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runRollout(cmd *cobra.Command, args []string) error {
	log := logx.NewLogger("rollout")

	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	runID := uuid.New().String()
	log.Info("starting run %s: env=%s batch=%d max_steps=%d max_episodes=%d seed=%d",
		runID, cfg.Environment, cfg.BatchSize, cfg.MaxSteps, cfg.MaxEpisodes, cfg.Seed)

	switch cfg.Environment {
	case config.EnvCartPole:
		return collect(cfg, log, runID, demo.NewCartPole(cfg.Seed))
	case config.EnvChainWalk:
		return collect(cfg, log, runID, demo.NewChainWalk(21, 0.01))
	default:
		return logx.Errorf("unknown environment %q", cfg.Environment)
	}
}

// collect wires the wrapper chain, sinks, and driver around e, then runs the
// rollout to its budget.
func collect[O any](cfg *config.Config, log *logx.Logger, runID string, e env.Environment[O, int]) error {
	var wrapped env.Environment[O, int] = e
	if cfg.ActionRepeat > 1 {
		wrapped = env.NewActionRepeat(wrapped, cfg.ActionRepeat)
	}
	if cfg.TimeLimit > 0 {
		wrapped = env.NewTimeLimit(wrapped, cfg.TimeLimit)
	}
	pol := policy.NewRandom[O, int](wrapped.ActionSpace())

	d := driver.New[O, int, policy.NoState](wrapped, pol, driver.Options{
		BatchSize:   cfg.BatchSize,
		MaxSteps:    cfg.MaxSteps,
		MaxEpisodes: cfg.MaxEpisodes,
		Seed:        cfg.Seed,
	})

	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		d.Listen(metrics.NewRecorder[O, int, policy.NoState](reg, runID))
		go serveMetrics(log, cfg.Metrics.Addr, reg)
	}

	var store *replay.Store[O, int, policy.NoState]
	if cfg.Replay.Enabled {
		var err error
		store, err = replay.Open[O, int, policy.NoState](cfg.Replay.Path, runID)
		if err != nil {
			return logx.Wrap(err, "open replay store")
		}
		defer store.Close()
		d.Listen(store)
	}

	if _, _, err := d.Run(); err != nil {
		return logx.Wrap(err, "rollout failed")
	}

	log.Info("run %s finished: steps=%d episodes=%d", runID, d.NumSteps(), d.NumEpisodes())

	if store != nil {
		if err := store.Err(); err != nil {
			return logx.Wrap(err, "replay store")
		}
		if err := printReturns(store); err != nil {
			return err
		}
	}
	return nil
}

func printReturns[O any](store *replay.Store[O, int, policy.NoState]) error {
	returns, err := store.EpisodeReturns()
	if err != nil {
		return logx.Wrap(err, "query episode returns")
	}
	if len(returns) == 0 {
		return nil
	}
	var total float64
	for _, r := range returns {
		total += r.Return
	}
	fmt.Printf("episodes recorded: %d, mean return: %.3f\n",
		len(returns), total/float64(len(returns)))
	return nil
}

func serveMetrics(log *logx.Logger, addr string, reg *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	log.Info("serving metrics on %s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("metrics server: %v", err)
	}
}
