package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	lantern "github.com/LanternTeam/Lantern"
	"github.com/LanternTeam/Lantern/discord"
	"github.com/LanternTeam/Lantern/lanternjson"
)

// lantern-replay feeds a newline-delimited file of recorded gateway payloads
// through a fresh state, serving state metrics while it runs. Useful for
// offline inspection of what a session's events leave behind in cache.

func main() {
	_ = godotenv.Load()

	var (
		configPath  string
		eventsPath  string
		metricsAddr string
		wait        bool
	)

	flag.StringVar(&configPath, "config", envOr("LANTERN_CONFIG", ""), "path to a JSON or YAML configuration file")
	flag.StringVar(&eventsPath, "events", envOr("LANTERN_EVENTS", ""), "path to a newline-delimited gateway payload file, - for stdin")
	flag.StringVar(&metricsAddr, "metrics", envOr("LANTERN_METRICS_ADDRESS", ":10000"), "prometheus listen address, empty to disable")
	flag.BoolVar(&wait, "wait", false, "keep serving metrics after the replay finishes, until interrupted")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	config := lantern.DefaultConfiguration()

	if configPath != "" {
		provider := lantern.NewConfigProviderFromPath(configPath)

		loaded, err := provider.GetConfig(ctx)
		if err != nil {
			logger.Error("Failed to load configuration", "error", err)
			os.Exit(1)
		}

		config = *loaded
	}

	state := lantern.NewState(logger, config)

	if metricsAddr != "" {
		startMetricsServer(logger, metricsAddr)
	}

	go state.RunHistorySweeper(ctx, lantern.DefaultSweepInterval)

	events, err := openEvents(eventsPath)
	if err != nil {
		logger.Error("Failed to open event stream", "error", err)
		os.Exit(1)
	}

	start := time.Now()

	processed, failed := replay(ctx, state, events, logger)

	lantern.CollectStateMetrics(state)

	logger.Info("Replay finished",
		"processed", processed,
		"failed", failed,
		"duration", time.Since(start).String())

	if wait {
		<-ctx.Done()
	}
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func openEvents(path string) (*os.File, error) {
	switch path {
	case "":
		return nil, errors.New("no event file given")
	case "-":
		return os.Stdin, nil
	default:
		return os.Open(path)
	}
}

func replay(ctx context.Context, state *lantern.State, events *os.File, logger *slog.Logger) (processed, failed int) {
	defer events.Close()

	scanner := bufio.NewScanner(events)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)

	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var payload discord.GatewayPayload

		if err := lanternjson.Unmarshal(line, &payload); err != nil {
			logger.Warn("Skipping malformed payload line", "error", err)
			failed++

			continue
		}

		_, _, err := state.Dispatch(ctx, &payload)
		if err != nil && !errors.Is(err, lantern.ErrNoDispatchHandler) {
			logger.Warn("Failed to dispatch event", "event_type", payload.Type, "error", err)
			failed++

			continue
		}

		processed++
	}

	if err := scanner.Err(); err != nil {
		logger.Error("Event stream read failed", "error", err)
	}

	return processed, failed
}

func startMetricsServer(logger *slog.Logger, addr string) {
	registry := prometheus.NewPedanticRegistry()

	registry.MustRegister(
		lantern.EventMetrics.EventsTotal,

		lantern.StateMetrics.Guilds,
		lantern.StateMetrics.Roles,
		lantern.StateMetrics.Channels,
		lantern.StateMetrics.Users,
		lantern.StateMetrics.Invites,
		lantern.StateMetrics.Webhooks,
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		WriteTimeout:      time.Second * 10,
		ReadTimeout:       time.Second * 10,
		ReadHeaderTimeout: time.Second * 10,
		IdleTimeout:       time.Second * 10,
		ErrorLog:          slog.NewLogLogger(slog.With("service", "prometheus").Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting Prometheus HTTP server", "host", server.Addr)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(fmt.Errorf("failed to start Prometheus HTTP server: %w", err))
		}
	}()
}
