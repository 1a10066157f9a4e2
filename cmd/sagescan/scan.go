package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/yairfalse/sagescan/config"
	"github.com/yairfalse/sagescan/correlator"
	"github.com/yairfalse/sagescan/internal/emitter"
	"github.com/yairfalse/sagescan/lineage"
	awsdir "github.com/yairfalse/sagescan/providers/aws"
	"github.com/yairfalse/sagescan/telemetry"
)

// ScanCommand holds the resolved scan flags.
type ScanCommand struct {
	ConfigPath  string
	Region      string
	Env         string
	LineagePath string
	Once        bool
	Interval    time.Duration
	MetricsAddr string
	Debug       bool
}

// Run executes one-shot or continuous scanning.
func (s *ScanCommand) Run() error {
	cfg, err := s.loadConfig()
	if err != nil {
		return err
	}

	setLogLevel(cfg.Log.Level, s.Debug)

	ctx := context.Background()

	shutdown, err := telemetry.InitOTEL(ctx, telemetry.Config{
		ServiceName:    cfg.OTEL.ServiceName,
		ServiceVersion: version,
		Environment:    cfg.Env,
		OTELEndpoint:   cfg.OTEL.Endpoint,
		Insecure:       cfg.OTEL.Insecure,
	})
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}

	logger := telemetry.NewLogger(cfg.OTEL.ServiceName)

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("telemetry shutdown failed")
		}
	}()

	dir, err := awsdir.NewDirectory(ctx, cfg.Region)
	if err != nil {
		return fmt.Errorf("create directory client: %w", err)
	}

	ix, jobs, err := loadLineage(cfg.LineagePath)
	if err != nil {
		return err
	}

	metricsEmitter, err := emitter.NewMetricsEmitter()
	if err != nil {
		return fmt.Errorf("create metrics emitter: %w", err)
	}
	emit := emitter.NewMultiEmitter(
		emitter.NewStdoutEmitter(os.Stdout),
		metricsEmitter,
	)
	defer func() {
		if err := emit.Close(); err != nil {
			logger.Warn().Err(err).Msg("emitter close failed")
		}
	}()

	logger.Info().
		Str("region", cfg.Region).
		Str("env", cfg.Env).
		Bool("one_shot", cfg.Scanner.OneShot).
		Dur("interval", cfg.Scanner.Interval).
		Msg("sagescan starting")

	if cfg.Scanner.OneShot {
		return runScan(ctx, cfg, dir, ix, jobs, emit, logger)
	}

	return runContinuous(ctx, cfg, dir, ix, jobs, emit, logger)
}

// loadConfig merges the config file (or defaults) with flag overrides.
func (s *ScanCommand) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if s.ConfigPath != "" {
		loaded, err := config.Load(s.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if s.Region != "" {
		cfg.Region = s.Region
	}
	if s.Env != "" {
		cfg.Env = s.Env
	}
	if s.LineagePath != "" {
		cfg.LineagePath = s.LineagePath
	}
	if s.Once {
		cfg.Scanner.OneShot = true
	}
	if s.Interval > 0 {
		cfg.Scanner.Interval = s.Interval
	}
	if s.MetricsAddr != "" {
		cfg.Scanner.MetricsAddr = s.MetricsAddr
	}

	return cfg, cfg.Validate()
}

func setLogLevel(level string, debug bool) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	if debug {
		parsed = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(parsed)
}

// loadLineage reads the lineage dump, or returns empty indexes when no
// path is configured (records then carry no resolved links).
func loadLineage(path string) (*lineage.Index, *lineage.JobIndex, error) {
	if path == "" {
		return lineage.NewIndex(), lineage.NewJobIndex(), nil
	}

	ix, jobs, err := lineage.LoadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load lineage: %w", err)
	}
	return ix, jobs, nil
}

// runContinuous composes the scan loop, the metrics server and signal
// handling into one run group.
func runContinuous(ctx context.Context, cfg *config.Config, dir correlator.Directory, ix *lineage.Index, jobs *lineage.JobIndex, emit emitter.Emitter, logger *telemetry.Logger) error {
	var g run.Group

	g.Add(run.SignalHandler(ctx, syscall.SIGINT, syscall.SIGTERM))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(telemetry.PrometheusRegistry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: cfg.Scanner.MetricsAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
	g.Add(func() error {
		logger.Info().Str("addr", cfg.Scanner.MetricsAddr).Msg("starting metrics server")
		return srv.ListenAndServe()
	}, func(error) {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	})

	loopCtx, cancel := context.WithCancel(ctx)
	g.Add(func() error {
		ticker := time.NewTicker(cfg.Scanner.Interval)
		defer ticker.Stop()

		scanAndLog(loopCtx, cfg, dir, ix, jobs, emit, logger)
		for {
			select {
			case <-loopCtx.Done():
				return nil
			case <-ticker.C:
				scanAndLog(loopCtx, cfg, dir, ix, jobs, emit, logger)
			}
		}
	}, func(error) {
		cancel()
	})

	err := g.Run()
	var sigErr run.SignalError
	if errors.As(err, &sigErr) {
		logger.Info().Str("signal", sigErr.Signal.String()).Msg("shutting down")
		return nil
	}
	return err
}

// scanAndLog runs one scan in continuous mode; failures are logged,
// not fatal to the loop.
func scanAndLog(ctx context.Context, cfg *config.Config, dir correlator.Directory, ix *lineage.Index, jobs *lineage.JobIndex, emit emitter.Emitter, logger *telemetry.Logger) {
	if err := runScan(ctx, cfg, dir, ix, jobs, emit, logger); err != nil {
		logger.LogScanError(ctx, err)
	}
}

// runScan runs one full scan with fresh correlation tables.
func runScan(ctx context.Context, cfg *config.Config, dir correlator.Directory, ix *lineage.Index, jobs *lineage.JobIndex, emit emitter.Emitter, logger *telemetry.Logger) error {
	ctx, span := telemetry.Tracer.Start(ctx, "scan")
	defer span.End()

	logger.LogScanStart(ctx, cfg.Region, cfg.Env)

	rep := correlator.NewReport()
	corr := correlator.New(dir, ix, jobs, rep, cfg.Env, correlator.WithLogger(logger.Logger))

	start := time.Now()
	for rec, err := range corr.Records(ctx) {
		if err != nil {
			return err
		}
		if err := emit.Emit(ctx, rec); err != nil {
			return fmt.Errorf("emit %s: %w", rec.RecordURN(), err)
		}
	}
	duration := time.Since(start)

	telemetry.ScanDuration.Record(ctx, duration.Seconds())
	telemetry.EntitiesScanned.Add(ctx, int64(rep.EndpointsScanned+rep.ModelsScanned+rep.GroupsScanned))
	telemetry.RecordsEmitted.Add(ctx, int64(rep.RecordsEmitted))
	telemetry.ScanWarnings.Add(ctx, int64(len(rep.Warnings)))

	for _, w := range rep.Warnings {
		logger.WithContext(ctx).Warn().Str("key", w.Key).Msg(w.Message)
	}

	logger.LogScanComplete(ctx, rep.RecordsEmitted, len(rep.Warnings), float64(duration.Milliseconds()))

	return nil
}
