package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"detour/pkg/apperror"
	"detour/pkg/cache"
	"detour/pkg/config"
	"detour/pkg/logger"
	"detour/pkg/metrics"
	"detour/pkg/telemetry"
	"detour/services/router-svc/internal/converter"
	"detour/services/router-svc/internal/generator"
	"detour/services/router-svc/internal/service"
)

// options флаги командной строки
type options struct {
	configPath string
	batchPath  string
	source     int
	target     int
	hasSource  bool
	hasTarget  bool
	overrides  map[string]any
}

// flagKeys связывает флаги с ключами конфигурации
var flagKeys = map[string]string{
	"edges":     "input.edges_path",
	"customers": "input.customers_path",
	"format":    "output.format",
	"out":       "output.path",
	"workers":   "query.workers",
	"timeout":   "query.timeout",
	"log-level": "log.level",
	"cache":     "cache.enabled",
	"metrics":   "metrics.enabled",
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("router-svc", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{overrides: make(map[string]any)}
	fs.StringVar(&opts.configPath, "config", "", "path to config.yaml")
	fs.StringVar(&opts.batchPath, "batch", "", "file of \"source target\" lines")
	fs.IntVar(&opts.source, "source", 0, "source vertex")
	fs.IntVar(&opts.target, "target", 0, "target vertex")

	edges := fs.String("edges", "", "edge list file")
	customers := fs.String("customers", "", "customer list file")
	format := fs.String("format", "", "output format: text, json, csv, xlsx, pdf")
	out := fs.String("out", "", "output file, stdout when empty")
	workers := fs.Int("workers", 0, "batch worker pool size")
	timeout := fs.Duration("timeout", 0, "per-query timeout")
	logLevel := fs.String("log-level", "", "debug, info, warn, error")
	useCache := fs.Bool("cache", false, "cache route answers")
	useMetrics := fs.Bool("metrics", false, "serve Prometheus metrics")

	if err := fs.Parse(args); err != nil {
		return nil, apperror.Wrap(err, apperror.CodeInvalidArgument, "invalid flags")
	}
	if fs.NArg() > 0 {
		return nil, apperror.New(apperror.CodeInvalidArgument,
			fmt.Sprintf("unexpected arguments: %s", strings.Join(fs.Args(), " ")))
	}

	values := map[string]any{
		"edges":     *edges,
		"customers": *customers,
		"format":    *format,
		"out":       *out,
		"workers":   *workers,
		"timeout":   *timeout,
		"log-level": *logLevel,
		"cache":     *useCache,
		"metrics":   *useMetrics,
	}

	// Только явно заданные флаги перекрывают конфигурацию
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "source":
			opts.hasSource = true
		case "target":
			opts.hasTarget = true
		}
		if key, ok := flagKeys[f.Name]; ok {
			opts.overrides[key] = values[f.Name]
		}
	})

	if opts.hasSource != opts.hasTarget {
		return nil, apperror.New(apperror.CodeInvalidArgument, "-source and -target must be given together")
	}
	if opts.batchPath != "" && opts.hasSource {
		return nil, apperror.New(apperror.CodeInvalidArgument, "-batch cannot be combined with -source/-target")
	}

	return opts, nil
}

func loadConfig(opts *options) (*config.Config, error) {
	loaderOpts := []config.LoaderOption{config.WithOverrides(opts.overrides)}
	if opts.configPath != "" {
		if _, err := os.Stat(opts.configPath); err != nil {
			return nil, apperror.Wrap(err, apperror.CodeNotFound, "config file not found").
				WithDetails("path", opts.configPath)
		}
		loaderOpts = append(loaderOpts, config.WithConfigPaths(opts.configPath))
	}
	return config.NewLoader(loaderOpts...).Load()
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	opts, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger.InitWithConfig(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	})
	log := logger.WithService(cfg.App.Name)

	if cfg.Tracing.Enabled {
		tp, err := telemetry.Init(ctx, telemetry.Config{
			Enabled:     true,
			Endpoint:    cfg.Tracing.Endpoint,
			ServiceName: cfg.Tracing.ServiceName,
			Version:     cfg.App.Version,
			Environment: cfg.App.Environment,
			SampleRate:  cfg.Tracing.SampleRate,
		})
		if err != nil {
			log.Warn("Failed to init telemetry", "error", err)
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tp.Shutdown(shutdownCtx); err != nil {
					log.Warn("Failed to shutdown telemetry", "error", err)
				}
			}()
			log.Info("Telemetry initialized", "endpoint", cfg.Tracing.Endpoint)
		}
	}

	routerOpts := []service.Option{
		service.WithWorkers(cfg.Query.Workers),
		service.WithTimeout(cfg.Query.Timeout),
	}

	if cfg.Metrics.Enabled {
		m := metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
		prometheus.MustRegister(metrics.NewRuntimeCollector(cfg.Metrics.Namespace, cfg.Metrics.Subsystem))
		m.SetServiceInfo(cfg.App.Version, cfg.App.Environment)
		routerOpts = append(routerOpts, service.WithMetrics(m))

		srv := m.NewServer(cfg.Metrics.Port, cfg.Metrics.Path)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.Info("Metrics server started", "port", cfg.Metrics.Port, "path", cfg.Metrics.Path)
	}

	if cfg.Cache.Enabled {
		base, err := cache.New(cache.FromConfig(&cfg.Cache))
		if err != nil {
			log.Warn("Failed to create cache, continuing without cache", "error", err)
		} else {
			routes := cache.NewRouteCache(base, cfg.Cache.DefaultTTL)
			defer routes.Close()
			routerOpts = append(routerOpts, service.WithCache(routes))
			log.Info("Route cache initialized", "driver", cfg.Cache.Driver, "ttl", cfg.Cache.DefaultTTL)
		}
	}

	network, err := converter.LoadNetwork(cfg.Input.EdgesPath, cfg.Input.CustomersPath,
		converter.WithMaxVertices(cfg.Input.MaxVertices))
	if err != nil {
		return err
	}

	router, err := service.NewRouter(network, routerOpts...)
	if err != nil {
		return err
	}

	var reports []*service.Report
	var queryErr error

	switch {
	case opts.batchPath != "":
		queries, err := converter.LoadQueries(opts.batchPath)
		if err != nil {
			return err
		}
		reports, err = router.SolveBatch(ctx, queries)
		if err != nil {
			return err
		}
	default:
		source, target := opts.source, opts.target
		if !opts.hasSource {
			source, target, err = prompt(stdin, stdout)
			if err != nil {
				return err
			}
		}
		report, err := router.Solve(ctx, source, target)
		reports = []*service.Report{report}
		queryErr = err
	}

	if err := write(ctx, cfg.Output, stdout, &generator.ReportData{
		Reports:     reports,
		Customers:   network.Customers,
		NetworkHash: router.NetworkHash(),
		GeneratedAt: time.Now(),
	}); err != nil {
		return err
	}

	return queryErr
}

// prompt запрашивает source и target на stdin
func prompt(stdin io.Reader, stdout io.Writer) (int, int, error) {
	r := bufio.NewReader(stdin)

	source, err := readVertex(r, stdout, "Enter source vertex: ", "source")
	if err != nil {
		return 0, 0, err
	}
	target, err := readVertex(r, stdout, "Enter target vertex: ", "target")
	if err != nil {
		return 0, 0, err
	}

	return source, target, nil
}

func readVertex(r *bufio.Reader, w io.Writer, message, field string) (int, error) {
	fmt.Fprint(w, message)

	line, err := r.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return 0, apperror.Wrap(err, apperror.CodeInvalidArgument, "no "+field+" vertex given").
			WithField(field)
	}

	v, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, apperror.NewWithField(apperror.CodeInvalidArgument,
			fmt.Sprintf("invalid %s vertex %q", field, strings.TrimSpace(line)), field)
	}
	return v, nil
}

// write формирует результат и пишет его в файл или stdout
func write(ctx context.Context, cfg config.OutputConfig, stdout io.Writer, data *generator.ReportData) error {
	gen, err := generator.New(cfg.Format)
	if err != nil {
		return err
	}

	out, err := gen.Generate(ctx, data)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternal, "generate output")
	}

	if cfg.Path == "" {
		if gen.Format() == generator.FormatText {
			// Как в консольном выводе: пустая строка перед блоком результата
			fmt.Fprintln(stdout)
		}
		_, err = stdout.Write(out)
		return err
	}

	if err := os.WriteFile(cfg.Path, out, 0o644); err != nil {
		return apperror.Wrap(err, apperror.CodeInternal, "write output").WithDetails("path", cfg.Path)
	}
	return nil
}
