package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/povilasv/prommod"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/version"
	"github.com/rs/zerolog"

	"github.com/jasonrobot/sexp-parser/collect"
	"github.com/jasonrobot/sexp-parser/decode"
	"github.com/jasonrobot/sexp-parser/filters"
	"github.com/jasonrobot/sexp-parser/publisher"
	"github.com/jasonrobot/sexp-parser/source"
)

var (
	// The following vars are meant to be filled in by
	// `go build -ldflags -X=main.<X>=<Value>`.

	// Version is the git tag of this build (v1.2.3)
	Version = "unknown"
	// Build is the git short hash ref of this build (123abcdef)
	Build = "unknown"
	// Branch is the git branch for this build (master)
	Branch = "unknown"
	// Date is when this build was created (2020-01-02T03:04:05Z)
	Date = "unknown"
)

// run reads records from the configured input, and publishes those matching
// the filter.  Published envelopes go to stdout when no broker is set; logs
// always go to stderr.
func run(args []string, stdout, stderr io.Writer) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log := zerolog.New(stderr).With().Timestamp().Str("app", "sexp-relay").Logger()
	ctx = log.WithContext(ctx)

	cfg := &config{}
	if err := cfg.Load(args); err != nil {
		return fmt.Errorf("unable to load config: %w", err)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Debug().Msg("debug logging active")

	log.Debug().Msg("setting up signal handling")
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)
	go func() {
		select {
		case <-signals:
			log.Debug().Msg("received quit signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	log.Debug().Msg("compiling record selection filter")
	filter, err := filters.Compile(cfg.Filter)
	if err != nil {
		return fmt.Errorf("unable to compile record filter: %w", err)
	}

	var publish func(context.Context, *collect.Msg) error
	if cfg.MQTT.Broker != "" {
		log.Debug().Str("broker", cfg.MQTT.Broker).Msg("creating MQTT publisher")
		publ, err := publisher.NewMQTT(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("unable to create MQTT publisher: %w", err)
		}
		if err := publ.Connect(ctx); err != nil {
			return fmt.Errorf("unable to connect to MQTT broker: %w", err)
		}
		defer publ.Close()
		publish = publ.Publish
	} else {
		log.Debug().Msg("no broker set, publishing to stdout")
		publish = publisher.NewWriter(stdout).Publish
	}

	log.Debug().Msg("building record collecter")
	collecter := collect.NewCollecter(filter, publish, cfg.QueueDepth)
	collecter.SetFilterSource(cfg.Filter)
	published := make(chan struct{})
	go func() {
		collecter.Publish(ctx)
		close(published)
	}()

	log.Debug().Str("input", cfg.Input).Msg("opening record source")
	src, err := source.NewFile(cfg.Input, cfg.MaxRecord)
	if err != nil {
		return fmt.Errorf("unable to open record source: %w", err)
	}
	defer src.Close()
	src.SetStrict(cfg.Strict)

	log.Debug().Msg("building record decoder")
	decoder := decode.NewDecoder(cfg.MaxDepth)

	if cfg.MetricsAddr != "" {
		log.Debug().Msg("creating Prometheus registry")
		reg := prometheus.NewRegistry()
		version.Version = Version
		version.Revision = Build
		version.Branch = Branch
		version.BuildDate = Date
		reg.MustRegister(
			version.NewCollector("sexprelay"),
			prommod.NewCollector("sexprelay"),
			prometheus.NewGoCollector(),
			prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		)
		reg.MustRegister(src.Metrics()...)
		reg.MustRegister(decoder.Metrics()...)
		reg.MustRegister(collecter.Metrics()...)

		log.Debug().
			Str("address", cfg.MetricsAddr).
			Str("path", "/metrics").
			Msg("publishing Prometheus endpoint")
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Handler: mux, Addr: cfg.MetricsAddr}
		go func() {
			if err := srv.ListenAndServe(); err != http.ErrServerClosed {
				log.Err(err).Msg("http metrics endpoint failed")
			}
		}()
		defer srv.Close()
	}

	log.Debug().Msg("beginning record relay")
	decoder.Decode(ctx, src.Records(ctx), collecter.Accept)

	// Nothing accepts after Decode returns, so let the publisher drain.
	collecter.Close()
	<-published

	// The records channel is only known closed when not canceled.
	if ctx.Err() == nil {
		if err := src.Err(); err != nil {
			return fmt.Errorf("reading records: %w", err)
		}
	}

	log.Info().Msg("shutdown complete.")

	return nil
}

func main() {
	// these are stateful global module level changes; only do them in main
	time.Local = time.UTC
	zerolog.TimeFieldFormat = "2006-01-02T15:04:05.999Z07:00"

	if err := run(os.Args, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
