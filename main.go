package main

import (
	"codeberg.org/miketth/niriwindows/pkg/config"
	"codeberg.org/miketth/niriwindows/pkg/niri"
	"codeberg.org/miketth/niriwindows/pkg/niriwindows"
	"codeberg.org/miketth/niriwindows/pkg/statuscache/json"
	"codeberg.org/miketth/niriwindows/pkg/statuscache/memory"
	"codeberg.org/miketth/niriwindows/pkg/statuscache/sqlite"
	"context"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

func main() {
	err := run()
	if err != nil {
		log.Fatalf("error: %+v", err)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	version, err := niri.NewRequester(cfg.SocketPath).Version()
	if err != nil {
		log.Warnw("could not query niri version", "error", err)
	} else {
		log.Infow("found niri", "version", version)
	}

	client, err := niri.Connect(cfg.SocketPath)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer client.Close()

	errChan := make(chan error, 3)
	var wg sync.WaitGroup

	var cache niriwindows.StatusCache
	switch cfg.Cache {
	case config.CacheSQLite:
		sqliteCache, err := sqlite.NewStatusCache(cfg.CachePath, log)
		if err != nil {
			return fmt.Errorf("create sqlite status cache: %w", err)
		}
		defer sqliteCache.Close()
		cache = sqliteCache

	case config.CacheJSON:
		jsonCache, err := json.NewStatusCache(cfg.CachePath)
		if err != nil {
			return fmt.Errorf("create json status cache: %w", err)
		}
		cache = jsonCache

		wg.Add(1)
		go func() {
			defer wg.Done()
			err := jsonCache.SaveLooper(ctx)
			if err != nil {
				errChan <- fmt.Errorf("save looper: %w", err)
			}
		}()

	default:
		cache = memory.NewStatusCache()
	}

	sink := niriwindows.NewWriterSink(os.Stdout, niriwindows.Format(cfg.Format))
	board := niriwindows.NewBoard(client, sink, cache, cfg.Icon, cfg.Scope(), log)

	log.Infow("started niriwindows", "socket", cfg.SocketPath, "cache", cfg.Cache)

	wg.Add(2)

	go func() {
		defer wg.Done()
		err := board.ProcessLines(ctx)
		if err != nil {
			errChan <- fmt.Errorf("process lines: %w", err)
		}
	}()

	go func() {
		defer wg.Done()
		err := notifySystemd(ctx, fmt.Sprintf("Counting windows on %s", cfg.Scope()))
		if err != nil {
			errChan <- fmt.Errorf("systemd notify: %w", err)
		}
	}()

	err = <-errChan

	// the rest only stop on cancellation, the json cache flushes on the way out
	stop()
	wg.Wait()

	if errors.Is(err, context.Canceled) {
		log.Info("shutting down")
		return nil
	}

	return err
}

// newLogger logs to stderr, stdout belongs to the bar.
func newLogger(debug bool) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()

	loggerConfig.OutputPaths = []string{"stderr"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		loggerConfig.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}
