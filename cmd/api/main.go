package main

import (
	"context"
	"essensys-server/cmd/api/wire"
	"essensys-server/cmd/config"
	"essensys-server/internal/infra/async"
	"essensys-server/internal/infra/httpserver"
	"essensys-server/internal/infra/node"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
)

var (
	logLevelMapping = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

func main() {
	config := config.LoadConfig()

	level := logLevelMapping[config.General.LogLevel]
	baseHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{AddSource: true, Level: level, ReplaceAttr: slogReplaceAttr})
	handler := baseHandler.WithAttrs([]slog.Attr{slog.String("version", node.Version)})
	slog.SetDefault(slog.New(handler))
	slog.Info("essensys server is initializing", slog.Int("port", config.Server.Port))
	slog.Debug("config loaded", slog.Any("data", config))

	shutdownOtel := ShutdownFunc(func() error { return nil })
	if config.Otel.Enabled {
		shutdownOtel = startOTel()
	}

	internalBroker := async.NewLocalBroker()
	app := handleWireInjector(wire.InitializeApplication(internalBroker)).(*wire.Application)

	httpServer := httpserver.NewServer(
		httpserver.Options{
			Port:            config.Server.Port,
			ReadTimeout:     config.Server.ReadTimeout,
			WriteTimeout:    config.Server.WriteTimeout,
			IdleTimeout:     config.Server.IdleTimeout,
			ShutdownTimeout: config.Server.ShutdownTimeout,
			AllowedOrigins:  config.Server.AllowedOrigins,
			Credentials:     config.Auth.Credentials(),
		},
		app.Controllers()...,
	)

	appCtx, cancelFn := context.WithCancel(context.Background())
	go httpServer.Run()

	workers := app.Workers()
	waitWorkers := async.RunWorkers(appCtx, workers...)

	signalChannel := make(chan os.Signal, 2)
	signal.Notify(signalChannel, os.Interrupt, syscall.SIGTERM)

	<-signalChannel
	slog.Info("shutting down")
	httpServer.Shutdown()

	cancelFn()
	waitWorkers()
	async.ShutdownWorkers(workers...)
	internalBroker.Stop()

	if err := shutdownOtel(); err != nil {
		slog.Error("otel shutdown", slog.Any("error", err))
	}
	slog.Info("good bye!!!")
	os.Exit(0)
}

func slogReplaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		source := a.Value.Any().(*slog.Source)
		source.File = filepath.Base(source.File)
		return slog.Any(a.Key, source)
	}
	return a
}

func handleWireInjector(value any, err error) any {
	if err != nil {
		panic(err)
	}

	return value
}
