package main

import (
	"context"
	"errors"
	"essensys-server/internal/conformance"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	logLevelMapping = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

type options struct {
	BaseURL  string
	LogLevel string
	NoColor  bool
	Timeout  time.Duration
	Username string
	Password string
}

// Exit codes: 0 when every check passed or on --help, 1 when a check failed,
// 2 when the flags cannot be parsed.
func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		os.Exit(usageExitCode(err))
	}

	os.Exit(run(context.Background(), opts))
}

func usageExitCode(err error) int {
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	fmt.Fprintln(os.Stderr, err)
	return 2
}

func parseOptions(args []string) (options, error) {
	flags := pflag.NewFlagSet("essensys-conformance", pflag.ContinueOnError)
	flags.String("base-url", "http://localhost:8080", "server under test")
	flags.String("log-level", "warn", "debug, info, warn or error")
	flags.Bool("no-color", false, "disable colored output")
	flags.Duration("timeout", 10*time.Second, "per request timeout")
	flags.String("username", "", "basic auth username (controller serial)")
	flags.String("password", "", "basic auth password")
	if err := flags.Parse(args); err != nil {
		return options{}, err
	}

	v := viper.New()
	v.SetEnvPrefix("essensys_conformance")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return options{}, err
	}

	return options{
		BaseURL:  v.GetString("base-url"),
		LogLevel: v.GetString("log-level"),
		NoColor:  v.GetBool("no-color"),
		Timeout:  v.GetDuration("timeout"),
		Username: v.GetString("username"),
		Password: v.GetString("password"),
	}, nil
}

func run(ctx context.Context, opts options) int {
	level, ok := logLevelMapping[opts.LogLevel]
	if !ok {
		level = slog.LevelWarn
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		AddSource:   true,
		Level:       level,
		ReplaceAttr: slogReplaceAttr,
	})))

	driver := conformance.NewAPIDriver(opts.BaseURL, &http.Client{Timeout: opts.Timeout})
	if opts.Username != "" {
		driver.WithBasicAuth(opts.Username, opts.Password)
	}

	reporter := conformance.NewReporter(os.Stdout, opts.NoColor)
	reporter.Header(opts.BaseURL)

	report := conformance.NewChecker(driver).Run(ctx)
	reporter.Print(report)

	if !report.Passed() {
		return 1
	}
	return 0
}

func slogReplaceAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		source := a.Value.Any().(*slog.Source)
		source.File = filepath.Base(source.File)
		return slog.Any(a.Key, source)
	}
	return a
}
