package httpserver

import (
	"context"
	"errors"
	"essensys-server/internal/infra/node"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.opentelemetry.io/contrib/propagators/b3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type Server interface {
	Run()
	Shutdown()
}

var _ Server = &StandardServer{}

// Options configures the listener and the protection of the /api/ tree.
// Credentials maps a client id (Basic auth username) to its key; an empty
// map disables authentication.
type Options struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	Credentials     map[string]string
}

type StandardServer struct {
	server          *http.Server
	shutdownTimeout time.Duration
}

func (s *StandardServer) Run() {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		panic(err)
	}
	slog.Info("http server listening", slog.String("addr", ln.Addr().String()))
	if err := s.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		panic(err)
	}
}

// Serve accepts connections on ln through a LegacyListener until Shutdown.
func (s *StandardServer) Serve(ln net.Listener) error {
	return s.server.Serve(NewLegacyListener(ln))
}

func (s *StandardServer) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("http server shutdown", slog.Any("error", err))
	}
}

func (s *StandardServer) Handler() http.Handler {
	return s.server.Handler
}

func NewServer(opts Options, controllers ...Controller) *StandardServer {
	api := http.NewServeMux()
	for _, controller := range controllers {
		controller.AddRoutes(api)
	}

	var apiHandler http.Handler = api
	if len(opts.Credentials) > 0 {
		apiHandler = BasicAuth(opts.Credentials)(api)
	} else {
		slog.Warn("authentication disabled, every request is served as the default client")
	}

	router := http.NewServeMux()
	router.Handle("/api/", apiHandler)
	router.Handle("GET /healthz", getHealthz())
	router.Handle("GET /metrics", promhttp.Handler())

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		AllowCredentials: false,
		MaxAge:           300,
	})

	handler := Chain(router,
		SingleWrite,
		c.Handler,
		Recovery,
		MetricsMiddleware(),
		createTracingMiddleware(),
		RequestLogger,
	)

	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &StandardServer{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", opts.Port),
			Handler:      handler,
			ReadTimeout:  opts.ReadTimeout,
			WriteTimeout: opts.WriteTimeout,
			IdleTimeout:  opts.IdleTimeout,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func GetSpanFromContext(r *http.Request) trace.Span {
	return trace.SpanFromContext(r.Context())
}

// createTracingMiddleware starts a server span per request, continuing any b3 context sent by the caller.
func createTracingMiddleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			propagator := b3.New()
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

			tracer := otel.Tracer("essensys-server")
			ctx, span := tracer.Start(ctx, "http.request",
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.url", r.URL.String()),
					attribute.String("http.user_agent", r.UserAgent()),
					attribute.String("http.remote_addr", r.RemoteAddr),
					attribute.String("component", "http-server"),
				),
			)
			defer span.End()

			r = r.WithContext(ctx)
			propagator.Inject(ctx, propagation.HeaderCarrier(w.Header()))

			wrapped := newStatusRecorder(w)
			next.ServeHTTP(wrapped, r)

			span.SetAttributes(attribute.Int("http.status_code", wrapped.statusCode))
		})
	}
}

func getHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		span := GetSpanFromContext(r)
		span.SetAttributes(attribute.String("endpoint", "healthz"))

		info := node.GetNodeInfo()
		ReplyJSONResponse(w, http.StatusOK, map[string]string{
			"status":   "ok",
			"node":     info.ID,
			"hostname": info.Hostname,
			"version":  info.Version,
			"commit":   info.CommitHash,
			"uptime":   info.Uptime().Truncate(time.Second).String(),
		})
	}
}
