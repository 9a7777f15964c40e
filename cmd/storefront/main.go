// Command storefront serves purchase access links: it takes payment
// webhooks, emails access links and redeems them for download URLs.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ventaro/storefront/core"
	"github.com/ventaro/storefront/migrations"
	"github.com/ventaro/storefront/modules/delivery"
	"github.com/ventaro/storefront/pkg/accesstoken"
	"github.com/ventaro/storefront/pkg/async"
	"github.com/ventaro/storefront/pkg/clientip"
	"github.com/ventaro/storefront/pkg/config"
	"github.com/ventaro/storefront/pkg/download"
	"github.com/ventaro/storefront/pkg/email"
	"github.com/ventaro/storefront/pkg/httpserver"
	"github.com/ventaro/storefront/pkg/logger"
	"github.com/ventaro/storefront/pkg/payment"
	"github.com/ventaro/storefront/pkg/pg"
	"github.com/ventaro/storefront/pkg/purchase"
	"github.com/ventaro/storefront/pkg/ratelimiter"
	"github.com/ventaro/storefront/pkg/redis"
	"github.com/ventaro/storefront/pkg/requestid"
)

type appConfig struct {
	Env            string        `env:"APP_ENV" envDefault:"development"`
	Name           string        `env:"APP_NAME" envDefault:"storefront"`
	ReadyTimeout   time.Duration `env:"READY_PROBE_TIMEOUT" envDefault:"2s"`
	SkipMigrations bool          `env:"SKIP_MIGRATIONS"`
}

func main() {
	var app appConfig
	config.MustLoad(&app)

	log := logger.New(
		logger.WithEnvironment(app.Env, app.Name),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	slog.SetDefault(log)

	if err := run(app, log); err != nil {
		log.Error("storefront stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(app appConfig, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		tokenCfg    accesstoken.Config
		pgCfg       pg.Config
		emailCfg    email.Config
		downloadCfg download.Config
		paymentCfg  payment.Config
		deliveryCfg delivery.Config
		httpCfg     httpserver.Config
		ipCfg       clientip.Config
		redisCfg    redis.Config
	)
	for _, load := range []func() error{
		func() error { return config.Load(&tokenCfg) },
		func() error { return config.Load(&pgCfg) },
		func() error { return config.Load(&emailCfg) },
		func() error { return config.Load(&downloadCfg) },
		func() error { return config.Load(&paymentCfg) },
		func() error { return config.Load(&deliveryCfg) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&ipCfg) },
		func() error { return config.Load(&redisCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	// Fails when no access token secret is configured.
	tokens, err := accesstoken.NewFromConfig(tokenCfg)
	if err != nil {
		return err
	}

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	if !app.SkipMigrations {
		if err := pg.Migrate(ctx, pool, pgCfg, migrations.FS, ".", log); err != nil {
			return err
		}
	}

	mailer, err := email.New(emailCfg)
	if err != nil {
		return err
	}
	if !emailCfg.PostmarkEnabled() {
		log.Warn("postmark not configured, writing emails to disk", slog.String("dir", emailCfg.DevOutputDir))
	}

	links, err := download.New(ctx, downloadCfg)
	if err != nil {
		return err
	}

	webhooks, err := payment.NewPaddle(paymentCfg)
	if err != nil {
		return err
	}

	probes := []httpserver.Probe{
		{Name: "postgres", Check: pg.Healthcheck(pool)},
		{Name: "s3", Check: links.Ping},
	}

	// Limits are per process unless Redis is configured.
	var limitStore ratelimiter.Store
	if redisCfg.Enabled() {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		limitStore = ratelimiter.NewRedisStore(client)
		probes = append(probes, httpserver.Probe{Name: "redis", Check: redis.Healthcheck(client)})
	} else {
		mem := ratelimiter.NewMemoryStore()
		defer mem.Close()
		limitStore = mem
	}
	limit := ratelimiter.Config{
		Capacity:       deliveryCfg.ResendBurst,
		RefillRate:     1,
		RefillInterval: deliveryCfg.ResendInterval,
	}
	ipLimiter, err := ratelimiter.NewBucket(limitStore, limit)
	if err != nil {
		return err
	}
	recipientLimiter, err := ratelimiter.NewBucket(limitStore, limit)
	if err != nil {
		return err
	}

	svc, err := delivery.NewService(deliveryCfg, tokens, purchase.NewPGStore(pool), links, mailer,
		delivery.WithLogger(log),
		delivery.WithSupportEmail(emailCfg.SupportEmail),
		delivery.WithRecipientLimiter(recipientLimiter),
	)
	if err != nil {
		return err
	}

	background := async.NewRunner(async.WithLogger(log))
	drain := func() {
		ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
		defer cancel()
		if err := background.Close(ctx); err != nil {
			log.Error("background tasks not drained", logger.Error(err))
		}
	}

	tooMany := core.Handle(log, func(*http.Request) core.Response {
		return core.JSONError(core.ErrTooManyRequests)
	})
	handler := delivery.NewHandler(svc, webhooks,
		delivery.WithHandlerLogger(log),
		delivery.WithAccessPath(deliveryCfg.AccessPath),
		delivery.WithBackground(background),
		delivery.WithResendLimiter(ratelimiter.Middleware(ipLimiter, ratelimiter.ByClientIP,
			ratelimiter.WithLimitedHandler(tooMany))),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(httpserver.CORS(httpCfg.AllowedOrigins))
	r.Use(clientip.Middleware(ipCfg.TrustedHeaders...))
	r.Use(httpserver.RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.Liveness())
	r.Get("/readyz", httpserver.Readiness(log, app.ReadyTimeout, probes...))
	r.Mount("/", handler.Handle())

	log.Info("storefront starting",
		slog.String("addr", httpCfg.Addr),
		slog.Duration("token_ttl", tokens.DefaultTTL()),
	)
	return httpserver.NewFromConfig(httpCfg,
		httpserver.WithLogger(log),
		httpserver.WithOnShutdown(drain),
	).Run(ctx, r)
}
