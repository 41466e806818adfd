package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Kerhoff/BozorlikBot/internal/api"
	"github.com/Kerhoff/BozorlikBot/internal/config"
	"github.com/Kerhoff/BozorlikBot/internal/events"
	"github.com/Kerhoff/BozorlikBot/internal/handlers"
	"github.com/Kerhoff/BozorlikBot/internal/ledger"
	"github.com/Kerhoff/BozorlikBot/internal/llm"
	"github.com/Kerhoff/BozorlikBot/internal/metrics"
	"github.com/Kerhoff/BozorlikBot/internal/oracle"
	"github.com/Kerhoff/BozorlikBot/internal/service"
	"github.com/Kerhoff/BozorlikBot/internal/session"
	"github.com/Kerhoff/BozorlikBot/internal/telegram"
	"github.com/Kerhoff/BozorlikBot/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot, the HTTP API and the metrics endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

// closers releases resources in reverse order of acquisition.
type closers []func() error

func (c *closers) add(fn func() error) {
	*c = append(*c, fn)
}

func (c closers) close() error {
	var result *multierror.Error
	for i := len(c) - 1; i >= 0; i-- {
		if err := c[i](); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

func runServe(ctx context.Context) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.ValidateBot(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	l := logger.New(cfg.LogLevel, cfg.LogFormat)
	l.Info("Starting BozorlikBot...")

	var res closers
	defer func() {
		if closeErr := res.close(); closeErr != nil {
			l.WithError(closeErr).Error("Failed to release resources")
			err = errors.Join(err, closeErr)
		}
	}()

	// Storage
	repo, closeRepo, err := openExpenseRepository(cfg, l)
	if err != nil {
		return err
	}
	res.add(closeRepo)

	// Language model
	provider, err := newProvider(ctx, cfg)
	if err != nil {
		return err
	}
	res.add(provider.Close)
	l.WithField("provider", cfg.LLMProvider).Info("Language model configured")

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	// Events
	var publisher ledger.Publisher
	if cfg.AMQPURL != "" {
		p, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, l)
		if err != nil {
			return fmt.Errorf("failed to connect to AMQP broker: %w", err)
		}
		res.add(p.Close)
		publisher = p
		l.WithField("exchange", cfg.AMQPExchange).Info("Publishing completed lists")
	}

	// Service layer
	svc := service.New(
		session.NewStore(),
		oracle.New(provider, provider),
		ledger.New(repo, publisher, m, l),
		m, l,
	)

	// Telegram bot
	bot, err := telegram.NewBot(cfg.TelegramToken, l)
	if err != nil {
		return err
	}
	registerHandlers(bot.Router(), svc, l)

	g, gctx := errgroup.WithContext(ctx)

	apiServer := api.NewServer(svc, l)
	if cfg.WebhookURL != "" {
		if err := bot.SetWebhook(cfg.WebhookURL); err != nil {
			return err
		}
		apiServer.Handle("POST "+webhookPath(cfg.WebhookURL), bot.WebhookHandler(gctx))
	} else {
		g.Go(func() error { return bot.Start(gctx) })
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	metricsMux := http.NewServeMux()
	metricsMux.Handle("GET /metrics", metrics.Handler(reg))
	metricsServer := &http.Server{
		Addr:              ":" + cfg.PrometheusPort,
		Handler:           metricsMux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error { return listen(l, "HTTP API", httpServer) })
	g.Go(func() error { return listen(l, "Metrics", metricsServer) })
	g.Go(func() error {
		<-gctx.Done()
		l.Info("Shutting down HTTP servers...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Join(httpServer.Shutdown(shutdownCtx), metricsServer.Shutdown(shutdownCtx))
	})

	l.Info("BozorlikBot started successfully")

	if err := g.Wait(); err != nil {
		return err
	}
	l.Info("BozorlikBot stopped")
	return nil
}

func listen(l *logrus.Logger, name string, srv *http.Server) error {
	l.Infof("%s server listening on %s", name, srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s server: %w", name, err)
	}
	return nil
}

func newProvider(ctx context.Context, cfg *config.Config) (llm.Provider, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		g, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return g, nil
	default:
		return llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.OpenAITranscriptionModel), nil
	}
}

// webhookPath is the path Telegram posts updates to, /webhook when the URL has none.
func webhookPath(webhookURL string) string {
	u, err := url.Parse(webhookURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "/webhook"
	}
	return u.Path
}

func registerHandlers(r *telegram.Router, svc *service.Service, l *logrus.Logger) {
	// Commands
	r.RegisterCommand("start", handlers.NewStartHandler(l))
	r.RegisterCommand("help", handlers.NewHelpHandler(l))
	r.RegisterCommand("list", handlers.NewListHandler(svc, l))
	r.RegisterCommand("clear", handlers.NewClearHandler(svc, l))
	r.RegisterCommand("status", handlers.NewStatusHandler(svc, l))
	r.RegisterCommand("expenses", handlers.NewExpensesHandler(svc, l))
	r.RegisterCommand("total", handlers.NewTotalHandler(svc, l))

	// Inline buttons
	r.RegisterCallback(handlers.CallbackEditList, handlers.NewEditListCallback(svc, l))
	r.RegisterCallback(handlers.CallbackClearList, handlers.NewClearListCallback(svc, l))
	r.RegisterCallback(handlers.CallbackNewList, handlers.NewNewListCallback(l))

	// Conversation
	r.HandleText(handlers.NewTextHandler(svc, l))
	r.HandleVoice(handlers.NewVoiceHandler(svc, nil, l))
}
