package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/eaglebank/accounts/account-service/internal/config"
	"github.com/eaglebank/accounts/account-service/internal/handler"
	"github.com/eaglebank/accounts/account-service/internal/repository"
	"github.com/eaglebank/accounts/account-service/internal/service"
	"github.com/eaglebank/accounts/account-service/internal/usecase"
	"github.com/eaglebank/accounts/shared/events"
	"github.com/eaglebank/accounts/shared/middleware"
	redisClient "github.com/eaglebank/accounts/shared/redis"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the account HTTP API and command consumer",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := []service.Option{service.WithReasonPolicy(cfg.ReasonPolicy)}

	// Redis connection (read cache + event streaming)
	var redis *redisClient.Client
	if cfg.RedisEnabled() {
		redis, err = redisClient.NewClient(ctx, redisClient.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer redis.Close()

		store = repository.NewCachedAccountRepository(store, redis.Client, cfg.CacheTTL)
		opts = append(opts, service.WithPublisher(events.NewPublisher(redis.Client)))
	} else {
		log.Printf("REDIS_ADDR not set; cache, events and command consumer disabled")
	}

	accountService := service.NewAccountService(store, opts...)
	accountUseCase := usecase.NewAccountUseCase(accountService)
	accountHandler := handler.NewAccountHandler(accountUseCase)
	routes := handler.Routes(accountHandler)

	if redis != nil {
		subscriber := events.NewSubscriber(redis.Client, events.SubscriberConfig{
			Group:    "account-service-group",
			Consumer: cfg.ConsumerName,
			Stream:   events.AccountCommandsStream,
			Handler:  handler.NewStatusCommandHandler(accountUseCase).Handle,
		})
		go func() {
			if err := subscriber.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("Subscriber stopped: %v", err)
			}
		}()
	}

	middlewares := []gin.HandlerFunc{middleware.LoggingMiddleware()}
	if cfg.AuthEnabled() {
		middlewares = append(middlewares, middleware.AuthMiddleware([]byte(cfg.JWTSecret)))
	}

	gin.SetMode(gin.ReleaseMode)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg.Target, accountHandler, routes, middlewares),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Account service starting on port %s (target=%s)", cfg.Port, cfg.Target)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newRouter lays the route table out for the deployment target. Health is
// never behind auth.
func newRouter(target handler.Target, h *handler.AccountHandler, routes []handler.Route, middlewares []gin.HandlerFunc) http.Handler {
	if target == handler.TargetFunction {
		mux := handler.FunctionMux(handler.NewFunctionHandlers(routes, middlewares...))
		health := gin.New()
		health.GET("/health", h.Health)
		mux.Handle("/health", health)
		return mux
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/health", h.Health)

	accounts := router.Group("/", middlewares...)
	handler.Register(accounts, routes, handler.TargetHTTP)
	return router
}
