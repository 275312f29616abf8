package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/rafalszulejko/helpdesk-go/internal/agent"
	"github.com/rafalszulejko/helpdesk-go/internal/api"
	"github.com/rafalszulejko/helpdesk-go/internal/auth"
	"github.com/rafalszulejko/helpdesk-go/internal/config"
	"github.com/rafalszulejko/helpdesk-go/internal/database"
	"github.com/rafalszulejko/helpdesk-go/internal/notify"
	"github.com/rafalszulejko/helpdesk-go/internal/repository"
	"github.com/rafalszulejko/helpdesk-go/internal/service"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "."
	}
	if err := config.Load(configPath); err != nil {
		log.Fatalf("loading configuration: %v", err)
	}
	cfg := config.Get()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("connecting to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrating database: %v", err)
	}

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		notifier = notify.NewRedisNotifier(rdb)
	}

	tickets := repository.NewTicketRepository(db)
	messages := repository.NewMessageRepository(db)
	metadata := repository.NewMetadataRepository(db)
	rolePerms := repository.NewRolePermissionRepository(db)
	ticketTypes := repository.NewTicketTypeRepository(db)
	users := repository.NewUserRepository(db)

	ticketSvc := service.NewTicketService(tickets)
	messageSvc := service.NewMessageService(messages, tickets, notifier)
	metadataSvc := service.NewMetadataService(metadata)
	permSvc := service.NewPermissionService(rolePerms)
	directorySvc := service.NewDirectoryService(ticketTypes, users)

	tokens := auth.NewTokenReader(cfg.Auth.JWT.Secret)
	resolver := auth.NewResolver(tokens, rolePerms)

	var runner *agent.Runner
	if cfg.Agent.Enabled {
		chat := agent.NewOpenAIClient(cfg.Agent.APIKey, cfg.Agent.BaseURL, cfg.Agent.Model)
		runner = agent.NewRunner(chat, tickets, ticketSvc, metadataSvc, messageSvc, cfg.Agent.MaxSteps)
	}

	srv := api.NewServer(api.ServerOptions{
		Resolver:     resolver,
		Tickets:      ticketSvc,
		Messages:     messageSvc,
		Metadata:     metadataSvc,
		Permissions:  permSvc,
		Directory:    directorySvc,
		Runner:       runner,
		AgentTimeout: cfg.Agent.Timeout,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Printf("listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
