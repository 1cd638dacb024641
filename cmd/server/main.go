package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/redis/go-redis/v9"

	"github.com/ignite/template-hub/internal/api"
	"github.com/ignite/template-hub/internal/auth"
	"github.com/ignite/template-hub/internal/config"
	"github.com/ignite/template-hub/internal/render"
	"github.com/ignite/template-hub/internal/repository/postgres"
	"github.com/ignite/template-hub/internal/service/campaign"
	"github.com/ignite/template-hub/internal/service/template"
	"github.com/ignite/template-hub/internal/service/workspace"
)

// checkPortAvailable verifies that the target port is not already in use.
// This prevents confusion from stale processes occupying the port.
func checkPortAvailable(host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("port %d is already in use (addr %s): %v", port, addr, err)
	}
	ln.Close()
	return nil
}

func main() {
	log.Println("Template Hub API server starting")

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Database.URL == "" {
		log.Fatal("database.url (or DATABASE_URL) is required")
	}

	// Pre-flight check: verify the target port is available
	host := cfg.Server.GetHost()
	if err := checkPortAvailable(host, cfg.Server.Port); err != nil {
		log.Fatalf("Pre-flight check FAILED: %v", err)
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Connected to database")

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
	}
	log.Printf("Connected to redis at %s", cfg.Redis.Addr)

	engine := render.NewEngine()
	handlers := &api.Handlers{
		Templates:  template.NewService(postgres.NewTemplateRepo(db), engine, cfg.Templates.TagScope),
		Campaigns:  campaign.NewService(postgres.NewCampaignRepo(db)),
		Workspaces: workspace.NewService(postgres.NewWorkspaceRepo(db)),
	}

	authManager := auth.NewManager(rdb, cfg.Auth.SessionTTL(), cfg.Auth.DevMode)
	if cfg.Auth.DevMode {
		log.Println("WARNING: dev mode active, tokenless requests get admin access")
	}

	server := api.NewServer(cfg.Server, handlers, authManager, rdb, cfg.RateLimit)

	// Setup graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	log.Println("All services initialized, server is ready")

	<-done
	log.Println("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
