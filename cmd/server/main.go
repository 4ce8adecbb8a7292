package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/network/netpoll"
	"github.com/spf13/cobra"

	"github.com/shivswrj/chat-apiserver/internal/config"
	"github.com/shivswrj/chat-apiserver/internal/generator"
	"github.com/shivswrj/chat-apiserver/internal/handler"
	infradb "github.com/shivswrj/chat-apiserver/internal/infrastructure/database"
	"github.com/shivswrj/chat-apiserver/internal/router"
	"github.com/shivswrj/chat-apiserver/internal/usecase"
	dbpkg "github.com/shivswrj/chat-apiserver/pkg/database"
	"github.com/shivswrj/chat-apiserver/pkg/logger"

	"github.com/shivswrj/chat-apiserver/internal/domain"
)

//	@title			Chat API Server
//	@version		0.1.0
//	@description	Conversational chat backend: threads user messages into persisted conversations and generates replies

//	@host		localhost:8080
//	@BasePath	/api

var (
	cfgFile string
	version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:   "chat-apiserver",
	Short: "Conversational chat API server",
	Long: `Chat API Server is an HTTP backend for conversational chat built on the
Hertz framework. It threads user messages into per-user conversations, generates
replies through a pluggable generator, and persists every exchange to a
relational store so history can be replayed.`,
	Version: version,
	Run:     runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "configs/config.yaml", "path to config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func runServer(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := logger.Setup(cfg.Log); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	slog.Info("chat api server starting",
		"version", version,
		"config", cfgFile,
	)

	// Route Hertz framework logs through slog
	hlog.SetLogger(logger.NewHertzSlogAdapter(slog.Default()))

	// Database
	db, err := dbpkg.Open(cfg.Database, slog.Default())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	repo := infradb.NewChatRepository(db)

	// Reply generator
	var gen domain.ReplyGenerator
	switch cfg.Generator.Mode {
	case "remote":
		gen, err = generator.NewRemote(cfg.Generator.BaseURL, slog.Default())
		if err != nil {
			slog.Error("failed to create remote generator", "error", err)
			os.Exit(1)
		}
	default:
		gen = generator.NewRules()
	}
	slog.Info("reply generator initialized", "mode", cfg.Generator.Mode)

	// Usecase and handlers
	chatUsecase := usecase.NewChatUsecase(repo, gen, cfg.Generator.Timeout, slog.Default())
	chatHandler := handler.NewChatHandler(chatUsecase, slog.Default())
	conversationHandler := handler.NewConversationHandler(chatUsecase, slog.Default())
	healthHandler := handler.NewHealthHandler(repo, version, slog.Default())

	h := server.Default(
		server.WithHostPorts(cfg.GetServerAddr()),
		server.WithReadTimeout(cfg.GetReadTimeout()),
		server.WithWriteTimeout(cfg.GetWriteTimeout()),
		server.WithMaxRequestBodySize(cfg.Server.MaxRequestBodySize*1024*1024),
		server.WithTransport(netpoll.NewTransporter),
		server.WithHandleMethodNotAllowed(true),
	)

	router.Setup(h, chatHandler, conversationHandler, healthHandler)

	slog.Info("server started",
		"address", cfg.GetServerAddr(),
		"mode", cfg.Server.Mode,
	)

	go func() {
		if err := h.Run(); err != nil {
			slog.Error("server run failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := h.Shutdown(ctx); err != nil {
		slog.Error("server shutdown failed", "error", err)
		os.Exit(1)
	}

	if err := dbpkg.Close(db, slog.Default()); err != nil {
		slog.Error("failed to close database", "error", err)
	}

	slog.Info("server stopped gracefully")
}
