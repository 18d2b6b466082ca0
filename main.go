package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SaiNageswarS/go-api-boot/config"
	"github.com/SaiNageswarS/go-api-boot/dotenv"
	"github.com/SaiNageswarS/go-api-boot/logger"
	"go.uber.org/zap"

	"github.com/gamana29/almika/api/chat"
	"github.com/gamana29/almika/api/citation"
	"github.com/gamana29/almika/api/study"
	"github.com/gamana29/almika/appconfig"
	"github.com/gamana29/almika/extract"
	"github.com/gamana29/almika/faq"
	"github.com/gamana29/almika/llm"
	"github.com/gamana29/almika/memory"
	"github.com/gamana29/almika/quiz"
)

func main() {
	dotenv.LoadEnv()

	// load config file
	cfg := &appconfig.AppConfig{}
	err := config.LoadConfig("config.ini", cfg)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// The FAQ dataset is the grounding context for every prompt; there is
	// no degraded mode without it.
	entries, err := faq.Load(cfg.FAQPath)
	if err != nil {
		logger.Fatal("Failed to load FAQ dataset", zap.Error(err))
	}
	logger.Info("Loaded FAQ dataset", zap.Int("entries", len(entries)))

	store, err := memory.NewStore(cfg.ChatDataDir)
	if err != nil {
		logger.Fatal("Failed to open history store", zap.Error(err))
	}

	client, err := provideCompletionClient(cfg)
	if err != nil {
		logger.Fatal("Failed to create completion client", zap.Error(err))
	}
	logger.Info("Completion client ready",
		zap.String("provider", cfg.CompletionProvider), zap.String("model", client.GetModel()))

	bank, err := quiz.LoadBank(cfg.QuizBankPath)
	if err != nil {
		logger.Fatal("Failed to load quiz bank", zap.Error(err))
	}

	extractor := extract.NewServiceExtractor(cfg.ExtractorURL)

	chatHandler := chat.NewHandler(client, store, entries, extractor)
	studyHandler := study.NewHandler(client, bank)
	citationHandler := citation.NewHandler()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat/ask", chatHandler.HandleAsk)
	mux.HandleFunc("/api/chat/login", chatHandler.HandleLogin)
	mux.HandleFunc("/api/chat/logout", chatHandler.HandleLogout)
	mux.HandleFunc("/api/chat/history", chatHandler.HandleHistory)
	mux.HandleFunc("/api/chat/document", chatHandler.HandleDocument)
	mux.HandleFunc("/api/chat/export", chatHandler.HandleExport)
	mux.HandleFunc("/api/study/explain", studyHandler.HandleExplain)
	mux.HandleFunc("/api/study/homework", studyHandler.HandleHomework)
	mux.HandleFunc("/api/study/quiz", studyHandler.HandleQuiz)
	mux.HandleFunc("/api/study/quiz/answer", studyHandler.HandleQuizAnswer)
	mux.HandleFunc("/api/study/quiz/restart", studyHandler.HandleQuizRestart)
	mux.HandleFunc("/api/citation", citationHandler.HandleFormat)

	server := &http.Server{
		Addr:    cfg.HTTPPort,
		Handler: mux,
	}

	// catch SIGINT -> drain and shut down
	ctx := getCancellableContext()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("Almika listening", zap.String("addr", cfg.HTTPPort))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func provideCompletionClient(cfg *appconfig.AppConfig) (llm.Client, error) {
	switch cfg.CompletionProvider {
	case "", "openrouter":
		return llm.NewOpenRouterClient(cfg.CompletionModel)
	case "ollama":
		return llm.NewOllamaClient(cfg.CompletionModel)
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.CompletionProvider)
	}
}

func getCancellableContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		cancel()
	}()

	return ctx
}
