package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os/signal"
	"syscall"

	"github.com/yourusername/inventory-catalog-bot/config"
	"github.com/yourusername/inventory-catalog-bot/internal/delivery/telegram"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/entity"
	"github.com/yourusername/inventory-catalog-bot/internal/domain/repository"
	"github.com/yourusername/inventory-catalog-bot/internal/infrastructure/gemini"
	"github.com/yourusername/inventory-catalog-bot/internal/infrastructure/parser"
	"github.com/yourusername/inventory-catalog-bot/internal/infrastructure/storage"
	"github.com/yourusername/inventory-catalog-bot/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	schema := entity.SchemaByName(cfg.CatalogSchema)

	catalogRepo := storage.NewMemoryCatalogRepository()
	adminRepo := storage.NewMemoryAdminRepository()

	var chatRepo repository.ChatRepository
	if cfg.ChatDBPath != "" {
		chatRepo, err = storage.NewSQLiteChatRepository(cfg.ChatDBPath, cfg.MaxContextSize)
		if err != nil {
			logger.Fatal("chat store init failed", zap.String("path", cfg.ChatDBPath), zap.Error(err))
		}
		logger.Info("chat history persisted to sqlite", zap.String("path", cfg.ChatDBPath))
	} else {
		chatRepo = storage.NewMemoryChatRepository(cfg.MaxContextSize)
	}

	aiRepo, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiMaxTokens)
	if err != nil {
		logger.Fatal("gemini init failed", zap.Error(err))
	}
	if closer, ok := aiRepo.(io.Closer); ok {
		defer closer.Close()
	}
	if cfg.GeminiAPIKey == "" {
		logger.Warn("no Gemini API key configured, assistant replies are disabled")
	}

	ingestUC := usecase.NewIngestUseCase(parser.NewWorkbookReader(), catalogRepo, schema, logger)
	viewUC := usecase.NewViewUseCase(catalogRepo, schema)
	chatUC := usecase.NewChatUseCase(aiRepo, chatRepo, catalogRepo, logger)
	adminUC := usecase.NewAdminUseCase(cfg.AdminPassword, adminRepo, catalogRepo, chatRepo)

	handler, err := telegram.NewBotHandler(cfg.TelegramToken, chatUC, adminUC, ingestUC, viewUC, logger)
	if err != nil {
		logger.Fatal("bot init failed", zap.Error(err))
	}

	logger.Info("starting",
		zap.String("schema", schema.Name),
		zap.String("model", cfg.GeminiModel))

	if err := handler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("bot stopped", zap.Error(err))
	}
}
