package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"smuth/cmd"
	httpin "smuth/internal/adapters/in/http"
	"smuth/internal/adapters/in/telegram"
	"smuth/internal/jobs"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	location, err := time.LoadLocation(configs.Timezone)
	if err != nil {
		logger.Error("invalid timezone", "timezone", configs.Timezone, "error", err)
		os.Exit(1)
	}

	gormDB, err := gorm.Open(postgres.Open(postgresDSN(configs)), &gorm.Config{})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	app := cmd.NewCompositionRoot(configs, gormDB)

	api, err := tgbotapi.NewBotAPI(configs.TelegramBotToken)
	if err != nil {
		logger.Error("failed to connect to telegram", "error", err)
		os.Exit(1)
	}

	messenger := telegram.NewMessenger(api, configs.TelegramChannelID)
	engine := app.CreateConversationEngine(messenger, location, logger)
	bot := telegram.NewBot(api, engine, logger)

	jobManager := jobs.NewJobManager(app.CreateExpireOrdersCommandHandler(), engine, logger)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("failed to start jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go startWebServer(app, configs.HTTPPort)
	bot.Run(ctx)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		TelegramBotToken:  goDotEnvVariable("TELEGRAM_BOT_TOKEN"),
		TelegramChannelID: envInt64("TELEGRAM_CHANNEL_ID"),
		Timezone:          goDotEnvVariable("TIMEZONE"),
		AllowSelfClaim:    goDotEnvVariable("ALLOW_SELF_CLAIM") == "true",
		MaxActiveClaims:   int(envInt64("MAX_ACTIVE_CLAIMS")),
		FeeMinCents:       envInt64("FEE_MIN_CENTS"),
		FeeMaxCents:       envInt64("FEE_MAX_CENTS"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func envInt64(key string) int64 {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Fatalf("Invalid integer for %s: %s", key, raw)
	}
	return value
}

func postgresDSN(c cmd.Config) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpin.NewServer(app.CreateGetOpenOrdersQueryHandler())
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
