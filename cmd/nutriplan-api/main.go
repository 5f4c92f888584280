package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"nutriplan/internal/api"
	"nutriplan/internal/config"
	"nutriplan/internal/database"
	"nutriplan/internal/llm"
	"nutriplan/internal/logger"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
	"nutriplan/internal/profile"
	"nutriplan/internal/recipe"
)

func main() {
	// Maintenance subcommands only need the database, not the full config.
	if len(os.Args) > 1 && os.Args[1] == "metrics-cleanup" {
		runMetricsCleanup(os.Args[2:])
		return
	}

	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		appLog.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	var textGen llm.TextGenerator
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		geminiClient, err := llm.NewGeminiClient(ctx, cfg)
		if err != nil {
			appLog.Fatal("failed to initialize Gemini client", "error", err)
		}
		textGen = geminiClient
	case config.ProviderOpenAI:
		textGen = llm.NewOpenAIClient(cfg)
	}
	if closer, ok := textGen.(llm.Closer); ok {
		defer closer.Close()
	}

	recipeRepo := recipe.NewRepository(db.SQL)
	profileRepo := profile.NewRepository(db.SQL)
	planRepo := planner.NewPlanRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	mealPlanner := planner.NewPlanner(
		recipeRepo,
		profileRepo,
		planRepo,
		textGen,
		metricsStore,
		appLog,
		cfg.DefaultWeeklyBudget,
	)

	handler := api.NewMealPlanHandler(mealPlanner, metricsStore, appLog)
	router := api.NewRouter(cfg.JWTSecret, handler, appLog)

	appLog.Info("starting server", "addr", cfg.HTTPAddr, "provider", cfg.LLMProvider)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		appLog.Fatal("server exited", "error", err)
	}
}

func runMetricsCleanup(args []string) {
	cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
	days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
	cleanupCmd.Parse(args)

	db, err := database.NewDB(config.DatabasePathFromEnv())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	affected, err := metrics.NewStore(db.SQL).Cleanup(*days)
	if err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}
	fmt.Printf("Removed %d old metric records.\n", affected)
}
