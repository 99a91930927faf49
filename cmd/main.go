package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	charm "github.com/charmbracelet/log"
	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/gommon/log"

	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/oracle"
	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/server"
	"github.com/maxHolsch/Open-Race-Blind-Charging/pkg/utils"
)

func main() {
	ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	openAI := oracle.NewOpenAIOracle(apiKey, model)
	structured := true
	if apiKey == "" {
		openAI.ChangeBaseURL("http://localhost:1234/v1")
		openAI.SetModel("")
	}
	var orc oracle.Oracle = openAI

	if geminiKey := os.Getenv("GEMINI_API_KEY"); geminiKey != "" {
		gemini, err := oracle.NewGeminiOracle(geminiKey, os.Getenv("GEMINI_MODEL"))
		if err != nil {
			charm.Fatal("failed creating gemini oracle", "error", err)
		}
		orc = gemini
		structured = false
	}

	// A bare local endpoint has no chat template; prompts fall back to
	// plain role-prefixed concatenation.
	if endpoint := os.Getenv("ORACLE_URL"); endpoint != "" {
		orc = oracle.NewLocalOracle(endpoint, os.Getenv("ORACLE_MODEL"))
		structured = false
	}

	narrativePath := os.Getenv("NARRATIVE_PATH")
	if narrativePath == "" {
		narrativePath = "narrative.txt"
	}
	tablePath := os.Getenv("TABLE_PATH")
	if tablePath == "" {
		tablePath = "EntityTable.csv"
	}

	srv := server.NewServer(ctx, orc, narrativePath, tablePath)
	srv.Structured = structured
	srv.Echo.Logger.SetLevel(log.INFO)

	if utils.Exists("RedactionHistory.json") {
		history, err := utils.Load[[]server.HistoryEntry]("RedactionHistory.json")
		if err != nil {
			charm.Warn("failed loading redaction history", "error", err)
		} else {
			srv.History = history
			charm.Info("loaded redaction history", "entries", len(history))
		}
	}

	addr := ":8080"
	if envAddr := os.Getenv("PORT"); envAddr != "" {
		addr = ":" + envAddr
	}

	finishedShutDown := make(chan struct{})
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(ctx); err != nil {
			charm.Fatal("shutdown failed", "error", err)
		}
		done()
		close(finishedShutDown)
	}()

	if err := srv.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		charm.Error("server error", "error", err)
	}
	<-finishedShutDown
}
