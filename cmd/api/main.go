package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	apiassistant "advisory_platform/pkg/api/assistant"
	"advisory_platform/pkg/api/clients"
	"advisory_platform/pkg/api/config"
	"advisory_platform/pkg/api/notes"
	"advisory_platform/pkg/api/ratios"
	apirecords "advisory_platform/pkg/api/records"
	"advisory_platform/pkg/core/agent"
	"advisory_platform/pkg/core/assistant"
	"advisory_platform/pkg/core/prompt"
	"advisory_platform/pkg/core/store"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

func main() {
	godotenv.Load()

	// Prompt library (resources/ next to the working dir or the binary).
	resourcesPath := "resources"
	if _, err := os.Stat(resourcesPath); os.IsNotExist(err) {
		exePath, _ := os.Executable()
		resourcesPath = filepath.Join(filepath.Dir(exePath), "resources")
	}
	if err := prompt.LoadFromDirectory(resourcesPath); err != nil {
		fmt.Printf("[WARNING] Failed to load prompt library: %v\n", err)
		fmt.Println("  Falling back to hardcoded prompts")
	}

	// LLM routing config.
	configData, _ := os.ReadFile("config/models.yaml")
	var agentCfg agent.Config
	yaml.Unmarshal(configData, &agentCfg)
	if agentCfg.ActiveProvider == "" {
		agentCfg.ActiveProvider = "gemini"
	}
	agentMgr := agent.NewManager(agentCfg)

	// Database.
	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[FATAL] Database init failed: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()
	pool := store.GetPool()

	clientsRepo := store.NewClientsRepo(pool)
	recordsRepo := store.NewRecordsRepo(pool)
	notesRepo := store.NewNotesRepo(pool)
	chatRepo := store.NewChatRepo(pool)
	sessions := assistant.NewSessionManager()

	// Config endpoints
	configHandler := config.NewHandler(agentMgr)
	http.HandleFunc("/api/config", configHandler.HandleConfig)
	http.HandleFunc("/api/config/switch", configHandler.HandleSwitch)

	// Client roster
	clientsHandler := clients.NewHandler(clientsRepo)
	http.HandleFunc("/api/clients", clientsHandler.HandleClients)

	// Monthly figures + validation workflow
	recordsHandler := apirecords.NewHandler(recordsRepo)
	http.HandleFunc("/api/records", recordsHandler.HandleRecords)
	http.HandleFunc("/api/records/validate", recordsHandler.HandleValidate)

	// Ratio engine
	ratiosHandler := ratios.NewHandler(recordsRepo)
	http.HandleFunc("/api/ratios", ratiosHandler.HandleCompute)
	http.HandleFunc("/api/ratios/dashboard", ratiosHandler.HandleDashboard)

	// AI assistant
	assistantHandler := apiassistant.NewHandler(agentMgr, sessions, clientsRepo, recordsRepo, chatRepo)
	http.HandleFunc("/api/assistant/chat", assistantHandler.HandleChat)
	http.HandleFunc("/api/assistant/intent", assistantHandler.HandleIntent)

	// CRM notes
	notesHandler := notes.NewHandler(notesRepo)
	http.HandleFunc("/api/notes", notesHandler.HandleNotes)
	http.HandleFunc("/api/notes/read", notesHandler.HandleMarkRead)

	fmt.Println("API server starting on :8080...")
	fmt.Println("  - GET  /api/config")
	fmt.Println("  - POST /api/config/switch")
	fmt.Println("  - GET/POST /api/clients")
	fmt.Println("  - GET/POST /api/records")
	fmt.Println("  - POST /api/records/validate")
	fmt.Println("  - POST /api/ratios")
	fmt.Println("  - GET  /api/ratios/dashboard")
	fmt.Println("  - POST /api/assistant/chat")
	fmt.Println("  - POST /api/assistant/intent")
	fmt.Println("  - GET/POST /api/notes")
	fmt.Println("  - POST /api/notes/read")

	if err := http.ListenAndServe(":8080", nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
