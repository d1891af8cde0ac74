// Package assistant exposes the AI chat endpoints: data-grounded
// conversation and dashboard navigation intent.
package assistant

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"advisory_platform/pkg/core/agent"
	core "advisory_platform/pkg/core/assistant"
	"advisory_platform/pkg/core/calc"
	"advisory_platform/pkg/core/records"
	"advisory_platform/pkg/core/store"
	"advisory_platform/pkg/core/utils"
)

// Handler provides HTTP handlers for assistant functionality.
type Handler struct {
	agentMgr *agent.Manager
	sessions *core.SessionManager
	clients  *store.ClientsRepo
	records  *store.RecordsRepo
	chat     *store.ChatRepo
}

// NewHandler creates a new assistant handler.
func NewHandler(mgr *agent.Manager, sessions *core.SessionManager, clientsRepo *store.ClientsRepo, recordsRepo *store.RecordsRepo, chatRepo *store.ChatRepo) *Handler {
	return &Handler{
		agentMgr: mgr,
		sessions: sessions,
		clients:  clientsRepo,
		records:  recordsRepo,
		chat:     chatRepo,
	}
}

// ChatRequest is one user turn. An empty session_id opens a new session.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	ClientID  string `json:"client_id"`
	Message   string `json:"message"`
}

// ChatResponse carries the assistant's markdown reply.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Grounded  bool   `json:"grounded"` // false when the canned fallback answered
}

// HandleChat runs one conversation turn grounded in the client's validated data.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.ClientID == "" || strings.TrimSpace(req.Message) == "" {
		http.Error(w, "client_id and message are required", http.StatusBadRequest)
		return
	}

	session, ok := h.sessions.Get(req.SessionID)
	if !ok {
		session = h.sessions.Start(req.ClientID)
	}

	client, err := h.clients.Get(r.Context(), req.ClientID)
	if err != nil {
		http.Error(w, fmt.Sprintf("Unknown client: %v", err), http.StatusNotFound)
		return
	}

	latest, err := h.records.LatestValidated(r.Context(), req.ClientID)
	if err != nil {
		fmt.Printf("[ASSISTANT] Warning: could not load latest record: %v\n", err)
	}

	systemPrompt := core.BuildSystemPrompt(client, latest)

	reply, grounded := "", true
	raw, err := h.agentMgr.ExecutePrompt(r.Context(), "advisor", req.Message, systemPrompt, nil)
	if err != nil {
		// LLM down: answer directly from the figures when we can.
		fmt.Printf("[ASSISTANT] LLM call failed, using fallback: %v\n", err)
		reply = h.fallbackAnswer(req.Message, latest)
		grounded = false
	} else {
		reply = utils.CleanMarkdown(raw)
		if !utils.ValidateMarkdown(reply) {
			reply = raw
		}
	}

	h.sessions.Append(session.ID, "user", req.Message)
	h.sessions.Append(session.ID, "assistant", reply)
	h.persist(r, session.ID, req.ClientID, req.Message, reply)

	json.NewEncoder(w).Encode(ChatResponse{SessionID: session.ID, Reply: reply, Grounded: grounded})
}

func (h *Handler) persist(r *http.Request, sessionID, clientID, question, reply string) {
	for _, msg := range []records.ChatMessage{
		{SessionID: sessionID, ClientID: clientID, Role: "user", Content: question},
		{SessionID: sessionID, ClientID: clientID, Role: "assistant", Content: reply},
	} {
		m := msg
		if err := h.chat.Append(r.Context(), &m); err != nil {
			fmt.Printf("[ASSISTANT] Warning: failed to persist chat turn: %v\n", err)
		}
	}
}

// fallbackAnswer serves the most common ratio questions from the latest
// snapshot when no LLM provider responds.
func (h *Handler) fallbackAnswer(message string, latest *records.MonthlyRecord) string {
	if latest == nil {
		return "Your consultant has not validated any figures yet, so I cannot answer from your data right now."
	}

	res := calc.CalculateRatios(latest.RatioInput())
	msg := strings.ToLower(message)

	answers := []struct {
		keywords []string
		text     string
	}{
		{[]string{"dso", "receivable", "encaissement"},
			fmt.Sprintf("Your DSO for %s is %s.", latest.PeriodLabel(), core.FormatRatio(res.DSO, res.DSOInactive, "days"))},
		{[]string{"dpo", "payable", "fournisseur"},
			fmt.Sprintf("Your DPO for %s is %s.", latest.PeriodLabel(), core.FormatRatio(res.DPO, res.DPOInactive, "days"))},
		{[]string{"dio", "stock", "inventory"},
			fmt.Sprintf("Your DIO for %s is %s.", latest.PeriodLabel(), core.FormatRatio(res.DIO, res.DIOInactive, "days"))},
		{[]string{"bfr", "working capital", "fonds de roulement"},
			fmt.Sprintf("Your working capital requirement for %s is %s.", latest.PeriodLabel(), core.FormatRatio(res.BFRDays, res.BFRDaysInactive, "days"))},
		{[]string{"salary", "payroll", "masse salariale"},
			fmt.Sprintf("Your payroll ratio for %s is %s.", latest.PeriodLabel(), core.FormatRatio(res.SalaryRatio, res.SalaryRatioInactive, "% of revenue"))},
		{[]string{"productivity", "productivité"},
			fmt.Sprintf("Your productivity for %s is %s.", latest.PeriodLabel(), core.FormatRatio(res.ProductivityPerHour, res.ProductivityInactive, "per hour"))},
	}

	for _, a := range answers {
		for _, kw := range a.keywords {
			if strings.Contains(msg, kw) {
				return a.text
			}
		}
	}

	return "The assistant is temporarily unavailable. Ask about DSO, DPO, DIO, BFR, payroll or productivity to get your latest validated figure directly."
}

// IntentRequest is a natural-language navigation query.
type IntentRequest struct {
	Message        string `json:"message"`
	CurrentSection string `json:"current_section,omitempty"`
}

// IntentResponse contains the parsed navigation intent.
type IntentResponse struct {
	Intent        string  `json:"intent"` // "navigate", "query", "chat"
	TargetSection string  `json:"target_section,omitempty"`
	SectionLabel  string  `json:"section_label,omitempty"`
	Confidence    float64 `json:"confidence"`
	Explanation   string  `json:"explanation"`
}

// sectionRegistry lists all navigable dashboard sections for LLM context.
const sectionRegistry = `
Available sections in the advisory dashboard:

- dashboard: Dashboard - Monthly ratios (DSO, DPO, DIO, BFR in days, payroll ratio, productivity, cost per hour) and trends
- records: Monthly Figures - Enter and validate monthly revenue, margin, payroll, hours, receivables, payables and inventory
- notes: Messages - CRM notes exchanged with your consultant
- help: Help - How ratios are computed and what "n/a" means
`

// HandleIntent parses a user message into a navigation intent.
func (h *Handler) HandleIntent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req IntentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	systemPrompt := fmt.Sprintf(`You are a navigation assistant for a financial advisory dashboard.
%s
User's current section: %s

Analyze the user's message and respond with a JSON object:
{
  "intent": "navigate" | "query" | "chat",
  "target_section": "<section id if intent is navigate>",
  "section_label": "<human readable label>",
  "confidence": <0.0-1.0>,
  "explanation": "<brief explanation in the same language as the user's message>"
}
Return ONLY valid JSON, no markdown or extra text.`, sectionRegistry, req.CurrentSection)

	resp, err := h.agentMgr.ExecutePrompt(r.Context(), "advisor", req.Message, systemPrompt,
		map[string]interface{}{"response_format": map[string]interface{}{"type": "json_object"}})
	if err != nil {
		json.NewEncoder(w).Encode(h.fallbackKeywordMatch(req.Message))
		return
	}

	var intent IntentResponse
	if _, err := utils.SmartParse(resp, &intent); err != nil {
		intent = IntentResponse{Intent: "chat", Explanation: resp, Confidence: 0.5}
	}

	json.NewEncoder(w).Encode(intent)
}

// fallbackKeywordMatch provides basic keyword navigation when the LLM is down.
func (h *Handler) fallbackKeywordMatch(message string) IntentResponse {
	msg := strings.ToLower(message)

	keywords := map[string]struct{ id, label string }{
		"ratio":      {"dashboard", "Dashboard"},
		"dso":        {"dashboard", "Dashboard"},
		"bfr":        {"dashboard", "Dashboard"},
		"tableau":    {"dashboard", "Dashboard"},
		"figure":     {"records", "Monthly Figures"},
		"saisie":     {"records", "Monthly Figures"},
		"record":     {"records", "Monthly Figures"},
		"note":       {"notes", "Messages"},
		"message":    {"notes", "Messages"},
		"consultant": {"notes", "Messages"},
		"help":       {"help", "Help"},
		"aide":       {"help", "Help"},
	}

	for kw, section := range keywords {
		if strings.Contains(msg, kw) {
			return IntentResponse{
				Intent:        "navigate",
				TargetSection: section.id,
				SectionLabel:  section.label,
				Confidence:    0.8,
				Explanation:   fmt.Sprintf("Matched keyword '%s', suggesting %s", kw, section.label),
			}
		}
	}

	return IntentResponse{Intent: "chat", Confidence: 1.0, Explanation: "No navigation intent detected"}
}
