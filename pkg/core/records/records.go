// Package records defines the client and monthly-figure domain model shared
// by the store, the API handlers and the assistant grounding layer.
package records

import (
	"fmt"
	"time"

	"advisory_platform/pkg/core/calc"
)

// RecordStatus tracks the consultant validation workflow for one month.
type RecordStatus string

const (
	StatusDraft     RecordStatus = "draft"
	StatusValidated RecordStatus = "validated"
)

// Role identifies who is acting: the firm's consultant or the client.
type Role string

const (
	RoleConsultant Role = "consultant"
	RoleClient     Role = "client"
)

// Client is one small-business customer of the consulting firm.
type Client struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Siren        string    `json:"siren,omitempty"`
	Sector       string    `json:"sector,omitempty"`
	ConsultantID string    `json:"consultant_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// MonthlyRecord is one accounting period's figures for one client, as
// entered by the consultant. Unfilled figures stay at their zero value,
// which is exactly the defaulting the ratio engine expects.
type MonthlyRecord struct {
	ClientID   string `json:"client_id"`
	FiscalYear int    `json:"fiscal_year"`
	Month      int    `json:"month"` // 1..12

	CA                 float64 `json:"ca"`
	MarginTotal        float64 `json:"margin_total"`
	Salaries           float64 `json:"salaries"`
	HoursWorked        float64 `json:"hours_worked"`
	ReceivablesClients float64 `json:"receivables_clients"`
	DebtsSuppliers     float64 `json:"debts_suppliers"`
	StockTotal         float64 `json:"stock_total"`

	Status      RecordStatus `json:"status"`
	ValidatedBy string       `json:"validated_by,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// RatioInput converts the record into the ratio engine's input shape.
func (r MonthlyRecord) RatioInput() calc.RatioInput {
	return calc.RatioInput{
		CA:                 r.CA,
		MarginTotal:        r.MarginTotal,
		Salaries:           r.Salaries,
		HoursWorked:        r.HoursWorked,
		ReceivablesClients: r.ReceivablesClients,
		DebtsSuppliers:     r.DebtsSuppliers,
		StockTotal:         r.StockTotal,
	}
}

// PeriodLabel renders the accounting period as "YYYY-MM".
func (r MonthlyRecord) PeriodLabel() string {
	return fmt.Sprintf("%04d-%02d", r.FiscalYear, r.Month)
}

// Validate checks the record's period coordinates before it hits the store.
func (r MonthlyRecord) Validate() error {
	if r.ClientID == "" {
		return fmt.Errorf("record has no client id")
	}
	if r.Month < 1 || r.Month > 12 {
		return fmt.Errorf("month %d out of range", r.Month)
	}
	if r.FiscalYear < 2000 || r.FiscalYear > 2100 {
		return fmt.Errorf("fiscal year %d out of range", r.FiscalYear)
	}
	for name, v := range map[string]float64{
		"ca":                  r.CA,
		"margin_total":        r.MarginTotal,
		"salaries":            r.Salaries,
		"hours_worked":        r.HoursWorked,
		"receivables_clients": r.ReceivablesClients,
		"debts_suppliers":     r.DebtsSuppliers,
		"stock_total":         r.StockTotal,
	} {
		if v < 0 {
			return fmt.Errorf("%s is negative (%.2f)", name, v)
		}
	}
	return nil
}

// Note is a CRM message exchanged between consultant and client.
type Note struct {
	ID        string    `json:"id"`
	ClientID  string    `json:"client_id"`
	Author    Role      `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	ReadAt    time.Time `json:"read_at,omitempty"`
}

// ChatMessage is one turn of an assistant conversation, persisted per session.
type ChatMessage struct {
	SessionID string    `json:"session_id"`
	ClientID  string    `json:"client_id"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
