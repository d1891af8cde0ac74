// Package prompt provides a centralized prompt library for the assistant.
// Prompts live in JSON files under resources/prompts and are loaded at
// startup, so wording changes need no code change.
package prompt

// PromptTemplate represents a reusable prompt with metadata.
type PromptTemplate struct {
	ID             string           `json:"id"`                   // e.g. "advisor.chat"
	Name           string           `json:"name"`                 // Human-readable name
	Category       string           `json:"category"`             // advisor, intent, ...
	Description    string           `json:"description"`          // Purpose of the prompt
	SystemPrompt   string           `json:"system_prompt"`        // System prompt content
	UserPromptTmpl string           `json:"user_prompt_template"` // Go template for the user prompt
	Variables      []PromptVariable `json:"variables"`            // Variables used in the template
	Version        string           `json:"version"`              // Version for tracking changes
}

// PromptVariable documents one template variable.
type PromptVariable struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Default     string `json:"default"`
}

// PromptExecutionContext holds runtime values for template rendering.
type PromptExecutionContext struct {
	Variables map[string]interface{}
}

// NewContext creates an empty execution context.
func NewContext() *PromptExecutionContext {
	return &PromptExecutionContext{
		Variables: make(map[string]interface{}),
	}
}

// Set adds a variable and returns the context for chaining.
func (c *PromptExecutionContext) Set(key string, value interface{}) *PromptExecutionContext {
	c.Variables[key] = value
	return c
}

// PromptIDs lists the identifiers the backend expects to find in resources/.
var PromptIDs = struct {
	AdvisorChat   string
	AdvisorIntent string
}{
	AdvisorChat:   "advisor.chat",
	AdvisorIntent: "advisor.intent",
}

// GetAdvisorPrompt returns an advisor prompt's system text by short name.
func GetAdvisorPrompt(name string) (string, error) {
	return Get().GetSystemPrompt("advisor." + name)
}
