// ABOUTME: AI-powered demo data generator for the admin console.
// ABOUTME: Uses OpenAI when a key is configured, static fallback otherwise.

package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sashabaranov/go-openai"
)

// Generator creates fake admin data using OpenAI or falls back to static data.
type Generator struct {
	client *openai.Client
	useAI  bool
	model  string
}

// NewGenerator creates a generator, loading the API key from .env if available.
func NewGenerator() *Generator {
	g := &Generator{}

	// Try to load .env from current dir or parent dirs
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	// Also check home directory
	if home, err := os.UserHomeDir(); err == nil {
		godotenv.Load(filepath.Join(home, ".env"))
	}

	g.model = os.Getenv("OPENAI_MODEL")
	if g.model == "" {
		g.model = "gpt-5-mini"
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey != "" {
		g.client = openai.NewClient(apiKey)
		g.useAI = true
		log.Printf("OpenAI API key found, using AI-generated data with model: %s", g.model)
	} else {
		log.Println("No OPENAI_API_KEY found, using static fallback data")
	}

	return g
}

// GeneratedData holds all the generated fake data.
type GeneratedData struct {
	Users     []UserData     `json:"users"`
	Roles     []RoleData     `json:"roles"`
	Questions []QuestionData `json:"questions"`
}

// UserData represents a generated account.
type UserData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RoleData represents a generated role.
type RoleData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// QuestionData represents a generated security question.
type QuestionData struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Generate creates all the fake data.
func (g *Generator) Generate(ctx context.Context, numUsers, numRoles, numQuestions int) (*GeneratedData, error) {
	if !g.useAI {
		return g.generateStatic(numUsers, numRoles, numQuestions), nil
	}

	data := &GeneratedData{}

	type result struct {
		name string
		err  error
	}

	// Generate in parallel for speed
	resultCh := make(chan result, 3)

	log.Printf("Generating %d users, %d roles, %d security questions via AI...", numUsers, numRoles, numQuestions)

	go func() {
		log.Print("  ⏳ Generating users...")
		users, err := g.generateUsers(ctx, numUsers)
		if err != nil {
			resultCh <- result{"users", err}
			return
		}
		data.Users = users
		log.Printf("  ✓ Generated %d users", len(users))
		resultCh <- result{"users", nil}
	}()

	go func() {
		log.Print("  ⏳ Generating roles...")
		roles, err := g.generateRoles(ctx, numRoles)
		if err != nil {
			resultCh <- result{"roles", err}
			return
		}
		data.Roles = roles
		log.Printf("  ✓ Generated %d roles", len(roles))
		resultCh <- result{"roles", nil}
	}()

	go func() {
		log.Print("  ⏳ Generating security questions...")
		questions, err := g.generateQuestions(ctx, numQuestions)
		if err != nil {
			resultCh <- result{"questions", err}
			return
		}
		data.Questions = questions
		log.Printf("  ✓ Generated %d security questions", len(questions))
		resultCh <- result{"questions", nil}
	}()

	// Collect results
	var errs []error
	for i := 0; i < 3; i++ {
		r := <-resultCh
		if r.err != nil {
			log.Printf("  ✗ Failed to generate %s: %v", r.name, r.err)
			errs = append(errs, fmt.Errorf("%s: %w", r.name, r.err))
		}
	}

	if len(errs) > 0 {
		log.Print("AI generation incomplete, falling back to static data...")
		return g.generateStatic(numUsers, numRoles, numQuestions), nil
	}

	log.Print("AI generation complete!")
	return data, nil
}

func (g *Generator) generateUsers(ctx context.Context, count int) ([]UserData, error) {
	prompt := fmt.Sprintf(`Generate %d realistic fake user accounts for a company's admin console. Include a mix of:
- Engineers, product managers, designers
- Operations and support staff
- A couple of executives

Return as JSON array with objects containing: name, email, password.
Emails should all use the domain example.com and be derived from the name.
Passwords should be 10-14 characters mixing words and digits; they are throwaway demo values.
Use diverse, realistic names.`, count)

	return callOpenAI[[]UserData](ctx, g.client, g.model, prompt)
}

func (g *Generator) generateRoles(ctx context.Context, count int) ([]RoleData, error) {
	prompt := fmt.Sprintf(`Generate %d roles for a company's access-control system. Include:
- A superuser/administrator role
- Department-level roles (engineering, support, finance)
- Read-only or auditor roles

Return as JSON array with objects containing: name, description.
Names should be short lowercase identifiers (admin, support-agent, auditor).
Descriptions should be one sentence explaining what the role can do.`, count)

	return callOpenAI[[]RoleData](ctx, g.client, g.model, prompt)
}

func (g *Generator) generateQuestions(ctx context.Context, count int) ([]QuestionData, error) {
	prompt := fmt.Sprintf(`Generate %d security questions for account recovery. Classic identity-verification
questions (first pet, childhood street, and so on), each phrased as a full question.

Return as JSON array with objects containing: name (the question text), description (a short hint
about what kind of answer is expected).`, count)

	return callOpenAI[[]QuestionData](ctx, g.client, g.model, prompt)
}

func callOpenAI[T any](ctx context.Context, client *openai.Client, model, prompt string) (T, error) {
	var result T

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a data generator. Always respond with valid JSON only, no markdown or explanation.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return result, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return result, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return result, nil
}
