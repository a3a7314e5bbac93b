package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// completer is the slice of the Gemini client GeminiSource needs.
type completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// GeminiSource asks Gemini for availability suggestions and parses the
// {"dates": [...]} JSON reply.
type GeminiSource struct {
	llm completer
}

func NewGeminiSource(ctx context.Context, apiKey, modelID string) (*GeminiSource, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("suggest: gemini api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("suggest: failed to create gemini client: %w", err)
	}
	return &GeminiSource{llm: &geminiCompleter{client: client, modelID: modelID}}, nil
}

const systemPrompt = `You help physiotherapy clinicians plan their calendar.
Reply with JSON only, shaped as {"dates": ["YYYY-MM-DD", ...]}.
Only include dates inside the requested month.`

type suggestionRequest struct {
	ClinicianID string `json:"clinician_id"`
	Month       string `json:"month"`
}

type suggestionResponse struct {
	Dates []string `json:"dates"`
}

func (s *GeminiSource) Suggest(ctx context.Context, clinicianID string, month time.Time) ([]string, error) {
	req, err := json.Marshal(suggestionRequest{
		ClinicianID: clinicianID,
		Month:       month.Format("2006-01"),
	})
	if err != nil {
		return nil, err
	}

	prompt := "Suggest days with open availability for this request:\n" + string(req)
	text, err := s.llm.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("suggest: gemini completion: %w", err)
	}

	var resp suggestionResponse
	if err := json.Unmarshal([]byte(stripFences(text)), &resp); err != nil {
		return nil, fmt.Errorf("suggest: decode gemini reply: %w", err)
	}
	return inMonth(resp.Dates, month), nil
}

// stripFences removes a ```json fenced block wrapper if the model added one.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

type geminiCompleter struct {
	client  *genai.Client
	modelID string
}

func (g *geminiCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	model := g.client.GenerativeModel(g.modelID)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = genai.NewUserContent(genai.Text(system))

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				sb.WriteString(string(txt))
			}
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("empty response")
	}
	return sb.String(), nil
}

// Close releases the underlying client.
func (s *GeminiSource) Close() error {
	if g, ok := s.llm.(*geminiCompleter); ok {
		return g.client.Close()
	}
	return nil
}
