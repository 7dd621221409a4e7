// Package research asks a Gemini model for a design-oriented analysis of a
// colour: its psychology, the industries and brands that use it, and accent
// colour suggestions.
package research

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"google.golang.org/genai"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvAPIKey  = "GOOGLE_API_KEY"
	EnvBackend = "SHADECRAFT_GENAI_BACKEND"
	EnvModel   = "SHADECRAFT_GENAI_MODEL"
)

// Defaults.
const (
	BackendGeminiAPI = "gemini-api"
	BackendVertexAI  = "vertex-ai"

	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.5
)

var (
	// ErrMissingAPIKey is returned when the Gemini API backend has no key.
	ErrMissingAPIKey = errors.New(EnvAPIKey + " environment variable is required\nGet one at: https://aistudio.google.com/api-keys")

	// ErrInvalidResponse is returned when the model reply does not match the
	// research schema.
	ErrInvalidResponse = errors.New("invalid research response")
)

const promptTemplate = "Provide a detailed color analysis for the hex code %s. " +
	"I need its psychological impact, common industry applications, famous brand examples, " +
	"and suggestions for accent colors. For each accent color, provide a descriptive name and its hex code. " +
	"Also, provide a brief summary of how to effectively use these accent colors."

// Config configures the research client.
type Config struct {
	APIKey      string
	Backend     string
	Model       string
	Temperature float32
}

// ConfigFromEnv reads the client configuration from the environment,
// falling back to the defaults.
func ConfigFromEnv() Config {
	cfg := Config{
		APIKey:      os.Getenv(EnvAPIKey),
		Backend:     os.Getenv(EnvBackend),
		Model:       os.Getenv(EnvModel),
		Temperature: DefaultTemperature,
	}
	if cfg.Backend == "" {
		cfg.Backend = BackendGeminiAPI
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return cfg
}

// Result is the structured analysis of a colour.
type Result struct {
	Psychology             string   `json:"psychology"`
	Industries             []string `json:"industries"`
	BrandExamples          []string `json:"brandExamples"`
	AccentColorSuggestions []Accent `json:"accentColorSuggestions"`
	AccentUsageNotes       string   `json:"accentUsageNotes"`
}

// Accent is a suggested accent colour.
type Accent struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// contentGenerator is the part of genai.Models the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client runs colour research against a Gemini model.
type Client struct {
	models contentGenerator
	cfg    Config
	logger hclog.Logger
}

// New creates a client for cfg.
func New(ctx context.Context, cfg Config, logger hclog.Logger) (*Client, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	clientConfig := &genai.ClientConfig{}
	switch cfg.Backend {
	case BackendVertexAI:
		clientConfig.Backend = genai.BackendVertexAI
	case BackendGeminiAPI, "":
		clientConfig.Backend = genai.BackendGeminiAPI
		if cfg.APIKey == "" {
			return nil, ErrMissingAPIKey
		}
		clientConfig.APIKey = cfg.APIKey
	default:
		return nil, fmt.Errorf("invalid genai backend: %s (must be %s or %s)", cfg.Backend, BackendGeminiAPI, BackendVertexAI)
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gen AI client: %w", err)
	}

	logger.Debug("gen ai client ready", "backend", cfg.Backend, "model", cfg.Model)
	return newClient(client.Models, cfg, logger), nil
}

func newClient(models contentGenerator, cfg Config, logger hclog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	return &Client{models: models, cfg: cfg, logger: logger}
}

// Research asks the model to analyse hex.
func (c *Client) Research(ctx context.Context, hex string) (*Result, error) {
	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   researchSchema(),
		Temperature:      genai.Ptr(c.cfg.Temperature),
	}

	c.logger.Debug("requesting colour research", "hex", hex, "model", c.cfg.Model)
	resp, err := c.models.GenerateContent(ctx, c.cfg.Model, genai.Text(fmt.Sprintf(promptTemplate, hex)), config)
	if err != nil {
		return nil, fmt.Errorf("research request failed: %w", err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidResponse)
	}

	result, err := parseResult(resp.Text())
	if err != nil {
		c.logger.Debug("unparseable research response", "text", resp.Text())
		return nil, err
	}
	return result, nil
}

// wireResult uses pointers so missing fields can be told apart from empty ones.
type wireResult struct {
	Psychology             *string       `json:"psychology"`
	Industries             *[]string     `json:"industries"`
	BrandExamples          *[]string     `json:"brandExamples"`
	AccentColorSuggestions *[]wireAccent `json:"accentColorSuggestions"`
	AccentUsageNotes       *string       `json:"accentUsageNotes"`
}

type wireAccent struct {
	Name *string `json:"name"`
	Hex  *string `json:"hex"`
}

func parseResult(text string) (*Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty response", ErrInvalidResponse)
	}

	var wire wireResult
	if err := json.Unmarshal([]byte(text), &wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	var missing []string
	if wire.Psychology == nil {
		missing = append(missing, "psychology")
	}
	if wire.Industries == nil {
		missing = append(missing, "industries")
	}
	if wire.BrandExamples == nil {
		missing = append(missing, "brandExamples")
	}
	if wire.AccentColorSuggestions == nil {
		missing = append(missing, "accentColorSuggestions")
	}
	if wire.AccentUsageNotes == nil {
		missing = append(missing, "accentUsageNotes")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalidResponse, strings.Join(missing, ", "))
	}

	accents := make([]Accent, 0, len(*wire.AccentColorSuggestions))
	for i, a := range *wire.AccentColorSuggestions {
		if a.Name == nil || a.Hex == nil {
			return nil, fmt.Errorf("%w: accent %d needs name and hex", ErrInvalidResponse, i)
		}
		accents = append(accents, Accent{Name: *a.Name, Hex: *a.Hex})
	}

	return &Result{
		Psychology:             *wire.Psychology,
		Industries:             *wire.Industries,
		BrandExamples:          *wire.BrandExamples,
		AccentColorSuggestions: accents,
		AccentUsageNotes:       *wire.AccentUsageNotes,
	}, nil
}

func researchSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"psychology": {
				Type:        genai.TypeString,
				Description: "A brief, engaging summary of the psychological associations of this color (e.g., trust, passion, energy). Keep it to 1-2 sentences.",
			},
			"industries": {
				Type:        genai.TypeArray,
				Description: "List of industries where this color is commonly and effectively used.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"brandExamples": {
				Type:        genai.TypeArray,
				Description: "List of well-known brands that use this color as a primary or significant secondary color in their branding.",
				Items:       &genai.Schema{Type: genai.TypeString},
			},
			"accentColorSuggestions": {
				Type:        genai.TypeArray,
				Description: "A list of objects, each representing a suggested accent color with its name and corresponding hex code.",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name": {Type: genai.TypeString, Description: `Descriptive name of the accent color (e.g., "Warm Orange").`},
						"hex":  {Type: genai.TypeString, Description: `The hex code for the accent color (e.g., "#ff8c00").`},
					},
					Required: []string{"name", "hex"},
				},
			},
			"accentUsageNotes": {
				Type:        genai.TypeString,
				Description: "A brief explanation (1-2 sentences) of how these accent colors can be used with the primary color to create a balanced and effective design.",
			},
		},
		Required: []string{"psychology", "industries", "brandExamples", "accentColorSuggestions", "accentUsageNotes"},
	}
}
