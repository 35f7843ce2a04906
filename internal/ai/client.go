// Package ai calls a generative endpoint for two optional features: the
// weekly motivational summary and macro estimation from a free-text meal
// description. Both degrade: any failure here is replaced by a local
// deterministic result, never shown to the user as an error.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/Marakke/activity-app/internal/analytics"
)

// ErrNotConfigured marks a missing API credential. Callers treat it like
// any other adapter failure and fall back locally.
var ErrNotConfigured = errors.New("ai: GEMINI_API_KEY is not set")

const (
	defaultModel   = "gemini-2.0-flash"
	requestTimeout = 15 * time.Second
)

type Config struct {
	APIKey string
	Model  string
}

// Client wraps the generative endpoint behind the two operations the app
// needs.
type Client struct {
	client *genai.Client
	model  string
	log    *zap.Logger
}

// New builds a client, or returns ErrNotConfigured without touching the
// network when no API key is present.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	if log == nil {
		log = zap.NewNop()
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{client: client, model: model, log: log}, nil
}

// Summarize asks the model for a short motivational synthesis of one
// week's analytics snapshot.
func (c *Client) Summarize(ctx context.Context, snap analytics.WeekSnapshot) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(summaryPrompt(snap)), nil)
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("summary response contained no text")
	}
	return text, nil
}

func summaryPrompt(snap analytics.WeekSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a supportive fitness coach. Write a short, upbeat summary (3 sentences max) of this week (%s) for the user.\n", snap.WeekRangeLabel)
	fmt.Fprintf(&b, "Total activities completed: %d across %d active days.\n", snap.Total, snap.ActiveDays)
	fmt.Fprintf(&b, "Current streak: %d days. Average per week: %.1f.\n", snap.Streak, snap.AveragePerWeek)
	for _, a := range snap.PerActivity {
		fmt.Fprintf(&b, "- %s %s: %d times\n", a.Icon, a.Label, a.Count)
	}
	b.WriteString("Do not invent numbers. Plain text only.")
	return b.String()
}

// MacroEstimate is the model's guess at a meal's macros, rounded to whole
// units and validated non-negative.
type MacroEstimate struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
}

// EstimateMacros asks the model for a macro breakdown of a free-text meal
// description. An unparseable response is an error; the caller decides
// whether to retry, fall back, or ask the user to enter values manually.
func (c *Client) EstimateMacros(ctx context.Context, description string) (MacroEstimate, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return MacroEstimate{}, fmt.Errorf("meal description is required")
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	prompt := fmt.Sprintf(
		"Estimate the nutrition of this meal: %q.\n"+
			"Respond with only a JSON object, no prose, in the form "+
			`{"calories": <int>, "protein": <grams int>, "carbs": <grams int>, "fats": <grams int>}.`,
		description)
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return MacroEstimate{}, fmt.Errorf("generate macro estimate: %w", err)
	}
	return ParseMacroEstimate(resp.Text())
}

// Close is a no-op: the genai client holds no resources that need an
// explicit release. Kept so callers can defer cleanup uniformly.
func (c *Client) Close() error {
	return nil
}
