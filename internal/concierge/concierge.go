// Package concierge is the venue's conversational assistant: a single owned
// chat session that exchanges free-text messages with a generative language
// API. Failures never propagate to the visitor; every error path degrades to
// an apology string.
package concierge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const systemPrompt = `You are the "ArkHive Concierge", an assistant for a premium event space called ArkHive located in Ikota, Lagos State.
Your tone should be: Luxury, Calm, Intentional, Professional, and Helpful.

Key Details about ArkHive:
- Slogan: "Your Vision, Our Space."
- Location: Ikota, Lagos State.
- Vibe: Upscale, multifunctional, premium.
- Usage: Brand launches, corporate events, art exhibitions, weddings, wellness sessions.
- Capacity: Approximately 300 seated, 500 standing (flexible layouts).
- Amenities: 24/7 Power, High-speed Wifi, Premium AV, Mood Lighting, Parking.

Your Goal:
- Assist users in planning events.
- Suggest layouts based on guest count.
- Answer questions about amenities.
- Encourage them to use the "Book Now" form for specific dates.
- If asked about specific availability, say "Please check our live calendar or contact the sales team directly via the Booking form for real-time availability."

Do not invent false pricing. If asked for price, say "Pricing varies based on event requirements. Please submit an inquiry for a tailored quote."`

const (
	replyOffline    = "I am currently offline (API Key missing). Please contact support."
	replyBadRequest = "I apologize, I couldn't process that request right now."
	replyUnreachable = "I'm having trouble connecting to the server. Please try again later."
)

type Config struct {
	// Endpoint is the generateContent URL of the model, without the key.
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// Session is one conversation. It owns its history: create it with New when
// the chat view opens and Close it when the view is torn down.
type Session struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger

	mu      sync.Mutex
	history []turn
	closed  bool
}

type turn struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateRequest struct {
	SystemInstruction *turn  `json:"system_instruction,omitempty"`
	Contents          []turn `json:"contents"`
}

type generateResponse struct {
	Candidates []struct {
		Content turn `json:"content"`
	} `json:"candidates"`
}

func New(cfg Config, logger *slog.Logger) *Session {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Session{
		cfg:    cfg,
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// SendMessage sends the visitor's message within the running conversation
// and returns the assistant's reply. It fails soft: missing credentials or
// any transport/decode problem yield an apology string, never an error.
func (s *Session) SendMessage(ctx context.Context, text string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.cfg.APIKey == "" {
		return replyOffline
	}

	contents := append(append([]turn{}, s.history...), turn{
		Role:  "user",
		Parts: []part{{Text: text}},
	})

	reply, err := s.generate(ctx, contents)
	if err != nil {
		s.logger.Error("concierge request failed", "error", err)
		return replyUnreachable
	}
	if reply == "" {
		return replyBadRequest
	}

	s.history = append(contents, turn{Role: "model", Parts: []part{{Text: reply}}})
	return reply
}

func (s *Session) generate(ctx context.Context, contents []turn) (string, error) {
	body, err := json.Marshal(generateRequest{
		SystemInstruction: &turn{Parts: []part{{Text: systemPrompt}}},
		Contents:          contents,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", s.cfg.APIKey)

	resp, err := s.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// History returns the number of exchanged turns, for view rendering.
func (s *Session) History() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// Close tears the session down; further messages answer offline.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.history = nil
}
