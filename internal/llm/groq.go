package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// DefaultGroqModel is the model used when none is configured.
const DefaultGroqModel = "llama-3.3-70b-versatile"

const groqBaseURL = "https://api.groq.com/openai/v1"

// GroqClient implements Client against Groq's OpenAI-compatible
// chat-completions endpoint.
type GroqClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGroqClient creates a new Groq client.
func NewGroqClient(apiKey, model string) *GroqClient {
	if model == "" {
		model = DefaultGroqModel
	}
	return &GroqClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    groqBaseURL,
		httpClient: http.DefaultClient,
	}
}

// WithBaseURL overrides the endpoint base URL. Used in tests.
func (c *GroqClient) WithBaseURL(baseURL string) *GroqClient {
	c.baseURL = baseURL
	return c
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends the prompt as a single user message and returns the content
// of the first choice.
func (c *GroqClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &ProviderError{Provider: "groq", Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: "groq", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &ProviderError{Provider: "groq", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: "groq", Err: fmt.Errorf("read response: %w", err)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &ProviderError{Provider: "groq", Err: fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)}
	}

	if resp.StatusCode != http.StatusOK {
		msg := "unexpected status"
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", &ProviderError{Provider: "groq", Err: fmt.Errorf("status %d: %s", resp.StatusCode, msg)}
	}

	if len(parsed.Choices) == 0 {
		return "", &ProviderError{Provider: "groq", Err: fmt.Errorf("no choices in response")}
	}

	return parsed.Choices[0].Message.Content, nil
}

// Close is a no-op; the client holds no long-lived resources.
func (c *GroqClient) Close() error {
	return nil
}
