package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shouni/go-gemini-client/gemini"
	"google.golang.org/genai"
)

// ReplyClient is the one narrow seam between the board and whatever text
// generation provider is configured. Implementations must be safe to call
// once per submission; the board never retries.
type ReplyClient interface {
	SubmitText(ctx context.Context, prompt string) (string, error)
}

// replyPromptTemplate is the fixed template the user's note text is
// interpolated into. %q keeps raw newlines and quotes intact.
const replyPromptTemplate = "You are DESK BUDDY, a cheerful turn-of-the-millennium desktop assistant " +
	"living on a virtual corkboard. A user just pinned this sticky note: %q. " +
	"Write back one short, upbeat reply in plain text, no markdown, at most 60 words."

const sentinelReplyText = "SYSTEM ERROR!\nDESK BUDDY IS OFFLINE.\nCheck GEMINI_API_KEY and try again."

func buildReplyPrompt(noteText string) string {
	return fmt.Sprintf(replyPromptTemplate, noteText)
}

const defaultReplyTemperature = float32(0.7)

// geminiReplier adapts the Gemini client to ReplyClient. generate takes the
// model name first, matching the client's GenerateContent signature.
type geminiReplier struct {
	generate func(ctx context.Context, model, prompt string) (string, error)
	model    string
	timeout  time.Duration
}

func newGeminiReplier(ctx context.Context, apiKey, model string, timeout time.Duration) (*geminiReplier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing GEMINI_API_KEY")
	}
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultReplyTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("initializing gemini client: %w", err)
	}
	return &geminiReplier{
		generate: func(ctx context.Context, model, prompt string) (string, error) {
			resp, err := aiClient.GenerateContent(ctx, model, prompt)
			if err != nil {
				return "", err
			}
			return resp.Text, nil
		},
		model:   model,
		timeout: timeout,
	}, nil
}

func (g *geminiReplier) SubmitText(ctx context.Context, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	text, err := g.generate(ctx, g.model, prompt)
	if err != nil {
		return "", fmt.Errorf("generating reply: %w", err)
	}
	return strings.TrimSpace(text), nil
}

type replyMsg struct {
	text string
	err  error
	gen  int
}

// fetchReplyCmd makes the single outbound call for a submission cycle. A nil
// client means the credential was missing at startup; that surfaces the same
// way a provider failure does.
func fetchReplyCmd(client ReplyClient, noteText string, gen int) tea.Cmd {
	return func() tea.Msg {
		if client == nil {
			return replyMsg{err: fmt.Errorf("no reply client configured"), gen: gen}
		}
		text, err := client.SubmitText(context.Background(), buildReplyPrompt(noteText))
		if err != nil {
			return replyMsg{err: err, gen: gen}
		}
		return replyMsg{text: text, gen: gen}
	}
}
