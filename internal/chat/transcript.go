// Package chat keeps the conversation with the organizing assistant.
package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/shouna/internal/model"
)

// WelcomeMessage opens every transcript.
const WelcomeMessage = "你好！我是你的家庭收纳顾问。我可以帮你规划空间、建议收纳方案，或者帮你回忆东西放在哪里了。今天想整理什么呢？"

// Advisor answers an organizing question given the current items.
type Advisor interface {
	Advise(ctx context.Context, question string, items []model.Item) string
}

// Catalog supplies the items used as context for advice.
type Catalog interface {
	Items(ctx context.Context) ([]model.Item, error)
}

// Transcript is the append-only message history. Sends may overlap; each
// gets exactly one reply, appended when it arrives.
type Transcript struct {
	advisor Advisor
	catalog Catalog
	now     func() time.Time

	mu       sync.Mutex
	messages []model.ChatMessage
	pending  int
}

// New returns a transcript holding only the welcome message.
func New(advisor Advisor, catalog Catalog) *Transcript {
	t := &Transcript{
		advisor: advisor,
		catalog: catalog,
		now:     time.Now,
	}
	t.messages = []model.ChatMessage{{
		ID:        "welcome",
		Text:      WelcomeMessage,
		Sender:    model.SenderAssistant,
		Timestamp: t.now(),
	}}
	return t
}

// Send records a user message and waits for the assistant's reply, which
// it returns. Blank text is ignored and yields nil.
func (t *Transcript) Send(ctx context.Context, text string) *model.ChatMessage {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	t.mu.Lock()
	t.messages = append(t.messages, t.message(text, model.SenderUser))
	t.pending++
	t.mu.Unlock()

	items, err := t.catalog.Items(ctx)
	if err != nil {
		slog.Error("failed to load items for advice", "error", err)
		items = nil
	}
	answer := t.advisor.Advise(ctx, text, items)

	t.mu.Lock()
	defer t.mu.Unlock()
	reply := t.message(answer, model.SenderAssistant)
	t.messages = append(t.messages, reply)
	t.pending--
	return &reply
}

// Messages returns a copy of the history in order.
func (t *Transcript) Messages() []model.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]model.ChatMessage(nil), t.messages...)
}

// Awaiting reports whether a reply is still outstanding.
func (t *Transcript) Awaiting() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending > 0
}

func (t *Transcript) message(text, sender string) model.ChatMessage {
	return model.ChatMessage{ID: uuid.NewString(), Text: text, Sender: sender, Timestamp: t.now()}
}
