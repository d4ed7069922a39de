package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/levelup-labs/jobscout/internal/ai"
	"github.com/levelup-labs/jobscout/internal/utils"
)

// FallbackReply is appended as the bot turn when generation fails or comes
// back empty.
const FallbackReply = "Sorry, I couldn't generate a response."

const promptInstruction = "Based on the available job details and context, please provide a concise, helpful response in 2-3 lines."

// Orchestrator drives one chat turn: append the user message, ask the
// generation capability for a reply, append the bot message. The per-session
// log lock is held for the whole turn so the (user, bot) pair lands atomically
// with respect to other submissions on the same session.
type Orchestrator struct {
	Store     *Store
	Generator ai.Generator
	Logger    *zap.Logger
}

func NewOrchestrator(store *Store, generator ai.Generator, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{Store: store, Generator: generator, Logger: logger}
}

// Submit handles one user message for the session. An empty message is a
// no-op and leaves the log untouched.
func (o *Orchestrator) Submit(ctx context.Context, sessionID, text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	log := o.Store.Log(sessionID)
	log.mu.Lock()
	defer log.mu.Unlock()

	log.append(Message{Sender: SenderUser, Text: text})

	prompt := fmt.Sprintf("User asked: %s\n\n%s", text, promptInstruction)

	o.Logger.Debug("chat generation request",
		zap.String("session_id", sessionID),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, 200)),
	)

	reply, err := o.Generator.GenerateContent(ctx, prompt)
	if err != nil {
		o.Logger.Warn("chat generation failed, using fallback reply",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		reply = FallbackReply
	}
	if strings.TrimSpace(reply) == "" {
		reply = FallbackReply
	}

	log.append(Message{Sender: SenderBot, Text: reply})
}
