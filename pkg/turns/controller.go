// Package turns orchestrates one request/response exchange: echo the
// user's line, show a placeholder, call the generation endpoint, and
// resolve the placeholder with the normalized reply or an error marker.
package turns

import (
	"context"
	"fmt"
	"strings"
	"sync"

	nanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"github.com/parleyhq/parley/pkg/llm"
	"github.com/parleyhq/parley/pkg/transcript"
)

const (
	// Placeholder is shown on the agent line while a reply is pending.
	Placeholder = "…"

	// ErrorSentinel replaces the placeholder for any failure, transport
	// or payload shape alike.
	ErrorSentinel = "[error]"
)

// Generator produces a raw response body for a prompt. llm.Client is
// the production implementation.
type Generator interface {
	Generate(ctx context.Context, prompt string) ([]byte, error)
}

// turn is one pending exchange. Each turn holds a reference to its own
// placeholder line, so resolution never depends on what happens to be
// the last line at the time the reply arrives. A turn is awaiting its
// response exactly while it sits in the controller's pending map;
// resolution removes it, success and failure alike.
type turn struct {
	id     string
	prompt string
	lineID transcript.LineID
}

// Controller manages turn exchanges against a single transcript. It is
// safe to submit a new turn while a prior one is still awaiting its
// reply; each resolves only its own placeholder.
type Controller struct {
	sink   *transcript.Transcript
	gen    Generator
	logger *zap.Logger

	mu      sync.Mutex
	pending map[string]*turn
	wg      sync.WaitGroup
}

// NewController creates a controller writing to the given transcript.
func NewController(sink *transcript.Transcript, gen Generator, logger *zap.Logger) *Controller {
	return &Controller{
		sink:    sink,
		gen:     gen,
		logger:  logger,
		pending: make(map[string]*turn),
	}
}

// SubmitTurn starts one exchange. Whitespace-only input is a silent
// no-op: nothing is appended and no request is issued. Otherwise the
// trimmed text is echoed as a user line, a placeholder agent line is
// appended, and the reply is resolved asynchronously. The call returns
// as soon as the request is in flight.
func (c *Controller) SubmitTurn(ctx context.Context, rawInput string) {
	prompt := strings.TrimSpace(rawInput)
	if prompt == "" {
		return
	}

	c.sink.Append(transcript.SpeakerUser, prompt)
	lineID := c.sink.Append(transcript.SpeakerAgent, Placeholder)

	id, err := nanoid.New()
	if err != nil {
		id = fmt.Sprintf("turn-%d", lineID)
	}

	t := &turn{id: id, prompt: prompt, lineID: lineID}

	c.mu.Lock()
	c.pending[id] = t
	c.mu.Unlock()

	c.logger.Debug("turn submitted",
		zap.String("turn_id", id),
		zap.Int("prompt_len", len(prompt)),
	)

	c.wg.Add(1)
	go c.resolve(ctx, t)
}

// resolve awaits the remote call and lands the normalized result on the
// turn's own placeholder line. Transport failures and unrecognized
// payloads collapse into the same sentinel text.
func (c *Controller) resolve(ctx context.Context, t *turn) {
	defer c.wg.Done()

	text := ErrorSentinel

	body, err := c.gen.Generate(ctx, t.prompt)
	if err != nil {
		c.logger.Warn("generation request failed",
			zap.String("turn_id", t.id),
			zap.Error(err),
		)
	} else if raw, ok := llm.GeneratedText(body); !ok {
		c.logger.Warn("unexpected payload shape",
			zap.String("turn_id", t.id),
			zap.Int("body_size", len(body)),
		)
	} else if stripped := llm.StripPromptEcho(raw, t.prompt); stripped == "" {
		// The reply was nothing but an echo of the prompt.
		c.logger.Warn("empty reply after echo strip",
			zap.String("turn_id", t.id),
		)
	} else {
		text = stripped
	}

	if err := c.sink.Replace(t.lineID, text); err != nil {
		c.logger.Error("failed to resolve placeholder",
			zap.String("turn_id", t.id),
			zap.Error(err),
		)
	}

	c.mu.Lock()
	delete(c.pending, t.id)
	c.mu.Unlock()

	c.logger.Debug("turn resolved", zap.String("turn_id", t.id))
}

// Pending reports how many turns are still awaiting a reply.
func (c *Controller) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Wait blocks until every submitted turn has resolved. SubmitTurn
// itself stays fire-and-forget; line-mode rendering and tests use this
// to sequence output.
func (c *Controller) Wait() {
	c.wg.Wait()
}
