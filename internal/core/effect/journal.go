package effect

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/intent"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/store"
)

var _ store.Listener = (*JournalEffects)(nil)

const closeFlushTimeout = 5 * time.Second

// JournalEffects appends every reduced intent to the intent journal.
//
// Entries are buffered and flushed in batches by a single worker, so a slow
// journal never delays dispatching. Close flushes what is left.
type JournalEffects struct {
	ctx       context.Context
	journal   port.IntentJournal
	sessionID string
	now       func() time.Time
	concat    Runner

	mu        sync.Mutex
	buf       []domain.JournalEntry
	scheduled bool
	closed    bool
}

func NewJournalEffects(
	ctx context.Context, d Dispatcher, journal port.IntentJournal, sessionID string,
) *JournalEffects {
	if journal == nil {
		panic("effect.NewJournalEffects: nil journal (develop mistake)")
	}
	return &JournalEffects{
		ctx:       ctx,
		journal:   journal,
		sessionID: sessionID,
		now:       time.Now,
		concat:    NewConcatRunner(ctx, d),
	}
}

// Close stops the worker and appends the buffered entries. Intents
// reduced after Close are not journaled.
func (e *JournalEffects) Close() {
	e.concat.Close()

	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.WithoutCancel(e.ctx), closeFlushTimeout)
	defer cancel()
	e.flush(ctx)
}

func (e *JournalEffects) Notify(in intent.Intent, _ store.State) []intent.Intent {
	entry := domain.JournalEntry{
		ID:         uuid.New(),
		SessionID:  e.sessionID,
		Name:       in.Name(),
		OccurredAt: e.now().UTC(),
		Payload:    journalPayload(in),
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		slog.Debug("journal is closed", "intent", entry.Name)
		return nil
	}
	e.buf = append(e.buf, entry)
	if !e.scheduled {
		e.scheduled = true
		e.concat.Submit(e.flush)
	}
	return nil
}

func (e *JournalEffects) flush(ctx context.Context) []intent.Intent {
	const op = "JournalEffects.flush"

	e.mu.Lock()
	e.scheduled = false
	if ctx.Err() != nil {
		// left for the flush in Close
		e.mu.Unlock()
		return nil
	}
	entries := e.buf
	e.buf = nil
	e.mu.Unlock()

	if len(entries) == 0 {
		return nil
	}
	if err := e.journal.AppendEntries(ctx, entries); err != nil {
		slog.Error(
			"failed to append journal entries",
			"op", op, "entries", len(entries), "err", err,
		)
	}
	return nil
}

type failurePayload struct {
	Error string `json:"error"`
}

// journalPayload encodes the intent fields. Failures are encoded as their
// error message.
func journalPayload(in intent.Intent) []byte {
	const op = "effect.journalPayload"

	var v any = in
	if f, ok := in.(intent.Failure); ok && f.Cause() != nil {
		v = failurePayload{Error: f.Cause().Error()}
	}
	b, err := json.Marshal(v)
	if err != nil {
		slog.Warn("failed to encode intent", "op", op, "intent", in.Name(), "err", err)
		return nil
	}
	return b
}
