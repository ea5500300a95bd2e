package effect

import (
	"context"
	"log/slog"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/intent"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/internal/core/store"
)

var _ store.Listener = (*SessionEffects)(nil)

// SessionEffects reacts to login and logout. It keeps the authentication
// token and merges the anonymous basket into the basket of the customer.
//
// Login and logout share one latest-wins runner, so a logout cancels a
// running login and drops its result. Token writes happen in intent order.
type SessionEffects struct {
	basket *BasketEffects
	tokens port.TokenStorage
	latest Runner

	mu        sync.Mutex
	lastWrite chan struct{}
}

// NewSessionEffects returns session effects. tokens may be nil when the
// token is handled elsewhere.
func NewSessionEffects(
	ctx context.Context, d Dispatcher, basket *BasketEffects, tokens port.TokenStorage,
) *SessionEffects {
	if basket == nil {
		panic("effect.NewSessionEffects: nil basket effects (develop mistake)")
	}
	done := make(chan struct{})
	close(done)
	return &SessionEffects{
		basket:    basket,
		tokens:    tokens,
		latest:    NewLatestRunner(ctx, d),
		lastWrite: done,
	}
}

func (e *SessionEffects) Close() {
	e.latest.Close()
}

func (e *SessionEffects) Notify(in intent.Intent, st store.State) []intent.Intent {
	switch in := in.(type) {
	case intent.LoginUserSuccess:
		var items []domain.ProductQuantity
		if b := st.Basket.Basket; b.HasLineItems() {
			items = b.ProductQuantities()
		}
		e.latest.Submit(e.login(in.Token, items, e.nextWrite()))

	case intent.LogoutUser:
		e.latest.Submit(e.logout(e.nextWrite()))
		return []intent.Intent{intent.ResetBasket{}}
	}
	return nil
}

// A tokenWrite is a turn in the sequence of token writes.
type tokenWrite struct {
	prev <-chan struct{}
	done chan struct{}
}

func (e *SessionEffects) nextWrite() tokenWrite {
	e.mu.Lock()
	defer e.mu.Unlock()

	w := tokenWrite{prev: e.lastWrite, done: make(chan struct{})}
	e.lastWrite = w.done
	return w
}

// login stores the token first, so the basket requests below are issued on
// behalf of the customer.
func (e *SessionEffects) login(
	token string, items []domain.ProductQuantity, w tokenWrite,
) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "SessionEffects.login"
		log := slog.With("op", op)

		<-w.prev
		if ctx.Err() != nil {
			close(w.done)
			return nil
		}
		if e.tokens != nil && token != "" {
			if err := e.tokens.SetToken(ctx, token); err != nil {
				log.Error("failed to store token", "err", err)
			}
		}
		close(w.done)
		if ctx.Err() != nil {
			return nil
		}

		if len(items) == 0 {
			return []intent.Intent{intent.LoadBasket{}}
		}

		b, err := e.basket.resolveBasket(ctx)
		if err != nil {
			logFail(op, err)
			return []intent.Intent{intent.AddItemsToBasketFail{Err: err}}
		}
		log.Info("merging anonymous basket", "basketID", b.ID, "items", len(items))
		return []intent.Intent{intent.AddItemsToBasket{Items: items, BasketID: b.ID}}
	}
}

// logout deletes the token even when a newer login has already canceled
// it. That login stores its token afterwards.
func (e *SessionEffects) logout(w tokenWrite) Task {
	return func(ctx context.Context) []intent.Intent {
		const op = "SessionEffects.logout"
		defer close(w.done)

		<-w.prev
		if e.tokens == nil {
			return nil
		}
		if err := e.tokens.DeleteToken(context.WithoutCancel(ctx)); err != nil {
			slog.Error("failed to delete token", "op", op, "err", err)
		}
		return nil
	}
}
