// Package flows implements the save/delete state machine every entity form
// shares: validate, then call the repository, then surface either field
// errors, a store error, or the saved record for the caller to refetch
// its list from.
package flows

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/avaldes/biblioteca/internal/forms"
)

var (
	// ErrSaveInFlight is returned when a save starts while another one on
	// the same flow instance is still outstanding. The in-flight flag is
	// checked atomically, not merely rendered as a disabled control.
	ErrSaveInFlight = errors.New("a save is already in progress")

	// ErrNotConfirmed is returned when a destructive action is requested
	// without the explicit confirmation step.
	ErrNotConfirmed = errors.New("action requires confirmation")
)

// Result is the outcome of one save attempt. Exactly one of the three
// fields is set.
type Result[T any] struct {
	Invalid forms.Errors // validation failed, nothing was written
	Record  *T           // save succeeded
	Err     error        // store error, the form stays open for retry
}

// SaveFunc performs the repository call for a validated form. An empty id
// selects the insert path, a present id the update path.
type SaveFunc[F forms.Form, T any] func(ctx context.Context, id string, form F) (*T, error)

// Flow runs the shared create/edit state machine for one entity kind.
// Create and edit share the same validator and the same save function.
type Flow[F forms.Form, T any] struct {
	save     SaveFunc[F, T]
	onSaved  func(*T)
	inFlight atomic.Bool
}

func New[F forms.Form, T any](save SaveFunc[F, T]) *Flow[F, T] {
	return &Flow[F, T]{save: save}
}

// OnSaved registers a callback invoked after every successful save, before
// the result is returned.
func (fl *Flow[F, T]) OnSaved(fn func(*T)) *Flow[F, T] {
	fl.onSaved = fn
	return fl
}

// Run validates the form and, when it is clean, performs the save. A second
// Run on the same instance while a save is outstanding fails immediately
// with ErrSaveInFlight; validation failures do not claim the flag.
func (fl *Flow[F, T]) Run(ctx context.Context, id string, form F) Result[T] {
	if errs := form.Validate(); !errs.Valid() {
		return Result[T]{Invalid: errs}
	}

	if !fl.inFlight.CompareAndSwap(false, true) {
		return Result[T]{Err: ErrSaveInFlight}
	}
	defer fl.inFlight.Store(false)

	rec, err := fl.save(ctx, id, form)
	if err != nil {
		return Result[T]{Err: err}
	}
	if fl.onSaved != nil {
		fl.onSaved(rec)
	}
	return Result[T]{Record: rec}
}

// ConfirmedDelete issues the delete only once the caller has confirmed it.
// The repository contract makes a zero-row delete indistinguishable from a
// one-row delete, so a successful return only means the record is gone.
func ConfirmedDelete(ctx context.Context, confirmed bool, del func(context.Context) error) error {
	if !confirmed {
		return ErrNotConfirmed
	}
	return del(ctx)
}
