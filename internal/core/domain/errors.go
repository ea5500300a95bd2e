package domain

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrCommunication = errors.New("communication failure")
	ErrRejected      = errors.New("request rejected")
	ErrServerFault   = errors.New("server fault")
	ErrNotFound      = errors.New("not found")

	// ErrNoBasket is returned for basket operations issued before a basket
	// has been loaded.
	ErrNoBasket = fmt.Errorf("%w: no current basket", ErrRejected)
)

type ErrorKind int

const (
	KindCommunication ErrorKind = iota
	KindRejected
	KindServerFault
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindCommunication:
		return "communication"
	case KindRejected:
		return "rejected"
	case KindServerFault:
		return "server-fault"
	case KindNotFound:
		return "not-found"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindRejected:
		return ErrRejected
	case KindServerFault:
		return ErrServerFault
	case KindNotFound:
		return ErrNotFound
	}
	return ErrCommunication
}

// A RemoteError is a failed call to the commerce API.
type RemoteError struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error

	// RetryAfter is the wait the server asked for before the next call.
	RetryAfter time.Duration
}

// NewStatusError classifies a non-successful HTTP status.
func NewStatusError(status int, message string) *RemoteError {
	kind := KindRejected
	switch {
	case status == http.StatusNotFound:
		kind = KindNotFound
	case status >= http.StatusInternalServerError:
		kind = KindServerFault
	case status == http.StatusRequestTimeout, status == http.StatusGatewayTimeout:
		kind = KindCommunication
	}
	return &RemoteError{Kind: kind, Status: status, Message: message}
}

// NewCommunicationError wraps a transport failure.
func NewCommunicationError(err error) *RemoteError {
	return &RemoteError{Kind: KindCommunication, Message: err.Error(), Err: err}
}

func (e *RemoteError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *RemoteError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func (e *RemoteError) RetryDelay() time.Duration {
	return e.RetryAfter
}

// KindOf classifies any error. Unclassified errors are communication failures.
func KindOf(err error) ErrorKind {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrRejected):
		return KindRejected
	case errors.Is(err, ErrServerFault):
		return KindServerFault
	}
	return KindCommunication
}

// IsTransient reports whether the failure may disappear on its own:
// transport failures and server faults.
func IsTransient(err error) bool {
	k := KindOf(err)
	return k == KindCommunication || k == KindServerFault
}
