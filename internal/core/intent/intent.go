// Package intent holds the closed set of intents the storefront state reacts
// to. Every intent is a plain value type; reducers and effects switch on the
// concrete type.
package intent

// An Intent is a request for a state change or a side effect.
//
// The set is sealed: only types of this package implement it.
type Intent interface {
	Name() string
	sealed()
}

// A Failure is an intent reporting a failed remote operation.
type Failure interface {
	Intent
	Cause() error
}

type marker struct{}

func (marker) sealed() {}

// Names returns the names of the intents, in order.
func Names(ins []Intent) []string {
	names := make([]string, len(ins))
	for i, in := range ins {
		names[i] = in.Name()
	}
	return names
}
