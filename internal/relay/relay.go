package relay

//go:generate mockgen -destination=mock/mock.go -package=mockrelay -source=relay.go

import "context"

// Relay carries mutations to the privileged participant for entities the
// caller does not own. One request, one response; nothing is retried.
type Relay interface {
	// Available reports whether a privileged participant is listening
	Available(ctx context.Context) bool

	// Execute performs one round trip. Transport failures come back as
	// errors; rejected mutations come back as an unsuccessful Response.
	Execute(ctx context.Context, req *Request) (*Response, error)
}
