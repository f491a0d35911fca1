package wserr

// Option is an Error option function
type Option func(*Error)

func WithOperation(op string) Option { return func(e *Error) { e.Operation = op } }
func WithCause(err error) Option     { return func(e *Error) { e.cause = err } }

// WithExchange attaches the raw request and response text of the
// failed call for offline diagnosis.
func WithExchange(rawRequest, rawResponse string) Option {
	return func(e *Error) {
		e.RawRequest = rawRequest
		e.RawResponse = rawResponse
	}
}
