package errors

// Messages written into the error envelope. They are fixed for the lifetime of the
// process so clients can match on them.
const (
	MsgBadRequest          = "bad request"
	MsgUnauthorized        = "unauthorized"
	MsgNotFound            = "resource not found"
	MsgMethodNotAllowed    = "method not allowed"
	MsgUnprocessable       = "unprocessable"
	MsgInternalError       = "internal server error"
	MsgUpstreamUnavailable = "upstream unavailable"
)

// Message returns the envelope message for a status code.
func Message(status int) string {
	switch status {
	case 400:
		return MsgBadRequest
	case 401:
		return MsgUnauthorized
	case 404:
		return MsgNotFound
	case 405:
		return MsgMethodNotAllowed
	case 422:
		return MsgUnprocessable
	case 502:
		return MsgUpstreamUnavailable
	default:
		return MsgInternalError
	}
}
