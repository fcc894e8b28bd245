package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Error kinds returned by Classifier implementations. Match them with errors.Is.
var (
	ErrTransport = errors.New("classifier unreachable")
	ErrProtocol  = errors.New("classifier protocol violation")
)

// TransportError reports that the classifier could not be reached: a network
// failure, timeout or cancelled context.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", ErrTransport, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// ProtocolError reports a response that broke the prediction contract: a
// non-2xx status, an undecodable body or missing keys.
type ProtocolError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ProtocolError) Error() string {
	msg := ErrProtocol.Error()
	if e.StatusCode != 0 && (e.StatusCode < 200 || e.StatusCode > 299) {
		msg = fmt.Sprintf("%s: status %d %s", msg, e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProtocolError) Unwrap() error { return e.Err }

func (e *ProtocolError) Is(target error) bool { return target == ErrProtocol }
