package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"time"
)

// Kind classifies a failed submission.
type Kind int

const (
	KindOther Kind = iota
	KindInvalidURL
	KindTimeout
	KindConnectionFailed
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindTimeout:
		return "timeout"
	case KindConnectionFailed:
		return "connection_failed"
	case KindCancelled:
		return "cancelled"
	default:
		return "other"
	}
}

// RequestError is the failure delivered for a submission.
type RequestError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *RequestError) Error() string { return e.Message }

func (e *RequestError) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or KindOther if err is not a
// *RequestError.
func KindOf(err error) Kind {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Kind
	}
	return KindOther
}

// classify maps a transport error to a RequestError. shutdown is the
// dispatcher context; timeout is only used in the message.
func classify(err error, shutdown context.Context, timeout time.Duration) *RequestError {
	if shutdown.Err() != nil {
		return &RequestError{Kind: KindCancelled, Message: "Request cancelled", Err: err}
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &RequestError{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("Request timed out after %s", timeout),
			Err:     err,
		}
	}
	if errors.Is(err, context.Canceled) {
		return &RequestError{Kind: KindCancelled, Message: "Request cancelled", Err: err}
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) ||
		errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return &RequestError{
			Kind:    KindConnectionFailed,
			Message: fmt.Sprintf("Connection failed: %v", rootCause(err)),
			Err:     err,
		}
	}
	return &RequestError{Kind: KindOther, Message: fmt.Sprintf("Request failed: %v", err), Err: err}
}

func rootCause(err error) error {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return opErr
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr
	}
	return err
}
