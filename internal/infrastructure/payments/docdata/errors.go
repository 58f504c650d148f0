package docdata

import (
	"fmt"
	"strings"
)

// Error taxonomy:
//   - ValidationError: bad parameters, raised before any document is produced.
//   - ProtocolError: a response that is neither success nor error, or not XML.
//   - TransportError: the HTTP call itself failed; never reinterpreted.
//
// A functional failure reported by the gateway (an *Errors node) is not a Go
// error: it is data on the operation result, see result.IsError.

// ValidationError reports missing required parameters or an unsupported
// payment method for an operation that demands method-specific input.
type ValidationError struct {
	Op      string
	Missing []string
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("docdata: %s request invalid: %s", e.Op, e.Reason)
	}
	return fmt.Sprintf("docdata: %s request invalid: missing %s", e.Op, strings.Join(e.Missing, ", "))
}

// ProtocolError reports a response document that could not be interpreted.
type ProtocolError struct {
	Op     string
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("docdata: %s response could not be interpreted: %s", e.Op, e.Reason)
}

// TransportError reports a failed HTTP exchange with the gateway.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("docdata: %s call failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("docdata: %s call failed: http status %d", e.Op, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// fieldCheck accumulates missing required fields for one operation.
type fieldCheck struct {
	op      string
	missing []string
}

func (c *fieldCheck) require(name, value string) {
	if strings.TrimSpace(value) == "" {
		c.missing = append(c.missing, name)
	}
}

func (c *fieldCheck) err() error {
	if len(c.missing) == 0 {
		return nil
	}
	return &ValidationError{Op: c.op, Missing: c.missing}
}
