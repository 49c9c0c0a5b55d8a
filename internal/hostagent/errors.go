package hostagent

import (
	"errors"
	"fmt"

	"github.com/sapops/hostctl/internal/soap"
	"github.com/sapops/hostctl/internal/util/retry"
)

// ErrSDANotInstalled indicates the Simple Diagnostics Agent did not answer
// the ping service.
var ErrSDANotInstalled = errors.New("simple diagnostics agent is not installed")

// ErrOperationTimeout indicates the host agent returned no operation results,
// which it does when a database operation ran into its timeout.
var ErrOperationTimeout = errors.New("host agent operation timed out")

// classify maps transport errors onto the retry contract. Credential
// rejections and SOAP faults are deterministic and marked fatal; everything
// else (connection resets, timeouts) is worth another attempt.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, soap.ErrUnauthorized) {
		return retry.Fatal(err)
	}
	var fault *soap.Fault
	if errors.As(err, &fault) {
		return retry.Fatal(err)
	}
	return err
}

// notFoundError reports a named entity the host agent does not know about.
type notFoundError struct {
	kind string
	name string
}

func (e *notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.name)
}

// IsNotFound reports whether err indicates an unknown system or database.
func IsNotFound(err error) bool {
	var nf *notFoundError
	return errors.As(err, &nf)
}
