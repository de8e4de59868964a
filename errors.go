package mockldap

import (
	"errors"
	"fmt"
)

// ResultCode is a protocol result code, RFC 4511 values.
type ResultCode uint8

const (
	ResultSuccess            ResultCode = 0
	ResultOperationsError    ResultCode = 1
	ResultProtocolError      ResultCode = 2
	ResultCompareFalse       ResultCode = 5
	ResultCompareTrue        ResultCode = 6
	ResultNoSuchObject       ResultCode = 32
	ResultInvalidDNSyntax    ResultCode = 34
	ResultInvalidCredentials ResultCode = 49
	ResultUnwillingToPerform ResultCode = 53
	ResultEntryAlreadyExists ResultCode = 68
)

var resultCodeNames = map[ResultCode]string{
	ResultSuccess:            "Success",
	ResultOperationsError:    "Operations Error",
	ResultProtocolError:      "Protocol Error",
	ResultCompareFalse:       "Compare False",
	ResultCompareTrue:        "Compare True",
	ResultNoSuchObject:       "No Such Object",
	ResultInvalidDNSyntax:    "Invalid DN Syntax",
	ResultInvalidCredentials: "Invalid Credentials",
	ResultUnwillingToPerform: "Unwilling To Perform",
	ResultEntryAlreadyExists: "Entry Already Exists",
}

func (rc ResultCode) String() string {
	if name, ok := resultCodeNames[rc]; ok {
		return name
	}
	return fmt.Sprintf("Result Code %d", uint8(rc))
}

// Error is the typed failure returned by directory operations. Code carries
// the protocol result code; Msg carries the diagnostics the matching server
// response would.
type Error struct {
	Code      ResultCode
	MatchedDN string
	Msg       string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("mockldap: result code %d %q", uint8(e.Code), e.Code.String())
	}
	return fmt.Sprintf("mockldap: result code %d %q: %s", uint8(e.Code), e.Code.String(), e.Msg)
}

func newError(code ResultCode, format string, args ...any) *Error {
	return &Error{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// IsErrorWithCode reports whether err is an operation failure carrying code.
func IsErrorWithCode(err error, code ResultCode) bool {
	var lerr *Error
	if !errors.As(err, &lerr) {
		return false
	}
	return lerr.Code == code
}

// SeedRequiredError reports a search whose filter uses a form the engine
// does not evaluate and for which no canned outcome was seeded. Err holds
// the evaluator's unsupported-form report.
type SeedRequiredError struct {
	Op      string
	Request string
	Err     error
}

func (e *SeedRequiredError) Error() string {
	return fmt.Sprintf("mockldap: %s must be seeded for %s: %v", e.Op, e.Request, e.Err)
}

func (e *SeedRequiredError) Unwrap() error { return e.Err }

var (
	// ErrUnknownScope is returned for a scope outside the enumeration.
	ErrUnknownScope = errors.New("mockldap: unrecognized scope")
	// ErrUnknownModifyOp is returned for a modify op-code outside the
	// enumeration.
	ErrUnknownModifyOp = errors.New("mockldap: unrecognized modify operation")
	// ErrOptionNotSet is returned by GetOption for a key that was never set.
	ErrOptionNotSet = errors.New("mockldap: option not set")
)

// resultCodeOf maps an operation outcome to the code reported to monitoring
// and logs.
func resultCodeOf(err error) ResultCode {
	if err == nil {
		return ResultSuccess
	}
	var lerr *Error
	if errors.As(err, &lerr) {
		return lerr.Code
	}
	return ResultOperationsError
}
