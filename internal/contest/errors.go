package contest

// ErrorKind is the closed set of reasons a command can be rejected. Every
// kind maps to exactly one reply to the requesting user; none of them is
// fatal to the process.
type ErrorKind string

const (
	KindAuthorizationDenied   ErrorKind = "authorization_denied"
	KindAlreadyRegistered     ErrorKind = "already_registered"
	KindWrongCredential       ErrorKind = "wrong_credential"
	KindInvalidArgumentCount  ErrorKind = "invalid_argument_count"
	KindInvalidArgumentFormat ErrorKind = "invalid_argument_format"
	KindNoActiveProblem       ErrorKind = "no_active_problem"
	KindDuplicateSubmission   ErrorKind = "duplicate_submission"
	KindSubmissionNotFound    ErrorKind = "submission_not_found"
)

// Error is a command rejection. It carries the text sent back to the actor.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

func reject(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// AsReject returns the rejection if err is one, nil otherwise. Anything else
// (in practice only a persistence failure) must be escalated by the caller.
func AsReject(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}
	return nil
}
