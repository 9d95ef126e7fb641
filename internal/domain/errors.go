package domain

import "errors"

// ErrorKind classifies a failure by how it is recovered: authentication,
// validation, not-found and submission failures are flattened into failure
// responses by the authority service; transport and timeout failures are
// flattened by the correlation layer; decryption failures are the only kind
// surfaced as a hard error to the vault's direct caller.
type ErrorKind int

const (
	KindAuthentication ErrorKind = iota
	KindValidation
	KindNotFound
	KindSubmission
	KindTransport
	KindTimeout
	KindDecryption
)

// Error is a kind-tagged failure with a stable human-readable message.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string { return e.Message }

// E builds a kind-tagged error.
func E(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// KindOf reports the kind of err, defaulting to KindSubmission for plain
// errors crossing a collaborator boundary.
func KindOf(err error) ErrorKind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}
	return KindSubmission
}
