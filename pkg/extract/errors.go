package extract

import (
	"errors"
	"fmt"

	"github.com/localeforge/core/pkg/domain"
)

var (
	// ErrNotStaticallyEvaluable is returned when a recognized message field
	// holds an expression that cannot be resolved at extraction time.
	ErrNotStaticallyEvaluable = errors.New("message fields must be statically evaluable")

	// ErrMessageSyntax is returned when a defaultMessage fails
	// interpolation-grammar validation.
	ErrMessageSyntax = errors.New("message failed interpolation-grammar validation")

	// ErrMissingID is returned when a descriptor reaches storage without an id.
	ErrMissingID = errors.New("message is missing an id")

	// ErrMissingDefaultMessage is returned when an id must be generated for a
	// descriptor that has no default message to hash.
	ErrMissingDefaultMessage = errors.New("message must have a default message or an explicit id")

	// ErrMissingDescription is returned under enforced descriptions when a
	// stored descriptor has none.
	ErrMissingDescription = errors.New("message is missing a description")

	// ErrDuplicateID is returned when an id is redeclared with differing content.
	ErrDuplicateID = errors.New("duplicate message id with differing content")

	// ErrBadCallArgument is returned when a recognized call's argument is not
	// an object literal.
	ErrBadCallArgument = errors.New("argument must be an object literal")
)

// SiteError is a fatal extraction failure tied to a source location.
// Failures are unit-fatal: the file being processed is abandoned, other
// files are unaffected.
type SiteError struct {
	Err error
	Loc domain.Location
}

// Error implements the error interface.
func (e *SiteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Loc, e.Err)
}

// Unwrap returns the underlying error.
func (e *SiteError) Unwrap() error {
	return e.Err
}

func siteErr(err error, loc domain.Location) error {
	return &SiteError{Err: err, Loc: loc}
}

// Warning is a non-fatal per-site outcome: the declaration was skipped but the
// file is still processed. The only warning-level outcome is a declaration
// with no resolvable defaultMessage.
type Warning struct {
	Message string          `json:"message"`
	Loc     domain.Location `json:"location"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Loc, w.Message)
}
