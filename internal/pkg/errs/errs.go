package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

// Mark attaches markErr to err. When markErr itself carries an error kind,
// the kind is attached as well so KindOf keeps working on the result.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	marked := cr.Mark(err, markErr)
	if kind := KindOf(markErr); kind != nil && kind != markErr {
		marked = cr.Mark(marked, kind)
	}
	return marked
}

// Is reports whether err matches reference by identity or by mark.
// Use this instead of errors.Is when the reference was attached with Mark.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

// UnwrapAll returns the innermost cause of err.
func UnwrapAll(err error) error {
	return cr.UnwrapAll(err)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
