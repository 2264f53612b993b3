package element

import "github.com/vango-dev/gearrs/internal/errors"

var (
	// ErrUnclosedTag is returned when text or children are set in place on
	// a void element.
	ErrUnclosedTag = errors.New("E001")

	// ErrIndexOutOfBounds is returned by Remove for an index past the last child.
	ErrIndexOutOfBounds = errors.New("E002")
)

func unclosedTag(tag string) error {
	return errors.New("E001").
		WithDetailf("<%s> is a void element", tag).
		WithSuggestion("Create the element with closed set to true to give it content")
}

func indexOutOfBounds(index, length int) error {
	return errors.New("E002").WithDetailf("index %d, length %d", index, length)
}
