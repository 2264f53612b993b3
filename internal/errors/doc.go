// Package errors provides structured, actionable error messages for gearrs.
//
// Every error carries a registered code that maps to a category, a short
// message and a documentation URL. Errors created from the same code
// compare equal under errors.Is, which is how packages expose sentinels:
//
//	var ErrUnclosedTag = errors.New("E001")
//
//	return errors.New("E001").WithDetailf("<%s> is a void element", tag)
//
// # Error Codes
//
//   - E001-E099: element tree errors
//   - E120-E129: configuration errors
//   - E130-E139: publish errors
//   - E140-E149: preview server errors
//   - E150-E159: CLI errors
//
// # Output
//
// Format renders a colored multi-line message for terminals,
// FormatCompact a single line, and FormatJSON a machine-readable object.
package errors
