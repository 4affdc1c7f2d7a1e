package bookstmt

import "fmt"

// This file defines the error taxonomy of a reconciliation run. All errors
// carry enough context (column name, file path, fund) for the operator to
// act; none are retried automatically.

// SchemaError reports a required column absent from one of the tabular
// inputs. It is fatal to the run and raised before any computation.
type SchemaError struct {
	Source string // which table, e.g. "trade book" or "valuation feed"
	Column string // the missing column name
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required column %q", e.Source, e.Column)
}

// SourceNotFoundError reports a missing input file (trade book, valuation
// feed, or template). It aborts the run before any computation.
type SourceNotFoundError struct {
	Kind string // e.g. "trade book", "valuation feed", "template"
	Path string
	Err  error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("%s not found at %q: %v", e.Kind, e.Path, e.Err)
}

func (e *SourceNotFoundError) Unwrap() error { return e.Err }

// MissingGroupingColumnError reports that the merged table carries no fund
// identifier column. Statement generation is all-or-nothing: no partial
// statement set is produced.
type MissingGroupingColumnError struct {
	Column string
}

func (e *MissingGroupingColumnError) Error() string {
	return fmt.Sprintf("cannot group statements: merged table has no %q column", e.Column)
}

// RenderWriteError reports a failure writing a single fund's statement
// document. The batch continues with the remaining funds, so a run may end
// with a partial statement set; callers must report it, not swallow it.
type RenderWriteError struct {
	Fund string
	Path string
	Err  error
}

func (e *RenderWriteError) Error() string {
	return fmt.Sprintf("writing statement for fund %q to %q: %v", e.Fund, e.Path, e.Err)
}

func (e *RenderWriteError) Unwrap() error { return e.Err }
