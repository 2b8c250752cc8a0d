package mython

import (
	"fmt"
	"strconv"
	"strings"
)

// LexError reports malformed input at the character level (today: an
// unterminated string literal). It is fatal — the driver aborts.
type LexError struct {
	Msg    string
	Pos    Position
	Source string
}

func (e *LexError) Error() string {
	return formatWithFrame("lex error", e.Msg, e.Source, e.Pos)
}

// ParseError reports malformed syntax discovered while building the AST
// from a token stream. It is fatal — the driver aborts.
type ParseError struct {
	Msg    string
	Pos    Position
	Source string
}

func (e *ParseError) Error() string {
	return formatWithFrame("parse error", e.Msg, e.Source, e.Pos)
}

// RuntimeError reports an evaluator-level failure: unbound variable,
// attribute access on a non-instance, a missing or arity-mismatched
// method, a type mismatch in arithmetic or comparison, division by zero,
// or a non-instance target of a method call or dotted assignment.
// It is fatal at the top level; the language has no in-language catch.
type RuntimeError struct {
	Msg string
}

func (e *RuntimeError) Error() string {
	return e.Msg
}

func newRuntimeError(format string, args ...any) *RuntimeError {
	return &RuntimeError{Msg: fmt.Sprintf(format, args...)}
}

func formatWithFrame(kind, msg, source string, pos Position) string {
	frame := formatCodeFrame(source, pos)
	if frame == "" {
		return fmt.Sprintf("%s: %s", kind, msg)
	}
	return fmt.Sprintf("%s: %s\n%s", kind, msg, frame)
}

func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := lines[pos.Line-1]
	lineRunes := []rune(lineText)

	column := pos.Column
	if column <= 0 {
		column = 1
	}
	if column > len(lineRunes)+1 {
		column = len(lineRunes) + 1
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}
