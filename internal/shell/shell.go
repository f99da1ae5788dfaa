// Package shell splits shell command strings into argument tokens.
//
// Compilation databases in the "command" variant store each compiler
// invocation as a single shell-escaped string, so the splitter follows
// POSIX-like rules: whitespace separates tokens, single quotes are literal,
// double quotes allow backslash escapes of `"` and `\`, and a backslash
// outside quotes escapes the next character.
package shell

import "fmt"

// ParseError reports malformed quoting or escaping in a command string.
type ParseError struct {
	Offset int    // byte offset where parsing failed
	Reason string // what was wrong
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("shell parse error at offset %d: %s", e.Offset, e.Reason)
}

// Split tokenizes command into its argument list. An empty or all-whitespace
// command yields an empty slice. Unterminated quotes and a dangling trailing
// backslash return a *ParseError.
func Split(command string) ([]string, error) {
	tokens := []string{}
	var current []byte
	inToken := false

	i := 0
	for i < len(command) {
		c := command[i]
		switch c {
		case ' ', '\t', '\n', '\r':
			if inToken {
				tokens = append(tokens, string(current))
				current = current[:0]
				inToken = false
			}
			i++
		case '\\':
			if i+1 >= len(command) {
				return nil, &ParseError{Offset: i, Reason: "trailing backslash"}
			}
			current = append(current, command[i+1])
			inToken = true
			i += 2
		case '\'':
			start := i
			i++
			for i < len(command) && command[i] != '\'' {
				current = append(current, command[i])
				i++
			}
			if i >= len(command) {
				return nil, &ParseError{Offset: start, Reason: "unterminated single quote"}
			}
			inToken = true
			i++
		case '"':
			start := i
			i++
			closed := false
			for i < len(command) {
				if command[i] == '\\' && i+1 < len(command) && (command[i+1] == '"' || command[i+1] == '\\') {
					current = append(current, command[i+1])
					i += 2
					continue
				}
				if command[i] == '"' {
					closed = true
					i++
					break
				}
				current = append(current, command[i])
				i++
			}
			if !closed {
				return nil, &ParseError{Offset: start, Reason: "unterminated double quote"}
			}
			inToken = true
		default:
			current = append(current, c)
			inToken = true
			i++
		}
	}

	if inToken {
		tokens = append(tokens, string(current))
	}
	return tokens, nil
}
