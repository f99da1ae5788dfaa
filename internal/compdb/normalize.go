package compdb

import (
	"strings"

	"cdb/internal/cdberr"
	"cdb/internal/paths"
	"cdb/internal/shell"
)

// Normalize converts one raw database entry into an Entry: the file path is
// made absolute against the entry's directory and the command is tokenized
// and stripped of everything a parsing front-end must not see (the compiler
// executable, -c, -o and its output path, the source file argument, and any
// positional arguments after a bare "--").
//
// A nil entry with a non-nil error means the entry is dropped; the caller
// treats this as local to the entry, never fatal to the whole database.
func Normalize(raw RawCompileCommand) (*Entry, error) {
	if raw.Directory == "" || raw.File == "" {
		return nil, cdberr.New(cdberr.EntryInvalid, "entry missing directory or file", nil)
	}

	file := paths.ExpandAgainst(raw.Directory, raw.File)

	tokens, err := shell.Split(raw.Command)
	if err != nil {
		return nil, cdberr.New(cdberr.CommandUnparsable, "cannot tokenize compile command", err).
			WithDetails(map[string]string{"command": raw.Command})
	}
	if len(tokens) == 0 {
		return nil, cdberr.New(cdberr.EntryInvalid, "entry has empty command", nil)
	}

	// The first token is the compiler executable name.
	options := cleanOptions(tokens[1:], raw.Directory, file)
	if len(options) == 0 {
		return nil, cdberr.New(cdberr.EntryInvalid, "entry yields no options", nil)
	}

	return &Entry{File: file, Options: options, Dir: raw.Directory}, nil
}

// cleanOptions applies the left-to-right removal policy as a single forward
// pass building a new list. Rules, in priority order at each position:
// a bare "--" truncates (the rest are positional source arguments), "-c" is
// removed, "-o" is removed with its argument, "-o<path>" is removed alone,
// and a token resolving to the entry's own source file is removed.
func cleanOptions(args []string, dir, file string) []string {
	options := make([]string, 0, len(args))
	i := 0
	for i < len(args) {
		tok := args[i]
		switch {
		case tok == "--":
			return options
		case tok == "-c":
			i++
		case tok == "-o":
			i += 2
		case strings.HasPrefix(tok, "-o"):
			i++
		case paths.ExpandAgainst(dir, tok) == file:
			i++
		default:
			options = append(options, tok)
			i++
		}
	}
	return options
}
