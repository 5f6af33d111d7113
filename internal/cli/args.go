package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// paramKind is the type of a positional argument.
type paramKind int

const (
	paramString paramKind = iota
	paramInt
)

// param describes one positional argument of a verb.
type param struct {
	name     string
	def      string // Value used when an optional argument is omitted
	kind     paramKind
	optional bool
}

func required(name string, kind paramKind) param {
	return param{name: name, kind: kind}
}

func optional(name string, kind paramKind, def string) param {
	return param{name: name, kind: kind, optional: true, def: def}
}

var errTooManyArgs = errors.New("too many arguments")

// verbArgs holds validated positional arguments by parameter name.
type verbArgs struct {
	text map[string]string
	nums map[string]int
}

// Text returns a string argument.
func (a verbArgs) Text(name string) string {
	return a.text[name]
}

// Int returns an integer argument.
func (a verbArgs) Int(name string) int {
	return a.nums[name]
}

// parseArgs matches args against params in order.
func parseArgs(params []param, args []string) (verbArgs, error) {
	out := verbArgs{text: make(map[string]string), nums: make(map[string]int)}
	if len(args) > len(params) {
		return out, errTooManyArgs
	}

	for i, p := range params {
		raw := p.def
		switch {
		case i < len(args):
			raw = args[i]
		case !p.optional:
			return out, fmt.Errorf("argument '%s': value is required", p.name)
		}

		switch p.kind {
		case paramInt:
			if raw == "" && p.optional {
				continue
			}
			n, err := strconv.Atoi(strings.TrimPrefix(raw, "#"))
			if err != nil {
				return out, fmt.Errorf("argument '%s': %q is not a number", p.name, raw)
			}
			out.nums[p.name] = n
		default:
			out.text[p.name] = raw
		}
	}
	return out, nil
}

// usage renders the argument list for the Use line: <task> <name> [note].
func usage(params []param) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		if p.optional {
			parts = append(parts, "["+p.name+"]")
		} else {
			parts = append(parts, "<"+p.name+">")
		}
	}
	return strings.Join(parts, " ")
}
