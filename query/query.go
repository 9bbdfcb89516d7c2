package query

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Op is a comparison operator in a filter expression.
type Op string

const (
	OpEq       Op = "="
	OpNe       Op = "!="
	OpGt       Op = ">"
	OpGte      Op = ">="
	OpLt       Op = "<"
	OpLte      Op = "<="
	OpContains Op = "contains"
)

var ErrSyntax = errors.New("invalid query expression")

type condition struct {
	field string
	op    Op
	value interface{}
}

// Query is a compiled filter expression. Expressions are a conjunction
// of conditions:
//
//	status = 'active' AND age >= ? AND name contains 'an'
//
// Placeholders (?) are bound from the params list in order at compile
// time, so a compiled query carries no unresolved inputs.
type Query struct {
	conds []condition
}

func Compile(expression string, params []interface{}) (*Query, error) {
	tokens, err := tokenize(expression)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, errors.Wrap(ErrSyntax, "empty expression")
	}

	q := &Query{}
	paramIdx := 0

	for i := 0; i < len(tokens); {
		if i+2 >= len(tokens) {
			return nil, errors.Wrapf(ErrSyntax, "incomplete condition near %q", strings.Join(tokens[i:], " "))
		}

		field := tokens[i]
		if !validField(field) {
			return nil, errors.Wrapf(ErrSyntax, "invalid field name %q", field)
		}

		op, err := parseOp(tokens[i+1])
		if err != nil {
			return nil, err
		}

		value, err := parseOperand(tokens[i+2], params, &paramIdx)
		if err != nil {
			return nil, err
		}

		q.conds = append(q.conds, condition{field: field, op: op, value: value})
		i += 3

		if i < len(tokens) {
			if !strings.EqualFold(tokens[i], "and") {
				return nil, errors.Wrapf(ErrSyntax, "expected AND, got %q", tokens[i])
			}
			i++
			if i >= len(tokens) {
				return nil, errors.Wrap(ErrSyntax, "trailing AND")
			}
		}
	}

	if paramIdx < len(params) {
		return nil, errors.Wrapf(ErrSyntax, "expression binds %d parameter(s) but %d given", paramIdx, len(params))
	}

	return q, nil
}

func parseOp(tok string) (Op, error) {
	switch Op(strings.ToLower(tok)) {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpContains:
		return Op(strings.ToLower(tok)), nil
	default:
		return "", errors.Wrapf(ErrSyntax, "unknown operator %q", tok)
	}
}

func parseOperand(tok string, params []interface{}, paramIdx *int) (interface{}, error) {
	switch {
	case tok == "?":
		if *paramIdx >= len(params) {
			return nil, errors.Wrapf(ErrSyntax, "expression binds more parameters than the %d given", len(params))
		}
		v := params[*paramIdx]
		*paramIdx++
		return v, nil
	case strings.HasPrefix(tok, "'") && strings.HasSuffix(tok, "'") && len(tok) >= 2:
		return tok[1 : len(tok)-1], nil
	case tok == "true":
		return true, nil
	case tok == "false":
		return false, nil
	default:
		n, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return nil, errors.Wrapf(ErrSyntax, "invalid operand %q", tok)
		}
		return n, nil
	}
}

// tokenize splits on whitespace, keeping single-quoted strings (with
// their quotes) as one token.
func tokenize(expression string) ([]string, error) {
	var tokens []string
	var b strings.Builder
	inQuote := false

	for _, r := range expression {
		switch {
		case r == '\'':
			b.WriteRune(r)
			if inQuote {
				tokens = append(tokens, b.String())
				b.Reset()
			}
			inQuote = !inQuote
		case !inQuote && (r == ' ' || r == '\t' || r == '\n'):
			if b.Len() > 0 {
				tokens = append(tokens, b.String())
				b.Reset()
			}
		default:
			b.WriteRune(r)
		}
	}

	if inQuote {
		return nil, errors.Wrap(ErrSyntax, "unterminated string literal")
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}

	return tokens, nil
}

func validField(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_' || r == '.' || r == '-':
		default:
			return false
		}
	}
	return true
}
