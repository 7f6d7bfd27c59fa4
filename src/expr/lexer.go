// Package expr implements the restricted expression language used by form
// definitions for visibility conditions (showIf) and computed-field formulas.
//
// The language is a small JavaScript-like subset: numeric, string and boolean
// literals, identifiers resolved from a flat scope, comparison operators
// (== === != !== > >= < <=), boolean operators (&& || !), arithmetic
// (+ - * / %) and parentheses. There are no function calls, no property
// access and no assignment, so a user-authored expression can never escape
// its scope.
package expr

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokString
	tokIdent
	tokOperator // one of the fixed operator/punctuation set
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// operators, longest first so the scanner is greedy
var operators = []string{
	"===", "!==", "==", "!=", ">=", "<=", "&&", "||",
	">", "<", "+", "-", "*", "/", "%", "!", "(", ")",
}

func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	n := len(src)

scan:
	for i < n {
		c := src[i]

		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			i++
			continue
		}

		// string literal, single or double quoted
		if c == '\'' || c == '"' {
			quote := c
			j := i + 1
			var sb strings.Builder
			for j < n {
				if src[j] == '\\' && j+1 < n {
					sb.WriteByte(src[j+1])
					j += 2
					continue
				}
				if src[j] == quote {
					toks = append(toks, token{tokString, sb.String(), i})
					i = j + 1
					continue scan
				}
				sb.WriteByte(src[j])
				j++
			}
			return nil, fmt.Errorf("unterminated string at position %d", i)
		}

		// number literal
		if c >= '0' && c <= '9' || (c == '.' && i+1 < n && src[i+1] >= '0' && src[i+1] <= '9') {
			j := i
			seenDot := false
			for j < n && (src[j] >= '0' && src[j] <= '9' || src[j] == '.' && !seenDot) {
				if src[j] == '.' {
					seenDot = true
				}
				j++
			}
			toks = append(toks, token{tokNumber, src[i:j], i})
			i = j
			continue
		}

		// identifier or keyword literal
		if isIdentStart(rune(c)) {
			j := i
			for j < n && isIdentPart(rune(src[j])) {
				j++
			}
			toks = append(toks, token{tokIdent, src[i:j], i})
			i = j
			continue
		}

		for _, op := range operators {
			if strings.HasPrefix(src[i:], op) {
				toks = append(toks, token{tokOperator, op, i})
				i += len(op)
				continue scan
			}
		}

		return nil, fmt.Errorf("unexpected character %q at position %d", c, i)
	}

	toks = append(toks, token{kind: tokEOF, pos: n})
	return toks, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
