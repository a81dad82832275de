package fkgraph

import (
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokWord tokenKind = iota
	tokQuoted
	tokString
	tokLParen
	tokRParen
	tokComma
	tokDot
	tokSemicolon
	tokOther
)

type token struct {
	kind tokenKind
	text string
}

// is reports whether t is the unquoted keyword kw (case-insensitive).
func (t token) is(kw string) bool {
	return t.kind == tokWord && strings.EqualFold(t.text, kw)
}

func (t token) isIdent() bool {
	return t.kind == tokWord || t.kind == tokQuoted
}

// lex splits T-SQL / PostgreSQL DDL text into tokens. Comments are dropped,
// [bracketed] and "double quoted" identifiers lose their delimiters.
func lex(src string) []token {
	var tokens []token
	rs := []rune(src)
	n := len(rs)

	for i := 0; i < n; {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '-' && i+1 < n && rs[i+1] == '-':
			for i < n && rs[i] != '\n' {
				i++
			}
		case r == '/' && i+1 < n && rs[i+1] == '*':
			i += 2
			for i < n && !(rs[i] == '*' && i+1 < n && rs[i+1] == '/') {
				i++
			}
			i += 2
		case r == '[':
			j := i + 1
			var sb strings.Builder
			for j < n {
				if rs[j] == ']' {
					if j+1 < n && rs[j+1] == ']' {
						sb.WriteRune(']')
						j += 2
						continue
					}
					break
				}
				sb.WriteRune(rs[j])
				j++
			}
			tokens = append(tokens, token{kind: tokQuoted, text: sb.String()})
			i = j + 1
		case r == '"' || r == '`':
			quote := r
			j := i + 1
			for j < n && rs[j] != quote {
				j++
			}
			tokens = append(tokens, token{kind: tokQuoted, text: string(rs[i+1 : min(j, n)])})
			i = j + 1
		case r == '\'':
			j := i + 1
			for j < n {
				if rs[j] == '\'' {
					if j+1 < n && rs[j+1] == '\'' {
						j += 2
						continue
					}
					break
				}
				j++
			}
			tokens = append(tokens, token{kind: tokString, text: string(rs[i+1 : min(j, n)])})
			i = j + 1
		case r == 'N' && i+1 < n && rs[i+1] == '\'':
			// N'unicode literal'; let the next iteration consume the quote.
			i++
		case isWordRune(r):
			j := i
			for j < n && isWordRune(rs[j]) {
				j++
			}
			tokens = append(tokens, token{kind: tokWord, text: string(rs[i:j])})
			i = j
		default:
			tokens = append(tokens, token{kind: punctKind(r), text: string(r)})
			i++
		}
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || r == '@' || r == '#' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func punctKind(r rune) tokenKind {
	switch r {
	case '(':
		return tokLParen
	case ')':
		return tokRParen
	case ',':
		return tokComma
	case '.':
		return tokDot
	case ';':
		return tokSemicolon
	}
	return tokOther
}
