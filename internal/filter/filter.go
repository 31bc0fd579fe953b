// Package filter реализует язык выражений фильтра коллекции записей:
// булевы комбинации (&&, ||, скобки) сравнений равенства/неравенства
// над полями id, user_id и updated, например:
//
//	user_id = 'u1' && updated > '2024-01-01T00:00:00Z' && id != 'r3'
//
// Выражение разбирается в AST и компилируется в параметризованный SQL
// WHERE-фрагмент; имена колонок берутся из белого списка, значения всегда
// уходят плейсхолдерами.
package filter

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Поля, разрешённые в выражениях.
var allowedFields = map[string]string{
	"id":      "id",
	"user_id": "user_id",
	"updated": "updated",
}

var allowedOps = map[string]bool{
	"=": true, "!=": true, ">": true, ">=": true, "<": true, "<=": true,
}

// ErrEmpty — пустое выражение.
var ErrEmpty = errors.New("empty filter expression")

// Expr — узел AST.
type Expr interface {
	// SQL возвращает WHERE-фрагмент с плейсхолдерами ? и аргументы к нему.
	SQL() (string, []any, error)
}

// Cmp — одно сравнение поле-оператор-значение.
type Cmp struct {
	Field string
	Op    string
	Value string
}

// SQL компилирует сравнение; значения updated приводятся к time.Time,
// чтобы сравнение шло по времени, а не по строкам.
func (c Cmp) SQL() (string, []any, error) {
	col, ok := allowedFields[c.Field]
	if !ok {
		return "", nil, fmt.Errorf("unknown field %q", c.Field)
	}
	if !allowedOps[c.Op] {
		return "", nil, fmt.Errorf("unknown operator %q", c.Op)
	}
	op := c.Op
	if op == "!=" {
		op = "<>"
	}
	var arg any = c.Value
	if c.Field == "updated" {
		t, err := time.Parse(time.RFC3339Nano, c.Value)
		if err != nil {
			return "", nil, fmt.Errorf("bad updated value %q: %w", c.Value, err)
		}
		arg = t
	}
	return col + " " + op + " ?", []any{arg}, nil
}

// Bool — булева связка подвыражений одной операции (AND либо OR).
type Bool struct {
	Op    string // "AND" | "OR"
	Terms []Expr
}

func (b Bool) SQL() (string, []any, error) {
	if len(b.Terms) == 1 {
		return b.Terms[0].SQL()
	}
	parts := make([]string, 0, len(b.Terms))
	var args []any
	for _, t := range b.Terms {
		s, a, err := t.SQL()
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, s)
		args = append(args, a...)
	}
	return "(" + strings.Join(parts, " "+b.Op+" ") + ")", args, nil
}

// Parse разбирает выражение фильтра в AST.
func Parse(expr string) (Expr, error) {
	toks, err := lex(expr)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, ErrEmpty
	}
	p := &parser{toks: toks}
	e, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("unexpected token %q", p.toks[p.pos].val)
	}
	return e, nil
}

// --- лексер ---

type tokKind int

const (
	tokIdent tokKind = iota
	tokOp            // = != > >= < <=
	tokAnd
	tokOr
	tokLParen
	tokRParen
	tokValue // строка в одинарных или двойных кавычках
)

type token struct {
	kind tokKind
	val  string
}

func lex(s string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(s) {
		c := s[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		case c == '&':
			if i+1 >= len(s) || s[i+1] != '&' {
				return nil, errors.New("single '&'")
			}
			toks = append(toks, token{tokAnd, "&&"})
			i += 2
		case c == '|':
			if i+1 >= len(s) || s[i+1] != '|' {
				return nil, errors.New("single '|'")
			}
			toks = append(toks, token{tokOr, "||"})
			i += 2
		case c == '!' || c == '=' || c == '<' || c == '>':
			op := string(c)
			if i+1 < len(s) && s[i+1] == '=' {
				op += "="
				i++
			}
			i++
			if op == "!" {
				return nil, errors.New("single '!'")
			}
			toks = append(toks, token{tokOp, op})
		case c == '\'' || c == '"':
			quote := c
			j := i + 1
			for j < len(s) && s[j] != quote {
				j++
			}
			if j >= len(s) {
				return nil, errors.New("unterminated string literal")
			}
			toks = append(toks, token{tokValue, s[i+1 : j]})
			i = j + 1
		case unicode.IsLetter(rune(c)) || c == '_':
			j := i
			for j < len(s) && (unicode.IsLetter(rune(s[j])) || unicode.IsDigit(rune(s[j])) || s[j] == '_') {
				j++
			}
			toks = append(toks, token{tokIdent, s[i:j]})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q", c)
		}
	}
	return toks, nil
}

// --- парсер (рекурсивный спуск, || слабее &&) ---

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) parseOr() (Expr, error) {
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	terms := []Expr{first}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOr {
			break
		}
		p.pos++
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return Bool{Op: "OR", Terms: terms}, nil
}

func (p *parser) parseAnd() (Expr, error) {
	first, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	terms := []Expr{first}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokAnd {
			break
		}
		p.pos++
		next, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		terms = append(terms, next)
	}
	if len(terms) == 1 {
		return first, nil
	}
	return Bool{Op: "AND", Terms: terms}, nil
}

func (p *parser) parseTerm() (Expr, error) {
	t, ok := p.peek()
	if !ok {
		return nil, errors.New("unexpected end of expression")
	}
	if t.kind == tokLParen {
		p.pos++
		e, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		t, ok = p.peek()
		if !ok || t.kind != tokRParen {
			return nil, errors.New("missing ')'")
		}
		p.pos++
		return e, nil
	}
	if t.kind != tokIdent {
		return nil, fmt.Errorf("expected field name, got %q", t.val)
	}
	field := t.val
	p.pos++
	t, ok = p.peek()
	if !ok || t.kind != tokOp {
		return nil, fmt.Errorf("expected operator after %q", field)
	}
	op := t.val
	p.pos++
	t, ok = p.peek()
	if !ok || t.kind != tokValue {
		return nil, fmt.Errorf("expected quoted value after %q %s", field, op)
	}
	p.pos++
	return Cmp{Field: field, Op: op, Value: t.val}, nil
}

// ParseSort проверяет параметр сортировки и возвращает ORDER BY-фрагмент.
// Допускаются updated, created и qr_index, опционально с ведущим '-'.
func ParseSort(sort string) (string, error) {
	if sort == "" {
		return "", nil
	}
	desc := false
	if strings.HasPrefix(sort, "-") {
		desc = true
		sort = sort[1:]
	}
	switch sort {
	case "updated", "created", "qr_index":
	default:
		return "", fmt.Errorf("unsupported sort field %q", sort)
	}
	if desc {
		return sort + " DESC", nil
	}
	return sort + " ASC", nil
}
