package raw

import (
	"errors"
	"fmt"
	"strings"

	"desergen/internal/modpath"
)

// ParseType parses a type expression such as "Map(Str, Arr(DefClass(a::b)))".
func ParseType(expr string) (MemberType, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, errors.New("empty type expression")
	}

	p := &exprParser{src: expr}

	t, err := p.parseType()
	if err != nil {
		return nil, fmt.Errorf("invalid type expression %q: %w", expr, err)
	}

	p.skipSpace()

	if !p.done() {
		return nil, fmt.Errorf("invalid type expression %q: unexpected %q at offset %d",
			expr, p.src[p.pos:], p.pos)
	}

	return t, nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) parseType() (MemberType, error) {
	p.skipSpace()

	start := p.pos
	name := p.ident()

	switch name {
	case "Num":
		return Num{}, nil
	case "Str":
		return Str{}, nil
	case "Bool":
		return Bool{}, nil

	case "Arr":
		var elem MemberType

		err := p.enclosed(func() (err error) {
			elem, err = p.parseType()
			return err
		})
		if err != nil {
			return nil, err
		}

		return Arr{Elem: elem}, nil

	case "Opt":
		var inner MemberType

		err := p.enclosed(func() (err error) {
			inner, err = p.parseType()
			return err
		})
		if err != nil {
			return nil, err
		}

		return Opt{Inner: inner}, nil

	case "Map":
		var key, value MemberType

		err := p.enclosed(func() (err error) {
			if key, err = p.parseType(); err != nil {
				return err
			}

			if err = p.expect(','); err != nil {
				return err
			}

			value, err = p.parseType()

			return err
		})
		if err != nil {
			return nil, err
		}

		return Map{Key: key, Value: value}, nil

	case "DefClass", "DefEnum":
		var path modpath.Path

		err := p.enclosed(func() (err error) {
			path, err = p.modulePath()
			return err
		})
		if err != nil {
			return nil, err
		}

		if name == "DefClass" {
			return DefClass{Path: path}, nil
		}

		return DefEnum{Path: path}, nil

	case "":
		if p.done() {
			return nil, errors.New("expected type name, got end of input")
		}

		return nil, fmt.Errorf("expected type name at offset %d", start)

	default:
		return nil, fmt.Errorf("unknown type %q at offset %d", name, start)
	}
}

// enclosed parses "(" body ")".
func (p *exprParser) enclosed(body func() error) error {
	if err := p.expect('('); err != nil {
		return err
	}

	if err := body(); err != nil {
		return err
	}

	return p.expect(')')
}

// modulePath reads a possibly quoted module path up to the closing paren.
func (p *exprParser) modulePath() (modpath.Path, error) {
	p.skipSpace()

	start := p.pos
	for !p.done() && p.src[p.pos] != ')' && p.src[p.pos] != ',' {
		p.pos++
	}

	text := strings.TrimSpace(p.src[start:p.pos])
	if len(text) >= 2 && (text[0] == '"' || text[0] == '\'') && text[len(text)-1] == text[0] {
		text = text[1 : len(text)-1]
	}

	return modpath.Parse(text)
}

func (p *exprParser) expect(c byte) error {
	p.skipSpace()

	if p.done() {
		return fmt.Errorf("expected %q, got end of input", c)
	}

	if p.src[p.pos] != c {
		return fmt.Errorf("expected %q at offset %d, got %q", c, p.pos, p.src[p.pos])
	}

	p.pos++

	return nil
}

func (p *exprParser) ident() string {
	start := p.pos
	for !p.done() && isLetter(p.src[p.pos]) {
		p.pos++
	}

	return p.src[start:p.pos]
}

func (p *exprParser) skipSpace() {
	for !p.done() && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t' || p.src[p.pos] == '\n' || p.src[p.pos] == '\r') {
		p.pos++
	}
}

func (p *exprParser) done() bool {
	return p.pos >= len(p.src)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
