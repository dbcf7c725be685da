package descriptor

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// TypeExpr is a parsed, unresolved type expression such as
// "map<Numberz, list<i64>>".
type TypeExpr struct {
	Name string     // identifier, or "list", "set", "map" for containers
	Args []TypeExpr // container type arguments
}

// IsContainer reports whether the expression is a container.
func (e TypeExpr) IsContainer() bool {
	return len(e.Args) > 0
}

// String returns the canonical spelling of the expression.
func (e TypeExpr) String() string {
	if !e.IsContainer() {
		return e.Name
	}

	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}

	return e.Name + "<" + strings.Join(args, ", ") + ">"
}

var containerArity = map[string]int{
	"list": 1,
	"set":  1,
	"map":  2,
}

// ParseTypeExpr parses a type expression.
// Supports: "i32", "Xtruct", "list<T>", "set<T>", "map<K, V>" nested to any depth.
func ParseTypeExpr(s string) (TypeExpr, error) {
	p := &typeParser{src: s}

	e, err := p.parse()
	if err != nil {
		return TypeExpr{}, errors.Wrapf(err, "invalid type %q", s)
	}

	p.skipSpace()

	if p.pos != len(p.src) {
		return TypeExpr{}, errors.Newf("invalid type %q: unexpected %q at offset %d", s, p.src[p.pos:], p.pos)
	}

	return e, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *typeParser) ident() string {
	p.skipSpace()

	start := p.pos
	for p.pos < len(p.src) {
		c := rune(p.src[p.pos])
		if !isLetter(c) && !isDigit(c) && c != '_' {
			break
		}

		p.pos++
	}

	return p.src[start:p.pos]
}

func (p *typeParser) expect(c byte) error {
	p.skipSpace()

	if p.pos >= len(p.src) {
		return errors.Newf("expected %q, got end of input", c)
	}

	if p.src[p.pos] != c {
		return errors.Newf("expected %q at offset %d, got %q", c, p.pos, p.src[p.pos])
	}

	p.pos++

	return nil
}

func (p *typeParser) parse() (TypeExpr, error) {
	name := p.ident()
	if !IsValidIdent(name) {
		return TypeExpr{}, errors.Newf("expected a type name at offset %d", p.pos)
	}

	arity, isContainer := containerArity[name]
	if !isContainer {
		return TypeExpr{Name: name}, nil
	}

	if err := p.expect('<'); err != nil {
		return TypeExpr{}, err
	}

	e := TypeExpr{Name: name}

	for i := range arity {
		if i > 0 {
			if err := p.expect(','); err != nil {
				return TypeExpr{}, err
			}
		}

		arg, err := p.parse()
		if err != nil {
			return TypeExpr{}, err
		}

		e.Args = append(e.Args, arg)
	}

	if err := p.expect('>'); err != nil {
		return TypeExpr{}, err
	}

	return e, nil
}

// IsValidIdent checks if a string is a valid identifier.
func IsValidIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			// First character must be letter or underscore
			if !isLetter(r) && r != '_' {
				return false
			}
		} else {
			// Subsequent characters can be letter, digit, or underscore
			if !isLetter(r) && !isDigit(r) && r != '_' {
				return false
			}
		}
	}

	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
