package expr

import (
	"fmt"
	"strconv"
)

// Node is a parsed expression tree.
type Node interface{ node() }

type NumberLit struct{ Value float64 }
type StringLit struct{ Value string }
type BoolLit struct{ Value bool }
type NullLit struct{}
type Ident struct{ Name string }

type Unary struct {
	Op string // "!" or "-"
	X  Node
}

type Binary struct {
	Op   string
	L, R Node
}

func (NumberLit) node() {}
func (StringLit) node() {}
func (BoolLit) node()   {}
func (NullLit) node()   {}
func (Ident) node()     {}
func (Unary) node()     {}
func (Binary) node()    {}

// Parse parses src into an expression tree. A syntax error never panics;
// callers decide the failure policy (visibility fails open, formulas fall
// back to the undefined sentinel).
func Parse(src string) (Node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, fmt.Errorf("unexpected %q at position %d", p.peek().text, p.peek().pos)
	}
	return n, nil
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) acceptOp(ops ...string) (string, bool) {
	t := p.peek()
	if t.kind != tokOperator {
		return "", false
	}
	for _, op := range ops {
		if t.text == op {
			p.next()
			return op, true
		}
	}
	return "", false
}

// precedence climbing: || < && < equality < comparison < additive <
// multiplicative < unary < primary

func (p *parser) parseOr() (Node, error) {
	l, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.acceptOp("||"); !ok {
			return l, nil
		}
		r, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		l = Binary{Op: "||", L: l, R: r}
	}
}

func (p *parser) parseAnd() (Node, error) {
	l, err := p.parseEquality()
	if err != nil {
		return nil, err
	}
	for {
		if _, ok := p.acceptOp("&&"); !ok {
			return l, nil
		}
		r, err := p.parseEquality()
		if err != nil {
			return nil, err
		}
		l = Binary{Op: "&&", L: l, R: r}
	}
}

func (p *parser) parseEquality() (Node, error) {
	l, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp("===", "!==", "==", "!=")
		if !ok {
			return l, nil
		}
		r, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		l = Binary{Op: op, L: l, R: r}
	}
}

func (p *parser) parseComparison() (Node, error) {
	l, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp(">=", "<=", ">", "<")
		if !ok {
			return l, nil
		}
		r, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		l = Binary{Op: op, L: l, R: r}
	}
}

func (p *parser) parseAdditive() (Node, error) {
	l, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp("+", "-")
		if !ok {
			return l, nil
		}
		r, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		l = Binary{Op: op, L: l, R: r}
	}
}

func (p *parser) parseMultiplicative() (Node, error) {
	l, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp("*", "/", "%")
		if !ok {
			return l, nil
		}
		r, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		l = Binary{Op: op, L: l, R: r}
	}
}

func (p *parser) parseUnary() (Node, error) {
	if op, ok := p.acceptOp("!", "-"); ok {
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Unary{Op: op, X: x}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Node, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.next()
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q at position %d", t.text, t.pos)
		}
		return NumberLit{Value: v}, nil

	case tokString:
		p.next()
		return StringLit{Value: t.text}, nil

	case tokIdent:
		p.next()
		switch t.text {
		case "true":
			return BoolLit{Value: true}, nil
		case "false":
			return BoolLit{Value: false}, nil
		case "null", "undefined":
			return NullLit{}, nil
		}
		return Ident{Name: t.text}, nil

	case tokOperator:
		if t.text == "(" {
			p.next()
			n, err := p.parseOr()
			if err != nil {
				return nil, err
			}
			if _, ok := p.acceptOp(")"); !ok {
				return nil, fmt.Errorf("missing closing parenthesis at position %d", p.peek().pos)
			}
			return n, nil
		}
	}
	return nil, fmt.Errorf("unexpected %q at position %d", t.text, t.pos)
}

// Identifiers returns the distinct identifier names referenced by n, in
// first-seen order. The builder uses it to warn about formulas that
// reference unknown field names.
func Identifiers(n Node) []string {
	seen := map[string]bool{}
	var out []string
	var walk func(Node)
	walk = func(n Node) {
		switch x := n.(type) {
		case Ident:
			if !seen[x.Name] {
				seen[x.Name] = true
				out = append(out, x.Name)
			}
		case Unary:
			walk(x.X)
		case Binary:
			walk(x.L)
			walk(x.R)
		}
	}
	walk(n)
	return out
}
