// Package sceneql implements the entity query language: HAS(type),
// NAMED("glob"), FOLDER("glob") and ALL() terms combined with !, & and |.
package sceneql

import (
	"path"

	"github.com/alecthomas/participle/v2"
	"github.com/rotisserie/eris"
)

// Entity is the view a predicate evaluates against.
type Entity interface {
	Name() string
	Folder() string
	HasComponent(typeName string) bool
}

// Predicate reports whether an entity matches a parsed query.
type Predicate func(Entity) bool

type qlOperator int

const (
	opAnd qlOperator = iota
	opOr
)

var operatorMap = map[string]qlOperator{"&": opAnd, "|": opOr}

// Capture tells the parser library how to transform a parsed operator token.
func (o *qlOperator) Capture(s []string) error {
	if len(s) == 0 {
		return eris.New("invalid operator")
	}
	operator, ok := operatorMap[s[0]]
	if !ok {
		return eris.New("invalid operator")
	}
	*o = operator
	return nil
}

type qlAll struct{}

func (a *qlAll) Capture(values []string) error {
	if values[0] == "ALL" && values[1] == "(" && values[2] == ")" {
		*a = qlAll{}
	}
	return nil
}

type qlHas struct {
	// Bare identifiers cover built-in component types; user script types
	// carry dots and commas and must be quoted.
	Type string `parser:"'HAS' '(' @(Ident | String) ')'"`
}

type qlNamed struct {
	Pattern string `parser:"'NAMED' '(' @String ')'"`
}

type qlFolder struct {
	Pattern string `parser:"'FOLDER' '(' @String ')'"`
}

type qlNot struct {
	SubExpression *qlValue `parser:"'!' @@"`
}

type qlValue struct {
	All           *qlAll    `parser:"@('ALL' '(' ')')"`
	Has           *qlHas    `parser:"| @@"`
	Named         *qlNamed  `parser:"| @@"`
	Folder        *qlFolder `parser:"| @@"`
	Not           *qlNot    `parser:"| @@"`
	Subexpression *qlTerm   `parser:"| '(' @@ ')'"`
}

type qlFactor struct {
	Base *qlValue `parser:"@@"`
}

type qlOpFactor struct {
	Operator qlOperator `parser:"@('&' | '|')"`
	Factor   *qlFactor  `parser:"@@"`
}

type qlTerm struct {
	Left  *qlFactor     `parser:"@@"`
	Right []*qlOpFactor `parser:"@@*"`
}

var internalParser = participle.MustBuild[qlTerm](participle.Unquote("String"))

func valueToPredicate(value *qlValue) (Predicate, error) {
	switch {
	case value.Not != nil:
		sub, err := valueToPredicate(value.Not.SubExpression)
		if err != nil {
			return nil, err
		}
		return func(e Entity) bool { return !sub(e) }, nil
	case value.All != nil:
		return func(Entity) bool { return true }, nil
	case value.Has != nil:
		typeName := value.Has.Type
		return func(e Entity) bool { return e.HasComponent(typeName) }, nil
	case value.Named != nil:
		return globPredicate(value.Named.Pattern, Entity.Name)
	case value.Folder != nil:
		return globPredicate(value.Folder.Pattern, Entity.Folder)
	case value.Subexpression != nil:
		return termToPredicate(value.Subexpression)
	default:
		return nil, eris.New("unknown error during conversion from query AST to predicate")
	}
}

func globPredicate(pattern string, field func(Entity) string) (Predicate, error) {
	// Validate the pattern once at parse time; Match can only fail on a bad
	// pattern, never on the subject.
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, eris.Wrap(err, pattern)
	}
	return func(e Entity) bool {
		ok, _ := path.Match(pattern, field(e))
		return ok
	}, nil
}

func termToPredicate(term *qlTerm) (Predicate, error) {
	if term.Left == nil {
		return nil, eris.New("not enough values in expression")
	}
	acc, err := valueToPredicate(term.Left.Base)
	if err != nil {
		return nil, err
	}
	for _, opFactor := range term.Right {
		next, err := valueToPredicate(opFactor.Factor.Base)
		if err != nil {
			return nil, err
		}
		left := acc
		switch opFactor.Operator {
		case opAnd:
			acc = func(e Entity) bool { return left(e) && next(e) }
		case opOr:
			acc = func(e Entity) bool { return left(e) || next(e) }
		default:
			return nil, eris.New("invalid operator")
		}
	}
	return acc, nil
}

// Parse compiles query text into a predicate.
func Parse(query string) (Predicate, error) {
	term, err := internalParser.ParseString("", query)
	if err != nil {
		return nil, eris.Wrap(err, "")
	}
	return termToPredicate(term)
}
