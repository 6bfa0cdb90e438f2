package annotations

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// annotationLexer tokenizes annotation arguments. Rules are tried in order, so
// multi-character operators must come before the bare '=' used for assignment.
var annotationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(\\.|[^"\\])*"|` + "`[^`]*`"},
	{Name: "Char", Pattern: `'(\\.|[^'\\])*'`},
	{Name: "Number", Pattern: `[0-9][0-9a-zA-Z_.]*`},
	{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{Nd}_]*`},
	{Name: "Operator", Pattern: `==|!=|<=|>=|&&|\|\||<<|>>|&\^|<-|\.\.\.|[-+*/%&|^<>!.:~]`},
	{Name: "Assign", Pattern: `=`},
	{Name: "Bracket", Pattern: `[()\[\]{}]`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// typeArgs is the grammar of //rest::error arguments.
type typeArgs struct {
	Keys []*typeKey `parser:"( @@ ','? )*"`
}

// typeKey is a bare key optionally followed by a parenthesized pair list.
type typeKey struct {
	Pos    lexer.Position
	Name   string  `parser:"@Ident"`
	Parens bool    `parser:"( @'('"`
	Pairs  []*pair `parser:"  ( @@ ( ',' @@ )* ','? )? ')' )?"`
}

// variantArgs is the grammar of //rest::variant arguments.
type variantArgs struct {
	Pairs []*pair `parser:"( @@ ( ',' @@ )* ','? )?"`
}

type pair struct {
	Pos   lexer.Position
	Key   string      `parser:"@Ident"`
	Value *expression `parser:"( '=' @@ )?"`
}

// expression captures any balanced token run up to a top-level ',' or ')'.
// Its text is sliced from the source using Pos and EndPos.
type expression struct {
	Pos    lexer.Position
	EndPos lexer.Position
	Terms  []*term `parser:"@@+"`
}

type term struct {
	Group *group `parser:"  @@"`
	Token string `parser:"| @(Ident | Number | String | Char | Operator)"`
}

type group struct {
	Open  string        `parser:"@('(' | '[' | '{')"`
	Items []*expression `parser:"( @@ ( ',' @@ )* ','? )?"`
	Close string        `parser:"@(')' | ']' | '}')"`
}

var (
	typeArgsParser = participle.MustBuild[typeArgs](
		participle.Lexer(annotationLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	variantArgsParser = participle.MustBuild[variantArgs](
		participle.Lexer(annotationLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
)
