package ast

import (
	"github.com/funvibe/sufx/internal/token"
)

// IntegerLiteral: 42
type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

// FloatLiteral: 0.5
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }

// ImaginaryLiteral: 2i
type ImaginaryLiteral struct {
	Token token.Token
	Value complex128
}

func (il *ImaginaryLiteral) expressionNode()       {}
func (il *ImaginaryLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *ImaginaryLiteral) GetToken() token.Token { return il.Token }

// BooleanLiteral: true / false
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()       {}
func (bl *BooleanLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BooleanLiteral) GetToken() token.Token { return bl.Token }

// NoneLiteral: none
type NoneLiteral struct {
	Token token.Token
}

func (nl *NoneLiteral) expressionNode()       {}
func (nl *NoneLiteral) TokenLiteral() string  { return nl.Token.Lexeme }
func (nl *NoneLiteral) GetToken() token.Token { return nl.Token }

// EllipsisLiteral: ...
type EllipsisLiteral struct {
	Token token.Token
}

func (el *EllipsisLiteral) expressionNode()       {}
func (el *EllipsisLiteral) TokenLiteral() string  { return el.Token.Lexeme }
func (el *EllipsisLiteral) GetToken() token.Token { return el.Token }

// StringLiteral: "hello" (escapes already decoded)
type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// InterpolatedString: "x = ${x}". Parts alternate between StringLiteral
// segments and embedded expressions, in source order.
type InterpolatedString struct {
	Token token.Token
	Parts []Expression
}

func (is *InterpolatedString) expressionNode()       {}
func (is *InterpolatedString) TokenLiteral() string  { return is.Token.Lexeme }
func (is *InterpolatedString) GetToken() token.Token { return is.Token }

// BytesLiteral: b"\x01\x02"
type BytesLiteral struct {
	Token token.Token
	Value []byte
}

func (bl *BytesLiteral) expressionNode()       {}
func (bl *BytesLiteral) TokenLiteral() string  { return bl.Token.Lexeme }
func (bl *BytesLiteral) GetToken() token.Token { return bl.Token }

// SpreadElement: *seq inside a tuple/list/set literal.
type SpreadElement struct {
	Token token.Token // The '*' token
	Value Expression
}

func (se *SpreadElement) expressionNode()       {}
func (se *SpreadElement) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SpreadElement) GetToken() token.Token { return se.Token }

// TupleLiteral: (1, 2) — elements may be SpreadElements.
type TupleLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (tl *TupleLiteral) expressionNode()       {}
func (tl *TupleLiteral) TokenLiteral() string  { return tl.Token.Lexeme }
func (tl *TupleLiteral) GetToken() token.Token { return tl.Token }

// ListLiteral: [1, 2] — elements may be SpreadElements.
type ListLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (ll *ListLiteral) expressionNode()       {}
func (ll *ListLiteral) TokenLiteral() string  { return ll.Token.Lexeme }
func (ll *ListLiteral) GetToken() token.Token { return ll.Token }

// SetLiteral: {1, 2} — elements may be SpreadElements.
type SetLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (sl *SetLiteral) expressionNode()       {}
func (sl *SetLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *SetLiteral) GetToken() token.Token { return sl.Token }

// MapEntry is a single key/value pair or **spread inside a map literal.
type MapEntry struct {
	Key    Expression // nil when Spread is set
	Value  Expression
	Spread bool // **expr entry: Value is the map being merged
}

// MapLiteral: {"a": 1, **other}
type MapLiteral struct {
	Token   token.Token
	Entries []MapEntry
}

func (ml *MapLiteral) expressionNode()       {}
func (ml *MapLiteral) TokenLiteral() string  { return ml.Token.Lexeme }
func (ml *MapLiteral) GetToken() token.Token { return ml.Token }

// AttributeExpression: value.name — attribute or literal suffix access.
type AttributeExpression struct {
	Token  token.Token // The '.' token
	Object Expression
	Name   string
}

func (ae *AttributeExpression) expressionNode()       {}
func (ae *AttributeExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AttributeExpression) GetToken() token.Token { return ae.Token }

// PrefixExpression: -x
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

// InfixExpression: a + b
type InfixExpression struct {
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }
