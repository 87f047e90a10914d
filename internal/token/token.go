package token

// TokenType identifies the lexical class of a token.
type TokenType string

// Token is a single lexical unit with its source position.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Column int
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"
	NEWLINE TokenType = "NEWLINE"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"
	INT    TokenType = "INT"
	FLOAT  TokenType = "FLOAT"
	IMAG   TokenType = "IMAG"   // imaginary numeric literal: 2i, 1.5i
	STRING TokenType = "STRING" // raw string body, escapes not yet decoded
	BYTES  TokenType = "BYTES"  // raw bytes body: b"..."

	// Keywords
	TRUE  TokenType = "TRUE"
	FALSE TokenType = "FALSE"
	NONE  TokenType = "NONE"

	ELLIPSIS TokenType = "..."

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	POWER    TokenType = "**"
	SLASH    TokenType = "/"

	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LT     TokenType = "<"
	LE     TokenType = "<="
	GT     TokenType = ">"
	GE     TokenType = ">="

	// Delimiters
	COMMA     TokenType = ","
	COLON     TokenType = ":"
	SEMICOLON TokenType = ";"
	DOT       TokenType = "."

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
)

var keywords = map[string]TokenType{
	"true":  TRUE,
	"false": FALSE,
	"none":  NONE,
}

// LookupIdent returns the keyword type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
