package parser

import (
	"strconv"
	"strings"

	"github.com/funvibe/sufx/internal/ast"
	"github.com/funvibe/sufx/internal/lexer"
	"github.com/funvibe/sufx/internal/token"
)

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	value, err := strconv.ParseInt(p.curToken.Lexeme, 10, 64)
	if err != nil {
		p.addError(p.curToken, "could not parse %q as integer", p.curToken.Lexeme)
		return nil
	}
	return &ast.IntegerLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	value, err := strconv.ParseFloat(p.curToken.Lexeme, 64)
	if err != nil {
		p.addError(p.curToken, "could not parse %q as float", p.curToken.Lexeme)
		return nil
	}
	return &ast.FloatLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseImaginaryLiteral() ast.Expression {
	lexeme := strings.TrimSuffix(p.curToken.Lexeme, "i")
	value, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		p.addError(p.curToken, "could not parse %q as imaginary", p.curToken.Lexeme)
		return nil
	}
	return &ast.ImaginaryLiteral{Token: p.curToken, Value: complex(0, value)}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNoneLiteral() ast.Expression {
	return &ast.NoneLiteral{Token: p.curToken}
}

func (p *Parser) parseEllipsisLiteral() ast.Expression {
	return &ast.EllipsisLiteral{Token: p.curToken}
}

func (p *Parser) parseBytesLiteral() ast.Expression {
	decoded, err := lexer.DecodeEscapes(p.curToken.Lexeme)
	if err != nil {
		p.addError(p.curToken, "%s", err.Error())
		return nil
	}
	return &ast.BytesLiteral{Token: p.curToken, Value: []byte(decoded)}
}

// parseStringLiteral splits the raw string body into plain and ${...}
// segments. A body without interpolation produces a plain StringLiteral.
func (p *Parser) parseStringLiteral() ast.Expression {
	tok := p.curToken
	segments, exprs, err := splitInterpolation(tok.Lexeme)
	if err != "" {
		p.addError(tok, "%s", err)
		return nil
	}

	if len(exprs) == 0 {
		decoded, derr := lexer.DecodeEscapes(tok.Lexeme)
		if derr != nil {
			p.addError(tok, "%s", derr.Error())
			return nil
		}
		return &ast.StringLiteral{Token: tok, Value: decoded}
	}

	interp := &ast.InterpolatedString{Token: tok}
	for i, seg := range segments {
		if seg != "" {
			decoded, derr := lexer.DecodeEscapes(seg)
			if derr != nil {
				p.addError(tok, "%s", derr.Error())
				return nil
			}
			interp.Parts = append(interp.Parts, &ast.StringLiteral{Token: tok, Value: decoded})
		}
		if i < len(exprs) {
			inner := p.parseSubExpression(exprs[i], tok)
			if inner == nil {
				return nil
			}
			interp.Parts = append(interp.Parts, inner)
		}
	}
	if len(interp.Parts) == 0 {
		interp.Parts = append(interp.Parts, &ast.StringLiteral{Token: tok, Value: ""})
	}
	return interp
}

// splitInterpolation cuts a raw string body around ${...} holes. It returns
// the literal segments (len(exprs)+1 of them) and the hole sources.
func splitInterpolation(raw string) (segments []string, exprs []string, errMsg string) {
	var seg strings.Builder
	i := 0
	for i < len(raw) {
		c := raw[i]
		if c == '\\' && i+1 < len(raw) {
			seg.WriteByte(c)
			seg.WriteByte(raw[i+1])
			i += 2
			continue
		}
		if c == '$' && i+1 < len(raw) && raw[i+1] == '{' {
			depth := 1
			j := i + 2
			for j < len(raw) && depth > 0 {
				switch raw[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				j++
			}
			if depth != 0 {
				return nil, nil, "unterminated interpolation in string literal"
			}
			segments = append(segments, seg.String())
			seg.Reset()
			exprs = append(exprs, raw[i+2:j-1])
			i = j
			continue
		}
		seg.WriteByte(c)
		i++
	}
	segments = append(segments, seg.String())
	return segments, exprs, ""
}

// parseSubExpression parses an interpolation hole with a fresh parser.
func (p *Parser) parseSubExpression(src string, tok token.Token) ast.Expression {
	sub := New(lexer.New(src))
	expr := sub.parseExpression(LOWEST)
	if expr != nil && !sub.peekTokenIs(token.EOF) && !sub.peekTokenIs(token.NEWLINE) {
		sub.peekError(token.EOF)
		expr = nil
	}
	if len(sub.errors) > 0 {
		for _, msg := range sub.errors {
			p.addError(tok, "in interpolation ${%s}: %s", src, msg)
		}
		return nil
	}
	if expr == nil {
		p.addError(tok, "empty interpolation in string literal")
	}
	return expr
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{Token: p.curToken, Operator: p.curToken.Lexeme}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
		Left:     left,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

// parseAttributeExpression handles value.name — built-in attributes and
// custom literal suffixes share this syntax.
func (p *Parser) parseAttributeExpression(left ast.Expression) ast.Expression {
	dot := p.curToken
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	return &ast.AttributeExpression{Token: dot, Object: left, Name: p.curToken.Lexeme}
}

// parseParenExpression handles both grouped expressions and tuple literals:
// (x) groups, () and (x,) and (x, y) are tuples.
func (p *Parser) parseParenExpression() ast.Expression {
	tok := p.curToken

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return &ast.TupleLiteral{Token: tok}
	}

	p.nextToken()
	first := p.parseElement()
	if first == nil {
		return nil
	}

	_, spread := first.(*ast.SpreadElement)
	if p.peekTokenIs(token.RPAREN) && !spread {
		p.nextToken()
		return first // grouped expression
	}

	tuple := &ast.TupleLiteral{Token: tok, Elements: []ast.Expression{first}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RPAREN) {
			break // trailing comma
		}
		p.nextToken()
		el := p.parseElement()
		if el == nil {
			return nil
		}
		tuple.Elements = append(tuple.Elements, el)
	}
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return tuple
}

func (p *Parser) parseListLiteral() ast.Expression {
	list := &ast.ListLiteral{Token: p.curToken}
	elements, ok := p.parseElementList(token.RBRACKET)
	if !ok {
		return nil
	}
	list.Elements = elements
	return list
}

// parseBraceLiteral disambiguates set and map literals: {} is an empty map,
// a leading ** or key: value makes a map, anything else a set.
func (p *Parser) parseBraceLiteral() ast.Expression {
	tok := p.curToken

	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return &ast.MapLiteral{Token: tok}
	}

	if p.peekTokenIs(token.POWER) {
		return p.parseMapLiteral(tok, nil)
	}

	p.nextToken()
	first := p.parseElement()
	if first == nil {
		return nil
	}
	if _, isSpread := first.(*ast.SpreadElement); !isSpread && p.peekTokenIs(token.COLON) {
		return p.parseMapLiteral(tok, first)
	}

	set := &ast.SetLiteral{Token: tok, Elements: []ast.Expression{first}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RBRACE) {
			break
		}
		p.nextToken()
		el := p.parseElement()
		if el == nil {
			return nil
		}
		set.Elements = append(set.Elements, el)
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return set
}

// parseMapLiteral continues a brace literal known to be a map. firstKey is
// the already-parsed first key, or nil when the literal starts with **.
func (p *Parser) parseMapLiteral(tok token.Token, firstKey ast.Expression) ast.Expression {
	m := &ast.MapLiteral{Token: tok}

	if firstKey != nil {
		if !p.expectPeek(token.COLON) {
			return nil
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return nil
		}
		m.Entries = append(m.Entries, ast.MapEntry{Key: firstKey, Value: value})
	} else {
		p.nextToken() // onto the leading '**'
		entry, ok := p.parseMapEntry()
		if !ok {
			return nil
		}
		m.Entries = append(m.Entries, entry)
	}

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RBRACE) {
			break
		}
		p.nextToken()
		entry, ok := p.parseMapEntry()
		if !ok {
			return nil
		}
		m.Entries = append(m.Entries, entry)
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return m
}

// parseMapEntry parses one map entry with curToken on its first token:
// either **expr or key: value.
func (p *Parser) parseMapEntry() (ast.MapEntry, bool) {
	if p.curTokenIs(token.POWER) {
		p.nextToken()
		value := p.parseExpression(LOWEST)
		if value == nil {
			return ast.MapEntry{}, false
		}
		return ast.MapEntry{Value: value, Spread: true}, true
	}

	key := p.parseExpression(LOWEST)
	if key == nil {
		return ast.MapEntry{}, false
	}
	if !p.expectPeek(token.COLON) {
		return ast.MapEntry{}, false
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	if value == nil {
		return ast.MapEntry{}, false
	}
	return ast.MapEntry{Key: key, Value: value}, true
}

// parseElement parses a collection element, which may be a *spread.
func (p *Parser) parseElement() ast.Expression {
	if p.curTokenIs(token.ASTERISK) {
		spread := &ast.SpreadElement{Token: p.curToken}
		p.nextToken()
		spread.Value = p.parseExpression(LOWEST)
		if spread.Value == nil {
			return nil
		}
		return spread
	}
	return p.parseExpression(LOWEST)
}

func (p *Parser) parseElementList(end token.TokenType) ([]ast.Expression, bool) {
	var elements []ast.Expression

	if p.peekTokenIs(end) {
		p.nextToken()
		return elements, true
	}

	p.nextToken()
	el := p.parseElement()
	if el == nil {
		return nil, false
	}
	elements = append(elements, el)

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(end) {
			break
		}
		p.nextToken()
		el := p.parseElement()
		if el == nil {
			return nil, false
		}
		elements = append(elements, el)
	}

	if !p.expectPeek(end) {
		return nil, false
	}
	return elements, true
}
