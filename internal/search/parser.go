package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pstuifzand/codenav/internal/model"
)

// TokenType represents the type of a token in the search query
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenText
	TokenQuoted
	TokenFilter
	TokenRegex  // /pattern/
	TokenAnd    // + (explicit)
	TokenOr     // |
	TokenNot    // -
	TokenLParen // (
	TokenRParen // )
)

// Token represents a single token in the search query
type Token struct {
	Type  TokenType
	Value string
}

// FilterType represents the type of filter
type FilterType string

const (
	FilterTypeKind     FilterType = "k"
	FilterTypeAccess   FilterType = "a"
	FilterTypeBookmark FilterType = "b"
	FilterTypeParent   FilterType = "p"
	FilterTypeAncestor FilterType = "p*"
	FilterTypeDepth    FilterType = "d"
	FilterTypeLine     FilterType = "l"
)

var filterAliases = map[string]FilterType{
	"k":        FilterTypeKind,
	"kind":     FilterTypeKind,
	"a":        FilterTypeAccess,
	"access":   FilterTypeAccess,
	"b":        FilterTypeBookmark,
	"bookmark": FilterTypeBookmark,
	"p":        FilterTypeParent,
	"parent":   FilterTypeParent,
	"p*":       FilterTypeAncestor,
	"parent*":  FilterTypeAncestor,
	"d":        FilterTypeDepth,
	"depth":    FilterTypeDepth,
	"l":        FilterTypeLine,
	"line":     FilterTypeLine,
}

// Tokenizer converts a search query string into tokens
type Tokenizer struct {
	input string
	pos   int
}

// NewTokenizer creates a new tokenizer for the given input
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input, pos: 0}
}

// NextToken returns the next token in the input
func (t *Tokenizer) NextToken() Token {
	t.skipWhitespace()

	if t.pos >= len(t.input) {
		return Token{Type: TokenEOF}
	}

	switch t.input[t.pos] {
	case '(':
		t.pos++
		return Token{Type: TokenLParen, Value: "("}
	case ')':
		t.pos++
		return Token{Type: TokenRParen, Value: ")"}
	case '|':
		t.pos++
		return Token{Type: TokenOr, Value: "|"}
	case '+':
		t.pos++
		return Token{Type: TokenAnd, Value: "+"}
	case '-':
		t.pos++
		return Token{Type: TokenNot, Value: "-"}
	case '"':
		return t.readQuotedText()
	case '/':
		return t.readRegex()
	default:
		if t.isFilter() {
			return t.readFilter()
		}
		return t.readText()
	}
}

// AllTokens returns all tokens in the input
func (t *Tokenizer) AllTokens() []Token {
	var tokens []Token
	for {
		token := t.NextToken()
		tokens = append(tokens, token)
		if token.Type == TokenEOF {
			break
		}
	}
	return tokens
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && isSpace(t.input[t.pos]) {
		t.pos++
	}
}

func (t *Tokenizer) readQuotedText() Token {
	t.pos++ // opening quote
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '"' {
		t.pos++
	}
	value := t.input[start:t.pos]
	if t.pos < len(t.input) {
		t.pos++ // closing quote
	}
	return Token{Type: TokenQuoted, Value: value}
}

func (t *Tokenizer) readRegex() Token {
	t.pos++ // opening slash
	var sb strings.Builder
	for t.pos < len(t.input) && t.input[t.pos] != '/' {
		if t.input[t.pos] == '\\' && t.pos+1 < len(t.input) && t.input[t.pos+1] == '/' {
			sb.WriteByte('/')
			t.pos += 2
			continue
		}
		sb.WriteByte(t.input[t.pos])
		t.pos++
	}
	if t.pos < len(t.input) {
		t.pos++ // closing slash
	}
	return Token{Type: TokenRegex, Value: sb.String()}
}

// isFilter reports whether the input at the current position is a known
// filter name followed by a colon
func (t *Tokenizer) isFilter() bool {
	end := t.pos
	for end < len(t.input) && (isAlpha(t.input[end]) || t.input[end] == '*') {
		end++
	}
	if end >= len(t.input) || t.input[end] != ':' {
		return false
	}
	_, ok := filterAliases[strings.ToLower(t.input[t.pos:end])]
	return ok
}

func (t *Tokenizer) readFilter() Token {
	start := t.pos
	for t.pos < len(t.input) && !isSpace(t.input[t.pos]) && t.input[t.pos] != ')' {
		if t.input[t.pos] == '"' {
			// quoted criteria, e.g. p:"Cart"
			t.pos++
			for t.pos < len(t.input) && t.input[t.pos] != '"' {
				t.pos++
			}
		}
		if t.pos < len(t.input) {
			t.pos++
		}
	}
	return Token{Type: TokenFilter, Value: t.input[start:t.pos]}
}

func (t *Tokenizer) readText() Token {
	start := t.pos
	for t.pos < len(t.input) && !isSpace(t.input[t.pos]) && !strings.ContainsRune("()|", rune(t.input[t.pos])) {
		t.pos++
	}
	return Token{Type: TokenText, Value: t.input[start:t.pos]}
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t'
}

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

// Parser parses tokens into a filter expression
type Parser struct {
	tokens []Token
	pos    int
}

// NewParser creates a new parser for the given tokens
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens, pos: 0}
}

// ParseQuery parses a search query string into a filter expression.
// An empty query returns a nil expression.
func ParseQuery(query string) (FilterExpr, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	tokens := NewTokenizer(query).AllTokens()
	parser := NewParser(tokens)
	expr, err := parser.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := parser.currentToken(); tok.Type != TokenEOF {
		return nil, fmt.Errorf("unexpected %q at end of query", tok.Value)
	}
	return expr, nil
}

func (p *Parser) currentToken() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// parseOr handles OR expressions (lowest precedence)
func (p *Parser) parseOr() (FilterExpr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}

	for p.currentToken().Type == TokenOr {
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = NewOrExpr(left, right)
	}

	return left, nil
}

// parseAnd handles AND expressions, both explicit (+) and implicit (adjacent terms)
func (p *Parser) parseAnd() (FilterExpr, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.currentToken()
		if tok.Type == TokenAnd {
			p.advance()
		} else if tok.Type == TokenEOF || tok.Type == TokenOr || tok.Type == TokenRParen {
			break
		}
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = NewAndExpr(left, right)
	}

	return left, nil
}

func (p *Parser) parseNot() (FilterExpr, error) {
	if p.currentToken().Type == TokenNot {
		p.advance()
		expr, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return NewNotExpr(expr), nil
	}
	return p.parseAtom()
}

func (p *Parser) parseAtom() (FilterExpr, error) {
	tok := p.currentToken()

	switch tok.Type {
	case TokenLParen:
		p.advance()
		expr, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.currentToken().Type != TokenRParen {
			return nil, fmt.Errorf("expected closing parenthesis")
		}
		p.advance()
		return expr, nil
	case TokenText:
		p.advance()
		return NewFuzzyExpr(tok.Value), nil
	case TokenQuoted:
		p.advance()
		return NewTextExpr(tok.Value), nil
	case TokenRegex:
		p.advance()
		return NewRegexExpr(tok.Value)
	case TokenFilter:
		p.advance()
		return parseFilterValue(tok.Value)
	case TokenEOF:
		return nil, fmt.Errorf("unexpected end of query")
	default:
		return nil, fmt.Errorf("unexpected %q", tok.Value)
	}
}

// parseFilterValue parses a "name:criteria" filter token
func parseFilterValue(value string) (FilterExpr, error) {
	name, criteria, _ := strings.Cut(value, ":")
	criteria = strings.Trim(criteria, `"`)

	switch filterAliases[strings.ToLower(name)] {
	case FilterTypeKind:
		return parseKindFilter(criteria)
	case FilterTypeAccess:
		return parseAccessFilter(criteria)
	case FilterTypeBookmark:
		return parseBookmarkFilter(criteria)
	case FilterTypeParent:
		return parseParentFilter(criteria, false)
	case FilterTypeAncestor:
		return parseParentFilter(criteria, true)
	case FilterTypeDepth:
		op, n, err := parseComparison(criteria)
		if err != nil {
			return nil, fmt.Errorf("depth filter: %w", err)
		}
		return NewDepthExpr(op, n), nil
	case FilterTypeLine:
		op, n, err := parseComparison(criteria)
		if err != nil {
			return nil, fmt.Errorf("line filter: %w", err)
		}
		return NewLineExpr(op, n), nil
	}
	return nil, fmt.Errorf("unknown filter %q", name)
}

func parseKindFilter(criteria string) (FilterExpr, error) {
	var kinds []model.Kind
	for _, name := range strings.Split(criteria, ",") {
		kind, ok := model.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("unknown kind %q", name)
		}
		kinds = append(kinds, kind)
	}
	return NewKindExpr(kinds...), nil
}

func parseAccessFilter(criteria string) (FilterExpr, error) {
	for _, access := range []model.Access{model.AccessPublic, model.AccessPrivate, model.AccessProtected, model.AccessInternal} {
		if strings.EqualFold(access.String(), criteria) {
			return NewAccessExpr(access), nil
		}
	}
	return nil, fmt.Errorf("unknown access %q", criteria)
}

func parseBookmarkFilter(criteria string) (FilterExpr, error) {
	if criteria == "*" || criteria == "" {
		return NewBookmarkExpr(-1), nil
	}
	n, err := strconv.Atoi(criteria)
	if err != nil || n < 1 {
		return nil, fmt.Errorf("invalid bookmark style %q", criteria)
	}
	return NewBookmarkExpr(n - 1), nil
}

func parseParentFilter(criteria string, ancestors bool) (FilterExpr, error) {
	if criteria == "" {
		return nil, fmt.Errorf("parent filter needs a name")
	}
	return NewParentExpr(NewTextExpr(criteria), ancestors), nil
}

// parseComparison splits criteria like ">=2" into operator and number
func parseComparison(criteria string) (ComparisonOp, int, error) {
	op := OpEqual
	for _, candidate := range []ComparisonOp{OpGreaterEqual, OpLessEqual, OpNotEqual, OpGreater, OpLess, OpEqual} {
		if strings.HasPrefix(criteria, string(candidate)) {
			op = candidate
			criteria = criteria[len(candidate):]
			break
		}
	}
	n, err := strconv.Atoi(criteria)
	if err != nil {
		return op, 0, fmt.Errorf("invalid number %q", criteria)
	}
	return op, n, nil
}
