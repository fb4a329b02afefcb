/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package parser

import (
	"fmt"

	"github.com/botobag/relgraph/graphql"
	"github.com/botobag/relgraph/graphql/ast"
	"github.com/botobag/relgraph/graphql/lexer"
	"github.com/botobag/relgraph/graphql/token"
)

// Parse parses the given GraphQL source into a Document. Only executable definitions (operations
// and fragments) are accepted.
func Parse(source *token.Source) (ast.Document, error) {
	if source == nil {
		return ast.Document{}, graphql.NewError("Must provide Source. Received: nil")
	}
	p := &parser{lexer: lexer.New(source)}
	return p.parseDocument()
}

// ParseValue parses the AST for string containing a GraphQL value (e.g., `[42]`).
func ParseValue(source *token.Source) (ast.Value, error) {
	p := &parser{lexer: lexer.New(source)}
	if _, err := p.expect(token.KindSOF); err != nil {
		return nil, err
	}
	value, err := p.parseValue(false /* isConst */)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KindEOF); err != nil {
		return nil, err
	}
	return value, nil
}

// parser holds internal state during parsing.
type parser struct {
	lexer *lexer.Lexer
}

// peek returns the current token without consuming it.
func (p *parser) peek() token.Token {
	return p.lexer.Token()
}

// If the current token is of the given kind, return true after advancing the lexer. Otherwise, do
// not change the parser state and return false.
func (p *parser) skip(kind token.Kind) (bool, error) {
	if p.peek().Kind != kind {
		return false, nil
	}
	if _, err := p.lexer.Advance(); err != nil {
		return false, err
	}
	return true, nil
}

// If the current token is of the given kind, return that token after advancing the lexer.
// Otherwise, do not change the parser state and return an error.
func (p *parser) expect(kind token.Kind) (token.Token, error) {
	tok := p.peek()
	if tok.Kind != kind {
		return token.Token{}, graphql.NewSyntaxError(p.lexer.Source(), tok.Location,
			fmt.Sprintf("Expected %v, found %s", kind, tok.Description()))
	}
	if _, err := p.lexer.Advance(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

// expectKeyword consumes a Name token with the given value or returns an error.
func (p *parser) expectKeyword(keyword string) error {
	tok := p.peek()
	if tok.Kind != token.KindName || tok.Value != keyword {
		return graphql.NewSyntaxError(p.lexer.Source(), tok.Location,
			fmt.Sprintf(`Expected "%s", found %s`, keyword, tok.Description()))
	}
	_, err := p.lexer.Advance()
	return err
}

// unexpected creates an error for the current token.
func (p *parser) unexpected() error {
	tok := p.peek()
	return graphql.NewSyntaxError(p.lexer.Source(), tok.Location,
		fmt.Sprintf("Unexpected %s", tok.Description()))
}

func (p *parser) parseName() (ast.Name, error) {
	tok, err := p.expect(token.KindName)
	if err != nil {
		return ast.Name{}, err
	}
	return ast.Name{Token: tok}, nil
}

//	Document ::
//		Definition+
func (p *parser) parseDocument() (ast.Document, error) {
	if _, err := p.expect(token.KindSOF); err != nil {
		return ast.Document{}, err
	}

	var definitions []ast.Definition
	for {
		definition, err := p.parseDefinition()
		if err != nil {
			return ast.Document{}, err
		}
		definitions = append(definitions, definition)

		if stop, err := p.skip(token.KindEOF); err != nil {
			return ast.Document{}, err
		} else if stop {
			break
		}
	}

	return ast.Document{Definitions: definitions}, nil
}

//	ExecutableDefinition ::
//		OperationDefinition
//		FragmentDefinition
func (p *parser) parseDefinition() (ast.Definition, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.KindName:
		switch tok.Value {
		case "query", "mutation", "subscription":
			return p.parseOperationDefinition()
		case "fragment":
			return p.parseFragmentDefinition()
		}

	case token.KindLeftBrace:
		selectionSet, err := p.parseSelectionSet()
		if err != nil {
			return nil, err
		}
		return &ast.OperationDefinition{
			Loc:          tok.Location,
			Type:         ast.OperationTypeQuery,
			SelectionSet: selectionSet,
		}, nil
	}

	return nil, p.unexpected()
}

//	OperationDefinition ::
//		OperationType Name? VariableDefinitions? Directives? SelectionSet
//		SelectionSet
func (p *parser) parseOperationDefinition() (*ast.OperationDefinition, error) {
	operationType, err := p.expect(token.KindName)
	if err != nil {
		return nil, err
	}

	definition := &ast.OperationDefinition{
		Loc:  operationType.Location,
		Type: ast.OperationType(operationType.Value),
	}

	if p.peek().Kind == token.KindName {
		if definition.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	}

	if p.peek().Kind == token.KindLeftParen {
		if definition.VariableDefinitions, err = p.parseVariableDefinitions(); err != nil {
			return nil, err
		}
	}

	if definition.Directives, err = p.parseDirectives(false /* isConst */); err != nil {
		return nil, err
	}

	if definition.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}

	return definition, nil
}

//	VariableDefinitions ::
//		( VariableDefinition+ )
func (p *parser) parseVariableDefinitions() ([]*ast.VariableDefinition, error) {
	if _, err := p.expect(token.KindLeftParen); err != nil {
		return nil, err
	}

	var definitions []*ast.VariableDefinition
	for {
		definition, err := p.parseVariableDefinition()
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, definition)

		if stop, err := p.skip(token.KindRightParen); err != nil {
			return nil, err
		} else if stop {
			return definitions, nil
		}
	}
}

//	VariableDefinition ::
//		Variable : Type DefaultValue?
//
//	DefaultValue ::
//		= Value[Const]
func (p *parser) parseVariableDefinition() (*ast.VariableDefinition, error) {
	variable, err := p.parseVariable()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.KindColon); err != nil {
		return nil, err
	}

	t, err := p.parseType()
	if err != nil {
		return nil, err
	}

	definition := &ast.VariableDefinition{
		Variable: variable,
		Type:     t,
	}

	if hasDefault, err := p.skip(token.KindEquals); err != nil {
		return nil, err
	} else if hasDefault {
		if definition.DefaultValue, err = p.parseValue(true /* isConst */); err != nil {
			return nil, err
		}
	}

	return definition, nil
}

//	Variable ::
//		$ Name
func (p *parser) parseVariable() (*ast.Variable, error) {
	dollar, err := p.expect(token.KindDollar)
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &ast.Variable{
		Loc:  dollar.Location,
		Name: name,
	}, nil
}

//	SelectionSet ::
//		{ Selection+ }
func (p *parser) parseSelectionSet() (ast.SelectionSet, error) {
	if _, err := p.expect(token.KindLeftBrace); err != nil {
		return nil, err
	}

	var selections ast.SelectionSet
	for {
		selection, err := p.parseSelection()
		if err != nil {
			return nil, err
		}
		selections = append(selections, selection)

		if stop, err := p.skip(token.KindRightBrace); err != nil {
			return nil, err
		} else if stop {
			return selections, nil
		}
	}
}

//	Selection ::
//		Field
//		FragmentSpread
//		InlineFragment
func (p *parser) parseSelection() (ast.Selection, error) {
	if p.peek().Kind == token.KindSpread {
		return p.parseFragment()
	}
	return p.parseField()
}

//	Field ::
//		Alias? Name Arguments? Directives? SelectionSet?
//
//	Alias ::
//		Name :
func (p *parser) parseField() (*ast.Field, error) {
	nameOrAlias, err := p.parseName()
	if err != nil {
		return nil, err
	}

	field := &ast.Field{}
	if hasAlias, err := p.skip(token.KindColon); err != nil {
		return nil, err
	} else if hasAlias {
		field.Alias = nameOrAlias
		if field.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	} else {
		field.Name = nameOrAlias
	}

	if field.Arguments, err = p.parseArguments(false /* isConst */); err != nil {
		return nil, err
	}

	if field.Directives, err = p.parseDirectives(false /* isConst */); err != nil {
		return nil, err
	}

	if p.peek().Kind == token.KindLeftBrace {
		if field.SelectionSet, err = p.parseSelectionSet(); err != nil {
			return nil, err
		}
	}

	return field, nil
}

//	Arguments[Const] ::
//		( Argument[?Const]+ )
//
//	Argument[Const] ::
//		Name : Value[?Const]
func (p *parser) parseArguments(isConst bool) (ast.Arguments, error) {
	if stop, err := p.skip(token.KindLeftParen); err != nil || !stop {
		return nil, err
	}

	var args ast.Arguments
	for {
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.KindColon); err != nil {
			return nil, err
		}

		value, err := p.parseValue(isConst)
		if err != nil {
			return nil, err
		}

		args = append(args, &ast.Argument{
			Name:  name,
			Value: value,
		})

		if stop, err := p.skip(token.KindRightParen); err != nil {
			return nil, err
		} else if stop {
			return args, nil
		}
	}
}

//	FragmentSpread ::
//		... FragmentName Directives?
//
//	InlineFragment ::
//		... TypeCondition? Directives? SelectionSet
func (p *parser) parseFragment() (ast.Selection, error) {
	spread, err := p.expect(token.KindSpread)
	if err != nil {
		return nil, err
	}

	tok := p.peek()
	if tok.Kind == token.KindName && tok.Value != "on" {
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		directives, err := p.parseDirectives(false /* isConst */)
		if err != nil {
			return nil, err
		}
		return &ast.FragmentSpread{
			Loc:        spread.Location,
			Name:       name,
			Directives: directives,
		}, nil
	}

	fragment := &ast.InlineFragment{
		Loc: spread.Location,
	}

	if tok.Kind == token.KindName {
		if fragment.TypeCondition, err = p.parseTypeCondition(); err != nil {
			return nil, err
		}
	}

	if fragment.Directives, err = p.parseDirectives(false /* isConst */); err != nil {
		return nil, err
	}

	if fragment.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}

	return fragment, nil
}

//	FragmentDefinition ::
//		fragment FragmentName TypeCondition Directives? SelectionSet
//
//	FragmentName ::
//		Name but not on
func (p *parser) parseFragmentDefinition() (*ast.FragmentDefinition, error) {
	loc := p.peek().Location
	if err := p.expectKeyword("fragment"); err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Kind == token.KindName && tok.Value == "on" {
		return nil, p.unexpected()
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	definition := &ast.FragmentDefinition{
		Loc:  loc,
		Name: name,
	}

	if definition.TypeCondition, err = p.parseTypeCondition(); err != nil {
		return nil, err
	}

	if definition.Directives, err = p.parseDirectives(false /* isConst */); err != nil {
		return nil, err
	}

	if definition.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}

	return definition, nil
}

//	TypeCondition ::
//		on NamedType
func (p *parser) parseTypeCondition() (*ast.NamedType, error) {
	if err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &ast.NamedType{Name: name}, nil
}

//	Value[Const] ::
//		[~Const] Variable
//		IntValue
//		FloatValue
//		StringValue
//		BooleanValue
//		NullValue
//		EnumValue
//		ListValue[?Const]
//		ObjectValue[?Const]
//
//	BooleanValue : one of `true` `false`
//
//	NullValue : `null`
//
//	EnumValue : Name but not `true`, `false` or `null`
func (p *parser) parseValue(isConst bool) (ast.Value, error) {
	tok := p.peek()

	switch tok.Kind {
	case token.KindLeftBracket:
		return p.parseList(isConst)

	case token.KindLeftBrace:
		return p.parseObject(isConst)

	case token.KindDollar:
		if !isConst {
			return p.parseVariable()
		}

	case token.KindInt, token.KindFloat, token.KindString, token.KindBlockString, token.KindName:
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}

		switch tok.Kind {
		case token.KindInt:
			return ast.NewIntValue(tok), nil
		case token.KindFloat:
			return ast.NewFloatValue(tok), nil
		case token.KindString, token.KindBlockString:
			return ast.NewStringValue(tok), nil
		}

		switch tok.Value {
		case "true", "false":
			return ast.NewBooleanValue(tok), nil
		case "null":
			return ast.NewNullValue(tok), nil
		}
		return ast.NewEnumValue(tok), nil
	}

	return nil, p.unexpected()
}

//	ListValue[Const] ::
//		[ ]
//		[ Value[?Const]+ ]
func (p *parser) parseList(isConst bool) (*ast.ListValue, error) {
	open, err := p.expect(token.KindLeftBracket)
	if err != nil {
		return nil, err
	}

	list := &ast.ListValue{Loc: open.Location}
	for {
		if stop, err := p.skip(token.KindRightBracket); err != nil {
			return nil, err
		} else if stop {
			return list, nil
		}

		value, err := p.parseValue(isConst)
		if err != nil {
			return nil, err
		}
		list.Values = append(list.Values, value)
	}
}

//	ObjectValue[Const] ::
//		{ }
//		{ ObjectField[?Const]+ }
//
//	ObjectField[Const] ::
//		Name : Value[?Const]
func (p *parser) parseObject(isConst bool) (*ast.ObjectValue, error) {
	open, err := p.expect(token.KindLeftBrace)
	if err != nil {
		return nil, err
	}

	object := &ast.ObjectValue{Loc: open.Location}
	for {
		if stop, err := p.skip(token.KindRightBrace); err != nil {
			return nil, err
		} else if stop {
			return object, nil
		}

		name, err := p.parseName()
		if err != nil {
			return nil, err
		}

		if _, err := p.expect(token.KindColon); err != nil {
			return nil, err
		}

		value, err := p.parseValue(isConst)
		if err != nil {
			return nil, err
		}

		object.Fields = append(object.Fields, &ast.ObjectField{
			Name:  name,
			Value: value,
		})
	}
}

//	Directives[Const] ::
//		Directive[?Const]+
//
//	Directive[Const] ::
//		@ Name Arguments[?Const]?
func (p *parser) parseDirectives(isConst bool) (ast.Directives, error) {
	var directives ast.Directives
	for p.peek().Kind == token.KindAt {
		at, err := p.expect(token.KindAt)
		if err != nil {
			return nil, err
		}

		name, err := p.parseName()
		if err != nil {
			return nil, err
		}

		args, err := p.parseArguments(isConst)
		if err != nil {
			return nil, err
		}

		directives = append(directives, &ast.Directive{
			Loc:       at.Location,
			Name:      name,
			Arguments: args,
		})
	}
	return directives, nil
}

//	Type ::
//		NamedType
//		ListType
//		NonNullType
func (p *parser) parseType() (ast.Type, error) {
	var t ast.Type

	if p.peek().Kind == token.KindLeftBracket {
		open, err := p.expect(token.KindLeftBracket)
		if err != nil {
			return nil, err
		}
		itemType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.KindRightBracket); err != nil {
			return nil, err
		}
		t = &ast.ListType{
			Loc:      open.Location,
			ItemType: itemType,
		}
	} else {
		name, err := p.parseName()
		if err != nil {
			return nil, err
		}
		t = &ast.NamedType{Name: name}
	}

	if nonNull, err := p.skip(token.KindBang); err != nil {
		return nil, err
	} else if nonNull {
		return &ast.NonNullType{Type: t}, nil
	}

	return t, nil
}
