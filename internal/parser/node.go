// Package parser implements photon's shift-reduce parser (spec.md §4.C):
// a lexer that turns one assembled logical line into a token slice, a
// grammar-table-driven reducer that collapses that slice to a parse
// Node, and a Driver that reattaches indented blocks and elif/else
// modifiers the way the teacher's original line-oriented interpreter
// loop does (handleBlock/getBlock), before handing the finished Node to
// internal/engine.
package parser

import "github.com/photon-lang/photon/internal/token"

// Node is the parser's flat, pre-semantic parse tree: one node per
// reduction, carrying its source tokens, any nested sub-expressions
// (Children), an attached indented Block (If/While/For/Def/Class
// bodies), and a chained Modifier (the next elif/else link, or nil).
// internal/engine consumes Node trees and produces internal/ir.Node
// trees; Node itself knows nothing about types or scope.
type Node struct {
	Reduces  string
	Tokens   []token.Token
	Children []*Node
	Block    []*Node
	Modifier *Node
	Indent   int
	Line     int
	Filename string
}

// Token returns the node's first token, or the zero Token if it has
// none (synthetic nodes built by the precedence pass may have no direct
// token of their own).
func (n *Node) Token() token.Token {
	if len(n.Tokens) == 0 {
		return token.Token{}
	}
	return n.Tokens[0]
}

// Value returns the first token's literal value.
func (n *Node) Value() string { return n.Token().Value }
