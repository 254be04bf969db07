// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package eval

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/ezrec/wordstack/stack"
)

// Op is the operator of a program node.
type Op uint8

const (
	OP_NUM Op = iota // Integer literal.
	OP_ADD           // (+ ...)
	OP_SUB           // (- ...)
	OP_MUL           // (* ...)
	OP_DIV           // (/ ...)
)

var opMap = map[string]Op{
	"+": OP_ADD,
	"-": OP_SUB,
	"*": OP_MUL,
	"/": OP_DIV,
}

func (op Op) String() string {
	for key, val := range opMap {
		if val == op {
			return key
		}
	}
	return "num"
}

type sexpr struct {
	Pos    lexer.Position
	Number *uint64 `  @Int`
	List   *slist  `| "(" @@ ")"`
}

type slist struct {
	Op   string   `@("+" | "-" | "*" | "/")`
	Args []*sexpr `@@*`
}

var parser = participle.MustBuild[sexpr]()

type node struct {
	Pos   lexer.Position
	Op    Op
	Value stack.Word
	Args  []int // Indices of argument nodes.
}

// Program is a flattened expression tree. Node 0 is the root.
type Program struct {
	nodes []node
}

// Len returns the number of nodes in the program.
func (prog *Program) Len() int {
	return len(prog.nodes)
}

// Parse an arithmetic s-expression. Integer literals are taken modulo 2^32.
func Parse(filename string, src string) (prog *Program, err error) {
	root, err := parser.ParseString(filename, src)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSyntax, err)
		return
	}

	type pending struct {
		expr  *sexpr
		index int
	}

	prog = &Program{nodes: []node{{}}}
	queue := []pending{{expr: root, index: 0}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		n := node{Pos: item.expr.Pos}
		switch {
		case item.expr.Number != nil:
			n.Op = OP_NUM
			n.Value = stack.Word(*item.expr.Number)
		case item.expr.List != nil:
			n.Op = opMap[item.expr.List.Op]
			for _, arg := range item.expr.List.Args {
				index := len(prog.nodes)
				prog.nodes = append(prog.nodes, node{})
				n.Args = append(n.Args, index)
				queue = append(queue, pending{expr: arg, index: index})
			}
		}
		prog.nodes[item.index] = n
	}

	return
}
