package parser

import "github.com/veltlang/velt/pkg/ast"

// parentStack tracks the nodes currently able to receive appended children:
// the programs entered by the dispatch core and the elements opened by the
// element builder. It is traversal-scoped, never shared between parses.
type parentStack struct {
	nodes []ast.ParentNode
}

func (s *parentStack) push(n ast.ParentNode) {
	s.nodes = append(s.nodes, n)
}

func (s *parentStack) pop() ast.ParentNode {
	n := s.nodes[len(s.nodes)-1]
	s.nodes = s.nodes[:len(s.nodes)-1]
	return n
}

func (s *parentStack) current() ast.ParentNode {
	if len(s.nodes) == 0 {
		return nil
	}
	return s.nodes[len(s.nodes)-1]
}
