// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package phytree provides a rooted phylogenetic tree
// with branch lengths,
// in which only terminals are named.
package phytree

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrNotInTree is the error produced
// when a required terminal is not found in a tree.
var ErrNotInTree = errors.New("terminal not in tree")

// A Tree is a rooted phylogenetic tree.
//
// Nodes are addressed by ID,
// an index on the node arena of the tree.
// Every child node has an ID larger than its parent,
// so a descending ID scan visits children before parents.
type Tree struct {
	nodes []node
	taxon map[string]int
	root  int
}

type node struct {
	id       int
	parent   int
	children []int
	length   float64
	taxon    string
}

// Root returns the ID of the root node.
func (t *Tree) Root() int {
	return t.root
}

// Parent returns the ID of the parent of a node.
// The parent of the root is -1.
func (t *Tree) Parent(id int) int {
	if id < 0 || id >= len(t.nodes) {
		return -1
	}
	return t.nodes[id].parent
}

// Children returns the IDs of the children of a node.
func (t *Tree) Children(id int) []int {
	if id < 0 || id >= len(t.nodes) {
		return nil
	}
	return append([]int(nil), t.nodes[id].children...)
}

// Length returns the length of the branch
// between a node and its parent.
// On the root it is the stem length,
// usually zero.
func (t *Tree) Length(id int) float64 {
	if id < 0 || id >= len(t.nodes) {
		return 0
	}
	return t.nodes[id].length
}

// Taxon returns the terminal name of a node,
// or an empty string on internal nodes.
func (t *Tree) Taxon(id int) string {
	if id < 0 || id >= len(t.nodes) {
		return ""
	}
	return t.nodes[id].taxon
}

// IsTerm returns true if a node is a terminal.
func (t *Tree) IsTerm(id int) bool {
	if id < 0 || id >= len(t.nodes) {
		return false
	}
	return len(t.nodes[id].children) == 0
}

// IsRoot returns true if a node is the root of the tree.
func (t *Tree) IsRoot(id int) bool {
	return id == t.root
}

// TaxNode returns the ID of the terminal with a given name.
func (t *Tree) TaxNode(name string) (int, bool) {
	id, ok := t.taxon[name]
	return id, ok
}

// Terms returns the names of the tree terminals,
// sorted alphabetically.
func (t *Tree) Terms() []string {
	names := make([]string, 0, len(t.taxon))
	for n := range t.taxon {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Nodes returns the IDs of all nodes of the tree.
func (t *Tree) Nodes() []int {
	ids := make([]int, len(t.nodes))
	for i := range t.nodes {
		ids[i] = i
	}
	return ids
}

// Len returns the number of nodes of the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// AddNode adds a node to a tree
// as a child of the indicated node
// with the given branch length.
// Use a negative parent to set the root node.
// Terminals must have a non empty and unique name;
// internal nodes must use an empty name.
func (t *Tree) AddNode(parent int, name string, length float64) (int, error) {
	if parent < 0 && len(t.nodes) > 0 {
		return 0, errors.New("tree already has a root")
	}
	if parent >= len(t.nodes) {
		return 0, fmt.Errorf("parent node %d not in tree", parent)
	}
	if length < 0 {
		return 0, fmt.Errorf("node %q: negative branch length", name)
	}
	if name != "" {
		if _, dup := t.taxon[name]; dup {
			return 0, fmt.Errorf("terminal %q already in tree", name)
		}
	}
	if parent >= 0 {
		if p := t.nodes[parent].taxon; p != "" {
			return 0, fmt.Errorf("parent node %d is the terminal %q", parent, p)
		}
	}

	id := len(t.nodes)
	t.nodes = append(t.nodes, node{
		id:     id,
		parent: parent,
		length: length,
		taxon:  name,
	})
	if parent < 0 {
		t.root = id
	} else {
		t.nodes[parent].children = append(t.nodes[parent].children, id)
	}
	if name != "" {
		t.taxon[name] = id
	}
	return id, nil
}

// New creates a new empty tree.
func New() *Tree {
	return &Tree{
		taxon: make(map[string]int),
		root:  -1,
	}
}

// Prune returns the minimal induced subtree
// that contains the indicated terminals.
//
// Internal nodes left with a single descendant lineage
// are removed,
// adding their branch lengths to the surviving branch,
// so the path length between any two kept terminals
// is the same in both trees.
// If the root is left with a single descendant lineage
// it is removed in the same way,
// and the accumulated length is kept
// as the stem of the new root.
//
// If any terminal is not found in the tree,
// it returns an error that wraps ErrNotInTree
// and names the missing terminals.
func (t *Tree) Prune(terms []string) (*Tree, error) {
	ks := make(map[string]bool, len(terms))
	var missing []string
	for _, n := range terms {
		if _, ok := t.taxon[n]; !ok {
			missing = append(missing, n)
			continue
		}
		ks[n] = true
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, fmt.Errorf("%w: %s", ErrNotInTree, strings.Join(missing, ", "))
	}
	if len(ks) == 0 {
		return nil, errors.New("empty terminal set")
	}

	// Mark the kept terminals and their ancestors.
	// As children always have larger IDs than their parents,
	// the descending scan is a post-order traversal.
	kept := make([]bool, len(t.nodes))
	for i := len(t.nodes) - 1; i >= 0; i-- {
		n := &t.nodes[i]
		if n.taxon != "" && ks[n.taxon] {
			kept[i] = true
		}
		if kept[i] && n.parent >= 0 {
			kept[n.parent] = true
		}
	}

	nt := New()
	type frame struct {
		old    int
		parent int
		extra  float64
	}
	stack := []frame{{old: t.root, parent: -1}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[fr.old]
		ln := n.length + fr.extra

		var kids []int
		for _, c := range n.children {
			if kept[c] {
				kids = append(kids, c)
			}
		}

		if len(kids) == 0 {
			// a kept terminal
			if _, err := nt.AddNode(fr.parent, n.taxon, ln); err != nil {
				return nil, err
			}
			continue
		}
		if len(kids) == 1 {
			// a pass-through node:
			// contract it into its only kept child
			stack = append(stack, frame{old: kids[0], parent: fr.parent, extra: ln})
			continue
		}

		id, err := nt.AddNode(fr.parent, "", ln)
		if err != nil {
			return nil, err
		}
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{old: kids[i], parent: id, extra: 0})
		}
	}
	return nt, nil
}
