// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package phytree

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Newick reads a tree in newick
// (parenthetical) notation,
// with branch lengths.
// Labels on internal nodes are ignored.
func Newick(r io.Reader) (*Tree, error) {
	br := bufio.NewReader(r)
	t := New()

	cur := -1
	for {
		c, err := readRune(br)
		if err != nil {
			return nil, err
		}

		switch c {
		case '(':
			if cur < 0 && t.Len() > 0 {
				return nil, errors.New("newick: unexpected '('")
			}
			id, err := t.AddNode(cur, "", 0)
			if err != nil {
				return nil, fmt.Errorf("newick: %v", err)
			}
			cur = id
		case ',':
			if cur < 0 {
				return nil, errors.New("newick: unexpected ','")
			}
		case ')':
			if cur < 0 {
				return nil, errors.New("newick: unbalanced ')'")
			}
			// an internal node label, if any, is ignored
			if _, err := readLabel(br); err != nil {
				return nil, err
			}
			if err := readLength(br, t, cur); err != nil {
				return nil, err
			}
			cur = t.nodes[cur].parent
		case ';':
			if cur >= 0 {
				return nil, errors.New("newick: unbalanced '('")
			}
			if t.Len() == 0 {
				return nil, errors.New("newick: empty tree")
			}
			return t, nil
		default:
			if err := br.UnreadRune(); err != nil {
				return nil, err
			}
			name, err := readLabel(br)
			if err != nil {
				return nil, err
			}
			if name == "" {
				return nil, fmt.Errorf("newick: unexpected character %q", c)
			}
			if cur < 0 && t.Len() > 0 {
				return nil, fmt.Errorf("newick: unexpected terminal %q", name)
			}
			id, err := t.AddNode(cur, name, 0)
			if err != nil {
				return nil, fmt.Errorf("newick: %v", err)
			}
			if err := readLength(br, t, id); err != nil {
				return nil, err
			}
		}
	}
}

// ReadRune returns the next rune
// that is not a space.
func readRune(r *bufio.Reader) (rune, error) {
	for {
		c, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			return 0, errors.New("newick: unexpected end of data")
		}
		if err != nil {
			return 0, err
		}
		if unicode.IsSpace(c) {
			continue
		}
		return c, nil
	}
}

func readLabel(r *bufio.Reader) (string, error) {
	var b strings.Builder
	for {
		c, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if err != nil {
			return "", err
		}
		if unicode.IsSpace(c) || strings.ContainsRune("(),:;", c) {
			if err := r.UnreadRune(); err != nil {
				return "", err
			}
			return b.String(), nil
		}
		b.WriteRune(c)
	}
}

func readLength(r *bufio.Reader, t *Tree, id int) error {
	c, err := readRune(r)
	if err != nil {
		return err
	}
	if c != ':' {
		return r.UnreadRune()
	}

	var b strings.Builder
	for {
		c, _, err := r.ReadRune()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if unicode.IsSpace(c) || strings.ContainsRune("(),:;", c) {
			if err := r.UnreadRune(); err != nil {
				return err
			}
			break
		}
		b.WriteRune(c)
	}

	v, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return fmt.Errorf("newick: node %d: invalid branch length %q", id, b.String())
	}
	if v < 0 {
		return fmt.Errorf("newick: node %d: negative branch length %q", id, b.String())
	}
	t.nodes[id].length = v
	return nil
}

// Newick writes a tree in newick notation
// with branch lengths,
// ending with a semicolon and a line break.
// The stem length of the root is written
// only when it is not zero.
func (t *Tree) Newick(w io.Writer) error {
	if t.Len() == 0 {
		return errors.New("newick: empty tree")
	}

	bw := bufio.NewWriter(w)
	t.writeNode(bw, t.root)
	bw.WriteString(";\n")
	return bw.Flush()
}

func (t *Tree) writeNode(w *bufio.Writer, id int) {
	n := &t.nodes[id]
	if len(n.children) > 0 {
		w.WriteByte('(')
		for i, c := range n.children {
			if i > 0 {
				w.WriteByte(',')
			}
			t.writeNode(w, c)
		}
		w.WriteByte(')')
	}
	w.WriteString(n.taxon)
	if n.parent >= 0 || n.length > 0 {
		w.WriteByte(':')
		w.WriteString(strconv.FormatFloat(n.length, 'g', -1, 64))
	}
}
