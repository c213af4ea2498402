// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package seqs provides a collection
// of representative sequences
// keyed by feature ID.
package seqs

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// A Collection is a set of sequences
// keyed by feature ID,
// kept in their insertion order.
type Collection struct {
	ids []string
	rec map[string]record
}

type record struct {
	desc string
	seq  string
}

// New creates a new empty collection.
func New() *Collection {
	return &Collection{
		rec: make(map[string]record),
	}
}

// Add adds a sequence with a given ID
// and an optional description.
func (c *Collection) Add(id, desc, seq string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("sequence without ID")
	}
	if _, dup := c.rec[id]; dup {
		return fmt.Errorf("sequence %q already in collection", id)
	}

	c.ids = append(c.ids, id)
	c.rec[id] = record{
		desc: strings.TrimSpace(desc),
		seq:  seq,
	}
	return nil
}

// IDs returns the sequence IDs of the collection
// in insertion order.
func (c *Collection) IDs() []string {
	return append([]string(nil), c.ids...)
}

// Sequence returns the sequence of a given ID.
func (c *Collection) Sequence(id string) string {
	return c.rec[id].seq
}

// Len returns the number of sequences in the collection.
func (c *Collection) Len() int {
	return len(c.ids)
}

// Filter returns a new collection
// with only the indicated IDs,
// keeping the order of the receiver.
func (c *Collection) Filter(keep []string) *Collection {
	ks := make(map[string]bool, len(keep))
	for _, id := range keep {
		ks[id] = true
	}

	nc := New()
	for _, id := range c.ids {
		if !ks[id] {
			continue
		}
		r := c.rec[id]
		nc.ids = append(nc.ids, id)
		nc.rec[id] = r
	}
	return nc
}

// Read reads a collection of sequences
// in FASTA format.
// The sequence ID is the first field
// of the identification line;
// the rest of the line is kept as a description.
func Read(r io.Reader) (*Collection, error) {
	c := New()

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 1024*1024), 16*1024*1024)

	id := ""
	desc := ""
	var seq strings.Builder
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if id != "" {
				if err := c.Add(id, desc, seq.String()); err != nil {
					return nil, fmt.Errorf("on line %d: %v", ln, err)
				}
			}
			fs := strings.Fields(line[1:])
			if len(fs) == 0 {
				return nil, fmt.Errorf("on line %d: sequence without ID", ln)
			}
			id = fs[0]
			desc = strings.TrimSpace(strings.TrimPrefix(line[1:], id))
			seq.Reset()
			continue
		}
		if id == "" {
			return nil, fmt.Errorf("on line %d: data before the first sequence", ln)
		}
		seq.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if id != "" {
		if err := c.Add(id, desc, seq.String()); err != nil {
			return nil, fmt.Errorf("on line %d: %v", ln, err)
		}
	}
	return c, nil
}

// Write writes a collection in FASTA format,
// sequences wrapped at 80 characters per line.
func (c *Collection) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, id := range c.ids {
		r := c.rec[id]
		if r.desc != "" {
			fmt.Fprintf(bw, ">%s %s\n", id, r.desc)
		} else {
			fmt.Fprintf(bw, ">%s\n", id)
		}
		for s := r.seq; s != ""; {
			ln := s
			if len(ln) > 80 {
				ln = s[:80]
			}
			s = s[len(ln):]
			fmt.Fprintf(bw, "%s\n", ln)
		}
	}
	return bw.Flush()
}
