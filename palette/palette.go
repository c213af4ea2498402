// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package palette implements an ordered color list
// cycled over ranked taxonomic groups.
package palette

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/blind"
)

// A Palette is an ordered list of colors.
type Palette []color.RGBA

// DefaultSize is the number of colors
// of the default palette.
const DefaultSize = 12

// Default returns the default palette,
// sampled from the iridescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_iridescent>.
func Default() Palette {
	p := make(Palette, DefaultSize)
	for i := range p {
		p[i] = blind.Sequential(blind.Iridescent, float64(i)/float64(DefaultSize-1))
	}
	return p
}

// Color returns the color for a given rank,
// cycling over the palette
// when the rank is larger than the palette.
func (p Palette) Color(rank int) color.RGBA {
	if len(p) == 0 || rank < 0 {
		return color.RGBA{}
	}
	return p[rank%len(p)]
}

// Assign returns the color assigned to each name,
// the names given in rank order.
func (p Palette) Assign(names []string) map[string]color.RGBA {
	m := make(map[string]color.RGBA, len(names))
	for i, n := range names {
		m[n] = p.Color(i)
	}
	return m
}

// Hex returns a color as an RGB hex token
// in the "#rrggbb" form.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Read reads a palette from a TSV file.
//
// The file must contain a "color" field
// with an RGB triplet separated by commas,
// one color per row,
// in palette order.
// Any other field will be ignored.
// Here is an example file:
//
//	color	comment
//	68, 119, 170	blue
//	102, 204, 238	cyan
//	34, 136, 51	green
func Read(r io.Reader) (Palette, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	if _, ok := fields["color"]; !ok {
		return nil, fmt.Errorf("expecting field %q", "color")
	}

	var p Palette
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		c, err := parseColor(row[fields["color"]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, "color", err)
		}
		p = append(p, c)
	}
	if len(p) == 0 {
		return nil, errors.New("empty palette")
	}
	return p, nil
}

func parseColor(s string) (color.RGBA, error) {
	val := strings.Split(s, ",")
	if len(val) != 3 {
		return color.RGBA{}, fmt.Errorf("found %d values, want 3", len(val))
	}

	var rgb [3]uint8
	for i, v := range val {
		x, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return color.RGBA{}, err
		}
		if x < 0 || x > 255 {
			return color.RGBA{}, fmt.Errorf("invalid value %d", x)
		}
		rgb[i] = uint8(x)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}

// TSV writes a palette to a TSV file.
func (p Palette) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write([]string{"color"}); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, c := range p {
		row := []string{
			fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
