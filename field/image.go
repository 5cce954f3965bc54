// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jinzhu/copier"

	"cogentcore.org/vrml/base/errors"
)

// Image is an SFImage value: an uncompressed 2D pixel image.
// Each pixel packs Components bytes (1 intensity, 2 intensity and
// alpha, 3 RGB, 4 RGBA) with the last component in the low byte.
// Pixels are listed left to right, bottom to top.
type Image struct {
	Width      int
	Height     int
	Components int
	Pixels     []uint32
}

func (im *Image) Type() Type { return SFImage }

func (im *Image) Clone() Value {
	cp := &Image{}
	errors.Log(copier.CopyWithOption(cp, im, copier.Option{DeepCopy: true}))
	return cp
}

func (im *Image) Assign(other Value) error {
	o, ok := other.(*Image)
	if !ok {
		return &TypeMismatchError{Want: SFImage, Got: typeOf(other)}
	}
	*im = *o.Clone().(*Image)
	return nil
}

func (im *Image) Equal(other Value) bool {
	o, ok := other.(*Image)
	return ok && im.Width == o.Width && im.Height == o.Height &&
		im.Components == o.Components && slices.Equal(im.Pixels, o.Pixels)
}

func (im *Image) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d %d %d", im.Width, im.Height, im.Components)
	for _, p := range im.Pixels {
		fmt.Fprintf(&b, " 0x%0*X", 2*im.Components, p)
	}
	return b.String()
}

func (im *Image) Parse(s string) error {
	return parseInto(im, s, nil)
}

func (im *Image) decode(s *scanner, _ Resolver) error {
	var dims [3]int64
	for i := range dims {
		d, err := s.int64()
		if err != nil {
			return err
		}
		if d < 0 {
			return errors.Errorf("negative image dimension %d", d)
		}
		dims[i] = d
	}
	w, h, c := dims[0], dims[1], dims[2]
	if c > 4 {
		return errors.Errorf("image components %d out of range [0, 4]", c)
	}
	if c == 0 && w*h != 0 {
		return errors.New("image with pixels has no components")
	}
	limit := int64(1) << (8 * c)
	pixels := make([]uint32, w*h)
	for i := range pixels {
		p, err := s.int64()
		if err != nil {
			return errors.Errorf("image has %d of %d pixels: %w", i, len(pixels), err)
		}
		if p < 0 || p >= limit {
			return errors.Errorf("pixel 0x%X out of range for %d components", p, c)
		}
		pixels[i] = uint32(p)
	}
	*im = Image{Width: int(w), Height: int(h), Components: int(c), Pixels: pixels}
	return nil
}
