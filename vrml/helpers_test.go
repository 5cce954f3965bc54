// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vrml_test

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"cogentcore.org/vrml/base/errors"
	"cogentcore.org/vrml/field"
	"cogentcore.org/vrml/vrml"
)

// memFetcher fetches documents from memory.
type memFetcher map[string]string

func (f memFetcher) Fetch(uri string) (*vrml.Resource, error) {
	doc, ok := f[strings.Split(uri, "#")[0]]
	if !ok {
		return nil, errors.New("not found")
	}
	return &vrml.Resource{URI: uri, Body: io.NopCloser(strings.NewReader(doc))}, nil
}

// lineParser creates one root node per line of the document, named
// by the node type. A line "DEF name Type" also names the node.
// onParse, if set, is called before parsing.
type lineParser struct {
	onParse func(s *vrml.Scene)
}

func (p *lineParser) Parse(s *vrml.Scene, r io.Reader) ([]vrml.Node, error) {
	if p.onParse != nil {
		p.onParse(s)
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var nodes []vrml.Node
	for _, line := range strings.Split(strings.TrimSpace(string(b)), "\n") {
		fs := strings.Fields(line)
		if len(fs) == 0 {
			continue
		}
		id := ""
		if fs[0] == "DEF" && len(fs) == 3 {
			id, fs = fs[1], fs[2:]
		}
		n, err := s.CreateNode(nil, fs[0], nil)
		if err != nil {
			return nil, err
		}
		n.AsNode().SetID(id)
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func newBrowser(t *testing.T, docs memFetcher) *vrml.Browser {
	t.Helper()
	return vrml.NewBrowser(vrml.Options{
		Parser:  &lineParser{},
		Fetcher: docs,
		Clock:   func() float64 { return 0 },
	})
}

// create returns a new node of the given type in the browser's scene.
func create(t *testing.T, b *vrml.Browser, typ string, fields map[string]string) vrml.Node {
	t.Helper()
	initial := map[string]field.Value{}
	for name, text := range fields {
		c, ok := b.Classes().Lookup(typ)
		require.True(t, ok, typ)
		nt, err := c.CreateType(typ, nil)
		require.NoError(t, err)
		i, ok := nt.Interface(name)
		require.True(t, ok, name)
		v, err := field.Parse(i.Type, text, nil)
		require.NoError(t, err)
		initial[name] = v
	}
	n, err := b.Scene().CreateNode(nil, typ, initial)
	require.NoError(t, err)
	return n
}

func fieldString(t *testing.T, n vrml.Node, name string) string {
	t.Helper()
	v, err := n.AsNode().Field(name)
	require.NoError(t, err)
	return v.String()
}

func eventOutString(t *testing.T, n vrml.Node, name string) string {
	t.Helper()
	v, err := n.AsNode().EventOut(name)
	require.NoError(t, err)
	return v.String()
}
