// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package yamlscene_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/vrml/fetch"
	"cogentcore.org/vrml/field"
	"cogentcore.org/vrml/math32"
	"cogentcore.org/vrml/vrml"
	"cogentcore.org/vrml/yamlscene"
)

var _ vrml.Parser = yamlscene.Parser{}

const world = `
protos:
  - name: Ball
    interfaces:
      - {kind: field, type: SFFloat, name: radius, value: 2}
      - {kind: eventIn, type: SFVec3f, name: set_position}
    nodes:
      - type: Transform
        def: T
        fields:
          children:
            - type: Shape
              fields:
                geometry: {type: Sphere, def: S}
    is:
      - radius IS S.radius
      - set_position IS T.set_translation
nodes:
  - type: WorldInfo
    fields:
      title: Test world
      info: [one, two]
  - type: TimeSensor
    def: Clock
    fields:
      cycleInterval: 4
      loop: TRUE
  - type: PositionInterpolator
    def: Path
    fields:
      key: [0, 1]
      keyValue: 0 0 0, 4 0 0
  - type: Ball
    def: B
    fields:
      radius: 3
  - type: Group
    fields:
      children:
        - use: Clock
        - {type: Box}
routes:
  - Clock.fraction_changed TO Path.set_fraction
  - Path.value_changed TO B.set_position
`

func load(t *testing.T, doc string) *vrml.Browser {
	t.Helper()
	path := filepath.Join(t.TempDir(), "world.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0666))
	b := vrml.NewBrowser(vrml.Options{Parser: yamlscene.Parser{}, Fetcher: &fetch.FileFetcher{}})
	require.NoError(t, b.Load([]string{path}, nil))
	return b
}

func find(roots []vrml.Node, id string) vrml.Node {
	var found vrml.Node
	vrml.Walk(roots, func(n vrml.Node) bool {
		if found == nil && n.ID() == id {
			found = n
		}
		return vrml.Continue
	})
	return found
}

func TestParse(t *testing.T) {
	b := load(t, world)
	roots := b.RootNodes()
	require.Len(t, roots, 5)

	info := roots[0].(*vrml.WorldInfo)
	assert.Equal(t, "Test world", info.Title())
	assert.Equal(t, []string{"one", "two"}, field.GetAll[string](must(info.Field("info"))))

	clock := roots[1]
	assert.Equal(t, "Clock", clock.ID())
	assert.Equal(t, 4.0, field.Get[float64](must(clock.AsNode().Field("cycleInterval"))))
	assert.Equal(t, []float32{0, 1}, field.GetAll[float32](must(roots[2].AsNode().Field("key"))))

	group := roots[4].(vrml.GroupingNode)
	require.Len(t, group.ChildNodes(), 2)
	assert.Same(t, clock, group.ChildNodes()[0])

	ball := roots[3].(*vrml.ProtoInstance)
	assert.Equal(t, "Ball", ball.TypeName())
	assert.Equal(t, float32(3), field.Get[float32](must(ball.Field("radius"))))
	s := find(ball.ImplementationNodes(), "S")
	require.NotNil(t, s)
	assert.Equal(t, float32(3), field.Get[float32](must(s.AsNode().Field("radius"))))
}

func TestParseRuns(t *testing.T) {
	b := load(t, world)
	ball := b.RootNodes()[3].(*vrml.ProtoInstance)
	tr := find(ball.ImplementationNodes(), "T")
	require.NotNil(t, tr)

	b.Update(2)
	b.Update(3)
	assert.Equal(t, math32.Vec3(2, 0, 0), field.Get[math32.Vector3](must(tr.AsNode().Field("translation"))))
}

func TestParseErrors(t *testing.T) {
	b := vrml.NewBrowser(vrml.Options{Parser: yamlscene.Parser{}})
	for _, doc := range []string{
		"nodes: [{use: Nowhere}]",
		"nodes: [{type: Teapot}]",
		"nodes: [{}]",
		"nodes: [{type: Sphere, fields: {radius: big}}]",
		"nodes: [{type: Sphere, fields: {diameter: 1}}]",
		"nodes: [{type: Box, def: A}]\nroutes: [A.size TO A.size]",
		"nodes: [{type: Box, def: A}]\nroutes: [A TO]",
		"nodes: [{type: Shape, fields: {geometry: [{type: Box}, {type: Box}]}}]",
		"protos: [{name: P, interfaces: [{kind: field, type: SFFloat, name: r}], nodes: [{type: Box, def: X}], is: [r IS X.size]}]",
		"protos: [{name: P, interfaces: [{kind: sometimes, type: SFFloat, name: r}]}]",
		"nodes: {",
	} {
		_, err := b.CreateFromStream(doc)
		assert.ErrorIs(t, err, vrml.ErrInvalidScene, doc)
	}
}

func TestScript(t *testing.T) {
	b := vrml.NewBrowser(vrml.Options{Parser: yamlscene.Parser{}})
	nodes, err := b.CreateFromStream(`
nodes:
  - type: Script
    def: S
    interfaces:
      - {kind: eventIn, type: SFFloat, name: in}
      - {kind: field, type: SFInt32, name: count, value: 7}
    fields:
      url: ["native:count"]
`)
	require.NoError(t, err)
	s := nodes[0].(*vrml.Script)
	assert.Equal(t, []string{"native:count"}, s.URL())
	assert.Equal(t, int32(7), field.Get[int32](must(s.Field("count"))))
}

func TestDump(t *testing.T) {
	b := load(t, world)
	var out strings.Builder
	require.NoError(t, yamlscene.Dump(&out, b.RootNodes()))
	text := out.String()
	assert.Contains(t, text, "def: Clock")
	assert.Contains(t, text, "use: Clock")
	assert.Contains(t, text, "title: Test world")
	assert.Contains(t, text, "type: Ball")
	assert.Contains(t, text, "Clock.fraction_changed TO Path.set_fraction")
	assert.NotContains(t, text, "bboxSize")

	nodes, err := b.CreateFromStream(text)
	require.NoError(t, err, text)
	require.Len(t, nodes, 5)
	assert.Equal(t, float32(3), field.Get[float32](must(nodes[3].AsNode().Field("radius"))))
	assert.Equal(t, []float32{0, 1}, field.GetAll[float32](must(nodes[2].AsNode().Field("key"))))
}

func must(v field.Value, err error) field.Value {
	if err != nil {
		panic(err)
	}
	return v
}
