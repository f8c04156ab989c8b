package scene

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tepi-engine/tepi/pkg/linear"
	"github.com/tepi-engine/tepi/pkg/render"
)

func mustAdd(t *testing.T, s *Scene, parent Handle, n Node) Handle {
	t.Helper()
	h, err := s.Add(parent, n)
	require.NoError(t, err)
	return h
}

func TestAddAndGet(t *testing.T) {
	s := New("world")
	assert.Equal(t, 1, s.Len())

	a := mustAdd(t, s, s.Root(), Node{Name: "a"})
	b := mustAdd(t, s, a, Node{Name: "b"})

	n, ok := s.Get(b)
	require.True(t, ok)
	assert.Equal(t, "b", n.Name)
	assert.NotEqual(t, uuid.Nil, n.ID)

	p, ok := s.Parent(b)
	require.True(t, ok)
	assert.Equal(t, a, p)
	assert.Equal(t, []Handle{a}, s.Children(s.Root()))

	_, ok = s.Parent(s.Root())
	assert.False(t, ok)

	_, err := s.Add(Handle{}, Node{Name: "orphan"})
	assert.ErrorIs(t, err, ErrStaleHandle)
}

func TestRemoveSubtree(t *testing.T) {
	s := New("world")
	a := mustAdd(t, s, s.Root(), Node{Name: "a"})
	b := mustAdd(t, s, a, Node{Name: "b"})
	c := mustAdd(t, s, b, Node{Name: "c"})
	d := mustAdd(t, s, s.Root(), Node{Name: "d"})

	require.NoError(t, s.Remove(a))
	assert.Equal(t, 2, s.Len())
	for _, h := range []Handle{a, b, c} {
		assert.False(t, s.Contains(h), "%s should be gone", h)
	}
	assert.True(t, s.Contains(d))
	assert.Equal(t, []Handle{d}, s.Children(s.Root()))

	// Reused slots must not revive old handles.
	e := mustAdd(t, s, s.Root(), Node{Name: "e"})
	assert.False(t, s.Contains(a))
	assert.False(t, s.Contains(b))
	assert.True(t, s.Contains(e))

	assert.ErrorIs(t, s.Remove(a), ErrStaleHandle)
	assert.ErrorIs(t, s.Remove(s.Root()), ErrRoot)
}

func TestReparent(t *testing.T) {
	s := New("world")
	a := mustAdd(t, s, s.Root(), Node{Name: "a"})
	b := mustAdd(t, s, a, Node{Name: "b"})
	c := mustAdd(t, s, s.Root(), Node{Name: "c"})

	require.NoError(t, s.Reparent(b, c))
	assert.Empty(t, s.Children(a))
	assert.Equal(t, []Handle{b}, s.Children(c))

	assert.ErrorIs(t, s.Reparent(c, b), ErrCycle)
	assert.ErrorIs(t, s.Reparent(c, c), ErrCycle)
	assert.ErrorIs(t, s.Reparent(s.Root(), a), ErrRoot)
}

func TestWalkOrder(t *testing.T) {
	s := New("root")
	a := mustAdd(t, s, s.Root(), Node{Name: "a"})
	mustAdd(t, s, a, Node{Name: "a1"})
	mustAdd(t, s, a, Node{Name: "a2"})
	b := mustAdd(t, s, s.Root(), Node{Name: "b"})
	mustAdd(t, s, b, Node{Name: "b1"})

	var names []string
	var depths []int
	s.Walk(func(_ Handle, n *Node, depth int) bool {
		names = append(names, n.Name)
		depths = append(depths, depth)
		return n.Name != "b"
	})
	assert.Equal(t, []string{"root", "a", "a1", "a2", "b"}, names)
	assert.Equal(t, []int{0, 1, 2, 2, 1}, depths)
}

func TestWorldPosition(t *testing.T) {
	s := New("world")
	a := mustAdd(t, s, s.Root(), Node{Name: "a", Position: linear.P2(10, 0)})
	b := mustAdd(t, s, a, Node{Name: "b", Position: linear.P2(1, 2)})

	got, err := s.WorldPosition(b)
	require.NoError(t, err)
	assert.Equal(t, linear.P2(11, 2), got)

	require.NoError(t, s.Remove(a))
	_, err = s.WorldPosition(b)
	assert.ErrorIs(t, err, ErrStaleHandle)
}

func TestItems(t *testing.T) {
	s := New("world")
	group := mustAdd(t, s, s.Root(), Node{Name: "group", Position: linear.P2(100, 0)})
	mustAdd(t, s, group, Node{
		Name:     "tri",
		Position: linear.P2(0, 50),
		Shape:    render.NewTriangleShape(linear.P2(0, 0), linear.P2(10, 0), linear.P2(0, 10)),
		Color:    render.ColorRed,
		Absolute: true,
	})
	hidden := mustAdd(t, s, s.Root(), Node{Name: "hidden", Hidden: true})
	mustAdd(t, s, hidden, Node{
		Name:  "under hidden",
		Shape: render.NewRectShape(linear.P2(0, 1), 1, 1),
	})

	items := s.Items()
	require.Len(t, items, 1)
	assert.Equal(t, render.ColorRed, items[0].Color)
	assert.True(t, items[0].Absolute)
	assert.Equal(t, []linear.Pos2D{
		linear.P2(100, 50), linear.P2(110, 50), linear.P2(100, 60),
	}, items[0].Shape.Points())
}

func TestLerpTranslate(t *testing.T) {
	s := New("world")
	h := mustAdd(t, s, s.Root(), Node{Name: "mover"})
	n, _ := s.Get(h)

	require.NoError(t, n.LerpTranslate(linear.P2(10, 20), 1, nil))
	assert.True(t, n.Moving())
	assert.Equal(t, linear.Zero2(), n.Position)

	s.Tick(0.5)
	assert.Equal(t, linear.P2(5, 10), n.Position)

	s.Tick(0.5)
	assert.Equal(t, linear.P2(10, 20), n.Position)
	assert.False(t, n.Moving())

	s.Tick(1)
	assert.Equal(t, linear.P2(10, 20), n.Position, "idle node must not move")
}

func TestLerpTransform(t *testing.T) {
	n := &Node{Shape: render.NewTriangleShape(linear.P2(0, 0), linear.P2(4, 0), linear.P2(0, 4))}
	target := []linear.Pos2D{linear.P2(0, 0), linear.P2(8, 0), linear.P2(0, 8)}

	require.NoError(t, n.LerpTransform(target, 2, nil))
	require.NoError(t, n.Tick(1))
	assert.Equal(t, []linear.Pos2D{linear.P2(0, 0), linear.P2(6, 0), linear.P2(0, 6)}, n.Shape.Points())

	require.NoError(t, n.Tick(5))
	assert.Equal(t, target, n.Shape.Points())
	assert.False(t, n.Moving())
}

func TestLerpTransformRect(t *testing.T) {
	n := &Node{Shape: render.NewRectShape(linear.P2(0, 2), 2, 2)}
	target := []linear.Pos2D{linear.P2(0, 4), linear.P2(4, 0)}

	require.NoError(t, n.LerpTransform(target, 1, nil))
	require.NoError(t, n.Tick(1))
	assert.Equal(t, render.NewRect(linear.P2(0, 4), 4, 4), n.Shape.Rect)
}

func TestLerpTransformPointCount(t *testing.T) {
	n := &Node{Shape: render.NewTriangleShape(linear.P2(0, 0), linear.P2(1, 0), linear.P2(0, 1))}
	err := n.LerpTransform(make([]linear.Pos2D, 2), 1, nil)

	var pe *render.InvalidPointCountError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 3, pe.Want)
	assert.False(t, n.Moving())
}
