// Package scene holds entities in a flat arena. Parent and child links are
// handles into the arena, so the hierarchy never owns itself.
package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tepi-engine/tepi/pkg/linear"
	"github.com/tepi-engine/tepi/pkg/render"
)

var (
	// ErrStaleHandle is returned for a handle whose node was removed.
	ErrStaleHandle = errors.New("scene: stale or invalid handle")
	// ErrRoot is returned when removing or reparenting the root.
	ErrRoot = errors.New("scene: operation not allowed on root")
	// ErrCycle is returned when a reparent would make a node its own ancestor.
	ErrCycle = errors.New("scene: reparent would create a cycle")
)

// Handle addresses a node. The zero Handle is never valid. A handle goes
// stale when its node is removed, even if the slot is reused.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	return fmt.Sprintf("node#%d.%d", h.index, h.gen)
}

type slot struct {
	node Node
	gen  uint32
	live bool
}

// Scene is a tree of nodes stored in one slice.
type Scene struct {
	slots []slot
	free  []uint32
	root  Handle
	count int
	log   *zap.Logger
}

// Option configures a Scene.
type Option func(*Scene)

// WithLogger sets the logger used for per-node tick failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Scene) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a scene with an empty root node called name.
func New(name string, opts ...Option) *Scene {
	s := &Scene{log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.root = s.alloc(Node{ID: uuid.New(), Name: name})
	return s
}

// Root returns the root handle.
func (s *Scene) Root() Handle {
	return s.root
}

// Len returns the number of live nodes, root included.
func (s *Scene) Len() int {
	return s.count
}

func (s *Scene) alloc(n Node) Handle {
	var idx uint32
	if k := len(s.free); k > 0 {
		idx = s.free[k-1]
		s.free = s.free[:k-1]
	} else {
		idx = uint32(len(s.slots))
		s.slots = append(s.slots, slot{})
	}
	sl := &s.slots[idx]
	sl.gen++
	sl.live = true
	sl.node = n
	s.count++
	return Handle{index: idx, gen: sl.gen}
}

func (s *Scene) slot(h Handle) (*slot, bool) {
	if h.IsZero() || int(h.index) >= len(s.slots) {
		return nil, false
	}
	sl := &s.slots[h.index]
	if !sl.live || sl.gen != h.gen {
		return nil, false
	}
	return sl, true
}

// Contains reports whether h refers to a live node.
func (s *Scene) Contains(h Handle) bool {
	_, ok := s.slot(h)
	return ok
}

// Add stores n under parent and returns its handle. A zero ID is replaced
// with a fresh one.
func (s *Scene) Add(parent Handle, n Node) (Handle, error) {
	if !s.Contains(parent) {
		return Handle{}, fmt.Errorf("add %q under %s: %w", n.Name, parent, ErrStaleHandle)
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.parent = parent
	n.children = nil
	h := s.alloc(n)

	// alloc may have grown the slice; look the parent up again.
	p, _ := s.slot(parent)
	p.node.children = append(p.node.children, h)
	return h, nil
}

// Get returns the node for h. The pointer is valid until the next Add.
func (s *Scene) Get(h Handle) (*Node, bool) {
	sl, ok := s.slot(h)
	if !ok {
		return nil, false
	}
	return &sl.node, true
}

// Parent returns h's parent. The root has no parent.
func (s *Scene) Parent(h Handle) (Handle, bool) {
	sl, ok := s.slot(h)
	if !ok || sl.node.parent.IsZero() {
		return Handle{}, false
	}
	return sl.node.parent, true
}

// Children returns a copy of h's child handles in insertion order.
func (s *Scene) Children(h Handle) []Handle {
	sl, ok := s.slot(h)
	if !ok {
		return nil
	}
	return slices.Clone(sl.node.children)
}

// Remove deletes h and its whole subtree.
func (s *Scene) Remove(h Handle) error {
	sl, ok := s.slot(h)
	if !ok {
		return fmt.Errorf("remove %s: %w", h, ErrStaleHandle)
	}
	if h == s.root {
		return fmt.Errorf("remove %s: %w", h, ErrRoot)
	}

	if p, ok := s.slot(sl.node.parent); ok {
		p.node.children = slices.DeleteFunc(p.node.children, func(c Handle) bool { return c == h })
	}

	stack := []Handle{h}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		csl, ok := s.slot(cur)
		if !ok {
			continue
		}
		stack = append(stack, csl.node.children...)
		csl.node = Node{}
		csl.live = false
		s.free = append(s.free, cur.index)
		s.count--
	}
	return nil
}

// Reparent moves h, with its subtree, under newParent.
func (s *Scene) Reparent(h, newParent Handle) error {
	sl, ok := s.slot(h)
	if !ok || !s.Contains(newParent) {
		return fmt.Errorf("reparent %s under %s: %w", h, newParent, ErrStaleHandle)
	}
	if h == s.root {
		return fmt.Errorf("reparent %s: %w", h, ErrRoot)
	}
	for a := newParent; !a.IsZero(); {
		if a == h {
			return fmt.Errorf("reparent %s under %s: %w", h, newParent, ErrCycle)
		}
		asl, _ := s.slot(a)
		a = asl.node.parent
	}

	if old, ok := s.slot(sl.node.parent); ok {
		old.node.children = slices.DeleteFunc(old.node.children, func(c Handle) bool { return c == h })
	}
	sl.node.parent = newParent
	np, _ := s.slot(newParent)
	np.node.children = append(np.node.children, h)
	return nil
}

// Walk visits nodes depth-first from the root, parents before children
// and siblings in insertion order. Returning false from fn skips the
// node's subtree.
func (s *Scene) Walk(fn func(h Handle, n *Node, depth int) bool) {
	type frame struct {
		h     Handle
		depth int
	}
	stack := []frame{{s.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sl, ok := s.slot(f.h)
		if !ok {
			continue
		}
		if !fn(f.h, &sl.node, f.depth) {
			continue
		}
		kids := sl.node.children
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, frame{kids[i], f.depth + 1})
		}
	}
}

// WorldPosition sums the positions of h and all its ancestors.
func (s *Scene) WorldPosition(h Handle) (linear.Pos2D, error) {
	if !s.Contains(h) {
		return linear.Pos2D{}, fmt.Errorf("world position of %s: %w", h, ErrStaleHandle)
	}
	var world linear.Pos2D
	for cur := h; !cur.IsZero(); {
		sl, _ := s.slot(cur)
		world.Translate(sl.node.Position.X, sl.node.Position.Y)
		cur = sl.node.parent
	}
	return world, nil
}

// Tick advances every node's interpolations by dt seconds. A node whose
// transform fails is logged and stops interpolating; the others continue.
func (s *Scene) Tick(dt float64) {
	for i := range s.slots {
		sl := &s.slots[i]
		if !sl.live || !sl.node.Moving() {
			continue
		}
		if err := sl.node.Tick(dt); err != nil {
			s.log.Debug("node tick failed", zap.Error(err))
		}
	}
}

// Items returns the visible shapes in walk order, translated to their
// world positions, ready for a render.Rasterizer.
func (s *Scene) Items() []render.Item {
	var items []render.Item
	var origin []linear.Pos2D // world position per depth
	s.Walk(func(_ Handle, n *Node, depth int) bool {
		if n.Hidden {
			return false
		}
		world := n.Position
		if depth > 0 {
			world = origin[depth-1].Add(linear.V2(n.Position.X, n.Position.Y))
		}
		origin = append(origin[:depth], world)

		if n.Shape.Valid() {
			items = append(items, render.Item{
				Shape:    n.Shape.Translated(linear.V2(world.X, world.Y)),
				Color:    n.Color,
				Absolute: n.Absolute,
			})
		}
		return true
	})
	return items
}
