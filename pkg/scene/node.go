package scene

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/tanema/gween/ease"

	"github.com/tepi-engine/tepi/pkg/linear"
	"github.com/tepi-engine/tepi/pkg/models"
	"github.com/tepi-engine/tepi/pkg/render"
)

// Node is an entity in a Scene. Position is relative to the parent and
// Shape is relative to Position.
type Node struct {
	ID       uuid.UUID
	Name     string
	Position linear.Pos2D
	Shape    render.Shape
	Color    render.Color
	Absolute bool // draw through the camera rather than in normalized space
	Hidden   bool // hides the node and its subtree
	Material models.Material

	parent   Handle
	children []Handle
	move     Interpolator
	morph    Interpolator
}

// Moving reports whether a translate or transform is in progress.
func (n *Node) Moving() bool {
	return n.move.State() == Interpolating || n.morph.State() == Interpolating
}

// LerpTranslate moves the node's position to `to` over duration seconds.
func (n *Node) LerpTranslate(to linear.Pos2D, duration float64, fn ease.TweenFunc) error {
	if err := n.move.Start([]linear.Pos2D{n.Position}, []linear.Pos2D{to}, duration, fn); err != nil {
		return err
	}
	n.Position = n.move.Value()[0]
	return nil
}

// LerpTransform re-points the node's shape gradually. points must be
// valid for Shape.Transform.
func (n *Node) LerpTransform(points []linear.Pos2D, duration float64, fn ease.TweenFunc) error {
	probe := n.Shape
	if err := probe.Transform(points); err != nil {
		return err
	}
	if err := n.morph.Start(n.Shape.Points(), points, duration, fn); err != nil {
		return err
	}
	return n.Shape.Transform(n.morph.Value())
}

// Tick advances any interpolation by dt seconds.
func (n *Node) Tick(dt float64) error {
	if n.move.State() == Interpolating {
		n.move.Tick(dt)
		n.Position = n.move.Value()[0]
	}
	if n.morph.State() == Interpolating {
		n.morph.Tick(dt)
		if err := n.Shape.Transform(n.morph.Value()); err != nil {
			n.morph.Cancel()
			return fmt.Errorf("node %q: %w", n.Name, err)
		}
	}
	return nil
}

// Parent returns the handle of the node's parent. The root has none.
func (n *Node) Parent() Handle {
	return n.parent
}
