package geometry

import (
	"runtime"

	"github.com/Arideno/graphics-engine/pkg/core"
	"github.com/Arideno/graphics-engine/pkg/log"
	"golang.org/x/sync/semaphore"
)

var logger = log.New("bvh")

// BVHConfig controls how the hierarchy is built
type BVHConfig struct {
	MaxDepth    int // Nodes at this depth always become leaves
	LeafSize    int // Groups of this many shapes or fewer become leaves
	Parallelism int // Upper bound on concurrent subtree builds
}

// DefaultBVHConfig returns the build settings used when none are given
func DefaultBVHConfig() BVHConfig {
	return BVHConfig{
		MaxDepth:    16,
		LeafSize:    8,
		Parallelism: runtime.GOMAXPROCS(0),
	}
}

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Leaf nodes have nil children and own Shapes; branch nodes have both children.
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Shapes      []Shape // Shapes for leaf nodes (nil for branch nodes)
}

// IsLeaf reports whether the node stores shapes directly
func (n *BVHNode) IsLeaf() bool {
	return n.Left == nil
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	Nodes     int // Total number of nodes
	Leaves    int // Number of leaf nodes
	Depth     int // Depth of the deepest leaf (root is 0)
	ShapeRefs int // Shape references across all leaves; planes count once per leaf
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It is read-only after construction and safe for concurrent queries.
type BVH struct {
	Root  *BVHNode
	stats BVHStats
}

// NewBVH constructs a BVH from a slice of shapes. The input slice is not modified.
func NewBVH(shapes []Shape, config BVHConfig) *BVH {
	shapesCopy := make([]Shape, len(shapes))
	copy(shapesCopy, shapes)

	if config.MaxDepth < 0 {
		config.MaxDepth = 0
	}
	if config.LeafSize < 1 {
		config.LeafSize = 1
	}

	// The calling goroutine is one of the workers
	extra := int64(config.Parallelism - 1)
	if extra < 0 {
		extra = 0
	}

	b := &bvhBuilder{
		config: config,
		sem:    semaphore.NewWeighted(extra),
	}

	bvh := &BVH{Root: b.build(shapesCopy, 0)}
	bvh.stats = collectStats(bvh.Root, 0)

	logger.Debugf("built BVH over %d shapes: %d nodes, %d leaves, depth %d",
		len(shapes), bvh.stats.Nodes, bvh.stats.Leaves, bvh.stats.Depth)

	return bvh
}

// Stats returns node and leaf counts gathered at build time
func (bvh *BVH) Stats() BVHStats {
	return bvh.stats
}

type bvhBuilder struct {
	config BVHConfig
	sem    *semaphore.Weighted
}

// build recursively splits shapes at the midpoint of the longest axis of
// the bounded shapes' box. Unbounded shapes go to both children.
func (b *bvhBuilder) build(shapes []Shape, depth int) *BVHNode {
	if depth >= b.config.MaxDepth || len(shapes) <= b.config.LeafSize {
		return newLeaf(shapes)
	}

	splitBox := core.EmptyAABB()
	unboundedBox := core.EmptyAABB()
	for _, shape := range shapes {
		box := shape.BoundingBox()
		if box.IsFull() {
			unboundedBox = box
			continue
		}
		splitBox = splitBox.Merge(box)
	}

	// Only unbounded shapes left: splitting would duplicate them forever
	if splitBox.IsEmpty() {
		return newLeaf(shapes)
	}

	axis := splitBox.LongestAxis()
	split := splitBox.Center().Axis(axis)

	var leftShapes, rightShapes []Shape
	for _, shape := range shapes {
		box := shape.BoundingBox()
		switch {
		case box.IsFull():
			leftShapes = append(leftShapes, shape)
			rightShapes = append(rightShapes, shape)
		case box.Min.Axis(axis) <= split:
			leftShapes = append(leftShapes, shape)
		default:
			rightShapes = append(rightShapes, shape)
		}
	}

	var left, right *BVHNode
	if b.sem.TryAcquire(1) {
		done := make(chan struct{})
		go func() {
			defer close(done)
			defer b.sem.Release(1)
			left = b.build(leftShapes, depth+1)
		}()
		right = b.build(rightShapes, depth+1)
		<-done
	} else {
		left = b.build(leftShapes, depth+1)
		right = b.build(rightShapes, depth+1)
	}

	return &BVHNode{
		BoundingBox: splitBox.Merge(unboundedBox),
		Left:        left,
		Right:       right,
	}
}

func newLeaf(shapes []Shape) *BVHNode {
	box := core.EmptyAABB()
	for _, shape := range shapes {
		box = box.Merge(shape.BoundingBox())
	}
	if shapes == nil {
		shapes = []Shape{}
	}
	return &BVHNode{
		BoundingBox: box,
		Shapes:      shapes,
	}
}

func collectStats(node *BVHNode, depth int) BVHStats {
	if node.IsLeaf() {
		return BVHStats{Nodes: 1, Leaves: 1, Depth: depth, ShapeRefs: len(node.Shapes)}
	}
	left := collectStats(node.Left, depth+1)
	right := collectStats(node.Right, depth+1)
	return BVHStats{
		Nodes:     1 + left.Nodes + right.Nodes,
		Leaves:    left.Leaves + right.Leaves,
		Depth:     max(left.Depth, right.Depth),
		ShapeRefs: left.ShapeRefs + right.ShapeRefs,
	}
}

// Hit returns the nearest intersection of the ray with any shape in the BVH
func (bvh *BVH) Hit(ray core.Ray) (*Intersection, bool) {
	if bvh.Root == nil {
		return nil, false
	}
	return hitNode(bvh.Root, ray)
}

// hitNode tests a subtree. Leaf boxes are not tested; the leaf scan is exact.
func hitNode(node *BVHNode, ray core.Ray) (*Intersection, bool) {
	if node.IsLeaf() {
		return NearestHit(node.Shapes, ray)
	}

	if !node.BoundingBox.Hit(ray) {
		return nil, false
	}

	left, leftHit := hitNode(node.Left, ray)
	right, rightHit := hitNode(node.Right, ray)

	switch {
	case leftHit && rightHit:
		// Equal distances resolve to the right subtree
		if left.T < right.T {
			return left, true
		}
		return right, true
	case leftHit:
		return left, true
	case rightHit:
		return right, true
	default:
		return nil, false
	}
}
