// Package quadtree implements an unbounded, sparse point quadtree keyed by
// integer grid cells.
//
// A tree starts as a single bucket. Once a bucket holds RestructureThreshold
// items it becomes a branch whose center is the centroid of those items. The
// center is frozen from then on, so quadrant boundaries depend on the data
// seen at conversion time and no bounding box is ever declared: a point far
// outside every existing subtree simply lands in an empty quadrant and starts
// a new bucket there.
//
// Tree nodes live in an arena and refer to their children by index, which
// keeps subdivision free of dangling pointers while the arena grows.
package quadtree

import (
	"fmt"
	"iter"

	"electron-architect/internal/core"
)

// RestructureThreshold is the bucket size that triggers conversion to a branch.
const RestructureThreshold = 4

// noChild marks an empty quadrant. The root lives at index 0 and is never
// anybody's child, so 0 is free to mean "absent".
const noChild = 0

type treeNode[T core.Positioned] struct {
	branch bool

	// bucket state
	items []T

	// branch state; children are ordered rows then columns
	center   core.Coord
	children [4]int
}

// Tree maps items to unique grid cells. The zero value is an empty tree.
//
// A Tree is not safe for concurrent use. Items yielded by All must not be
// inserted while the traversal is running.
type Tree[T core.Positioned] struct {
	nodes        []treeNode[T]
	size         int
	subdivisions int
}

// New returns an empty tree.
func New[T core.Positioned]() *Tree[T] {
	t := &Tree[T]{}
	t.init()
	return t
}

func (t *Tree[T]) init() {
	if len(t.nodes) == 0 {
		t.nodes = append(t.nodes, treeNode[T]{})
	}
}

// Len returns the number of stored items.
func (t *Tree[T]) Len() int { return t.size }

// Quadrant returns the child slot an item at p belongs to under a branch
// centered at center. Ties on either axis go to the "center >= p" side.
func Quadrant(center, p core.Coord) int {
	q := 0
	if center.Y >= p.Y {
		q += 2
	}
	if center.X >= p.X {
		q++
	}
	return q
}

// Insert stores item at its position. If another item already occupies that
// position it is replaced and returned with replaced set to true.
func (t *Tree[T]) Insert(item T) (prev T, replaced bool) {
	t.init()
	prev, replaced = t.insertFrom(0, item)
	if !replaced {
		t.size++
	}
	return prev, replaced
}

func (t *Tree[T]) insertFrom(idx int, item T) (T, bool) {
	pos := item.Position()
	for t.node(idx).branch {
		q := Quadrant(t.nodes[idx].center, pos)
		child := t.nodes[idx].children[q]
		if child == noChild {
			child = t.alloc()
			t.nodes[idx].children[q] = child
		}
		idx = child
	}
	return t.insertIntoBucket(idx, item)
}

func (t *Tree[T]) insertIntoBucket(idx int, item T) (T, bool) {
	var zero T
	pos := item.Position()
	n := t.node(idx)
	for i := range n.items {
		if n.items[i].Position() == pos {
			prev := n.items[i]
			n.items[i] = item
			return prev, true
		}
	}
	n.items = append(n.items, item)
	if len(n.items) >= RestructureThreshold {
		t.subdivide(idx)
	}
	return zero, false
}

// subdivide converts the bucket at idx into a branch centered on the floored
// centroid of its items and redistributes them. Flooring guarantees that
// items which differ on an axis end up on both sides of the center on that
// axis, so every conversion makes progress.
func (t *Tree[T]) subdivide(idx int) {
	n := t.node(idx)
	if n.branch {
		panic(fmt.Sprintf("quadtree: subdivide called on branch %d centered at %v", idx, n.center))
	}
	items := n.items
	if len(items) == 0 {
		panic(fmt.Sprintf("quadtree: subdivide called on empty bucket %d", idx))
	}

	var sx, sy int64
	for _, it := range items {
		p := it.Position()
		sx += int64(p.X)
		sy += int64(p.Y)
	}
	count := int64(len(items))

	n.branch = true
	n.items = nil
	n.center = core.Coord{X: int32(floorDiv(sx, count)), Y: int32(floorDiv(sy, count))}
	t.subdivisions++
	instrumentSubdivision()

	for _, it := range items {
		if _, replaced := t.insertFrom(idx, it); replaced {
			panic(fmt.Sprintf("quadtree: duplicate position %v in bucket %d", it.Position(), idx))
		}
	}
}

func (t *Tree[T]) alloc() int {
	t.nodes = append(t.nodes, treeNode[T]{})
	return len(t.nodes) - 1
}

func (t *Tree[T]) node(idx int) *treeNode[T] {
	if idx < 0 || idx >= len(t.nodes) {
		panic(fmt.Sprintf("quadtree: node index %d out of range [0, %d)", idx, len(t.nodes)))
	}
	return &t.nodes[idx]
}

// Lookup returns the item stored at pos.
func (t *Tree[T]) Lookup(pos core.Coord) (T, bool) {
	var zero T
	idx, ok := t.bucketFor(pos, nil)
	if !ok {
		return zero, false
	}
	for _, it := range t.nodes[idx].items {
		if it.Position() == pos {
			return it, true
		}
	}
	return zero, false
}

// Path returns the quadrant indices visited while descending towards pos,
// ending at the bucket that holds or would hold it. The path stops early when
// it reaches an empty quadrant.
func (t *Tree[T]) Path(pos core.Coord) []int {
	var path []int
	t.bucketFor(pos, &path)
	return path
}

func (t *Tree[T]) bucketFor(pos core.Coord, path *[]int) (int, bool) {
	if len(t.nodes) == 0 {
		return 0, false
	}
	idx := 0
	for {
		n := t.node(idx)
		if !n.branch {
			return idx, true
		}
		q := Quadrant(n.center, pos)
		if path != nil {
			*path = append(*path, q)
		}
		if n.children[q] == noChild {
			return 0, false
		}
		idx = n.children[q]
	}
}

// All returns a pre-order traversal over every stored item, visiting the
// quadrants of each branch in order 0..3. Each call starts a fresh traversal.
func (t *Tree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if len(t.nodes) == 0 {
			return
		}
		stack := []int{0}
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			n := t.node(idx)
			if !n.branch {
				for _, it := range n.items {
					if !yield(it) {
						return
					}
				}
				continue
			}
			for q := len(n.children) - 1; q >= 0; q-- {
				if c := n.children[q]; c != noChild {
					stack = append(stack, c)
				}
			}
		}
	}
}

// BranchInfo describes one branch for debugging and visualization.
type BranchInfo struct {
	Center core.Coord
	Depth  int
}

// Branches yields every branch center with its depth, root first.
func (t *Tree[T]) Branches() iter.Seq[BranchInfo] {
	return func(yield func(BranchInfo) bool) {
		if len(t.nodes) == 0 {
			return
		}
		type frame struct{ idx, depth int }
		stack := []frame{{0, 0}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			n := t.node(f.idx)
			if !n.branch {
				continue
			}
			if !yield(BranchInfo{Center: n.center, Depth: f.depth}) {
				return
			}
			for q := len(n.children) - 1; q >= 0; q-- {
				if c := n.children[q]; c != noChild {
					stack = append(stack, frame{c, f.depth + 1})
				}
			}
		}
	}
}

// Stats summarizes the shape of a tree.
type Stats struct {
	Items        int
	Buckets      int
	Branches     int
	MaxDepth     int
	Subdivisions int
}

// Stats walks the tree and reports its shape.
func (t *Tree[T]) Stats() Stats {
	s := Stats{Items: t.size, Subdivisions: t.subdivisions}
	if len(t.nodes) == 0 {
		return s
	}
	type frame struct{ idx, depth int }
	stack := []frame{{0, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.depth > s.MaxDepth {
			s.MaxDepth = f.depth
		}
		n := t.node(f.idx)
		if !n.branch {
			s.Buckets++
			continue
		}
		s.Branches++
		for _, c := range n.children {
			if c != noChild {
				stack = append(stack, frame{c, f.depth + 1})
			}
		}
	}
	return s
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
