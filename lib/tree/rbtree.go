package tree

import (
	"iter"

	"github.com/benz9527/xtree/lib/infra"
)

var _ RBTree[int, int] = (*rbTree[int, int])(nil)

// rbTree keeps its nodes in an Arena. The sentinel (header) slot anchors
// the tree:
//
//	header.parent -> root (absent if empty)
//	header.left   -> minimum (header if empty)
//	header.right  -> maximum (header if empty)
//	root.parent   -> header
//
// The header is red and never holds a value, it is the end position of
// every iteration.
type rbTree[K, V any] struct {
	arena     *Arena[V]
	header    nodeRef
	count     int64
	keyOf     KeyOf[K, V]
	less      LessFunc[K]
	isDesc    bool
	arenaOpts []ArenaOption[V]
	stats     *rbTreeStats
}

func (tree *rbTree[K, V]) Len() int64 {
	return tree.count
}

func (tree *rbTree[K, V]) Empty() bool {
	return tree.count == 0
}

// MaxSize is the number of values the tree could hold if nothing else
// allocated from its arena.
func (tree *rbTree[K, V]) MaxSize() int64 {
	return tree.count + tree.arena.Available()
}

func (tree *rbTree[K, V]) Root() RBNode[K, V] {
	return tree.view(tree.root())
}

func (tree *rbTree[K, V]) Comparator() LessFunc[K] {
	return tree.less
}

func (tree *rbTree[K, V]) KeyOf() KeyOf[K, V] {
	return tree.keyOf
}

// References:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All absent (nil) children are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   nil children goes through the same number of black nodes. (black-violation)
// p5. The root is black.

/*
		 |                         |
		 X                         Y
		/ \     leftRotate(X)     / \
	   a   Y    ============>    X   c
		  / \                   / \
		 b   c                 a   b
*/
func (tree *rbTree[K, V]) leftRotate(x nodeRef) {
	y := tree.node(x).right
	if x == nilRef || y == nilRef {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] left rotate node x is nil or x.right is nil")
	}

	xn, yn := tree.node(x), tree.node(y)
	xn.right = yn.left
	if yn.left != nilRef {
		tree.node(yn.left).parent = x
	}

	p := xn.parent
	yn.parent = p
	if p == tree.header {
		tree.node(p).parent = y
	} else if pn := tree.node(p); x == pn.left {
		pn.left = y
	} else {
		pn.right = y
	}

	yn.left = x
	xn.parent = y
	tree.stats.IncreaseRotationCount()
}

/*
			 |                         |
			 X                         Y
			/ \     rightRotate(X)    / \
	       Y   c    ============>    a   X
		  / \                           / \
		 a   b                         b   c
*/
func (tree *rbTree[K, V]) rightRotate(x nodeRef) {
	y := tree.node(x).left
	if x == nilRef || y == nilRef {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] right rotate node x is nil or x.left is nil")
	}

	xn, yn := tree.node(x), tree.node(y)
	xn.left = yn.right
	if yn.right != nilRef {
		tree.node(yn.right).parent = x
	}

	p := xn.parent
	yn.parent = p
	if p == tree.header {
		tree.node(p).parent = y
	} else if pn := tree.node(p); x == pn.right {
		pn.right = y
	} else {
		pn.left = y
	}

	yn.right = x
	xn.parent = y
	tree.stats.IncreaseRotationCount()
}

// descend finds the attachment point of key. Ties go right, so equal keys
// are kept in insertion order.
func (tree *rbTree[K, V]) descend(key K) (parent nodeRef, toLeft bool) {
	parent, toLeft = tree.header, true
	for x := tree.root(); x != nilRef; {
		parent = x
		if toLeft = tree.less(key, tree.key(x)); toLeft {
			x = tree.node(x).left
		} else {
			x = tree.node(x).right
		}
	}
	return parent, toLeft
}

// insertAt links a new node below parent. The node is acquired before any
// link changes, a failed allocation leaves the tree untouched.
func (tree *rbTree[K, V]) insertAt(parent nodeRef, toLeft bool, val V) (nodeRef, error) {
	z, err := tree.createNode(val)
	if err != nil {
		return nilRef, err
	}

	h := tree.node(tree.header)
	tree.node(z).parent = parent
	if /* i1 */ parent == tree.header {
		h.parent, h.left, h.right = z, z, z
	} else if toLeft {
		tree.node(parent).left = z
		if parent == h.left {
			h.left = z
		}
	} else {
		tree.node(parent).right = z
		if parent == h.right {
			h.right = z
		}
	}

	tree.count++
	tree.stats.IncreaseInsertCount()
	tree.insertRebalance(z)
	return z, nil
}

// InsertEqual always adds a new node. Values with equal keys are read back
// in the order they were inserted.
func (tree *rbTree[K, V]) InsertEqual(val V) (Iterator[K, V], error) {
	parent, toLeft := tree.descend(tree.keyOf(val))
	z, err := tree.insertAt(parent, toLeft, val)
	if err != nil {
		return tree.End(), err
	}
	return tree.iterator(z), nil
}

// InsertUnique adds a new node only if no value with an equal key exists.
// Otherwise, it returns the existing one and false.
func (tree *rbTree[K, V]) InsertUnique(val V) (Iterator[K, V], bool, error) {
	key := tree.keyOf(val)
	parent, toLeft := tree.descend(key)

	// The only candidate holding an equal key is the pred of the
	// attachment point.
	j := parent
	if toLeft {
		if parent == tree.leftmost() {
			z, err := tree.insertAt(parent, toLeft, val)
			if err != nil {
				return tree.End(), false, err
			}
			return tree.iterator(z), true, nil
		}
		j = tree.pred(j)
	}

	if tree.less(tree.key(j), key) {
		z, err := tree.insertAt(parent, toLeft, val)
		if err != nil {
			return tree.End(), false, err
		}
		return tree.iterator(z), true, nil
	}
	return tree.iterator(j), false, nil
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or nil).

im1: X is the root, or X's parent P is black. Nothing to fix.

im2 (case A): Both the parent P and the uncle U are red, grandpa G is black.
Repaint P and U into black and G into red. G may now be red-violation
with its own parent, continue from G.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im3 (case B): The uncle U is black and X is an inner child (opposite
direction to P). Rotate P to the other side, then P plays X in im4.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

im4 (case C): The uncle U is black and X is an outer child. Repaint P
into black and G into red, then rotate G away from X.

	    [G]                 [P]
	    / \    rotate(G)    / \
	  <P> [U]  ========>  <X> <G>
	  /                         \
	<X>                         [U]
*/
func (tree *rbTree[K, V]) insertRebalance(x nodeRef) {
	steps := int64(0)
	for x != tree.root() && tree.isRed(tree.node(x).parent) {
		steps++
		p := tree.node(x).parent
		g := tree.node(p).parent
		if p == tree.node(g).left {
			u := tree.node(g).right
			if /* im2 */ tree.isRed(u) {
				tree.node(p).color = Black
				tree.node(u).color = Black
				tree.node(g).color = Red
				x = g
				continue
			}
			if /* im3 */ x == tree.node(p).right {
				x = p
				tree.leftRotate(x)
				p = tree.node(x).parent
			}
			/* im4 */
			tree.node(p).color = Black
			tree.node(g).color = Red
			tree.rightRotate(g)
		} else {
			u := tree.node(g).left
			if /* im2 */ tree.isRed(u) {
				tree.node(p).color = Black
				tree.node(u).color = Black
				tree.node(g).color = Red
				x = g
				continue
			}
			if /* im3 */ x == tree.node(p).left {
				x = p
				tree.rightRotate(x)
				p = tree.node(x).parent
			}
			/* im4 */
			tree.node(p).color = Black
			tree.node(g).color = Red
			tree.leftRotate(g)
		}
	}
	tree.node(tree.root()).color = Black
	tree.stats.RecordRebalanceSteps(steps)
}

/*
r1: The target Z has two children. Copy the value of its succ S into Z and
remove S instead. S is the leftmost node of Z's right subtree, so it has
no left child.

	  |                    |
	  Z                    S
	 / \                  / \
	L  ..   copy(S, Z)   L  ..
		|   =========>       |
		P                    P
	   / \                  / \
	  S  ..                S' ..   (S' is removed)

r2: The target Y has at most one child C. Link C (or nil) to Y's parent.

r3: Y was red. Nothing else to fix.

r4: Y was black. If C is red, repaint C into black. Otherwise C (possibly
the nil link) is "double black" and must be rebalanced.
*/
func (tree *rbTree[K, V]) removeNode(y nodeRef) {
	yn := tree.node(y)
	child := yn.left
	if child == nilRef {
		child = yn.right
	}
	parent := yn.parent

	if child != nilRef {
		tree.node(child).parent = parent
	}
	h := tree.node(tree.header)
	if parent == tree.header {
		h.parent = child
	} else if pn := tree.node(parent); pn.left == y {
		pn.left = child
	} else {
		pn.right = child
	}

	if h.left == y {
		if child != nilRef {
			h.left = tree.minimum(child)
		} else {
			h.left = parent // header if the tree is empty now
		}
	}
	if h.right == y {
		if child != nilRef {
			h.right = tree.maximum(child)
		} else {
			h.right = parent
		}
	}

	if /* r4 */ yn.color == Black {
		tree.removeRebalance(child, parent)
	}
	tree.destroyNode(y)
	tree.count--
	tree.stats.IncreaseEraseCount()
}

/*
<X> is a RED node.
[X] is a BLACK node (or nil).
{X} is either a RED node or a BLACK node.

X is double black, P is its parent, S is its sibling.
Sc is S's child on X's side (near), Sd is S's child on the other side (far).

rm1: S is red, so P, Sc and Sd are black. Repaint S into black and P into
red, rotate P toward X. X gets the black Sc as its new sibling.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd]  =====>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm2: S, Sc and Sd are black. Repaint S into red, the missing black moves
up to P. If P is red it absorbs it, otherwise continue from P.

	  {P}             {P}
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: S is black, Sc is red and Sd is black. Rotate S away from X, repaint
Sc into black and S into red, then Sc is the new sibling for rm4.

	  {P}                   {P}
	  / \    r-rotate(S)    / \
	[X] [S]  ==========>  [X] [Sc]
	    / \                     \
	  <Sc> [Sd]                 <S>
	                              \
	                              [Sd]

rm4: S is black and Sd is red. S takes P's color, P and Sd become black,
rotate P toward X. The missing black is restored.

	  {P}                   {S}
	  / \    l-rotate(P)    / \
	[X] [S]  ==========>  [P] [Sd]
	    / \               / \
	 [Sc] <Sd>          [X] [Sc]
*/
func (tree *rbTree[K, V]) removeRebalance(x, parent nodeRef) {
	steps := int64(0)
	for x != tree.root() && tree.isBlack(x) {
		steps++
		if x == tree.node(parent).left {
			s := tree.node(parent).right
			if /* rm1 */ tree.isRed(s) {
				tree.node(s).color = Black
				tree.node(parent).color = Red
				tree.leftRotate(parent)
				s = tree.node(parent).right
			}
			if /* rm2 */ tree.isBlack(tree.node(s).left) && tree.isBlack(tree.node(s).right) {
				tree.node(s).color = Red
				x = parent
				parent = tree.node(x).parent
				continue
			}
			if /* rm3 */ tree.isBlack(tree.node(s).right) {
				tree.node(tree.node(s).left).color = Black
				tree.node(s).color = Red
				tree.rightRotate(s)
				s = tree.node(parent).right
			}
			/* rm4 */
			tree.node(s).color = tree.node(parent).color
			tree.node(parent).color = Black
			if sd := tree.node(s).right; sd != nilRef {
				tree.node(sd).color = Black
			}
			tree.leftRotate(parent)
			x = tree.root()
			break
		}

		s := tree.node(parent).left
		if /* rm1 */ tree.isRed(s) {
			tree.node(s).color = Black
			tree.node(parent).color = Red
			tree.rightRotate(parent)
			s = tree.node(parent).left
		}
		if /* rm2 */ tree.isBlack(tree.node(s).right) && tree.isBlack(tree.node(s).left) {
			tree.node(s).color = Red
			x = parent
			parent = tree.node(x).parent
			continue
		}
		if /* rm3 */ tree.isBlack(tree.node(s).left) {
			tree.node(tree.node(s).right).color = Black
			tree.node(s).color = Red
			tree.leftRotate(s)
			s = tree.node(parent).left
		}
		/* rm4 */
		tree.node(s).color = tree.node(parent).color
		tree.node(parent).color = Black
		if sd := tree.node(s).left; sd != nilRef {
			tree.node(sd).color = Black
		}
		tree.rightRotate(parent)
		x = tree.root()
		break
	}
	if x != nilRef {
		tree.node(x).color = Black
	}
	tree.stats.RecordRebalanceSteps(steps)
}

// Erase removes the node of it and returns the position of its succ.
//
// A node with two children takes over its succ's value and the succ's node
// is unlinked instead, so the returned iterator is it itself in that case
// and iterators that referenced the succ node must be re-acquired.
func (tree *rbTree[K, V]) Erase(it Iterator[K, V]) (Iterator[K, V], error) {
	if !tree.owns(it) || it.ref == tree.header || tree.count <= 0 {
		return tree.End(), ErrInvalidIterator
	}

	z := it.ref
	var next nodeRef
	if zn := tree.node(z); /* r1 */ zn.left != nilRef && zn.right != nilRef {
		y := tree.minimum(zn.right)
		zn.val = tree.node(y).val
		next, z = z, y
	} else {
		next = tree.succ(z)
	}
	tree.removeNode(z)
	return tree.iterator(next), nil
}

// EraseRange removes [first, last) and returns the position of last.
func (tree *rbTree[K, V]) EraseRange(first, last Iterator[K, V]) (Iterator[K, V], error) {
	if !tree.owns(first) || !tree.owns(last) {
		return tree.End(), ErrInvalidIterator
	}
	if first.ref == tree.leftmost() && last.ref == tree.header {
		tree.Clear()
		return tree.End(), nil
	}

	// Count first, the succ node of an erased node may be relocated so the
	// node of last is not stable while erasing.
	n := int64(0)
	for aux := first; aux.ref != last.ref; n++ {
		if err := aux.Next(); err != nil {
			return first, err
		}
	}
	var err error
	for ; n > 0; n-- {
		if first, err = tree.Erase(first); err != nil {
			return first, err
		}
	}
	return first, nil
}

// EraseKey removes every value with an equivalent key, returns the number
// of removed values.
func (tree *rbTree[K, V]) EraseKey(key K) int64 {
	first, last := tree.EqualRange(key)
	n := tree.distance(first, last)
	for i := int64(0); i < n; i++ {
		if _, err := tree.Erase(tree.LowerBound(key)); err != nil {
			return i
		}
	}
	return n
}

func (tree *rbTree[K, V]) distance(first, last Iterator[K, V]) int64 {
	n := int64(0)
	for ref := first.ref; ref != last.ref && ref != tree.header; ref = tree.succ(ref) {
		n++
	}
	return n
}

func (tree *rbTree[K, V]) lowerBound(key K) nodeRef {
	y := tree.header
	for x := tree.root(); x != nilRef; {
		if !tree.less(tree.key(x), key) {
			y, x = x, tree.node(x).left
		} else {
			x = tree.node(x).right
		}
	}
	return y
}

func (tree *rbTree[K, V]) upperBound(key K) nodeRef {
	y := tree.header
	for x := tree.root(); x != nilRef; {
		if tree.less(key, tree.key(x)) {
			y, x = x, tree.node(x).left
		} else {
			x = tree.node(x).right
		}
	}
	return y
}

// Find returns a node holding key, or End. With duplicated keys it is the
// first of them in sorted order.
func (tree *rbTree[K, V]) Find(key K) Iterator[K, V] {
	y := tree.lowerBound(key)
	if y == tree.header || tree.less(key, tree.key(y)) {
		return tree.End()
	}
	return tree.iterator(y)
}

// LowerBound returns the first node whose key is not less than key.
func (tree *rbTree[K, V]) LowerBound(key K) Iterator[K, V] {
	return tree.iterator(tree.lowerBound(key))
}

// UpperBound returns the first node whose key is greater than key.
func (tree *rbTree[K, V]) UpperBound(key K) Iterator[K, V] {
	return tree.iterator(tree.upperBound(key))
}

func (tree *rbTree[K, V]) EqualRange(key K) (Iterator[K, V], Iterator[K, V]) {
	return tree.LowerBound(key), tree.UpperBound(key)
}

func (tree *rbTree[K, V]) Count(key K) int64 {
	first, last := tree.EqualRange(key)
	return tree.distance(first, last)
}

func (tree *rbTree[K, V]) Begin() Iterator[K, V] {
	return tree.iterator(tree.leftmost())
}

func (tree *rbTree[K, V]) End() Iterator[K, V] {
	return tree.iterator(tree.header)
}

func (tree *rbTree[K, V]) RBegin() ReverseIterator[K, V] {
	return ReverseIterator[K, V]{base: tree.End()}
}

func (tree *rbTree[K, V]) REnd() ReverseIterator[K, V] {
	return ReverseIterator[K, V]{base: tree.Begin()}
}

// Minimum is End if the tree is empty.
func (tree *rbTree[K, V]) Minimum() Iterator[K, V] {
	return tree.iterator(tree.leftmost())
}

// Maximum is End if the tree is empty.
func (tree *rbTree[K, V]) Maximum() Iterator[K, V] {
	return tree.iterator(tree.rightmost())
}

func (tree *rbTree[K, V]) All() iter.Seq[V] {
	return func(yield func(V) bool) {
		for ref := tree.leftmost(); ref != tree.header; ref = tree.succ(ref) {
			if !yield(tree.node(ref).val) {
				return
			}
		}
	}
}

func (tree *rbTree[K, V]) Backward() iter.Seq[V] {
	return func(yield func(V) bool) {
		for ref := tree.rightmost(); ref != tree.header; ref = tree.pred(ref) {
			if !yield(tree.node(ref).val) {
				return
			}
		}
	}
}

// Foreach walks the tree in order, the walk stops once action returns
// false.
func (tree *rbTree[K, V]) Foreach(action func(idx int64, color RBColor, val V) bool) {
	idx := int64(0)
	for ref := tree.leftmost(); ref != tree.header; ref = tree.succ(ref) {
		n := tree.node(ref)
		if !action(idx, n.color, n.val) {
			return
		}
		idx++
	}
}

// Clear releases every node back to the arena. The work stack replaces
// recursion, degenerated inputs can not overflow the goroutine stack.
func (tree *rbTree[K, V]) Clear() {
	root := tree.root()
	h := tree.node(tree.header)
	h.parent, h.left, h.right = nilRef, tree.header, tree.header
	if root == nilRef {
		return
	}

	stack := make([]nodeRef, 0, 64)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, root)
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		n := tree.node(aux)
		if n.left != nilRef {
			stack = append(stack, n.left)
		}
		if n.right != nilRef {
			stack = append(stack, n.right)
		}
		tree.destroyNode(aux)
	}
	tree.stats.RecordSize(-tree.count)
	tree.count = 0
}

// Clone deep copies the tree, shape and colors included, into a new arena
// with the same options. The clone records no stats. A clone that runs out
// of memory is released and the error returned.
func (tree *rbTree[K, V]) Clone() (RBTree[K, V], error) {
	opts := tree.arenaOpts
	if len(opts) <= 0 {
		opts = []ArenaOption[V]{WithArenaLimit[V](tree.arena.Limit())}
	}
	dst, err := newRBTree[K, V](tree.keyOf, tree.less, NewArena[V](opts...))
	if err != nil {
		return nil, err
	}
	dst.isDesc, dst.arenaOpts = tree.isDesc, tree.arenaOpts
	if tree.count == 0 {
		return dst, nil
	}

	type cloneTask struct {
		src    nodeRef
		parent nodeRef
		toLeft bool
	}
	stack := make([]cloneTask, 0, 64)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, cloneTask{src: tree.root(), parent: dst.header})
	for size := len(stack); size > 0; size = len(stack) {
		task := stack[size-1]
		stack = stack[:size-1]

		src := tree.node(task.src)
		ref, err := dst.arena.get()
		if err != nil {
			dst.Clear()
			return nil, err
		}
		n := dst.node(ref)
		n.val, n.color, n.parent = src.val, src.color, task.parent
		if task.parent == dst.header {
			dst.node(dst.header).parent = ref
		} else if task.toLeft {
			dst.node(task.parent).left = ref
		} else {
			dst.node(task.parent).right = ref
		}
		dst.count++

		if src.right != nilRef {
			stack = append(stack, cloneTask{src: src.right, parent: ref})
		}
		if src.left != nilRef {
			stack = append(stack, cloneTask{src: src.left, parent: ref, toLeft: true})
		}
	}
	h := dst.node(dst.header)
	h.left, h.right = dst.minimum(h.parent), dst.maximum(h.parent)
	return dst, nil
}

func (tree *rbTree[K, V]) iterator(ref nodeRef) Iterator[K, V] {
	return Iterator[K, V]{tree: tree, ref: ref}
}

func (tree *rbTree[K, V]) owns(it Iterator[K, V]) bool {
	return it.tree == tree && (it.ref == tree.header || tree.arena.isLive(it.ref))
}

type RBTreeOption[K, V any] func(*rbTree[K, V])

// WithRBTreeDesc sorts the values in descending key order.
func WithRBTreeDesc[K, V any]() RBTreeOption[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isDesc = true
	}
}

// WithRBTreeArena injects the node allocator. The tree creates its own
// Arena otherwise.
func WithRBTreeArena[K, V any](arena *Arena[V]) RBTreeOption[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.arena = arena
	}
}

// WithRBTreeArenaOptions configures the tree's own Arena, and the arenas of
// its clones.
func WithRBTreeArenaOptions[K, V any](opts ...ArenaOption[V]) RBTreeOption[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.arenaOpts = append(tree.arenaOpts, opts...)
	}
}

// WithRBTreeStats records the tree operations through the otel meter
// named RBTreeStatsName/name.
func WithRBTreeStats[K, V any](name string) RBTreeOption[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.stats = newRBTreeStats(name)
	}
}

func newRBTree[K, V any](keyOf KeyOf[K, V], less LessFunc[K], arena *Arena[V]) (*rbTree[K, V], error) {
	tree := &rbTree[K, V]{
		arena: arena,
		keyOf: keyOf,
		less:  less,
	}
	header, err := tree.arena.get()
	if err != nil {
		return nil, err
	}
	tree.header = header
	h := tree.node(header)
	h.parent, h.left, h.right, h.color = nilRef, header, header, Red
	return tree, nil
}

// NewRBTree creates a tree ordered by less over the keys extracted by
// keyOf. It fails only if the injected arena has no room for the sentinel.
func NewRBTree[K, V any](keyOf KeyOf[K, V], less LessFunc[K], opts ...RBTreeOption[K, V]) (RBTree[K, V], error) {
	if keyOf == nil || less == nil {
		return nil, infra.NewErrorStack("[rbtree] nil key extractor or comparator")
	}
	cfg := &rbTree[K, V]{}
	for _, o := range opts {
		if o != nil {
			o(cfg)
		}
	}
	arena := cfg.arena
	if arena == nil {
		arena = NewArena[V](cfg.arenaOpts...)
	}
	if cfg.isDesc {
		asc := less
		less = func(i, j K) bool {
			return asc(j, i)
		}
	}
	tree, err := newRBTree[K, V](keyOf, less, arena)
	if err != nil {
		return nil, err
	}
	tree.isDesc, tree.arenaOpts, tree.stats = cfg.isDesc, cfg.arenaOpts, cfg.stats
	return tree, nil
}

// NewOrderedRBTree creates a tree with the natural '<' ordering of K.
func NewOrderedRBTree[K infra.OrderedKey, V any](keyOf KeyOf[K, V], opts ...RBTreeOption[K, V]) (RBTree[K, V], error) {
	return NewRBTree[K, V](keyOf, infra.LessThan[K](), opts...)
}
