package tree

type rbNode[V any] struct {
	parent nodeRef
	left   nodeRef
	right  nodeRef
	val    V
	color  RBColor
	inUse  bool
}

func (tree *rbTree[K, V]) node(ref nodeRef) *rbNode[V] {
	return tree.arena.node(ref)
}

func (tree *rbTree[K, V]) root() nodeRef {
	return tree.node(tree.header).parent
}

func (tree *rbTree[K, V]) leftmost() nodeRef {
	return tree.node(tree.header).left
}

func (tree *rbTree[K, V]) rightmost() nodeRef {
	return tree.node(tree.header).right
}

func (tree *rbTree[K, V]) key(ref nodeRef) K {
	return tree.keyOf(tree.node(ref).val)
}

// The absent link is slot 0 and it is black, the sentinel is never asked.
func (tree *rbTree[K, V]) isRed(ref nodeRef) bool {
	return ref != nilRef && tree.node(ref).color == Red
}

func (tree *rbTree[K, V]) isBlack(ref nodeRef) bool {
	return !tree.isRed(ref)
}

func (tree *rbTree[K, V]) minimum(ref nodeRef) nodeRef {
	for l := tree.node(ref).left; l != nilRef; l = tree.node(ref).left {
		ref = l
	}
	return ref
}

func (tree *rbTree[K, V]) maximum(ref nodeRef) nodeRef {
	for r := tree.node(ref).right; r != nilRef; r = tree.node(ref).right {
		ref = r
	}
	return ref
}

// The succ node of the current node is its next node in sorted order.
// The succ of the maximum is the sentinel.
func (tree *rbTree[K, V]) succ(ref nodeRef) nodeRef {
	if r := tree.node(ref).right; r != nilRef {
		return tree.minimum(r)
	}
	p := tree.node(ref).parent
	// Backtrack to the first father reached from its left child.
	for p != tree.header && ref == tree.node(p).right {
		ref, p = p, tree.node(p).parent
	}
	return p
}

// The pred node of the current node is its previous node in sorted order.
// The pred of the sentinel is the maximum, the pred of the minimum is the
// sentinel.
func (tree *rbTree[K, V]) pred(ref nodeRef) nodeRef {
	if ref == tree.header {
		return tree.rightmost()
	}
	if l := tree.node(ref).left; l != nilRef {
		return tree.maximum(l)
	}
	p := tree.node(ref).parent
	for p != tree.header && ref == tree.node(p).left {
		ref, p = p, tree.node(p).parent
	}
	return p
}

// createNode constructs a red node holding val in a fresh slot.
func (tree *rbTree[K, V]) createNode(val V) (nodeRef, error) {
	ref, err := tree.arena.get()
	if err != nil {
		tree.stats.IncreaseAllocFailureCount()
		return nilRef, err
	}
	n := tree.node(ref)
	n.val = val
	n.color = Red
	return ref, nil
}

func (tree *rbTree[K, V]) destroyNode(ref nodeRef) {
	tree.arena.put(ref)
}

var _ RBNode[int, int] = (*rbNodeView[int, int])(nil)

type rbNodeView[K, V any] struct {
	tree *rbTree[K, V]
	ref  nodeRef
}

func (tree *rbTree[K, V]) view(ref nodeRef) RBNode[K, V] {
	if ref == nilRef || ref == tree.header {
		return nil
	}
	return &rbNodeView[K, V]{tree: tree, ref: ref}
}

func (v *rbNodeView[K, V]) Key() K         { return v.tree.key(v.ref) }
func (v *rbNodeView[K, V]) Val() V         { return v.tree.node(v.ref).val }
func (v *rbNodeView[K, V]) Color() RBColor { return v.tree.node(v.ref).color }
func (v *rbNodeView[K, V]) Left() RBNode[K, V] {
	return v.tree.view(v.tree.node(v.ref).left)
}

func (v *rbNodeView[K, V]) Right() RBNode[K, V] {
	return v.tree.view(v.tree.node(v.ref).right)
}

func (v *rbNodeView[K, V]) Parent() RBNode[K, V] {
	return v.tree.view(v.tree.node(v.ref).parent)
}
