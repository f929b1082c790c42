package tree

import (
	"errors"

	"go.uber.org/multierr"
)

var (
	ErrRedViolation      = errors.New("[rbtree] red violation")
	ErrBlackViolation    = errors.New("[rbtree] black violation")
	ErrSentinelViolation = errors.New("[rbtree] sentinel violation")
	ErrSizeViolation     = errors.New("[rbtree] size violation")
	ErrOrderViolation    = errors.New("[rbtree] order violation")
)

func isBlack[K, V any](node RBNode[K, V]) bool {
	return node == nil || node.Color() == Black
}

func isRed[K, V any](node RBNode[K, V]) bool {
	return node != nil && node.Color() == Red
}

// rbtree rule validation utilities.

// References:
// https://github1s.com/minghu6/rust-minghu6/blob/master/coll_st/src/bst/rb.rs

// Preorder traversal to validate that no red node has a red child, and
// that the root is black.
func RedViolationValidate[K, V any](tree RBTree[K, V]) error {
	aux := tree.Root()
	if aux == nil {
		return nil
	}
	if isRed[K, V](aux) {
		return ErrRedViolation
	}

	stack := make([]RBNode[K, V], 0, 64)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, aux)
	for size := len(stack); size > 0; size = len(stack) {
		aux = stack[size-1]
		stack = stack[:size-1]
		l, r := aux.Left(), aux.Right()
		if isRed[K, V](aux) && (isRed[K, V](l) || isRed[K, V](r)) {
			return ErrRedViolation
		}
		if l != nil {
			stack = append(stack, l)
		}
		if r != nil {
			stack = append(stack, r)
		}
	}
	return nil
}

/*
<X> is a RED node.
[X] is a BLACK node (or nil).

	        [13]
			/  \
		 <8>    [15]
		 / \    /  \
	  [6] [11] [14] [17]
	  /              /
	<1>            [16]

2-3-4 tree like:

	       <8> --- [13] --- <15>
		  /  \             /    \
		 /    \           /      \
	  <1>-[6][11]      [14] <16>-[17]

Each path from the root down to an absent child passes the same number
of black nodes.
*/
func BlackViolationValidate[K, V any](tree RBTree[K, V]) error {
	root := tree.Root()
	if root == nil {
		return nil
	}

	type depthNode struct {
		node  RBNode[K, V]
		depth int
	}
	stack := make([]depthNode, 0, 64)
	defer func() {
		clear(stack)
	}()
	stack = append(stack, depthNode{node: root, depth: 1})
	blackDepth := -1
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		l, r := aux.node.Left(), aux.node.Right()
		if /* nil leaves */ l == nil || r == nil {
			if blackDepth < 0 {
				blackDepth = aux.depth
			} else if blackDepth != aux.depth {
				return ErrBlackViolation
			}
		}
		for _, child := range [2]RBNode[K, V]{l, r} {
			if child == nil {
				continue
			}
			depth := aux.depth
			if isBlack[K, V](child) {
				depth++
			}
			stack = append(stack, depthNode{node: child, depth: depth})
		}
	}
	return nil
}

// SentinelValidate checks the header links: the root, the minimum and the
// maximum aliases, and the root's parent link.
func SentinelValidate[K, V any](tree RBTree[K, V]) error {
	t, ok := tree.(*rbTree[K, V])
	if !ok {
		return nil
	}
	h := t.node(t.header)
	if h.color != Red {
		return ErrSentinelViolation
	}
	if root := h.parent; root == nilRef {
		if h.left != t.header || h.right != t.header || t.count != 0 {
			return ErrSentinelViolation
		}
		return nil
	} else if t.node(root).parent != t.header ||
		h.left != t.minimum(root) ||
		h.right != t.maximum(root) {
		return ErrSentinelViolation
	}
	return nil
}

// SizeValidate checks that Len equals the number of reachable nodes.
func SizeValidate[K, V any](tree RBTree[K, V]) error {
	n := int64(0)
	stack := make([]RBNode[K, V], 0, 64)
	defer func() {
		clear(stack)
	}()
	if root := tree.Root(); root != nil {
		stack = append(stack, root)
	}
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		n++
		if l := aux.Left(); l != nil {
			stack = append(stack, l)
		}
		if r := aux.Right(); r != nil {
			stack = append(stack, r)
		}
	}
	if n != tree.Len() {
		return ErrSizeViolation
	}
	return nil
}

// OrderValidate checks that the in-order walk never decreases.
func OrderValidate[K, V any](tree RBTree[K, V]) error {
	less, keyOf := tree.Comparator(), tree.KeyOf()
	var (
		prev    K
		hasPrev bool
		err     error
	)
	tree.Foreach(func(idx int64, color RBColor, val V) bool {
		key := keyOf(val)
		if hasPrev && less(key, prev) {
			err = ErrOrderViolation
			return false
		}
		prev, hasPrev = key, true
		return true
	})
	return err
}

// Validate runs all the validators and combines their errors.
func Validate[K, V any](tree RBTree[K, V]) error {
	return multierr.Combine(
		RedViolationValidate[K, V](tree),
		BlackViolationValidate[K, V](tree),
		SentinelValidate[K, V](tree),
		SizeValidate[K, V](tree),
		OrderValidate[K, V](tree),
	)
}
