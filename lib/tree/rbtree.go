package tree

import (
	"sync/atomic"

	"github.com/benz9527/xcoll/lib/infra"
	"github.com/benz9527/xcoll/lib/xlog"
)

type rbNode[K any, V any] struct {
	parent *rbNode[K, V]
	left   *rbNode[K, V]
	right  *rbNode[K, V]
	key    K
	val    V
	color  RBColor
}

func (node *rbNode[K, V]) Color() RBColor {
	return node.color
}

func (node *rbNode[K, V]) Key() K {
	return node.key
}

func (node *rbNode[K, V]) Val() V {
	return node.val
}

func (node *rbNode[K, V]) Left() RBNode[K, V] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *rbNode[K, V]) Parent() RBNode[K, V] {
	if node == nil || node.parent == nil {
		return nil
	}
	return node.parent
}

func (node *rbNode[K, V]) Right() RBNode[K, V] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *rbNode[K, V]) isRed() bool {
	return node != nil && node.color == Red
}

// All nil leaves are black.
func (node *rbNode[K, V]) isBlack() bool {
	return node == nil || node.color == Black
}

func (node *rbNode[K, V]) isRoot() bool {
	return node != nil && node.parent == nil
}

func (node *rbNode[K, V]) isLeaf() bool {
	return node != nil && node.left == nil && node.right == nil
}

func (node *rbNode[K, V]) Direction() RBDirection {
	if node == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] nil leaf node without direction")
	}

	if node.isRoot() {
		return Root
	}
	if node == node.parent.left {
		return Left
	}
	return Right
}

func (node *rbNode[K, V]) sibling() *rbNode[K, V] {
	switch node.Direction() {
	case Left:
		return node.parent.right
	case Right:
		return node.parent.left
	default:
	}
	return nil
}

func (node *rbNode[K, V]) uncle() *rbNode[K, V] {
	return node.parent.sibling()
}

func (node *rbNode[K, V]) grandpa() *rbNode[K, V] {
	return node.parent.parent
}

func (node *rbNode[K, V]) fixLink() {
	if node.left != nil {
		node.left.parent = node
	}
	if node.right != nil {
		node.right.parent = node
	}
}

func (node *rbNode[K, V]) minimum() *rbNode[K, V] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *rbNode[K, V]) maximum() *rbNode[K, V] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// The pred node of the current node is its previous node in sorted order
func (node *rbNode[K, V]) pred() *rbNode[K, V] {
	x := node
	if x == nil {
		return nil
	}
	if x.left != nil {
		return x.left.maximum()
	}

	aux := x.parent
	// Backtrack to father node that is the x's pred.
	for aux != nil && x == aux.left {
		x = aux
		aux = aux.parent
	}
	return aux
}

// The succ node of the current node is its next node in sorted order.
func (node *rbNode[K, V]) succ() *rbNode[K, V] {
	x := node
	if x == nil {
		return nil
	}
	if x.right != nil {
		return x.right.minimum()
	}

	aux := x.parent
	// Backtrack to father node that is the x's succ.
	for aux != nil && x == aux.right {
		x = aux
		aux = aux.parent
	}
	return aux
}

var _ RBTree[int, struct{}] = (*rbTree[int, struct{}])(nil)

type rbTree[K any, V any] struct {
	root           *rbNode[K, V]
	count          int64
	cmp            infra.KeyComparator[K]
	debug          *rbTreeDebugger
	isDesc         bool
	isRmBorrowSucc bool
}

func (tree *rbTree[K, V]) keyCompare(k1, k2 K) int64 {
	res := tree.cmp(k1, k2)
	if !tree.isDesc {
		return res
	}
	return -res
}

func (tree *rbTree[K, V]) Len() int64 {
	return atomic.LoadInt64(&tree.count)
}

func (tree *rbTree[K, V]) Empty() bool {
	return tree.Len() == 0
}

func (tree *rbTree[K, V]) Root() RBNode[K, V] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

func (tree *rbTree[K, V]) Min() RBNode[K, V] {
	if tree.root == nil {
		return nil
	}
	return tree.root.minimum()
}

func (tree *rbTree[K, V]) Max() RBNode[K, V] {
	if tree.root == nil {
		return nil
	}
	return tree.root.maximum()
}

// References:
// https://elixir.bootlin.com/linux/latest/source/lib/rbtree.c
// rbtree properties:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p4.

/*
		 |                         |
		 X                         S
		/ \     leftRotate(X)     / \
	   L   S    ============>    X   Sd
		  / \                   / \
		Sc   Sd                L   Sc
*/
func (tree *rbTree[K, V]) leftRotate(x *rbNode[K, V]) {
	if x == nil || x.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] left rotate node x is nil or x.right is nil")
	}

	p, y := x.parent, x.right
	dir := x.Direction()
	x.right, y.left = y.left, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		tree.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to left-rotate")
	}
	y.parent = p
}

/*
			 |                         |
			 X                         S
			/ \     rightRotate(S)    / \
	       L   S    <============    X   R
			  / \                   / \
			Sc   Sd               Sc   Sd
*/
func (tree *rbTree[K, V]) rightRotate(x *rbNode[K, V]) {
	if x == nil || x.left == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] right rotate node x is nil or x.left is nil")
	}

	p, y := x.parent, x.left
	dir := x.Direction()
	x.left, y.right = y.right, x

	x.fixLink()
	y.fixLink()

	switch dir {
	case Root:
		tree.root = y
	case Left:
		p.left = y
	case Right:
		p.right = y
	default:
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] unknown node direction to right-rotate")
	}
	y.parent = p
}

// transplant replaces the subtree rooted at u by the subtree rooted at v.
func (tree *rbTree[K, V]) transplant(u, v *rbNode[K, V]) {
	switch u.Direction() {
	case Root:
		tree.root = v
	case Left:
		u.parent.left = v
	case Right:
		u.parent.right = v
	default:
	}
	if v != nil {
		v.parent = u.parent
	}
}

/*
swapNodes exchanges the structural positions and the colors of x and y,
y is the pred or the succ of x (a descendant of x).
The payloads stay in their nodes, so the node identities are preserved.

	  |                    |
	  X                    P
	 / \                  / \
	L  ..   swap(X, P)   L  ..
	 \      =========>    \
	  P                    X
	 /                    /
	Pl                   Pl
*/
func (tree *rbTree[K, V]) swapNodes(x, y *rbNode[K, V]) {
	xp, xl, xr := x.parent, x.left, x.right
	yp, yl, yr := y.parent, y.left, y.right

	switch x.Direction() {
	case Root:
		tree.root = y
	case Left:
		xp.left = y
	case Right:
		xp.right = y
	default:
	}
	y.parent = xp

	if /* adjacent */ yp == x {
		if xl == y {
			y.left, y.right = x, xr
		} else {
			y.left, y.right = xl, x
		}
		x.parent = y
	} else {
		y.left, y.right = xl, xr
		if yp.left == y {
			yp.left = x
		} else {
			yp.right = x
		}
		x.parent = yp
	}
	x.left, x.right = yl, yr

	y.fixLink()
	x.fixLink()
	x.color, y.color = y.color, x.color
}

func (tree *rbTree[K, V]) find(key K) *rbNode[K, V] {
	for aux := tree.root; aux != nil; {
		res := tree.keyCompare(key, aux.key)
		if res == 0 {
			return aux
		} else if res < 0 {
			aux = aux.left
		} else {
			aux = aux.right
		}
	}
	return nil
}

// lowerBound returns the first node whose key is not less than key.
func (tree *rbTree[K, V]) lowerBound(key K) *rbNode[K, V] {
	var candidate *rbNode[K, V]
	for aux := tree.root; aux != nil; {
		res := tree.keyCompare(key, aux.key)
		if res == 0 {
			return aux
		} else if res < 0 {
			candidate = aux
			aux = aux.left
		} else {
			aux = aux.right
		}
	}
	return candidate
}

func (tree *rbTree[K, V]) Find(key K) (RBNode[K, V], bool) {
	if node := tree.find(key); node != nil {
		return node, true
	}
	return nil, false
}

func (tree *rbTree[K, V]) Get(key K) (V, bool) {
	if node := tree.find(key); node != nil {
		return node.val, true
	}
	var zero V
	return zero, false
}

func (tree *rbTree[K, V]) At(key K) (V, error) {
	if node := tree.find(key); node != nil {
		return node.val, nil
	}
	var zero V
	return zero, ErrRBTreeKeyNotFound
}

func (tree *rbTree[K, V]) Search(x RBNode[K, V], fn func(RBNode[K, V]) int64) RBNode[K, V] {
	if x == nil {
		return nil
	}

	for aux := x; aux != nil; {
		res := fn(aux)
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = aux.Right()
		} else {
			aux = aux.Left()
		}
	}
	return nil
}

// insert returns the node of key and whether it is a new node.
// The new node is allocated before any link is touched.
func (tree *rbTree[K, V]) insert(key K, val V) (*rbNode[K, V], bool) {
	var (
		x, y *rbNode[K, V] = tree.root, nil
		res  int64
	)
	for x != nil {
		y = x
		if res = tree.keyCompare(key, x.key); /* equal */ res == 0 {
			return x, false
		} else /* less */ if res < 0 {
			x = x.left
		} else /* greater */ {
			x = x.right
		}
	}

	z := &rbNode[K, V]{
		key:    key,
		val:    val,
		color:  Red,
		parent: y,
	}
	if /* i1 */ y == nil {
		tree.root = z
	} else if res < 0 {
		y.left = z
	} else {
		y.right = z
	}

	atomic.AddInt64(&tree.count, 1)
	tree.insertRebalance(z)
	return z, true
}

func (tree *rbTree[K, V]) Insert(key K, val V) (*RBIterator[K, V], bool) {
	tree.debug.enter("insert")
	defer tree.debug.exit()

	node, inserted := tree.insert(key, val)
	if inserted {
		tree.debug.verify("insert", tree)
	}
	return newRBIterator(tree, node), inserted
}

func (tree *rbTree[K, V]) Upsert(key K, val V) bool {
	tree.debug.enter("upsert")
	defer tree.debug.exit()

	node, inserted := tree.insert(key, val)
	if !inserted {
		node.val = val
		return false
	}
	tree.debug.verify("upsert", tree)
	return true
}

func (tree *rbTree[K, V]) Entry(key K) *V {
	tree.debug.enter("entry")
	defer tree.debug.exit()

	var zero V
	node, inserted := tree.insert(key, zero)
	if inserted {
		tree.debug.verify("entry", tree)
	}
	return &node.val
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).

im1: X is the root, repaint it into black. Only here the black height
of the whole tree increases.

im2: X's parent P is black, nothing violated.

im3: Both the parent P and the uncle U are red, so the grandpa G is black.
(red-violation)
Repaint P and U into black and G into red, then G may be red-violation.
Continue to fix G.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im4: The parent P is red but the uncle U is black. (red-violation)
If X is the inner grandchild, rotate P to turn X into the outer one.

	  [G]                 [G]
	  / \    rotate(P)    / \
	<P> [U]  ========>  <X> [U]
	  \                 /
	  <X>             <P>

Then X is the outer grandchild, swap the colors of P and G and rotate G.
The local root is black, the walk stops here.

	    [G]                 <P>               [P]
	    / \    rotate(G)    / \    repaint    / \
	  <P> [U]  ========>  <X> [G]  ======>  <X> <G>
	  /                         \                 \
	<X>                         [U]               [U]
*/
func (tree *rbTree[K, V]) insertRebalance(x *rbNode[K, V]) {
	for x != nil {
		if /* im1 */ x.isRoot() {
			x.color = Black
			return
		}

		p := x.parent
		if /* im2 */ p.isBlack() {
			return
		}

		// The red parent can't be the root, so the grandpa exists.
		gp, u := x.grandpa(), x.uncle()
		if /* im3 */ u.isRed() {
			p.color = Black
			u.color = Black
			gp.color = Red
			x = gp
			continue
		}

		dir, pDir := x.Direction(), p.Direction()
		if /* im4 inner */ dir != pDir {
			switch dir {
			case Left:
				tree.rightRotate(p)
			case Right:
				tree.leftRotate(p)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] insert violate (im4)")
			}
			x, p = p, x
		}

		switch /* im4 outer */ pDir {
		case Left:
			tree.rightRotate(gp)
		case Right:
			tree.leftRotate(gp)
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] insert violate (im4)")
		}
		p.color = Black
		gp.color = Red
		return
	}
}

/*
r1: Only a root node, remove directly.

r2: Current node X has left and right node.
Find node X's pred (or succ) and swap their positions and colors.
The payloads are not copied, so X itself is removed at the new position
and the pred keeps its identity.

r3: (1) X is a red leaf node, remove directly.

r3: (2) X is a black leaf node, we have to rebalance before remove.
(black-violation)

r4: X is not a leaf node but contains a not nil child node.
The child node must be a red node. (See conclusion. Otherwise, black-violation)
Replace X by the child and repaint the child into black.
*/
func (tree *rbTree[K, V]) removeNode(z *rbNode[K, V]) *rbNode[K, V] {
	if /* r2 */ z.left != nil && z.right != nil {
		var y *rbNode[K, V]
		if tree.isRmBorrowSucc {
			y = z.right.minimum()
		} else {
			y = z.left.maximum()
		}
		tree.swapNodes(z, y) // enter r1-r4
	}

	var child *rbNode[K, V]
	if z.left != nil {
		child = z.left
	} else {
		child = z.right
	}

	if /* r4 */ child != nil {
		if z.isRed() || child.isBlack() {
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove a node with single black child, violate (r4)")
		}
		tree.transplant(z, child)
		child.color = Black
	} else if /* r1 */ z.isRoot() {
		tree.root = nil
	} else {
		if /* r3 (2) */ z.isBlack() {
			tree.removeRebalance(z)
		}
		// r3 (1), z is still a leaf after rebalance.
		tree.transplant(z, nil)
	}

	// Unlink node
	z.parent = nil
	z.left = nil
	z.right = nil
	atomic.AddInt64(&tree.count, -1)
	return z
}

/*
<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

X carries a double black. Sc is the sibling's child on X's side (near nephew),
Sd is the sibling's child on the opposite side (far nephew).

rm1: X is the root, the whole tree lost one black level evenly. Done.

rm2: The sibling S is red, so P, Sc and Sd are black.
Repaint P into red and S into black, rotate P to X's side.
X gets a black sibling (the former Sc), then enter rm3-rm5.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[X] <S>  ==========>  [P] [Sd]  ======>  <P> [Sd]
	    / \               / \               / \
	 [Sc] [Sd]          [X] [Sc]          [X] [Sc]

rm3: The sibling S and both nephews are black. Repaint S into red.
(1) P is red: repaint P into black. Done.
(2) P is black: P's subtree lost one black level, continue to fix P.

	  {P}             [P]
	  / \             / \
	[X] [S]  ====>  [X] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm4: The sibling S is black, Sc is red and Sd is black.
Repaint Sc into black and S into red, rotate S away from X.
Sc becomes X's new sibling with a red far child, enter rm5.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [X] <Sc>   repaint  [X] [Sc]
	[X] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm5: The sibling S is black and Sd is red.
S takes P's color, P and Sd are repainted into black, rotate P to X's side.
The black height is restored. Done.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[X] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 [Sc] <Sd>          [X] [Sc]           [X] [Sc]
*/
func (tree *rbTree[K, V]) removeRebalance(x *rbNode[K, V]) {
	for /* rm1 */ !x.isRoot() {
		dir := x.Direction()
		p, sibling := x.parent, x.sibling()
		if sibling == nil {
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] double black node without sibling")
		}

		if /* rm2 */ sibling.isRed() {
			p.color = Red
			sibling.color = Black
			switch dir {
			case Left:
				tree.leftRotate(p)
			case Right:
				tree.rightRotate(p)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] remove violate (rm2)")
			}
			sibling = x.sibling()
		}

		var sc, sd *rbNode[K, V]
		if dir == Left {
			sc, sd = sibling.left, sibling.right
		} else {
			sc, sd = sibling.right, sibling.left
		}

		if /* rm3 */ sc.isBlack() && sd.isBlack() {
			sibling.color = Red
			if /* rm3 (1) */ p.isRed() {
				p.color = Black
				return
			}
			/* rm3 (2) */
			x = p
			continue
		}

		if /* rm4 */ sd.isBlack() {
			sc.color = Black
			sibling.color = Red
			switch dir {
			case Left:
				tree.rightRotate(sibling)
			case Right:
				tree.leftRotate(sibling)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] remove violate (rm4)")
			}
			sibling = x.sibling()
			if dir == Left {
				sd = sibling.right
			} else {
				sd = sibling.left
			}
		}

		/* rm5 */
		sibling.color = p.color
		p.color = Black
		sd.color = Black
		switch dir {
		case Left:
			tree.leftRotate(p)
		case Right:
			tree.rightRotate(p)
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove violate (rm5)")
		}
		return
	}
}

// remove runs inside the guarded section of the caller.
func (tree *rbTree[K, V]) remove(op string, z *rbNode[K, V]) *rbNode[K, V] {
	res := tree.removeNode(z)
	tree.debug.verify(op, tree)
	return res
}

func (tree *rbTree[K, V]) Erase(key K) bool {
	tree.debug.enter("erase")
	defer tree.debug.exit()

	z := tree.find(key)
	if z == nil {
		return false
	}
	tree.remove("erase", z)
	return true
}

func (tree *rbTree[K, V]) Remove(key K) (RBNode[K, V], error) {
	tree.debug.enter("remove")
	defer tree.debug.exit()

	if atomic.LoadInt64(&tree.count) <= 0 {
		return nil, ErrRBTreeEmpty
	}
	z := tree.find(key)
	if z == nil {
		return nil, ErrRBTreeKeyNotFound
	}
	return tree.remove("remove", z), nil
}

func (tree *rbTree[K, V]) RemoveMin() (RBNode[K, V], error) {
	tree.debug.enter("remove min")
	defer tree.debug.exit()

	if atomic.LoadInt64(&tree.count) <= 0 || tree.root == nil {
		return nil, ErrRBTreeEmpty
	}
	return tree.remove("remove min", tree.root.minimum()), nil
}

func (tree *rbTree[K, V]) RemoveMax() (RBNode[K, V], error) {
	tree.debug.enter("remove max")
	defer tree.debug.exit()

	if atomic.LoadInt64(&tree.count) <= 0 || tree.root == nil {
		return nil, ErrRBTreeEmpty
	}
	return tree.remove("remove max", tree.root.maximum()), nil
}

// RemoveIter removes the node under it and returns the iterator on its
// succ. An end iterator or an iterator of another tree removes nothing.
func (tree *rbTree[K, V]) RemoveIter(it *RBIterator[K, V]) *RBIterator[K, V] {
	if !it.Valid() || it.tree != tree {
		return tree.End()
	}
	tree.debug.enter("remove iterator")
	defer tree.debug.exit()

	// The succ node keeps its identity after the removal, see r2.
	next := it.current.succ()
	tree.remove("remove iterator", it.current)
	it.current = nil
	return newRBIterator(tree, next)
}

// Inorder traversal to implement the DFS.
func (tree *rbTree[K, V]) Foreach(action func(idx int64, color RBColor, key K, val V) bool) {
	size := atomic.LoadInt64(&tree.count)
	aux := tree.root
	if size <= 0 || aux == nil {
		return
	}

	stack := make([]*rbNode[K, V], 0, size>>1)
	defer func() {
		clear(stack)
	}()

	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; !action(idx, aux.color, aux.key, aux.val) {
			return
		}
		idx++
		stack = stack[:size-1]
		if aux.right != nil {
			for aux = aux.right; aux != nil; aux = aux.left {
				stack = append(stack, aux)
			}
		}
	}
}

func (tree *rbTree[K, V]) emptyCopy() *rbTree[K, V] {
	return &rbTree[K, V]{
		cmp:            tree.cmp,
		debug:          tree.debug.clone(),
		isDesc:         tree.isDesc,
		isRmBorrowSucc: tree.isRmBorrowSucc,
	}
}

func copyRBNode[K any, V any](parent, src *rbNode[K, V]) *rbNode[K, V] {
	if src == nil {
		return nil
	}
	node := &rbNode[K, V]{
		parent: parent,
		key:    src.key,
		val:    src.val,
		color:  src.color,
	}
	node.left = copyRBNode(node, src.left)
	node.right = copyRBNode(node, src.right)
	return node
}

func (tree *rbTree[K, V]) Clone() RBTree[K, V] {
	dst := tree.emptyCopy()
	dst.root = copyRBNode[K, V](nil, tree.root)
	dst.count = atomic.LoadInt64(&tree.count)
	return dst
}

func (tree *rbTree[K, V]) Move() RBTree[K, V] {
	tree.debug.enter("move")
	defer tree.debug.exit()

	dst := tree.emptyCopy()
	dst.root, tree.root = tree.root, nil
	dst.count = atomic.SwapInt64(&tree.count, 0)
	return dst
}

// Clear releases the nodes in post-order, the children are detached
// before their parent.
func (tree *rbTree[K, V]) Clear() {
	tree.debug.enter("clear")
	defer tree.debug.exit()

	aux := tree.root
	tree.root = nil
	for aux != nil {
		if aux.left != nil {
			aux = aux.left
			continue
		}
		if aux.right != nil {
			aux = aux.right
			continue
		}
		p := aux.parent
		if p != nil {
			if p.left == aux {
				p.left = nil
			} else {
				p.right = nil
			}
		}
		aux.parent = nil
		atomic.AddInt64(&tree.count, -1)
		aux = p
	}
	atomic.StoreInt64(&tree.count, 0)
}

type RBTreeOpt[K any, V any] func(*rbTree[K, V])

func WithRBTreeDesc[K any, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isDesc = true
	}
}

func WithRBTreeRemoveBorrowSucc[K any, V any]() RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.isRmBorrowSucc = true
	}
}

// WithRBTreeDebug validates the whole tree after each mutation and
// detects the overlapped mutations and iterations. Any violation is
// logged then panics. The validation is O(n) per mutation.
func WithRBTreeDebug[K any, V any](logger xlog.XLogger) RBTreeOpt[K, V] {
	return func(tree *rbTree[K, V]) {
		tree.debug = newRBTreeDebugger(logger)
	}
}

func NewRBTree[K infra.OrderedKey, V any](opts ...RBTreeOpt[K, V]) RBTree[K, V] {
	return NewRBTreeFunc[K, V](infra.Compare[K], opts...)
}

// NewRBTreeFunc builds the tree ordered by an injected comparator.
func NewRBTreeFunc[K any, V any](cmp infra.KeyComparator[K], opts ...RBTreeOpt[K, V]) RBTree[K, V] {
	if cmp == nil {
		panic("[rbtree] nil key comparator")
	}
	tree := &rbTree[K, V]{
		count:          0,
		cmp:            cmp,
		isDesc:         false,
		isRmBorrowSucc: false,
	}

	for _, o := range opts {
		o(tree)
	}
	return tree
}
