package adlist

type ListNode[T any] struct {
	prev  *ListNode[T]
	next  *ListNode[T]
	value T
}

func (n *ListNode[T]) NodeValue() T {
	if n == nil {
		var zero T
		return zero
	}
	return n.value
}

func (n *ListNode[T]) SetNodeValue(value T) {
	n.value = value
}

func (n *ListNode[T]) Next() *ListNode[T] {
	return n.next
}

func (n *ListNode[T]) Prev() *ListNode[T] {
	return n.prev
}

// Iteration directions.
const (
	StartHead = 0
	StartTail = 1
)

type ListIter[T any] struct {
	next      *ListNode[T]
	direction int
}

// Next returns the current node and advances. The returned node may be
// deleted with DelNode without breaking the iteration.
func (iter *ListIter[T]) Next() *ListNode[T] {
	cur := iter.next
	if cur != nil {
		if iter.direction == StartHead {
			iter.next = cur.next
		} else {
			iter.next = cur.prev
		}
	}
	return cur
}
