// Package adlist is a generic doubly linked list. Every operation is O(1)
// except Dup, SearchKey and Index.
package adlist

type List[T any] struct {
	head, tail *ListNode[T]
	dup        func(T) T
	free       func(T)
	match      func(value T, key T) bool
	len        int
}

func Create[T any]() *List[T] {
	return new(List[T])
}

func (l *List[T]) SetFreeMethod(fn func(T)) {
	l.free = fn
}

func (l *List[T]) SetMatchMethod(fn func(value T, key T) bool) {
	l.match = fn
}

func (l *List[T]) SetDupMethod(fn func(T) T) {
	l.dup = fn
}

func (l *List[T]) GetFreeMethod() func(T) {
	return l.free
}

func (l *List[T]) GetMatchMethod() func(T, T) bool {
	return l.match
}

func (l *List[T]) GetDupMethod() func(T) T {
	return l.dup
}

func (l *List[T]) Len() int {
	return l.len
}

func (l *List[T]) First() *ListNode[T] {
	return l.head
}

func (l *List[T]) Last() *ListNode[T] {
	return l.tail
}

// Empty removes every node, calling the free method on each value, and keeps
// the list usable.
func (l *List[T]) Empty() {
	current := l.head
	for current != nil {
		next := current.next
		if l.free != nil {
			l.free(current.value)
		}
		current.prev, current.next = nil, nil
		current = next
	}
	l.head, l.tail = nil, nil
	l.len = 0
}

// Release empties the list. The list must not be used afterwards.
func (l *List[T]) Release() {
	l.Empty()
	l.dup, l.free, l.match = nil, nil, nil
}

func (l *List[T]) AddNodeHead(value T) *List[T] {
	node := &ListNode[T]{value: value}
	if l.len == 0 {
		l.head = node
		l.tail = node
	} else {
		node.next = l.head
		l.head.prev = node
		l.head = node
	}

	l.len++
	return l
}

func (l *List[T]) AddNodeTail(value T) *List[T] {
	node := &ListNode[T]{value: value}
	if l.len == 0 {
		l.head = node
		l.tail = node
	} else {
		node.prev = l.tail
		l.tail.next = node
		l.tail = node
	}

	l.len++
	return l
}

// InsertNode adds value right after oldNode when after is set, else right
// before it.
func (l *List[T]) InsertNode(oldNode *ListNode[T], value T, after bool) *List[T] {
	node := &ListNode[T]{value: value}
	if after {
		node.prev = oldNode
		node.next = oldNode.next
		if l.tail == oldNode {
			l.tail = node
		}
	} else {
		node.next = oldNode
		node.prev = oldNode.prev
		if l.head == oldNode {
			l.head = node
		}
	}
	if node.prev != nil {
		node.prev.next = node
	}
	if node.next != nil {
		node.next.prev = node
	}
	l.len++
	return l
}

// DelNode unlinks node and calls the free method on its value.
func (l *List[T]) DelNode(node *ListNode[T]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}
	if l.free != nil {
		l.free(node.value)
	}
	node.prev, node.next = nil, nil
	l.len--
}

func (l *List[T]) GetIterator(direction int) *ListIter[T] {
	iter := &ListIter[T]{direction: direction}
	if direction == StartHead {
		iter.next = l.head
	} else {
		iter.next = l.tail
	}
	return iter
}

func (l *List[T]) Rewind(li *ListIter[T]) {
	li.next = l.head
	li.direction = StartHead
}

func (l *List[T]) RewindTail(li *ListIter[T]) {
	li.next = l.tail
	li.direction = StartTail
}

// Dup copies the list and its methods. Values are copied with the dup method
// when set, else shared.
func (l *List[T]) Dup() *List[T] {
	c := Create[T]()
	c.dup, c.free, c.match = l.dup, l.free, l.match

	iter := l.GetIterator(StartHead)
	for node := iter.Next(); node != nil; node = iter.Next() {
		value := node.value
		if l.dup != nil {
			value = l.dup(value)
		}
		c.AddNodeTail(value)
	}
	return c
}

// SearchKey returns the first node matching key. Without a match method
// values are compared with ==, which panics for non comparable dynamic
// types.
func (l *List[T]) SearchKey(key T) *ListNode[T] {
	iter := l.GetIterator(StartHead)
	for node := iter.Next(); node != nil; node = iter.Next() {
		if l.match != nil {
			if l.match(node.value, key) {
				return node
			}
		} else if any(node.value) == any(key) {
			return node
		}
	}
	return nil
}

// Index returns the node at index, counting from the tail with -1 as the
// last node when negative. Out of range yields nil.
func (l *List[T]) Index(index int) *ListNode[T] {
	var n *ListNode[T]
	if index < 0 {
		index = (-index) - 1
		n = l.tail
		for ; index > 0 && n != nil; index-- {
			n = n.prev
		}
	} else {
		n = l.head
		for ; index > 0 && n != nil; index-- {
			n = n.next
		}
	}
	return n
}

// Rotate moves the tail node to the head.
func (l *List[T]) Rotate() {
	if l.len <= 1 {
		return
	}
	tail := l.tail

	l.tail = tail.prev
	l.tail.next = nil

	l.head.prev = tail
	tail.prev = nil
	tail.next = l.head
	l.head = tail
}

// Join appends every node of o to l, leaving o empty.
func (l *List[T]) Join(o *List[T]) {
	if o.head != nil {
		o.head.prev = l.tail
	}
	if l.tail != nil {
		l.tail.next = o.head
	} else {
		l.head = o.head
	}
	if o.tail != nil {
		l.tail = o.tail
	}
	l.len += o.len

	o.head, o.tail = nil, nil
	o.len = 0
}
