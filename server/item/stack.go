package item

import "fmt"

// Stack represents a stack of items. The stack shares the same item type and has a count which specifies the
// size of the stack. Stacks are values: every method that changes a stack returns a new one.
type Stack struct {
	item  Item
	count int
}

// NewStack returns a new stack using the item type and the count passed. NewStack panics if the count passed
// is negative or if the item type passed is nil.
func NewStack(t Item, count int) Stack {
	if count < 0 {
		panic("cannot use negative count for item stack")
	}
	if t == nil {
		panic("cannot have a stack with item type nil")
	}
	return Stack{item: t, count: count}
}

// Count returns the amount of items that is present on the stack. The count is guaranteed never to be
// negative.
func (s Stack) Count() int {
	return s.count
}

// MaxCount returns the maximum count that the stack is able to hold when added to an inventory or when added
// to an item entity.
func (s Stack) MaxCount() int {
	if c, ok := s.item.(MaxCounter); ok {
		return c.MaxCount()
	}
	return 64
}

// Grow grows the Stack's count by n, returning the resulting Stack. If a positive number is passed, the stack
// is grown, whereas if a negative size is passed, the resulting Stack will have a lower count. The count of
// the returned Stack will never be negative.
func (s Stack) Grow(n int) Stack {
	s.count += n
	if s.count < 0 {
		s.count = 0
	}
	return s
}

// Empty checks if the stack is empty (has a count of 0).
func (s Stack) Empty() bool {
	return s.Count() == 0 || s.item == nil
}

// Item returns the item that the stack holds. If the stack is considered empty (Stack.Empty()), Item will
// always return nil.
func (s Stack) Item() Item {
	if s.Empty() {
		return nil
	}
	return s.item
}

// Comparable checks if two stacks can be considered comparable. True is returned if the two stacks have an
// equal item type and are stackable at all. Items with a max count of 1 are never comparable, even when they
// carry equal data.
func (s Stack) Comparable(s2 Stack) bool {
	if s.Empty() || s2.Empty() {
		return false
	}
	if s.MaxCount() == 1 || s2.MaxCount() == 1 {
		return false
	}
	name, meta := s.item.EncodeItem()
	name2, meta2 := s2.item.EncodeItem()
	return name == name2 && meta == meta2
}

// Equal checks if two stacks hold equal items in equal counts. Two empty stacks are always equal.
func (s Stack) Equal(s2 Stack) bool {
	if s.Empty() || s2.Empty() {
		return s.Empty() && s2.Empty()
	}
	if s.count != s2.count {
		return false
	}
	if eq, ok := s.item.(Equaler); ok {
		return eq.Equal(s2.item)
	}
	name, meta := s.item.EncodeItem()
	name2, meta2 := s2.item.EncodeItem()
	return name == name2 && meta == meta2
}

// AddStack adds another stack to the stack and returns both stacks. The first stack returned will have as
// many items in it as possible to fit in the stack, according to a max count of MaxCount. The second stack
// will have the leftover items: It may be empty if the count of both stacks together don't exceed the max
// count. If the two stacks are not comparable, AddStack will return both the original stack and the stack
// passed.
func (s Stack) AddStack(s2 Stack) (a, b Stack) {
	if s.Empty() {
		return s2, Stack{}
	}
	if !s.Comparable(s2) {
		// The items are not comparable and thus cannot be stacked together.
		return s, s2
	}
	if s.Count() >= s.MaxCount() {
		// No more items could be added to the original stack.
		return s, s2
	}
	diff := s.MaxCount() - s.Count()
	if s2.Count() < diff {
		diff = s2.Count()
	}

	s.count, s2.count = s.count+diff, s2.count-diff
	return s, s2
}

// String implements the fmt.Stringer interface.
func (s Stack) String() string {
	if s.Empty() {
		return "Stack<empty>"
	}
	return fmt.Sprintf("Stack<%v>(x%v)", ID(s.item), s.count)
}
