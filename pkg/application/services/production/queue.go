package production

import (
	"fmt"

	"github.com/vsinha/resmng/pkg/domain/entities"
)

// Queue is the production backlog: one FIFO per priority class. Entries are
// only ever appended or removed in place, never reordered.
type Queue struct {
	classes [entities.PriorityClasses][]*entities.Order
}

// NewQueue creates an empty backlog
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends the order to the class named by its priority
func (q *Queue) Enqueue(order *entities.Order) error {
	if !order.Priority.Valid() {
		return fmt.Errorf("enqueue order %s: %w: %d", order.ID, entities.ErrInvalidPriority, order.Priority)
	}
	q.classes[order.Priority] = append(q.classes[order.Priority], order)
	return nil
}

// Len returns the backlog size summed over every class
func (q *Queue) Len() int {
	total := 0
	for _, class := range q.classes {
		total += len(class)
	}
	return total
}

// ClassLen returns the number of entries in one class
func (q *Queue) ClassLen(class entities.Priority) int {
	if !class.Valid() {
		return 0
	}
	return len(q.classes[class])
}

// At returns the i-th entry of a class
func (q *Queue) At(class entities.Priority, i int) *entities.Order {
	return q.classes[class][i]
}

// RemoveAt takes the i-th entry out of a class, keeping the order of the rest
func (q *Queue) RemoveAt(class entities.Priority, i int) *entities.Order {
	entries := q.classes[class]
	order := entries[i]
	copy(entries[i:], entries[i+1:])
	entries[len(entries)-1] = nil
	q.classes[class] = entries[:len(entries)-1]
	return order
}

// Orders returns a copy of one class in FIFO order
func (q *Queue) Orders(class entities.Priority) []entities.Order {
	if !class.Valid() {
		return nil
	}
	orders := make([]entities.Order, len(q.classes[class]))
	for i, o := range q.classes[class] {
		orders[i] = *o
	}
	return orders
}

// FinishedStack holds completed orders awaiting pickup. It is LIFO: the most
// recently finished order is popped first.
type FinishedStack struct {
	orders []entities.Order
}

// NewFinishedStack creates an empty stack
func NewFinishedStack() *FinishedStack {
	return &FinishedStack{}
}

// Push adds a completed order
func (s *FinishedStack) Push(order entities.Order) {
	s.orders = append(s.orders, order)
}

// Pop removes the most recently finished order. The second result is false
// when the stack is empty.
func (s *FinishedStack) Pop() (entities.Order, bool) {
	if len(s.orders) == 0 {
		return entities.Order{}, false
	}
	last := len(s.orders) - 1
	order := s.orders[last]
	s.orders = s.orders[:last]
	return order, true
}

// Len returns the number of orders awaiting pickup
func (s *FinishedStack) Len() int {
	return len(s.orders)
}
