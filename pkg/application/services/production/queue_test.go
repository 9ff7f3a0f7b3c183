package production

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/resmng/pkg/domain/entities"
)

func queuedOrder(t *testing.T, product entities.ProductID, priority entities.Priority) *entities.Order {
	t.Helper()
	o, err := entities.NewOrder(uuid.New(), product, decimal.NewFromInt(1), 0, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	o.Priority = priority
	return o
}

func TestQueue_EnqueueAndRemovePreservesOrder(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 4; i++ {
		if err := q.Enqueue(queuedOrder(t, entities.ProductID(i), 1)); err != nil {
			t.Fatal(err)
		}
	}
	if err := q.Enqueue(queuedOrder(t, 9, 0)); err != nil {
		t.Fatal(err)
	}

	if q.Len() != 5 {
		t.Fatalf("Expected 5 queued orders, got %d", q.Len())
	}
	if q.ClassLen(1) != 4 || q.ClassLen(0) != 1 || q.ClassLen(2) != 0 {
		t.Errorf("Unexpected class lengths: %d/%d/%d", q.ClassLen(0), q.ClassLen(1), q.ClassLen(2))
	}

	removed := q.RemoveAt(1, 1)
	if removed.ProductID != 1 {
		t.Errorf("Expected to remove product 1, got %d", removed.ProductID)
	}

	remaining := q.Orders(1)
	want := []entities.ProductID{0, 2, 3}
	for i, o := range remaining {
		if o.ProductID != want[i] {
			t.Errorf("Position %d: expected product %d, got %d", i, want[i], o.ProductID)
		}
	}
}

func TestQueue_RejectsInvalidPriority(t *testing.T) {
	q := NewQueue()
	err := q.Enqueue(queuedOrder(t, 0, entities.PriorityClasses))
	if !errors.Is(err, entities.ErrInvalidPriority) {
		t.Errorf("Expected ErrInvalidPriority, got %v", err)
	}
	if q.ClassLen(-1) != 0 || q.Orders(entities.PriorityClasses) != nil {
		t.Error("Expected out-of-range classes to read as empty")
	}
}

func TestFinishedStack_LIFO(t *testing.T) {
	s := NewFinishedStack()

	if _, ok := s.Pop(); ok {
		t.Fatal("Expected pop on empty stack to report nothing")
	}
	if s.Len() != 0 {
		t.Fatalf("Expected empty pop not to change length, got %d", s.Len())
	}

	for i := 0; i < 3; i++ {
		s.Push(entities.Order{ProductID: entities.ProductID(i)})
	}
	for want := 2; want >= 0; want-- {
		o, ok := s.Pop()
		if !ok {
			t.Fatal("Expected an order")
		}
		if o.ProductID != entities.ProductID(want) {
			t.Errorf("Expected most recent product %d, got %d", want, o.ProductID)
		}
	}
	if _, ok := s.Pop(); ok {
		t.Error("Expected stack to be empty again")
	}
}
