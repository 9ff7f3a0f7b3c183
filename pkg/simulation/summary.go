package simulation

import "github.com/vsinha/resmng/pkg/domain/entities"

// Summary counts what a run did
type Summary struct {
	Cycles   int
	Applied  map[Kind]int
	Failed   map[Kind]int
	Outcomes map[entities.Outcome]int
	Finished int
}

// NewSummary creates an empty Summary
func NewSummary() *Summary {
	return &Summary{
		Applied:  make(map[Kind]int),
		Failed:   make(map[Kind]int),
		Outcomes: make(map[entities.Outcome]int),
	}
}

// Record adds one event to the counts
func (s *Summary) Record(ev Event) {
	s.Cycles++
	s.Finished += len(ev.Finished)
	if ev.Failed() {
		s.Failed[ev.Kind]++
		return
	}
	s.Applied[ev.Kind]++
	if ev.Kind == KindOrder {
		s.Outcomes[ev.Outcome]++
	}
}

// Unfavorable returns the number of orders forecast as not available or scarce
func (s *Summary) Unfavorable() int {
	return s.Outcomes[entities.MaterialNotAvailable] + s.Outcomes[entities.MaterialScarce]
}
