package curl

import (
	"errors"
	"slices"
	"testing"
)

func TestOrderedSetAdd(t *testing.T) {
	var s orderedSet[string]
	s.add("a")
	s.add("b")
	s.add("c")
	s.add("a")

	if got := s.snapshot(); !slices.Equal(got, []string{"b", "c", "a"}) {
		t.Errorf("snapshot() = %v, want [b c a]", got)
	}
}

func TestOrderedSetRemove(t *testing.T) {
	s := orderedSet[int]{items: []int{1, 2, 1, 3, 1}}
	if !s.remove(1) {
		t.Error("remove(1) = false")
	}
	if s.remove(1) {
		t.Error("second remove(1) = true")
	}
	if got := s.snapshot(); !slices.Equal(got, []int{2, 3}) {
		t.Errorf("snapshot() = %v, want [2 3]", got)
	}
	if s.contains(1) || !s.contains(3) || s.len() != 2 {
		t.Errorf("contains/len inconsistent: %v", s.items)
	}
}

func TestOrderedSetSnapshotIsCopy(t *testing.T) {
	var s orderedSet[int]
	s.add(1)
	snap := s.snapshot()
	snap[0] = 42
	if s.items[0] != 1 {
		t.Error("snapshot aliases the set")
	}
}

func TestOrderedSetEachStops(t *testing.T) {
	var s orderedSet[int]
	for i := range 5 {
		s.add(i)
	}

	stop := errors.New("stop")
	var seen []int
	err := s.each(func(i, v int) error {
		seen = append(seen, v)
		if v == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Errorf("each() = %v, want stop", err)
	}
	if !slices.Equal(seen, []int{0, 1, 2}) {
		t.Errorf("visited %v, want [0 1 2]", seen)
	}
}
