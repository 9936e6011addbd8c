package collections

import "testing"

func TestSet(t *testing.T) {
	set := NewSet(1, 2, 2, 3)

	if set.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", set.Len())
	}
	if !set.Contains(2) || set.Contains(4) {
		t.Errorf("Contains() mismatch: %v", set)
	}

	set.Remove(2)
	set.Remove(42)
	set.Add(4)

	for value, want := range map[int]bool{1: true, 2: false, 3: true, 4: true} {
		if got := set.Contains(value); got != want {
			t.Errorf("Contains(%d) = %v, want %v", value, got, want)
		}
	}
}
