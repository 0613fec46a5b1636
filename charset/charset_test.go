package charset

import "testing"

func contains(t *testing.T, s *Set, points []rune) {
	t.Helper()
	index := make(map[rune]bool, len(points))
	for _, r := range points {
		index[r] = true
	}
	for r := rune(0); r < 256; r++ {
		if s.Contains(r) != index[r] {
			t.Fatalf("Contains(%q) = %v, want %v", r, s.Contains(r), index[r])
		}
	}
}

func TestAddRemove(t *testing.T) {
	s := New('a', 'b', 'c')
	contains(t, s, []rune{'a', 'b', 'c'})

	s.Remove('b')
	contains(t, s, []rune{'a', 'c'})
}

func TestAddRange(t *testing.T) {
	s := New()
	s.AddRange('a', 'e')
	contains(t, s, []rune{'a', 'b', 'c', 'd', 'e'})
}

// TestGroupingAlgebra mirrors sbl2py's test_grouping_check: groupings
// compose from prior groupings via + and -.
//
//	define x 'a' + 'b'
//	define y x + 'd' - 'b'
//	define z y - x
func TestGroupingAlgebra(t *testing.T) {
	x := New('a', 'b')
	y := Subtract(Union(x, New('d')), New('b'))
	z := Subtract(y, x)

	contains(t, x, []rune{'a', 'b'})
	contains(t, y, []rune{'a', 'd'})
	contains(t, z, []rune{'d'})
}

func TestIsEmpty(t *testing.T) {
	s := New()
	if !s.IsEmpty() {
		t.Fatal("new set should be empty")
	}
	s.Add('x')
	if s.IsEmpty() {
		t.Fatal("set with a member should not be empty")
	}
	s.Remove('x')
	if !s.IsEmpty() {
		t.Fatal("set should be empty after removing its only member")
	}
}

func TestCopyIndependence(t *testing.T) {
	s := New('a')
	c := s.Copy()
	c.Add('b')
	if s.Contains('b') {
		t.Fatal("mutating a copy should not affect the original")
	}
}
