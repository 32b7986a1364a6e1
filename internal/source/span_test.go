package source

import (
	"testing"
)

func TestSpanCover(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", Span{File: 1, Start: 2, End: 4}, Span{File: 1, Start: 8, End: 9}, Span{File: 1, Start: 2, End: 9}},
		{"nested", Span{File: 1, Start: 2, End: 10}, Span{File: 1, Start: 4, End: 5}, Span{File: 1, Start: 2, End: 10}},
		{"other file ignored", Span{File: 1, Start: 2, End: 4}, Span{File: 2, Start: 0, End: 9}, Span{File: 1, Start: 2, End: 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.want {
				t.Errorf("Cover() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{"touching", Span{Start: 0, End: 3}, Span{Start: 3, End: 5}, false},
		{"overlap", Span{Start: 0, End: 4}, Span{Start: 3, End: 5}, true},
		{"empty never overlaps", Span{Start: 2, End: 2}, Span{Start: 0, End: 5}, false},
		{"different files", Span{File: 1, Start: 0, End: 4}, Span{File: 2, Start: 0, End: 4}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpanLenAndString(t *testing.T) {
	sp := Span{File: 3, Start: 10, End: 14}
	if sp.Len() != 4 || sp.Empty() {
		t.Fatalf("Len/Empty wrong for %v", sp)
	}
	if sp.String() != "3:10-14" {
		t.Fatalf("String() = %q", sp.String())
	}
}
