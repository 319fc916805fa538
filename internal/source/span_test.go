package source

import (
	"testing"
)

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		other    Span
		expected Span
	}{
		{
			name:     "other inside span",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 12, End: 14},
			expected: Span{File: 1, Start: 10, End: 20},
		},
		{
			name:     "other extends both ends",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 5, End: 25},
			expected: Span{File: 1, Start: 5, End: 25},
		},
		{
			name:     "disjoint spans are joined",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 1, Start: 30, End: 40},
			expected: Span{File: 1, Start: 10, End: 40},
		},
		{
			name:     "different files keep original",
			span:     Span{File: 1, Start: 10, End: 20},
			other:    Span{File: 2, Start: 0, End: 100},
			expected: Span{File: 1, Start: 10, End: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.span.Cover(tt.other)
			if result != tt.expected {
				t.Errorf("Cover() = %+v, want %+v", result, tt.expected)
			}
		})
	}
}

func TestSpanContains(t *testing.T) {
	outer := Span{File: 1, Start: 10, End: 20}
	tests := []struct {
		inner Span
		want  bool
	}{
		{Span{File: 1, Start: 10, End: 20}, true},
		{Span{File: 1, Start: 12, End: 12}, true},
		{Span{File: 1, Start: 9, End: 12}, false},
		{Span{File: 1, Start: 15, End: 21}, false},
		{Span{File: 2, Start: 12, End: 14}, false},
	}
	for _, tt := range tests {
		if got := outer.Contains(tt.inner); got != tt.want {
			t.Errorf("Contains(%v) = %v, want %v", tt.inner, got, tt.want)
		}
	}
}

func TestSpanAndLineColString(t *testing.T) {
	if got := (Span{File: 0, Start: 7, End: 12}).String(); got != "0:7-12" {
		t.Errorf("Span.String() = %q", got)
	}
	if got := (LineCol{Line: 3, Col: 14}).String(); got != "3:14" {
		t.Errorf("LineCol.String() = %q", got)
	}
}

func TestSpanLen(t *testing.T) {
	for _, tt := range []struct {
		span Span
		want uint32
	}{
		{Span{Start: 4, End: 9}, 5},
		{Span{Start: 4, End: 4}, 0},
		{Span{Start: 9, End: 4}, 0},
	} {
		if got := tt.span.Len(); got != tt.want {
			t.Errorf("%v.Len() = %d, want %d", tt.span, got, tt.want)
		}
	}
}
