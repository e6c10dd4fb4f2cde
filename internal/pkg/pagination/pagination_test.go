package pagination

import "testing"

func TestParseDefaults(t *testing.T) {
	p := Parse("", "")
	if p.Page != 1 || p.Size != DefaultSize {
		t.Fatalf("Parse(\"\", \"\"): got %+v", p)
	}
	if p.Offset() != 0 {
		t.Fatalf("Offset: got %d, want 0", p.Offset())
	}
}

func TestParseBounds(t *testing.T) {
	cases := []struct {
		pageStr, sizeStr string
		page, size       int
	}{
		{"3", "25", 3, 25},
		{"0", "25", 1, 25},
		{"-2", "0", 1, DefaultSize},
		{"abc", "xyz", 1, DefaultSize},
		{"2", "9999", 2, MaxSize},
	}
	for _, tc := range cases {
		p := Parse(tc.pageStr, tc.sizeStr)
		if p.Page != tc.page || p.Size != tc.size {
			t.Fatalf("Parse(%q, %q): got %+v, want page=%d size=%d", tc.pageStr, tc.sizeStr, p, tc.page, tc.size)
		}
	}
}

func TestOffset(t *testing.T) {
	p := Params{Page: 4, Size: 25}
	if p.Offset() != 75 {
		t.Fatalf("Offset: got %d, want 75", p.Offset())
	}
}

func TestNewPagePages(t *testing.T) {
	page := NewPage([]int{}, Params{Page: 1, Size: 10}, 0)
	if page.Pages != 0 {
		t.Fatalf("empty total: pages = %d, want 0", page.Pages)
	}
	page = NewPage([]int{}, Params{Page: 1, Size: 10}, 101)
	if page.Pages != 11 {
		t.Fatalf("total 101 size 10: pages = %d, want 11", page.Pages)
	}
}
