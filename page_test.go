package pagekit

import "testing"

func Test_NewPage(t *testing.T) {
	tests := []struct {
		name      string
		items     []int
		total     int64
		params    PageParams
		wantPages int64
	}{
		{"exact fit", []int{1, 2}, 100, PageParams{Page: 1, Size: 50}, 2},
		{"remainder rounds up", []int{1}, 101, PageParams{Page: 3, Size: 50}, 3},
		{"empty dataset", nil, 0, PageParams{Page: 1, Size: 50}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := NewPage(tt.items, tt.total, tt.params)

			if page.Pages != tt.wantPages {
				t.Errorf("%s: Pages=%d want %d", tt.name, page.Pages, tt.wantPages)
			}
			if page.Total != tt.total || page.Page != tt.params.Page || page.Size != tt.params.Size {
				t.Errorf("%s: envelope=%+v", tt.name, page)
			}
			if page.Items == nil {
				t.Errorf("%s: Items must not be nil", tt.name)
			}
		})
	}
}

func Test_NewLimitOffsetPage(t *testing.T) {
	page := NewLimitOffsetPage[string](nil, 42, LimitOffsetParams{Limit: 10, Offset: 30})

	if page.Total != 42 || page.Limit != 10 || page.Offset != 30 {
		t.Errorf("envelope=%+v", page)
	}
	if page.Items == nil {
		t.Errorf("Items must not be nil")
	}
}

func Test_NewCursorResult(t *testing.T) {
	res := NewCursorResult[string](nil, 7, 10, "tok")

	if res.Total != 7 || res.AppliedLimit != 10 || res.NextPageToken != "tok" {
		t.Errorf("envelope=%+v", res)
	}
	if res.Items == nil {
		t.Errorf("Items must not be nil")
	}
}
