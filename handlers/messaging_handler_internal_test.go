package handlers

import "testing"

func TestClampPage(t *testing.T) {
	cases := []struct {
		page, pageSize int
		wantPage       int
		wantSize       int
	}{
		{1, 50, 1, 50},
		{0, 50, 1, 50},
		{-3, 50, 1, 50},
		{2, 0, 2, 50},
		{2, -10, 2, 50},
		{1, 500, 1, 100},
		{3, 25, 3, 25},
	}
	for _, tc := range cases {
		page, size := clampPage(tc.page, tc.pageSize)
		if page != tc.wantPage || size != tc.wantSize {
			t.Errorf("clampPage(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.pageSize, page, size, tc.wantPage, tc.wantSize)
		}
	}
}
