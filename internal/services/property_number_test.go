package services

import "testing"

func TestFormatPropertyNumber(t *testing.T) {
	cases := []struct {
		seq  int64
		want string
	}{
		{1, "BT-000001"},
		{7, "BT-000007"},
		{42, "BT-000042"},
		{999999, "BT-999999"},
		{1234567, "BT-1234567"},
	}

	for _, c := range cases {
		if got := FormatPropertyNumber(c.seq); got != c.want {
			t.Errorf("FormatPropertyNumber(%d) = %q, want %q", c.seq, got, c.want)
		}
	}
}
