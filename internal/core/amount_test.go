package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"480", "480", true},
		{"291.67", "291.67", true},
		{"333,3", "333.3", true},
		{"333.3", "333.3", true},
		{"0", "0", true},
		{" 2,50 ", "2.5", true},
		{"1167", "1167", true},
		{"", "", false},
		{"abc", "", false},
		{"-1", "", false},
		{"1,2,3", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tc.in, err)
			}
			if got.String() != tc.out {
				t.Fatalf("ParseAmount(%q) = %s, want %s", tc.in, got, tc.out)
			}
		} else if err == nil {
			t.Fatalf("ParseAmount(%q) expected error, got %s", tc.in, got)
		}
	}
}

func TestParseAmountSeparatorsAgree(t *testing.T) {
	comma, err := ParseAmount("333,3")
	if err != nil {
		t.Fatal(err)
	}
	dot, err := ParseAmount("333.3")
	if err != nil {
		t.Fatal(err)
	}
	if !comma.Equal(dot) {
		t.Fatalf("comma form %s != dot form %s", comma, dot)
	}
}
