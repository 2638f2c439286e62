package util

import "testing"

func TestHideSecret(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"ab", "ab"},
		{"abc", "a...c"},
		{"abcde", "ab...de"},
		{"supersecretvalue", "supe...alue"},
	}
	for _, tc := range cases {
		if got := HideSecret(tc.in); got != tc.want {
			t.Fatalf("HideSecret(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMaskSensitiveQuery(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"db=sas", "db=sas"},
		{"token=supersecretvalue", "token=supe...alue"},
		{"db=sas&password=hunter22", "db=sas&password=hu...22"},
	}
	for _, tc := range cases {
		if got := MaskSensitiveQuery(tc.in); got != tc.want {
			t.Fatalf("MaskSensitiveQuery(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
