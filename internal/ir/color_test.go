package ir

import "testing"

func TestNormalizeHex(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "#1A73E8", want: "#1a73e8"},
		{in: "1a73e8", want: "#1a73e8"},
		{in: "#ffffff", want: "#ffffff"},
		{in: " #E8710A ", want: "#e8710a"},
		{in: "#fff", wantErr: true},
		{in: "#1a73e8ff", wantErr: true},
		{in: "zzzzzz", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := NormalizeHex(c.in)
			if c.wantErr {
				if err == nil {
					t.Fatalf("NormalizeHex(%q) = %q, want error", c.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeHex(%q): %v", c.in, err)
			}
			if got != c.want {
				t.Errorf("NormalizeHex(%q) = %q, want %q", c.in, got, c.want)
			}
		})
	}
}

func TestHexRGB(t *testing.T) {
	r, g, b, err := HexRGB("#1a73e8")
	if err != nil {
		t.Fatal(err)
	}
	if r != 0x1a || g != 0x73 || b != 0xe8 {
		t.Errorf("HexRGB = %02x%02x%02x, want 1a73e8", r, g, b)
	}
	if _, _, _, err := HexRGB("nope"); err == nil {
		t.Error("expected error for invalid color")
	}
}
