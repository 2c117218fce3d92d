package profile

import "testing"

func TestDecomposeName(t *testing.T) {
	tests := []struct {
		full                string
		last, first, middle string
	}{
		{"SMITH, JOHN A", "SMITH", "JOHN", "A"},
		{"SMITH, JOHN", "SMITH", "JOHN", ""},
		{"O'BRIEN, MARY K", "O'BRIEN", "MARY", "K"},
		{"DE LA CRUZ, JOSE", "DE LA CRUZ", "JOSE", ""},
		{"SMITH,JOHN A", "SMITH", "JOHN", "A"},
		{"SMITH", "SMITH", "", ""},
		{"", "", "", ""},
	}

	for _, tt := range tests {
		last, first, middle := DecomposeName(tt.full)
		if last != tt.last || first != tt.first || middle != tt.middle {
			t.Errorf("DecomposeName(%q) = (%q, %q, %q), want (%q, %q, %q)",
				tt.full, last, first, middle, tt.last, tt.first, tt.middle)
		}
	}
}

func TestNameRoundTrip(t *testing.T) {
	// Decomposed fields are derivable from full_name; rejoining them
	// reproduces the name's semantic content.
	fulls := []string{
		"SMITH, JOHN A",
		"SMITH, JOHN",
		"JONES",
	}
	for _, full := range fulls {
		last, first, middle := DecomposeName(full)
		if rejoined := JoinName(last, first, middle); rejoined != full {
			t.Errorf("round trip %q -> %q", full, rejoined)
		}
	}
}
