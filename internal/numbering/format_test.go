package numbering

import "testing"

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"%1.", false},
		{"%1.%2.", false},
		{"%1.%2.%3.", false},
		{"", true},
		{"no placeholders here", true},
		{"%2.%3.", true},
		{"%1.%3.", true},
		{"%7.", true},
		{"%0.", true},
		{"%1.%7.", true},
	}

	for _, test := range tests {
		err := ValidateFormat(test.format)
		if (err != nil) != test.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", test.format, err, test.wantErr)
		}
	}
}

func TestRender(t *testing.T) {
	tests := []struct {
		format   string
		counters [6]uint32
		want     string
	}{
		{"%1.", [6]uint32{1, 0, 0, 0, 0, 0}, "1."},
		{"%1.%2.", [6]uint32{1, 1, 0, 0, 0, 0}, "1.1."},
		{"%1.%2.%3.", [6]uint32{2, 0, 1, 0, 0, 0}, "2.0.1."},
	}

	for _, test := range tests {
		got := Render(test.format, test.counters)
		if got != test.want {
			t.Errorf("Render(%q, %v) = %q, want %q", test.format, test.counters, got, test.want)
		}
	}
}
