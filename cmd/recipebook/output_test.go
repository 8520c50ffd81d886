package cmd

import "testing"

func TestOrderValue(t *testing.T) {
	tests := []struct {
		flag    string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"most liked", "-likes", false},
		{"Newest", "-createdAt", false},
		{"likes", "likes", false},
		{"random", "", true},
	}

	for _, tt := range tests {
		got, err := orderValue(tt.flag)
		if (err != nil) != tt.wantErr {
			t.Errorf("orderValue(%q) error = %v, wantErr %v", tt.flag, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("orderValue(%q) = %q, want %q", tt.flag, got, tt.want)
		}
	}
}

func TestTruncateString(t *testing.T) {
	if got := truncateString("short", 10); got != "short" {
		t.Errorf("Expected short strings untouched, got %q", got)
	}
	if got := truncateString("crème brûlée tart", 10); got != "crème b..." {
		t.Errorf("Unexpected truncation %q", got)
	}
}
