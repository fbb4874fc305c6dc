package specparse

import "testing"

func TestExpand(t *testing.T) {
	tests := []struct {
		name   string
		format string
		want   string
	}{
		{"literal only", "unixtime=%s", "unixtime=%s"},
		{"F expands", "%F %T", "%Y-%m-%d %H:%M:%S"},
		{"x and X", "%x %X", "%Y-%m-%d %H:%M:%S"},
		{"R expands", "%R", "%H:%M"},
		{"r expands", "%r", "%I:%M:%S %p"},
		{"D expands", "%D", "%m/%d/%y"},
		{"c expands recursively", "%c", "%Y-%m-%d %H:%M:%S"},
		{"non-composite passes through", "%Y-%m-%dT%H:%M:%S%z", "%Y-%m-%dT%H:%M:%S%z"},
		{"percent literal", "100%%", "100%%"},
		{"unknown specifier passes through for caller to reject", "%Q", "%Q"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestExpandUnterminated(t *testing.T) {
	_, err := Expand("%Y-%m-%d %")
	if err != ErrUnterminated {
		t.Fatalf("got %v, want ErrUnterminated", err)
	}
}
