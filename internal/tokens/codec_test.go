package tokens

import "testing"

// The constructor accepts either an encoding name or a model name; the
// codec label must report whichever identifier actually resolved, and
// claim cl100k_base only when the default was truly used.
func TestNewBPECodec_NameReflectsResolution(t *testing.T) {
	tests := []struct {
		give string
		want string
	}{
		{"cl100k_base", "bpe:cl100k_base"},
		// Resolves via the model-name lookup, not the default.
		{"gpt-3.5-turbo", "bpe:gpt-3.5-turbo"},
		// Unknown everywhere: the default takes over, and says so.
		{"no-such-vocabulary", "bpe:cl100k_base"},
	}
	for _, tt := range tests {
		c, err := NewBPECodec(tt.give)
		if err != nil {
			t.Skipf("bpe encoding data unavailable: %v", err)
		}
		if got := c.Name(); got != tt.want {
			t.Errorf("NewBPECodec(%q).Name() = %q, want %q", tt.give, got, tt.want)
		}
	}
}
