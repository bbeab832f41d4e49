// Package tokens provides token counting and token-window slicing for
// summarization budgets.
package tokens

import (
	"fmt"
	"strings"

	"github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "cl100k_base"

// Codec counts tokens and slices text into fixed-width token windows.
type Codec interface {
	// Count returns the encoded token length of text.
	Count(text string) int
	// Slice cuts text into contiguous windows of at most width tokens.
	// The last window may be shorter. Empty text yields no windows.
	Slice(text string, width int) []string
	// Name identifies the codec, for logging.
	Name() string
}

// BPECodec is an exact codec backed by a tiktoken BPE encoding.
type BPECodec struct {
	encodingName string
	tke          *tiktoken.Tiktoken
}

// NewBPECodec builds a codec for the given encoding or model name,
// falling back to cl100k_base when the name is unknown.
func NewBPECodec(modelOrEncoding string) (*BPECodec, error) {
	if modelOrEncoding == "" {
		modelOrEncoding = defaultEncoding
	}

	name := modelOrEncoding
	tke, err := tiktoken.GetEncoding(modelOrEncoding)
	if err != nil {
		// Try as a model name before giving up on the default.
		tke, err = tiktoken.EncodingForModel(modelOrEncoding)
		if err != nil {
			tke, err = tiktoken.GetEncoding(defaultEncoding)
			if err != nil {
				return nil, fmt.Errorf("get default encoding %q: %w", defaultEncoding, err)
			}
			name = defaultEncoding
		}
	}

	return &BPECodec{encodingName: name, tke: tke}, nil
}

func (c *BPECodec) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(c.tke.Encode(text, nil, nil))
}

func (c *BPECodec) Slice(text string, width int) []string {
	if width <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}
	ids := c.tke.Encode(text, nil, nil)
	var windows []string
	for i := 0; i < len(ids); i += width {
		end := min(i+width, len(ids))
		w := strings.TrimSpace(c.tke.Decode(ids[i:end]))
		if w != "" {
			windows = append(windows, w)
		}
	}
	return windows
}

func (c *BPECodec) Name() string {
	return "bpe:" + c.encodingName
}
