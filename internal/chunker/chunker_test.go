package chunker

import (
	"strings"
	"testing"

	"github.com/briefd/briefd/internal/sentence"
	"github.com/briefd/briefd/internal/tokens"
)

func TestPackSentences_SmallTextFitsOneChunk(t *testing.T) {
	c := New(tokens.HeuristicCodec{}, nil)

	text := "First sentence here. Second sentence here. Third sentence here."
	chunks := c.PackSentences(text, 1000, sentence.English)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("chunk = %q, want original text", chunks[0])
	}
}

func TestPackSentences_RespectsTokenBudget(t *testing.T) {
	c := New(tokens.HeuristicCodec{}, nil)
	codec := tokens.HeuristicCodec{}

	// ~9 sentences of 9 words each, ~12 tokens per sentence.
	text := strings.TrimSpace(strings.Repeat("The quick brown fox jumps over the lazy dog. ", 9))
	budget := 30
	chunks := c.PackSentences(text, budget, sentence.English)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, ch := range chunks {
		if got := codec.Count(ch); got > budget {
			t.Errorf("chunk %d: %d tokens exceeds budget %d", i, got, budget)
		}
	}
}

func TestPackSentences_OrderPreserved(t *testing.T) {
	c := New(tokens.HeuristicCodec{}, nil)

	text := "Alpha is first. Bravo is second. Charlie is third. Delta is fourth. Echo is fifth."
	chunks := c.PackSentences(text, 10, sentence.English)

	rejoined := strings.Join(chunks, " ")
	want := sentence.Split(text, sentence.English)
	got := sentence.Split(rejoined, sentence.English)

	if len(got) != len(want) {
		t.Fatalf("rejoined sentence count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d: %q != %q", i, got[i], want[i])
		}
	}
}

func TestPackSentences_OversizedSentenceBecomesOwnChunk(t *testing.T) {
	c := New(tokens.HeuristicCodec{}, nil)

	long := strings.TrimSpace(strings.Repeat("word ", 100)) + "."
	text := "Short one. " + long + " Short two."
	chunks := c.PackSentences(text, 20, sentence.English)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d: %v", len(chunks), chunks)
	}
	if !strings.HasPrefix(chunks[1], "word") {
		t.Errorf("middle chunk should be the oversized sentence, got %q", chunks[1])
	}
}

func TestPackSentences_EmptyInput(t *testing.T) {
	c := New(tokens.HeuristicCodec{}, nil)
	if chunks := c.PackSentences("", 100, sentence.English); chunks != nil {
		t.Errorf("expected no chunks for empty input, got %v", chunks)
	}
	if chunks := c.PackSentences("   \n ", 100, sentence.English); chunks != nil {
		t.Errorf("expected no chunks for whitespace input, got %v", chunks)
	}
}

func TestPackSentences_UnsegmentableTextFallsBack(t *testing.T) {
	c := New(tokens.HeuristicCodec{}, nil)

	// Terminator marks only: sentence splitting yields nothing, but the
	// text is non-empty so the window fallback must still produce chunks.
	text := strings.Repeat("。", 60)
	chunks := c.PackSentences(text, 100, sentence.Chinese)

	if len(chunks) == 0 {
		t.Fatal("expected fallback chunks for unsegmentable non-empty text")
	}
}

func TestPackSentences_Chinese(t *testing.T) {
	c := New(tokens.HeuristicCodec{}, nil)

	text := "第一句话。第二句话。第三句话。"
	chunks := c.PackSentences(text, 1000, sentence.Chinese)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if strings.Contains(chunks[0], "。") {
		t.Errorf("chinese chunk should not retain terminal marks: %q", chunks[0])
	}
}

func TestWindows(t *testing.T) {
	c := New(tokens.HeuristicCodec{}, nil)
	codec := tokens.HeuristicCodec{}

	text := strings.TrimSpace(strings.Repeat("lorem ipsum dolor sit amet ", 40)) // 200 words
	windows := c.Windows(text, 50)

	if len(windows) < 2 {
		t.Fatalf("expected multiple windows, got %d", len(windows))
	}
	for i, w := range windows {
		if got := codec.Count(w); got > 50 {
			t.Errorf("window %d: %d tokens exceeds width", i, got)
		}
	}
}

func TestWindows_EmptyInput(t *testing.T) {
	c := New(tokens.HeuristicCodec{}, nil)
	if windows := c.Windows("", 50); windows != nil {
		t.Errorf("expected no windows for empty input, got %v", windows)
	}
}
