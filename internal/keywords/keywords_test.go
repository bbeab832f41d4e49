package keywords

import (
	"strings"
	"testing"

	"github.com/briefd/briefd/internal/sentence"
)

func TestExtract_English(t *testing.T) {
	text := strings.Repeat("kubernetes cluster scaling. ", 5) +
		"The cluster runs many workloads and the operators watch it."

	got := Extract(text, sentence.English, 5)
	if len(got) == 0 {
		t.Fatal("expected keywords")
	}
	if got[0] != "kubernetes" && got[0] != "cluster" {
		t.Errorf("top keyword = %q, want a dominant term", got[0])
	}
	for _, kw := range got {
		if englishStopwords[kw] {
			t.Errorf("stopword %q leaked into keywords", kw)
		}
	}
}

func TestExtract_TopNCap(t *testing.T) {
	got := Extract("alpha beta gamma delta", sentence.English, 2)
	if len(got) != 2 {
		t.Errorf("expected 2 keywords, got %d", len(got))
	}
	got = Extract("alpha beta", sentence.English, 50)
	if len(got) != 2 {
		t.Errorf("expected all available keywords, got %d", len(got))
	}
}

func TestExtract_Chinese(t *testing.T) {
	text := "机器学习模型需要大量训练数据。机器学习改变了软件开发。"

	got := Extract(text, sentence.Chinese, 5)
	if len(got) == 0 {
		t.Fatal("expected keywords for chinese text")
	}
	for _, kw := range got {
		if len([]rune(kw)) < 2 {
			t.Errorf("single-character keyword %q should be filtered", kw)
		}
	}
}

func TestExtract_Empty(t *testing.T) {
	if got := Extract("", sentence.English, 10); got != nil {
		t.Errorf("expected nil for empty input, got %v", got)
	}
	if got := Extract("text here", sentence.English, 0); got != nil {
		t.Errorf("expected nil for topN=0, got %v", got)
	}
}
