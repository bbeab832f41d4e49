package keywords

var englishStopwords = map[string]bool{
	"a": true, "about": true, "after": true, "all": true, "also": true,
	"an": true, "and": true, "any": true, "are": true, "as": true,
	"at": true, "be": true, "because": true, "been": true, "but": true,
	"by": true, "can": true, "could": true, "did": true, "do": true,
	"does": true, "for": true, "from": true, "had": true, "has": true,
	"have": true, "he": true, "her": true, "his": true, "how": true,
	"if": true, "in": true, "into": true, "is": true, "it": true,
	"its": true, "just": true, "like": true, "may": true, "more": true,
	"most": true, "much": true, "no": true, "not": true, "of": true,
	"on": true, "one": true, "only": true, "or": true, "other": true,
	"our": true, "out": true, "over": true, "she": true, "should": true,
	"so": true, "some": true, "such": true, "than": true, "that": true,
	"the": true, "their": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "those": true, "through": true,
	"to": true, "under": true, "up": true, "very": true, "was": true,
	"we": true, "were": true, "what": true, "when": true, "where": true,
	"which": true, "while": true, "who": true, "will": true, "with": true,
	"would": true, "you": true, "your": true,
}

var chineseStopwords = map[string]bool{
	"的": true, "了": true, "和": true, "是": true, "我": true,
	"也": true, "在": true, "有": true, "就": true, "人": true,
	"都": true, "一": true, "上": true, "中": true, "大": true,
	"用": true, "对": true, "地": true, "与": true, "之": true,
	"及": true, "或": true, "而": true, "被": true, "从": true,
	"但": true, "等": true, "很": true, "到": true, "说": true,
	"要": true, "会": true, "可": true, "你": true, "它": true,
	"其": true,
}
