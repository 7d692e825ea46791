package content

import "testing"

func TestTextContentEstimates(t *testing.T) {
	c := TextContent{Text: "hello world"}
	if c.ContentType() != Text {
		t.Errorf("ContentType = %s, want text", c.ContentType())
	}
	if c.SizeEstimate() != len("hello world") {
		t.Errorf("SizeEstimate = %d, want %d", c.SizeEstimate(), len("hello world"))
	}
	if c.Canonical() != "hello world" {
		t.Errorf("Canonical = %q, want %q", c.Canonical(), "hello world")
	}
}

func TestTokenEstimateVariesByModel(t *testing.T) {
	c := TextContent{Text: "0123456789012345"} // 16 chars
	gpt := c.TokenEstimate("gpt-default")
	claude := c.TokenEstimate("claude-default")
	if gpt != 4 {
		t.Errorf("gpt estimate = %d, want 4 (16 chars / 4.0)", gpt)
	}
	if claude <= gpt {
		t.Errorf("claude estimate %d should exceed gpt estimate %d (fewer chars/token)", claude, gpt)
	}
}

func TestTokenEstimateUnknownModelUsesDefaultDivisor(t *testing.T) {
	c := TextContent{Text: "01234567"} // 8 chars
	if got := c.TokenEstimate("some-unknown-model"); got != 2 {
		t.Errorf("TokenEstimate = %d, want 2 (8 chars / 4.0 default)", got)
	}
}

func TestTokenEstimateNonEmptyNeverZero(t *testing.T) {
	c := TextContent{Text: "x"}
	if got := c.TokenEstimate("gpt-default"); got < 1 {
		t.Errorf("TokenEstimate = %d, want at least 1 for non-empty text", got)
	}
}

func TestCodeContentCanonicalFencesSource(t *testing.T) {
	c := CodeContent{Language: "go", Source: "func main() {}"}
	want := "```go\nfunc main() {}\n```"
	if got := c.Canonical(); got != want {
		t.Errorf("Canonical = %q, want %q", got, want)
	}
}

func TestTableContentCanonicalJoinsCellsWithPipe(t *testing.T) {
	c := TableContent{Rows: [][]string{{"a", "b"}, {"c", "d"}}}
	want := "a | b\nc | d\n"
	if got := c.Canonical(); got != want {
		t.Errorf("Canonical = %q, want %q", got, want)
	}
}

func TestMediaContentCanonicalWithAndWithoutAlt(t *testing.T) {
	withAlt := MediaContent{URI: "http://x/img.png", Alt: "a cat"}
	if got := withAlt.Canonical(); got != "![a cat](http://x/img.png)" {
		t.Errorf("Canonical with alt = %q", got)
	}
	withoutAlt := MediaContent{URI: "http://x/img.png"}
	if got := withoutAlt.Canonical(); got != "http://x/img.png" {
		t.Errorf("Canonical without alt = %q", got)
	}
}

func TestCompositeContentIsEmpty(t *testing.T) {
	c := CompositeContent{}
	if c.SizeEstimate() != 0 || c.Canonical() != "" || c.TokenEstimate("gpt-default") != 0 {
		t.Errorf("CompositeContent should be entirely empty, got %+v", c)
	}
}
