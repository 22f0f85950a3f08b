package content

import (
	"strings"
	"testing"
)

func TestRenderHTMLText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text unchanged",
			input:    "hello world",
			expected: "hello world",
		},
		{
			name:     "bold substitution",
			input:    "a **bold** word",
			expected: "a <strong>bold</strong> word",
		},
		{
			name:     "inline code substitution",
			input:    "run `go test` now",
			expected: "run <code>go test</code> now",
		},
		{
			name:     "newlines become breaks",
			input:    "line one\nline two",
			expected: "line one<br>line two",
		},
		{
			name:     "special characters escaped",
			input:    `a & b < c > d "e" 'f'`,
			expected: "a &amp; b &lt; c &gt; d &quot;e&quot; &#39;f&#39;",
		},
		{
			name:     "script tag neutralized",
			input:    "<script>alert(1)</script>",
			expected: "&lt;script&gt;alert(1)&lt;/script&gt;",
		},
		{
			name:     "fenced block with language tag",
			input:    "```go\nfmt.Println(\"hi\")\n```",
			expected: `<pre><code class="language-go">fmt.Println(&quot;hi&quot;)</code></pre>`,
		},
		{
			name:     "fenced block without language tag",
			input:    "```\nx < y\n```",
			expected: "<pre><code>x &lt; y</code></pre>",
		},
		{
			name:     "bold inside fenced block stays literal",
			input:    "```\n**not bold**\n```",
			expected: "<pre><code>**not bold**</code></pre>",
		},
		{
			name:     "markup in fenced block escaped exactly once",
			input:    "```\n<b>&amp;</b>\n```",
			expected: "<pre><code>&lt;b&gt;&amp;amp;&lt;/b&gt;</code></pre>",
		},
		{
			name:     "text around fenced block",
			input:    "before\n```\ncode\n```\nafter",
			expected: "before<br><pre><code>code</code></pre><br>after",
		},
		{
			name:     "bold with injected markup inside",
			input:    "**<i>x</i>**",
			expected: "<strong>&lt;i&gt;x&lt;/i&gt;</strong>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderHTML(TextPayload(tt.input))
			if got != tt.expected {
				t.Errorf("RenderHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestRenderHTMLNeverEmitsLiveScript(t *testing.T) {
	inputs := []string{
		"<script>alert(1)</script>",
		"**<script>alert(1)</script>**",
		"`<script>alert(1)</script>`",
		"```\n<script>alert(1)</script>\n```",
		`<img src=x onerror="alert(1)">`,
	}

	for _, input := range inputs {
		got := RenderHTML(TextPayload(input))
		if strings.Contains(got, "<script") {
			t.Errorf("RenderHTML(%q) produced a live script tag: %q", input, got)
		}
		if strings.Contains(got, "<img") {
			t.Errorf("RenderHTML(%q) produced a live img tag: %q", input, got)
		}
	}
}

func TestRenderHTMLImage(t *testing.T) {
	p := ImagePayload("cat.png", "/collections/pets/assets/cat.png")
	got := RenderHTML(p)
	want := `<img src="/collections/pets/assets/cat.png" alt="cat.png">`
	if got != want {
		t.Errorf("RenderHTML(image) = %q, want %q", got, want)
	}
}

func TestRenderHTMLImageEscapesAttributes(t *testing.T) {
	p := ImagePayload(`a"onerror="x.png`, `/a"onerror="x`)
	got := RenderHTML(p)
	if strings.Contains(got, `"onerror=`) {
		t.Errorf("RenderHTML(image) leaked an unescaped quote: %q", got)
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name     string
		payload  Payload
		expected string
	}{
		{
			name:     "image yields filename",
			payload:  ImagePayload("dog.jpg", "/x/dog.jpg"),
			expected: "dog.jpg",
		},
		{
			name:     "markers stripped",
			payload:  TextPayload("a **bold** `code` word"),
			expected: "a bold code word",
		},
		{
			name:     "fence unwrapped",
			payload:  TextPayload("```go\nx := 1\n```"),
			expected: "x := 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.payload); got != tt.expected {
				t.Errorf("PlainText() = %q, want %q", got, tt.expected)
			}
		})
	}
}
