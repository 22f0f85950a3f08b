package content

import (
	"fmt"
	"regexp"
	"strings"
)

// The renderer supports a deliberately small markup dialect: fenced code
// blocks, **bold**, `inline code`, and line breaks. Everything else in the
// card text is literal. The transform order is what makes this safe:
// code blocks are extracted first and restored last, and all remaining text
// is escaped before the structural substitutions run, so untrusted input
// can never introduce live markup and code-block content is escaped exactly
// once.

var (
	fenceRe      = regexp.MustCompile("(?s)```([a-z0-9+#-]*)\n?(.*?)```")
	boldRe       = regexp.MustCompile(`\*\*([^*\n]+)\*\*`)
	inlineCodeRe = regexp.MustCompile("`([^`\n]+)`")
)

// htmlEscaper escapes the five characters HTML treats specially.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// RenderHTML converts a payload into a safe HTML fragment.
// Image payloads bypass text rendering entirely and carry only their URL
// and a filename alt text.
func RenderHTML(p Payload) string {
	if p.Kind == KindImage {
		return fmt.Sprintf(`<img src="%s" alt="%s">`,
			htmlEscaper.Replace(p.URL), htmlEscaper.Replace(p.Alt()))
	}
	return renderText(p.Raw)
}

// renderText runs the fixed-order transform pipeline over raw card text.
func renderText(raw string) string {
	// 1. Pull fenced code blocks out of the way, remembering their escaped,
	//    wrapped HTML. The placeholder uses NUL bytes so it survives escaping.
	var blocks []string
	text := fenceRe.ReplaceAllStringFunc(raw, func(m string) string {
		sub := fenceRe.FindStringSubmatch(m)
		lang, body := sub[1], sub[2]
		body = strings.TrimSuffix(body, "\n")

		var b strings.Builder
		if lang != "" {
			fmt.Fprintf(&b, `<pre><code class="language-%s">`, lang)
		} else {
			b.WriteString("<pre><code>")
		}
		b.WriteString(htmlEscaper.Replace(body))
		b.WriteString("</code></pre>")

		blocks = append(blocks, b.String())
		return placeholder(len(blocks) - 1)
	})

	// 2. Escape everything that is not a code block.
	text = htmlEscaper.Replace(text)

	// 3. Structural substitutions on the already-escaped text.
	text = boldRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = inlineCodeRe.ReplaceAllString(text, "<code>$1</code>")

	// 4. Line breaks.
	text = strings.ReplaceAll(text, "\n", "<br>")

	// 5. Restore code blocks after all substitutions.
	for i, block := range blocks {
		text = strings.Replace(text, placeholder(i), block, 1)
	}

	return text
}

func placeholder(i int) string {
	return fmt.Sprintf("\x00code-block-%d\x00", i)
}

// plainStripRe removes the bold and inline-code markers for terminal display.
var plainStripRe = regexp.MustCompile("\\*\\*([^*\n]+)\\*\\*|`([^`\n]+)`")

// PlainText returns a terminal-friendly form of a payload: image payloads
// yield their filename, text payloads keep their content with the supported
// markup markers stripped. No escaping happens here; terminal cells cannot
// execute markup.
func PlainText(p Payload) string {
	if p.Kind == KindImage {
		return p.Filename
	}

	text := fenceRe.ReplaceAllStringFunc(p.Raw, func(m string) string {
		sub := fenceRe.FindStringSubmatch(m)
		return strings.TrimSuffix(sub[2], "\n")
	})
	text = plainStripRe.ReplaceAllString(text, "$1$2")
	return strings.TrimSpace(text)
}
