package bot

import "strings"

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
)

// escapeMarkdown makes user-supplied text safe to embed in a Markdown reply.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
