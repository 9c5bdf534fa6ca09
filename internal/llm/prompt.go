package llm

import (
	"fmt"

	"github.com/hyperjump/askdoc/pkg/utils"
)

// BuildPrompt embeds the first maxChars characters of content (raw cutoff) and
// the question in the fixed prompt shape. maxChars <= 0 sends content whole.
func BuildPrompt(question, content string, maxChars int) string {
	return fmt.Sprintf("Here is some content from a document: '%s'\n\nQuestion: %s",
		utils.Head(content, maxChars), question)
}
