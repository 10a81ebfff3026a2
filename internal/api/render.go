package api

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
)

func newReplyPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// renderMarkdown converts generated markdown to HTML safe for embedding.
func (s *Server) renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return s.policy.Sanitize(buf.String()), nil
}
