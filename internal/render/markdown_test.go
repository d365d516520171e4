package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssistantHTML(t *testing.T) {
	out := AssistantHTML("**Medical Overview:** rest and fluids")
	assert.Contains(t, out, "<strong>Medical Overview:</strong>")
	assert.Contains(t, out, "rest and fluids")
}

func TestAssistantHTMLEscapesRawMarkup(t *testing.T) {
	out := AssistantHTML(`<script>alert(1)</script>`)
	assert.NotContains(t, out, "<script>")
}
