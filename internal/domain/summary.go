// File: internal/domain/summary.go
package domain

// Chat title and preview lengths.
const (
    TitleMaxLen   = 50
    PreviewMaxLen = 100
)

// Summarize returns text unchanged when it fits within maxLen runes, otherwise
// the first maxLen runes with "..." appended. Rune-level truncation keeps
// multi-byte characters intact.
func Summarize(text string, maxLen int) string {
    if maxLen <= 0 {
        return ""
    }
    runes := []rune(text)
    if len(runes) <= maxLen {
        return text
    }
    return string(runes[:maxLen]) + "..."
}
