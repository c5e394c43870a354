package fetch

import (
	"strings"
)

// fragmentWords is how many words are taken from each end of a chunk to form
// the text-fragment boundaries.
const fragmentWords = 5

// TextFragmentAnchor builds a deep-linkable URL that makes a browser scroll
// to and highlight the chunk text on page load, using the text-fragment
// syntax: base#:~:text=first,last. The chunk text is trimmed and both
// boundary segments are percent-encoded, including literal hyphens, which
// would otherwise read as fragment range separators.
func TextFragmentAnchor(baseURL, chunkText string) string {
	words := strings.Fields(strings.TrimSpace(chunkText))
	if len(words) == 0 {
		return baseURL
	}
	if len(words) <= fragmentWords*2 {
		return baseURL + "#:~:text=" + encodeFragment(strings.Join(words, " "))
	}
	first := strings.Join(words[:fragmentWords], " ")
	last := strings.Join(words[len(words)-fragmentWords:], " ")
	return baseURL + "#:~:text=" + encodeFragment(first) + "," + encodeFragment(last)
}

// encodeFragment percent-encodes a fragment boundary. Unlike query escaping,
// hyphens must be encoded too: an unescaped "-" delimits prefix/suffix parts
// of a text directive.
func encodeFragment(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteByte(c)
		case c == '.' || c == '_' || c == '~':
			b.WriteByte(c)
		default:
			b.WriteString(upperHex(c))
		}
	}
	return b.String()
}

func upperHex(c byte) string {
	const digits = "0123456789ABCDEF"
	return string([]byte{'%', digits[c>>4], digits[c&0x0F]})
}
