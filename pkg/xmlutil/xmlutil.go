// Package xmlutil provides helpers for writing hand-assembled XML documents.
package xmlutil

import (
	"encoding/xml"
	"strings"
)

// Escape replaces characters with special meaning in XML so that s can be
// embedded as element text or as a quoted attribute value.
func Escape(s string) string {
	var buf strings.Builder
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		// EscapeText only fails on invalid UTF-8; return original on error.
		return s
	}
	return buf.String()
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeText escapes s for use as element content. Unlike Escape it keeps
// line breaks and quotes as they are.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

// CDATA wraps s in a CDATA section. Any "]]>" inside s is split across two
// sections so the result stays well-formed.
func CDATA(s string) string {
	return "<![CDATA[" + strings.ReplaceAll(s, "]]>", "]]]]><![CDATA[>") + "]]>"
}

// Indent prefixes every line of s with prefix.
func Indent(s, prefix string) string {
	return prefix + strings.ReplaceAll(s, "\n", "\n"+prefix)
}
