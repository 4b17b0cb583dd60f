package msbuild

import "bytes"

// layout holds the byte-level conventions of a project file that the XML tree
// drops, such as its byte order mark and line endings.
type layout struct {
	bom             bool
	crlf            bool
	spacedEmptyTags bool
}

func detectLayout(data []byte) layout {
	return layout{
		bom:             bytes.HasPrefix(data, utf8BOM),
		crlf:            bytes.Contains(data, []byte("\r\n")),
		spacedEmptyTags: bytes.Contains(data, []byte(" />")),
	}
}

// apply rewrites serialized XML to follow l. The BOM is not added here.
func (l layout) apply(out []byte) []byte {
	if l.spacedEmptyTags {
		out = spaceEmptyTags(out)
	}
	if l.crlf {
		out = toCRLF(out)
	}
	return out
}

// toCRLF turns every bare "\n" into "\r\n". Line breaks that are already CRLF (the
// XML reader keeps them inside comments) are left alone.
func toCRLF(b []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(b) + bytes.Count(b, []byte("\n")))
	for i, c := range b {
		if c == '\n' && (i == 0 || b[i-1] != '\r') {
			out.WriteByte('\r')
		}
		out.WriteByte(c)
	}
	return out.Bytes()
}

var (
	commentStart   = []byte("<!--")
	cdataStart     = []byte("<![CDATA[")
	procInstStart  = []byte("<?")
	directiveStart = []byte("<!")
)

// spaceEmptyTags writes empty elements as <X a="b" /> instead of <X a="b"/>.
// Quoted attribute values and markup other than element tags are copied unchanged.
func spaceEmptyTags(b []byte) []byte {
	var out bytes.Buffer
	out.Grow(len(b) + len(b)/32)

	inTag, inQuote := false, false
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case inQuote:
			if c == '"' {
				inQuote = false
			}
		case inTag:
			switch c {
			case '"':
				inQuote = true
			case '>':
				inTag = false
			case '/':
				if i+1 < len(b) && b[i+1] == '>' {
					if i > 0 && b[i-1] != ' ' {
						out.WriteByte(' ')
					}
					out.WriteString("/>")
					inTag = false
					i += 2
					continue
				}
			}
		case c == '<':
			rest := b[i:]
			switch {
			case bytes.HasPrefix(rest, commentStart):
				i = copyThrough(&out, b, i, "-->")
				continue
			case bytes.HasPrefix(rest, cdataStart):
				i = copyThrough(&out, b, i, "]]>")
				continue
			case bytes.HasPrefix(rest, procInstStart):
				i = copyThrough(&out, b, i, "?>")
				continue
			case bytes.HasPrefix(rest, directiveStart):
				i = copyThrough(&out, b, i, ">")
				continue
			}
			inTag = true
		}
		out.WriteByte(c)
		i++
	}
	return out.Bytes()
}

// copyThrough copies b[start:] up to and including the first end marker and
// returns the index after it.
func copyThrough(out *bytes.Buffer, b []byte, start int, end string) int {
	j := bytes.Index(b[start:], []byte(end))
	if j < 0 {
		out.Write(b[start:])
		return len(b)
	}
	stop := start + j + len(end)
	out.Write(b[start:stop])
	return stop
}
