package posts

import (
	"strings"
	"unicode/utf8"

	"github.com/russross/blackfriday/v2"
)

const excerptLength = 200

// excerpt returns the plain text of the first paragraph of the Markdown in
// md, cut to at most n runes on a word boundary.
func excerpt(md []byte, n int) string {
	if len(md) == 0 {
		return ""
	}
	doc := blackfriday.New(blackfriday.WithExtensions(blackfriday.CommonExtensions)).Parse(md)
	var (
		sb     strings.Builder
		inPara bool
	)
	doc.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		switch node.Type {
		case blackfriday.Paragraph:
			if entering {
				inPara = true
			} else if inPara {
				return blackfriday.Terminate
			}
		case blackfriday.Text, blackfriday.Code:
			if inPara && entering {
				sb.Write(node.Literal)
			}
		case blackfriday.Softbreak, blackfriday.Hardbreak:
			if inPara {
				sb.WriteByte(' ')
			}
		}
		return blackfriday.GoToNext
	})
	return truncate(strings.Join(strings.Fields(sb.String()), " "), n)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)[:n]
	if i := strings.LastIndexByte(string(r), ' '); i > 0 {
		return string(r)[:i] + "…"
	}
	return string(r) + "…"
}
