package importer

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// maxPageText caps how much visible page text is handed to the LLM.
const maxPageText = 20000

// scanHTML walks the page once, collecting JSON-LD script bodies and the
// visible text (scripts, styles and navigation chrome skipped).
func scanHTML(page []byte) (ldScripts []string, text string) {
	z := html.NewTokenizer(bytes.NewReader(page))

	var sb strings.Builder
	skipDepth := 0
	inLD := false

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return ldScripts, strings.TrimSpace(sb.String())

		case html.StartTagToken:
			name, hasAttr := z.TagName()
			tag := string(name)
			if tag == "script" {
				inLD = hasAttr && isJSONLD(z)
			}
			if skippedTag(tag) {
				skipDepth++
			}

		case html.EndTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "script" {
				inLD = false
			}
			if skippedTag(tag) && skipDepth > 0 {
				skipDepth--
			}
			if blockTag(tag) {
				sb.WriteString("\n")
			}

		case html.TextToken:
			if inLD {
				ldScripts = append(ldScripts, string(z.Text()))
				continue
			}
			if skipDepth > 0 || sb.Len() >= maxPageText {
				continue
			}
			if t := strings.Join(strings.Fields(string(z.Text())), " "); t != "" {
				sb.WriteString(t)
				sb.WriteString(" ")
			}
		}
	}
}

func isJSONLD(z *html.Tokenizer) bool {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "type" && strings.EqualFold(strings.TrimSpace(string(val)), "application/ld+json") {
			return true
		}
		if !more {
			return false
		}
	}
}

func skippedTag(tag string) bool {
	switch tag {
	case "script", "style", "noscript", "nav", "footer", "header", "svg":
		return true
	}
	return false
}

func blockTag(tag string) bool {
	switch tag {
	case "p", "li", "div", "br", "h1", "h2", "h3", "h4", "tr", "section", "article":
		return true
	}
	return false
}
