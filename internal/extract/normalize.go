package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// markup detects filings (or the documents embedded in a submission) that are HTML
var markup = regexp.MustCompile(`(?i)<(html|body|div|p|td|font|table)[\s>]`)

// submissionHeader ends the SGML header of a complete submission text file
var submissionHeader = regexp.MustCompile(`(?is)^.*?</(SEC|IMS)-HEADER>`)

// submissionTags are SGML envelope lines. Accession numbers and file names on
// them must not reach the price pattern.
var submissionTags = regexp.MustCompile(`(?im)^[ \t]*</?(SEC-DOCUMENT|IMS-DOCUMENT|TYPE|SEQUENCE|FILENAME|DESCRIPTION)>.*$`)

// blockElements end a line when flattened
var blockElements = map[string]bool{
	"p": true, "div": true, "br": true, "tr": true, "td": true, "th": true,
	"li": true, "table": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "body": true, "html": true, "document": true, "text": true,
}

// Normalize drops the SGML envelope of a complete submission and flattens
// HTML filings to plain text. Other plain text is returned unchanged.
func Normalize(text string) string {
	text = stripEnvelope(text)
	if !markup.MatchString(text) {
		return text
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	doc.Find("script, style").Remove()

	var sb strings.Builder
	sb.Grow(len(text) / 2)
	flatten(doc.Selection, &sb)

	// &nbsp; is not matched by \s
	return strings.ReplaceAll(sb.String(), "\u00a0", " ")
}

// stripEnvelope removes the submission header and envelope tag lines
func stripEnvelope(text string) string {
	if !strings.Contains(text, "<SEC-") && !strings.Contains(text, "<IMS-") &&
		!strings.Contains(text, "<TYPE>") && !strings.Contains(text, "<FILENAME>") {
		return text
	}
	text = submissionHeader.ReplaceAllString(text, "")
	return submissionTags.ReplaceAllString(text, "")
}

func flatten(sel *goquery.Selection, sb *strings.Builder) {
	sel.Contents().Each(func(_ int, node *goquery.Selection) {
		name := goquery.NodeName(node)
		switch name {
		case "#text":
			sb.WriteString(node.Text())
		case "#comment":
		default:
			flatten(node, sb)
			if blockElements[name] {
				sb.WriteByte('\n')
			}
		}
	})
}
