package fingerprint

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageContent is the markup-derived evidence of one page.
type PageContent struct {
	Scripts []string // src, or inline text when src is empty
	Links   []string // <link href>
	Images  []string // <img src>
	Meta    []string // non-empty <meta content>
}

// ExtractContent pulls script, link, image and meta evidence out of an HTML
// document. Unparseable input yields empty content.
func ExtractContent(html string) PageContent {
	var content PageContent
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return content
	}

	doc.Find("script").Each(func(i int, s *goquery.Selection) {
		if src, ok := s.Attr("src"); ok && src != "" {
			content.Scripts = append(content.Scripts, src)
			return
		}
		content.Scripts = append(content.Scripts, s.Text())
	})
	doc.Find("link").Each(func(i int, s *goquery.Selection) {
		content.Links = append(content.Links, s.AttrOr("href", ""))
	})
	doc.Find("img").Each(func(i int, s *goquery.Selection) {
		content.Images = append(content.Images, s.AttrOr("src", ""))
	})
	doc.Find("meta").Each(func(i int, s *goquery.Selection) {
		if value := s.AttrOr("content", ""); value != "" {
			content.Meta = append(content.Meta, value)
		}
	})
	return content
}

// Blob joins everything that signatures are matched against.
func (c PageContent) Blob(body string, headers, cookies map[string]string) string {
	parts := []string{
		body,
		strings.Join(c.Scripts, " "),
		strings.Join(c.Links, " "),
		strings.Join(c.Images, " "),
		strings.Join(c.Meta, " "),
		serializePairs(headers, ": "),
		serializePairs(cookies, "="),
	}
	return strings.Join(parts, " ")
}

func serializePairs(pairs map[string]string, sep string) string {
	keys := sortedMapKeys(pairs)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, k+sep+pairs[k])
	}
	return strings.Join(lines, "\n")
}
