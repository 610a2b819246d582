package news

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/weppos/publicsuffix-go/publicsuffix"
	"golang.org/x/net/html"
)

// SourceLabel derives a short source label from an article link: the
// registrable domain of the host ("news.vendor.co.uk" -> "vendor.co.uk").
// Unparseable links fall back to the raw host, then the raw input.
func SourceLabel(link string) string {
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return link
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	domain, err := publicsuffix.Domain(host)
	if err != nil {
		return host
	}
	return domain
}

// PageTitle extracts a headline from a press-release page: og:title when
// present, else the document <title>.
func PageTitle(page []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err == nil {
		if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
			if t := strings.TrimSpace(og); t != "" {
				return t
			}
		}
	}
	return htmlTitle(page)
}

func htmlTitle(page []byte) string {
	node, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		return ""
	}
	var title string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if title != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "title" && n.FirstChild != nil {
			title = strings.TrimSpace(n.FirstChild.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return title
}
