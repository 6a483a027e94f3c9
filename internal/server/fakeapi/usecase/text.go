package usecase

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// plainText strips markup from an HTML formatted message body
func plainText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(doc.Text()), nil
}
