// Package pageprep reduces a fetched HTML page to the parts a model needs to
// extract a recipe: any schema.org Recipe JSON-LD and the main content as Markdown.
package pageprep

import (
	"encoding/json"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
)

// DefaultMaxChars caps the Markdown handed to the model
const DefaultMaxChars = 24000

// maxJSONLDChars caps the structured data block
const maxJSONLDChars = 12000

// noiseSelectors are removed before the content container is chosen
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"nav", "footer", "header", "aside",
	"img", "picture", "figure", "figcaption",
	"iframe", "video", "audio", "svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
	".comments", "#comments", ".newsletter", ".share", ".social",
}

// Page is the prepared content of a recipe page
type Page struct {
	Title    string
	JSONLD   string
	Markdown string
}

// Prepare parses the HTML and returns its title, the first schema.org Recipe
// found in JSON-LD (re-encoded compactly) and the main content as Markdown.
func Prepare(html string, maxChars int) (*Page, error) {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	page := &Page{
		Title:  strings.TrimSpace(doc.Find("title").First().Text()),
		JSONLD: truncate(recipeJSONLD(doc), maxJSONLDChars),
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, tag := range []string{"[itemtype*='schema.org/Recipe']", "main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return page, nil
	}

	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, fmt.Errorf("serializing content: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}
	page.Markdown = truncate(strings.TrimSpace(markdown), maxChars)

	return page, nil
}

// IsEmpty reports whether nothing usable was found
func (p *Page) IsEmpty() bool {
	return p.JSONLD == "" && strings.TrimSpace(p.Markdown) == ""
}

func recipeJSONLD(doc *goquery.Document) string {
	var found string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data interface{}
		if err := json.Unmarshal([]byte(strings.TrimSpace(s.Text())), &data); err != nil {
			return true
		}
		node := findRecipeNode(data)
		if node == nil {
			return true
		}
		encoded, err := json.Marshal(node)
		if err != nil {
			return true
		}
		found = string(encoded)
		return false
	})
	return found
}

// findRecipeNode walks JSON-LD looking for an object whose @type is or includes Recipe.
// It descends into arrays and @graph containers.
func findRecipeNode(v interface{}) map[string]interface{} {
	switch node := v.(type) {
	case []interface{}:
		for _, item := range node {
			if found := findRecipeNode(item); found != nil {
				return found
			}
		}
	case map[string]interface{}:
		if isRecipeType(node["@type"]) {
			return node
		}
		if graph, ok := node["@graph"]; ok {
			return findRecipeNode(graph)
		}
	}
	return nil
}

func isRecipeType(t interface{}) bool {
	switch typ := t.(type) {
	case string:
		return strings.EqualFold(typ, "Recipe")
	case []interface{}:
		for _, item := range typ {
			if s, ok := item.(string); ok && strings.EqualFold(s, "Recipe") {
				return true
			}
		}
	}
	return false
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
