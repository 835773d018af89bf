package websearch

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/tripmind/travel-concierge/internal/types"
)

const (
	maxExtractedPlaces  = 15
	maxSnippetPlaces    = 2
	maxDescriptionChars = 150
)

var (
	ordinalPrefixRe = regexp.MustCompile(`^\d+[.)]\s*`)
	datePrefixRe    = regexp.MustCompile(`^[A-Z][a-z]{2}\s+\d+,\s+\d{4}\s*[·•]\s*`)
	leadingVerbRe   = regexp.MustCompile(`(?i)^(Visit|Explore|See|Try|Check out|The)\s+`)
	trailingParenRe = regexp.MustCompile(`\s*\([^)]*\)\s*$`)
	urlRe           = regexp.MustCompile(`https?://\S+`)
	emailRe         = regexp.MustCompile(`\S+@\S+`)

	// "1. Place Name - description" style list items.
	listItemRe = regexp.MustCompile(`^\d+[.)]\s*(.+?)(?:\s*[-–—:]|$)`)
	// Numbered entries inside flat snippet text.
	snippetOrdinalRe = regexp.MustCompile(`\d+[.)]\s+([A-Z][^.!?\n]{5,70}?)(?:\s*[-–—:,]|\n|$)`)
	// Runs of 2-4 capitalized words, the proper-noun fallback.
	properNounRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+){1,3})\b`)
)

// Phrases that mark a candidate as navigation chrome rather than a place.
var genericPhrases = []string{
	"click here", "read more", "see more", "advertisement",
	"subscribe", "follow us", "share", "comment", "login",
	"best", "top", "things to do", "guide", "tips",
	"welcome", "home", "about", "contact", "privacy",
}

// ExtractPlacesFromHTML pulls candidate place names out of a page. Three
// heuristics run independently and their output is unioned before dedup:
// headings, ordinal list items, and bold runs. Pages that fail to parse
// yield an empty list.
func ExtractPlacesFromHTML(page, sourceURL string) []types.Place {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil
	}

	elements := collectElements(doc)
	var places []types.Place

	// Strategy 1: headings usually carry the place name in listicle pages,
	// with the description in the paragraph that follows.
	seenHeadings := 0
	for i, n := range elements {
		if n.Data != "h2" && n.Data != "h3" && n.Data != "h4" {
			continue
		}
		if seenHeadings++; seenHeadings > 20 {
			break
		}
		name := cleanPlaceName(nodeText(n))
		if isValidPlaceName(name) {
			places = append(places, types.Place{
				Name:        name,
				Description: nextParagraph(elements, i),
				SourceURL:   sourceURL,
			})
		}
	}

	// Strategy 2: "1. Place Name" list items.
	seenItems := 0
	for _, n := range elements {
		if n.Data != "li" {
			continue
		}
		if seenItems++; seenItems > 30 {
			break
		}
		text := nodeText(n)
		match := listItemRe.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		name := cleanPlaceName(match[1])
		if isValidPlaceName(name) {
			places = append(places, types.Place{
				Name:        name,
				Description: truncate(text, maxDescriptionChars),
				SourceURL:   sourceURL,
			})
		}
	}

	// Strategy 3: bold runs, which articles use to highlight place names.
	seenBold := 0
	for i, n := range elements {
		if n.Data != "strong" && n.Data != "b" {
			continue
		}
		if seenBold++; seenBold > 20 {
			break
		}
		name := cleanPlaceName(nodeText(n))
		if isValidPlaceName(name) && len(name) > 5 {
			places = append(places, types.Place{
				Name:        name,
				Description: nextParagraph(elements, i),
				SourceURL:   sourceURL,
			})
		}
	}

	return places
}

// ExtractPlacesFromText runs the ordinal-pattern and proper-noun heuristics
// against flat text. Used against search snippets when a page fetch fails.
func ExtractPlacesFromText(text string) []types.Place {
	var places []types.Place

	for _, match := range snippetOrdinalRe.FindAllStringSubmatch(text, -1) {
		name := cleanPlaceName(match[1])
		if isValidPlaceName(name) {
			places = append(places, types.Place{Name: name})
		}
	}

	nouns := properNounRe.FindAllString(text, 10)
	for _, noun := range nouns {
		if isValidPlaceName(noun) {
			places = append(places, types.Place{Name: noun})
		}
	}

	return places
}

// DedupePlaces drops case-insensitive duplicate names, first occurrence
// wins, and caps the result.
func DedupePlaces(places []types.Place, limit int) []types.Place {
	seen := make(map[string]bool, len(places))
	unique := make([]types.Place, 0, len(places))
	for _, place := range places {
		key := strings.ToLower(place.Name)
		if seen[key] || len(place.Name) <= 3 {
			continue
		}
		seen[key] = true
		unique = append(unique, place)
		if len(unique) == limit {
			break
		}
	}
	return unique
}

// cleanPlaceName strips the noise patterns that listicle markup wraps
// around a place name.
func cleanPlaceName(text string) string {
	text = ordinalPrefixRe.ReplaceAllString(text, "")
	text = datePrefixRe.ReplaceAllString(text, "")
	text = leadingVerbRe.ReplaceAllString(text, "")
	text = trailingParenRe.ReplaceAllString(text, "")
	text = urlRe.ReplaceAllString(text, "")
	text = emailRe.ReplaceAllString(text, "")
	return strings.Join(strings.Fields(text), " ")
}

func isValidPlaceName(text string) bool {
	if len(text) < 4 || len(text) > 80 {
		return false
	}

	runes := []rune(text)
	if !unicode.IsUpper(runes[0]) {
		return false
	}

	lower := strings.ToLower(text)
	for _, phrase := range genericPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}

	// All-caps runs longer than 10 chars are section headers, not names.
	if len(text) > 10 && text == strings.ToUpper(text) {
		return false
	}

	hasLetter := false
	for _, r := range runes {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	return hasLetter
}

// collectElements flattens the DOM into document order, skipping script and
// style subtrees so their text never leaks into candidates.
func collectElements(doc *html.Node) []*html.Node {
	var elements []*html.Node
	var traverse func(*html.Node)
	traverse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if n.Data == "script" || n.Data == "style" {
				return
			}
			elements = append(elements, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			traverse(c)
		}
	}
	traverse(doc)
	return elements
}

// nextParagraph returns the text of the first <p> following elements[i] in
// document order, truncated for use as a description.
func nextParagraph(elements []*html.Node, i int) string {
	for j := i + 1; j < len(elements); j++ {
		if elements[j].Data == "p" {
			return truncate(nodeText(elements[j]), maxDescriptionChars)
		}
	}
	return ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
