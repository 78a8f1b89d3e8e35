package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// fetch-titles pulls product titles out of an HTML listing page and writes
// them one per line, ready for batch tagging with tagkeys.

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: fetch-titles <url> [output file]")
	}
	url := os.Args[1]
	outPath := "testdata/titles/keywords.txt"
	if len(os.Args) > 2 {
		outPath = os.Args[2]
	}

	log.Printf("Fetching %s ...", url)

	resp, err := http.Get(url)
	if err != nil {
		log.Fatal("Failed to fetch page:", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		log.Fatalf("HTTP %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		log.Fatal("Failed to parse HTML:", err)
	}

	titles := extractTitles(doc)
	if len(titles) == 0 {
		log.Fatal("No titles found")
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		log.Fatal("Failed to create output directory:", err)
	}
	outFile, err := os.Create(outPath)
	if err != nil {
		log.Fatal("Failed to create output file:", err)
	}
	defer outFile.Close()

	for _, t := range titles {
		fmt.Fprintln(outFile, t)
	}

	log.Printf("✓ Wrote %d titles to %s", len(titles), outPath)
}

// extractTitles walks the document collecting likely product titles: heading
// text, anchor title attributes and image alt text.
func extractTitles(doc *html.Node) []string {
	seen := make(map[string]struct{})
	var titles []string

	add := func(s string) {
		s = strings.Join(strings.Fields(s), " ")
		if !plausibleTitle(s) {
			return
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		titles = append(titles, s)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "h1", "h2", "h3":
				add(textOf(n))
			case "a":
				add(attr(n, "title"))
			case "img":
				add(attr(n, "alt"))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return titles
}

// plausibleTitle filters out navigation labels and truncated fragments.
func plausibleTitle(s string) bool {
	n := utf8.RuneCountInString(s)
	return n >= 8 && n <= 200
}

func textOf(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}
