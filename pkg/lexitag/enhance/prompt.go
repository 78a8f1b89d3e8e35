package enhance

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cognicore/lexitag/pkg/lexitag/tag"
)

const systemPrompt = "You are an e-commerce keyword analyst fluent in Chinese, English, Japanese, German, French and Spanish. You classify shopping search terms."

// tagDescriptions explain the vocabulary to the model, one line per tag,
// with examples across the supported languages.
var tagDescriptions = []struct {
	tag  string
	desc string
}{
	{tag.Brand, "brand names, e.g. Apple, Nike, 华为, New Balance"},
	{tag.Product, "product categories, e.g. running shoes, 手机, leggings, casque"},
	{tag.Audience, "target user groups, e.g. men, women, kids, damen, femme, 児童"},
	{tag.Scenario, "usage scenarios, e.g. office, running, yoga, camping, 户外"},
	{tag.Color, "color terms, e.g. black, 黑色, schwarz, noir, negro"},
	{tag.Size, "sizes and specs, e.g. 10.5, 14 inch, 256GB, S/M/L/XL"},
	{tag.Feature, "selling points, e.g. waterproof, breathable, wireless, 防水"},
	{tag.Attribute, "product attributes, e.g. long sleeve, high waist, cotton, 棉质"},
}

func buildPrompt(words []string, keyword string) string {
	wordsJSON, _ := json.Marshal(words)

	var buf bytes.Buffer
	buf.WriteString("Classify each of the following words into exactly one tag.\n\nTags:\n")
	for _, d := range tagDescriptions {
		fmt.Fprintf(&buf, "- %s: %s\n", d.tag, d.desc)
	}
	fmt.Fprintf(&buf, "\nWords:\n%s\n", wordsJSON)
	if keyword != "" {
		fmt.Fprintf(&buf, "\nContext (the full search keyword): %s\n", keyword)
	}
	buf.WriteString(`
Answer with pure JSON, for example:
{
  "word1": {"tag": "brand", "confidence": 0.9},
  "word2": {"tag": "product", "confidence": 0.85}
}

Rules:
1. One tag per word, the most likely one.
2. Confidence is between 0.6 and 0.95.
3. For function words (for, with, de, para) answer {"tag": "attribute", "confidence": 0.7}.
4. Return the JSON object only, no markdown fences or commentary.
`)
	return buf.String()
}
