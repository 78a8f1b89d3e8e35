package span

import "strings"

// trieNode is one character of a stored phrase.
type trieNode struct {
	children map[rune]*trieNode
	terminal bool
	entry    Entry
}

// trie stores phrases for longest-prefix matching. Keys are matched
// case-insensitively; the rune-level structure works for both CJK entries
// (no word boundaries) and Latin entries (boundaries checked by the caller).
type trie struct {
	root trieNode
}

func newTrie() *trie {
	return &trie{root: trieNode{children: make(map[rune]*trieNode)}}
}

func (t *trie) insert(phrase string, e Entry) {
	node := &t.root
	for _, r := range strings.ToLower(phrase) {
		child, ok := node.children[r]
		if !ok {
			child = &trieNode{children: make(map[rune]*trieNode)}
			node.children[r] = child
		}
		node = child
	}
	node.terminal = true
	node.entry = e
}

// longest finds the longest stored phrase that is a prefix of runes[start:].
// It returns the rune offset just past the match, so "new balance" wins over
// "balance" when both are stored. The input must already be lower-cased.
func (t *trie) longest(runes []rune, start int) (end int, e Entry, ok bool) {
	node := &t.root
	for i := start; i < len(runes); i++ {
		child, found := node.children[runes[i]]
		if !found {
			break
		}
		node = child
		if node.terminal {
			end, e, ok = i+1, node.entry, true
		}
	}
	return end, e, ok
}
