package rules

import "fmt"

// binTrie resolves the longest issuer BIN entry that prefixes a card number.
type binTrie struct {
	nodes   []binNode
	entries []BinInfo
}

type binNode struct {
	next  map[byte]int
	entry int
}

func newBinTrie() *binTrie {
	return &binTrie{nodes: []binNode{{next: map[byte]int{}, entry: -1}}}
}

// insert adds bin to the trie. A BIN already present keeps its first entry.
func (t *binTrie) insert(bin BinInfo) error {
	if !isDigits(bin.Bin) {
		return fmt.Errorf("bin %q must contain only digits", bin.Bin)
	}

	current := 0
	for i := 0; i < len(bin.Bin); i++ {
		b := bin.Bin[i]
		next, ok := t.nodes[current].next[b]
		if !ok {
			t.nodes = append(t.nodes, binNode{next: map[byte]int{}, entry: -1})
			next = len(t.nodes) - 1
			t.nodes[current].next[b] = next
		}
		current = next
	}
	if t.nodes[current].entry >= 0 {
		return nil
	}
	t.entries = append(t.entries, bin.clone())
	t.nodes[current].entry = len(t.entries) - 1
	return nil
}

func (t *binTrie) lookup(number string) (BinInfo, bool) {
	state := 0
	found := -1
	for i := 0; i < len(number); i++ {
		next, ok := t.nodes[state].next[number[i]]
		if !ok {
			break
		}
		state = next
		if t.nodes[state].entry >= 0 {
			found = t.nodes[state].entry
		}
	}
	if found < 0 {
		return BinInfo{}, false
	}
	return t.entries[found].clone(), true
}
