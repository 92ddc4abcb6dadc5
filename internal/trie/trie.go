// Package trie indexes the literal prefixes of command patterns so that
// partially typed lines can be completed. It is only used for
// completion; matching never consults it.
package trie

import (
	"sort"
	"strings"
)

// NodeIndex is the position of a node inside the arena.
type NodeIndex int

const root NodeIndex = 0

// Arena stores every node in a single slice and links children by index.
type Arena struct {
	nodes []arenaNode
}

type arenaNode struct {
	// children maps the next literal token to its node.
	children map[string]NodeIndex
}

// NewArena creates an arena holding only the root node.
func NewArena() *Arena {
	arena := &Arena{
		nodes: make([]arenaNode, 0, 64),
	}
	arena.newNode()
	return arena
}

func (a *Arena) newNode() NodeIndex {
	idx := NodeIndex(len(a.nodes))
	a.nodes = append(a.nodes, arenaNode{
		children: make(map[string]NodeIndex),
	})
	return idx
}

// Insert adds a token sequence.
func (a *Arena) Insert(sequence []string) {
	current := root
	for _, part := range sequence {
		childIdx, exists := a.nodes[current].children[part]
		if !exists {
			childIdx = a.newNode()
			a.nodes[current].children[part] = childIdx
		}
		current = childIdx
	}
}

// find returns the node reached by following the sequence from the root.
func (a *Arena) find(sequence []string) (NodeIndex, bool) {
	current := root
	for _, part := range sequence {
		next, ok := a.nodes[current].children[part]
		if !ok {
			return 0, false
		}
		current = next
	}
	return current, true
}

// Next returns the sorted tokens that may follow the given sequence.
func (a *Arena) Next(sequence []string) []string {
	idx, ok := a.find(sequence)
	if !ok {
		return nil
	}
	return sortedKeys(a.nodes[idx].children)
}

func sortedKeys(children map[string]NodeIndex) []string {
	keys := make([]string, 0, len(children))
	for key := range children {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Completer completes partially typed lines against the inserted sequences.
type Completer struct {
	arena *Arena
}

// NewCompleter returns a Completer over the given literal prefixes.
// Empty prefixes are skipped.
func NewCompleter(prefixes ...[]string) *Completer {
	c := &Completer{arena: NewArena()}
	for _, p := range prefixes {
		if len(p) > 0 {
			c.arena.Insert(p)
		}
	}
	return c
}

// Complete returns the candidate completions for the word under the
// cursor at the end of line. Complete words before it must follow an
// inserted path; the last, possibly empty, word is matched by prefix.
// Candidates are returned as full lines.
func (c *Completer) Complete(line string) []string {
	words := strings.Fields(line)
	partial := ""
	if len(words) > 0 && !strings.HasSuffix(line, " ") {
		partial = words[len(words)-1]
		words = words[:len(words)-1]
	}

	var candidates []string
	base := strings.Join(words, " ")
	for _, next := range c.arena.Next(words) {
		if !strings.HasPrefix(next, partial) {
			continue
		}
		if base == "" {
			candidates = append(candidates, next)
		} else {
			candidates = append(candidates, base+" "+next)
		}
	}
	return candidates
}
