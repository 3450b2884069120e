package authoring

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abhisek/adaptiq/internal/bank"
)

// slug lowercases s and joins its alphanumeric words with dashes.
func slug(s string) string {
	return strings.ReplaceAll(normalize(s), " ", "-")
}

// idAllocator hands out <subject>-<topic>-<n> IDs that do not collide with
// any known ID.
type idAllocator struct {
	taken map[string]bool
	next  map[string]int
}

func newIDAllocator(existing []bank.Question) *idAllocator {
	a := &idAllocator{taken: make(map[string]bool), next: make(map[string]int)}
	for _, q := range existing {
		a.taken[q.ID] = true
		i := strings.LastIndexByte(q.ID, '-')
		if i < 0 {
			continue
		}
		if n, err := strconv.Atoi(q.ID[i+1:]); err == nil {
			prefix := q.ID[:i]
			a.next[prefix] = max(a.next[prefix], n)
		}
	}
	return a
}

func (a *idAllocator) allocate(subject, topic string) string {
	prefix := slug(subject)
	if t := slug(topic); t != "" {
		prefix += "-" + t
	}
	for {
		a.next[prefix]++
		id := fmt.Sprintf("%s-%d", prefix, a.next[prefix])
		if !a.taken[id] {
			a.taken[id] = true
			return id
		}
	}
}
