package registry

import "sort"

// Order arranges items canonically. Items whose stem matches a registered
// name come first, in registry order; the rest follow sorted by stem.
// Items sharing a stem keep their relative order. The input is not
// modified.
func Order[T any](r *Registry, items []T, stem func(T) string) []T {
	byStem := make(map[string][]int, len(items))
	for i, it := range items {
		s := stem(it)
		byStem[s] = append(byStem[s], i)
	}

	out := make([]T, 0, len(items))
	used := make([]bool, len(items))
	for _, e := range r.entries {
		for _, i := range byStem[Filename(e.Name)] {
			if used[i] {
				continue
			}
			used[i] = true
			out = append(out, items[i])
		}
	}

	var rest []int
	for i := range items {
		if !used[i] {
			rest = append(rest, i)
		}
	}
	sort.SliceStable(rest, func(a, b int) bool {
		return stem(items[rest[a]]) < stem(items[rest[b]])
	})
	for _, i := range rest {
		out = append(out, items[i])
	}

	return out
}

// Order arranges section names canonically, matching names by their
// filename form.
func (r *Registry) Order(names []string) []string {
	return Order(r, names, Filename)
}
