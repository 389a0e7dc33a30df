package loader

import "maps"

// Merge returns a new map holding base overlaid by top. Nested maps are
// merged key by key; any other value in top replaces the one in base.
// Neither argument is modified.
func Merge(base, top map[string]any) map[string]any {
	out := maps.Clone(base)
	if out == nil {
		out = make(map[string]any, len(top))
	}
	for k, tv := range top {
		bm, bok := out[k].(map[string]any)
		tm, tok := tv.(map[string]any)
		if bok && tok {
			out[k] = Merge(bm, tm)
			continue
		}
		out[k] = tv
	}
	return out
}
