package sisl

import (
	"sort"
	"strconv"
)

// Split fragments a value into multiple self-contained SISL strings,
// each at most maxLen bytes. If the whole document already fits, no
// splitting is needed and Split reports needed == false with no parts.
//
// The value is flattened depth-first into (path, scalar) leaves; each
// leaf is rebuilt as a minimal chain of single-key object wrappers and
// single-index list wrappers up to the root, then fragments are packed
// greedily in leaf order. Absorption into the current part happens by
// shallow top-level key union only: any top-level key collision closes
// the current part and starts a new one with the candidate, even when
// a deeper merge would have succeeded. Feeding all parts to Merge
// reproduces the original value exactly, except that empty nested
// containers hold no leaves and do not survive an actual split.
func Split(v *Value, maxLen int) ([]string, bool, error) {
	full, err := Encode(v)
	if err != nil {
		return nil, false, err
	}
	if len(full) <= maxLen {
		return nil, false, nil
	}

	var leaves []leaf
	collectLeaves(v, nil, &leaves)

	if len(leaves) == 0 {
		// An empty object cannot shrink below its own encoding.
		return []string{full}, true, nil
	}

	fragments := make([]*mergeable, len(leaves))
	encoded := make([]string, len(leaves))
	minNeeded := 0
	for i, lf := range leaves {
		fragments[i] = buildFragment(lf)
		enc, err := encodeFragment(fragments[i])
		if err != nil {
			return nil, false, err
		}
		encoded[i] = enc
		if len(enc) > minNeeded {
			minNeeded = len(enc)
		}
	}
	if minNeeded > maxLen {
		return nil, false, &SplitError{
			Message:     "max-length too small to encode every fragment",
			MinRequired: minNeeded,
		}
	}

	var parts []string
	i := 0
	for i < len(fragments) {
		combined := fragments[i]
		current := encoded[i]
		i++

		for i < len(fragments) {
			candidate, ok := absorb(combined, fragments[i])
			if !ok {
				break
			}
			enc, err := encodeFragment(candidate)
			if err != nil {
				return nil, false, err
			}
			if len(enc) > maxLen {
				break
			}
			combined = candidate
			current = enc
			i++
		}

		parts = append(parts, current)
	}

	return parts, true, nil
}

// ============================================================
// Leaf flattening
// ============================================================

// pathStep is one step from the root toward a leaf: an object key or a
// list position.
type pathStep struct {
	key     string
	index   uint64
	isIndex bool
}

type leaf struct {
	path  []pathStep
	value *Value
}

func collectLeaves(v *Value, path []pathStep, out *[]leaf) {
	switch v.Type() {
	case TypeObj:
		for _, entry := range v.objVal {
			next := append(append([]pathStep(nil), path...), pathStep{key: entry.Key})
			collectLeaves(entry.Value, next, out)
		}
	case TypeList:
		for i, item := range v.listVal {
			next := append(append([]pathStep(nil), path...), pathStep{index: uint64(i), isIndex: true})
			collectLeaves(item, next, out)
		}
	default:
		*out = append(*out, leaf{path: path, value: v})
	}
}

// buildFragment reconstructs the minimal wrapper chain from a leaf up
// to the document root. List steps keep their literal index, so the
// fragment round-trips through Merge without renumbering.
func buildFragment(lf leaf) *mergeable {
	current := &mergeable{kind: mergePrimitive, prim: lf.value}

	for i := len(lf.path) - 1; i >= 0; i-- {
		step := lf.path[i]
		if step.isIndex {
			current = &mergeable{
				kind:  mergeList,
				items: map[uint64]*mergeable{step.index: current},
			}
		} else {
			current = &mergeable{
				kind:    mergeObject,
				entries: []mergeEntry{{key: step.key, value: current}},
			}
		}
	}

	return current
}

// absorb attempts a shallow top-level key union of two fragments. It
// reports false as soon as any top-level key collides; a deeper
// structural merge is never attempted.
func absorb(a, b *mergeable) (*mergeable, bool) {
	for _, entry := range b.entries {
		if findEntry(a.entries, entry.key) >= 0 {
			return nil, false
		}
	}

	combined := &mergeable{kind: mergeObject}
	combined.entries = make([]mergeEntry, 0, len(a.entries)+len(b.entries))
	combined.entries = append(combined.entries, a.entries...)
	combined.entries = append(combined.entries, b.entries...)
	return combined, true
}

// ============================================================
// Fragment encoding
// ============================================================

// encodeFragment renders a fragment as SISL text. Unlike Encode, list
// entries keep their literal sparse indices; only the splitter needs
// this form, and Merge on the other side reads it back unchanged.
func encodeFragment(m *mergeable) (string, error) {
	var e encoder
	if err := e.encodeFragmentObjBody(m); err != nil {
		return "", err
	}
	return e.sb.String(), nil
}

func (e *encoder) encodeFragmentObjBody(m *mergeable) error {
	e.sb.WriteString("{")
	for i, entry := range m.entries {
		if i > 0 {
			e.sb.WriteString(", ")
		}
		e.sb.WriteString(entry.key)
		e.sb.WriteString(": ")
		if err := e.encodeFragmentTagged(entry.value); err != nil {
			return err
		}
	}
	e.sb.WriteString("}")
	return nil
}

func (e *encoder) encodeFragmentListBody(m *mergeable) error {
	indices := make([]uint64, 0, len(m.items))
	for idx := range m.items {
		indices = append(indices, idx)
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	e.sb.WriteString("{")
	for i, idx := range indices {
		if i > 0 {
			e.sb.WriteString(", ")
		}
		e.sb.WriteString("_")
		e.sb.WriteString(strconv.FormatUint(idx, 10))
		e.sb.WriteString(": ")
		if err := e.encodeFragmentTagged(m.items[idx]); err != nil {
			return err
		}
	}
	e.sb.WriteString("}")
	return nil
}

func (e *encoder) encodeFragmentTagged(m *mergeable) error {
	switch m.kind {
	case mergeObject:
		e.sb.WriteString("!obj ")
		return e.encodeFragmentObjBody(m)
	case mergeList:
		e.sb.WriteString("!list ")
		return e.encodeFragmentListBody(m)
	default:
		return e.encodeTagged(m.prim)
	}
}
