package sisl

// Merge folds a sequence of independently parsed SISL fragments into
// one unified value. Each fragment is parsed on its own (a failure in
// any fragment aborts the whole merge), lifted to an internal
// representation that preserves sparse list indices, and folded
// strictly left to right: later fragments observe the accumulated
// state of earlier ones.
//
// Object fields keep element order; a key first introduced by a later
// fragment is appended after all earlier keys. List entries keep the
// literal index parsed from their _N names. Primitives are replaced by
// the right operand (last fragment wins). A kind conflict at the same
// path is fatal.
//
// Zero fragments produce an empty object. One fragment is identical to
// a plain decode.
func Merge(fragments []string) (*Value, error) {
	if len(fragments) == 0 {
		return Obj(), nil
	}

	grouping, err := Parse(fragments[0])
	if err != nil {
		return nil, err
	}
	result, err := liftGrouping(grouping)
	if err != nil {
		return nil, err
	}

	for _, fragment := range fragments[1:] {
		grouping, err := Parse(fragment)
		if err != nil {
			return nil, err
		}
		lifted, err := liftGrouping(grouping)
		if err != nil {
			return nil, err
		}
		result, err = mergeValues(result, lifted)
		if err != nil {
			return nil, err
		}
	}

	return materialize(result)
}

// ============================================================
// Mergeable representation
// ============================================================

// mergeable preserves what a plain decode would normalize away: object
// entries in recorded order without dedup, list entries as a sparse
// index map with no gap filling. It exists only during a merge fold
// and is discarded once the final value is materialized.
type mergeKind uint8

const (
	mergeObject mergeKind = iota
	mergeList
	mergePrimitive
)

type mergeable struct {
	kind    mergeKind
	entries []mergeEntry          // objects: ordered key-value pairs
	items   map[uint64]*mergeable // lists: sparse index map
	prim    *Value                // primitives: the decoded scalar
}

type mergeEntry struct {
	key   string
	value *mergeable
}

// liftGrouping lifts a top-level grouping to a mergeable object.
func liftGrouping(g *Grouping) (*mergeable, error) {
	m := &mergeable{kind: mergeObject}
	for _, elem := range g.Elements {
		child, err := liftElement(elem)
		if err != nil {
			return nil, err
		}
		m.entries = append(m.entries, mergeEntry{key: elem.Name, value: child})
	}
	return m, nil
}

func liftElement(elem Element) (*mergeable, error) {
	if !elem.Value.IsGroup() {
		prim, err := decodeScalar(elem.Type, elem.Value.Str)
		if err != nil {
			return nil, err
		}
		return &mergeable{kind: mergePrimitive, prim: prim}, nil
	}

	switch elem.Type {
	case "obj":
		m := &mergeable{kind: mergeObject}
		for _, e := range elem.Value.Group.Elements {
			child, err := liftElement(e)
			if err != nil {
				return nil, err
			}
			m.entries = append(m.entries, mergeEntry{key: e.Name, value: child})
		}
		return m, nil
	case "list":
		m := &mergeable{kind: mergeList, items: make(map[uint64]*mergeable)}
		for _, e := range elem.Value.Group.Elements {
			idx, err := parseListIndex(e.Name)
			if err != nil {
				return nil, err
			}
			child, err := liftElement(e)
			if err != nil {
				return nil, err
			}
			m.items[idx] = child
		}
		return m, nil
	}
	return nil, &CodecError{Message: "unknown type for grouping value: " + elem.Type}
}

// ============================================================
// Pairwise merge
// ============================================================

func mergeValues(a, b *mergeable) (*mergeable, error) {
	if a.kind != b.kind {
		return nil, &MergeError{Message: "type conflict during merge"}
	}

	result := &mergeable{kind: a.kind}

	switch a.kind {
	case mergeObject:
		result.entries = make([]mergeEntry, len(a.entries))
		copy(result.entries, a.entries)

		for _, entry := range b.entries {
			i := findEntry(result.entries, entry.key)
			if i >= 0 {
				merged, err := mergeValues(result.entries[i].value, entry.value)
				if err != nil {
					return nil, err
				}
				result.entries[i].value = merged
			} else {
				result.entries = append(result.entries, entry)
			}
		}

	case mergeList:
		result.items = make(map[uint64]*mergeable, len(a.items))
		for idx, val := range a.items {
			result.items[idx] = val
		}

		for idx, bval := range b.items {
			if existing, ok := result.items[idx]; ok {
				merged, err := mergeValues(existing, bval)
				if err != nil {
					return nil, err
				}
				result.items[idx] = merged
			} else {
				result.items[idx] = bval
			}
		}

	case mergePrimitive:
		result.prim = b.prim
	}

	return result, nil
}

func findEntry(entries []mergeEntry, key string) int {
	for i := range entries {
		if entries[i].key == key {
			return i
		}
	}
	return -1
}

// ============================================================
// Materialization
// ============================================================

// materialize converts a mergeable to a value top-down: objects become
// ordered maps, lists become dense arrays over [0, max] with unclaimed
// indices set to null, primitives pass through.
func materialize(m *mergeable) (*Value, error) {
	switch m.kind {
	case mergeObject:
		obj := Obj()
		for _, entry := range m.entries {
			val, err := materialize(entry.value)
			if err != nil {
				return nil, err
			}
			obj.Set(entry.key, val)
		}
		return obj, nil

	case mergeList:
		list := List()
		if len(m.items) == 0 {
			return list, nil
		}
		var maxIdx uint64
		for idx := range m.items {
			if idx > maxIdx {
				maxIdx = idx
			}
		}
		for i := uint64(0); i <= maxIdx; i++ {
			item, ok := m.items[i]
			if !ok {
				list.Append(Null())
				continue
			}
			val, err := materialize(item)
			if err != nil {
				return nil, err
			}
			list.Append(val)
		}
		return list, nil

	default:
		return m.prim, nil
	}
}
