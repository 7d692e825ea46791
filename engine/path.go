package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// segment is one step of a dotted edit path, e.g. "tags[0]" decomposes
// into key "tags" with index 0.
type segment struct {
	key   string
	index *int
}

// parsePath splits a path like "custom.reviewers[2]" into segments.
// Edit uses it for the part of a "custom." path below Metadata.Custom
// and for the "rows"/"rows[n]" path of table content.
func parsePath(path string) ([]segment, error) {
	if path == "" {
		return nil, fmt.Errorf("empty path")
	}
	var segs []segment
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			return nil, fmt.Errorf("empty path segment in %q", path)
		}
		key := part
		var idx *int
		if open := strings.IndexByte(part, '['); open >= 0 {
			if !strings.HasSuffix(part, "]") {
				return nil, fmt.Errorf("malformed index in segment %q", part)
			}
			key = part[:open]
			n, err := strconv.Atoi(part[open+1 : len(part)-1])
			if err != nil {
				return nil, fmt.Errorf("non-numeric index in segment %q: %w", part, err)
			}
			idx = &n
		}
		segs = append(segs, segment{key: key, index: idx})
	}
	return segs, nil
}

// getPath navigates root following segs, returning the addressed value.
func getPath(root interface{}, segs []segment) (interface{}, bool) {
	cur := root
	for _, s := range segs {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		v, ok := m[s.key]
		if !ok {
			return nil, false
		}
		if s.index != nil {
			arr, ok := v.([]interface{})
			if !ok || *s.index < 0 || *s.index >= len(arr) {
				return nil, false
			}
			cur = arr[*s.index]
			continue
		}
		cur = v
	}
	return cur, true
}

// setPath navigates root along segs, creating intermediate maps as
// needed, and assigns value at the final segment.
func setPath(root map[string]interface{}, segs []segment, value interface{}) error {
	if len(segs) == 0 {
		return fmt.Errorf("empty path")
	}
	cur := root
	for i, s := range segs {
		last := i == len(segs)-1
		if s.index != nil {
			arr, _ := cur[s.key].([]interface{})
			if !last {
				if *s.index < 0 || *s.index >= len(arr) {
					return fmt.Errorf("index %d out of range", *s.index)
				}
				next, ok := arr[*s.index].(map[string]interface{})
				if !ok {
					return fmt.Errorf("segment %q is not addressable", s.key)
				}
				cur = next
				continue
			}
			if *s.index < 0 || *s.index > len(arr) {
				return fmt.Errorf("index %d out of range", *s.index)
			}
			if *s.index == len(arr) {
				arr = append(arr, value)
			} else {
				arr[*s.index] = value
			}
			cur[s.key] = arr
			return nil
		}
		if last {
			cur[s.key] = value
			return nil
		}
		next, ok := cur[s.key].(map[string]interface{})
		if !ok {
			next = make(map[string]interface{})
			cur[s.key] = next
		}
		cur = next
	}
	return nil
}
