package ir

import (
	"fmt"
)

// MarshalLineLists encodes a list of designs, each a list of lines, as
// canonical JSON: [[[0,1,2],[0,3,4]],...].
func MarshalLineLists(designs [][][]int) ([]byte, error) {
	if designs == nil {
		designs = [][][]int{}
	}
	return MarshalCanonical(designs)
}

// UnmarshalLineLists decodes the output of MarshalLineLists.
// Floats, nulls and non-array shapes are rejected.
func UnmarshalLineLists(data []byte) ([][][]int, error) {
	v, err := UnmarshalIRValue(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal line lists: %w", err)
	}
	outer, ok := v.(IRArray)
	if !ok {
		return nil, fmt.Errorf("unmarshal line lists: expected array, got %T", v)
	}

	designs := make([][][]int, len(outer))
	for i, dv := range outer {
		lines, err := toLineList(dv)
		if err != nil {
			return nil, fmt.Errorf("unmarshal line lists: design[%d]: %w", i, err)
		}
		designs[i] = lines
	}
	return designs, nil
}

// UnmarshalLineList decodes a single design's line list.
func UnmarshalLineList(data []byte) ([][]int, error) {
	v, err := UnmarshalIRValue(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal line list: %w", err)
	}
	return toLineList(v)
}

func toLineList(v IRValue) ([][]int, error) {
	arr, ok := v.(IRArray)
	if !ok {
		return nil, fmt.Errorf("expected array of lines, got %T", v)
	}
	lines := make([][]int, len(arr))
	for i, lv := range arr {
		pts, ok := lv.(IRArray)
		if !ok {
			return nil, fmt.Errorf("line[%d]: expected array, got %T", i, lv)
		}
		line := make([]int, len(pts))
		for j, pv := range pts {
			n, ok := pv.(IRInt)
			if !ok {
				return nil, fmt.Errorf("line[%d][%d]: expected int, got %T", i, j, pv)
			}
			line[j] = int(n)
		}
		lines[i] = line
	}
	return lines, nil
}
