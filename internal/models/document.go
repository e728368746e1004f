package models

import (
	"encoding/json"
)

// mergeJSON encodes known and then lays its fields over extra, so typed
// fields always win over a pass-through field of the same name.
func mergeJSON(known any, extra map[string]any) ([]byte, error) {
	base, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return base, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	merged := make(map[string]any, len(extra)+len(fields))
	for k, v := range extra {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// extraFields returns the members of a JSON object that are not listed in known.
func extraFields(data []byte, known map[string]struct{}) (map[string]any, error) {
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

func cloneExtra(extra map[string]any) map[string]any {
	if extra == nil {
		return nil
	}
	out := make(map[string]any, len(extra))
	for k, v := range extra {
		out[k] = v
	}
	return out
}
