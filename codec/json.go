package codec

import "encoding/json"

// JSON encodes with encoding/json. With V=any, objects decode as
// map[string]any and numbers as float64.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }
func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}
