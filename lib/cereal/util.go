package cereal

import (
	"bytes"
	"fmt"
)

/*
	Tab2space replaces leading tabs on each line with two spaces each,
	so tab-indented documents are acceptable yaml.

	Tabs after the first non-tab byte of a line are left alone.
*/
func Tab2space(x []byte) []byte {
	// yaml needs at least two spaces per indent, so this is an expansion;
	// one pass over lines, writing into a fresh buffer.
	lines := bytes.Split(x, []byte{'\n'})
	buf := bytes.Buffer{}
	buf.Grow(len(x))
	for i, line := range lines {
		for n := range line {
			if line[n] != '\t' {
				buf.Write(line[n:])
				break
			}
			buf.Write([]byte{' ', ' '})
		}
		if i != len(lines)-1 {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}

/*
	StringifyMapKeys walks a value decoded by the yaml library and turns
	every `map[interface{}]interface{}` into a `map[string]interface{}`.

	Non-string keys (yaml allows `1: foo`) are formatted with `fmt.Sprint`.
	Slices are rewritten in place.
*/
func StringifyMapKeys(value interface{}) interface{} {
	switch value := value.(type) {
	case map[interface{}]interface{}:
		next := make(map[string]interface{}, len(value))
		for k, v := range value {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			next[ks] = StringifyMapKeys(v)
		}
		return next
	case []interface{}:
		for i := 0; i < len(value); i++ {
			value[i] = StringifyMapKeys(value[i])
		}
		return value
	default:
		return value
	}
}
