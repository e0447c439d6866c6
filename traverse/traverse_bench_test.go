package traverse

import (
	"fmt"
	"strings"
	"testing"
)

func BenchmarkTraverseSmallSchema(b *testing.B) {
	root := mustSchema(b, collectorSchema)
	hook := func(v *Visit) error { return nil }

	for b.Loop() {
		_ = Traverse(root, WithPre(hook), WithPost(hook))
	}
}

func BenchmarkTraverseWideSchema(b *testing.B) {
	var sb strings.Builder
	sb.WriteString(`{"properties": {`)
	for i := range 500 {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `"p%d": {"type": "string", "allOf": [{"minLength": 1}, {"maxLength": 10}]}`, i)
	}
	sb.WriteString(`}}`)
	root := mustSchema(b, sb.String())
	hook := func(v *Visit) error { return nil }

	for b.Loop() {
		_ = TraverseFunc(root, hook)
	}
}

func BenchmarkTraverseDeepSchema(b *testing.B) {
	const depth = 200
	src := strings.Repeat(`{"not": `, depth) + `{}` + strings.Repeat(`}`, depth)
	root := mustSchema(b, src)

	for b.Loop() {
		_, _ = ComputeStats(root)
	}
}
