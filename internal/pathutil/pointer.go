package pathutil

import (
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/schemawalk/internal/nodeutil"
)

var (
	escaper   = strings.NewReplacer("~", "~0", "/", "~1")
	unescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// Escape escapes a single reference token: "~" becomes "~0" and "/" becomes "~1".
func Escape(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	return escaper.Replace(token)
}

// Unescape reverses Escape. "~01" unescapes to "~1", not "/".
func Unescape(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	return unescaper.Replace(token)
}

// Append escapes each token and appends it to ptr.
func Append(ptr string, tokens ...string) string {
	if len(tokens) == 0 {
		return ptr
	}
	var b strings.Builder
	n := len(ptr)
	for _, t := range tokens {
		n += len(t) + 1
	}
	b.Grow(n)
	b.WriteString(ptr)
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(Escape(t))
	}
	return b.String()
}

// AppendIndex appends an array index token to ptr.
func AppendIndex(ptr string, i int) string {
	return ptr + "/" + strconv.Itoa(i)
}

// Split returns the unescaped tokens of ptr. The root pointer "" yields no
// tokens. A leading "#" (URI fragment form) is accepted.
func Split(ptr string) ([]string, error) {
	ptr = strings.TrimPrefix(ptr, "#")
	if ptr == "" {
		return nil, nil
	}
	if ptr[0] != '/' {
		return nil, fmt.Errorf("pathutil: invalid JSON pointer %q: must be empty or start with '/'", ptr)
	}
	tokens := strings.Split(ptr[1:], "/")
	for i, t := range tokens {
		tokens[i] = Unescape(t)
	}
	return tokens, nil
}

// Lookup resolves ptr against root. Document nodes are unwrapped and alias
// nodes are followed. Mapping tokens match keys (last duplicate wins) and
// sequence tokens must be canonical decimal indexes.
func Lookup(root *yaml.Node, ptr string) (*yaml.Node, error) {
	tokens, err := Split(ptr)
	if err != nil {
		return nil, err
	}

	cur := deref(root)
	if cur == nil {
		return nil, fmt.Errorf("pathutil: empty document")
	}
	walked := ""
	for _, tok := range tokens {
		walked = Append(walked, tok)
		switch cur.Kind {
		case yaml.MappingNode:
			next := nodeutil.Get(cur, tok)
			if next == nil {
				return nil, fmt.Errorf("pathutil: %s: no such key", walked)
			}
			cur = deref(next)
		case yaml.SequenceNode:
			i, err := parseIndex(tok)
			if err != nil {
				return nil, fmt.Errorf("pathutil: %s: %w", walked, err)
			}
			if i >= len(cur.Content) {
				return nil, fmt.Errorf("pathutil: %s: index out of range (len %d)", walked, len(cur.Content))
			}
			cur = deref(cur.Content[i])
		default:
			return nil, fmt.Errorf("pathutil: %s: cannot descend into %s", walked, nodeutil.Kind(cur))
		}
	}
	return cur, nil
}

func deref(n *yaml.Node) *yaml.Node {
	n = nodeutil.Unwrap(n)
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func parseIndex(tok string) (int, error) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, fmt.Errorf("invalid array index %q", tok)
	}
	for _, r := range tok {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid array index %q", tok)
		}
	}
	return strconv.Atoi(tok)
}
