package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Code tokenizes code with the lexer registered for lang and returns a
// <code> element whose children are classed token spans. Unknown languages
// fall back to plain text.
func Code(lang, code string) Node {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	node := Element("code", "code").WithAttr("lang", lexer.Config().Name)
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return node.Append(Text(code))
	}
	tokens := it.Tokens()
	// лексер дописывает '\n' в конец, если его не было
	if n := len(tokens); n > 0 && !strings.HasSuffix(code, "\n") {
		tokens[n-1].Value = strings.TrimSuffix(tokens[n-1].Value, "\n")
	}
	for _, tok := range tokens {
		if tok.Value == "" {
			continue
		}
		class := chroma.StandardTypes[tok.Type]
		if class == "" {
			node.Children = append(node.Children, Text(tok.Value))
			continue
		}
		node.Children = append(node.Children, Element("span", class, Text(tok.Value)))
	}
	return node
}
