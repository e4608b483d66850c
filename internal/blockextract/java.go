package blockextract

import (
	"strconv"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/sourcerercc/tokenpipe/internal/model"
)

// JHawkDefaultPackage is substituted for the package name when a file
// carries no package_declaration, matching the original tokenizer's
// fallback (extract_java_functions.py).
const JHawkDefaultPackage = "JHawkDefaultPackage"

var javaQuery = `
	(method_declaration) @method
	(constructor_declaration) @constructor
`

// JavaExtractor pulls every method and constructor body out of a Java
// source file, qualifying each with its enclosing package and owner chain.
type JavaExtractor struct {
	parser *tree_sitter.Parser
	query  *tree_sitter.Query
}

// NewJavaExtractor builds a fresh parser and compiled query. Callers get
// their own instance so no mutable parser state is shared across them.
func NewJavaExtractor() *JavaExtractor {
	parser := tree_sitter.NewParser()
	language := tree_sitter.NewLanguage(tree_sitter_java.Language())
	if err := parser.SetLanguage(language); err != nil {
		return &JavaExtractor{}
	}
	query, _ := tree_sitter.NewQuery(language, javaQuery)
	return &JavaExtractor{parser: parser, query: query}
}

func (e *JavaExtractor) Extract(content []byte) ([]model.Block, error) {
	if e.parser == nil || e.query == nil {
		return nil, nil
	}
	tree := e.parser.Parse(content, nil)
	if tree == nil {
		return nil, nil
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, nil
	}

	pkg := javaPackageName(root, content)
	dis := newDisambiguator()

	qc := tree_sitter.NewQueryCursor()
	defer qc.Close()
	matches := qc.Matches(e.query, root, content)
	captureNames := e.query.CaptureNames()

	var blocks []model.Block
	for {
		match := matches.Next()
		if match == nil {
			break
		}
		for _, c := range match.Captures {
			node := c.Node
			_ = captureNames[c.Index]

			bodyField := node.ChildByFieldName("body")
			if bodyField == nil {
				// Abstract/interface signature: nothing to tokenize.
				continue
			}
			nameNode := node.ChildByFieldName("name")
			if nameNode == nil {
				continue
			}
			methodName := string(content[nameNode.StartByte():nameNode.EndByte()])
			args := javaArgList(&node, content)
			owner := javaOwnerChain(&node, content, dis)

			qualified := pkg + owner + "." + methodName + "(" + args + ")"

			start := int(node.StartPosition().Row) + 1
			end := int(node.EndPosition().Row) + 1
			blocks = append(blocks, model.Block{
				StartLine:     start,
				EndLine:       end,
				Body:          string(content[node.StartByte():node.EndByte()]),
				QualifiedName: qualified,
			})
		}
	}
	return blocks, nil
}

func javaPackageName(root tree_sitter.Node, content []byte) string {
	for i := uint(0); i < root.ChildCount(); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		if child.Kind() == "package_declaration" {
			if nameNode := child.ChildByFieldName("name"); nameNode != nil {
				return string(content[nameNode.StartByte():nameNode.EndByte()])
			}
		}
	}
	return JHawkDefaultPackage
}

// javaOwnerChain walks from node up to the root, collecting the names of
// enclosing class/interface declarations and anonymous class creators
// (outermost first). The outermost owner is joined to the package with
// ".", every other owner with "$"; Extract then appends the method with
// ".": package.Owner1$Owner2$....method(args).
func javaOwnerChain(node *tree_sitter.Node, content []byte, dis *disambiguator) string {
	var owners []string
	cur := node.Parent()
	for cur != nil {
		switch cur.Kind() {
		case "class_declaration", "interface_declaration":
			if nameNode := cur.ChildByFieldName("name"); nameNode != nil {
				name := string(content[nameNode.StartByte():nameNode.EndByte()])
				owners = append(owners, name+dis.suffixFor(nodeSpan{cur.StartByte(), cur.EndByte()}, name))
			}
		case "object_creation_expression":
			if cur.ChildByFieldName("body") != nil {
				// Anonymous class: named after the interface/class it
				// instantiates.
				if typeNode := cur.ChildByFieldName("type"); typeNode != nil {
					name := string(content[typeNode.StartByte():typeNode.EndByte()])
					owners = append(owners, name+dis.suffixFor(nodeSpan{cur.StartByte(), cur.EndByte()}, name))
				}
			}
		}
		cur = cur.Parent()
	}

	if len(owners) == 0 {
		return ""
	}
	// owners was collected innermost-first; reverse to outermost-first.
	for i, j := 0, len(owners)-1; i < j; i, j = i+1, j-1 {
		owners[i], owners[j] = owners[j], owners[i]
	}
	var b strings.Builder
	b.WriteString(".")
	b.WriteString(owners[0])
	for _, o := range owners[1:] {
		b.WriteString("$")
		b.WriteString(o)
	}
	return b.String()
}

func javaArgList(node *tree_sitter.Node, content []byte) string {
	params := node.ChildByFieldName("parameters")
	if params == nil {
		return ""
	}
	var args []string
	for i := uint(0); i < params.ChildCount(); i++ {
		p := params.Child(i)
		if p == nil {
			continue
		}
		switch p.Kind() {
		case "formal_parameter", "spread_parameter":
			typeNode := p.ChildByFieldName("type")
			if typeNode == nil {
				continue
			}
			t := string(content[typeNode.StartByte():typeNode.EndByte()])
			if dims := p.ChildByFieldName("dimensions"); dims != nil {
				t += string(content[dims.StartByte():dims.EndByte()])
			}
			if p.Kind() == "spread_parameter" {
				t += "[]"
			}
			args = append(args, t)
		}
	}
	return strings.Join(args, ",")
}

// disambiguator assigns the "_n" suffix the original tokenizer used to
// distinguish distinct owner nodes that share a name within one file
// (extract_java_functions.py's check_repetition). The same node (keyed by
// its byte span) always gets the same suffix; the first owner seen with a
// given name gets no suffix at all.
type nodeSpan struct{ start, end uint }

type disambiguator struct {
	suffixes map[nodeSpan]string
	seen     map[string]int
}

func newDisambiguator() *disambiguator {
	return &disambiguator{suffixes: make(map[nodeSpan]string), seen: make(map[string]int)}
}

func (d *disambiguator) suffixFor(key nodeSpan, name string) string {
	if s, ok := d.suffixes[key]; ok {
		return s
	}
	prior := d.seen[name]
	var suffix string
	if prior == 0 {
		suffix = ""
	} else {
		suffix = "_" + strconv.Itoa(prior-1)
	}
	d.seen[name] = prior + 1
	d.suffixes[key] = suffix
	return suffix
}
