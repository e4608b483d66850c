package blockextract

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/sourcerercc/tokenpipe/internal/model"
)

// pythonPlaceholderName is used for every extracted block: the original
// tokenizer never derived a real qualified name for Python functions, and
// nothing downstream depends on it being unique.
const pythonPlaceholderName = "function"

var pythonQuery = `(function_definition) @function`

// PythonExtractor pulls every function and method definition (including
// nested ones) out of a Python source file.
type PythonExtractor struct {
	parser *tree_sitter.Parser
	query  *tree_sitter.Query
}

func NewPythonExtractor() *PythonExtractor {
	parser := tree_sitter.NewParser()
	language := tree_sitter.NewLanguage(tree_sitter_python.Language())
	if err := parser.SetLanguage(language); err != nil {
		return &PythonExtractor{}
	}
	query, _ := tree_sitter.NewQuery(language, pythonQuery)
	return &PythonExtractor{parser: parser, query: query}
}

func (e *PythonExtractor) Extract(content []byte) ([]model.Block, error) {
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

	qc := tree_sitter.NewQueryCursor()
	defer qc.Close()
	matches := qc.Matches(e.query, root, content)

	var blocks []model.Block
	for {
		match := matches.Next()
		if match == nil {
			break
		}
		for _, c := range match.Captures {
			node := c.Node
			start := int(node.StartPosition().Row) + 1
			end := int(node.EndPosition().Row) + 1
			blocks = append(blocks, model.Block{
				StartLine:     start,
				EndLine:       end,
				Body:          string(content[node.StartByte():node.EndByte()]),
				QualifiedName: pythonPlaceholderName,
			})
		}
	}
	return blocks, nil
}
