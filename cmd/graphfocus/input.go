package main

import (
	"bytes"
	"fmt"
	"io"

	"github.com/anthonybishopric/graphfocus/pkg/dot"
	"github.com/anthonybishopric/graphfocus/pkg/graph"
)

// loadGraph reads a graph document from path, or from stdin when path is
// empty or "-". Files are decoded by extension; stdin is sniffed.
func loadGraph(stdin io.Reader, path string) (*graph.Document, error) {
	if path != "" && path != "-" {
		if dot.IsDOT(path) {
			return dot.Load(path)
		}
		return graph.Load(path)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return sniff(data)
}

func sniff(data []byte) (*graph.Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty input")
	}
	switch {
	case trimmed[0] == '{':
		return graph.Decode(bytes.NewReader(trimmed), graph.FormatJSON)
	case looksLikeDOT(trimmed):
		return dot.Parse("<stdin>", trimmed)
	default:
		return graph.Decode(bytes.NewReader(trimmed), graph.FormatYAML)
	}
}

func looksLikeDOT(data []byte) bool {
	lower := bytes.ToLower(data)
	for _, kw := range [][]byte{[]byte("digraph"), []byte("graph"), []byte("strict")} {
		if bytes.HasPrefix(lower, kw) {
			rest := bytes.TrimLeft(lower[len(kw):], " \t\r\n")
			return len(rest) > 0 && rest[0] != ':'
		}
	}
	return false
}

func argPath(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
