package present

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// JSON пишет документ в JSON. Без IncludeNodes деревья узлов отбрасываются.
func JSON(w io.Writer, doc DocumentJSON, opts JSONOpts) error {
	if !opts.IncludeNodes {
		doc = withoutNodes(doc)
	}
	enc := json.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}

// MsgPack пишет документ в msgpack; имена полей совпадают с JSON.
func MsgPack(w io.Writer, doc DocumentJSON, opts JSONOpts) error {
	if !opts.IncludeNodes {
		doc = withoutNodes(doc)
	}
	return msgpack.NewEncoder(w).Encode(doc)
}

func withoutNodes(doc DocumentJSON) DocumentJSON {
	out := DocumentJSON{Name: doc.Name, Blocks: make([]BlockJSON, len(doc.Blocks))}
	for i, b := range doc.Blocks {
		nb := b
		nb.Lines = make([]LineJSON, len(b.Lines))
		for j, ln := range b.Lines {
			nl := ln
			if len(ln.Annotations) > 0 {
				nl.Annotations = make([]AnnotationJSON, len(ln.Annotations))
				for k, a := range ln.Annotations {
					a.Node = nil
					nl.Annotations[k] = a
				}
			}
			nb.Lines[j] = nl
		}
		out.Blocks[i] = nb
	}
	return out
}
