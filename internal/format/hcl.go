package format

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

// Block types carrying a single name label, and the collection key each one
// lands under in the normalized tree.
var labeledBlocks = map[string]string{
	"source":           "sources",
	"sink":             "sinks",
	"transform":        "transforms",
	"enrichment_table": "enrichment_tables",
}

// Block types configuring a singleton section; their body becomes the value.
var sectionBlocks = map[string]struct{}{
	"api":          {},
	"healthchecks": {},
	"log_schema":   {},
	"provider":     {},
}

// hclToTree parses an HCL fragment into the normalized tree. Top-level
// attributes configure scalar options (data_dir and friends); blocks
// configure components, pipelines, tests and singleton sections.
func hclToTree(data []byte) (*object, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, "fragment.hcl")
	if diags.HasErrors() {
		return nil, diags
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected HCL body type %T", file.Body)
	}

	tree := newObject()
	var tests []any

	for _, item := range bodyItems(body) {
		if item.attr != nil {
			value, err := exprValue(item.attr)
			if err != nil {
				return nil, err
			}
			tree.set(item.attr.Name, value)
			continue
		}

		block := item.block
		switch {
		case labeledBlocks[block.Type] != "":
			label, err := oneLabel(block)
			if err != nil {
				return nil, err
			}
			entry, err := bodyObject(block.Body)
			if err != nil {
				return nil, err
			}
			tree.child(labeledBlocks[block.Type]).set(label, entry)

		case block.Type == "pipeline":
			label, err := oneLabel(block)
			if err != nil {
				return nil, err
			}
			pipeline, err := pipelineObject(block)
			if err != nil {
				return nil, err
			}
			tree.child("pipelines").set(label, pipeline)

		case block.Type == "test":
			label, err := oneLabel(block)
			if err != nil {
				return nil, err
			}
			body, err := bodyObject(block.Body)
			if err != nil {
				return nil, err
			}
			test := newObject()
			test.set("name", label)
			for _, key := range body.keys {
				test.set(key, body.values[key])
			}
			tests = append(tests, test)
			tree.set("tests", tests)

		default:
			if _, ok := sectionBlocks[block.Type]; !ok {
				return nil, fmt.Errorf("unknown block type %q at %s", block.Type, block.TypeRange)
			}
			if len(block.Labels) != 0 {
				return nil, fmt.Errorf("%s block takes no labels at %s", block.Type, block.TypeRange)
			}
			section, err := bodyObject(block.Body)
			if err != nil {
				return nil, err
			}
			tree.set(block.Type, section)
		}
	}

	return tree, nil
}

// pipelineObject translates a pipeline block: its body holds labeled
// transform blocks and nothing else.
func pipelineObject(pipeline *hclsyntax.Block) (*object, error) {
	transforms := newObject()
	for name := range pipeline.Body.Attributes {
		return nil, fmt.Errorf("unexpected attribute %q in pipeline %q", name, pipeline.Labels[0])
	}
	for _, block := range pipeline.Body.Blocks {
		if block.Type != "transform" {
			return nil, fmt.Errorf("unexpected block type %q in pipeline %q", block.Type, pipeline.Labels[0])
		}
		label, err := oneLabel(block)
		if err != nil {
			return nil, err
		}
		entry, err := bodyObject(block.Body)
		if err != nil {
			return nil, err
		}
		transforms.set(label, entry)
	}

	out := newObject()
	out.set("transforms", transforms)
	return out, nil
}

// bodyObject flattens a block body: attributes become fields, nested blocks
// become nested objects, both in source order.
func bodyObject(body *hclsyntax.Body) (*object, error) {
	out := newObject()
	for _, item := range bodyItems(body) {
		if item.attr != nil {
			value, err := exprValue(item.attr)
			if err != nil {
				return nil, err
			}
			out.set(item.attr.Name, value)
			continue
		}

		nested, err := bodyObject(item.block.Body)
		if err != nil {
			return nil, err
		}
		if len(item.block.Labels) == 1 {
			out.child(item.block.Type).set(item.block.Labels[0], nested)
		} else {
			out.set(item.block.Type, nested)
		}
	}
	return out, nil
}

type bodyItem struct {
	start int
	attr  *hclsyntax.Attribute
	block *hclsyntax.Block
}

// bodyItems interleaves a body's attributes and blocks back into source
// order; the syntax tree keeps attributes in a map.
func bodyItems(body *hclsyntax.Body) []bodyItem {
	items := make([]bodyItem, 0, len(body.Attributes)+len(body.Blocks))
	for _, attr := range body.Attributes {
		items = append(items, bodyItem{start: attr.SrcRange.Start.Byte, attr: attr})
	}
	for _, block := range body.Blocks {
		items = append(items, bodyItem{start: block.TypeRange.Start.Byte, block: block})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].start < items[j].start })
	return items
}

func oneLabel(block *hclsyntax.Block) (string, error) {
	if len(block.Labels) != 1 {
		return "", fmt.Errorf("%s block expects exactly one name label at %s", block.Type, block.TypeRange)
	}
	return block.Labels[0], nil
}

// exprValue evaluates a literal attribute expression. Fragments carry no
// variables or functions, so evaluation runs without a context.
func exprValue(attr *hclsyntax.Attribute) (any, error) {
	value, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	converted, err := ctyToGo(value)
	if err != nil {
		return nil, fmt.Errorf("attribute %q: %w", attr.Name, err)
	}
	return converted, nil
}

// ctyToGo converts an evaluated cty value into the normalized tree's Go
// shapes. Numbers stay integral when they are exactly representable.
func ctyToGo(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	t := v.Type()
	switch {
	case t == cty.String:
		return v.AsString(), nil
	case t == cty.Bool:
		return v.True(), nil
	case t == cty.Number:
		f := v.AsBigFloat()
		if i, acc := f.Int64(); acc == big.Exact {
			return i, nil
		}
		f64, _ := f.Float64()
		return f64, nil
	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			converted, err := ctyToGo(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	case t.IsObjectType() || t.IsMapType():
		out := newObject()
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			converted, err := ctyToGo(elem)
			if err != nil {
				return nil, err
			}
			out.set(key.AsString(), converted)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value type %s", t.FriendlyName())
}
