package ast

import (
	"encoding/json"
	"fmt"
	"os"
)

// Program bundles the four structures an annotated-AST file yields (spec
// §6): the class map, implementation map, parent map, and direct-methods
// map. The code generator itself only requires the first three to satisfy
// the invariants of spec §3; DirectMethods is decoded but not read by the
// generator or the driver.
type Program struct {
	Classes       *ClassMap
	Implementations *ImplMap
	Parents       ParentMap
	DirectMethods DirectMethods
}

// jsonAttribute, jsonClass, jsonMethod, and jsonProgram mirror the on-disk
// annotated-AST document shape. Classes and implementations are JSON arrays
// (not objects) specifically so insertion order survives decoding —
// Go's encoding/json does not preserve object key order, but it does
// preserve array element order.
type jsonAttribute struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Initializer json.RawMessage `json:"initializer,omitempty"`
}

type jsonClass struct {
	Name       string          `json:"name"`
	Attributes []jsonAttribute `json:"attributes"`
}

type jsonMethod struct {
	Class   string          `json:"class"`
	Method  string          `json:"method"`
	Formals []string        `json:"formals"`
	Body    json.RawMessage `json:"body"`
}

type jsonProgram struct {
	Classes         []jsonClass          `json:"classes"`
	Implementations []jsonMethod         `json:"implementations"`
	Parents         map[string]string    `json:"parents"`
	DirectMethods   map[string][]string  `json:"directMethods"`
}

// ReadFile decodes an annotated-AST JSON document into a Program. This is
// the one concrete shape given to the otherwise-opaque "external reader"
// contract spec §6 describes; it does no type checking of its own and
// trusts that the document already represents well-typed input.
func ReadFile(path string) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ast: reading %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes an annotated-AST JSON document from memory.
func Parse(data []byte) (*Program, error) {
	var doc jsonProgram
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("ast: decoding annotated AST: %w", err)
	}

	classes := NewClassMap()
	for _, jc := range doc.Classes {
		classes.Declare(jc.Name)
		for _, ja := range jc.Attributes {
			attr := &Attribute{Name: ja.Name, Type: ja.Type}
			if len(ja.Initializer) > 0 && string(ja.Initializer) != "null" {
				init, err := decodeExpr(ja.Initializer)
				if err != nil {
					return nil, fmt.Errorf("ast: class %s attribute %s: %w", jc.Name, ja.Name, err)
				}
				attr.Initializer = init
			}
			classes.AppendAttribute(jc.Name, attr)
		}
	}

	impls := NewImplMap()
	for _, jm := range doc.Implementations {
		body, err := decodeExpr(jm.Body)
		if err != nil {
			return nil, fmt.Errorf("ast: method %s.%s: %w", jm.Class, jm.Method, err)
		}
		impls.Append(MethodKey{Class: jm.Class, Method: jm.Method}, &Method{
			Formals: jm.Formals,
			Body:    body,
		})
	}

	parents := ParentMap{}
	for k, v := range doc.Parents {
		parents[k] = v
	}

	directMethods := DirectMethods{}
	for k, v := range doc.DirectMethods {
		directMethods[k] = v
	}

	return &Program{
		Classes:         classes,
		Implementations: impls,
		Parents:         parents,
		DirectMethods:   directMethods,
	}, nil
}
