package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProgram = `{
  "classes": [
    {
      "name": "Object",
      "attributes": []
    },
    {
      "name": "Animal",
      "attributes": [
        {"name": "name", "type": "String", "initializer": null},
        {"name": "age", "type": "Int", "initializer": {"kind": "IntLiteral", "line": 3, "value": 0}}
      ]
    },
    {
      "name": "Dog",
      "attributes": []
    }
  ],
  "implementations": [
    {
      "class": "Animal",
      "method": "speak",
      "formals": [],
      "body": {"kind": "StringLiteral", "line": 5, "value": "..."}
    },
    {
      "class": "Dog",
      "method": "speak",
      "formals": ["loud"],
      "body": {
        "kind": "If",
        "line": 6,
        "predicate": {"kind": "Identifier", "line": 6, "name": "loud"},
        "then": {"kind": "StringLiteral", "line": 6, "value": "WOOF"},
        "else": {"kind": "SelfDispatch", "line": 6, "method": "speak", "args": []}
      }
    }
  ],
  "parents": {
    "Animal": "Object",
    "Dog": "Animal"
  },
  "directMethods": {
    "Animal": ["speak"],
    "Dog": ["speak"]
  }
}`

func TestParse_ClassOrderIsPreserved(t *testing.T) {
	prog, err := Parse([]byte(sampleProgram))
	require.NoError(t, err)
	assert.Equal(t, []string{"Object", "Animal", "Dog"}, prog.Classes.Classes())
}

func TestParse_AttributeInitializerIsOptional(t *testing.T) {
	prog, err := Parse([]byte(sampleProgram))
	require.NoError(t, err)

	attrs := prog.Classes.Attributes("Animal")
	require.Len(t, attrs, 2)
	assert.Equal(t, "name", attrs[0].Name)
	assert.Nil(t, attrs[0].Initializer)

	assert.Equal(t, "age", attrs[1].Name)
	require.NotNil(t, attrs[1].Initializer)
	lit, ok := attrs[1].Initializer.(IntLiteral)
	require.True(t, ok)
	assert.Equal(t, 0, lit.Value)
}

func TestParse_ImplementationBodyDecodesNestedExpr(t *testing.T) {
	prog, err := Parse([]byte(sampleProgram))
	require.NoError(t, err)

	method, ok := prog.Implementations.Get(MethodKey{Class: "Dog", Method: "speak"})
	require.True(t, ok)
	assert.Equal(t, []string{"loud"}, method.Formals)

	ifExpr, ok := method.Body.(If)
	require.True(t, ok)
	assert.Equal(t, 6, ifExpr.Line())

	_, ok = ifExpr.Predicate.(Identifier)
	assert.True(t, ok)

	_, ok = ifExpr.Else.(SelfDispatch)
	assert.True(t, ok)
}

func TestParse_ParentsAndDirectMethodsRoundTrip(t *testing.T) {
	prog, err := Parse([]byte(sampleProgram))
	require.NoError(t, err)

	assert.Equal(t, "Object", prog.Parents["Animal"])
	assert.Equal(t, "Animal", prog.Parents["Dog"])
	assert.Equal(t, []string{"speak"}, prog.DirectMethods["Dog"])
}

func TestParse_UnknownExpressionKindErrors(t *testing.T) {
	_, err := Parse([]byte(`{
		"classes": [{"name": "Object", "attributes": []}],
		"implementations": [
			{"class": "Object", "method": "bogus", "formals": [], "body": {"kind": "Bogus", "line": 1}}
		],
		"parents": {},
		"directMethods": {}
	}`))
	assert.Error(t, err)
}

func TestParse_InvalidJSONErrors(t *testing.T) {
	_, err := Parse([]byte(`not json`))
	assert.Error(t, err)
}
