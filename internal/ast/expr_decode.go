package ast

import (
	"encoding/json"
	"fmt"
)

// jsonExpr is the envelope every serialized expression node shares: a kind
// discriminator plus a source line, with kind-specific fields decoded again
// from the same raw bytes once Kind is known.
type jsonExpr struct {
	Kind string `json:"kind"`
	Line int    `json:"line"`
}

func decodeExpr(raw json.RawMessage) (Expr, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var head jsonExpr
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("decoding expression: %w", err)
	}
	b := base{LineNo: head.Line}

	switch head.Kind {
	case "IntLiteral":
		var v struct{ Value int `json:"value"` }
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return IntLiteral{base: b, Value: v.Value}, nil

	case "StringLiteral":
		var v struct{ Value string `json:"value"` }
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return StringLiteral{base: b, Value: v.Value}, nil

	case "BoolLiteral":
		var v struct{ Value bool `json:"value"` }
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return BoolLiteral{base: b, Value: v.Value}, nil

	case "Identifier":
		var v struct{ Name string `json:"name"` }
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return Identifier{base: b, Name: v.Name}, nil

	case "Assign":
		var v struct {
			Name  string          `json:"name"`
			Value json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		value, err := decodeExpr(v.Value)
		if err != nil {
			return nil, err
		}
		return Assign{base: b, Name: v.Name, Value: value}, nil

	case "DynamicDispatch":
		var v struct {
			Receiver   json.RawMessage   `json:"receiver"`
			StaticType string            `json:"staticType"`
			Method     string            `json:"method"`
			Args       []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		recv, err := decodeExpr(v.Receiver)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(v.Args)
		if err != nil {
			return nil, err
		}
		return DynamicDispatch{base: b, Receiver: recv, StaticType: v.StaticType, Method: v.Method, Args: args}, nil

	case "StaticDispatch":
		var v struct {
			Receiver json.RawMessage   `json:"receiver"`
			Type     string            `json:"type"`
			Method   string            `json:"method"`
			Args     []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		recv, err := decodeExpr(v.Receiver)
		if err != nil {
			return nil, err
		}
		args, err := decodeExprs(v.Args)
		if err != nil {
			return nil, err
		}
		return StaticDispatch{base: b, Receiver: recv, Type: v.Type, Method: v.Method, Args: args}, nil

	case "SelfDispatch":
		var v struct {
			Method string            `json:"method"`
			Args   []json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		args, err := decodeExprs(v.Args)
		if err != nil {
			return nil, err
		}
		return SelfDispatch{base: b, Method: v.Method, Args: args}, nil

	case "New":
		var v struct{ Type string `json:"type"` }
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return New{base: b, Type: v.Type}, nil

	case "IsVoid":
		return decodeUnary(raw, b, func(e Expr) Expr { return IsVoid{base: b, Value: e} })
	case "Not":
		return decodeUnary(raw, b, func(e Expr) Expr { return Not{base: b, Value: e} })
	case "Negate":
		return decodeUnary(raw, b, func(e Expr) Expr { return Negate{base: b, Value: e} })

	case "Plus":
		return decodeBinary(raw, b, func(l, r Expr) Expr { return Plus{base: b, Left: l, Right: r} })
	case "Minus":
		return decodeBinary(raw, b, func(l, r Expr) Expr { return Minus{base: b, Left: l, Right: r} })
	case "Times":
		return decodeBinary(raw, b, func(l, r Expr) Expr { return Times{base: b, Left: l, Right: r} })
	case "Divide":
		return decodeBinary(raw, b, func(l, r Expr) Expr { return Divide{base: b, Left: l, Right: r} })
	case "Lt":
		return decodeBinary(raw, b, func(l, r Expr) Expr { return Lt{base: b, Left: l, Right: r} })
	case "Le":
		return decodeBinary(raw, b, func(l, r Expr) Expr { return Le{base: b, Left: l, Right: r} })
	case "Eq":
		return decodeBinary(raw, b, func(l, r Expr) Expr { return Eq{base: b, Left: l, Right: r} })

	case "If":
		var v struct {
			Predicate json.RawMessage `json:"predicate"`
			Then      json.RawMessage `json:"then"`
			Else      json.RawMessage `json:"else"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		pred, err := decodeExpr(v.Predicate)
		if err != nil {
			return nil, err
		}
		then, err := decodeExpr(v.Then)
		if err != nil {
			return nil, err
		}
		els, err := decodeExpr(v.Else)
		if err != nil {
			return nil, err
		}
		return If{base: b, Predicate: pred, Then: then, Else: els}, nil

	case "While":
		var v struct {
			Predicate json.RawMessage `json:"predicate"`
			Body      json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		pred, err := decodeExpr(v.Predicate)
		if err != nil {
			return nil, err
		}
		body, err := decodeExpr(v.Body)
		if err != nil {
			return nil, err
		}
		return While{base: b, Predicate: pred, Body: body}, nil

	case "Block":
		var v struct {
			Body []json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		body, err := decodeExprs(v.Body)
		if err != nil {
			return nil, err
		}
		return Block{base: b, Body: body}, nil

	case "Let":
		var v struct {
			Bindings []struct {
				Name string          `json:"name"`
				Type string          `json:"type"`
				Init json.RawMessage `json:"init"`
			} `json:"bindings"`
			Body json.RawMessage `json:"body"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		bindings := make([]*LetBinding, 0, len(v.Bindings))
		for _, jb := range v.Bindings {
			lb := &LetBinding{Name: jb.Name, Type: jb.Type}
			if len(jb.Init) > 0 && string(jb.Init) != "null" {
				init, err := decodeExpr(jb.Init)
				if err != nil {
					return nil, err
				}
				lb.Init = init
			}
			bindings = append(bindings, lb)
		}
		body, err := decodeExpr(v.Body)
		if err != nil {
			return nil, err
		}
		return Let{base: b, Bindings: bindings, Body: body}, nil

	case "Case":
		var v struct {
			Subject  json.RawMessage `json:"subject"`
			Branches []struct {
				Var  string          `json:"var"`
				Type string          `json:"type"`
				Body json.RawMessage `json:"body"`
			} `json:"branches"`
		}
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		subject, err := decodeExpr(v.Subject)
		if err != nil {
			return nil, err
		}
		branches := make([]*CaseBranch, 0, len(v.Branches))
		for _, jb := range v.Branches {
			body, err := decodeExpr(jb.Body)
			if err != nil {
				return nil, err
			}
			branches = append(branches, &CaseBranch{Var: jb.Var, Type: jb.Type, Body: body})
		}
		return Case{base: b, Subject: subject, Branches: branches}, nil

	case "Internal":
		var v struct{ Body string `json:"body"` }
		if err := json.Unmarshal(raw, &v); err != nil {
			return nil, err
		}
		return Internal{base: b, Body: v.Body}, nil

	default:
		return nil, fmt.Errorf("unknown expression kind %q", head.Kind)
	}
}

func decodeExprs(raws []json.RawMessage) ([]Expr, error) {
	out := make([]Expr, 0, len(raws))
	for _, raw := range raws {
		e, err := decodeExpr(raw)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func decodeUnary(raw json.RawMessage, b base, build func(Expr) Expr) (Expr, error) {
	var v struct {
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	inner, err := decodeExpr(v.Value)
	if err != nil {
		return nil, err
	}
	return build(inner), nil
}

func decodeBinary(raw json.RawMessage, b base, build func(l, r Expr) Expr) (Expr, error) {
	var v struct {
		Left  json.RawMessage `json:"left"`
		Right json.RawMessage `json:"right"`
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, err
	}
	left, err := decodeExpr(v.Left)
	if err != nil {
		return nil, err
	}
	right, err := decodeExpr(v.Right)
	if err != nil {
		return nil, err
	}
	return build(left, right), nil
}
