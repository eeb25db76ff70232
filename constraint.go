package main

import "strings"

// resolveConstraints returns a copy of params with bound added to every
// parameter whose values may be rendered.
//
// A parameter is exempt when it appears only as the single type argument of
// a marker field (Marker[T]): the marker holds no T to render. Using the
// same parameter as the type of an ordinary field (value T) cancels the
// exemption. A marker around a compound type (Marker[[]T]) exempts nothing.
func resolveConstraints(params []GenericParameter, fields []Field, markers []string, bound string) []GenericParameter {
	markerUsage := make(map[string]bool)
	directUsage := make(map[string]bool)
	for _, f := range fields {
		if name, ok := markerParam(f.Type, markers); ok {
			markerUsage[name] = true
		}
		if f.Type.Bare() {
			directUsage[f.Type.Text] = true
		}
	}

	resolved := make([]GenericParameter, 0, len(params))
	for _, p := range params {
		p.Bounds = append([]string(nil), p.Bounds...)
		if markerUsage[p.Name] && !directUsage[p.Name] {
			logger.Debugw("type parameter used only in a marker, not constrained", "param", p.Name)
		} else {
			p.addBound(bound)
		}
		resolved = append(resolved, p)
	}
	return resolved
}

// markerParam reports the identifier T when ref is M[T] for a marker type M.
func markerParam(ref TypeRef, markers []string) (string, bool) {
	if ref.Head == "" || len(ref.Args) != 1 || !ref.Args[0].Bare() {
		return "", false
	}
	for _, m := range markers {
		if ref.Head == m {
			return ref.Args[0].Text, true
		}
	}
	return "", false
}

// addBound adds bound unless p already carries it.
func (p *GenericParameter) addBound(bound string) {
	if bound == "" || p.Constraint == bound {
		return
	}
	for _, b := range p.Bounds {
		if b == bound {
			return
		}
	}
	p.Bounds = append(p.Bounds, bound)
}

// Constrained reports whether any bound was added to p.
func (p GenericParameter) Constrained() bool {
	return len(p.Bounds) > 0
}

// ConstraintExpr returns the constraint to declare for p in the generated
// function: the declared constraint combined with the added bounds.
func (p GenericParameter) ConstraintExpr() string {
	if len(p.Bounds) == 0 {
		return p.Constraint
	}
	var elems []string
	switch p.Constraint {
	case "", "any", "interface{}":
	default:
		elems = append(elems, p.Constraint)
	}
	elems = append(elems, p.Bounds...)
	if len(elems) == 1 {
		return elems[0]
	}
	return "interface{ " + strings.Join(elems, "; ") + " }"
}
