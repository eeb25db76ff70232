package main

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// generate runs the pipeline for one type.
func generate(desc *TypeDescription, o *Options) (*GeneratedFunction, error) {
	fields, err := extractFields(desc)
	if err != nil {
		return nil, err
	}
	plan := buildRenderPlan(fields, o.Tag)
	params := resolveConstraints(desc.TypeParams, fields, o.Markers, o.Constraint)
	return assemble(desc, plan, params, o), nil
}

// assemble combines the render plan and the resolved type parameters into
// the function description.
func assemble(desc *TypeDescription, plan []RenderDirective, params []GenericParameter, o *Options) *GeneratedFunction {
	fn := &GeneratedFunction{
		Name:       funcName(desc.Name),
		TypeName:   desc.Name,
		Recv:       recvName(desc.Name, params),
		TypeParams: params,
		Steps:      make([]Step, 0, len(plan)+2),
	}

	fn.Steps = append(fn.Steps, Step{Kind: StepOpen, Name: desc.Name})
	for _, d := range plan {
		switch {
		case d.Field == "_":
			fn.Steps = append(fn.Steps, Step{Kind: StepBlank, Name: d.Field})
		case d.Templated:
			fn.Steps = append(fn.Steps, Step{Kind: StepFieldf, Name: d.Field, Template: d.Template})
		default:
			fn.Steps = append(fn.Steps, Step{Kind: StepField, Name: d.Field})
		}
	}
	fn.Steps = append(fn.Steps, Step{Kind: StepClose})

	fn.Method = o.GoStringer && !fn.constrained() && !desc.Methods["GoString"]
	return fn
}

// funcName returns the name of the debug function for typeName, exported
// only when the type is.
func funcName(typeName string) string {
	r, size := utf8.DecodeRuneInString(typeName)
	if unicode.IsUpper(r) {
		return "Debug" + typeName
	}
	return "debug" + string(unicode.ToUpper(r)) + typeName[size:]
}

// recvName returns "x", extended with underscores until it clashes with
// neither the type name, a type parameter nor the runtime package.
func recvName(typeName string, params []GenericParameter) string {
	taken := map[string]bool{typeName: true, runtimeName: true}
	for _, p := range params {
		taken[p.Name] = true
	}
	return freshName("x", taken)
}

// freshName appends underscores to base until it is not taken.
func freshName(base string, taken map[string]bool) string {
	name := base
	for taken[name] {
		name += "_"
	}
	return name
}

func (g *GeneratedFunction) recv() string {
	if g.Recv == "" {
		return "x"
	}
	return g.Recv
}

func (g *GeneratedFunction) constrained() bool {
	for _, p := range g.TypeParams {
		if p.Constrained() {
			return true
		}
	}
	return false
}

// Receiver returns the instantiated receiver type, e.g. "Point[T, S]".
func (g *GeneratedFunction) Receiver() string {
	if len(g.TypeParams) == 0 {
		return g.TypeName
	}
	names := make([]string, len(g.TypeParams))
	for i, p := range g.TypeParams {
		names[i] = p.Name
	}
	return g.TypeName + "[" + strings.Join(names, ", ") + "]"
}

// Signature returns the function signature without the body.
func (g *GeneratedFunction) Signature() string {
	var sb strings.Builder
	sb.WriteString("func ")
	sb.WriteString(g.Name)
	if len(g.TypeParams) > 0 {
		decls := make([]string, len(g.TypeParams))
		for i, p := range g.TypeParams {
			decls[i] = p.Name + " " + p.ConstraintExpr()
		}
		sb.WriteString("[" + strings.Join(decls, ", ") + "]")
	}
	sb.WriteString("(" + g.recv() + " *" + g.Receiver() + ") string")
	return sb.String()
}

// Source returns the Go source of the function, followed by the GoString
// method when Method is set. Runtime calls are qualified with pkg.
func (g *GeneratedFunction) Source(pkg string) string {
	var sb strings.Builder
	sb.WriteString("// " + g.Name + " renders x for diagnostics.\n")
	sb.WriteString(g.Signature() + " {\n")
	recv := g.recv()
	for i, s := range g.Steps {
		if i > 0 {
			sb.WriteString(".\n\t\t")
		} else {
			sb.WriteString("\treturn ")
		}
		sb.WriteString(s.call(pkg, recv))
	}
	sb.WriteString("\n}\n")

	if g.Method {
		sb.WriteString("\n// GoString implements fmt.GoStringer.\n")
		sb.WriteString("func (" + recv + " " + g.Receiver() + ") GoString() string {\n")
		sb.WriteString("\treturn " + g.Name + "(&" + recv + ")\n")
		sb.WriteString("}\n")
	}
	return sb.String()
}

func (s Step) call(pkg, recv string) string {
	switch s.Kind {
	case StepOpen:
		return pkg + ".Struct(" + strconv.Quote(s.Name) + ")"
	case StepField:
		return "Field(" + strconv.Quote(s.Name) + ", " + recv + "." + s.Name + ")"
	case StepFieldf:
		return "Fieldf(" + strconv.Quote(s.Name) + ", " + strconv.Quote(s.Template) + ", " + recv + "." + s.Name + ")"
	case StepBlank:
		return "Blank(" + strconv.Quote(s.Name) + ")"
	case StepClose:
		return "Finish()"
	default:
		panic("unknown step kind " + string(s.Kind))
	}
}
