package main

// buildRenderPlan returns one directive per field, in field order.
// Templates are carried through verbatim.
func buildRenderPlan(fields []Field, key string) []RenderDirective {
	plan := make([]RenderDirective, 0, len(fields))
	for _, f := range fields {
		d := RenderDirective{Field: f.Name}
		if tmpl, ok := scanAnnotation(f, key); ok {
			d.Templated = true
			d.Template = tmpl
		}
		plan = append(plan, d)
	}
	return plan
}
