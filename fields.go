package main

// extractFields returns the fields of desc in declaration order.
// Anything other than a struct whose fields all have names is rejected
// with a ShapeError, and nothing downstream runs.
func extractFields(desc *TypeDescription) ([]Field, error) {
	if desc.Shape != ShapeStruct {
		return nil, newShapeError(desc, "%s is declared as %s, not struct", desc.Name, desc.Shape)
	}
	for _, f := range desc.Fields {
		if f.Embedded || f.Name == "" {
			return nil, newShapeError(desc, "embedded field %s at %s", f.Type.Text, f.Pos)
		}
	}
	return desc.Fields, nil
}
