package main

// scanAnnotation returns the format template in f's struct tag under key.
//
// Only the conventional key:"value" form is recognized. A missing key, an
// unquoted value or an otherwise malformed tag all report false; they are
// never errors. If the key occurs more than once the first one wins.
func scanAnnotation(f Field, key string) (string, bool) {
	if f.Tag == "" || key == "" {
		return "", false
	}
	return f.Tag.Lookup(key)
}
