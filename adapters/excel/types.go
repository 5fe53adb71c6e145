package excel

// rawRow represents one source row as header-keyed string cells, before
// type coercion.
type rawRow map[string]string
