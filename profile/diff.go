package profile

// OIDs returns the set of identifying OIDs (table or symbol) of a document's
// metrics.
func OIDs(doc *Document) map[string]struct{} {
	set := make(map[string]struct{})
	if doc == nil {
		return set
	}
	for _, m := range doc.Metrics {
		if oid, ok := m.OID(); ok && oid != "" {
			set[oid] = struct{}{}
		}
	}
	return set
}

// Diff returns the metrics whose OID does not appear in old, keeping their
// order. Metrics with neither a table nor a symbol are dropped.
//
// old is expected to be expanded already (see Resolver.Expand).
func Diff(old *Document, metrics []Metric) []Metric {
	known := OIDs(old)

	var added []Metric
	for _, m := range metrics {
		oid, ok := m.OID()
		if !ok {
			continue
		}
		if _, exists := known[oid]; exists {
			continue
		}
		added = append(added, m)
	}
	return added
}
