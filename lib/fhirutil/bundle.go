package fhirutil

import (
	"encoding/json"

	"github.com/zorgbijjou/golang-fhir-models/fhir-models/fhir"
)

// EntryResources returns the raw resources of the bundle's entries, skipping entries without a resource.
// The result is empty (not nil) for a bundle without entries.
func EntryResources(bundle fhir.Bundle) []json.RawMessage {
	resources := make([]json.RawMessage, 0, len(bundle.Entry))
	for _, entry := range bundle.Entry {
		if len(entry.Resource) == 0 {
			continue
		}
		resources = append(resources, entry.Resource)
	}
	return resources
}

// NextLink returns the URL of the bundle's next page, or an empty string if this is the last page.
func NextLink(bundle fhir.Bundle) string {
	for _, link := range bundle.Link {
		if link.Relation == "next" {
			return link.Url
		}
	}
	return ""
}
