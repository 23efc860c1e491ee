package fhirutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zorgbijjou/golang-fhir-models/fhir-models/caramel/to"
	"github.com/zorgbijjou/golang-fhir-models/fhir-models/fhir"
)

func TestEntryResources(t *testing.T) {
	t.Run("no entries", func(t *testing.T) {
		resources := EntryResources(fhir.Bundle{Type: fhir.BundleTypeSearchset})

		require.NotNil(t, resources)
		assert.Empty(t, resources)
	})
	t.Run("entries without resource are skipped", func(t *testing.T) {
		condition, err := json.Marshal(fhir.Condition{Id: to.Ptr("c1")})
		require.NoError(t, err)
		bundle := fhir.Bundle{
			Type: fhir.BundleTypeSearchset,
			Entry: []fhir.BundleEntry{
				{Resource: condition},
				{FullUrl: to.Ptr("https://example.com/fhir/Condition/c2")},
			},
		}

		resources := EntryResources(bundle)

		require.Len(t, resources, 1)
		assert.JSONEq(t, string(condition), string(resources[0]))
	})
}

func TestNextLink(t *testing.T) {
	t.Run("next page", func(t *testing.T) {
		bundle := fhir.Bundle{
			Link: []fhir.BundleLink{
				{Relation: "self", Url: "https://example.com/fhir/Condition?page=1"},
				{Relation: "next", Url: "https://example.com/fhir/Condition?page=2"},
			},
		}

		assert.Equal(t, "https://example.com/fhir/Condition?page=2", NextLink(bundle))
	})
	t.Run("last page", func(t *testing.T) {
		bundle := fhir.Bundle{
			Link: []fhir.BundleLink{{Relation: "self", Url: "https://example.com/fhir/Condition"}},
		}

		assert.Empty(t, NextLink(bundle))
	})
}
