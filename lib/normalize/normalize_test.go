package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestDisplay(t *testing.T) {
	rule := Display("code")
	t.Run("free text wins over coding display", func(t *testing.T) {
		value, ok := rule(gjson.Parse(`{"code":{"text":"Hypertension","coding":[{"display":"Essential hypertension"}]}}`))
		require.True(t, ok)
		assert.Equal(t, "Hypertension", value)
	})
	t.Run("coding display when there is no text", func(t *testing.T) {
		value, ok := rule(gjson.Parse(`{"code":{"coding":[{"display":"Essential hypertension"},{"display":"second"}]}}`))
		require.True(t, ok)
		assert.Equal(t, "Essential hypertension", value)
	})
	t.Run("empty text falls through", func(t *testing.T) {
		value, ok := rule(gjson.Parse(`{"code":{"text":"","coding":[{"display":"Asthma"}]}}`))
		require.True(t, ok)
		assert.Equal(t, "Asthma", value)
	})
	t.Run("neither", func(t *testing.T) {
		_, ok := rule(gjson.Parse(`{"code":{"coding":[{"code":"38341003"}]}}`))
		assert.False(t, ok)
	})
	t.Run("defaulted to empty string", func(t *testing.T) {
		value, ok := Default(rule, "")(gjson.Parse(`{}`))
		require.True(t, ok)
		assert.Equal(t, "", value)
	})
}

func TestCodingDisplay(t *testing.T) {
	value, ok := CodingDisplay("severity")(gjson.Parse(`{"severity":{"text":"bad","coding":[{"display":"Severe"}]}}`))
	require.True(t, ok)
	assert.Equal(t, "Severe", value)

	value, ok = CodingDisplay("severity")(gjson.Parse(`{"severity":{"text":"bad"}}`))
	require.True(t, ok)
	assert.Equal(t, "bad", value)
}

func TestStatus(t *testing.T) {
	value, _ := Status("clinicalStatus")(gjson.Parse(`{"clinicalStatus":{"text":"Active","coding":[{"code":"active"}]}}`))
	assert.Equal(t, "active", value)
	value, _ = Status("clinicalStatus")(gjson.Parse(`{"clinicalStatus":{"text":"Active"}}`))
	assert.Equal(t, "Active", value)
}

func TestTiming(t *testing.T) {
	rule := Timing("onsetDateTime", "onsetPeriod")
	t.Run("instant preferred", func(t *testing.T) {
		value, _ := rule(gjson.Parse(`{"onsetDateTime":"2021-05-05","onsetPeriod":{"start":"2020-01-01"}}`))
		assert.Equal(t, "2021-05-05", value)
	})
	t.Run("period start", func(t *testing.T) {
		value, ok := rule(gjson.Parse(`{"onsetPeriod":{"start":"2020-01-01"}}`))
		require.True(t, ok)
		assert.Equal(t, "2020-01-01", value)
	})
	t.Run("none", func(t *testing.T) {
		_, ok := rule(gjson.Parse(`{"onsetPeriod":{}}`))
		assert.False(t, ok)
	})
}

func TestNumber(t *testing.T) {
	value, ok := Number("dose.value")(gjson.Parse(`{"dose":{"value":0}}`))
	require.True(t, ok)
	assert.Equal(t, 0.0, value)

	_, ok = Number("dose.value")(gjson.Parse(`{"dose":{"value":"12"}}`))
	assert.False(t, ok)
}

func TestEach(t *testing.T) {
	rule := Each("reaction", Object(Fields{
		{Name: "manifestation", Rule: Default(Display("manifestation.0"), "")},
		{Name: "severity", Rule: String("severity")},
	}))
	t.Run("maps every element", func(t *testing.T) {
		value, ok := rule(gjson.Parse(`{"reaction":[{"manifestation":[{"text":"Hives"}],"severity":"mild"},{}]}`))
		require.True(t, ok)
		assert.Equal(t, []any{
			map[string]any{"manifestation": "Hives", "severity": "mild"},
			map[string]any{"manifestation": ""},
		}, value)
	})
	t.Run("absent array is absent", func(t *testing.T) {
		_, ok := rule(gjson.Parse(`{}`))
		assert.False(t, ok)
	})
	t.Run("empty array is present", func(t *testing.T) {
		value, ok := rule(gjson.Parse(`{"reaction":[]}`))
		require.True(t, ok)
		assert.Empty(t, value)
	})
}

func TestWithin(t *testing.T) {
	rule := Within([]string{`name.#(use=="official")`, "name.0"}, Join("given", " "))
	value, _ := rule(gjson.Parse(`{"name":[{"use":"nickname","given":["Bobby"]},{"use":"official","given":["Robert","James"]}]}`))
	assert.Equal(t, "Robert James", value)

	value, _ = rule(gjson.Parse(`{"name":[{"use":"nickname","given":["Bobby"]}]}`))
	assert.Equal(t, "Bobby", value)

	_, ok := rule(gjson.Parse(`{}`))
	assert.False(t, ok)
}

func TestWhen(t *testing.T) {
	rule := When([]string{"dosage.route", "dosage.dose"}, Object(Fields{{Name: "route", Rule: Display("dosage.route")}}))
	_, ok := rule(gjson.Parse(`{"dosage":{"text":"take daily"}}`))
	assert.False(t, ok)

	value, ok := rule(gjson.Parse(`{"dosage":{"route":{"text":"oral"}}}`))
	require.True(t, ok)
	assert.Equal(t, map[string]any{"route": "oral"}, value)
}

func TestOneOf(t *testing.T) {
	rule := OneOf(
		Choice{Path: "valueQuantity", Rule: Number("valueQuantity.value")},
		Choice{Path: "valueString", Rule: String("valueString")},
	)
	value, _ := rule(gjson.Parse(`{"valueQuantity":{"value":4.2},"valueString":"high"}`))
	assert.Equal(t, 4.2, value)

	value, _ = rule(gjson.Parse(`{"valueString":"high"}`))
	assert.Equal(t, "high", value)

	// a populated variant without a usable value does not fall through
	_, ok := rule(gjson.Parse(`{"valueQuantity":{"unit":"mg"},"valueString":"high"}`))
	assert.False(t, ok)

	_, ok = rule(gjson.Parse(`{}`))
	assert.False(t, ok)
}

func TestRangeText(t *testing.T) {
	rule := RangeText("referenceRange.0")
	value, _ := rule(gjson.Parse(`{"referenceRange":[{"text":"normal"}]}`))
	assert.Equal(t, "normal", value)

	value, _ = rule(gjson.Parse(`{"referenceRange":[{"low":{"value":3.5,"unit":"mmol/L"},"high":{"value":5.1,"unit":"mmol/L"}}]}`))
	assert.Equal(t, "3.5 mmol/L - 5.1 mmol/L", value)

	value, _ = rule(gjson.Parse(`{"referenceRange":[{"high":{"value":200,"unit":"mg/dL"}}]}`))
	assert.Equal(t, "- 200 mg/dL", value)

	_, ok := rule(gjson.Parse(`{"referenceRange":[{}]}`))
	assert.False(t, ok)
}

type testResult struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Status   *string  `json:"status,omitempty"`
	Value    any      `json:"value,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Children []struct {
		Label string `json:"label"`
	} `json:"children,omitempty"`
}

var testFields = Fields{
	{Name: "id", Rule: Default(String("id"), "")},
	{Name: "name", Rule: Default(Display("code"), "")},
	{Name: "status", Rule: String("status")},
	{Name: "value", Rule: First(Number("valueQuantity.value"), String("valueString"))},
	{Name: "tags", Rule: Each("meta.tag", Default(String("code"), ""))},
	{Name: "children", Rule: Each("component", Object(Fields{{Name: "label", Rule: Default(Display("code"), "")}}))},
}

func TestNormalize(t *testing.T) {
	t.Run("no resources", func(t *testing.T) {
		results, err := Normalize[testResult]("Observation", nil, testFields)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
	t.Run("filters on resource type", func(t *testing.T) {
		resources := []json.RawMessage{
			json.RawMessage(`{"resourceType":"Observation","id":"o1"}`),
			json.RawMessage(`{"resourceType":"OperationOutcome","id":"x"}`),
			nil,
			json.RawMessage(`{"id":"no-type"}`),
		}
		results, err := Normalize[testResult]("Observation", resources, testFields)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "o1", results[0].ID)
	})
	t.Run("decodes into typed results", func(t *testing.T) {
		resources := []json.RawMessage{json.RawMessage(`{
			"resourceType":"Observation",
			"id":"o2",
			"status":"final",
			"code":{"coding":[{"display":"Heart rate"}]},
			"valueQuantity":{"value":72},
			"meta":{"tag":[{"code":"a"},{}]},
			"component":[{"code":{"text":"systolic"}}]
		}`)}
		results, err := Normalize[testResult]("Observation", resources, testFields)
		require.NoError(t, err)
		require.Len(t, results, 1)
		actual := results[0]
		assert.Equal(t, "o2", actual.ID)
		assert.Equal(t, "Heart rate", actual.Name)
		require.NotNil(t, actual.Status)
		assert.Equal(t, "final", *actual.Status)
		assert.Equal(t, 72.0, actual.Value)
		assert.Equal(t, []string{"a", ""}, actual.Tags)
		require.Len(t, actual.Children, 1)
		assert.Equal(t, "systolic", actual.Children[0].Label)
	})
	t.Run("missing fields stay absent", func(t *testing.T) {
		resources := []json.RawMessage{json.RawMessage(`{"resourceType":"Observation"}`)}
		results, err := Normalize[testResult]("Observation", resources, testFields)
		require.NoError(t, err)
		require.Len(t, results, 1)
		data, err := json.Marshal(results[0])
		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"","name":""}`, string(data))
	})
}
