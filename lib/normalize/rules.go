package normalize

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Rule extracts a single output value from a raw resource (or a nested part of it).
// ok is false when the source holds nothing usable, in which case the output field is left absent.
type Rule func(source gjson.Result) (value any, ok bool)

// String yields the string at path. Empty strings count as absent, so they fall through a First chain.
func String(path string) Rule {
	return func(source gjson.Result) (any, bool) {
		result := source.Get(path)
		if result.Type != gjson.String || result.Str == "" {
			return nil, false
		}
		return result.Str, true
	}
}

// Number yields the number at path as float64. Zero is a present value.
func Number(path string) Rule {
	return func(source gjson.Result) (any, bool) {
		result := source.Get(path)
		if result.Type != gjson.Number {
			return nil, false
		}
		return result.Float(), true
	}
}

// First tries each rule in order and yields the first present value.
func First(rules ...Rule) Rule {
	return func(source gjson.Result) (any, bool) {
		for _, rule := range rules {
			if value, ok := rule(source); ok {
				return value, true
			}
		}
		return nil, false
	}
}

// Default makes rule always present, substituting value when rule yields nothing.
func Default(rule Rule, value any) Rule {
	return func(source gjson.Result) (any, bool) {
		if v, ok := rule(source); ok {
			return v, true
		}
		return value, true
	}
}

// Display yields the human-readable label of the CodeableConcept at path:
// its free text, else the display of its first coding.
func Display(path string) Rule {
	return First(String(join(path, "text")), String(join(path, "coding.0.display")))
}

// CodingDisplay is Display with the preference reversed: first coding display, else free text.
func CodingDisplay(path string) Rule {
	return First(String(join(path, "coding.0.display")), String(join(path, "text")))
}

// Code yields the code of the first coding of the CodeableConcept at path.
func Code(path string) Rule {
	return String(join(path, "coding.0.code"))
}

// System yields the system of the first coding of the CodeableConcept at path.
func System(path string) Rule {
	return String(join(path, "coding.0.system"))
}

// Status yields the first coding's code of the CodeableConcept at path, else its free text.
func Status(path string) Rule {
	return First(Code(path), String(join(path, "text")))
}

// Timing prefers the exact instant at instantPath and falls back to the start of the Period at periodPath.
func Timing(instantPath, periodPath string) Rule {
	return First(String(instantPath), String(join(periodPath, "start")))
}

// Join concatenates the string array at path with sep. An empty outcome is absent.
func Join(path, sep string) Rule {
	return func(source gjson.Result) (any, bool) {
		values := stringsAt(source.Get(path))
		if len(values) == 0 {
			return nil, false
		}
		joined := strings.Join(values, sep)
		if joined == "" {
			return nil, false
		}
		return joined, true
	}
}

// Strings yields the string array at path. A missing array is absent, an empty one is present.
func Strings(path string) Rule {
	return func(source gjson.Result) (any, bool) {
		result := source.Get(path)
		if !result.IsArray() {
			return nil, false
		}
		return stringsAt(result), true
	}
}

// Object yields the record produced by fields on the current source. It is always present.
func Object(fields Fields) Rule {
	return func(source gjson.Result) (any, bool) {
		return fields.Extract(source), true
	}
}

// Within evaluates rule against the first candidate path that exists.
// Candidates may use gjson queries, e.g. `name.#(use=="official")`.
func Within(candidates []string, rule Rule) Rule {
	return func(source gjson.Result) (any, bool) {
		for _, candidate := range candidates {
			if scoped := source.Get(candidate); scoped.Exists() {
				return rule(scoped)
			}
		}
		return nil, false
	}
}

// At evaluates rule against the value at path, absent when path does not exist.
func At(path string, rule Rule) Rule {
	return Within([]string{path}, rule)
}

// When evaluates rule only if at least one of paths exists.
func When(paths []string, rule Rule) Rule {
	return func(source gjson.Result) (any, bool) {
		for _, path := range paths {
			if source.Get(path).Exists() {
				return rule(source)
			}
		}
		return nil, false
	}
}

// Choice pairs a FHIR choice element variant (e.g. valueQuantity) with the rule reading it.
type Choice struct {
	Path string
	Rule Rule
}

// OneOf evaluates only the rule of the first variant that exists. Unlike First, a populated variant that yields
// nothing does not fall through to later variants.
func OneOf(choices ...Choice) Rule {
	return func(source gjson.Result) (any, bool) {
		for _, choice := range choices {
			if source.Get(choice.Path).Exists() {
				return choice.Rule(source)
			}
		}
		return nil, false
	}
}

// Each maps every element of the array at path with rule. A missing array is absent (not empty);
// elements for which rule yields nothing are dropped.
func Each(path string, rule Rule) Rule {
	return func(source gjson.Result) (any, bool) {
		array := source.Get(path)
		if !array.IsArray() {
			return nil, false
		}
		elements := array.Array()
		values := make([]any, 0, len(elements))
		for _, element := range elements {
			if value, ok := rule(element); ok {
				values = append(values, value)
			}
		}
		return values, true
	}
}

// RangeText renders the FHIR Range-like element at path (e.g. an Observation reference range):
// its text, else "<low> - <high>" built from the low/high quantities.
func RangeText(path string) Rule {
	return func(source gjson.Result) (any, bool) {
		element := source.Get(path)
		if !element.Exists() {
			return nil, false
		}
		if text := element.Get("text"); text.Type == gjson.String && text.Str != "" {
			return text.Str, true
		}
		low, high := element.Get("low"), element.Get("high")
		if !low.Exists() && !high.Exists() {
			return nil, false
		}
		rendered := strings.TrimSpace(quantityText(low) + " - " + quantityText(high))
		return rendered, true
	}
}

func quantityText(quantity gjson.Result) string {
	if !quantity.Exists() {
		return ""
	}
	return quantity.Get("value").Raw + " " + quantity.Get("unit").String()
}

func stringsAt(result gjson.Result) []string {
	if !result.IsArray() {
		return nil
	}
	elements := result.Array()
	values := make([]string, 0, len(elements))
	for _, element := range elements {
		if element.Type == gjson.String {
			values = append(values, element.Str)
		}
	}
	return values
}

func join(path, suffix string) string {
	if path == "" {
		return suffix
	}
	return path + "." + suffix
}
