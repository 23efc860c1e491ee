package redox

import (
	"github.com/redoxbridge/redoxbridge/lib/normalize"
)

// Field maps per resource kind. Each field lists its fallback chain over the raw resource; the first present value
// wins and a chain that yields nothing leaves the field absent.

var (
	id = normalize.Field{Name: "id", Rule: normalize.Default(normalize.String("id"), "")}

	officialName = []string{`name.#(use=="official")`, "name.0"}
	homeAddress  = []string{`address.#(use=="home")`, "address.0"}
)

// label is the primary human-readable label of a resource: the concept's text, else its first coding's display,
// else an empty string.
func label(name string, path string) normalize.Field {
	return normalize.Field{Name: name, Rule: normalize.Default(normalize.Display(path), "")}
}

func codeAndSystem(path string) []normalize.Field {
	return []normalize.Field{
		{Name: "code", Rule: normalize.Code(path)},
		{Name: "system", Rule: normalize.System(path)},
	}
}

func fields(groups ...[]normalize.Field) normalize.Fields {
	var result normalize.Fields
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var patientFields = normalize.Fields{
	id,
	{Name: "firstName", Rule: normalize.Default(normalize.Within(officialName, normalize.Join("given", " ")), "")},
	{Name: "lastName", Rule: normalize.Default(normalize.Within(officialName, normalize.String("family")), "")},
	{Name: "dateOfBirth", Rule: normalize.Default(normalize.String("birthDate"), "")},
	{Name: "gender", Rule: normalize.String("gender")},
	{Name: "identifiers", Rule: normalize.Each("identifier", normalize.Object(normalize.Fields{
		{Name: "system", Rule: normalize.Default(normalize.String("system"), "")},
		{Name: "value", Rule: normalize.Default(normalize.String("value"), "")},
	}))},
	{Name: "phone", Rule: normalize.Within([]string{`telecom.#(system=="phone")`}, normalize.String("value"))},
	{Name: "email", Rule: normalize.Within([]string{`telecom.#(system=="email")`}, normalize.String("value"))},
	{Name: "address", Rule: normalize.Within(homeAddress, normalize.Object(normalize.Fields{
		{Name: "line", Rule: normalize.Strings("line")},
		{Name: "city", Rule: normalize.String("city")},
		{Name: "state", Rule: normalize.String("state")},
		{Name: "postalCode", Rule: normalize.String("postalCode")},
	}))},
}

var medicationRequestFields = fields(
	[]normalize.Field{id, label("name", "medicationCodeableConcept")},
	codeAndSystem("medicationCodeableConcept"),
	[]normalize.Field{
		{Name: "status", Rule: normalize.String("status")},
		{Name: "dosage", Rule: normalize.When(
			[]string{
				"dosageInstruction.0.doseAndRate.0.doseQuantity",
				"dosageInstruction.0.route",
				"dosageInstruction.0.timing",
			},
			normalize.At("dosageInstruction.0", normalize.Object(normalize.Fields{
				{Name: "value", Rule: normalize.Number("doseAndRate.0.doseQuantity.value")},
				{Name: "unit", Rule: normalize.String("doseAndRate.0.doseQuantity.unit")},
				{Name: "route", Rule: normalize.Display("route")},
				{Name: "frequency", Rule: normalize.Display("timing.code")},
			})),
		)},
		{Name: "authoredOn", Rule: normalize.String("authoredOn")},
	},
)

var conditionFields = fields(
	[]normalize.Field{id, label("name", "code")},
	codeAndSystem("code"),
	[]normalize.Field{
		{Name: "clinicalStatus", Rule: normalize.Status("clinicalStatus")},
		{Name: "verificationStatus", Rule: normalize.Status("verificationStatus")},
		{Name: "category", Rule: normalize.CodingDisplay("category.0")},
		{Name: "severity", Rule: normalize.CodingDisplay("severity")},
		{Name: "onsetDate", Rule: normalize.Timing("onsetDateTime", "onsetPeriod")},
		{Name: "abatementDate", Rule: normalize.String("abatementDateTime")},
		{Name: "recordedDate", Rule: normalize.String("recordedDate")},
	},
)

var allergyIntoleranceFields = fields(
	[]normalize.Field{id, label("substance", "code")},
	codeAndSystem("code"),
	[]normalize.Field{
		{Name: "clinicalStatus", Rule: normalize.Status("clinicalStatus")},
		{Name: "type", Rule: normalize.String("type")},
		{Name: "category", Rule: normalize.String("category.0")},
		{Name: "criticality", Rule: normalize.String("criticality")},
		{Name: "onsetDate", Rule: normalize.String("onsetDateTime")},
		{Name: "recordedDate", Rule: normalize.String("recordedDate")},
		{Name: "reactions", Rule: normalize.Each("reaction", normalize.Object(normalize.Fields{
			label("manifestation", "manifestation.0"),
			{Name: "severity", Rule: normalize.String("severity")},
		}))},
	},
)

var observationFields = fields(
	[]normalize.Field{id, label("name", "code")},
	codeAndSystem("code"),
	[]normalize.Field{
		{Name: "status", Rule: normalize.String("status")},
		{Name: "category", Rule: normalize.Status("category.0")},
		{Name: "value", Rule: normalize.OneOf(
			normalize.Choice{Path: "valueQuantity", Rule: normalize.Number("valueQuantity.value")},
			normalize.Choice{Path: "valueString", Rule: normalize.String("valueString")},
			normalize.Choice{Path: "valueCodeableConcept", Rule: normalize.Display("valueCodeableConcept")},
		)},
		{Name: "unit", Rule: normalize.String("valueQuantity.unit")},
		{Name: "interpretation", Rule: normalize.CodingDisplay("interpretation.0")},
		{Name: "referenceRange", Rule: normalize.RangeText("referenceRange.0")},
		{Name: "effectiveDate", Rule: normalize.Timing("effectiveDateTime", "effectivePeriod")},
		{Name: "components", Rule: normalize.Each("component", normalize.Object(normalize.Fields{
			label("name", "code"),
			{Name: "value", Rule: normalize.First(normalize.Number("valueQuantity.value"), normalize.String("valueString"))},
			{Name: "unit", Rule: normalize.String("valueQuantity.unit")},
		}))},
	},
)

var immunizationFields = fields(
	[]normalize.Field{id, label("vaccineName", "vaccineCode")},
	codeAndSystem("vaccineCode"),
	[]normalize.Field{
		{Name: "status", Rule: normalize.String("status")},
		{Name: "occurrenceDate", Rule: normalize.String("occurrenceDateTime")},
		{Name: "lotNumber", Rule: normalize.String("lotNumber")},
		{Name: "site", Rule: normalize.Display("site")},
		{Name: "route", Rule: normalize.Display("route")},
	},
)

var procedureFields = fields(
	[]normalize.Field{id, label("name", "code")},
	codeAndSystem("code"),
	[]normalize.Field{
		{Name: "status", Rule: normalize.String("status")},
		{Name: "performedDate", Rule: normalize.Timing("performedDateTime", "performedPeriod")},
		{Name: "performer", Rule: normalize.String("performer.0.actor.display")},
		{Name: "reason", Rule: normalize.Display("reasonCode.0")},
	},
)

var encounterFields = normalize.Fields{
	id,
	{Name: "status", Rule: normalize.String("status")},
	{Name: "class", Rule: normalize.First(normalize.String("class.display"), normalize.String("class.code"))},
	{Name: "type", Rule: normalize.Display("type.0")},
	{Name: "reason", Rule: normalize.Display("reasonCode.0")},
	{Name: "startDate", Rule: normalize.String("period.start")},
	{Name: "endDate", Rule: normalize.String("period.end")},
	{Name: "location", Rule: normalize.String("location.0.location.display")},
	{Name: "participant", Rule: normalize.String("participant.0.individual.display")},
}

var diagnosticReportFields = fields(
	[]normalize.Field{id, label("name", "code")},
	codeAndSystem("code"),
	[]normalize.Field{
		{Name: "status", Rule: normalize.String("status")},
		{Name: "category", Rule: normalize.CodingDisplay("category.0")},
		{Name: "effectiveDate", Rule: normalize.Timing("effectiveDateTime", "effectivePeriod")},
		{Name: "issued", Rule: normalize.String("issued")},
		{Name: "conclusion", Rule: normalize.String("conclusion")},
		{Name: "resultReferences", Rule: normalize.Each("result", normalize.Default(normalize.String("reference"), ""))},
	},
)

var carePlanFields = normalize.Fields{
	id,
	{Name: "title", Rule: normalize.String("title")},
	{Name: "description", Rule: normalize.String("description")},
	{Name: "status", Rule: normalize.String("status")},
	{Name: "intent", Rule: normalize.String("intent")},
	{Name: "category", Rule: normalize.CodingDisplay("category.0")},
	{Name: "startDate", Rule: normalize.String("period.start")},
	{Name: "endDate", Rule: normalize.String("period.end")},
	{Name: "activities", Rule: normalize.Each("activity", normalize.Object(normalize.Fields{
		{Name: "name", Rule: normalize.Display("detail.code")},
		{Name: "status", Rule: normalize.String("detail.status")},
		{Name: "description", Rule: normalize.String("detail.description")},
	}))},
}

var documentReferenceFields = normalize.Fields{
	id,
	{Name: "type", Rule: normalize.Display("type")},
	{Name: "category", Rule: normalize.Display("category.0")},
	{Name: "status", Rule: normalize.String("status")},
	{Name: "date", Rule: normalize.String("date")},
	{Name: "author", Rule: normalize.String("author.0.display")},
	{Name: "description", Rule: normalize.String("description")},
	{Name: "content", Rule: normalize.Each("content", normalize.Object(normalize.Fields{
		{Name: "contentType", Rule: normalize.String("attachment.contentType")},
		{Name: "url", Rule: normalize.String("attachment.url")},
		{Name: "title", Rule: normalize.String("attachment.title")},
	}))},
}

var goalFields = normalize.Fields{
	id,
	label("description", "description"),
	{Name: "lifecycleStatus", Rule: normalize.String("lifecycleStatus")},
	{Name: "achievementStatus", Rule: normalize.CodingDisplay("achievementStatus")},
	{Name: "startDate", Rule: normalize.String("startDate")},
	{Name: "targets", Rule: normalize.Each("target", normalize.Object(normalize.Fields{
		{Name: "measure", Rule: normalize.Display("measure")},
		{Name: "targetValue", Rule: normalize.Number("detailQuantity.value")},
		{Name: "unit", Rule: normalize.String("detailQuantity.unit")},
		{Name: "dueDate", Rule: normalize.String("dueDate")},
	}))},
}

var careTeamFields = normalize.Fields{
	id,
	{Name: "name", Rule: normalize.String("name")},
	{Name: "status", Rule: normalize.String("status")},
	{Name: "startDate", Rule: normalize.String("period.start")},
	{Name: "endDate", Rule: normalize.String("period.end")},
	{Name: "participants", Rule: normalize.Each("participant", normalize.Object(normalize.Fields{
		{Name: "name", Rule: normalize.String("member.display")},
		{Name: "role", Rule: normalize.Display("role.0")},
	}))},
}

var familyMemberHistoryFields = normalize.Fields{
	id,
	{Name: "status", Rule: normalize.String("status")},
	{Name: "relationship", Rule: normalize.Display("relationship")},
	{Name: "sex", Rule: normalize.Display("sex")},
	{Name: "conditions", Rule: normalize.Each("condition", normalize.Object(normalize.Fields{
		label("name", "code"),
		{Name: "outcome", Rule: normalize.Display("outcome")},
		{Name: "onsetAge", Rule: normalize.Number("onsetAge.value")},
	}))},
}

var medicationAdministrationFields = fields(
	[]normalize.Field{id, label("name", "medicationCodeableConcept")},
	codeAndSystem("medicationCodeableConcept"),
	[]normalize.Field{
		{Name: "status", Rule: normalize.String("status")},
		{Name: "effectiveDate", Rule: normalize.Timing("effectiveDateTime", "effectivePeriod")},
		{Name: "dosage", Rule: normalize.At("dosage", normalize.Object(normalize.Fields{
			{Name: "value", Rule: normalize.Number("dose.value")},
			{Name: "unit", Rule: normalize.String("dose.unit")},
			{Name: "route", Rule: normalize.Display("route")},
		}))},
	},
)

var medicationStatementFields = fields(
	[]normalize.Field{id, label("name", "medicationCodeableConcept")},
	codeAndSystem("medicationCodeableConcept"),
	[]normalize.Field{
		{Name: "status", Rule: normalize.String("status")},
		{Name: "effectiveDate", Rule: normalize.Timing("effectiveDateTime", "effectivePeriod")},
		{Name: "dateAsserted", Rule: normalize.String("dateAsserted")},
		{Name: "dosage", Rule: normalize.String("dosage.0.text")},
	},
)

// fieldMaps holds the field map of every supported kind.
var fieldMaps = map[ResourceKind]normalize.Fields{
	KindPatient:                  patientFields,
	KindMedicationRequest:        medicationRequestFields,
	KindCondition:                conditionFields,
	KindAllergyIntolerance:       allergyIntoleranceFields,
	KindObservation:              observationFields,
	KindImmunization:             immunizationFields,
	KindProcedure:                procedureFields,
	KindEncounter:                encounterFields,
	KindDiagnosticReport:         diagnosticReportFields,
	KindCarePlan:                 carePlanFields,
	KindDocumentReference:        documentReferenceFields,
	KindGoal:                     goalFields,
	KindCareTeam:                 careTeamFields,
	KindFamilyMemberHistory:      familyMemberHistoryFields,
	KindMedicationAdministration: medicationAdministrationFields,
	KindMedicationStatement:      medicationStatementFields,
}
