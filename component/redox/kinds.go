package redox

// ResourceKind is a FHIR resource type the bridge can search and normalize.
type ResourceKind string

const (
	KindPatient                  ResourceKind = "Patient"
	KindMedicationRequest        ResourceKind = "MedicationRequest"
	KindCondition                ResourceKind = "Condition"
	KindAllergyIntolerance       ResourceKind = "AllergyIntolerance"
	KindObservation              ResourceKind = "Observation"
	KindImmunization             ResourceKind = "Immunization"
	KindProcedure                ResourceKind = "Procedure"
	KindEncounter                ResourceKind = "Encounter"
	KindDiagnosticReport         ResourceKind = "DiagnosticReport"
	KindCarePlan                 ResourceKind = "CarePlan"
	KindDocumentReference        ResourceKind = "DocumentReference"
	KindGoal                     ResourceKind = "Goal"
	KindCareTeam                 ResourceKind = "CareTeam"
	KindFamilyMemberHistory      ResourceKind = "FamilyMemberHistory"
	KindMedicationAdministration ResourceKind = "MedicationAdministration"
	KindMedicationStatement      ResourceKind = "MedicationStatement"
)

// Kinds lists every supported resource kind.
var Kinds = []ResourceKind{
	KindPatient,
	KindMedicationRequest,
	KindCondition,
	KindAllergyIntolerance,
	KindObservation,
	KindImmunization,
	KindProcedure,
	KindEncounter,
	KindDiagnosticReport,
	KindCarePlan,
	KindDocumentReference,
	KindGoal,
	KindCareTeam,
	KindFamilyMemberHistory,
	KindMedicationAdministration,
	KindMedicationStatement,
}
