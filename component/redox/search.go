package redox

import (
	"context"
	"net/url"

	"github.com/redoxbridge/redoxbridge/lib/normalize"
)

// DefaultMedicationIntent is the MedicationRequest intent searched for when none is given.
const DefaultMedicationIntent = "order"

// PatientQuery holds the demographic search parameters. Given, Family and BirthDate are required.
type PatientQuery struct {
	Given      string `json:"given"`
	Family     string `json:"family"`
	BirthDate  string `json:"birthdate"`
	Gender     string `json:"gender,omitempty"`
	Identifier string `json:"identifier,omitempty"`
	Address    string `json:"address,omitempty"`
	Telecom    string `json:"telecom,omitempty"`
}

func (q PatientQuery) params() url.Values {
	params := url.Values{
		"given":     {q.Given},
		"family":    {q.Family},
		"birthdate": {q.BirthDate},
	}
	optional(params, "gender", q.Gender)
	optional(params, "identifier", q.Identifier)
	optional(params, "address", q.Address)
	optional(params, "telecom", q.Telecom)
	return params
}

// SearchPatients finds patients by demographics.
func (c *Client) SearchPatients(ctx context.Context, query PatientQuery) ([]PatientResult, error) {
	return search[PatientResult](ctx, c, KindPatient, query.params())
}

// SearchMedications searches the patient's medication requests. An empty intent searches for orders.
func (c *Client) SearchMedications(ctx context.Context, patientID string, intent string) ([]MedicationResult, error) {
	if intent == "" {
		intent = DefaultMedicationIntent
	}
	return search[MedicationResult](ctx, c, KindMedicationRequest, patientParams(patientID, "intent", intent))
}

func (c *Client) SearchConditions(ctx context.Context, patientID string, clinicalStatus string) ([]ConditionResult, error) {
	return search[ConditionResult](ctx, c, KindCondition, patientParams(patientID, "clinical-status", clinicalStatus))
}

func (c *Client) SearchAllergies(ctx context.Context, patientID string, clinicalStatus string) ([]AllergyResult, error) {
	return search[AllergyResult](ctx, c, KindAllergyIntolerance, patientParams(patientID, "clinical-status", clinicalStatus))
}

// SearchObservations covers vitals, labs and social history, narrowed by category and/or code.
func (c *Client) SearchObservations(ctx context.Context, patientID string, category string, code string) ([]ObservationResult, error) {
	return search[ObservationResult](ctx, c, KindObservation, patientParams(patientID, "category", category, "code", code))
}

func (c *Client) SearchImmunizations(ctx context.Context, patientID string, status string) ([]ImmunizationResult, error) {
	return search[ImmunizationResult](ctx, c, KindImmunization, patientParams(patientID, "status", status))
}

func (c *Client) SearchProcedures(ctx context.Context, patientID string, status string) ([]ProcedureResult, error) {
	return search[ProcedureResult](ctx, c, KindProcedure, patientParams(patientID, "status", status))
}

func (c *Client) SearchEncounters(ctx context.Context, patientID string, status string) ([]EncounterResult, error) {
	return search[EncounterResult](ctx, c, KindEncounter, patientParams(patientID, "status", status))
}

func (c *Client) SearchDiagnosticReports(ctx context.Context, patientID string, category string) ([]DiagnosticReportResult, error) {
	return search[DiagnosticReportResult](ctx, c, KindDiagnosticReport, patientParams(patientID, "category", category))
}

func (c *Client) SearchCarePlans(ctx context.Context, patientID string, status string) ([]CarePlanResult, error) {
	return search[CarePlanResult](ctx, c, KindCarePlan, patientParams(patientID, "status", status))
}

func (c *Client) SearchDocumentReferences(ctx context.Context, patientID string, documentType string) ([]DocumentReferenceResult, error) {
	return search[DocumentReferenceResult](ctx, c, KindDocumentReference, patientParams(patientID, "type", documentType))
}

func (c *Client) SearchGoals(ctx context.Context, patientID string, lifecycleStatus string) ([]GoalResult, error) {
	return search[GoalResult](ctx, c, KindGoal, patientParams(patientID, "lifecycle-status", lifecycleStatus))
}

func (c *Client) SearchCareTeams(ctx context.Context, patientID string, status string) ([]CareTeamResult, error) {
	return search[CareTeamResult](ctx, c, KindCareTeam, patientParams(patientID, "status", status))
}

func (c *Client) SearchFamilyHistory(ctx context.Context, patientID string) ([]FamilyMemberHistoryResult, error) {
	return search[FamilyMemberHistoryResult](ctx, c, KindFamilyMemberHistory, patientParams(patientID))
}

func (c *Client) SearchMedicationAdministrations(ctx context.Context, patientID string, status string) ([]MedicationAdministrationResult, error) {
	return search[MedicationAdministrationResult](ctx, c, KindMedicationAdministration, patientParams(patientID, "status", status))
}

func (c *Client) SearchMedicationStatements(ctx context.Context, patientID string, status string) ([]MedicationStatementResult, error) {
	return search[MedicationStatementResult](ctx, c, KindMedicationStatement, patientParams(patientID, "status", status))
}

func search[T any](ctx context.Context, client *Client, kind ResourceKind, params url.Values) ([]T, error) {
	resources, err := client.Search(ctx, kind, params)
	if err != nil {
		return nil, err
	}
	results, err := normalize.Normalize[T](string(kind), resources, fieldMaps[kind])
	if err != nil {
		return nil, &SearchError{Kind: kind, Cause: err}
	}
	return results, nil
}

// patientParams scopes a search to the patient and adds the given name/value pairs, skipping empty values.
func patientParams(patientID string, pairs ...string) url.Values {
	params := url.Values{"patient": {"Patient/" + patientID}}
	for i := 0; i+1 < len(pairs); i += 2 {
		optional(params, pairs[i], pairs[i+1])
	}
	return params
}

func optional(params url.Values, name string, value string) {
	if value != "" {
		params.Set(name, value)
	}
}
