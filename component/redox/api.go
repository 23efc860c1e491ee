package redox

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/redoxbridge/redoxbridge/component/authn"
	"github.com/redoxbridge/redoxbridge/lib/fhirapi"
)

var genders = []string{"male", "female", "other", "unknown"}

type listResponse[T any] struct {
	Results []T `json:"results"`
	Total   int `json:"total"`
}

// patientSearch searches one resource kind for the patient, taking its filters from the request's query.
type patientSearch[T any] func(ctx context.Context, patientID string, query url.Values) ([]T, error)

func registerAPI(mux *http.ServeMux, client *Client) {
	mux.HandleFunc("POST /redox/patients/search", func(httpResponse http.ResponseWriter, httpRequest *http.Request) {
		request, err := fhirapi.ReadRequest[PatientQuery](httpRequest)
		if err != nil {
			fhirapi.SendErrorResponse(httpRequest.Context(), httpResponse, err)
			return
		}
		searchPatients(httpResponse, httpRequest, client, request.Body)
	})
	mux.HandleFunc("GET /redox/patients/search", func(httpResponse http.ResponseWriter, httpRequest *http.Request) {
		query := httpRequest.URL.Query()
		searchPatients(httpResponse, httpRequest, client, PatientQuery{
			Given:      query.Get("given"),
			Family:     query.Get("family"),
			BirthDate:  query.Get("birthdate"),
			Gender:     query.Get("gender"),
			Identifier: query.Get("identifier"),
		})
	})

	handlePatientList(mux, "medications", func(ctx context.Context, patientID string, query url.Values) ([]MedicationResult, error) {
		return client.SearchMedications(ctx, patientID, query.Get("intent"))
	})
	handlePatientList(mux, "conditions", func(ctx context.Context, patientID string, query url.Values) ([]ConditionResult, error) {
		return client.SearchConditions(ctx, patientID, query.Get("clinical-status"))
	})
	handlePatientList(mux, "allergies", func(ctx context.Context, patientID string, query url.Values) ([]AllergyResult, error) {
		return client.SearchAllergies(ctx, patientID, query.Get("clinical-status"))
	})
	handlePatientList(mux, "observations", func(ctx context.Context, patientID string, query url.Values) ([]ObservationResult, error) {
		return client.SearchObservations(ctx, patientID, query.Get("category"), query.Get("code"))
	})
	handlePatientList(mux, "immunizations", func(ctx context.Context, patientID string, query url.Values) ([]ImmunizationResult, error) {
		return client.SearchImmunizations(ctx, patientID, query.Get("status"))
	})
	handlePatientList(mux, "procedures", func(ctx context.Context, patientID string, query url.Values) ([]ProcedureResult, error) {
		return client.SearchProcedures(ctx, patientID, query.Get("status"))
	})
	handlePatientList(mux, "encounters", func(ctx context.Context, patientID string, query url.Values) ([]EncounterResult, error) {
		return client.SearchEncounters(ctx, patientID, query.Get("status"))
	})
	handlePatientList(mux, "diagnostic-reports", func(ctx context.Context, patientID string, query url.Values) ([]DiagnosticReportResult, error) {
		return client.SearchDiagnosticReports(ctx, patientID, query.Get("category"))
	})
	handlePatientList(mux, "care-plans", func(ctx context.Context, patientID string, query url.Values) ([]CarePlanResult, error) {
		return client.SearchCarePlans(ctx, patientID, query.Get("status"))
	})
	handlePatientList(mux, "documents", func(ctx context.Context, patientID string, query url.Values) ([]DocumentReferenceResult, error) {
		return client.SearchDocumentReferences(ctx, patientID, query.Get("type"))
	})
	handlePatientList(mux, "goals", func(ctx context.Context, patientID string, query url.Values) ([]GoalResult, error) {
		return client.SearchGoals(ctx, patientID, query.Get("lifecycle-status"))
	})
	handlePatientList(mux, "care-teams", func(ctx context.Context, patientID string, query url.Values) ([]CareTeamResult, error) {
		return client.SearchCareTeams(ctx, patientID, query.Get("status"))
	})
	handlePatientList(mux, "family-history", func(ctx context.Context, patientID string, _ url.Values) ([]FamilyMemberHistoryResult, error) {
		return client.SearchFamilyHistory(ctx, patientID)
	})
	handlePatientList(mux, "medication-administrations", func(ctx context.Context, patientID string, query url.Values) ([]MedicationAdministrationResult, error) {
		return client.SearchMedicationAdministrations(ctx, patientID, query.Get("status"))
	})
	handlePatientList(mux, "medication-statements", func(ctx context.Context, patientID string, query url.Values) ([]MedicationStatementResult, error) {
		return client.SearchMedicationStatements(ctx, patientID, query.Get("status"))
	})
}

func handlePatientList[T any](mux *http.ServeMux, route string, search patientSearch[T]) {
	mux.HandleFunc("GET /redox/patients/{patientId}/"+route, func(httpResponse http.ResponseWriter, httpRequest *http.Request) {
		results, err := search(httpRequest.Context(), httpRequest.PathValue("patientId"), httpRequest.URL.Query())
		if err != nil {
			fhirapi.SendErrorResponse(httpRequest.Context(), httpResponse, apiError(err))
			return
		}
		sendResults(httpResponse, httpRequest, results)
	})
}

func searchPatients(httpResponse http.ResponseWriter, httpRequest *http.Request, client *Client, query PatientQuery) {
	if err := query.validate(); err != nil {
		fhirapi.SendErrorResponse(httpRequest.Context(), httpResponse, err)
		return
	}
	results, err := client.SearchPatients(httpRequest.Context(), query)
	if err != nil {
		fhirapi.SendErrorResponse(httpRequest.Context(), httpResponse, apiError(err))
		return
	}
	sendResults(httpResponse, httpRequest, results)
}

func sendResults[T any](httpResponse http.ResponseWriter, httpRequest *http.Request, results []T) {
	fhirapi.SendJSONResponse(httpRequest.Context(), httpResponse, http.StatusOK, listResponse[T]{
		Results: results,
		Total:   len(results),
	})
}

func (q PatientQuery) validate() error {
	if strings.TrimSpace(q.Given) == "" {
		return fhirapi.BadRequestError("given is required", nil)
	}
	if strings.TrimSpace(q.Family) == "" {
		return fhirapi.BadRequestError("family is required", nil)
	}
	if _, err := time.Parse(time.DateOnly, q.BirthDate); err != nil {
		return fhirapi.BadRequestError("birthdate must be a date formatted as YYYY-MM-DD", err)
	}
	if q.Gender != "" && !slices.Contains(genders, q.Gender) {
		return fhirapi.BadRequestError("gender must be one of "+strings.Join(genders, ", "), nil)
	}
	return nil
}

// apiError translates the error taxonomy to API errors. Only the taxonomy message reaches the API client.
func apiError(err error) error {
	var searchErr *SearchError
	var authErr *authn.AuthenticationError
	var configErr *authn.ConfigurationError
	switch {
	case errors.As(err, &searchErr):
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return fhirapi.UnavailableError(searchErr.Error(), err)
		}
		return fhirapi.BadGatewayError(searchErr.Error(), err)
	case errors.As(err, &authErr):
		return fhirapi.UnavailableError("failed to authenticate", err)
	case errors.As(err, &configErr):
		return fhirapi.InternalError("Redox integration is misconfigured", err)
	}
	return err
}
