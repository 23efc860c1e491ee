package redox

// Result records are flat, UI-oriented projections of FHIR resources.
// Except for the identifier and the primary label, which default to an empty string, every field is optional.

type PatientResult struct {
	ID          string              `json:"id"`
	FirstName   string              `json:"firstName"`
	LastName    string              `json:"lastName"`
	DateOfBirth string              `json:"dateOfBirth"`
	Gender      *string             `json:"gender,omitempty"`
	Identifiers []PatientIdentifier `json:"identifiers,omitzero"`
	Phone       *string             `json:"phone,omitempty"`
	Email       *string             `json:"email,omitempty"`
	Address     *PatientAddress     `json:"address,omitempty"`
}

type PatientIdentifier struct {
	System string `json:"system"`
	Value  string `json:"value"`
}

type PatientAddress struct {
	Line       []string `json:"line,omitzero"`
	City       *string  `json:"city,omitempty"`
	State      *string  `json:"state,omitempty"`
	PostalCode *string  `json:"postalCode,omitempty"`
}

type MedicationResult struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Code       *string           `json:"code,omitempty"`
	System     *string           `json:"system,omitempty"`
	Status     *string           `json:"status,omitempty"`
	Dosage     *MedicationDosage `json:"dosage,omitempty"`
	AuthoredOn *string           `json:"authoredOn,omitempty"`
}

type MedicationDosage struct {
	Value     *float64 `json:"value,omitempty"`
	Unit      *string  `json:"unit,omitempty"`
	Route     *string  `json:"route,omitempty"`
	Frequency *string  `json:"frequency,omitempty"`
}

type ConditionResult struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Code               *string `json:"code,omitempty"`
	System             *string `json:"system,omitempty"`
	ClinicalStatus     *string `json:"clinicalStatus,omitempty"`
	VerificationStatus *string `json:"verificationStatus,omitempty"`
	Category           *string `json:"category,omitempty"`
	Severity           *string `json:"severity,omitempty"`
	OnsetDate          *string `json:"onsetDate,omitempty"`
	AbatementDate      *string `json:"abatementDate,omitempty"`
	RecordedDate       *string `json:"recordedDate,omitempty"`
}

type AllergyResult struct {
	ID             string            `json:"id"`
	Substance      string            `json:"substance"`
	Code           *string           `json:"code,omitempty"`
	System         *string           `json:"system,omitempty"`
	ClinicalStatus *string           `json:"clinicalStatus,omitempty"`
	Type           *string           `json:"type,omitempty"`
	Category       *string           `json:"category,omitempty"`
	Criticality    *string           `json:"criticality,omitempty"`
	OnsetDate      *string           `json:"onsetDate,omitempty"`
	RecordedDate   *string           `json:"recordedDate,omitempty"`
	Reactions      []AllergyReaction `json:"reactions,omitzero"`
}

type AllergyReaction struct {
	Manifestation string  `json:"manifestation"`
	Severity      *string `json:"severity,omitempty"`
}

type ObservationResult struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Code   *string `json:"code,omitempty"`
	System *string `json:"system,omitempty"`
	Status *string `json:"status,omitempty"`
	// Category is the code of the first category, e.g. vital-signs or laboratory.
	Category *string `json:"category,omitempty"`
	// Value is a number (valueQuantity) or a string (valueString, valueCodeableConcept).
	Value          any                    `json:"value,omitempty"`
	Unit           *string                `json:"unit,omitempty"`
	Interpretation *string                `json:"interpretation,omitempty"`
	ReferenceRange *string                `json:"referenceRange,omitempty"`
	EffectiveDate  *string                `json:"effectiveDate,omitempty"`
	Components     []ObservationComponent `json:"components,omitzero"`
}

type ObservationComponent struct {
	Name  string  `json:"name"`
	Value any     `json:"value,omitempty"`
	Unit  *string `json:"unit,omitempty"`
}

type ImmunizationResult struct {
	ID             string  `json:"id"`
	VaccineName    string  `json:"vaccineName"`
	Code           *string `json:"code,omitempty"`
	System         *string `json:"system,omitempty"`
	Status         *string `json:"status,omitempty"`
	OccurrenceDate *string `json:"occurrenceDate,omitempty"`
	LotNumber      *string `json:"lotNumber,omitempty"`
	Site           *string `json:"site,omitempty"`
	Route          *string `json:"route,omitempty"`
}

type ProcedureResult struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Code          *string `json:"code,omitempty"`
	System        *string `json:"system,omitempty"`
	Status        *string `json:"status,omitempty"`
	PerformedDate *string `json:"performedDate,omitempty"`
	Performer     *string `json:"performer,omitempty"`
	Reason        *string `json:"reason,omitempty"`
}

type EncounterResult struct {
	ID          string  `json:"id"`
	Status      *string `json:"status,omitempty"`
	Class       *string `json:"class,omitempty"`
	Type        *string `json:"type,omitempty"`
	Reason      *string `json:"reason,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Location    *string `json:"location,omitempty"`
	Participant *string `json:"participant,omitempty"`
}

type DiagnosticReportResult struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Code             *string  `json:"code,omitempty"`
	System           *string  `json:"system,omitempty"`
	Status           *string  `json:"status,omitempty"`
	Category         *string  `json:"category,omitempty"`
	EffectiveDate    *string  `json:"effectiveDate,omitempty"`
	Issued           *string  `json:"issued,omitempty"`
	Conclusion       *string  `json:"conclusion,omitempty"`
	ResultReferences []string `json:"resultReferences,omitzero"`
}

type CarePlanResult struct {
	ID          string             `json:"id"`
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	Status      *string            `json:"status,omitempty"`
	Intent      *string            `json:"intent,omitempty"`
	Category    *string            `json:"category,omitempty"`
	StartDate   *string            `json:"startDate,omitempty"`
	EndDate     *string            `json:"endDate,omitempty"`
	Activities  []CarePlanActivity `json:"activities,omitzero"`
}

type CarePlanActivity struct {
	Name        *string `json:"name,omitempty"`
	Status      *string `json:"status,omitempty"`
	Description *string `json:"description,omitempty"`
}

type DocumentReferenceResult struct {
	ID          string            `json:"id"`
	Type        *string           `json:"type,omitempty"`
	Category    *string           `json:"category,omitempty"`
	Status      *string           `json:"status,omitempty"`
	Date        *string           `json:"date,omitempty"`
	Author      *string           `json:"author,omitempty"`
	Description *string           `json:"description,omitempty"`
	Content     []DocumentContent `json:"content,omitzero"`
}

type DocumentContent struct {
	ContentType *string `json:"contentType,omitempty"`
	URL         *string `json:"url,omitempty"`
	Title       *string `json:"title,omitempty"`
}

type GoalResult struct {
	ID                string       `json:"id"`
	Description       string       `json:"description"`
	LifecycleStatus   *string      `json:"lifecycleStatus,omitempty"`
	AchievementStatus *string      `json:"achievementStatus,omitempty"`
	StartDate         *string      `json:"startDate,omitempty"`
	Targets           []GoalTarget `json:"targets,omitzero"`
}

type GoalTarget struct {
	Measure     *string  `json:"measure,omitempty"`
	TargetValue *float64 `json:"targetValue,omitempty"`
	Unit        *string  `json:"unit,omitempty"`
	DueDate     *string  `json:"dueDate,omitempty"`
}

type CareTeamResult struct {
	ID           string                `json:"id"`
	Name         *string               `json:"name,omitempty"`
	Status       *string               `json:"status,omitempty"`
	StartDate    *string               `json:"startDate,omitempty"`
	EndDate      *string               `json:"endDate,omitempty"`
	Participants []CareTeamParticipant `json:"participants,omitzero"`
}

type CareTeamParticipant struct {
	Name *string `json:"name,omitempty"`
	Role *string `json:"role,omitempty"`
}

type FamilyMemberHistoryResult struct {
	ID           string                      `json:"id"`
	Status       *string                     `json:"status,omitempty"`
	Relationship *string                     `json:"relationship,omitempty"`
	Sex          *string                     `json:"sex,omitempty"`
	Conditions   []FamilyMemberConditionInfo `json:"conditions,omitzero"`
}

type FamilyMemberConditionInfo struct {
	Name     string   `json:"name"`
	Outcome  *string  `json:"outcome,omitempty"`
	OnsetAge *float64 `json:"onsetAge,omitempty"`
}

type MedicationAdministrationResult struct {
	ID            string                        `json:"id"`
	Name          string                        `json:"name"`
	Code          *string                       `json:"code,omitempty"`
	System        *string                       `json:"system,omitempty"`
	Status        *string                       `json:"status,omitempty"`
	EffectiveDate *string                       `json:"effectiveDate,omitempty"`
	Dosage        *MedicationAdministeredDosage `json:"dosage,omitempty"`
}

type MedicationAdministeredDosage struct {
	Value *float64 `json:"value,omitempty"`
	Unit  *string  `json:"unit,omitempty"`
	Route *string  `json:"route,omitempty"`
}

type MedicationStatementResult struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Code          *string `json:"code,omitempty"`
	System        *string `json:"system,omitempty"`
	Status        *string `json:"status,omitempty"`
	EffectiveDate *string `json:"effectiveDate,omitempty"`
	DateAsserted  *string `json:"dateAsserted,omitempty"`
	Dosage        *string `json:"dosage,omitempty"`
}
