package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.opentelemetry.io/otel/attribute"

	"github.com/careaxis/copilot/internal/domain/entities"
	"github.com/careaxis/copilot/internal/domain/providers"
	"github.com/careaxis/copilot/internal/infrastructure/clients/careaxis"
	"github.com/careaxis/copilot/internal/infrastructure/observability"
	apperrors "github.com/careaxis/copilot/pkg/errors"
	"github.com/careaxis/copilot/pkg/forms"
)

// WorkflowState identifies a step of the consultation flow
type WorkflowState string

const (
	StateSelectingPatient     WorkflowState = "selecting_patient"
	StateEditingClinicalInput WorkflowState = "editing_clinical_input"
	StateAwaitingAnalysis     WorkflowState = "awaiting_analysis"
	StateReviewingCompliance  WorkflowState = "reviewing_compliance"
	StateCompleted            WorkflowState = "completed"
)

// Clinical input field names surfaced on validation failure.
const (
	FieldSymptoms        = "symptoms"
	FieldDoctorDiagnosis = "doctor_diagnosis"
	FieldNotes           = "notes"
)

// TransitionHook observes state changes, mainly for tests and UI binding
type TransitionHook func(from, to WorkflowState)

// WorkflowOption configures a ConsultationWorkflow
type WorkflowOption func(*ConsultationWorkflow)

// WithTransitionHook registers a state change observer
func WithTransitionHook(hook TransitionHook) WorkflowOption {
	return func(w *ConsultationWorkflow) {
		w.hooks = append(w.hooks, hook)
	}
}

// ConsultationWorkflow drives the multi-step consultation flow:
// SelectingPatient -> EditingClinicalInput -> AwaitingAnalysis ->
// ReviewingCompliance -> Completed. At most one analysis call is in
// flight; once started it cannot be cancelled. All unsaved data is
// discarded when the flow is reset.
type ConsultationWorkflow struct {
	mu sync.Mutex

	state         WorkflowState
	patient       *entities.Patient
	draft         *entities.ConsultationDraft
	result        *entities.ComplianceResult
	justification entities.Justification

	provider providers.ComplianceProvider
	sessions *SessionService
	notifier providers.Notifier
	hooks    []TransitionHook
}

// NewConsultationWorkflow creates a workflow in the patient selection
// state
func NewConsultationWorkflow(provider providers.ComplianceProvider, sessions *SessionService, notifier providers.Notifier, opts ...WorkflowOption) *ConsultationWorkflow {
	w := &ConsultationWorkflow{
		state:    StateSelectingPatient,
		provider: provider,
		sessions: sessions,
		notifier: notifier,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// State returns the current workflow state
func (w *ConsultationWorkflow) State() WorkflowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Patient returns the selected patient, nil before selection
func (w *ConsultationWorkflow) Patient() *entities.Patient {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.patient
}

// Result returns the compliance result under review, nil outside the
// review step
func (w *ConsultationWorkflow) Result() *entities.ComplianceResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// SelectPatient resolves the patient reference and opens a pristine
// clinical input draft
func (w *ConsultationWorkflow) SelectPatient(patient entities.Patient) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateSelectingPatient {
		return apperrors.NewWorkflowError(fmt.Sprintf("cannot select a patient in state %s", w.state))
	}
	if patient.ID == "" {
		w.notifier.Error("Please select a patient", "")
		return apperrors.NewWorkflowError("patient reference is not resolved")
	}

	selected := patient
	w.patient = &selected
	w.draft = entities.NewConsultationDraft(patient.ID)
	w.transition(StateEditingClinicalInput)
	return nil
}

// AddSymptom appends a symptom to the draft. Blank input is dropped
// silently; duplicate adds leave the list unchanged and emit a non-error
// notice.
func (w *ConsultationWorkflow) AddSymptom(raw string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil || w.state != StateEditingClinicalInput {
		return
	}
	if strings.TrimSpace(raw) == "" {
		return
	}
	if !w.draft.AddSymptom(raw) {
		w.notifier.Info("Symptom already added")
	}
}

// RemoveSymptom deletes a symptom from the draft by index
func (w *ConsultationWorkflow) RemoveSymptom(index int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil || w.state != StateEditingClinicalInput {
		return
	}
	w.draft.RemoveSymptom(index)
}

// UpdateDraft applies a mutation to the clinical input draft while in the
// editing step
func (w *ConsultationWorkflow) UpdateDraft(mutate func(*entities.ConsultationDraft)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil || w.state != StateEditingClinicalInput {
		return
	}
	mutate(w.draft)
}

// Draft returns a copy of the current clinical input draft, nil before
// patient selection
func (w *ConsultationWorkflow) Draft() *entities.ConsultationDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.draft == nil {
		return nil
	}
	copied := *w.draft
	copied.Symptoms = append([]string(nil), w.draft.Symptoms...)
	return &copied
}

// Submit validates the clinical input and, when it passes, moves to
// AwaitingAnalysis and launches the analysis call. Field errors reject
// the transition without advancing state and without any network call.
// A missing doctor session returns an unauthorized error; the caller is
// expected to redirect to the entry screen.
func (w *ConsultationWorkflow) Submit(ctx context.Context) (forms.Errors, error) {
	w.mu.Lock()

	if w.state != StateEditingClinicalInput {
		w.mu.Unlock()
		return nil, apperrors.NewWorkflowError(fmt.Sprintf("cannot submit in state %s", w.state))
	}
	if w.patient == nil {
		w.mu.Unlock()
		w.notifier.Error("Please select a patient", "")
		return nil, apperrors.NewWorkflowError("no patient selected")
	}

	if errs := validateClinicalInput(w.draft); len(errs) > 0 {
		w.mu.Unlock()
		return errs, nil
	}

	draft := *w.draft
	draft.Symptoms = append([]string(nil), w.draft.Symptoms...)
	w.mu.Unlock()

	doctor, err := w.sessions.CurrentUser(ctx)
	if err != nil {
		w.notifier.Error("No doctor session found", "Please login again.")
		return nil, apperrors.NewUnauthorizedError("no doctor session found")
	}

	w.mu.Lock()
	if w.state != StateEditingClinicalInput {
		w.mu.Unlock()
		return nil, apperrors.NewWorkflowError("analysis already in flight")
	}
	w.transition(StateAwaitingAnalysis)
	w.mu.Unlock()

	// The in-flight call deliberately outlives the submitting caller's
	// context: AwaitingAnalysis exposes no cancellation path.
	go w.runAnalysis(context.WithoutCancel(ctx), draft, doctor.ID)
	return nil, nil
}

func (w *ConsultationWorkflow) runAnalysis(ctx context.Context, draft entities.ConsultationDraft, doctorID string) {
	ctx, span := observability.StartSpan(ctx, "workflow.Analyze")
	defer span.End()
	observability.SetSpanAttributes(span,
		attribute.String("patient_id", draft.PatientID),
	)

	result, err := w.provider.Analyze(ctx, &draft, doctorID)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateAwaitingAnalysis {
		return
	}

	if err != nil {
		observability.RecordError(span, err)
		observability.LoggerFromContext(ctx).Error().
			Err(err).
			Str("patient_id", draft.PatientID).
			Msg("visit analysis failed")
		// No partial result is cached; the doctor edits and resubmits.
		w.transition(StateEditingClinicalInput)
		w.notifier.Error("Visit analysis failed", careaxis.ErrorMessage(err))
		return
	}

	w.result = result
	w.justification = entities.Justification{}
	w.transition(StateReviewingCompliance)
	w.notifier.Success("Visit analyzed successfully", "Risk level: "+result.RiskLevel)
}

// SetJustification updates the justification draft; the acknowledgement
// gate recomputes on every change
func (w *ConsultationWorkflow) SetJustification(text string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateReviewingCompliance {
		return
	}
	w.justification = entities.Justification{Text: text}
}

// Justification returns the current justification draft
func (w *ConsultationWorkflow) Justification() entities.Justification {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.justification
}

// CanAcknowledge reports whether the review can proceed: severe results
// require a justification of at least the minimum trimmed length
func (w *ConsultationWorkflow) CanAcknowledge() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canAcknowledgeLocked()
}

func (w *ConsultationWorkflow) canAcknowledgeLocked() bool {
	if w.state != StateReviewingCompliance || w.result == nil {
		return false
	}
	if w.result.Level.RequiresJustification() {
		return w.justification.Satisfies()
	}
	return true
}

// Acknowledge completes the workflow. Blocked for severe results until
// the justification satisfies the minimum length.
func (w *ConsultationWorkflow) Acknowledge() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateReviewingCompliance {
		return apperrors.NewWorkflowError(fmt.Sprintf("cannot acknowledge in state %s", w.state))
	}
	if !w.canAcknowledgeLocked() {
		return apperrors.NewWorkflowError(
			fmt.Sprintf("justification must be at least %d characters", entities.MinJustificationLength))
	}
	w.transition(StateCompleted)
	return nil
}

// ModifyConsultation returns from review to editing, discarding the
// compliance result and any partial justification. The draft is kept.
func (w *ConsultationWorkflow) ModifyConsultation() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateReviewingCompliance {
		return apperrors.NewWorkflowError(fmt.Sprintf("cannot modify in state %s", w.state))
	}
	w.result = nil
	w.justification = entities.Justification{}
	w.transition(StateEditingClinicalInput)
	return nil
}

// Reset returns to patient selection, discarding all unsaved data.
// Rejected while an analysis is in flight.
func (w *ConsultationWorkflow) Reset() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == StateAwaitingAnalysis {
		return apperrors.NewWorkflowError("cannot leave while analysis is in flight")
	}
	w.patient = nil
	w.draft = nil
	w.result = nil
	w.justification = entities.Justification{}
	w.transition(StateSelectingPatient)
	return nil
}

// transition must be called with the mutex held.
func (w *ConsultationWorkflow) transition(to WorkflowState) {
	from := w.state
	w.state = to
	for _, hook := range w.hooks {
		hook(from, to)
	}
}

// validateClinicalInput applies the submit gate: symptoms, diagnosis and
// notes must all be present.
func validateClinicalInput(draft *entities.ConsultationDraft) forms.Errors {
	errs := forms.Errors{}
	if draft == nil {
		errs[FieldSymptoms] = "Add at least one symptom"
		return errs
	}
	if len(draft.Symptoms) == 0 {
		errs[FieldSymptoms] = "Add at least one symptom"
	}
	if strings.TrimSpace(draft.DoctorDiagnosis) == "" {
		errs[FieldDoctorDiagnosis] = "Doctor diagnosis is required"
	}
	if strings.TrimSpace(draft.Notes) == "" {
		errs[FieldNotes] = "Clinical notes are required"
	}
	return errs
}
