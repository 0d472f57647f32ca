package service

import (
	"sort"

	"frontdesk-backend/internal/domain"
)

// AssessmentRecorder accumulates the room-condition checklist for the room being vacated.
type AssessmentRecorder struct {
	damages     map[string]struct{}
	maintenance map[string]struct{}
	condition   domain.OverallCondition
	notes       string
}

func NewAssessmentRecorder() *AssessmentRecorder {
	r := &AssessmentRecorder{}
	r.Reset()
	return r
}

func (r *AssessmentRecorder) Reset() {
	r.damages = map[string]struct{}{}
	r.maintenance = map[string]struct{}{}
	r.condition = domain.ConditionGood
	r.notes = ""
}

func (r *AssessmentRecorder) AddDamage(id string) error {
	if _, ok := domain.DamageCatalog[id]; !ok {
		return &domain.ValidationError{Field: "damage", Reason: "unknown damage id " + strconvQuote(id)}
	}
	r.damages[id] = struct{}{}
	return nil
}

func (r *AssessmentRecorder) RemoveDamage(id string) error {
	if _, ok := domain.DamageCatalog[id]; !ok {
		return &domain.ValidationError{Field: "damage", Reason: "unknown damage id " + strconvQuote(id)}
	}
	delete(r.damages, id)
	return nil
}

func (r *AssessmentRecorder) AddMaintenanceNeed(id string) error {
	if _, ok := domain.MaintenanceCatalog[id]; !ok {
		return &domain.ValidationError{Field: "maintenance", Reason: "unknown maintenance id " + strconvQuote(id)}
	}
	r.maintenance[id] = struct{}{}
	return nil
}

func (r *AssessmentRecorder) RemoveMaintenanceNeed(id string) error {
	if _, ok := domain.MaintenanceCatalog[id]; !ok {
		return &domain.ValidationError{Field: "maintenance", Reason: "unknown maintenance id " + strconvQuote(id)}
	}
	delete(r.maintenance, id)
	return nil
}

func (r *AssessmentRecorder) SetOverallCondition(level domain.OverallCondition) error {
	parsed, err := domain.ParseOverallCondition(string(level))
	if err != nil {
		return err
	}
	r.condition = parsed
	return nil
}

func (r *AssessmentRecorder) SetNotes(text string) {
	r.notes = text
}

func (r *AssessmentRecorder) HasOpenIssues() bool {
	return len(r.damages) > 0 || len(r.maintenance) > 0
}

// Assessment returns a copy with ids sorted.
func (r *AssessmentRecorder) Assessment() domain.RoomAssessment {
	return domain.RoomAssessment{
		Damages:          sortedKeys(r.damages),
		MaintenanceNeeds: sortedKeys(r.maintenance),
		OverallCondition: r.condition,
		Notes:            r.notes,
	}
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
