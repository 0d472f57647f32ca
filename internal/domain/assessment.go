package domain

type OverallCondition string

const (
	ConditionExcellent OverallCondition = "excellent"
	ConditionGood      OverallCondition = "good"
	ConditionFair      OverallCondition = "fair"
	ConditionPoor      OverallCondition = "poor"
)

func ParseOverallCondition(s string) (OverallCondition, error) {
	switch OverallCondition(s) {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor:
		return OverallCondition(s), nil
	}
	return "", &ValidationError{Field: "overall_condition", Reason: "must be one of excellent, good, fair, poor"}
}

// Damage catalog
var DamageCatalog = map[string]string{
	"furniture_damage":   "Daños en mobiliario",
	"wall_damage":        "Daños en paredes",
	"bathroom_damage":    "Daños en baño",
	"electronics_damage": "Daños en electrónicos",
	"bedding_damage":     "Daños en ropa de cama",
	"carpet_damage":      "Daños en alfombras/suelos",
}

// Maintenance catalog
var MaintenanceCatalog = map[string]string{
	"deep_cleaning":    "Limpieza profunda requerida",
	"plumbing_check":   "Revisión de fontanería",
	"electrical_check": "Revisión eléctrica",
	"ac_maintenance":   "Mantenimiento aire acondicionado",
	"paint_touch":      "Retoque de pintura",
	"furniture_repair": "Reparación de mobiliario",
}

type RoomAssessment struct {
	Damages          []string         `json:"damages"`
	MaintenanceNeeds []string         `json:"maintenance_needs"`
	OverallCondition OverallCondition `json:"overall_condition"`
	Notes            string           `json:"notes"`
}

func NewRoomAssessment() RoomAssessment {
	return RoomAssessment{
		Damages:          []string{},
		MaintenanceNeeds: []string{},
		OverallCondition: ConditionGood,
	}
}

func (a RoomAssessment) HasOpenIssues() bool {
	return len(a.Damages) > 0 || len(a.MaintenanceNeeds) > 0
}

// ResultingRoomStatus is the room status reported to inventory once the guest has left.
func (a RoomAssessment) ResultingRoomStatus() RoomStatus {
	if a.HasOpenIssues() {
		return RoomStatusMaintenancePendingCleaning
	}
	return RoomStatusCleaning
}
