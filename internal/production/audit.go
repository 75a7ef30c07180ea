package production

type AuditAction string

const (
	ActionArticleCreated   AuditAction = "ARTICLE_CREATED"
	ActionProductionUpdate AuditAction = "PRODUCTION_UPDATE"
	ActionTransfer         AuditAction = "TRANSFER"
	ActionQualityUpdate    AuditAction = "QUALITY_UPDATE"
	ActionRepairStatus     AuditAction = "REPAIR_STATUS_UPDATE"
	ActionM2Recategorize   AuditAction = "M2_RECATEGORIZE"
	ActionFinalQuality     AuditAction = "FINAL_QUALITY"
	ActionRepairStart      AuditAction = "REPAIR_START"
)

// Grade is a quality class assigned at grading floors.
type Grade int

const (
	GradeM1 Grade = iota + 1
	GradeM2
	GradeM3
	GradeM4
)

// Label is the human readable quality status stored with audit entries.
func (g Grade) Label() string {
	switch g {
	case GradeM1:
		return "M1 - Good"
	case GradeM2:
		return "M2 - Repairable"
	case GradeM3:
		return "M3 - Minor Defect"
	case GradeM4:
		return "M4 - Major Defect"
	}
	return ""
}

const (
	QualityApproved = "Approved for Warehouse"
	QualityRejected = "Rejected"
)

type QualityBreakdown struct {
	M1 int `json:"m1"`
	M2 int `json:"m2"`
	M3 int `json:"m3"`
	M4 int `json:"m4"`
}

// AuditEvent describes one ledger change. Actor and time are stamped by the
// caller that appends it to the audit trail.
type AuditEvent struct {
	Action        AuditAction
	Floor         Floor
	FromFloor     Floor
	ToFloor       Floor
	Quantity      int
	PreviousValue int
	NewValue      int
	QualityStatus string
	Quality       *QualityBreakdown
	Remarks       string
}

// Mutation is what a successful operation produced besides the new state.
type Mutation struct {
	Events []AuditEvent
	// Warnings are tolerated inconsistencies the caller may want to log.
	Warnings []string
}

func (m *Mutation) event(e AuditEvent) {
	m.Events = append(m.Events, e)
}

func (m *Mutation) warn(msg string) {
	m.Warnings = append(m.Warnings, msg)
}
