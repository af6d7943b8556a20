package models

import "time"

// TaskName identifies one step of the onboarding checklist. The set is
// closed: exported progress reports are only comparable across clients
// because every client is measured against the same fifteen steps.
type TaskName string

const (
	TaskDocsReceived     TaskName = "task_docs_received"
	TaskResearch         TaskName = "task_research"
	TaskUniList          TaskName = "task_uni_list"
	TaskGovtScholarship  TaskName = "task_govt_scholarship"
	TaskProfList         TaskName = "task_prof_list"
	TaskCV               TaskName = "task_cv"
	TaskEmailDraft       TaskName = "task_email_draft"
	TaskEmailSent        TaskName = "task_email_sent"
	TaskSOPWritten       TaskName = "task_sop_written"
	TaskSOPInitial       TaskName = "task_sop_initial"
	TaskSOPFinal         TaskName = "task_sop_final"
	TaskSOPProgram       TaskName = "task_sop_program"
	TaskLOR              TaskName = "task_lor"
	TaskResearchProposal TaskName = "task_research_proposal"
	TaskPortalComplete   TaskName = "task_portal_complete"
)

// AllTasks lists the checklist in pipeline order.
var AllTasks = [...]TaskName{
	TaskDocsReceived, TaskResearch, TaskUniList, TaskGovtScholarship,
	TaskProfList, TaskCV, TaskEmailDraft, TaskEmailSent,
	TaskSOPWritten, TaskSOPInitial, TaskSOPFinal, TaskSOPProgram,
	TaskLOR, TaskResearchProposal, TaskPortalComplete,
}

const TaskCount = len(AllTasks)

type EnrolledClient struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	UserID  *uint `gorm:"index" json:"user_id,omitempty"`
	BatchID *uint `gorm:"index" json:"batch_id,omitempty"`

	Name  string `gorm:"not null" json:"name"`
	Phone string `gorm:"not null" json:"phone"`
	Email string `gorm:"not null" json:"email"`

	TaskDocsReceivedDone     bool `gorm:"column:task_docs_received;not null;default:false" json:"task_docs_received"`
	TaskResearchDone         bool `gorm:"column:task_research;not null;default:false" json:"task_research"`
	TaskUniListDone          bool `gorm:"column:task_uni_list;not null;default:false" json:"task_uni_list"`
	TaskGovtScholarshipDone  bool `gorm:"column:task_govt_scholarship;not null;default:false" json:"task_govt_scholarship"`
	TaskProfListDone         bool `gorm:"column:task_prof_list;not null;default:false" json:"task_prof_list"`
	TaskCVDone               bool `gorm:"column:task_cv;not null;default:false" json:"task_cv"`
	TaskEmailDraftDone       bool `gorm:"column:task_email_draft;not null;default:false" json:"task_email_draft"`
	TaskEmailSentDone        bool `gorm:"column:task_email_sent;not null;default:false" json:"task_email_sent"`
	TaskSOPWrittenDone       bool `gorm:"column:task_sop_written;not null;default:false" json:"task_sop_written"`
	TaskSOPInitialDone       bool `gorm:"column:task_sop_initial;not null;default:false" json:"task_sop_initial"`
	TaskSOPFinalDone         bool `gorm:"column:task_sop_final;not null;default:false" json:"task_sop_final"`
	TaskSOPProgramDone       bool `gorm:"column:task_sop_program;not null;default:false" json:"task_sop_program"`
	TaskLORDone              bool `gorm:"column:task_lor;not null;default:false" json:"task_lor"`
	TaskResearchProposalDone bool `gorm:"column:task_research_proposal;not null;default:false" json:"task_research_proposal"`
	TaskPortalCompleteDone   bool `gorm:"column:task_portal_complete;not null;default:false" json:"task_portal_complete"`

	JoinedDate string    `gorm:"type:varchar(10)" json:"joined_date"` // YYYY-MM-DD
	CreatedAt  time.Time `json:"created_at"`
}

func (c *EnrolledClient) taskField(name TaskName) *bool {
	switch name {
	case TaskDocsReceived:
		return &c.TaskDocsReceivedDone
	case TaskResearch:
		return &c.TaskResearchDone
	case TaskUniList:
		return &c.TaskUniListDone
	case TaskGovtScholarship:
		return &c.TaskGovtScholarshipDone
	case TaskProfList:
		return &c.TaskProfListDone
	case TaskCV:
		return &c.TaskCVDone
	case TaskEmailDraft:
		return &c.TaskEmailDraftDone
	case TaskEmailSent:
		return &c.TaskEmailSentDone
	case TaskSOPWritten:
		return &c.TaskSOPWrittenDone
	case TaskSOPInitial:
		return &c.TaskSOPInitialDone
	case TaskSOPFinal:
		return &c.TaskSOPFinalDone
	case TaskSOPProgram:
		return &c.TaskSOPProgramDone
	case TaskLOR:
		return &c.TaskLORDone
	case TaskResearchProposal:
		return &c.TaskResearchProposalDone
	case TaskPortalComplete:
		return &c.TaskPortalCompleteDone
	}
	return nil
}

// SetTask flips one checklist flag. It reports false for a name outside the
// closed task set.
func (c *EnrolledClient) SetTask(name TaskName, done bool) bool {
	f := c.taskField(name)
	if f == nil {
		return false
	}
	*f = done
	return true
}

// TaskDone reads one checklist flag; unknown names read as false.
func (c *EnrolledClient) TaskDone(name TaskName) bool {
	f := c.taskField(name)
	return f != nil && *f
}

// Progress is the completed share of the checklist as a whole percentage,
// truncated (7/15 done reads 46, not 47).
func (c *EnrolledClient) Progress() int {
	completed := 0
	for _, t := range AllTasks {
		if c.TaskDone(t) {
			completed++
		}
	}
	return completed * 100 / TaskCount
}
