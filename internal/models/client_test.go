package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTruncates(t *testing.T) {
	var c EnrolledClient
	assert.Equal(t, 0, c.Progress())

	for _, task := range AllTasks[:7] {
		c.SetTask(task, true)
	}
	// 7/15 truncates down.
	assert.Equal(t, 46, c.Progress())

	for _, task := range AllTasks {
		c.SetTask(task, true)
	}
	assert.Equal(t, 100, c.Progress())
}

func TestSetTaskRejectsUnknownNames(t *testing.T) {
	var c EnrolledClient
	assert.False(t, c.SetTask("task_world_peace", true))
	assert.False(t, c.TaskDone("task_world_peace"))
	assert.Equal(t, 0, c.Progress())
}

func TestSetTaskIsReversible(t *testing.T) {
	var c EnrolledClient
	assert.True(t, c.SetTask(TaskCV, true))
	assert.True(t, c.TaskDone(TaskCV))
	assert.True(t, c.SetTask(TaskCV, false))
	assert.False(t, c.TaskDone(TaskCV))
}

func TestValidLeadStatus(t *testing.T) {
	for _, s := range []LeadStatus{LeadNew, LeadBusy, LeadInterested, LeadNotInterested, LeadNoResponse, LeadEnrolled, LeadResolved} {
		assert.True(t, ValidLeadStatus(s))
	}
	assert.False(t, ValidLeadStatus("Maybe"))
	assert.False(t, ValidLeadStatus(""))
}
