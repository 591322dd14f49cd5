package domain

import (
	"testing"

	"github.com/campusflow/enrollment-system/shared/events"
	"github.com/stretchr/testify/assert"
)

func TestConfirmationMessage(t *testing.T) {
	message := ConfirmationMessage(events.EnrollmentConfirmedData{
		EnrollmentID: "e-1",
		CourseID:     "101",
		StudentEmail: "ada@example.com",
		StudentName:  "Ada",
		CourseName:   "Algebra",
	})

	assert.Equal(t, "ada@example.com", message.To)
	assert.Equal(t, "Enrollment Confirmation: Algebra", message.Subject)
	assert.Equal(t, "Dear Ada,\n\nYou have been successfully enrolled in Algebra.\nEnrollment ID: e-1\n\nHappy Learning!", message.Body)
}

func TestConfirmationMessage_Fallbacks(t *testing.T) {
	message := ConfirmationMessage(events.EnrollmentConfirmedData{EnrollmentID: "e-1", CourseID: "101"})

	assert.Equal(t, "Enrollment Confirmation: Course ID 101", message.Subject)
	assert.Contains(t, message.Body, "Dear Student,")
}
