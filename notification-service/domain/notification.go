package domain

import (
	"context"
	"fmt"

	"github.com/campusflow/enrollment-system/shared/events"
)

// Message is one outgoing email
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier delivers messages. Implementations do not retry.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// ConfirmationMessage builds the enrollment confirmation email
func ConfirmationMessage(data events.EnrollmentConfirmedData) Message {
	studentName := data.StudentName
	if studentName == "" {
		studentName = "Student"
	}
	courseName := data.CourseName
	if courseName == "" {
		courseName = "Course ID " + data.CourseID
	}

	return Message{
		To:      data.StudentEmail,
		Subject: "Enrollment Confirmation: " + courseName,
		Body: fmt.Sprintf("Dear %s,\n\nYou have been successfully enrolled in %s.\nEnrollment ID: %s\n\nHappy Learning!",
			studentName, courseName, data.EnrollmentID),
	}
}
