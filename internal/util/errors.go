package util

import "errors"

var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailRegistered        = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrAccountDisabled        = errors.New("account disabled")
	ErrPermissionDenied       = errors.New("permission denied")
	ErrCourseNotFound         = errors.New("course not found")
	ErrCourseNotPublished     = errors.New("course not published")
	ErrAlreadyEnrolled        = errors.New("already enrolled in this course")
	ErrNotEnrolled            = errors.New("not enrolled in this course")
	ErrAssessmentNotFound     = errors.New("assessment not found")
	ErrAssessmentNotPublished = errors.New("assessment not published")
	ErrAssessmentPastDue      = errors.New("assessment past its due date")
	ErrSubmissionNotFound     = errors.New("submission not found")
	ErrNoPassingSubmission    = errors.New("no passing submission for this assessment")
	ErrCertificateNotFound    = errors.New("certificate not found")
	ErrLiveClassNotFound      = errors.New("live class not found")
	ErrLiveClassNotJoinable   = errors.New("live class is not joinable")
)
