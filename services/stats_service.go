package services

import (
	"math"

	"github.com/kiptoo5489/learnhub/models"
)

type UserStats struct {
	EnrolledCourses  int `json:"enrolledCourses"`
	CompletionRate   int `json:"completionRate"`
	Certificates     int `json:"certificates"`
	HoursLearned     int `json:"hoursLearned"`
	CompletedCourses int `json:"completedCourses"`
	PassedQuizzes    int `json:"passedQuizzes"`
}

const hoursPerEnrolledCourse = 8

// ComputeUserStats derives the dashboard aggregate. Nothing here is
// persisted; all six figures are recomputed from the raw rows on every call.
func ComputeUserStats(enrollments []models.Enrollment, certificateCount int, attempts []models.QuizAttempt) UserStats {
	stats := UserStats{
		EnrolledCourses: len(enrollments),
		Certificates:    certificateCount,
		HoursLearned:    len(enrollments) * hoursPerEnrolledCourse,
	}

	totalProgress := 0
	for _, e := range enrollments {
		totalProgress += e.Progress
		if e.Progress == 100 {
			stats.CompletedCourses++
		}
	}
	if len(enrollments) > 0 {
		stats.CompletionRate = int(math.Round(float64(totalProgress) / float64(len(enrollments))))
	}

	for _, a := range attempts {
		if a.Passed {
			stats.PassedQuizzes++
		}
	}

	return stats
}
