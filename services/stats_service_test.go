package services

import (
	"testing"

	"github.com/kiptoo5489/learnhub/models"
	"github.com/stretchr/testify/assert"
)

func TestComputeUserStatsEmpty(t *testing.T) {
	stats := ComputeUserStats(nil, 0, nil)

	assert.Equal(t, 0, stats.EnrolledCourses)
	assert.Equal(t, 0, stats.CompletionRate)
	assert.Equal(t, 0, stats.Certificates)
	assert.Equal(t, 0, stats.HoursLearned)
	assert.Equal(t, 0, stats.CompletedCourses)
	assert.Equal(t, 0, stats.PassedQuizzes)
}

func TestComputeUserStats(t *testing.T) {
	enrollments := []models.Enrollment{
		{Progress: 100},
		{Progress: 50},
		{Progress: 0},
	}
	attempts := []models.QuizAttempt{
		{Passed: true},
		{Passed: false},
		{Passed: true},
	}

	stats := ComputeUserStats(enrollments, 1, attempts)

	assert.Equal(t, 3, stats.EnrolledCourses)
	assert.Equal(t, 50, stats.CompletionRate)
	assert.Equal(t, 1, stats.Certificates)
	assert.Equal(t, 24, stats.HoursLearned)
	assert.Equal(t, 1, stats.CompletedCourses)
	assert.Equal(t, 2, stats.PassedQuizzes)
}

func TestComputeUserStatsRoundsAverage(t *testing.T) {
	enrollments := []models.Enrollment{
		{Progress: 33},
		{Progress: 34},
	}

	stats := ComputeUserStats(enrollments, 0, nil)
	// 33.5 rounds to 34
	assert.Equal(t, 34, stats.CompletionRate)
}
