package jobs

import (
	"log"

	"github.com/mentorquest/api/services"
)

// SweepAutoAchievements re-evaluates every student against the automatic
// achievement thresholds. The evaluation also runs inline after each stat
// mutation; this sweep catches anything missed while a definition changed
// or a process restarted mid-award.
func SweepAutoAchievements() {
	log.Println("Running automatic achievement sweep...")
	services.EvaluateAllStudents()
}
