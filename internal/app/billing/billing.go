package billing

import "math"

// fallbackDurationSeconds is billed when the engine reports no duration
const fallbackDurationSeconds = 60

// CreditsForDuration returns the credit cost of transcribing durationSeconds
// of audio: whole minutes rounded up, times rate, never less than one credit.
func CreditsForDuration(durationSeconds float64, rate int) int {
	if durationSeconds <= 0 || math.IsNaN(durationSeconds) {
		durationSeconds = fallbackDurationSeconds
	}
	minutes := int(math.Ceil(durationSeconds / 60))
	cost := minutes * rate
	if cost < 1 {
		return 1
	}
	return cost
}

// MinimumCredits is the smallest charge any transcription can incur at rate.
func MinimumCredits(rate int) int {
	return CreditsForDuration(fallbackDurationSeconds, rate)
}
