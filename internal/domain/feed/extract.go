package feed

import (
	"strconv"
	"strings"
)

const scorePlaceholder = "-"

var interruptedStatuses = []string{"live", "interrupted", "postponed", "suspended"}

// ExtractCompletedMatches applies the completion policy to every fixture of the snapshot,
// in feed order. Fixtures are dropped when a score is missing or a placeholder, when the
// status marks them unfinished, when no tournament header precedes them, or when a
// participant name is missing.
func ExtractCompletedMatches(snapshot DaySnapshot, dayLabel string) []CompletedMatch {
	if snapshot == nil {
		return []CompletedMatch{}
	}

	fixtures := snapshot.Fixtures()
	out := make([]CompletedMatch, 0, len(fixtures))
	for _, item := range fixtures {
		homeScore := strings.TrimSpace(item.HomeScore())
		awayScore := strings.TrimSpace(item.AwayScore())
		if !HasFinalScore(homeScore, awayScore) {
			continue
		}
		if IsUnfinishedStatus(item.Status()) {
			continue
		}

		tournament, ok := item.Tournament()
		tournament = strings.TrimSpace(tournament)
		if !ok || tournament == "" {
			continue
		}

		homeName := strings.TrimSpace(item.HomeName())
		awayName := strings.TrimSpace(item.AwayName())
		if homeName == "" || awayName == "" {
			continue
		}

		out = append(out, CompletedMatch{
			Tournament: tournament,
			HomeName:   homeName,
			AwayName:   awayName,
			HomeScore:  homeScore,
			AwayScore:  awayScore,
			Date:       dayLabel,
			WinnerName: DeriveWinner(homeName, awayName, homeScore, awayScore),
		})
	}

	return out
}

// HasFinalScore reports whether both sides carry a non-placeholder score.
func HasFinalScore(homeScore, awayScore string) bool {
	homeScore = strings.TrimSpace(homeScore)
	awayScore = strings.TrimSpace(awayScore)
	if homeScore == "" || awayScore == "" {
		return false
	}
	return homeScore != scorePlaceholder && awayScore != scorePlaceholder
}

// IsUnfinishedStatus matches live, interrupted, postponed and suspended, case-insensitive.
func IsUnfinishedStatus(status string) bool {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		return false
	}
	for _, marker := range interruptedStatuses {
		if strings.Contains(status, marker) {
			return true
		}
	}
	return false
}

// DeriveWinner returns the side with more games won. Equal game counts go to the home side.
func DeriveWinner(homeName, awayName, homeScore, awayScore string) string {
	homeGames, awayGames := CountGames(homeScore, awayScore)
	if awayGames > homeGames {
		return awayName
	}
	return homeName
}

// CountGames pairs game scores positionally up to the shorter side and awards each
// position to the larger value. Ties and unparsable pairs award nothing.
func CountGames(homeScore, awayScore string) (homeGames, awayGames int) {
	homeParts := scoreParts(homeScore)
	awayParts := scoreParts(awayScore)

	n := min(len(homeParts), len(awayParts))
	for i := 0; i < n; i++ {
		homePoints, okHome := leadingInt(homeParts[i])
		awayPoints, okAway := leadingInt(awayParts[i])
		if !okHome || !okAway {
			continue
		}
		switch {
		case homePoints > awayPoints:
			homeGames++
		case awayPoints > homePoints:
			awayGames++
		}
	}

	return homeGames, awayGames
}

func scoreParts(score string) []string {
	fields := strings.Fields(score)
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		if field == scorePlaceholder {
			continue
		}
		out = append(out, field)
	}
	return out
}

// leadingInt parses an optional sign followed by leading digits, ignoring any suffix
// such as a tie-break superscript. Values outside the int range are unparsable.
func leadingInt(raw string) (int, bool) {
	end := 0
	if end < len(raw) && (raw[end] == '-' || raw[end] == '+') {
		end++
	}
	start := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}

	value, err := strconv.Atoi(raw[:end])
	if err != nil {
		return 0, false
	}
	return value, true
}
