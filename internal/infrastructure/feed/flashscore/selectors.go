package flashscore

import "fmt"

// Selector mapping for the flashscore results page. Markup changes are absorbed here.
const (
	selPrevDayArrow   = `[data-day-picker-arrow="prev"]`
	selDayPicker      = `[data-testid="wcl-dayPickerButton"]`
	selMatch          = ".event__match"
	selHomeScore      = ".event__score--home"
	selAwayScore      = ".event__score--away"
	selStage          = ".event__stage"
	selHomeName       = ".event__participant--home"
	selAwayName       = ".event__participant--away"
	classLeagueHeader = "headerLeague__wrapper"
	selLeagueTitle    = ".headerLeague__title-text"
)

var popupSelectors = []string{
	`button[aria-label="Close"]`,
	".cookie-consent-close",
	".modal-close",
	`[class*="close"]`,
	`[class*="dismiss"]`,
}

// blockedURLPatterns keeps images, fonts, ads and analytics off the wire.
var blockedURLPatterns = []string{
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.svg", "*.ico",
	"*.woff", "*.woff2", "*.ttf", "*.otf",
	"*doubleclick.net*",
	"*googleadservices.com*",
	"*googlesyndication.com*",
	"*adnxs.com*",
	"*advertising.com*",
	"*/ads/*",
	"*analytics*",
}

// dayLabelScript reads the day picker text, or "" when the picker is missing.
var dayLabelScript = fmt.Sprintf(`(() => {
	const el = document.querySelector(%q);
	return el && el.textContent ? el.textContent.trim() : "";
})()`, selDayPicker)
