package weight

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Accepted weight bounds in kilograms.
const (
	MinWeightKg = 20.0
	MaxWeightKg = 400.0
)

// futureTolerance absorbs clock/latency skew between client and server when
// rejecting future dates.
const futureTolerance = 500 * time.Millisecond

// ParsedCommand is the validated result of ParseWeightCommand.
type ParsedCommand struct {
	WeightKg float64
	Date     time.Time
}

// Full French month names. Accented variants are kept so tokens can be
// looked up before and after diacritics stripping.
var monthsFR = map[string]time.Month{
	"janvier":   time.January,
	"fevrier":   time.February,
	"février":   time.February,
	"mars":      time.March,
	"avril":     time.April,
	"mai":       time.May,
	"juin":      time.June,
	"juillet":   time.July,
	"aout":      time.August,
	"août":      time.August,
	"septembre": time.September,
	"oct":       time.October,
	"octobre":   time.October,
	"nov":       time.November,
	"novembre":  time.November,
	"dec":       time.December,
	"décembre":  time.December,
	"decembre":  time.December,
}

// Three-letter prefixes tried when the full-name table has no match.
var monthsFRShort = map[string]time.Month{
	"jan": time.January,
	"fev": time.February,
	"mar": time.March,
	"avr": time.April,
	"mai": time.May,
	"jun": time.June,
	"jul": time.July,
	"jui": time.July,
	"aou": time.August,
	"sep": time.September,
	"oct": time.October,
	"nov": time.November,
	"dec": time.December,
}

var (
	weightPattern      = regexp.MustCompile(`(?i)(\d{2,3}(?:[.,]\d{1,2})?)\s*(kg|kilogrammes?|kilos?|kilograms?)`)
	numericDatePattern = regexp.MustCompile(`\b(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?`)
	textualDatePattern = regexp.MustCompile(`\b(\d{1,2})\s+([a-z]{3,})`)
	leadingYearPattern = regexp.MustCompile(`^(\d{2,4})`)
	leadingNumber      = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)`)

	todayPattern      = regexp.MustCompile(`\baujourdhui\b`)
	twoDaysAgoPattern = regexp.MustCompile(`\bavant[\s-]*h?ier\b`)
	yesterdayPattern  = regexp.MustCompile(`\bhier\b`)
	tomorrowPattern   = regexp.MustCompile(`\bdemain\b|\bapres[-\s]?demain\b`)
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.M)), norm.NFC)

// removeAccents strips Unicode combining marks and maps the French ligatures
// onto their two-letter forms.
func removeAccents(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	out = strings.ReplaceAll(out, "œ", "oe")
	return strings.ReplaceAll(out, "æ", "ae")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// StartOfDayUTC truncates t to midnight of its UTC calendar day.
func StartOfDayUTC(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseWeightValue accepts a weight as a number or a string (comma accepted
// as decimal separator) and returns it in kilograms, rounded to 2 decimals.
func ParseWeightValue(input any) (float64, error) {
	var numeric float64
	switch v := input.(type) {
	case nil:
		return 0, validationErr(CodeWeightRequired, "Le poids est requis.")
	case float64:
		numeric = v
	case int:
		numeric = float64(v)
	case string:
		raw := strings.TrimSpace(v)
		if raw == "" {
			return 0, validationErr(CodeWeightRequired, "Le poids est requis.")
		}
		prefix := leadingNumber.FindString(strings.ReplaceAll(raw, ",", "."))
		if prefix == "" {
			return 0, validationErr(CodeWeightInvalid, "Le poids doit être un nombre valide.")
		}
		n, err := strconv.ParseFloat(prefix, 64)
		if err != nil {
			return 0, validationErr(CodeWeightInvalid, "Le poids doit être un nombre valide.")
		}
		numeric = n
	default:
		return 0, validationErr(CodeWeightRequired, "Le poids est requis.")
	}

	if numeric < MinWeightKg || numeric > MaxWeightKg {
		return 0, validationErr(CodeWeightOutOfRange,
			fmt.Sprintf("Le poids doit être compris entre %.0f et %.0f kg.", MinWeightKg, MaxWeightKg))
	}
	return round2(numeric), nil
}

// ParseDateInput resolves an explicit date field: a time.Time, an ISO-ish
// string, a numeric epoch in milliseconds, or nil (defaults to now). Dates
// later than now plus the skew tolerance are rejected.
func ParseDateInput(input any, now time.Time) (time.Time, error) {
	var parsed time.Time
	switch v := input.(type) {
	case nil:
		return now, nil
	case time.Time:
		parsed = v
	case string:
		if v == "" {
			return now, nil
		}
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return time.Time{}, errDateInvalid()
		}
		t, ok := parseDateString(trimmed)
		if !ok {
			return time.Time{}, errDateInvalid()
		}
		parsed = t
	case float64:
		parsed = time.UnixMilli(int64(v)).UTC()
	case int64:
		parsed = time.UnixMilli(v).UTC()
	case int:
		parsed = time.UnixMilli(int64(v)).UTC()
	default:
		return time.Time{}, errDateInvalid()
	}

	if parsed.After(now.Add(futureTolerance)) {
		return time.Time{}, errDateFuture()
	}
	return parsed, nil
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDateString(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseWeightCommand extracts a (weight, date) pair from a free-text French
// sentence. Date detection tries relative terms first, then a numeric
// D/M/Y form, then a textual "D <month>" form; the precedence and the
// last-match rule for textual dates disambiguate sentences that carry
// several numbers.
func ParseWeightCommand(text string, now time.Time) (ParsedCommand, error) {
	if strings.TrimSpace(text) == "" {
		return ParsedCommand{}, validationErr(CodeTextEmpty, "Texte vide, impossible de détecter un poids.")
	}

	m := weightPattern.FindStringSubmatch(text)
	if m == nil {
		return ParsedCommand{}, validationErr(CodeWeightMissing, "Aucun poids détecté dans la phrase.")
	}
	weightKg, err := ParseWeightValue(m[1])
	if err != nil {
		return ParsedCommand{}, err
	}

	normalized := removeAccents(strings.ToLower(text))

	date, err := parseRelativeDate(normalized, now)
	if err != nil {
		return ParsedCommand{}, err
	}
	if date.IsZero() {
		date = parseNumericDate(normalized, now)
	}
	if date.IsZero() {
		date = parseTextualDate(normalized, now)
	}
	if date.IsZero() {
		return ParsedCommand{}, validationErr(CodeDateMissing, "Impossible de détecter la date de la mesure.")
	}

	if date.After(now.Add(futureTolerance)) {
		return ParsedCommand{}, errDateFuture()
	}

	return ParsedCommand{WeightKg: weightKg, Date: date}, nil
}

// parseRelativeDate resolves aujourd'hui / hier / avant-hier. Future terms
// (demain, après-demain) fail immediately rather than deferring to the final
// future check. "avant hier" is tested before "hier" so the longer phrase
// wins. A zero time with nil error means no relative term was found.
func parseRelativeDate(text string, now time.Time) (time.Time, error) {
	stripped := strings.ReplaceAll(text, "'", "")
	today := StartOfDayUTC(now)
	switch {
	case todayPattern.MatchString(stripped):
		return today, nil
	case twoDaysAgoPattern.MatchString(stripped):
		return today.AddDate(0, 0, -2), nil
	case yesterdayPattern.MatchString(stripped):
		return today.AddDate(0, 0, -1), nil
	case tomorrowPattern.MatchString(stripped):
		return time.Time{}, errDateFuture()
	}
	return time.Time{}, nil
}

// parseNumericDate resolves D[/-]M[/-]Y? forms. When the year is omitted it
// defaults to the current one and rolls back a year if the result would be
// in the future (the speaker means the last occurrence).
func parseNumericDate(text string, now time.Time) time.Time {
	m := numericDatePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}
	}

	if m[3] == "" {
		candidate := makeValidUTCDate(now.UTC().Year(), time.Month(month), day)
		if candidate.IsZero() {
			return time.Time{}
		}
		if candidate.After(now) {
			candidate = time.Date(now.UTC().Year()-1, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		}
		return candidate
	}

	year, _ := strconv.Atoi(m[3])
	year = expandTwoDigitYear(year)
	return makeValidUTCDate(year, time.Month(month), day)
}

// parseTextualDate resolves "D <month-word>" forms, using the last match in
// the text. An explicit 2-4 digit year directly after the month word is
// consumed; otherwise the same roll-back-if-future rule applies.
func parseTextualDate(text string, now time.Time) time.Time {
	matches := textualDatePattern.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return time.Time{}
	}
	m := matches[len(matches)-1]

	day, _ := strconv.Atoi(text[m[2]:m[3]])
	if day < 1 || day > 31 {
		return time.Time{}
	}

	token := text[m[4]:m[5]]
	month, ok := monthsFR[token]
	if !ok {
		month, ok = monthsFR[removeAccents(token)]
	}
	if !ok {
		normalized := removeAccents(token)
		if len(normalized) >= 3 {
			month, ok = monthsFRShort[normalized[:3]]
		}
	}
	if !ok {
		return time.Time{}
	}

	trailing := strings.TrimSpace(text[m[1]:])
	year := now.UTC().Year()
	explicitYear := false
	if ym := leadingYearPattern.FindString(trailing); ym != "" {
		year, _ = strconv.Atoi(ym)
		year = expandTwoDigitYear(year)
		explicitYear = true
	}

	candidate := makeValidUTCDate(year, month, day)
	if candidate.IsZero() {
		return time.Time{}
	}
	if !explicitYear && candidate.After(now) {
		candidate = time.Date(year-1, month, day, 0, 0, 0, 0, time.UTC)
	}
	return candidate
}

// expandTwoDigitYear maps 2-digit years onto 19xx (>=70) or 20xx (<70).
func expandTwoDigitYear(year int) int {
	if year >= 100 {
		return year
	}
	if year >= 70 {
		return year + 1900
	}
	return year + 2000
}

// makeValidUTCDate builds a UTC midnight and rejects impossible calendar
// dates (31/04 normalizes to May 1 and is caught here).
func makeValidUTCDate(year int, month time.Month, day int) time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if d.Day() != day || d.Month() != month {
		return time.Time{}
	}
	return d
}
