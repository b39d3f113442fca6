package detect

import "regexp"

// pageNumberPatterns match a line consisting solely of a running page
// number in one of the forms the PDF reader and Refiner both need to strip:
// a bare (optionally dash-wrapped) integer, "page N [of M]", "p. N",
// Korean "페이지 N"/"쪽 N", "N/M", or lowercase Roman numerals.
var pageNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^-?\s*\d{1,4}\s*-?$`),
	regexp.MustCompile(`(?i)^page\s+\d{1,4}(\s+of\s+\d{1,4})?$`),
	regexp.MustCompile(`(?i)^p\.?\s*\d{1,4}$`),
	regexp.MustCompile(`^페이지\s*\d{1,4}$`),
	regexp.MustCompile(`^쪽\s*\d{1,4}$`),
	regexp.MustCompile(`^\d{1,4}\s*/\s*\d{1,4}$`),
	regexp.MustCompile(`^[ivxlcdm]{1,8}$`),
}

// IsPageNumberLine reports whether line (already trimmed of leading/trailing
// space by the caller) is nothing but a running page number. Lines of 20 or
// more characters are never treated as page numbers.
func IsPageNumberLine(line string) bool {
	if len(line) == 0 || len(line) >= 20 {
		return false
	}
	for _, re := range pageNumberPatterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}
