package lexicon

import "regexp"

// Street-prefix tokens that open an address line.
var streetPrefixes = map[string][]string{
	"pl": {"ul.", "ul", "al.", "al", "pl.", "os.", "ulica", "aleja", "plac", "osiedle"},
	"en": {"st.", "street", "ave", "ave.", "avenue", "rd", "rd.", "road", "ln", "lane", "dr", "dr.", "drive", "blvd"},
	"de": {"str.", "straße", "strasse", "platz", "weg", "allee", "gasse"},
}

// National postal-code shapes. Order is significant only for readability;
// matching tries all of them.
var postalCodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{2}-\d{3}\b`),             // PL 00-950
	regexp.MustCompile(`\b\d{5}(?:-\d{4})?\b`),        // DE 10115, US 90210(-1234)
	regexp.MustCompile(`\b[A-Z]{1,2}\d[A-Z\d]? ?\d[A-Z]{2}\b`), // UK SW1A 1AA
}

// A short city lexicon backs the bare-city-name heuristic; anything longer
// lives in address databases outside this core.
var cityNames = map[string][]string{
	"pl": {"warszawa", "kraków", "łódź", "wrocław", "poznań", "gdańsk", "szczecin", "katowice", "lublin", "białystok"},
	"en": {"london", "manchester", "birmingham", "dublin", "new york", "chicago"},
	"de": {"berlin", "hamburg", "münchen", "köln", "frankfurt", "stuttgart"},
}

// StreetPrefixes returns the folded street-prefix tokens for the languages.
func StreetPrefixes(langs []string) []string {
	return collect(func(lang string) []string { return streetPrefixes[lang] }, langs)
}

// CityNames returns the folded bare-city lexicon for the languages.
func CityNames(langs []string) []string {
	return collect(func(lang string) []string { return cityNames[lang] }, langs)
}

// PostalCodePatterns returns the compiled national postal-code patterns.
func PostalCodePatterns() []*regexp.Regexp { return postalCodePatterns }
