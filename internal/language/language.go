package language

// Language is one entry in the closed set of spoken languages the player
// offers. Code is the synthesis provider's language identifier.
type Language struct {
	Code string
	Name string
}

// Default is the language selected before any input arrives.
const Default = "ja"

// Supported is the closed language set. Codes are unique within the set.
// The proxy forwards any language string upstream unchecked; this set only
// gates what the player accepts.
var Supported = []Language{
	{Code: "ja", Name: "Japanese"},
	{Code: "zh-CN", Name: "Chinese"},
	{Code: "en", Name: "English"},
	{Code: "vi", Name: "Vietnamese"},
}

var codeSet = func() map[string]bool {
	m := make(map[string]bool, len(Supported))
	for _, l := range Supported {
		m[l.Code] = true
	}
	return m
}()

// Known reports whether code is in the supported set.
func Known(code string) bool {
	return codeSet[code]
}

// Lookup returns the language for code, if it is supported.
func Lookup(code string) (Language, bool) {
	for _, l := range Supported {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}
