package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageName returns the English name of a BCP 47 tag followed by its
// own name, e.g. "French (français)". Unparseable tags are returned as is.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}

	english := display.English.Tags().Name(tag)
	self := display.Self.Name(tag)
	switch {
	case english == "":
		return code
	case self == "" || self == english:
		return english
	default:
		return english + " (" + self + ")"
	}
}
