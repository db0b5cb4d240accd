package i18n

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

type Lang string

const (
	AR Lang = "ar"
	FR Lang = "fr"
	EN Lang = "en"
)

const DefaultLang = AR

var Supported = []Lang{AR, FR, EN}

var ErrUnsupportedLanguage = errors.New("unsupported language")

// ParseLang accepts any BCP 47 tag and reduces it to its base language,
// so "fr-FR" and "FR" both give FR.
func ParseLang(s string) (Lang, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	base, _ := tag.Base()
	l := Lang(base.String())
	for _, sl := range Supported {
		if sl == l {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
}

// Text is a string in every supported language. Literals are written
// unkeyed, so an entry missing a language does not compile.
type Text struct {
	AR string `json:"ar"`
	FR string `json:"fr"`
	EN string `json:"en"`
}

func (t Text) Get(l Lang) string {
	switch l {
	case FR:
		return t.FR
	case EN:
		return t.EN
	default:
		return t.AR
	}
}

func (t Text) Complete() bool {
	return strings.TrimSpace(t.AR) != "" && strings.TrimSpace(t.FR) != "" && strings.TrimSpace(t.EN) != ""
}

// Contains reports whether q occurs in the l variant, ignoring case.
func (t Text) Contains(l Lang, q string) bool {
	return strings.Contains(strings.ToLower(t.Get(l)), strings.ToLower(q))
}
