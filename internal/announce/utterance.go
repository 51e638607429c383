package announce

import "fmt"

const DefaultLocale = "en-US"

var templates = map[string]string{
	"pt-BR": "Senha %s, Guichê %s",
	"en-US": "Ticket %s, Counter %s",
	"es-ES": "Turno %s, Ventanilla %s",
}

// Utterance renders the spoken call text. Unknown locales use en-US.
func Utterance(locale, number, counter string) string {
	tmpl, ok := templates[locale]
	if !ok {
		tmpl = templates[DefaultLocale]
	}
	return fmt.Sprintf(tmpl, number, counter)
}

// SupportedLocale reports whether a locale has its own template.
func SupportedLocale(locale string) bool {
	_, ok := templates[locale]
	return ok
}
