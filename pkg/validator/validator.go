package validator

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)
)

func ValidateEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(cleanPhone(phone))
}

func cleanPhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '+' {
			return r
		}
		return -1
	}, phone)
}

// FormatPhone приводит номер к единому виду с кодом +7.
func FormatPhone(phone string) string {
	cleaned := cleanPhone(phone)

	if !strings.HasPrefix(cleaned, "+") {
		switch {
		case strings.HasPrefix(cleaned, "8"):
			cleaned = "+7" + cleaned[1:]
		case strings.HasPrefix(cleaned, "7"):
			cleaned = "+" + cleaned
		default:
			cleaned = "+7" + cleaned
		}
	}

	return cleaned
}

func FormatName(name string) string {
	parts := strings.Fields(name)
	for i, part := range parts {
		subparts := strings.Split(part, "-")
		for j, subpart := range subparts {
			if len(subpart) > 0 {
				subparts[j] = strings.ToUpper(subpart[:1]) + strings.ToLower(subpart[1:])
			}
		}
		parts[i] = strings.Join(subparts, "-")
	}
	return strings.Join(parts, " ")
}
