package datasource

import (
	"fmt"
	"regexp"
	"strings"
)

// maxDisplayNameLen is the indexing API's limit on display names.
const maxDisplayNameLen = 50

var (
	idRE      = regexp.MustCompile(`^[a-z0-9-]+$`)
	homeURLRE = regexp.MustCompile(`^https?://`)
	emailRE   = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
)

// ValidationError describes one rule violation on one configuration field.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}

	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

// ValidationErrors aggregates every violation found in one validation pass,
// so a user sees all problems at once instead of fixing them one run at a
// time.
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}

	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}

	return fmt.Sprintf("%d validation errors: %s", len(e), strings.Join(msgs, "; "))
}

// Validate checks every identity field of cfg and returns all violations
// together as a ValidationErrors, or nil when cfg is well formed. Disallowed
// categories pass: they are excluded from interactive selection only, and
// records pulled from the remote side may carry them.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if ve := checkDisplayName(cfg.DisplayName); ve != nil {
		errs = append(errs, ve)
	}

	if ve := checkID(cfg.ID); ve != nil {
		errs = append(errs, ve)
	}

	if !cfg.Category.Valid() {
		errs = append(errs, &ValidationError{
			Field:  "category",
			Value:  string(cfg.Category),
			Reason: "must be one of the known datasource categories",
		})
	}

	if ve := checkHomeURL(cfg.HomeURL); ve != nil {
		errs = append(errs, ve)
	}

	seen := make(map[string]bool, len(cfg.ObjectTypes))

	for i, obj := range cfg.ObjectTypes {
		field := fmt.Sprintf("object_types[%d].name", i)

		if strings.TrimSpace(obj.Name) == "" {
			errs = append(errs, &ValidationError{Field: field, Reason: "name is required"})
			continue
		}

		if seen[obj.Name] {
			errs = append(errs, &ValidationError{Field: field, Value: obj.Name, Reason: "duplicate object type name"})
		}

		seen[obj.Name] = true
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

// ValidateDisplayName checks the display name constraints: at most 50
// characters, no leading or trailing whitespace, and no trailing /, ;, :
// or , symbol.
func ValidateDisplayName(name string) error {
	if ve := checkDisplayName(name); ve != nil {
		return ve
	}

	return nil
}

// ValidateID checks that id is a non-empty slug of lowercase letters,
// digits, and hyphens.
func ValidateID(id string) error {
	if ve := checkID(id); ve != nil {
		return ve
	}

	return nil
}

// ValidateHomeURL checks that raw starts with http:// or https://.
func ValidateHomeURL(raw string) error {
	if ve := checkHomeURL(raw); ve != nil {
		return ve
	}

	return nil
}

// ValidateEmail checks one address against the test-user email pattern.
func ValidateEmail(addr string) error {
	if !emailRE.MatchString(addr) {
		return &ValidationError{Field: "test_user_emails", Value: addr, Reason: "invalid email format"}
	}

	return nil
}

// FilterEmails splits a comma-separated address list, trims entries, and
// partitions them into valid and invalid. Blank entries are dropped
// silently.
func FilterEmails(raw string) (valid, invalid []string) {
	for _, entry := range strings.Split(raw, ",") {
		addr := strings.TrimSpace(entry)
		if addr == "" {
			continue
		}

		if emailRE.MatchString(addr) {
			valid = append(valid, addr)
		} else {
			invalid = append(invalid, addr)
		}
	}

	return valid, invalid
}

func checkDisplayName(name string) *ValidationError {
	if name == "" {
		return &ValidationError{Field: "display_name", Reason: "display name is required"}
	}

	if len(name) > maxDisplayNameLen {
		return &ValidationError{Field: "display_name", Value: name, Reason: fmt.Sprintf("must be %d characters or fewer", maxDisplayNameLen)}
	}

	if name != strings.TrimSpace(name) {
		return &ValidationError{Field: "display_name", Value: name, Reason: "cannot have leading or trailing whitespace"}
	}

	if strings.ContainsRune("/;:,", rune(name[len(name)-1])) {
		return &ValidationError{Field: "display_name", Value: name, Reason: "cannot end with /, ;, : or ,"}
	}

	return nil
}

func checkID(id string) *ValidationError {
	if id == "" {
		return &ValidationError{Field: "id", Reason: "datasource id is required"}
	}

	if !idRE.MatchString(id) {
		return &ValidationError{Field: "id", Value: id, Reason: "must contain only lowercase letters, numbers, and hyphens"}
	}

	return nil
}

func checkHomeURL(raw string) *ValidationError {
	if raw == "" {
		return &ValidationError{Field: "home_url", Reason: "home URL is required"}
	}

	if !homeURLRE.MatchString(raw) {
		return &ValidationError{Field: "home_url", Value: raw, Reason: "must start with http:// or https://"}
	}

	return nil
}
