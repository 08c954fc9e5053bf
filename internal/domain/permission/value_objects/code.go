package value_objects

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	codePattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
	upper       = cases.Upper(language.Und)
	separators  = strings.NewReplacer(" ", "_", "-", "_", ".", "_")
)

const maxCodeLength = 100

// NormalizeCode upper-cases s and joins words with underscores,
// so "create tour" and "create-tour" both become CREATE_TOUR.
func NormalizeCode(s string) string {
	return upper.String(separators.Replace(strings.TrimSpace(s)))
}

func validateCode(kind, code string) error {
	if code == "" {
		return fmt.Errorf("%s cannot be empty", kind)
	}
	if len(code) > maxCodeLength {
		return fmt.Errorf("%s too long (max %d characters)", kind, maxCodeLength)
	}
	if !codePattern.MatchString(code) {
		return fmt.Errorf("invalid %s: %s", kind, code)
	}
	return nil
}

// PermissionName is the unique upper-case identifier of a permission, e.g. CREATE_TOUR.
type PermissionName string

func NewPermissionName(s string) (PermissionName, error) {
	code := NormalizeCode(s)
	if err := validateCode("permission name", code); err != nil {
		return "", err
	}
	return PermissionName(code), nil
}

func (n PermissionName) String() string {
	return string(n)
}

// HasAction reports whether the name starts with the given action verb.
func (n PermissionName) HasAction(action string) bool {
	return strings.HasPrefix(string(n), action)
}
