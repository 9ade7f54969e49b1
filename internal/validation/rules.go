// Package validation holds the configurable email and password format rules.
package validation

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// matchTimeout is the upper bound for evaluating a single match.
const matchTimeout = 250 * time.Millisecond

// Pattern is a compiled regular expression that only accepts whole-string matches.
type Pattern struct {
	source string
	re     *regexp2.Regexp
}

// Compile anchors expr at both ends so that a substring hit never counts as a match.
// ECMAScript mode keeps \d, \w and \s to their ASCII sets.
func Compile(expr string) (*Pattern, error) {
	re, err := regexp2.Compile(`\A(?:`+expr+`)\z`, regexp2.ECMAScript)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = matchTimeout
	return &Pattern{source: expr, re: re}, nil
}

// Matches reports whether the entire value matches the pattern. A match that
// times out is treated as a mismatch.
func (p *Pattern) Matches(value string) bool {
	ok, err := p.re.MatchString(value)
	return err == nil && ok
}

func (p *Pattern) String() string {
	return p.source
}

// Rules groups the two format policies applied on user creation.
type Rules struct {
	Email    *Pattern
	Password *Pattern
}

func NewRules(emailExpr, passwordExpr string) (*Rules, error) {
	email, err := Compile(emailExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid EMAIL_REGEX: %w", err)
	}
	password, err := Compile(passwordExpr)
	if err != nil {
		return nil, fmt.Errorf("invalid PASSWORD_REGEX: %w", err)
	}
	return &Rules{Email: email, Password: password}, nil
}

func (r *Rules) ValidEmail(email string) bool {
	return r.Email.Matches(email)
}

func (r *Rules) ValidPassword(password string) bool {
	return r.Password.Matches(password)
}
