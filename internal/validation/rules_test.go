package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	emailExpr    = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	passwordExpr = `^(?=.*\d)(?=.*[a-z])(?=.*[A-Z]).{8,16}$`
)

func TestRules_Email(t *testing.T) {
	rules, err := NewRules(emailExpr, passwordExpr)
	require.NoError(t, err)

	assert.True(t, rules.ValidEmail("juan@rodriguez.org"))
	assert.True(t, rules.ValidEmail("first.last+tag@sub.domain.cl"))
	assert.False(t, rules.ValidEmail("invalid"))
	assert.False(t, rules.ValidEmail("juan@rodriguez"))
	assert.False(t, rules.ValidEmail(""))
}

func TestRules_Password(t *testing.T) {
	rules, err := NewRules(emailExpr, passwordExpr)
	require.NoError(t, err)

	assert.True(t, rules.ValidPassword("123Acb1234"))
	assert.True(t, rules.ValidPassword("Hunter2abc"))
	assert.False(t, rules.ValidPassword("bad"))
	assert.False(t, rules.ValidPassword("alllowercase1"))
	assert.False(t, rules.ValidPassword("ALLUPPERCASE1"))
	assert.False(t, rules.ValidPassword("NoDigitsHere"))
	assert.False(t, rules.ValidPassword("Abcdefgh12345678X"), "longer than 16 characters")
}

func TestRules_PasswordDigitsAreASCII(t *testing.T) {
	rules, err := NewRules(emailExpr, passwordExpr)
	require.NoError(t, err)

	// Arabic-Indic and fullwidth digits do not satisfy \d
	assert.False(t, rules.ValidPassword("Abcdefg\u0663"))
	assert.False(t, rules.ValidPassword("Abcdefg\uff13"))
	assert.True(t, rules.ValidPassword("Abcdefg3"))
}

func TestPattern_WholeStringOnly(t *testing.T) {
	// an unanchored pattern must still match the entire value
	p, err := Compile(`[a-z]+`)
	require.NoError(t, err)

	assert.True(t, p.Matches("abc"))
	assert.False(t, p.Matches("abc123"))
	assert.False(t, p.Matches("123abc"))
	assert.Equal(t, "[a-z]+", p.String())
}

func TestPattern_Alternation(t *testing.T) {
	p, err := Compile(`cat|dog`)
	require.NoError(t, err)

	assert.True(t, p.Matches("cat"))
	assert.True(t, p.Matches("dog"))
	assert.False(t, p.Matches("catdog"))
}

func TestNewRules_InvalidPattern(t *testing.T) {
	_, err := NewRules("([a-z", passwordExpr)
	assert.ErrorContains(t, err, "EMAIL_REGEX")

	_, err = NewRules(emailExpr, "(?=")
	assert.ErrorContains(t, err, "PASSWORD_REGEX")
}

func BenchmarkValidPassword(b *testing.B) {
	rules, err := NewRules(emailExpr, passwordExpr)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		rules.ValidPassword("Hunter22abc")
	}
}
