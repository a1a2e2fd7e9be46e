package config

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadYAML(t *testing.T, doc string) (*Registry, error) {
	t.Helper()
	v := viper.New()
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(bytes.NewBufferString(doc)))
	return Load(v)
}

func TestDefault_Order(t *testing.T) {
	reg, err := Default()
	require.NoError(t, err)

	expected := []string{
		"tymebank", "african_bank", "hbz_bank", "discovery_bank", "investec",
		"bidvest", "absa", "nedbank", "standard_bank", "fnb", "capitec",
	}
	assert.Equal(t, expected, reg.IDs())
	assert.Equal(t, "Discovery Bank", reg.Names()[3])
}

func TestDefault_EveryFormatHasDateAndAmount(t *testing.T) {
	reg := MustDefault()
	for _, f := range reg.Formats() {
		if len(f.Keywords) == 0 {
			t.Errorf("Expected keywords for %s", f.ID)
		}
		if len(f.patterns) == 0 {
			t.Errorf("Expected patterns for %s", f.ID)
		}
	}
}

func TestLookup(t *testing.T) {
	reg := MustDefault()

	f, ok := reg.Lookup("fnb")
	require.True(t, ok)
	assert.Equal(t, "FNB", f.Name)

	_, ok = reg.Lookup("maybank")
	assert.False(t, ok)
}

func TestFormatMatches_CaseInsensitive(t *testing.T) {
	f := Format{ID: "fnb", Keywords: []string{"fnb", "first national bank"}}

	assert.True(t, f.Matches("Welcome to FIRST NATIONAL BANK"))
	assert.True(t, f.Matches("fnb app"))
	assert.False(t, f.Matches("Standard Bank"))
}

func TestPatternSet_MissingKey(t *testing.T) {
	reg := MustDefault()
	f, _ := reg.Lookup("capitec")

	p := f.Patterns()
	assert.NotNil(t, p.Get("amount"))
	assert.Nil(t, p.Get("no_such_pattern"))
	assert.True(t, errors.Is(p.Err(), ErrMissingPattern))
}

func TestLoad_InvalidPattern(t *testing.T) {
	_, err := loadYAML(t, `
statement:
  - id: broken
    keywords: ["broken"]
    patterns:
      date: '(unclosed'
`)
	assert.Error(t, err)
}

func TestLoad_DuplicateID(t *testing.T) {
	_, err := loadYAML(t, `
statement:
  - id: a
  - id: a
`)
	assert.Error(t, err)
}

func TestLoad_Empty(t *testing.T) {
	_, err := loadYAML(t, `
server:
  port: "9000"
`)
	assert.ErrorIs(t, err, ErrNoFormats)
}

func TestLoad_NameDefaultsToID(t *testing.T) {
	reg, err := loadYAML(t, `
statement:
  - id: custom
    keywords: ["custom bank"]
`)
	require.NoError(t, err)
	f, ok := reg.Lookup("custom")
	require.True(t, ok)
	assert.Equal(t, "custom", f.Name)
}
