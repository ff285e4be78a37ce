package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fppatch/internal/rewrite"
)

func TestDefault_IsValid(t *testing.T) {
	p := Default()
	require.NoError(t, p.Validate())
	assert.Len(t, p.Rules, 3)
	assert.Equal(t, "s", p.Suffix)
	assert.Empty(t, p.Exclude)
}

func TestProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *Profile)
		wantErr bool
	}{
		{"default", func(p *Profile) {}, false},
		{"bad regexp", func(p *Profile) { p.Header = `^void (` }, true},
		{"no capture group", func(p *Profile) { p.Header = `^void\s+\w+\(` }, true},
		{"no rules", func(p *Profile) { p.Rules = nil }, true},
		{"empty pattern", func(p *Profile) { p.Rules = []rewrite.Rule{{From: "", To: "x"}} }, true},
		{"replacement re-matches", func(p *Profile) {
			p.Rules = []rewrite.Rule{{From: "f(a);", To: "f(a);f(a);"}}
		}, true},
		{"cycle between rules", func(p *Profile) {
			p.Rules = []rewrite.Rule{{From: "x(0);", To: "y(0);"}, {From: "y(0);", To: "x(0);"}}
		}, true},
		{"later rule rewrites earlier replacement", func(p *Profile) {
			p.Rules = append(p.Rules, rewrite.Rule{From: "0.0, true", To: "0.0f, true"})
		}, true},
		{"overlap with surrounding text passes", func(p *Profile) {
			p.Rules = []rewrite.Rule{{From: "ab", To: "b"}}
		}, false},
		{"empty suffix is allowed", func(p *Profile) { p.Suffix = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Default()
			tt.mutate(p)
			err := p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidProfile)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParse_OverridesOnlyGivenFields(t *testing.T) {
	p, err := Parse([]byte(`
suffix: ""
exclude: [fabs, fnabs]
rules:
  - from: "g(x);"
    to: "g(x, 1);"
`))
	require.NoError(t, err)
	assert.Equal(t, Default().Header, p.Header)
	assert.Equal(t, Default().Allow, p.Allow)
	assert.Equal(t, "", p.Suffix)
	assert.Equal(t, []string{"fabs", "fnabs"}, p.Exclude)
	assert.Equal(t, []rewrite.Rule{{From: "g(x);", To: "g(x, 1);"}}, p.Rules)
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse([]byte("rules: [unterminated"))
	assert.Error(t, err)

	_, err = Parse([]byte("rules: []"))
	assert.ErrorIs(t, err, ErrInvalidProfile)
}

func TestLoad(t *testing.T) {
	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), p)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestProfile_Classifier(t *testing.T) {
	p := Default()
	p.Exclude = []string{"fabs"}
	c := p.Classifier()
	assert.True(t, c.Qualifies("frsp"))
	assert.True(t, c.Qualifies("fnmsubs"))
	assert.False(t, c.Qualifies("fabs"))
	assert.False(t, c.Qualifies("fmadd"))
}

func TestFileProfileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	store := NewFileProfileStore(path)

	want := Default()
	want.Exclude = []string{"lfs", "stfs"}
	require.NoError(t, store.Save(want))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "fpresult_update(0.0, true);")

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileProfileStore_SaveRejectsInvalid(t *testing.T) {
	store := NewFileProfileStore(filepath.Join(t.TempDir(), "profile.yaml"))
	p := Default()
	p.Rules = nil
	assert.ErrorIs(t, store.Save(p), ErrInvalidProfile)

	assert.Error(t, NewFileProfileStore("").Save(Default()))
}

func TestInMemoryProfileStore(t *testing.T) {
	store := NewInMemoryProfileStore(nil)
	p, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), p)

	p.Suffix = ""
	require.NoError(t, store.Save(p))
	p.Allow[0] = "mutated"

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "", got.Suffix)
	assert.Equal(t, "fadds", got.Allow[0])
}
