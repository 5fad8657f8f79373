package melco

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"ABC123", "ABC123"},
		{"  ##ABC123##  ", "ABC123"},
		{"#PSCFTS016-1", "PSCFTS016-1"},
		{"##PSCFTS016-1", "PSCFTS016-1"},
		{"PSCFTS016-1##", "PSCFTS016-1"},
		{"###", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Normalize(c.in), "Normalize(%q)", c.in)
	}
}

func TestNormalizeStripsEdgeHashes(t *testing.T) {
	inputs := []string{"PSCFTS069-1-2-1", "#A", "##B##", " #C# ", "####D"}
	for _, in := range inputs {
		got := Normalize(in)
		if got == "" {
			continue
		}
		assert.False(t, strings.HasPrefix(got, "#"), "leading hash survived: %q", got)
		assert.False(t, strings.HasSuffix(got, "#"), "trailing hash survived: %q", got)
	}
}

func TestVariants(t *testing.T) {
	got := Variants("##ABC123")
	want := map[string]struct{}{
		"##ABC123": {},
		"ABC123":   {},
		"#ABC123":  {},
	}
	// "##"+canonical 与原始输入重合，集合语义下只剩三个成员
	assert.Equal(t, want, got)

	assert.Empty(t, Variants(""))
	assert.Empty(t, Variants("   "))
}

func TestVariantsPrefixOnly(t *testing.T) {
	got := Variants("ABC123##")
	// 后缀带 # 的输入：原样保留，变体只加前缀
	assert.Contains(t, got, "ABC123##")
	assert.Contains(t, got, "ABC123")
	assert.Contains(t, got, "#ABC123")
	assert.Contains(t, got, "##ABC123")
	assert.NotContains(t, got, "ABC123#")
}

func TestVariantsAllHashes(t *testing.T) {
	// 规范化后为空时只保留原始输入本身
	got := Variants("##")
	assert.Equal(t, map[string]struct{}{"##": {}}, got)
}

func TestVariantPool(t *testing.T) {
	pool := VariantPool([]string{"A", "#A", ""})
	set := make(map[string]struct{}, len(pool))
	for _, v := range pool {
		set[v] = struct{}{}
	}
	assert.Equal(t, map[string]struct{}{
		"A": {}, "#A": {}, "##A": {},
	}, set)
}
