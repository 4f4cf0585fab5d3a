package outline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placed(text string, page int, yPercent float64) LogicalLine {
	return LogicalLine{
		Text:      text,
		Page:      page,
		YPercent:  yPercent,
		WordCount: len(strings.Fields(text)),
		Role:      RoleContent,
	}
}

func TestTagRolesBands(t *testing.T) {
	lines := []LogicalLine{
		placed("Draft copy", 1, 0.05),
		placed("Body text in the middle", 1, 0.5),
		placed("Page one of nine", 1, 0.95),
		placed("Exactly on the header limit", 1, 0.10),
		placed("Exactly on the footer limit", 1, 0.90),
	}
	got := TagRoles(lines, DefaultConfig())
	require.Len(t, got, len(lines))

	assert.Equal(t, RoleHeader, got[0].Role)
	assert.Equal(t, RoleContent, got[1].Role)
	assert.Equal(t, RoleFooter, got[2].Role)
	assert.Equal(t, RoleContent, got[3].Role)
	assert.Equal(t, RoleContent, got[4].Role)

	// input is not modified
	assert.Equal(t, RoleContent, lines[0].Role)
}

func TestTagRolesRepeatedEdgesAreNoise(t *testing.T) {
	lines := []LogicalLine{
		placed("Annual Report 2024", 2, 0.03),
		placed("Revenue grew in every region", 2, 0.4),
		placed("Annual Report 2024", 2, 0.94),
		placed("Annual Report 2024", 3, 0.03),
		placed("Costs were flat", 3, 0.4),
		placed("Annual Report 2024", 3, 0.94),
		placed("Only once", 3, 0.95),
		// the same text in the body band is not an edge occurrence
		placed("Annual Report 2024", 4, 0.5),
	}
	got := TagRoles(lines, DefaultConfig())

	for _, i := range []int{0, 2, 3, 5} {
		assert.Equal(t, RoleNoise, got[i].Role, "line %d", i)
	}
	assert.Equal(t, RoleContent, got[1].Role)
	assert.Equal(t, RoleContent, got[4].Role)
	assert.Equal(t, RoleFooter, got[6].Role)
	assert.Equal(t, RoleContent, got[7].Role)
}

func TestTagRolesSamePageRepeatIsNotNoise(t *testing.T) {
	lines := []LogicalLine{
		placed("Confidential", 1, 0.02),
		placed("Confidential", 1, 0.97),
	}
	got := TagRoles(lines, DefaultConfig())
	assert.Equal(t, RoleHeader, got[0].Role)
	assert.Equal(t, RoleFooter, got[1].Role)
}

func TestTagRolesKeywords(t *testing.T) {
	tests := []struct {
		text string
		want Role
	}{
		{"Introduction", RoleKeyword},
		{"CHAPTER ONE", RoleKeyword},
		{"Chapter 3 Results", RoleKeyword},
		{"  References", RoleKeyword},
		{"Appendix B Tables and Data", RoleContent},
		{"Introduction to the theory of groups", RoleContent},
		{"A short introduction", RoleContent},
		{"Summary", RoleContent},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := TagRoles([]LogicalLine{placed(tt.text, 1, 0.5)}, DefaultConfig())
			assert.Equal(t, tt.want, got[0].Role)
		})
	}
}

func TestTagRolesKeywordOverridesEdgeRoles(t *testing.T) {
	lines := []LogicalLine{
		placed("Conclusion", 1, 0.02),
		placed("References", 3, 0.95),
	}
	got := TagRoles(lines, DefaultConfig())
	for i := range got {
		assert.Equal(t, RoleKeyword, got[i].Role)
	}
}

func TestTagRolesRunningHeadKeywordStaysNoise(t *testing.T) {
	lines := []LogicalLine{
		placed("Introduction to Finance", 1, 0.03),
		placed("Introduction to Finance", 2, 0.03),
		placed("Introduction to Finance", 3, 0.03),
		placed("Introduction", 2, 0.5),
	}
	got := TagRoles(lines, DefaultConfig())
	for i := 0; i < 3; i++ {
		assert.Equal(t, RoleNoise, got[i].Role, "page %d", got[i].Page)
	}
	assert.Equal(t, RoleKeyword, got[3].Role)
}

func TestTagRolesCustomKeywords(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keywords = []string{"Глава", "", "Ｐｒｅｆａｃｅ"}

	got := TagRoles([]LogicalLine{
		placed("ГЛАВА 1", 1, 0.5),
		placed("Preface", 1, 0.6),
		placed("Introduction", 1, 0.7),
	}, cfg)

	assert.Equal(t, RoleKeyword, got[0].Role)
	assert.Equal(t, RoleKeyword, got[1].Role)
	assert.Equal(t, RoleContent, got[2].Role)
}
