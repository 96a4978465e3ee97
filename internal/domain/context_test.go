package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/profia/tutoria/internal/domain"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		maxTokens int
		want      string
	}{
		{
			name:      "short text is returned unchanged",
			text:      "Quanto é 7x8?",
			maxTokens: 100,
			want:      "Quanto é 7x8?",
		},
		{
			name:      "text at exactly the budget is unchanged",
			text:      strings.Repeat("a", 40),
			maxTokens: 10,
			want:      strings.Repeat("a", 40),
		},
		{
			name:      "long text keeps the trailing slice",
			text:      strings.Repeat("x", 50) + strings.Repeat("y", 40),
			maxTokens: 10,
			want:      strings.Repeat("y", 40),
		},
		{
			name:      "empty text",
			text:      "",
			maxTokens: 10,
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.Truncate(tt.text, tt.maxTokens)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestTruncate_BudgetIsFourCharsPerToken(t *testing.T) {
	text := strings.Repeat("z", 1000)

	got := domain.Truncate(text, 100)

	require.Len(t, got, 400)
	require.Equal(t, text[600:], got)
}

func TestTruncate_Idempotent(t *testing.T) {
	text := strings.Repeat("abc ", 500)

	once := domain.Truncate(text, 50)
	twice := domain.Truncate(once, 50)

	require.Equal(t, once, twice)
}

func TestTruncate_DoesNotSplitMultiByteRunes(t *testing.T) {
	text := strings.Repeat("ã", 100)

	got := domain.Truncate(text, 10)

	require.Equal(t, strings.Repeat("ã", 40), got)
}
