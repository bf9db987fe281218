package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScope(t *testing.T) {
	tests := []struct {
		input   string
		want    Scope
		wantErr bool
	}{
		{input: "all", want: ScopeAll},
		{input: "", want: ScopeAll},
		{input: " viz ", want: ScopeViz},
		{input: "matches", want: ScopeMatches},
		{input: "stadiums", want: ScopeStadiums},
		{input: "tickets", want: ScopeTickets},
		{input: "preprocessing", want: ScopePreprocessing},
		{input: "everything", wantErr: true},
		{input: "VIZ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseScope(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedResetScope)
				var scopeErr *UnsupportedScopeError
				require.ErrorAs(t, err, &scopeErr)
				assert.Equal(t, tt.input, scopeErr.Scope)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScope_Artifacts(t *testing.T) {
	assert.Equal(t, []string{"matches.csv"}, ScopeMatches.Artifacts())
	assert.Equal(t, []string{"dataset_cleaned.csv"}, ScopePreprocessing.Artifacts())
	assert.Contains(t, ScopeViz.Artifacts(), "viz_morocco_effect.csv")
	assert.Len(t, ScopeViz.Artifacts(), 7)

	all := ScopeAll.Artifacts()
	assert.Len(t, all, 11)
	for _, s := range Scopes() {
		for _, name := range s.Artifacts() {
			assert.Contains(t, all, name)
		}
	}
	assert.NotContains(t, all, "dataset_raw.csv", "the raw input survives every reset")
}
