package exam

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{
			name: "four options",
			raw:  "A. function B. def C. create D. make",
			want: map[string]string{"A": "function", "B": "def", "C": "create", "D": "make"},
		},
		{
			name: "no space after dot",
			raw:  "A.16 B.11 C.10 D.26",
			want: map[string]string{"A": "16", "B": "11", "C": "10", "D": "26"},
		},
		{
			name: "semicolon separated",
			raw:  "A. 列表;B. 字典;C. 元组;D. 集合",
			want: map[string]string{"A": "列表", "B": "字典", "C": "元组", "D": "集合"},
		},
		{
			name: "quotes stripped",
			raw:  "A. 'r' B. 'w' C. \"a\" D. 'x'",
			want: map[string]string{"A": "r", "B": "w", "C": "a", "D": "x"},
		},
		{
			name: "capital letters inside text",
			raw:  "A. Apple B. Banana Cake C. Dog D. Egg",
			want: map[string]string{"A": "Apple", "B": "Banana Cake", "C": "Dog", "D": "Egg"},
		},
		{
			name: "partial",
			raw:  "A. yes B. no",
			want: map[string]string{"A": "yes", "B": "no", "C": "", "D": ""},
		},
		{
			name: "empty",
			raw:  "",
			want: map[string]string{"A": "", "B": "", "C": "", "D": ""},
		},
		{
			name: "garbage",
			raw:  "no options here",
			want: map[string]string{"A": "", "B": "", "C": "", "D": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseOptions(tt.raw))
		})
	}
}

func TestParseOptionsCountsWellFormedSegments(t *testing.T) {
	segments := []string{"A. one", "B. two", "C. three", "D. four"}
	for k := 0; k <= len(segments); k++ {
		raw := ""
		for i := 0; i < k; i++ {
			raw += segments[i] + " "
		}

		got := ParseOptions(raw)
		nonEmpty := 0
		for _, v := range got {
			if v != "" {
				nonEmpty++
			}
		}
		assert.Len(t, got, 4)
		assert.Equal(t, k, nonEmpty, "segments=%d", k)
	}
}

func TestParseOptionsWithPlaceholder(t *testing.T) {
	got := ParseOptionsWithPlaceholder("A. x B. y")
	assert.Equal(t, "x", got["A"])
	assert.Equal(t, "y", got["B"])
	assert.Equal(t, "无有效选项C", got["C"])
	assert.Equal(t, "无有效选项D", got["D"])
}
