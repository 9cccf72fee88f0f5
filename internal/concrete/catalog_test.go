package concrete

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	classes, err := LoadEmbedded()
	require.NoError(t, err)
	require.Len(t, classes, 14)

	assert.Equal(t, "C12/15", classes[0].Name)
	assert.Equal(t, "C90/105", classes[len(classes)-1].Name)

	for i := 1; i < len(classes); i++ {
		assert.Less(t, classes[i-1].Fck, classes[i].Fck, "catalog must be ordered by fck")
	}

	c30 := classes[4]
	assert.Equal(t, "C30/37", c30.Name)
	assert.Equal(t, 30, c30.Fck)
	assert.Equal(t, 37, c30.FckCube)
	assert.Equal(t, 38, c30.Fcm)
	assert.InDelta(t, 2.9, c30.Fctm, 1e-9)
	assert.Equal(t, 33, c30.Ecm)
	assert.InDelta(t, 3.5, c30.EpsCU2, 1e-9)
}

func TestLoadEmbedded_FcmIsFckPlusEight(t *testing.T) {
	classes, err := LoadEmbedded()
	require.NoError(t, err)

	for _, c := range classes {
		assert.Equal(t, c.Fck+8, c.Fcm, c.Name)
	}
}

func TestParse_SortsAndNormalizes(t *testing.T) {
	doc := []byte(`
classes:
  - name: c25-30
    fck: 25
    fck_cube: 30
  - name: C20/25
    fck: 20
    fck_cube: 25
`)
	classes, err := Parse(doc)
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Equal(t, "C20/25", classes[0].Name)
	assert.Equal(t, "C25/30", classes[1].Name)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{"malformed yaml", "classes: [", "failed to parse"},
		{"empty", "classes: []", "catalog is empty"},
		{"bad name", "classes:\n  - name: B20\n    fck: 20\n    fck_cube: 25\n", "invalid concrete class name"},
		{"duplicate", "classes:\n  - name: C20/25\n    fck: 20\n    fck_cube: 25\n  - name: c20-25\n    fck: 20\n    fck_cube: 25\n", "duplicate class C20/25"},
		{"cube below cylinder", "classes:\n  - name: C20/25\n    fck: 20\n    fck_cube: 10\n", "inconsistent strengths"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNormalizeName(t *testing.T) {
	valid := map[string]string{
		"C30/37":   "C30/37",
		"c30/37":   "C30/37",
		" C30-37 ": "C30/37",
		"c90_105":  "C90/105",
		"C12 15":   "C12/15",
	}
	for in, want := range valid {
		got, err := NormalizeName(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	for _, in := range []string{"", "30/37", "C30", "C30//37", "LC30/33", "C3000/37"} {
		_, err := NormalizeName(in)
		assert.Error(t, err, in)
	}
}
