package mastery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		answered int
		correct  int
		want     Tier
	}{
		{"never answered", 0, 0, TierNew},
		{"early one right", 1, 1, TierMiddle},
		{"early one wrong", 1, 0, TierWeak},
		{"early two of two", 2, 2, TierMiddle},
		{"early one of two", 2, 1, TierWeak},
		{"mid two of three", 3, 2, TierMiddle},
		{"mid one of three", 3, 1, TierWeak},
		{"mid half of four", 4, 2, TierMiddle},
		{"mid all four still not mastered", 4, 4, TierMiddle},
		{"mature five of five", 5, 5, TierMastered},
		{"mature four of five", 5, 4, TierMiddle},
		{"mature five of six", 6, 5, TierMastered},
		{"mature three of five", 5, 3, TierMiddle},
		{"mature two of five", 5, 2, TierWeak},
		{"mature eight of ten", 10, 8, TierMastered},
		{"mature seven of ten", 10, 7, TierMiddle},
		{"mature five of ten", 10, 5, TierWeak},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.answered, tt.correct))
		})
	}
}

func TestClassify_MasteredRequiresSampleSize(t *testing.T) {
	for a := 0; a <= 30; a++ {
		for c := 0; c <= a; c++ {
			got := Classify(a, c)
			switch got {
			case TierNew, TierWeak, TierMiddle, TierMastered:
			default:
				t.Fatalf("Classify(%d, %d) = %q, not a known tier", a, c, got)
			}
			if got == TierMastered && (a < 5 || c < 5) {
				t.Errorf("Classify(%d, %d) = mastered below minimum sample", a, c)
			}
		}
	}
}

func TestAccuracy_ZeroAttempts(t *testing.T) {
	assert.Equal(t, 0.0, Accuracy(0, 0))
	assert.InDelta(t, 83.33, Accuracy(6, 5), 0.01)
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier("middle")
	assert.NoError(t, err)
	assert.Equal(t, TierMiddle, tier)

	_, err = ParseTier("rusty")
	assert.Error(t, err)
}

func TestTransition(t *testing.T) {
	tr := Transition{From: TierWeak, To: TierMiddle}
	assert.True(t, tr.Changed())
	assert.True(t, tr.Promoted())

	tr = Transition{From: TierMastered, To: TierMiddle}
	assert.True(t, tr.Changed())
	assert.False(t, tr.Promoted())
	assert.True(t, tr.Demoted())

	tr = Transition{From: TierNew, To: TierWeak}
	assert.True(t, tr.Changed())
	assert.False(t, tr.Promoted())
	assert.False(t, tr.Demoted())

	tr = Transition{From: TierNew, To: TierNew}
	assert.False(t, tr.Changed())
}
