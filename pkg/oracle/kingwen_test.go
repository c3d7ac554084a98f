package oracle_test

import (
	"testing"

	"github.com/aretw0/cliching/pkg/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestKingWen_Permutation verifies the identity -> number table is a
// bijection: every identity 0..63 maps to exactly one number 1..64.
func TestKingWen_Permutation(t *testing.T) {
	seen := make(map[int]int, 64)
	for identity := 0; identity <= 63; identity++ {
		number, err := oracle.KingWen(identity)
		require.NoError(t, err)
		require.GreaterOrEqual(t, number, 1)
		require.LessOrEqual(t, number, 64)

		if prev, dup := seen[number]; dup {
			t.Fatalf("number %d assigned to identities %d and %d", number, prev, identity)
		}
		seen[number] = identity
	}
	assert.Len(t, seen, 64)
}

// TestKingWen_Anchors pins classical correspondences between binary
// identity (line 1 = LSB, yang = 1) and the King Wen sequence.
func TestKingWen_Anchors(t *testing.T) {
	anchors := map[int]int{
		63: 1,  // all yang: Qian, the Creative
		0:  2,  // all yin: Kun, the Receptive
		17: 3,  // Thunder below, Water above: Zhun
		7:  11, // Heaven below, Earth above: Tai
		56: 12, // Earth below, Heaven above: Pi
		18: 29, // doubled Water: Kan
		45: 30, // doubled Fire: Li
		9:  51, // doubled Thunder: Zhen
		36: 52, // doubled Mountain: Gen
		21: 63, // Fire below, Water above: Ji Ji
		42: 64, // Water below, Fire above: Wei Ji
	}

	for identity, want := range anchors {
		number, err := oracle.KingWen(identity)
		require.NoError(t, err)
		assert.Equalf(t, want, number, "identity %d", identity)
	}
}

func TestKingWen_Range(t *testing.T) {
	_, err := oracle.KingWen(-1)
	require.ErrorIs(t, err, oracle.ErrIdentityRange)
	_, err = oracle.KingWen(64)
	require.ErrorIs(t, err, oracle.ErrIdentityRange)
}

// TestIdentity_Inverse checks the two mappings invert each other.
func TestIdentity_Inverse(t *testing.T) {
	for number := 1; number <= 64; number++ {
		identity, err := oracle.Identity(number)
		require.NoError(t, err)

		back, err := oracle.KingWen(identity)
		require.NoError(t, err)
		assert.Equal(t, number, back)
	}

	_, err := oracle.Identity(0)
	require.Error(t, err)
	_, err = oracle.Identity(65)
	require.Error(t, err)
}
