package buildspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_SharedAndUniquePhases(t *testing.T) {
	t.Parallel()
	base := New().WithCommands(PhaseBuild, "a", "b")
	overlay := New().
		WithCommands(PhaseInstall, "c").
		WithCommands(PhaseBuild, "d")

	merged := Merge(base, overlay)

	assert.Equal(t, []string{"c"}, merged.Commands(PhaseInstall))
	assert.Equal(t, []string{"a", "b", "d"}, merged.Commands(PhaseBuild))
	assert.Equal(t, []PhaseName{PhaseInstall, PhaseBuild}, merged.PhaseNames())
}

func TestMerge_BasePhasePassesThrough(t *testing.T) {
	t.Parallel()
	base := New().WithCommands(PhasePostBuild, "cleanup")
	overlay := New().WithCommands(PhaseBuild, "make")

	merged := Merge(base, overlay)

	assert.Equal(t, []string{"cleanup"}, merged.Commands(PhasePostBuild))
	assert.Equal(t, []string{"make"}, merged.Commands(PhaseBuild))
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()
	base := New().WithCommands(PhaseBuild, "a").WithVariable("X", "1")
	overlay := New().WithCommands(PhaseBuild, "b").WithVariable("X", "2").WithVariable("Y", "3")

	merged := Merge(base, overlay)
	merged.WithCommands(PhaseBuild, "extra")

	assert.Equal(t, []string{"a"}, base.Commands(PhaseBuild))
	assert.Equal(t, []string{"b"}, overlay.Commands(PhaseBuild))
	assert.Equal(t, map[string]string{"X": "1"}, base.Env.Variables)
	assert.Equal(t, map[string]string{"X": "2", "Y": "3"}, merged.Env.Variables)
}

func TestMerge_Deterministic(t *testing.T) {
	t.Parallel()
	base := Partial(nil).WithCommands(PhasePreBuild, "p")
	overlay := New().WithCommands(PhaseInstall, "i").WithCommands(PhaseBuild, "b")

	first, err := Render(Merge(base, overlay))
	require.NoError(t, err)
	for range 10 {
		again, err := Render(Merge(base, overlay))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestMerge_NilSides(t *testing.T) {
	t.Parallel()
	overlay := New().WithCommands(PhaseBuild, "b")

	fromNilBase := Merge(nil, overlay)
	assert.Equal(t, []string{"b"}, fromNilBase.Commands(PhaseBuild))
	assert.Equal(t, DefaultVersion, fromNilBase.Version)

	fromNilOverlay := Merge(overlay, nil)
	assert.Equal(t, []string{"b"}, fromNilOverlay.Commands(PhaseBuild))
}

func TestMerge_Version(t *testing.T) {
	t.Parallel()
	base := &Spec{Version: ""}
	overlay := &Spec{Version: ""}
	assert.Equal(t, DefaultVersion, Merge(base, overlay).Version)

	overlay.Version = "0.3"
	assert.Equal(t, "0.3", Merge(base, overlay).Version)
}

func TestMerge_SecretsUnion(t *testing.T) {
	t.Parallel()
	base := New().WithSecret("A", "arn:a")
	overlay := New().WithSecret("B", "arn:b")

	merged := Merge(base, overlay)

	assert.Equal(t, map[string]string{"A": "arn:a", "B": "arn:b"}, merged.Env.SecretsManager)
	assert.Nil(t, overlay.Env.Variables)
}
