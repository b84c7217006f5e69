package effect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Norgate-AV/alreadyedge/internal/effect"
	"github.com/Norgate-AV/alreadyedge/internal/logger"
	"github.com/Norgate-AV/alreadyedge/internal/testutil"
)

const hwnd uintptr = 0xABC

var allSteps = []string{
	"ExtendFrame",
	"SetBackdrop",
	"SetDarkMode",
	"SetTranslucent",
	"RefreshFrame",
	"NotifyThemeChanged",
}

func TestApply_IssuesStepsInOrder(t *testing.T) {
	t.Parallel()

	comp := testutil.NewMockCompositor()
	applier := effect.NewApplier(logger.NewNoOpLogger(), comp)

	ok := applier.Apply(hwnd, effect.Config{Backdrop: effect.BackdropMica, DarkMode: true})

	assert.True(t, ok)
	assert.Equal(t, allSteps, comp.Calls)
	assert.True(t, comp.Extended[hwnd])
	assert.Equal(t, effect.BackdropMica, comp.Backdrops[hwnd])
	assert.True(t, comp.DarkMode[hwnd])
}

func TestApply_LightMode(t *testing.T) {
	t.Parallel()

	comp := testutil.NewMockCompositor()
	applier := effect.NewApplier(logger.NewNoOpLogger(), comp)

	assert.True(t, applier.Apply(hwnd, effect.Config{Backdrop: effect.BackdropNone, DarkMode: false}))
	assert.False(t, comp.DarkMode[hwnd])
	assert.Equal(t, effect.BackdropNone, comp.Backdrops[hwnd])
}

func TestApply_Idempotent(t *testing.T) {
	t.Parallel()

	comp := testutil.NewMockCompositor()
	applier := effect.NewApplier(logger.NewNoOpLogger(), comp)
	cfg := effect.DefaultConfig()

	assert.True(t, applier.Apply(hwnd, cfg))
	firstBackdrop, firstDark := comp.Backdrops[hwnd], comp.DarkMode[hwnd]

	assert.True(t, applier.Apply(hwnd, cfg))
	assert.Equal(t, firstBackdrop, comp.Backdrops[hwnd])
	assert.Equal(t, firstDark, comp.DarkMode[hwnd])
	assert.Len(t, comp.Calls, 2*len(allSteps))
}

func TestApply_StepFailureReturnsFalse(t *testing.T) {
	t.Parallel()

	for _, failing := range allSteps {
		t.Run(failing, func(t *testing.T) {
			t.Parallel()

			comp := testutil.NewMockCompositor().WithFailingStep(failing)
			applier := effect.NewApplier(logger.NewNoOpLogger(), comp)

			assert.False(t, applier.Apply(hwnd, effect.DefaultConfig()))
			assert.Equal(t, allSteps, comp.Calls, "remaining steps are still attempted")
		})
	}
}

func TestApply_MissingWindow(t *testing.T) {
	t.Parallel()

	comp := testutil.NewMockCompositor().WithMissingWindow(hwnd)
	applier := effect.NewApplier(logger.NewNoOpLogger(), comp)

	assert.False(t, applier.Apply(hwnd, effect.DefaultConfig()))
	assert.Empty(t, comp.Calls, "no native calls against a destroyed window")
}

func TestApply_UnsupportedBackdropStillSucceeds(t *testing.T) {
	t.Parallel()

	comp := testutil.NewMockCompositor().WithUnsupportedStep("SetBackdrop")
	log := testutil.NewMockLogger()
	applier := effect.NewApplier(log, comp)

	assert.True(t, applier.Apply(hwnd, effect.DefaultConfig()), "an unsupported backdrop does not fail the apply")
	assert.Equal(t, allSteps, comp.Calls)
	assert.True(t, comp.DarkMode[hwnd], "dark mode is still applied")
	assert.NotContains(t, comp.Backdrops, hwnd)

	assert.True(t, applier.Apply(hwnd+1, effect.DefaultConfig()))
	assert.Equal(t, 1, log.Count("WARN"), "only the first unsupported step is a warning")
}

func TestApply_UnsupportedDoesNotMaskFailures(t *testing.T) {
	t.Parallel()

	comp := testutil.NewMockCompositor().
		WithUnsupportedStep("SetBackdrop").
		WithFailingStep("SetDarkMode")
	applier := effect.NewApplier(logger.NewNoOpLogger(), comp)

	assert.False(t, applier.Apply(hwnd, effect.DefaultConfig()))
}
