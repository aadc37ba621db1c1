package explore_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-docschema/pkg/docindex"
	"github.com/goliatone/go-docschema/pkg/explore"
	"github.com/goliatone/go-docschema/pkg/testsupport"
)

// scriptDriver replays a fixed sequence of selections, recording the
// option lists it was offered. Once the script runs out it cancels.
type scriptDriver struct {
	picks   []int
	prompts [][]string
}

func (d *scriptDriver) Select(_ context.Context, cfg explore.SelectConfig) (int, error) {
	d.prompts = append(d.prompts, cfg.Options)
	if len(d.picks) == 0 {
		return 0, explore.ErrCancelled
	}
	pick := d.picks[0]
	d.picks = d.picks[1:]
	return pick, nil
}

func TestRunWalksKindFamilySectionField(t *testing.T) {
	snap := testsupport.Snapshot(t)
	docs, err := docindex.Build(snap)
	require.NoError(t, err)

	// Task -> family 1 -> section 1.4 -> field phase, then back out and quit.
	driver := &scriptDriver{picks: []int{1, 0, 1, 0, 4, 2, 2, 5}}
	var out bytes.Buffer
	explorer := explore.New(&out, explore.WithDriver(driver))

	err = explorer.Run(testsupport.Context(), snap, docs)
	require.NoError(t, err)

	printed := out.String()
	assert.Contains(t, printed, "family 1: Meta & Governance")
	assert.Contains(t, printed, "section 1.4: Task Status")
	assert.Contains(t, printed, "field 1.4.phase: phase")
	assert.Contains(t, printed, "example: Use <b>active</b> once work starts.")
	assert.NotContains(t, printed, "<script>")

	require.Len(t, driver.prompts, 8)
	assert.Equal(t, []string{"Plan", "Task", "Project", "Module", "Feature", "(quit)"}, driver.prompts[0])
	assert.Equal(t, []string{"1 Meta & Governance", "5 Maintenance & Monitoring", "(back)"}, driver.prompts[1])
	assert.Equal(t, []string{"1.1", "1.4", "(back)"}, driver.prompts[2])
}

func TestRunFieldListRespectsApplicability(t *testing.T) {
	snap := testsupport.Snapshot(t)
	docs, err := docindex.Build(snap)
	require.NoError(t, err)

	// Task -> family 5 -> section 5.1: entryPoints is omitted for tasks, so
	// only criticality and budgetMinutes show up.
	driver := &scriptDriver{picks: []int{1, 1, 0, 2, 1, 2, 5}}
	var out bytes.Buffer
	explorer := explore.New(&out, explore.WithDriver(driver))

	require.NoError(t, explorer.Run(testsupport.Context(), snap, docs))

	var fieldPrompt []string
	for _, prompt := range driver.prompts {
		if len(prompt) > 0 && strings.HasPrefix(prompt[0], "criticality") {
			fieldPrompt = prompt
		}
	}
	require.NotNil(t, fieldPrompt)
	assert.Equal(t, []string{"criticality (optional)", "budgetMinutes (optional)", "(back)"}, fieldPrompt)
}

func TestRunCancellationEndsQuietly(t *testing.T) {
	snap := testsupport.Snapshot(t)
	docs, err := docindex.Build(snap)
	require.NoError(t, err)

	driver := &scriptDriver{}
	var out bytes.Buffer
	explorer := explore.New(&out, explore.WithDriver(driver))

	assert.NoError(t, explorer.Run(testsupport.Context(), snap, docs))
}

func TestRunRequiresInputs(t *testing.T) {
	var out bytes.Buffer
	explorer := explore.New(&out, explore.WithDriver(&scriptDriver{}))
	err := explorer.Run(testsupport.Context(), nil, nil)
	require.Error(t, err)
}
