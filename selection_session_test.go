package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrbonezy/git-select-branch/ui"
)

// fakePicker replays one picker result and records what it was shown.
type fakePicker struct {
	index  int
	picked bool
	err    error

	prompt string
	items  []ui.Item
}

func (p *fakePicker) Pick(_ context.Context, prompt string, items []ui.Item) (int, bool, error) {
	p.prompt = prompt
	p.items = items
	return p.index, p.picked, p.err
}

func stubRestore(t *testing.T) *int {
	t.Helper()
	calls := 0
	old := restoreTerminal
	restoreTerminal = func() { calls++ }
	t.Cleanup(func() { restoreTerminal = old })
	return &calls
}

func sampleOptions() []Option {
	return assembleOptions([]BranchRecord{recordAt("third", 30), recordAt("second", 20)}, "main", true)
}

func TestRunSelection_Outcomes(t *testing.T) {
	tooFar := errors.New("picker returned index 9")
	cases := []struct {
		name        string
		picker      *fakePicker
		want        Selection
		wantErr     error
		wantRestore int
	}{
		{
			name:   "chosen branch",
			picker: &fakePicker{index: 2, picked: true},
			want:   Selection{Outcome: OutcomeChosen, Index: 2},
		},
		{
			name:   "chosen sentinel",
			picker: &fakePicker{index: 0, picked: true},
			want:   Selection{Outcome: OutcomeChosen, Index: 0},
		},
		{
			name:   "dismissed",
			picker: &fakePicker{},
			want:   Selection{Outcome: OutcomeNoneChosen},
		},
		{
			name:        "interrupted",
			picker:      &fakePicker{err: ui.ErrInterrupted},
			want:        Selection{Outcome: OutcomeInterrupted},
			wantRestore: 1,
		},
		{
			name:        "wrapped interrupt",
			picker:      &fakePicker{err: errors.Join(errors.New("tea"), ui.ErrInterrupted)},
			want:        Selection{Outcome: OutcomeInterrupted},
			wantRestore: 1,
		},
		{
			name:    "picker failure",
			picker:  &fakePicker{err: tooFar},
			wantErr: tooFar,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			restored := stubRestore(t)
			got, err := runSelection(context.Background(), sampleOptions(), tc.picker)
			if tc.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantRestore, *restored)
		})
	}
}

func TestRunSelection_OutOfRangeIndexIsAnError(t *testing.T) {
	stubRestore(t)
	_, err := runSelection(context.Background(), sampleOptions(), &fakePicker{index: 9, picked: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "index 9")
}

func TestRunSelection_ShowsLabelsInOrder(t *testing.T) {
	stubRestore(t)
	picker := &fakePicker{}
	_, err := runSelection(context.Background(), sampleOptions(), picker)
	require.NoError(t, err)

	labels := make([]string, len(picker.items))
	for i, item := range picker.items {
		labels[i] = item.Label
	}
	assert.Equal(t, []string{"main", "third", "second"}, labels)
	assert.Equal(t, selectionPrompt, picker.prompt)
}

func TestOptionDetail(t *testing.T) {
	oldNow := now
	now = func() time.Time { return fixtureEpoch }
	t.Cleanup(func() { now = oldNow })

	record := BranchRecord{
		Shorthand:        "feature",
		TipCommitTime:    fixtureEpoch.Add(-3 * time.Hour),
		TipAuthorName:    "ada",
		TipCommitMessage: "add login\n\nlong body",
	}
	assert.Equal(t, "3 hours ago  ada  add login", optionDetail(branchChoice(record)))

	bare := BranchRecord{Shorthand: "x", TipCommitTime: fixtureEpoch.Add(-48 * time.Hour)}
	assert.Equal(t, "2 days ago", optionDetail(branchChoice(bare)))

	assert.Equal(t, "(current)", optionDetail(currentBranchSentinel("main")))
}
