package main

const noBranchLabel = "<no branch>"

type optionKind int

const (
	optionCurrent optionKind = iota
	optionBranch
)

// Option is one entry of the picker. Index 0 is always the current
// branch sentinel; every other entry carries a branch record.
type Option struct {
	kind   optionKind
	label  string
	record BranchRecord
}

func currentBranchSentinel(label string) Option {
	return Option{kind: optionCurrent, label: label}
}

func branchChoice(record BranchRecord) Option {
	return Option{kind: optionBranch, label: record.Shorthand, record: record}
}

func (o Option) IsCurrent() bool {
	return o.kind == optionCurrent
}

// Branch returns the record behind a branch choice.
func (o Option) Branch() (BranchRecord, bool) {
	if o.kind != optionBranch {
		return BranchRecord{}, false
	}
	return o.record, true
}

func (o Option) Label() string {
	return o.label
}

func (o Option) String() string {
	return o.label
}

func assembleOptions(ranked []BranchRecord, current string, hasCurrent bool) []Option {
	label := noBranchLabel
	if hasCurrent {
		label = current
	}
	options := make([]Option, 0, len(ranked)+1)
	options = append(options, currentBranchSentinel(label))
	for _, record := range ranked {
		if hasCurrent && record.Shorthand == current {
			continue
		}
		options = append(options, branchChoice(record))
	}
	return options
}

func optionLabels(options []Option) []string {
	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = opt.Label()
	}
	return labels
}
