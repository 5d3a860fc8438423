package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mrbonezy/git-select-branch/ui"
	"github.com/spf13/cobra"
)

const (
	exitCheckedOut  = 0
	exitNoneChosen  = 1
	exitInterrupted = 2
	exitFailure     = 3
)

const programName = "git-select-branch"

var newPicker = func(cfg Config) ui.Picker {
	return ui.NewPicker(cfg.Fuzzy, cfg.Theme)
}

func newRootCommand(args []string, stdout io.Writer, code *int) *cobra.Command {
	var showVersion bool
	root := &cobra.Command{
		Use:           programName,
		Short:         "Switch git branches, most recently committed first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Fprintln(stdout, currentVersion())
				*code = exitCheckedOut
				return nil
			}
			c, err := runDefault(cmd.Context(), stdout)
			*code = c
			return err
		},
	}
	root.Flags().BoolVarP(&showVersion, "version", "v", false, "Print "+programName+" version and exit")
	root.SetOut(stdout)
	root.SetArgs(args[min(len(args), 1):])
	return root
}

// run executes one invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	closeLog, err := setupLogging(debugLoggingEnabled())
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return exitFailure
	}
	defer closeLog()

	code := exitFailure
	root := newRootCommand(args, stdout, &code)
	if err := root.ExecuteContext(context.Background()); err != nil {
		slog.Error("run failed", slog.String("error", err.Error()))
		fmt.Fprintf(stderr, "%s: %v\n", programName, err)
		return exitFailure
	}
	return code
}

func runDefault(ctx context.Context, stdout io.Writer) (int, error) {
	repo, err := openRepo("")
	if err != nil {
		return exitFailure, err
	}
	store, err := newGitConfigStore(repo.repo)
	if err != nil {
		return exitFailure, err
	}
	options, cfg, err := prepareOptions(repo, store)
	if err != nil {
		return exitFailure, err
	}

	if testModeEnabled() {
		for _, label := range optionLabels(options) {
			fmt.Fprintln(stdout, label)
		}
		return exitNoneChosen, nil
	}

	ctx, guard := installInterruptGuard(ctx, restoreCursor)
	defer guard.Stop()

	selection, err := runSelection(ctx, options, newPicker(cfg))
	if err != nil {
		return exitFailure, err
	}
	if guard.Interrupted() {
		selection = Selection{Outcome: OutcomeInterrupted}
	}
	return dispatchSelection(repo, options, selection)
}

func prepareOptions(repo repositoryService, store ConfigStore) ([]Option, Config, error) {
	cfg, err := resolveConfig(store)
	if err != nil {
		return nil, Config{}, fmt.Errorf("read configuration: %w", err)
	}
	records, err := buildCatalog(repo, cfg)
	if err != nil {
		return nil, Config{}, err
	}
	limit, limited := cfg.Limit()
	ranked := rankBranches(records, limit, limited)
	current, hasCurrent, err := repo.CurrentBranch()
	if err != nil {
		return nil, Config{}, fmt.Errorf("read current branch: %w", err)
	}
	return assembleOptions(ranked, current, hasCurrent), cfg, nil
}

// dispatchSelection maps a session outcome to an exit code. The current
// branch sentinel is never checked out.
func dispatchSelection(repo repositoryService, options []Option, selection Selection) (int, error) {
	switch selection.Outcome {
	case OutcomeInterrupted:
		return exitInterrupted, nil
	case OutcomeNoneChosen:
		return exitNoneChosen, nil
	case OutcomeChosen:
	default:
		return exitFailure, fmt.Errorf("unknown selection outcome %v", selection.Outcome)
	}
	if selection.Index < 0 || selection.Index >= len(options) {
		return exitFailure, errors.New("selection out of range")
	}
	opt := options[selection.Index]
	if opt.IsCurrent() {
		return exitNoneChosen, nil
	}
	record, ok := opt.Branch()
	if !ok {
		return exitFailure, fmt.Errorf("option %q has no branch", opt.Label())
	}
	if err := checkoutBranch(repo, record); err != nil {
		return exitFailure, err
	}
	return exitCheckedOut, nil
}
