package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-git/go-git/v5/plumbing"
)

type BranchKind int

const (
	BranchLocal BranchKind = iota
	BranchRemote
)

func (k BranchKind) String() string {
	if k == BranchRemote {
		return "remote"
	}
	return "local"
}

const (
	localBranchPrefix  = "refs/heads/"
	remoteBranchPrefix = "refs/remotes/"
)

// BranchRecord is one branch discovered in the repository, with the
// metadata of its tip commit.
type BranchRecord struct {
	Shorthand        string
	Kind             BranchKind
	TipCommitTime    time.Time
	TipCommitMessage string
	TipAuthorName    string
}

// RefName returns the fully-qualified reference of the branch.
func (b BranchRecord) RefName() plumbing.ReferenceName {
	if b.Kind == BranchRemote {
		return plumbing.ReferenceName(remoteBranchPrefix + b.Shorthand)
	}
	return plumbing.ReferenceName(localBranchPrefix + b.Shorthand)
}

// Subject is the first line of the tip commit message.
func (b BranchRecord) Subject() string {
	subject, _, _ := strings.Cut(strings.TrimSpace(b.TipCommitMessage), "\n")
	return strings.TrimSpace(subject)
}

func buildCatalog(repo repositoryService, cfg Config) ([]BranchRecord, error) {
	refs, err := repo.ListBranches(cfg.ShowRemoteBranches)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	records := make([]BranchRecord, 0, len(refs))
	for _, ref := range refs {
		shorthand, ok := branchShorthand(ref)
		if !ok {
			slog.Debug("skipping branch without shorthand", slog.String("ref", ref.Name.String()))
			continue
		}
		tip, err := repo.TipCommit(ref.Name)
		if err != nil {
			slog.Debug("skipping unresolvable branch",
				slog.String("ref", ref.Name.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		records = append(records, BranchRecord{
			Shorthand:        shorthand,
			Kind:             ref.Kind,
			TipCommitTime:    tip.When,
			TipCommitMessage: tip.Message,
			TipAuthorName:    tip.Author,
		})
	}
	slog.Debug("built branch catalog",
		slog.Int("refs", len(refs)),
		slog.Int("branches", len(records)),
		slog.Bool("remote", cfg.ShowRemoteBranches),
	)
	return records, nil
}

func branchShorthand(ref branchRef) (string, bool) {
	prefix := localBranchPrefix
	if ref.Kind == BranchRemote {
		prefix = remoteBranchPrefix
	}
	name := ref.Name.String()
	if !strings.HasPrefix(name, prefix) {
		return "", false
	}
	short := strings.TrimPrefix(name, prefix)
	if strings.TrimSpace(short) == "" {
		return "", false
	}
	return short, true
}
