package main

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// branchRef is a raw branch handle as reported by the repository.
type branchRef struct {
	Name plumbing.ReferenceName
	Kind BranchKind
}

// tipCommit is the metadata of the commit a branch points at.
type tipCommit struct {
	When    time.Time
	Message string
	Author  string
}

// repositoryService is the part of a git repository the switcher needs.
type repositoryService interface {
	ListBranches(includeRemote bool) ([]branchRef, error)
	CurrentBranch() (string, bool, error)
	TipCommit(name plumbing.ReferenceName) (tipCommit, error)
	ResolveRef(name plumbing.ReferenceName) (plumbing.Hash, error)
	CheckoutTree(hash plumbing.Hash) error
	SetHead(name plumbing.ReferenceName, hash plumbing.Hash) error
}

type gitRepository struct {
	repo *git.Repository
}

var _ repositoryService = (*gitRepository)(nil)

func openRepo(dir string) (*gitRepository, error) {
	abs, err := workingDir(dir)
	if err != nil {
		return nil, &DiscoveryError{Dir: dir, Err: err}
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			err = errNotInGitRepository
		}
		return nil, &DiscoveryError{Dir: abs, Err: err}
	}
	root := abs
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	slog.Debug("opened repository", slog.String("root", root))
	return &gitRepository{repo: repo}, nil
}

func (g *gitRepository) ListBranches(includeRemote bool) ([]branchRef, error) {
	iter, err := g.repo.References()
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	defer iter.Close()

	var local, remote []branchRef
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name()
		switch {
		case name.IsBranch():
			local = append(local, branchRef{Name: name, Kind: BranchLocal})
		case includeRemote && name.IsRemote():
			// <remote>/HEAD is a pointer to another remote branch.
			if ref.Type() == plumbing.SymbolicReference || strings.HasSuffix(name.String(), "/HEAD") {
				return nil
			}
			remote = append(remote, branchRef{Name: name, Kind: BranchRemote})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list references: %w", err)
	}
	byName := func(refs []branchRef) {
		sort.Slice(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	}
	byName(local)
	byName(remote)
	return append(remote, local...), nil
}

func (g *gitRepository) CurrentBranch() (string, bool, error) {
	head, err := g.repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("resolve HEAD: %w", err)
	}
	// Only a local branch can be current; HEAD is detached otherwise.
	name := head.Name()
	if !name.IsBranch() {
		return "", false, nil
	}
	return name.Short(), true, nil
}

func (g *gitRepository) TipCommit(name plumbing.ReferenceName) (tipCommit, error) {
	ref, err := g.repo.Reference(name, true)
	if err != nil {
		return tipCommit{}, err
	}
	commit, err := peelToCommit(g.repo, ref.Hash())
	if err != nil {
		return tipCommit{}, err
	}
	return tipCommit{
		When:    commit.Committer.When,
		Message: commit.Message,
		Author:  commit.Author.Name,
	}, nil
}

func peelToCommit(repo *git.Repository, hash plumbing.Hash) (*object.Commit, error) {
	obj, err := repo.Object(plumbing.AnyObject, hash)
	if err != nil {
		return nil, err
	}
	switch o := obj.(type) {
	case *object.Commit:
		return o, nil
	case *object.Tag:
		return o.Commit()
	default:
		return nil, fmt.Errorf("%s is a %s, not a commit", hash, obj.Type())
	}
}

func (g *gitRepository) ResolveRef(name plumbing.ReferenceName) (plumbing.Hash, error) {
	ref, err := g.repo.Reference(name, true)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	return ref.Hash(), nil
}

func (g *gitRepository) CheckoutTree(hash plumbing.Hash) error {
	wt, err := g.repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Checkout(&git.CheckoutOptions{Hash: hash})
}

// SetHead attaches HEAD to a local branch. Any other reference leaves HEAD
// detached at hash, so later commits never move a remote-tracking ref.
func (g *gitRepository) SetHead(name plumbing.ReferenceName, hash plumbing.Hash) error {
	if name.IsBranch() {
		return g.repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, name))
	}
	return g.repo.Storer.SetReference(plumbing.NewHashReference(plumbing.HEAD, hash))
}
