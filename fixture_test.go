package main

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var fixtureEpoch = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// fixtureRepo is a throwaway repository whose commits carry chosen
// timestamps, built with plumbing calls so no git binary is required.
type fixtureRepo struct {
	t    *testing.T
	dir  string
	repo *git.Repository
}

func newFixtureRepo(t *testing.T) *fixtureRepo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInitWithOptions(dir, &git.PlainInitOptions{
		InitOptions: git.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName("main")},
	})
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	isolateGitConfig(t)
	return &fixtureRepo{t: t, dir: dir, repo: repo}
}

// isolateGitConfig keeps the developer's global and system git config out
// of tests.
func isolateGitConfig(t *testing.T) {
	t.Helper()
	old := loadScopedGitConfig
	loadScopedGitConfig = func(gitconfig.Scope) (*gitconfig.Config, error) {
		return gitconfig.NewConfig(), nil
	}
	t.Cleanup(func() { loadScopedGitConfig = old })
}

func (f *fixtureRepo) writeObject(encode func(plumbing.EncodedObject) error) plumbing.Hash {
	f.t.Helper()
	obj := f.repo.Storer.NewEncodedObject()
	if err := encode(obj); err != nil {
		f.t.Fatalf("encode object: %v", err)
	}
	hash, err := f.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		f.t.Fatalf("store object: %v", err)
	}
	return hash
}

func (f *fixtureRepo) blob(content string) plumbing.Hash {
	return f.writeObject(func(obj plumbing.EncodedObject) error {
		obj.SetType(plumbing.BlobObject)
		w, err := obj.Writer()
		if err != nil {
			return err
		}
		if _, err := w.Write([]byte(content)); err != nil {
			return err
		}
		return w.Close()
	})
}

func (f *fixtureRepo) tree(files map[string]string) plumbing.Hash {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	tree := &object.Tree{}
	for _, name := range names {
		tree.Entries = append(tree.Entries, object.TreeEntry{
			Name: name,
			Mode: filemode.Regular,
			Hash: f.blob(files[name]),
		})
	}
	return f.writeObject(tree.Encode)
}

// commit stores a commit with the given files and time and returns its hash.
func (f *fixtureRepo) commit(files map[string]string, when time.Time, message, author string) plumbing.Hash {
	sig := object.Signature{Name: author, Email: "dev@example.test", When: when}
	c := &object.Commit{
		Author:    sig,
		Committer: sig,
		Message:   message,
		TreeHash:  f.tree(files),
	}
	return f.writeObject(c.Encode)
}

func (f *fixtureRepo) setRef(name plumbing.ReferenceName, hash plumbing.Hash) {
	f.t.Helper()
	if err := f.repo.Storer.SetReference(plumbing.NewHashReference(name, hash)); err != nil {
		f.t.Fatalf("set %s: %v", name, err)
	}
}

// branch creates refs/heads/<name> on an empty-tree commit at the given
// offset from fixtureEpoch.
func (f *fixtureRepo) branch(name string, offset time.Duration) plumbing.Hash {
	hash := f.commit(map[string]string{}, fixtureEpoch.Add(offset), "work on "+name+"\n", "ada")
	f.setRef(plumbing.NewBranchReferenceName(name), hash)
	return hash
}

// remoteBranch creates refs/remotes/<remote>/<name>.
func (f *fixtureRepo) remoteBranch(remote, name string, offset time.Duration) plumbing.Hash {
	hash := f.commit(map[string]string{}, fixtureEpoch.Add(offset), "remote "+name+"\n", "grace")
	f.setRef(plumbing.NewRemoteReferenceName(remote, name), hash)
	return hash
}

func (f *fixtureRepo) setHead(name plumbing.ReferenceName) {
	f.t.Helper()
	if err := f.repo.Storer.SetReference(plumbing.NewSymbolicReference(plumbing.HEAD, name)); err != nil {
		f.t.Fatalf("set HEAD: %v", err)
	}
}

func (f *fixtureRepo) detachHead(hash plumbing.Hash) {
	f.t.Helper()
	if err := f.repo.Storer.SetReference(plumbing.NewHashReference(plumbing.HEAD, hash)); err != nil {
		f.t.Fatalf("detach HEAD: %v", err)
	}
}

// checkoutForce materializes name into the worktree, discarding local state.
func (f *fixtureRepo) checkoutForce(name plumbing.ReferenceName) {
	f.t.Helper()
	wt, err := f.repo.Worktree()
	if err != nil {
		f.t.Fatalf("worktree: %v", err)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Branch: name, Force: true}); err != nil {
		f.t.Fatalf("checkout %s: %v", name, err)
	}
}

func (f *fixtureRepo) setConfig(section, option, value string) {
	f.t.Helper()
	cfg, err := f.repo.Config()
	if err != nil {
		f.t.Fatalf("read config: %v", err)
	}
	cfg.Raw.Section(section).SetOption(option, value)
	if err := f.repo.SetConfig(cfg); err != nil {
		f.t.Fatalf("write config: %v", err)
	}
}

func (f *fixtureRepo) service() *gitRepository {
	f.t.Helper()
	repo, err := openRepo(f.dir)
	if err != nil {
		f.t.Fatalf("open fixture repo: %v", err)
	}
	return repo
}

func (f *fixtureRepo) readFile(name string) string {
	f.t.Helper()
	data, err := os.ReadFile(filepath.Join(f.dir, name))
	if err != nil {
		f.t.Fatalf("read %s: %v", name, err)
	}
	return string(data)
}

func (f *fixtureRepo) headTarget() plumbing.ReferenceName {
	f.t.Helper()
	head, err := f.repo.Storer.Reference(plumbing.HEAD)
	if err != nil {
		f.t.Fatalf("read HEAD: %v", err)
	}
	return head.Target()
}
