package main

import "log/slog"

const (
	checkoutStepResolve     = "resolve reference"
	checkoutStepMaterialize = "update working tree"
	checkoutStepSetHead     = "update HEAD"
)

// checkoutBranch switches the working tree to record. The three repository
// calls run in order and the first failure is returned as is; earlier steps
// are not rolled back. Remote-tracking branches leave HEAD detached.
func checkoutBranch(repo repositoryService, record BranchRecord) error {
	ref := record.RefName()

	hash, err := repo.ResolveRef(ref)
	if err != nil {
		return &CheckoutError{Ref: ref.String(), Step: checkoutStepResolve, Err: err}
	}
	if err := repo.CheckoutTree(hash); err != nil {
		return &CheckoutError{Ref: ref.String(), Step: checkoutStepMaterialize, Err: err}
	}
	if err := repo.SetHead(ref, hash); err != nil {
		return &CheckoutError{Ref: ref.String(), Step: checkoutStepSetHead, Err: err}
	}
	slog.Info("checked out branch",
		slog.String("ref", ref.String()),
		slog.String("hash", hash.String()),
	)
	return nil
}
