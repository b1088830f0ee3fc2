package git

import (
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// RepositoryExists reports whether the client directory holds an initialized
// repository.
func (c *Client) RepositoryExists() bool {
	_, err := gogit.PlainOpen(c.dir)
	return err == nil
}

// BranchExists reports whether a local branch with the given name exists.
func (c *Client) BranchExists(name string) bool {
	repo, err := gogit.PlainOpen(c.dir)
	if err != nil {
		return false
	}
	_, err = repo.Reference(plumbing.NewBranchReferenceName(name), true)
	return err == nil
}

// HeadTreesEqual reports whether two branches point at byte-identical file
// trees. Equal head tree hashes are exactly content identity, so this is the
// quiet two-ref diff the degeneracy check needs.
func (c *Client) HeadTreesEqual(a, b string) (bool, error) {
	repo, err := gogit.PlainOpen(c.dir)
	if err != nil {
		return false, fmt.Errorf("failed to open repository: %w", err)
	}

	treeA, err := headTreeHash(repo, a)
	if err != nil {
		return false, err
	}
	treeB, err := headTreeHash(repo, b)
	if err != nil {
		return false, err
	}
	return treeA == treeB, nil
}

func headTreeHash(repo *gogit.Repository, branch string) (plumbing.Hash, error) {
	ref, err := repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve branch %s: %w", branch, err)
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to load commit for %s: %w", branch, err)
	}
	return commit.TreeHash, nil
}
