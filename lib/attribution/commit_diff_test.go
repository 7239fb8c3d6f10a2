package attribution

import (
	"context"
	"testing"

	"github.com/bloomberg/go-testgroup"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/pescuma/tally/lib/gitlab"
	"github.com/pescuma/tally/lib/model"
)

func TestDiffCommit(t *testing.T) {
	testgroup.RunInParallel(t, &DiffCommitTests{})
}

type DiffCommitTests struct {
}

func (g *DiffCommitTests) AttributesAllChangedFiles(t *testgroup.T) {
	client := newFakeClient()
	client.addCommit("abc123", testTime, "parent1")
	client.addFile("parent1", "a.go", "a\nb\n")
	client.addFile("abc123", "a.go", "a\nb\nc\n")
	client.addFile("abc123", "b.py", "print(1)\n")
	client.addFile("parent1", "c.go", "x\ny\nz\n")
	client.diffs["abc123"] = []*gitlab.Diff{
		{OldPath: "a.go", NewPath: "a.go"},
		{OldPath: "b.py", NewPath: "b.py", NewFile: true},
		{OldPath: "c.go", NewPath: "c.go", DeletedFile: true},
	}

	result, err := newTestAttributor(t, client).DiffCommit(context.Background(), newTestCommit(), nil)

	t.NoError(err)
	t.Len(result.Files, 3)
	t.Empty(result.Skipped)

	byPath := lo.Associate(result.Files, func(f *model.File) (string, *model.File) {
		return f.Path, f
	})

	t.Equal(1, byPath["a.go"].Additions)
	t.Equal(1, byPath["b.py"].Additions)
	t.Equal(-3, byPath["c.go"].Additions)
}

func (g *DiffCommitTests) CollectsSkippedFiles(t *testgroup.T) {
	client := newFakeClient()
	client.addCommit("abc123", testTime, "parent1")
	client.addFile("abc123", "a.go", "a\n")
	client.diffs["abc123"] = []*gitlab.Diff{
		{OldPath: "a.go", NewPath: "a.go", NewFile: true},
		{OldPath: "logo.png", NewPath: "logo.png", NewFile: true},
	}

	result, err := newTestAttributor(t, client).DiffCommit(context.Background(), newTestCommit(), nil)

	t.NoError(err)
	t.Len(result.Files, 1)
	t.Len(result.Skipped, 1)
	t.Equal("logo.png", result.Skipped[0].Path)
	t.True(errors.Is(result.Skipped[0].Reason, ErrInvalidFile))
}

func (g *DiffCommitTests) AppliesPathFilters(t *testgroup.T) {
	client := newFakeClient()
	client.addCommit("abc123", testTime, "parent1")
	client.addFile("abc123", "lib/a.go", "a\n")
	client.addFile("abc123", "cmd/b.go", "b\n")
	client.diffs["abc123"] = []*gitlab.Diff{
		{OldPath: "lib/a.go", NewPath: "lib/a.go", NewFile: true},
		{OldPath: "cmd/b.go", NewPath: "cmd/b.go", NewFile: true},
	}

	result, err := newTestAttributor(t, client).DiffCommit(context.Background(), newTestCommit(),
		&DiffCommitOptions{PathFilters: []string{"lib/**"}})

	t.NoError(err)
	t.Len(result.Files, 1)
	t.Equal("lib/a.go", result.Files[0].Path)
}

func (g *DiffCommitTests) RejectsMergeCommitsAsAWhole(t *testgroup.T) {
	client := newFakeClient()
	client.addCommit("abc123", testTime, "parent1", "parent2")
	client.diffs["abc123"] = []*gitlab.Diff{
		{OldPath: "a.go", NewPath: "a.go"},
	}

	_, err := newTestAttributor(t, client).DiffCommit(context.Background(), newTestCommit(), nil)

	t.Error(err)
	t.True(errors.Is(err, ErrMergeCommit))
}

func (g *DiffCommitTests) RenamedFileIsReconciledAgainstNewPath(t *testgroup.T) {
	client := newFakeClient()
	client.addCommit("abc123", testTime, "parent1")
	client.addFile("abc123", "new.go", "a\nb\n")
	client.diffs["abc123"] = []*gitlab.Diff{
		{OldPath: "old.go", NewPath: "new.go", RenamedFile: true},
	}

	result, err := newTestAttributor(t, client).DiffCommit(context.Background(), newTestCommit(), nil)

	t.NoError(err)
	t.Len(result.Files, 1)

	// new.go is not in the parent, so the rename counts as an addition
	t.Equal(2, result.Files[0].Additions)
}
