package attribution

import (
	"context"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-set/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/pescuma/tally/lib/gitlab"
	"github.com/pescuma/tally/lib/model"
	"github.com/pescuma/tally/lib/utils"
)

type DiffCommitOptions struct {
	// PathFilters keeps only paths matching at least one of these globs
	// (doublestar syntax). Empty means everything.
	PathFilters []string
}

type CommitResult struct {
	Commit  *model.Commit
	Files   []*model.File
	Skipped []*SkippedFile
}

type SkippedFile struct {
	Path   string
	Reason error
}

// DiffCommit attributes every file changed by the commit. Per-file
// rejections don't abort the whole commit: they are collected in Skipped
// and reported at the end. Files are processed concurrently, since each
// one is an independent pipeline.
func (a *Attributor) DiffCommit(ctx context.Context, commit *model.Commit, opts *DiffCommitOptions) (*CommitResult, error) {
	if opts == nil {
		opts = &DiffCommitOptions{}
	}

	err := a.loadCommit(ctx, commit)
	if err != nil {
		return nil, errors.Wrapf(err, "commit %v", commit.Revision)
	}

	diffs, err := a.client.GetCommitDiffs(ctx, commit.Project.ID, commit.Revision)
	if err != nil {
		return nil, errors.Wrapf(ErrCommitDataUnavailable, "commit %v: %v", commit.Revision, err)
	}

	diffs = lo.Filter(diffs, func(d *gitlab.Diff, _ int) bool {
		return matchesAny(d.NewPath, opts.PathFilters)
	})

	result := &CommitResult{
		Commit: commit,
	}

	a.console.Printf("Attributing %v file(s) of commit %v...\n", len(diffs), commit.Revision)

	bar := utils.NewProgressBar(len(diffs))

	type outcome struct {
		path    string
		file    *model.File
		skipped *SkippedFile
	}

	group := utils.ParallelFor(diffs, func(d *gitlab.Diff) (outcome, error) {
		path := d.NewPath
		change := changeType(d)

		skill, err := a.validate(commit, path)
		if err != nil {
			return outcome{path: path, skipped: &SkippedFile{Path: path, Reason: err}}, nil
		}

		return outcome{path: path, file: a.diffLoaded(ctx, commit, path, skill, change)}, nil
	})

	for out := range group.Output {
		bar.Describe(utils.TruncateFilename(out.path))

		if out.skipped != nil {
			result.Skipped = append(result.Skipped, out.skipped)
		} else {
			result.Files = append(result.Files, out.file)
		}

		_ = bar.Add(1)
	}

	if err, ok := <-group.Err; ok {
		return nil, err
	}

	a.printSummary(result)

	return result, nil
}

func (a *Attributor) printSummary(result *CommitResult) {
	added := 0
	removed := 0
	touched := set.New[string](10)

	for _, f := range result.Files {
		if f.Additions >= 0 {
			added += f.Additions
		} else {
			removed += -f.Additions
		}

		touched.Insert(f.Skill)
	}

	names := touched.Slice()
	sort.Strings(names)

	a.console.Printf("Attributed %v file(s): %v line(s) added, %v removed (%v)\n",
		len(result.Files),
		humanize.Comma(int64(added)),
		humanize.Comma(int64(removed)),
		strings.Join(names, ", "))

	for _, s := range result.Skipped {
		a.console.Printf("Skipped %v: %v\n", s.Path, s.Reason)
	}
}

func changeType(d *gitlab.Diff) model.FileChangeType {
	switch {
	case d.NewFile:
		return model.FileCreated
	case d.DeletedFile:
		return model.FileDeleted
	case d.RenamedFile:
		return model.FileRenamed
	default:
		return model.FileModified
	}
}

func matchesAny(path string, filters []string) bool {
	if len(filters) == 0 {
		return true
	}

	for _, f := range filters {
		if ok, _ := doublestar.Match(f, path); ok {
			return true
		}
	}

	return false
}
