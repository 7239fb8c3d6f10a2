package attribution

import (
	"context"
	"strings"
	"time"

	"github.com/hhatto/gocloc"
	"github.com/pkg/errors"

	"github.com/pescuma/tally/lib/consoles"
	"github.com/pescuma/tally/lib/gitlab"
	"github.com/pescuma/tally/lib/ignore_rules"
	"github.com/pescuma/tally/lib/linediff"
	"github.com/pescuma/tally/lib/model"
	"github.com/pescuma/tally/lib/skills"
)

// Attributor computes, for one file in one commit, the net number of lines
// the file gained or lost, fetching all data from the remote server.
//
// The claimed change type is a hint only: what was actually found at the
// commit and at its parent always wins, since remote change metadata can be
// stale relative to the true contents.
type Attributor struct {
	console consoles.Console
	client  gitlab.Client
	ignore  *ignore_rules.IgnoreRules

	now       func() time.Time
	clocLangs *gocloc.DefinedLanguages
}

type Options struct {
	// Now is the reference time for the attribution window. Commits are
	// only attributed inside the month it falls in.
	Now func() time.Time
}

func New(console consoles.Console, client gitlab.Client, ignore *ignore_rules.IgnoreRules, opts *Options) *Attributor {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Attributor{
		console:   console,
		client:    client,
		ignore:    ignore,
		now:       opts.Now,
		clocLangs: gocloc.NewDefinedLanguages(),
	}
}

// DiffFile resolves the before/after contents of path in commit and returns
// a File with the signed line delta in Additions. The commit's metadata is
// loaded and checked first: merges and commits outside the current
// attribution month are rejected before any content is fetched.
func (a *Attributor) DiffFile(ctx context.Context, commit *model.Commit, path string, change model.FileChangeType) (*model.File, error) {
	skill, err := a.validate(commit, path)
	if err != nil {
		return nil, err
	}

	err = a.loadCommit(ctx, commit)
	if err != nil {
		return nil, errors.Wrapf(err, "%v at %v", path, commit.Revision)
	}

	return a.diffLoaded(ctx, commit, path, skill, change), nil
}

func (a *Attributor) validate(commit *model.Commit, path string) (string, error) {
	if a.ignore.IgnoreFile(path) {
		return "", errors.Wrapf(ErrInvalidFile, "%v at %v", path, commit.Revision)
	}

	skill, ok := skills.GetSkill(path)
	if !ok || a.ignore.IgnoreSkill(skill) {
		return "", errors.Wrapf(ErrInvalidFile, "%v at %v", path, commit.Revision)
	}

	return skill, nil
}

// loadCommit fills the commit from remote metadata and rejects commits
// that can't be attributed.
func (a *Attributor) loadCommit(ctx context.Context, commit *model.Commit) error {
	meta, err := a.client.GetCommit(ctx, commit.Project.ID, commit.Revision)
	if err != nil {
		return errors.Wrapf(ErrCommitDataUnavailable, "%v", err)
	}
	if meta == nil {
		return ErrCommitDataUnavailable
	}

	commit.Parents = meta.ParentIDs
	commit.Date = meta.CreatedAt
	commit.AuthorName = meta.AuthorName
	commit.Title = meta.Title

	if commit.IsMerge() {
		return ErrMergeCommit
	}

	now := a.now()
	if commit.Date.Year() != now.Year() || commit.Date.Month() != now.Month() {
		return ErrOutOfWindow
	}

	return nil
}

// diffLoaded assumes the commit metadata is already loaded and checked.
func (a *Attributor) diffLoaded(ctx context.Context, commit *model.Commit, path string, skill string, change model.FileChangeType) *model.File {
	newFile := a.fetch(ctx, commit.Project, skill, commit.Revision, path)

	if change == model.FileCreated || commit.IsInitial() {
		newFile.Additions = linediff.CountLines(newFile.Contents)
		a.computeBlame(newFile)
		return newFile
	}

	oldFile := a.fetch(ctx, commit.Project, skill, commit.Parents[0], path)

	switch {
	case change == model.FileDeleted || !newFile.Exists:
		oldFile.Additions = -linediff.CountLines(oldFile.Contents)
		return oldFile

	case !oldFile.Exists:
		// The server said modified, but the file is not in the parent
		newFile.Additions = linediff.CountLines(newFile.Contents)

	default:
		for _, h := range linediff.Hunks(oldFile.Contents, newFile.Contents) {
			newFile.Additions += h.NewLines - h.OldLines
		}
	}

	a.computeBlame(newFile)
	return newFile
}

// FetchFileContent fetches the contents of path as it existed at the
// commit. Failures never propagate: the file comes back marked as not
// existing at that revision, which is meaningful on its own.
func (a *Attributor) FetchFileContent(ctx context.Context, commit *model.Commit, path string) *model.File {
	skill, _ := skills.GetSkill(path)
	return a.fetch(ctx, commit.Project, skill, commit.Revision, path)
}

func (a *Attributor) fetch(ctx context.Context, proj *model.Project, skill string, revision string, path string) *model.File {
	result := model.NewFile(proj, path, skill)

	contents, err := a.client.GetFileContent(ctx, proj.ID, path, revision)
	switch {
	case gitlab.IsNotFound(err):
		a.console.Printf("File %v does not exist at %v\n", path, revision)
		return result

	case err != nil:
		a.console.Printf("Error fetching %v at %v: %v\n", path, revision, err)
		return result
	}

	result.SetContents(contents)
	return result
}

func (a *Attributor) computeBlame(file *model.File) {
	if !file.Exists {
		return
	}

	lang, ok := a.clocLangs.Langs[file.Skill]
	if !ok {
		return
	}

	info := gocloc.AnalyzeReader(file.Path, lang, strings.NewReader(file.Contents), gocloc.NewClocOptions())

	file.Blame = &model.Blame{
		Code:    int(info.Code),
		Comment: int(info.Comments),
		Blank:   int(info.Blanks),
	}
}
