package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/pescuma/tally/lib/attribution"
	"github.com/pescuma/tally/lib/consoles"
	"github.com/pescuma/tally/lib/gitlab"
	"github.com/pescuma/tally/lib/ignore_rules"
	"github.com/pescuma/tally/lib/model"
	"github.com/pescuma/tally/lib/storages"
	"github.com/pescuma/tally/lib/storages/orm"
	"github.com/pescuma/tally/lib/utils"
)

// Workspace ties the pieces together: it owns the storage, builds the
// remote client from stored config and exposes the operations the CLI
// and the server call.
type Workspace struct {
	console consoles.Console
	storage storages.Storage
}

func NewWorkspace(file string) (*Workspace, error) {
	if file == "" {
		if _, err := os.Stat("./.tally"); err == nil {
			file = "./.tally/tally.sqlite"
		} else {
			file = "~/.tally/tally.sqlite"
		}
	}

	console := consoles.NewStdOutConsole()

	var storage storages.Storage
	var err error
	switch {
	case file == ":memory:":
		storage, err = orm.NewGormStorage(orm.WithSqliteInMemory(), console)

	case strings.HasSuffix(file, ".sqlite"):
		file, err = utils.PathAbs(file)
		if err != nil {
			return nil, err
		}

		err = createWorkspaceDir(file)
		if err != nil {
			return nil, err
		}

		storage, err = orm.NewGormStorage(orm.WithSqlite(file), console)

	default:
		return nil, fmt.Errorf("unknown storage type for file %v", file)
	}
	if err != nil {
		return nil, err
	}

	return &Workspace{
		console: console,
		storage: storage,
	}, nil
}

func createWorkspaceDir(file string) error {
	path := filepath.Dir(file)

	if _, err := os.Stat(path); err != nil {
		fmt.Printf("Creating workspace at %v\n", path)
		err = os.MkdirAll(path, 0o700)
		if err != nil {
			return err
		}
	}

	return nil
}

func (w *Workspace) Close() error {
	return w.storage.Close()
}

func (w *Workspace) Console() consoles.Console {
	return w.console
}

func (w *Workspace) SetConfigParameter(config string, value string) error {
	cfg, err := w.storage.LoadConfig()
	if err != nil {
		return err
	}

	(*cfg)[config] = value

	return w.storage.WriteConfig(cfg)
}

func (w *Workspace) IgnoreAddFileRule(rule string) error {
	rules, err := ignore_rules.New(w.console, w.storage)
	if err != nil {
		return err
	}

	return rules.AddFileRule(rule)
}

func (w *Workspace) IgnoreAddSkillRule(rule string) error {
	rules, err := ignore_rules.New(w.console, w.storage)
	if err != nil {
		return err
	}

	return rules.AddSkillRule(rule)
}

// DiffFile attributes one (commit, path) pair and stores the resulting
// delta.
func (w *Workspace) DiffFile(ctx context.Context, projectRef string, revision string, path string,
	change model.FileChangeType,
) (*model.File, error) {
	attributor, err := w.attributor()
	if err != nil {
		return nil, err
	}

	proj, err := w.loadProject(ctx, projectRef)
	if err != nil {
		return nil, err
	}

	commit := model.NewCommit(proj, revision)

	file, err := attributor.DiffFile(ctx, commit, path, change)
	if err != nil {
		return nil, err
	}

	err = w.storage.WriteFileDeltas([]*model.FileDelta{deltaFromFile(commit, file)})
	if err != nil {
		return nil, err
	}

	return file, nil
}

// DiffCommit attributes all files changed by a commit and stores the
// resulting deltas. Per-file rejections are reported but do not abort
// the batch.
func (w *Workspace) DiffCommit(ctx context.Context, projectRef string, revision string,
	opts *attribution.DiffCommitOptions,
) (*attribution.CommitResult, error) {
	attributor, err := w.attributor()
	if err != nil {
		return nil, err
	}

	proj, err := w.loadProject(ctx, projectRef)
	if err != nil {
		return nil, err
	}

	commit := model.NewCommit(proj, revision)

	result, err := attributor.DiffCommit(ctx, commit, opts)
	if err != nil {
		return nil, err
	}

	deltas := lo.Map(result.Files, func(f *model.File, _ int) *model.FileDelta {
		return deltaFromFile(commit, f)
	})

	err = w.storage.WriteFileDeltas(deltas)
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (w *Workspace) ListFileDeltas(month string) ([]*model.FileDelta, error) {
	deltas, err := w.storage.LoadFileDeltas()
	if err != nil {
		return nil, err
	}

	if month != "" {
		deltas = lo.Filter(deltas, func(d *model.FileDelta, _ int) bool {
			return d.Month == month
		})
	}

	return deltas, nil
}

func (w *Workspace) QueryMonthlyTotals() ([]*storages.MonthlyTotal, error) {
	return w.storage.QueryMonthlyTotals()
}

func (w *Workspace) attributor() (*attribution.Attributor, error) {
	client, err := w.client()
	if err != nil {
		return nil, err
	}

	rules, err := ignore_rules.New(w.console, w.storage)
	if err != nil {
		return nil, err
	}

	return attribution.New(w.console, client, rules, nil), nil
}

func (w *Workspace) client() (gitlab.Client, error) {
	cfg, err := w.storage.LoadConfig()
	if err != nil {
		return nil, err
	}

	opts := gitlab.Options{
		BaseURL: (*cfg)["gitlab.url"],
		Token:   (*cfg)["gitlab.token"],
	}

	if t := (*cfg)["gitlab.timeout"]; t != "" {
		opts.Timeout, err = time.ParseDuration(t)
		if err != nil {
			return nil, fmt.Errorf("invalid gitlab.timeout %v: %v", t, err)
		}
	}

	if opts.BaseURL == "" {
		return nil, fmt.Errorf("gitlab.url is not configured (use: tally config set gitlab.url <url>)")
	}

	return gitlab.NewClient(opts)
}

func (w *Workspace) loadProject(ctx context.Context, ref string) (*model.Project, error) {
	client, err := w.client()
	if err != nil {
		return nil, err
	}

	remote, err := client.GetProject(ctx, ref)
	if err != nil {
		return nil, err
	}

	proj := model.NewProject(remote.ID, remote.Name)
	proj.Namespace = remote.Namespace.FullPath
	proj.Path = remote.Path
	proj.Description = remote.Description
	proj.Tags = remote.Topics

	return proj, nil
}

func deltaFromFile(commit *model.Commit, file *model.File) *model.FileDelta {
	result := model.NewFileDelta(commit.Date.Format("2006-01"), commit.Project.ID, commit.Revision, file.Path)
	result.Skill = file.Skill
	result.Additions = file.Additions
	result.Blame = file.Blame

	return result
}
