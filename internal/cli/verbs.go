package cli

import (
	"errors"
	"fmt"

	"github.com/runoshun/taskwatch/internal/domain"
	"github.com/runoshun/taskwatch/internal/usecase"
	"github.com/spf13/cobra"
)

// after selects what a verb prints once it succeeds.
type after int

const (
	printNothing after = iota
	printTasks         // Task tree of the repository
	printStates        // State graph
	printRepos         // Repository list
)

// verb is one positional-argument command.
// Fields are ordered to minimize memory padding.
type verb struct {
	run     func(cmd *cobra.Command, e *env, a verbArgs) error
	setup   func(cmd *cobra.Command) // Registers extra flags (optional)
	name    string
	short   string
	long    string
	group   string
	aliases []string
	params  []param
	after   after
}

// newVerbCommand builds the cobra command for v.
func newVerbCommand(e *env, v verb) *cobra.Command {
	use := v.name
	if u := usage(v.params); u != "" {
		use += " " + u
	}

	cmd := &cobra.Command{
		Use:     use,
		Short:   v.short,
		Long:    v.long,
		Aliases: v.aliases,
		GroupID: v.group,
		Args: func(_ *cobra.Command, args []string) error {
			_, err := parseArgs(v.params, args)
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := parseArgs(v.params, args)
			if err != nil {
				return err
			}
			if err := v.run(cmd, e, a); err != nil {
				if errors.Is(err, errCanceled) {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Canceled.")
					return nil
				}
				return err
			}
			return e.print(cmd, v.after)
		},
	}
	if v.setup != nil {
		v.setup(cmd)
	}
	return cmd
}

// print writes the listing selected by what.
func (e *env) print(cmd *cobra.Command, what after) error {
	switch what {
	case printTasks:
		return e.printTaskList(cmd, usecase.ListTasksInput{
			Repository: e.repository(),
			ShowDone:   e.display().ShowDone,
		})
	case printStates:
		out, err := e.c.ListStatesUseCase().Execute(cmd.Context(), usecase.ListStatesInput{})
		if err != nil {
			return err
		}
		e.printer(cmd).States(out.States)
	case printRepos:
		out, err := e.c.ListRepositoriesUseCase().Execute(cmd.Context(), usecase.ListRepositoriesInput{})
		if err != nil {
			return err
		}
		e.printer(cmd).Repositories(out.Repositories, out.Current)
	}
	return nil
}

func (e *env) printTaskList(cmd *cobra.Command, in usecase.ListTasksInput) error {
	out, err := e.c.ListTasksUseCase().Execute(cmd.Context(), in)
	if err != nil {
		return err
	}
	p := e.printer(cmd)
	p.Header(out.Repository)
	p.Tree(out.Tasks)
	return nil
}

func (e *env) printer(cmd *cobra.Command) *printer {
	return newPrinter(cmd.OutOrStdout(), e.display())
}

// verbs returns every positional-argument command.
func verbs() []verb {
	var all []verb
	all = append(all, taskVerbs()...)
	all = append(all, stateVerbs()...)
	all = append(all, repositoryVerbs()...)
	return all
}

func taskVerbs() []verb {
	var (
		listAll  bool
		listTags []string
	)

	return []verb{
		{
			name:   "add",
			short:  "Add a root task with the default priority",
			group:  groupTask,
			params: []param{required("name", paramString)},
			after:  printTasks,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				_, err := e.c.NewTaskUseCase().Execute(cmd.Context(), usecase.NewTaskInput{
					Repository: e.repository(),
					Name:       a.Text("name"),
					Priority:   domain.PriorityDefault,
				})
				return err
			},
		},
		{
			name:   "addp",
			short:  "Add a root task with a priority (0 = top, 4 = last)",
			group:  groupTask,
			params: []param{required("name", paramString), required("priority", paramInt)},
			after:  printTasks,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				_, err := e.c.NewTaskUseCase().Execute(cmd.Context(), usecase.NewTaskInput{
					Repository: e.repository(),
					Name:       a.Text("name"),
					Priority:   domain.Priority(a.Int("priority")),
				})
				return err
			},
		},
		{
			name:   "addsub",
			short:  "Add a sub-task under an existing task",
			group:  groupTask,
			params: []param{required("parent", paramInt), required("name", paramString)},
			after:  printTasks,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				parent := a.Int("parent")
				_, err := e.c.NewTaskUseCase().Execute(cmd.Context(), usecase.NewTaskInput{
					Repository:  e.repository(),
					ParentIndex: &parent,
					Name:        a.Text("name"),
					Priority:    domain.PriorityDefault,
				})
				return err
			},
		},
		{
			name:   "attach",
			short:  "Move a task under another task",
			group:  groupTask,
			params: []param{required("task", paramInt), required("parent", paramInt)},
			after:  printTasks,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				_, err := e.c.AttachTaskUseCase().Execute(cmd.Context(), usecase.AttachTaskInput{
					Repository: e.repository(),
					Index:      a.Int("task"),
					Parent:     a.Int("parent"),
				})
				return err
			},
		},
		{
			name:   "detach",
			short:  "Turn a sub-task into a root task",
			group:  groupTask,
			params: []param{required("task", paramInt)},
			after:  printTasks,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				_, err := e.c.DetachTaskUseCase().Execute(cmd.Context(), usecase.DetachTaskInput{
					Repository: e.repository(),
					Index:      a.Int("task"),
				})
				return err
			},
		},
		{
			name:  "delete",
			short: "Delete a task together with its sub-tasks",
			long: `Delete a task together with its sub-tasks.

Deleting a task that has sub-tasks asks for confirmation unless --yes is given.
Indices of deleted tasks are never reused.`,
			aliases: []string{"rm"},
			group:   groupTask,
			params:  []param{required("task", paramInt)},
			after:   printTasks,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				index := a.Int("task")
				shown, err := e.c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{
					Repository: e.repository(),
					Index:      index,
				})
				if err != nil {
					return err
				}
				if n := len(domain.Flatten(shown.Task.SubTasks)); n > 0 {
					if err := e.confirm(fmt.Sprintf("Delete task #%d and its %d sub-tasks?", index, n)); err != nil {
						return err
					}
				}
				_, err = e.c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{
					Repository: e.repository(),
					Index:      index,
				})
				return err
			},
		},
		{
			name:   "name",
			short:  "Rename a task",
			group:  groupTask,
			params: []param{required("task", paramInt), required("name", paramString)},
			after:  printTasks,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				_, err := e.c.RenameTaskUseCase().Execute(cmd.Context(), usecase.RenameTaskInput{
					Repository: e.repository(),
					Index:      a.Int("task"),
					Name:       a.Text("name"),
				})
				return err
			},
		},
		markVerb("done", "Mark a task and all its sub-tasks done", false),
		markVerb("undone", "Clear the done mark of a task", true),
		tagVerb("tag+", "Add a tag to a task", false),
		tagVerb("tag-", "Remove a tag from a task", true),
		priorityVerb("p+", "Raise the priority of a task by one step", usecase.PriorityRaise),
		priorityVerb("p-", "Lower the priority of a task by one step", usecase.PriorityLower),
		{
			name:   "pset",
			short:  "Set the priority of a task (0 = top, 4 = last)",
			group:  groupTask,
			params: []param{required("task", paramInt), required("priority", paramInt)},
			after:  printTasks,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				_, err := e.c.ChangePriorityUseCase().Execute(cmd.Context(), usecase.ChangePriorityInput{
					Repository: e.repository(),
					Index:      a.Int("task"),
					Change:     usecase.PrioritySet,
					Priority:   domain.Priority(a.Int("priority")),
				})
				return err
			},
		},
		{
			name:    "list",
			short:   "Print the task tree",
			aliases: []string{"ls"},
			group:   groupTask,
			setup: func(cmd *cobra.Command) {
				cmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include tasks marked done")
				cmd.Flags().StringArrayVar(&listTags, "tag", nil, "Show only root tasks with this tag (repeatable)")
			},
			run: func(cmd *cobra.Command, e *env, _ verbArgs) error {
				return e.printTaskList(cmd, usecase.ListTasksInput{
					Repository: e.repository(),
					Tags:       listTags,
					ShowDone:   listAll || e.display().ShowDone,
				})
			},
		},
		{
			name:   "show",
			short:  "Show a task with its tags and state history",
			group:  groupTask,
			params: []param{required("task", paramInt)},
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				out, err := e.c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{
					Repository: e.repository(),
					Index:      a.Int("task"),
				})
				if err != nil {
					return err
				}
				p := e.printer(cmd)
				p.Task(out.Task)
				p.Tags(out.Task)
				p.History(out.History)
				return nil
			},
		},
		{
			name:   "openst",
			short:  "Start tracking the lifecycle of a task in the open state",
			group:  groupTask,
			params: []param{required("task", paramInt), optional("note", paramString, "")},
			after:  printTasks,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				_, err := e.c.OpenTaskStateUseCase().Execute(cmd.Context(), usecase.TaskStateInput{
					Repository: e.repository(),
					Index:      a.Int("task"),
					Note:       a.Text("note"),
				})
				return err
			},
		},
		{
			name:   "clearst",
			short:  "Drop the state history of a task",
			group:  groupTask,
			params: []param{required("task", paramInt)},
			after:  printTasks,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				_, err := e.c.ClearTaskStateUseCase().Execute(cmd.Context(), usecase.TaskStateInput{
					Repository: e.repository(),
					Index:      a.Int("task"),
				})
				return err
			},
		},
		{
			name:   "notest",
			short:  "Replace the note of the current state of a task",
			group:  groupTask,
			params: []param{required("task", paramInt), required("note", paramString)},
			after:  printTasks,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				_, err := e.c.NoteTaskStateUseCase().Execute(cmd.Context(), usecase.TaskStateInput{
					Repository: e.repository(),
					Index:      a.Int("task"),
					Note:       a.Text("note"),
				})
				return err
			},
		},
		{
			name:   "nextst",
			short:  "Move a task to one of the next states of its current state",
			group:  groupTask,
			params: []param{required("task", paramInt), required("state", paramString), optional("note", paramString, "")},
			after:  printTasks,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				_, err := e.c.MoveTaskStateUseCase().Execute(cmd.Context(), usecase.TaskStateInput{
					Repository: e.repository(),
					Index:      a.Int("task"),
					State:      a.Text("state"),
					Note:       a.Text("note"),
				})
				return err
			},
		},
		{
			name:   "whatnext",
			short:  "List the states a task can move to",
			group:  groupTask,
			params: []param{required("task", paramInt)},
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				out, err := e.c.WhatNextUseCase().Execute(cmd.Context(), usecase.WhatNextInput{
					Repository: e.repository(),
					Index:      a.Int("task"),
				})
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				_, _ = fmt.Fprintf(w, "Current state: %s\n", out.Current.State)
				if len(out.Next) == 0 {
					_, _ = fmt.Fprintln(w, "No next states.")
					return nil
				}
				for _, s := range out.Next {
					_, _ = fmt.Fprintf(w, "    %s\n", s.Name)
				}
				return nil
			},
		},
	}
}

func markVerb(name, short string, undone bool) verb {
	return verb{
		name:   name,
		short:  short,
		group:  groupTask,
		params: []param{required("task", paramInt)},
		after:  printTasks,
		run: func(cmd *cobra.Command, e *env, a verbArgs) error {
			_, err := e.c.MarkDoneUseCase().Execute(cmd.Context(), usecase.MarkDoneInput{
				Repository: e.repository(),
				Index:      a.Int("task"),
				Undone:     undone,
			})
			return err
		},
	}
}

func tagVerb(name, short string, remove bool) verb {
	return verb{
		name:   name,
		short:  short,
		group:  groupTask,
		params: []param{required("task", paramInt), required("tag", paramString)},
		after:  printTasks,
		run: func(cmd *cobra.Command, e *env, a verbArgs) error {
			_, err := e.c.EditTagsUseCase().Execute(cmd.Context(), usecase.EditTagsInput{
				Repository: e.repository(),
				Index:      a.Int("task"),
				Tag:        a.Text("tag"),
				Remove:     remove,
			})
			return err
		},
	}
}

func priorityVerb(name, short string, change usecase.PriorityChange) verb {
	return verb{
		name:   name,
		short:  short,
		group:  groupTask,
		params: []param{required("task", paramInt)},
		after:  printTasks,
		run: func(cmd *cobra.Command, e *env, a verbArgs) error {
			_, err := e.c.ChangePriorityUseCase().Execute(cmd.Context(), usecase.ChangePriorityInput{
				Repository: e.repository(),
				Index:      a.Int("task"),
				Change:     change,
			})
			return err
		},
	}
}

func stateVerbs() []verb {
	return []verb{
		{
			name:  "states",
			short: "Print the state graph",
			group: groupState,
			after: printStates,
			run:   func(*cobra.Command, *env, verbArgs) error { return nil },
		},
		{
			name:   "stadd",
			short:  "Define a new state",
			group:  groupState,
			params: []param{required("state", paramString)},
			after:  printStates,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				_, err := e.c.AddStateUseCase().Execute(cmd.Context(), usecase.AddStateInput{Name: a.Text("state")})
				return err
			},
		},
		{
			name:   "stsetnext",
			short:  "Allow moving from one existing state to another",
			group:  groupState,
			params: []param{required("state", paramString), required("next", paramString)},
			after:  printStates,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				_, err := e.c.LinkStatesUseCase().Execute(cmd.Context(), usecase.LinkStatesInput{
					From: a.Text("state"),
					To:   a.Text("next"),
				})
				return err
			},
		},
		{
			name:   "staddnext",
			short:  "Define a new state reachable from an existing one",
			group:  groupState,
			params: []param{required("state", paramString), required("next", paramString)},
			after:  printStates,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				_, err := e.c.AddNextStateUseCase().Execute(cmd.Context(), usecase.LinkStatesInput{
					From: a.Text("state"),
					To:   a.Text("next"),
				})
				return err
			},
		},
	}
}

func repositoryVerbs() []verb {
	return []verb{
		{
			name:  "repos",
			short: "List repositories",
			group: groupRepository,
			after: printRepos,
			run:   func(*cobra.Command, *env, verbArgs) error { return nil },
		},
		{
			name:   "repoadd",
			short:  "Register a repository (default path: <data dir>/<name>.tasks)",
			group:  groupRepository,
			params: []param{required("repo", paramString), optional("path", paramString, "")},
			after:  printRepos,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				_, err := e.c.CreateRepositoryUseCase().Execute(cmd.Context(), usecase.RepositoryInput{
					Name: a.Text("repo"),
					Path: a.Text("path"),
				})
				return err
			},
		},
		{
			name:   "reposet",
			short:  "Switch the current repository",
			group:  groupRepository,
			params: []param{required("repo", paramString)},
			after:  printRepos,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				_, err := e.c.SetCurrentRepositoryUseCase().Execute(cmd.Context(), usecase.RepositoryInput{Name: a.Text("repo")})
				return err
			},
		},
		{
			name:   "repodel",
			short:  "Unregister a repository; its task file stays on disk",
			group:  groupRepository,
			params: []param{required("repo", paramString)},
			after:  printRepos,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				name := a.Text("repo")
				if err := e.confirm(fmt.Sprintf("Delete repository '%s'?", name)); err != nil {
					return err
				}
				_, err := e.c.DeleteRepositoryUseCase().Execute(cmd.Context(), usecase.RepositoryInput{Name: name})
				return err
			},
		},
		{
			name:   "repopath",
			short:  "Change the task file of a repository (no path = default location)",
			group:  groupRepository,
			params: []param{required("repo", paramString), optional("path", paramString, "")},
			after:  printRepos,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				_, err := e.c.SetRepositoryPathUseCase().Execute(cmd.Context(), usecase.RepositoryInput{
					Name: a.Text("repo"),
					Path: a.Text("path"),
				})
				return err
			},
		},
		{
			name:  "repoimport",
			short: "Import a task file saved by an older version",
			long: `Import a task file saved by an older version into a repository.

The target repository is created when it does not exist; path sets its
task file. Imported tasks get new indices and are appended to the tasks
already there. Formats: oldinfra (default), ver1.`,
			group: groupRepository,
			params: []param{
				required("from", paramString),
				required("repo", paramString),
				optional("path", paramString, ""),
				optional("format", paramString, ""),
			},
			after: printRepos,
			run: func(cmd *cobra.Command, e *env, a verbArgs) error {
				out, err := e.c.ImportRepositoryUseCase().Execute(cmd.Context(), usecase.ImportRepositoryInput{
					From:       a.Text("from"),
					Repository: a.Text("repo"),
					Path:       a.Text("path"),
					Format:     a.Text("format"),
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks into '%s'\n", out.Imported, a.Text("repo"))
				return nil
			},
		},
	}
}
