// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Id identifies a known issue in the catalog.
type Id int

const (
	EnvNotFoundId Id = iota + 1
	InterpreterNotFoundId
	StepFailedId
	ConfigLoadFailedId
)

// MarkdownMsg is markdown text rendered to the terminal via glamour.
type MarkdownMsg string

type Issue struct {
	id    Id          // ID used to look up the issue
	mdMsg MarkdownMsg // Markdown text that will be rendered
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	envNotFoundIssue = &Issue{
		id: EnvNotFoundId,
		mdMsg: `
# Environment not found!

The virtual environment directory does not exist, so there is nothing
to launch into.

## Things you can try:
- Provision the environment first:
~~~
$ venvctl setup
~~~

- If you keep the environment somewhere else, point venvctl at it:
~~~
$ venvctl --config /path/to/config.cue run
~~~`,
	}

	interpreterNotFoundIssue = &Issue{
		id: InterpreterNotFoundId,
		mdMsg: `
# Python interpreter not found!

The configured interpreter could not be resolved on this host.

## Things you can try:
- Install it through your system package manager:
~~~
$ sudo apt-get install python3 python3-venv python3-pip
~~~

- Or set a different interpreter in your config file:
~~~cue
python: "/usr/local/bin/python3.12"
~~~`,
	}

	stepFailedIssue = &Issue{
		id: StepFailedId,
		mdMsg: `
# Provisioning step failed!

A provisioning step exited with a non-zero status. The output above is
the failing tool's own diagnostic; venvctl does not retry or roll back.

## Things you can try:
- Re-run with verbose output to see the exact command:
~~~
$ venvctl --verbose setup
~~~

- System package steps need privilege; run setup with sudo if the
  failure mentions permissions.`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Configuration could not be loaded!

Your config file exists but could not be parsed or validated.

## Things you can try:
- Check the file against the expected schema:
~~~
$ venvctl config show
~~~

- Regenerate a default config file:
~~~
$ venvctl config init
~~~`,
	}

	catalog = map[Id]*Issue{
		EnvNotFoundId:         envNotFoundIssue,
		InterpreterNotFoundId: interpreterNotFoundIssue,
		StepFailedId:          stepFailedIssue,
		ConfigLoadFailedId:    configLoadFailedIssue,
	}
)

// Get returns the catalog issue for the given id, or nil if unknown.
func Get(id Id) *Issue {
	return catalog[id]
}

// Ids returns all known issue ids in ascending order.
func Ids() []Id {
	ids := maps.Keys(catalog)
	slices.Sort(ids)
	return ids
}
