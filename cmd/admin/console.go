package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"folio/admin"
	"folio/models"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const helpText = `commands:
  login <email> <password>   sign in
  logout                     sign out
  tab projects|skills|cv     switch tab
  list                       reload the active tab
  new                        open an empty form
  edit <n>                   edit row n of the list
  set <field> <value>        set a form field
  tech add|rm <name>         edit project technologies
  show                       print the open form
  save                       submit the form
  cancel                     close the form
  delete <n>                 delete row n
  upload <path>              replace the CV with a PDF
  cv                         show the current CV
  quit                       exit`

// terminalNotifier prints alerts and reads y/N answers from the console input.
type terminalNotifier struct {
	in  *bufio.Scanner
	out io.Writer
}

func (n *terminalNotifier) Alert(msg string) {
	fmt.Fprintf(n.out, "! %s\n", msg)
}

func (n *terminalNotifier) Confirm(prompt string) bool {
	fmt.Fprintf(n.out, "%s [y/N] ", prompt)
	if !n.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(n.in.Text()))
	return answer == "y" || answer == "yes"
}

type console struct {
	dash *admin.Dashboard
	in   *bufio.Scanner
	out  io.Writer
}

var errQuit = errors.New("quit")

func (c *console) run(ctx context.Context) error {
	if err := c.dash.Open(ctx); err != nil {
		c.printf("! %v\n", err)
	}
	defer c.dash.Close()

	c.printScreen()
	for {
		c.printf("%s> ", c.dash.Tabs.Active())
		if !c.in.Scan() {
			return c.in.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		err := c.exec(ctx, c.in.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			c.printf("error: %v\n", err)
		}
	}
}

func (c *console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *console) exec(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help", "?":
		c.printf("%s\n", helpText)
		return nil
	case "quit", "exit":
		return errQuit
	case "login":
		if len(args) != 2 {
			return errors.New("usage: login <email> <password>")
		}
		if err := c.dash.Login(ctx, args[0], args[1]); err != nil {
			if msg := c.dash.Guard.LoginError(); msg != "" {
				return errors.New(msg)
			}
			return err
		}
		c.printScreen()
		return nil
	}

	if c.dash.Guard.Screen() != admin.ScreenContent {
		return errors.New("please log in first")
	}

	switch cmd {
	case "logout":
		if c.dash.Logout(ctx) {
			c.printScreen()
		}
		return nil
	case "tab":
		if len(args) != 1 {
			return errors.New("usage: tab projects|skills|cv")
		}
		d, err := admin.ParseDomain(args[0])
		if err != nil {
			return err
		}
		if err := c.dash.Tabs.Select(ctx, d); err != nil && !errors.Is(err, admin.ErrStale) {
			return err
		}
		c.printScreen()
		return nil
	case "list":
		if err := c.dash.Tabs.ReloadActive(ctx); err != nil && !errors.Is(err, admin.ErrStale) {
			return err
		}
		c.printScreen()
		return nil
	case "upload":
		return c.upload(ctx, args)
	case "cv":
		if err := c.dash.CV.Reload(ctx); err != nil && !errors.Is(err, admin.ErrStale) {
			return err
		}
		c.printCV()
		return nil
	}

	switch c.dash.Tabs.Active() {
	case admin.DomainProjects:
		return c.execProject(ctx, cmd, args)
	case admin.DomainSkills:
		return c.execSkill(ctx, cmd, args)
	}
	return fmt.Errorf("unknown command %q on the cv tab (try help)", cmd)
}

func (c *console) upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: upload <path>")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if err := c.dash.CV.Upload(ctx, filepath.Base(args[0]), data); err != nil {
		if errors.Is(err, admin.ErrSubmitInFlight) {
			return err
		}
		// Already shown through the notifier.
		return nil
	}
	c.printf("CV uploaded.\n")
	c.printCV()
	return nil
}

func (c *console) execProject(ctx context.Context, cmd string, args []string) error {
	e := c.dash.ProjectEditor
	list := c.dash.Projects

	switch cmd {
	case "new":
		e.OpenCreate()
		c.printProjectDraft()
	case "edit":
		p, err := pick[models.Project](list, args)
		if err != nil {
			return err
		}
		e.OpenEdit(p)
		c.printProjectDraft()
	case "set":
		if len(args) < 1 {
			return errors.New("usage: set <field> <value>")
		}
		return setProjectField(e, args[0], strings.Join(args[1:], " "))
	case "tech":
		if len(args) < 2 {
			return errors.New("usage: tech add|rm <name>")
		}
		name := strings.Join(args[1:], " ")
		var changed bool
		var err error
		switch args[0] {
		case "add":
			changed, err = e.AddTechnology(name)
		case "rm":
			changed, err = e.RemoveTechnology(name)
		default:
			return errors.New("usage: tech add|rm <name>")
		}
		if err != nil {
			return err
		}
		if !changed {
			c.printf("technologies unchanged\n")
		}
		c.printf("technologies: %s\n", strings.Join(e.Draft().Technologies, ", "))
	case "show":
		c.printProjectDraft()
	case "save":
		if err := e.Submit(ctx); err != nil {
			return submitError(err)
		}
		c.printf("Saved.\n")
		c.printScreen()
	case "cancel":
		e.Close()
	case "delete":
		p, err := pick[models.Project](list, args)
		if err != nil {
			return err
		}
		if _, err := list.Delete(ctx, p.ID); err != nil {
			return nil
		}
		c.printScreen()
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

func (c *console) execSkill(ctx context.Context, cmd string, args []string) error {
	e := c.dash.SkillEditor
	list := c.dash.Skills

	switch cmd {
	case "new":
		e.OpenCreate()
		c.printSkillDraft()
	case "edit":
		s, err := pick[models.Skill](list, args)
		if err != nil {
			return err
		}
		e.OpenEdit(s)
		c.printSkillDraft()
	case "set":
		if len(args) < 1 {
			return errors.New("usage: set <field> <value>")
		}
		return setSkillField(e, args[0], strings.Join(args[1:], " "))
	case "show":
		c.printSkillDraft()
	case "save":
		if err := e.Submit(ctx); err != nil {
			return submitError(err)
		}
		c.printf("Saved.\n")
		c.printScreen()
	case "cancel":
		e.Close()
	case "delete":
		s, err := pick[models.Skill](list, args)
		if err != nil {
			return err
		}
		if _, err := list.Delete(ctx, s.ID); err != nil {
			return nil
		}
		c.printScreen()
	default:
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

// submitError keeps validation messages and drops save errors, which the
// notifier already printed.
func submitError(err error) error {
	var verr *models.ValidationError
	if errors.As(err, &verr) || errors.Is(err, admin.ErrSubmitInFlight) || errors.Is(err, admin.ErrEditorClosed) {
		return err
	}
	return nil
}

func setProjectField(e *admin.ProjectEditor, field, value string) error {
	switch field {
	case "title":
		return e.SetTitle(value)
	case "description":
		return e.SetDescription(value)
	case "image", "image_url":
		return e.SetImageURL(value)
	case "github", "github_url":
		return e.SetGithubURL(value)
	case "live", "live_url":
		return e.SetLiveURL(value)
	case "category":
		return e.SetCategory(models.ProjectCategory(value))
	case "featured":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("featured must be true or false")
		}
		return e.SetFeatured(b)
	}
	return fmt.Errorf("unknown project field %q", field)
}

func setSkillField(e *admin.SkillEditor, field, value string) error {
	switch field {
	case "name":
		return e.SetName(value)
	case "category":
		return e.SetCategory(models.SkillCategory(value))
	case "level":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("level must be a number")
		}
		return e.SetLevel(n)
	case "icon":
		return e.SetIcon(value)
	}
	return fmt.Errorf("unknown skill field %q", field)
}

// rowSource is the part of admin.List that pick needs.
type rowSource[T any] interface {
	Items() []T
	Find(id uuid.UUID) (T, bool)
}

// pick resolves a 1-based row number or a record id.
func pick[T any](list rowSource[T], args []string) (T, error) {
	var zero T
	if len(args) != 1 {
		return zero, errors.New("expected a row number or id")
	}
	if id, err := uuid.Parse(args[0]); err == nil {
		if item, ok := list.Find(id); ok {
			return item, nil
		}
		return zero, fmt.Errorf("no row with id %s", id)
	}
	n, err := strconv.Atoi(args[0])
	items := list.Items()
	if err != nil || n < 1 || n > len(items) {
		return zero, fmt.Errorf("row must be between 1 and %d", len(items))
	}
	return items[n-1], nil
}

func (c *console) printScreen() {
	switch c.dash.Guard.Screen() {
	case admin.ScreenLoading:
		c.printf("Loading...\n")
		return
	case admin.ScreenLogin:
		c.printf("Admin login required. Use: login <email> <password>\n")
		return
	}

	switch c.dash.Tabs.Active() {
	case admin.DomainProjects:
		items := c.dash.Projects.Items()
		c.printf("Projects (%d)\n", len(items))
		for i, p := range items {
			star := " "
			if p.Featured {
				star = "*"
			}
			c.printf("%3d. %s %-30s [%s] %s\n", i+1, star, p.Title, p.Category, strings.Join(p.Technologies, ", "))
		}
	case admin.DomainSkills:
		items := c.dash.Skills.Items()
		c.printf("Skills (%d)\n", len(items))
		for i, s := range items {
			c.printf("%3d. %-24s [%s] %3d%%\n", i+1, s.Name, s.Category, s.Level)
		}
	case admin.DomainCV:
		c.printCV()
	}
}

func (c *console) printCV() {
	url, source := c.dash.CV.Current()
	c.printf("Current CV: %s (%s)\n", url, source)
	if name := c.dash.CV.Filename(); name != "" {
		c.printf("File: %s\n", name)
	}
}

func (c *console) printProjectDraft() {
	e := c.dash.ProjectEditor
	if !e.IsOpen() {
		c.printf("No form open.\n")
		return
	}
	d := e.Draft()
	c.printf("%s project\n", e.Mode())
	c.printf("  title:        %s\n", d.Title)
	c.printf("  description:  %s\n", d.Description)
	c.printf("  technologies: %s\n", strings.Join(d.Technologies, ", "))
	c.printf("  image:        %s\n", d.ImageURL)
	c.printf("  github:       %s\n", d.GithubURL)
	c.printf("  live:         %s\n", d.LiveURL)
	c.printf("  category:     %s\n", d.Category)
	c.printf("  featured:     %t\n", d.Featured)
}

func (c *console) printSkillDraft() {
	e := c.dash.SkillEditor
	if !e.IsOpen() {
		c.printf("No form open.\n")
		return
	}
	d := e.Draft()
	c.printf("%s skill\n", e.Mode())
	c.printf("  name:     %s\n", d.Name)
	c.printf("  category: %s\n", d.Category)
	c.printf("  level:    %d\n", d.Level)
	c.printf("  icon:     %s\n", d.Icon)
}
