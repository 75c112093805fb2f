package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/atinyakov/ContactKeeper/internal/client/api"
	"github.com/atinyakov/ContactKeeper/internal/client/prompt"
	"github.com/atinyakov/ContactKeeper/internal/client/storage"
	"github.com/atinyakov/ContactKeeper/internal/models"
)

var (
	version   string
	buildDate string
)

// contactAPI is the subset of *api.Client used by the shell.
type contactAPI interface {
	Register(ctx context.Context, username, password string) (int64, error)
	Login(ctx context.Context, username, password string) (int64, error)
	CreateTag(ctx context.Context, userID int64, name string) (models.Tag, error)
	ListTags(ctx context.Context, userID int64) ([]models.Tag, error)
	DeleteTag(ctx context.Context, userID, tagID int64) error
	CreateContact(ctx context.Context, userID int64, f models.ContactFields) (models.Contact, error)
	UpdateContact(ctx context.Context, userID, contactID int64, f models.ContactFields) (models.Contact, error)
	ListContacts(ctx context.Context, userID int64, tagIDs []int64) ([]models.EnrichedContact, error)
	DeleteContact(ctx context.Context, userID, contactID int64) error
	AssignTag(ctx context.Context, userID, contactID, tagID int64) error
	UnassignTag(ctx context.Context, userID, contactID, tagID int64) error
}

type shell struct {
	client  contactAPI
	session *storage.LocalStorage
	in      *prompt.Prompter
	out     io.Writer
}

const helpText = `Available commands:
  register | login | logout | whoami
  tags | tag-add <name> | tag-rm <tag id>
  contacts [tag id ...] | contact-add | contact-edit <id> | contact-rm <id>
  assign <contact id> <tag id> | unassign <contact id> <tag id>
  help | exit`

// repl runs the interactive shell loop until "exit" or end of input.
func (s *shell) repl(ctx context.Context) {
	for {
		line, ok := s.in.Line("contacts> ")
		if !ok {
			return
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			fmt.Fprintln(s.out, "Bye")
			return
		}
		if err := s.dispatch(ctx, args); err != nil {
			fmt.Fprintln(s.out, "Error:", err)
		}
	}
}

func (s *shell) dispatch(ctx context.Context, args []string) error {
	switch args[0] {
	case "help":
		fmt.Fprintln(s.out, helpText)
		return nil
	case "register", "login":
		return s.authenticate(ctx, args[0])
	case "logout":
		return s.session.Clear()
	case "whoami":
		if s.session.UserID() == 0 {
			fmt.Fprintln(s.out, "Not logged in")
		} else {
			fmt.Fprintf(s.out, "%s (user %d)\n", s.session.Session.Username, s.session.UserID())
		}
		return nil
	}

	userID := s.session.UserID()
	if userID == 0 {
		return fmt.Errorf("not logged in; use 'login' or 'register' first")
	}

	switch args[0] {
	case "tags":
		tags, err := s.client.ListTags(ctx, userID)
		if err != nil {
			return err
		}
		for _, t := range tags {
			fmt.Fprintf(s.out, "%d\t%s\n", t.ID, t.Name)
		}
	case "tag-add":
		if len(args) < 2 {
			return fmt.Errorf("usage: tag-add <name>")
		}
		tag, err := s.client.CreateTag(ctx, userID, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Tag %d created\n", tag.ID)
	case "tag-rm":
		ids, err := parseIDs(args[1:], 1, "tag-rm <tag id>")
		if err != nil {
			return err
		}
		if err := s.client.DeleteTag(ctx, userID, ids[0]); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Tag deleted")
	case "contacts":
		ids, err := parseIDs(args[1:], 0, "contacts [tag id ...]")
		if err != nil {
			return err
		}
		contacts, err := s.client.ListContacts(ctx, userID, ids)
		if err != nil {
			return err
		}
		for _, c := range contacts {
			s.printContact(c)
		}
	case "contact-add":
		f, ok := s.in.ContactFields(models.ContactFields{})
		if !ok {
			return nil
		}
		c, err := s.client.CreateContact(ctx, userID, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "Contact %d created\n", c.ID)
	case "contact-edit":
		ids, err := parseIDs(args[1:], 1, "contact-edit <id>")
		if err != nil {
			return err
		}
		current, err := s.currentFields(ctx, userID, ids[0])
		if err != nil {
			return err
		}
		f, ok := s.in.ContactFields(current)
		if !ok {
			return nil
		}
		if _, err := s.client.UpdateContact(ctx, userID, ids[0], f); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Contact updated")
	case "contact-rm":
		ids, err := parseIDs(args[1:], 1, "contact-rm <id>")
		if err != nil {
			return err
		}
		if err := s.client.DeleteContact(ctx, userID, ids[0]); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Contact deleted")
	case "assign", "unassign":
		ids, err := parseIDs(args[1:], 2, args[0]+" <contact id> <tag id>")
		if err != nil {
			return err
		}
		op := s.client.AssignTag
		if args[0] == "unassign" {
			op = s.client.UnassignTag
		}
		if err := op(ctx, userID, ids[0], ids[1]); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "Done")
	default:
		fmt.Fprintln(s.out, "Unknown command. Type 'help' for a list of commands.")
	}
	return nil
}

func (s *shell) authenticate(ctx context.Context, cmd string) error {
	username, ok := s.in.Line("Username: ")
	if !ok {
		return nil
	}
	password, ok := s.in.Line("Password: ")
	if !ok {
		return nil
	}

	call := s.client.Login
	if cmd == "register" {
		call = s.client.Register
	}
	id, err := call(ctx, username, password)
	if err != nil {
		return err
	}

	s.session.Set(username, id)
	if err := s.session.Save(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	fmt.Fprintf(s.out, "Logged in as %s (user %d)\n", username, id)
	return nil
}

// currentFields looks up a contact so editing can offer its values as
// defaults. An unknown id yields empty defaults and the server decides.
func (s *shell) currentFields(ctx context.Context, userID, contactID int64) (models.ContactFields, error) {
	contacts, err := s.client.ListContacts(ctx, userID, nil)
	if err != nil {
		return models.ContactFields{}, err
	}
	for _, c := range contacts {
		if c.ID == contactID {
			return models.ContactFields{Name: c.Name, Email: c.Email, Phone: c.Phone, Address: c.Address}, nil
		}
	}
	return models.ContactFields{}, nil
}

func (s *shell) printContact(c models.EnrichedContact) {
	names := make([]string, len(c.Tags))
	for i, t := range c.Tags {
		names[i] = t.Name
	}
	fmt.Fprintf(s.out, "%d\t%s\temail=%s\tphone=%s\taddress=%s\ttags=[%s]\n",
		c.ID, c.Name, deref(c.Email), deref(c.Phone), deref(c.Address), strings.Join(names, ", "))
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

// parseIDs parses positive integer ids, requiring at least want of them.
func parseIDs(args []string, want int, usage string) ([]int64, error) {
	if len(args) < want {
		return nil, fmt.Errorf("usage: %s", usage)
	}
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := strconv.ParseInt(a, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid id %q", a)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// main parses command-line flags and starts the shell.
func main() {
	var (
		baseURL     string
		sessionFile string
		showVer     bool
	)

	flag.StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	flag.StringVar(&sessionFile, "session", storage.DefaultPath(), "path to the saved login session")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("ContactKeeper Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	session := &storage.LocalStorage{Path: sessionFile}
	if err := session.Load(); err != nil {
		log.Fatalf("failed to load session: %v", err)
	}

	s := &shell{
		client:  api.New(baseURL),
		session: session,
		in:      prompt.New(os.Stdin, os.Stdout),
		out:     os.Stdout,
	}
	s.repl(context.Background())
}
