// Package prompt reads interactive input for the CLI client.
package prompt

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/atinyakov/ContactKeeper/internal/models"
)

// Prompter asks questions on out and reads answers line by line from in.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

// New returns a Prompter over in and out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

// Line prints label and returns the trimmed answer. ok is false at end of
// input.
func (p *Prompter) Line(label string) (answer string, ok bool) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

// ID prompts until a positive integer is entered.
func (p *Prompter) ID(label string) (int64, bool) {
	for {
		s, ok := p.Line(label)
		if !ok {
			return 0, false
		}
		id, err := strconv.ParseInt(s, 10, 64)
		if err == nil && id > 0 {
			return id, true
		}
		fmt.Fprintln(p.out, "Please enter a positive number.")
	}
}

// ContactFields asks for a contact's name and optional fields. current
// supplies defaults shown in brackets; pressing enter keeps them, and "-"
// clears an optional field.
func (p *Prompter) ContactFields(current models.ContactFields) (models.ContactFields, bool) {
	var f models.ContactFields

	for f.Name == "" {
		name, ok := p.Line(withDefault("Name", &current.Name))
		if !ok {
			return f, false
		}
		f.Name = cmp.Or(name, current.Name)
		if f.Name == "" {
			fmt.Fprintln(p.out, "Name is required.")
		}
	}

	for _, field := range []struct {
		label string
		cur   *string
		dst   **string
	}{
		{"Email", current.Email, &f.Email},
		{"Phone", current.Phone, &f.Phone},
		{"Address", current.Address, &f.Address},
	} {
		s, ok := p.Line(withDefault(field.label, field.cur))
		if !ok {
			return f, false
		}
		switch {
		case s == "-":
			*field.dst = nil
		case s == "":
			*field.dst = field.cur
		default:
			v := s
			*field.dst = &v
		}
	}
	return f, true
}

func withDefault(label string, cur *string) string {
	if cur == nil || *cur == "" {
		return label + ": "
	}
	return fmt.Sprintf("%s [%s]: ", label, *cur)
}

