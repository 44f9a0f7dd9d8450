package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/comigor/casehelper-go/internal/agent"
	"github.com/comigor/casehelper-go/internal/evidence"
	"github.com/comigor/casehelper-go/internal/export"
	"github.com/comigor/casehelper-go/internal/profile"
)

const chatHelp = `Type a question and press Enter. Commands:
  /quick [n]                     list or ask a preset question
  /timeline                      show the timeline
  /timeline add DATE TEXT        add an event (DATE as YYYY-MM-DD)
  /profile                       show the profile
  /profile name|case|attorney V  set one profile field
  /attach FILE                   attach an evidence file for this session
  /preview FILE.png              write a preview of the attached image
  /export txt|pdf [FILE]         export the conversation
  /help, /quit`

// runChat reads lines from in until EOF or /quit.
func runChat(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	for _, t := range a.log.Snapshot() {
		fmt.Fprintf(out, "%s: %s\n\n", export.RoleLabel(t.Role), t.Text)
	}
	fmt.Fprintln(out, chatHelp)

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			break
		}
		if quit := handleLine(ctx, a, sc.Text(), out); quit {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
	return sc.Err()
}

// handleLine executes one chat line and reports whether the user asked to quit.
func handleLine(ctx context.Context, a *app, line string, out io.Writer) bool {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		ask(ctx, a, line, out)
		return false
	}

	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "/quit", "/exit":
		return true
	case "/help":
		fmt.Fprintln(out, chatHelp)
	case "/quick":
		if len(args) == 0 {
			for i, q := range agent.QuickQuestions {
				fmt.Fprintf(out, "%d. %s\n", i+1, q)
			}
			return false
		}
		n, _ := strconv.Atoi(args[0])
		q, ok := agent.QuickQuestion(n)
		if !ok {
			fmt.Fprintln(out, "no such preset")
			return false
		}
		fmt.Fprintf(out, "You: %s\n", q)
		ask(ctx, a, q, out)
	case "/timeline":
		if len(args) > 0 && args[0] == "add" {
			date, desc := "", ""
			if len(args) > 1 {
				date = args[1]
				desc = strings.Join(args[2:], " ")
			}
			// blank fields are ignored without a message
			_, _ = a.timeline.Add(date, desc)
			return false
		}
		for _, e := range a.timeline.Snapshot() {
			fmt.Fprintf(out, "- %s: %s\n", e.Date, e.Description)
		}
	case "/profile":
		if len(args) == 0 {
			r := a.profile.Snapshot()
			fmt.Fprintf(out, "Name: %s\nCase Number: %s\nAttorney: %s\n", r.Name, r.CaseNumber, r.AttorneyName)
			return false
		}
		value := strings.Join(args[1:], " ")
		var u profile.Update
		switch args[0] {
		case "name":
			u.Name = &value
		case "case", "case-number":
			u.CaseNumber = &value
		case "attorney":
			u.AttorneyName = &value
		default:
			fmt.Fprintln(out, "unknown profile field:", args[0])
			return false
		}
		a.profile.Update(u)
	case "/attach":
		if len(args) == 0 {
			if cur, ok := a.evidence.Current(); ok {
				fmt.Fprintln(out, "attached:", cur.String())
			} else {
				fmt.Fprintln(out, "nothing attached")
			}
			return false
		}
		att, err := a.evidence.Select(strings.Join(args, " "))
		if err != nil {
			fmt.Fprintln(out, "could not attach:", err)
			return false
		}
		fmt.Fprintln(out, "attached:", att.String())
	case "/preview":
		if len(args) == 0 {
			fmt.Fprintln(out, "usage: /preview FILE.png")
			return false
		}
		if err := previewTo(a, args[0]); err != nil {
			switch {
			case errors.Is(err, evidence.ErrNoAttachment), errors.Is(err, evidence.ErrNotImage):
				fmt.Fprintln(out, "no image attached")
			default:
				fmt.Fprintln(out, "preview failed:", err)
			}
			return false
		}
		fmt.Fprintln(out, "preview written to", args[0])
	case "/export":
		exportFromChat(a, args, out)
	default:
		fmt.Fprintln(out, "unknown command; /help lists commands")
	}
	return false
}

func ask(ctx context.Context, a *app, question string, out io.Writer) {
	if strings.TrimSpace(question) == "" {
		return
	}
	fmt.Fprintln(out, "Assistant: Thinking about your question...")
	turn, err := a.assistant.Ask(ctx, question)
	if err != nil {
		return
	}
	fmt.Fprintf(out, "%s: %s\n\n%s\n", export.RoleLabel(turn.Role), turn.Text, footer)
}

func exportFromChat(a *app, args []string, out io.Writer) {
	kind := "txt"
	if len(args) > 0 {
		kind = strings.ToLower(args[0])
	}
	var path string
	var err error
	switch kind {
	case "txt", "text":
		path = argOr(args[min(1, len(args)):], "case-conversation.txt")
		err = export.WriteTextFile(path, a.log.Snapshot())
	case "pdf":
		path = argOr(args[min(1, len(args)):], "case-summary.pdf")
		err = a.layout.WritePDFFile(path, a.sources().Snapshot())
	default:
		fmt.Fprintln(out, "usage: /export txt|pdf [FILE]")
		return
	}
	if err != nil {
		fmt.Fprintln(out, "export failed:", err)
		return
	}
	fmt.Fprintln(out, "wrote", path)
}
