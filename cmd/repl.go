package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"cityfix-client/internal/app"
	"cityfix-client/internal/controllers"
	"cityfix-client/internal/geo"
	"cityfix-client/internal/models"
	"cityfix-client/internal/router"
	"cityfix-client/internal/state"
)

// repl reads interactive commands from in until EOF or "quit". Each
// line is one user action; everything funnels through the same
// controllers and app operations a graphical shell would use.
type repl struct {
	app    *app.App
	router *router.Router
	report *controllers.ReportController
	auth   *controllers.AuthController
	out    io.Writer
}

func (r *repl) run(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		r.handle(ctx, line)
	}
}

func (r *repl) handle(ctx context.Context, line string) {
	cmd, rest, _ := strings.Cut(line, " ")
	switch cmd {
	case "go":
		r.router.Navigate(ctx, rest)
	case "filter":
		r.app.SetFilter(state.Filter(rest))
	case "pin":
		r.pin(ctx, rest)
	case "search":
		r.report.SearchLocation(ctx, rest, func(places []geo.Place) {
			for i, p := range places {
				fmt.Fprintf(r.out, "%d. %s (%s) @ %.5f,%.5f\n", i+1, p.DisplayName, p.Type, p.Lat, p.Lng)
			}
		})
	case "report":
		r.submitReport(ctx, rest)
	case "login":
		if fields := strings.Fields(rest); len(fields) == 2 {
			_ = r.auth.Login(ctx, fields[0], fields[1])
		} else {
			fmt.Fprintln(r.out, "usage: login <email> <password>")
		}
	case "register":
		if fields := strings.Fields(rest); len(fields) == 3 {
			_ = r.auth.Register(ctx, fields[0], fields[1], fields[2])
		} else {
			fmt.Fprintln(r.out, "usage: register <username> <email> <password>")
		}
	case "logout":
		r.auth.Logout()
	case "admin":
		r.auth.EnterAdmin(rest)
	case "status":
		if fields := strings.Fields(rest); len(fields) == 2 {
			_ = r.app.AdminSetStatus(ctx, fields[0], models.Status(fields[1]))
		} else {
			fmt.Fprintln(r.out, "usage: status <issue-id> <pending|in-progress|solved>")
		}
	case "delete":
		_ = r.app.AdminDeleteIssue(ctx, strings.TrimSpace(rest))
	case "give":
		if fields := strings.Fields(rest); len(fields) == 2 {
			_ = r.app.AdminGiveReward(ctx, fields[0], fields[1])
		} else {
			fmt.Fprintln(r.out, "usage: give <user-id> <reward-id>")
		}
	case "help":
		r.usage()
	default:
		fmt.Fprintf(r.out, "unknown command %q (try help)\n", cmd)
	}
}

// pin places the report pin: "pin <lat> <lng>".
func (r *repl) pin(ctx context.Context, rest string) {
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		fmt.Fprintln(r.out, "usage: pin <lat> <lng>")
		return
	}
	lat, err1 := strconv.ParseFloat(fields[0], 64)
	lng, err2 := strconv.ParseFloat(fields[1], 64)
	if err1 != nil || err2 != nil {
		fmt.Fprintln(r.out, "usage: pin <lat> <lng>")
		return
	}
	r.report.PickLocation(ctx, lat, lng)
	fmt.Fprintf(r.out, "pin set: %s\n", r.report.Draft().Location)
}

// submitReport fills the draft and submits: "report <type>|<description>".
// Location and coordinates come from a prior pin or search selection.
func (r *repl) submitReport(ctx context.Context, rest string) {
	issueType, description, ok := strings.Cut(rest, "|")
	if !ok {
		fmt.Fprintln(r.out, "usage: report <type>|<description> (pin a location first)")
		return
	}
	draft := r.report.Draft()
	r.report.SetFields(issueType, draft.Location, description)
	_ = r.report.Submit(ctx)
}

func (r *repl) usage() {
	fmt.Fprint(r.out, `commands:
  go <home|map|report|leaderboard|rewards|admin>
  filter <all|pending|in-progress|solved>
  pin <lat> <lng>            place the report pin
  search <query>             look up a location
  report <type>|<description>
  login <email> <password>
  register <username> <email> <password>
  logout
  admin <passphrase>
  status <issue-id> <status>
  delete <issue-id>
  give <user-id> <reward-id>
  quit
`)
}
