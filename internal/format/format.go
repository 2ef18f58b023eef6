package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/kehao95/gh-activity/internal/event"
)

// Options control the optional decorations around each line. The sentence
// content itself is fixed per kind.
type Options struct {
	// Timestamps appends a relative "(3 hours ago)" suffix to events that
	// carry a timestamp.
	Timestamps bool

	// Now is the reference clock for relative timestamps. Nil means
	// time.Now.
	Now func() time.Time
}

var repoColor = color.New(color.FgCyan)

const unknownRepo = "an unknown repository"

// Feed renders one line per event, preserving input order. An empty feed
// renders the single no-activity line for the given username.
func Feed(events []event.Event, username string, opts Options) []string {
	if len(events) == 0 {
		return []string{fmt.Sprintf("No recent activity found for user: %s", username)}
	}

	lines := make([]string, 0, len(events))
	for _, ev := range events {
		lines = append(lines, Line(ev, opts))
	}
	return lines
}

// Line renders a single event as a sentence. It never fails: unknown kinds
// get the generic template and missing payload fields get neutral
// placeholders.
func Line(ev event.Event, opts Options) string {
	line := sentence(ev)
	if opts.Timestamps && !ev.CreatedAt.IsZero() {
		now := time.Now
		if opts.Now != nil {
			now = opts.Now
		}
		line += fmt.Sprintf(" (%s)", humanize.RelTime(ev.CreatedAt, now(), "ago", "from now"))
	}
	return line
}

func sentence(ev event.Event) string {
	repo := repoName(ev.Repo)
	p := ev.Payload

	switch ev.Kind {
	case event.KindPush:
		switch count := p.CommitCount(); count {
		case 0:
			return fmt.Sprintf("Pushed some commits to %s", repo)
		case 1:
			return fmt.Sprintf("Pushed 1 commit to %s", repo)
		default:
			return fmt.Sprintf("Pushed %d commits to %s", count, repo)
		}

	case event.KindCreate:
		switch refType := orDefault(p.RefType, "repository"); refType {
		case "repository":
			return fmt.Sprintf("Created repository %s", repo)
		case "branch", "tag":
			return fmt.Sprintf("Created %s '%s' in %s", refType, orDefault(p.Ref, "unknown"), repo)
		default:
			return fmt.Sprintf("Created %s in %s", refType, repo)
		}

	case event.KindDelete:
		refType := orDefault(p.RefType, "branch")
		return fmt.Sprintf("Deleted %s '%s' in %s", refType, orDefault(p.Ref, "unknown"), repo)

	case event.KindIssues:
		action := titleCase(orDefault(p.Action, "updated"))
		if p.Issue.Number > 0 {
			return fmt.Sprintf("%s issue #%d in %s", action, p.Issue.Number, repo)
		}
		return fmt.Sprintf("%s an issue in %s", action, repo)

	case event.KindPullRequest:
		action := titleCase(orDefault(p.Action, "updated"))
		if n := p.PullRequestNumber(); n > 0 {
			return fmt.Sprintf("%s pull request #%d in %s", action, n, repo)
		}
		return fmt.Sprintf("%s a pull request in %s", action, repo)

	case event.KindWatch:
		return fmt.Sprintf("Starred %s", repo)

	case event.KindFork:
		return fmt.Sprintf("Forked %s", repo)

	case event.KindRelease:
		action := titleCase(orDefault(p.Action, "published"))
		tag := p.Release.TagName
		if tag == "" {
			tag = p.Release.Name
		}
		if tag == "" {
			return fmt.Sprintf("%s a release in %s", action, repo)
		}
		return fmt.Sprintf("%s release %s in %s", action, tag, repo)

	case event.KindPublic:
		return fmt.Sprintf("Made %s public", repo)

	case event.KindMember:
		action := titleCase(orDefault(p.Action, "added"))
		if p.Member.Login == "" {
			return fmt.Sprintf("%s a collaborator to %s", action, repo)
		}
		return fmt.Sprintf("%s %s as a collaborator to %s", action, p.Member.Login, repo)

	case event.KindIssueComment:
		action := titleCase(orDefault(p.Action, "created"))
		if p.Issue.Number > 0 {
			return fmt.Sprintf("%s comment on issue #%d in %s", action, p.Issue.Number, repo)
		}
		return fmt.Sprintf("%s comment on an issue in %s", action, repo)

	case event.KindPullRequestReview:
		action := titleCase(orDefault(p.Action, "submitted"))
		reviewPhrase := "a review"
		if state := p.Review.State; state != "" {
			reviewPhrase = fmt.Sprintf("%s %s review", indefinite(state), state)
		}
		if n := p.PullRequestNumber(); n > 0 {
			return fmt.Sprintf("%s %s on pull request #%d in %s", action, reviewPhrase, n, repo)
		}
		return fmt.Sprintf("%s %s on a pull request in %s", action, reviewPhrase, repo)

	default:
		if ev.Repo == "" {
			return fmt.Sprintf("Performed an action (%s)", ev.Kind)
		}
		return fmt.Sprintf("Performed an action (%s) on %s", ev.Kind, repo)
	}
}

func repoName(name string) string {
	if name == "" {
		return unknownRepo
	}
	return repoColor.Sprint(name)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func indefinite(word string) string {
	if word == "" {
		return "a"
	}
	switch word[0] {
	case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
		return "an"
	}
	return "a"
}
