package event

import (
	"encoding/json"
	"time"
)

// Kind identifies which activity template applies to an event.
type Kind string

const (
	KindPush              Kind = "PushEvent"
	KindCreate            Kind = "CreateEvent"
	KindDelete            Kind = "DeleteEvent"
	KindIssues            Kind = "IssuesEvent"
	KindPullRequest       Kind = "PullRequestEvent"
	KindWatch             Kind = "WatchEvent"
	KindFork              Kind = "ForkEvent"
	KindRelease           Kind = "ReleaseEvent"
	KindPublic            Kind = "PublicEvent"
	KindMember            Kind = "MemberEvent"
	KindIssueComment      Kind = "IssueCommentEvent"
	KindPullRequestReview Kind = "PullRequestReviewEvent"

	// KindUnknown is assigned to records that carry no usable type tag.
	// Unlisted-but-tagged kinds keep their own tag and fall through to the
	// generic template.
	KindUnknown Kind = "Unknown"
)

// Event is one item of a user's public activity feed.
type Event struct {
	Kind      Kind
	Repo      string
	CreatedAt time.Time
	Payload   Payload
}

// Payload holds the kind-dependent fields of an event. Every field is
// optional; zero values mean "absent" and the formatter substitutes
// placeholders. Only the fields the templates consume are decoded.
type Payload struct {
	Action  string `json:"action"`
	Ref     string `json:"ref"`
	RefType string `json:"ref_type"`

	// Push events report a size and/or a (possibly truncated) commits list.
	Size    int               `json:"size"`
	Commits []json.RawMessage `json:"commits"`

	// Pull request events put the number at the payload top level.
	Number int `json:"number"`

	Issue       IssueRef   `json:"issue"`
	PullRequest IssueRef   `json:"pull_request"`
	Release     ReleaseRef `json:"release"`
	Member      AccountRef `json:"member"`
	Review      ReviewRef  `json:"review"`
}

// IssueRef points at an issue or pull request by number.
type IssueRef struct {
	Number int `json:"number"`
}

type ReleaseRef struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
}

type AccountRef struct {
	Login string `json:"login"`
}

type ReviewRef struct {
	State string `json:"state"`
}

// CommitCount returns the number of commits in a push, preferring the
// payload's size field over the length of the commits list. Zero means the
// payload didn't say.
func (p Payload) CommitCount() int {
	if p.Size > 0 {
		return p.Size
	}
	return len(p.Commits)
}

// PullRequestNumber returns the PR number from whichever location the payload
// used, or zero.
func (p Payload) PullRequestNumber() int {
	if p.Number > 0 {
		return p.Number
	}
	return p.PullRequest.Number
}

// wireEvent mirrors the API's event envelope. The payload stays raw so that a
// malformed payload can't sink the whole record.
type wireEvent struct {
	Type      string          `json:"type"`
	Repo      wireRepo        `json:"repo"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt string          `json:"created_at"`
}

type wireRepo struct {
	Name string `json:"name"`
}

// DecodeFeed parses an activity feed body into events, in input order.
//
// Decoding is lenient in two stages: the body must be a JSON array (anything
// else is an error), but each element is decoded independently and an element
// that isn't a usable event object degrades to an Event with KindUnknown
// instead of failing the batch. Malformed payloads and timestamps are
// tolerated the same way.
func DecodeFeed(data []byte) ([]Event, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(raw))
	for _, item := range raw {
		events = append(events, decodeOne(item))
	}
	return events, nil
}

func decodeOne(item json.RawMessage) Event {
	var we wireEvent
	if err := json.Unmarshal(item, &we); err != nil {
		return Event{Kind: KindUnknown}
	}

	ev := Event{
		Kind: Kind(we.Type),
		Repo: we.Repo.Name,
	}
	if ev.Kind == "" {
		ev.Kind = KindUnknown
	}
	if we.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, we.CreatedAt); err == nil {
			ev.CreatedAt = ts
		}
	}
	if len(we.Payload) > 0 {
		// Best effort: a payload that doesn't decode leaves the zero
		// Payload and the formatter falls back to placeholders.
		_ = json.Unmarshal(we.Payload, &ev.Payload)
	}
	return ev
}
