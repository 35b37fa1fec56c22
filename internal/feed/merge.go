package feed

import (
	"sort"

	"github.com/BrotchMrToast/NoAI/internal/post"
)

type Mode string

const (
	ModeGlobal    Mode = "global"
	ModeFollowing Mode = "following"
)

// Merge combines the remote stream with the seed set and orders the result
// by resolved timestamp, newest first. Records whose server timestamp is
// still pending count as "now" and sort before everything else. The sort is
// stable, so ties keep their arrival order.
func Merge(remote, seed []post.Record) []post.Record {
	out := make([]post.Record, 0, len(remote)+len(seed))
	out = append(out, remote...)
	out = append(out, seed...)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TimestampPending() != b.TimestampPending() {
			return a.TimestampPending()
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out
}

// ApplyFollowFilter narrows an ordered post list to the viewer's following
// view. Global mode returns the input untouched. A viewer always sees their
// own posts. Relative order is preserved.
func ApplyFollowFilter(posts []post.Record, followed []string, viewerID string, mode Mode) []post.Record {
	if mode != ModeFollowing {
		return posts
	}

	set := make(map[string]struct{}, len(followed))
	for _, id := range followed {
		set[id] = struct{}{}
	}

	out := make([]post.Record, 0, len(posts))
	for _, p := range posts {
		if _, ok := set[p.AuthorID]; ok || (viewerID != "" && p.AuthorID == viewerID) {
			out = append(out, p)
		}
	}
	return out
}

// ToggleLike flips userID's membership in the like set. It is a pure
// function of the current set, never a counter, so rapid repeated input
// degrades to last-write-wins instead of accumulating.
func ToggleLike(likes []string, userID string) []string {
	out := make([]string, 0, len(likes)+1)
	found := false
	for _, id := range likes {
		if id == userID {
			found = true
			continue
		}
		out = append(out, id)
	}
	if !found {
		out = append(out, userID)
	}
	return out
}
