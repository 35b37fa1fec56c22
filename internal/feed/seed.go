package feed

import (
	"time"

	"github.com/BrotchMrToast/NoAI/internal/post"
)

// PlaceholderImageRef stands in for records whose image reference is
// missing; such posts render with a placeholder instead of being dropped.
const PlaceholderImageRef = "https://placehold.co/600x400/333333/ffffff?text=Unavailable"

// Profile is a community roster entry.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Handle    string `json:"handle"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio"`
}

// SeedProfiles returns the fixed demo community.
func SeedProfiles() []Profile {
	return []Profile{
		{ID: "user_maya", Name: "Maya Creative", Handle: "@maya_art", AvatarURL: "https://placehold.co/100x100/FFB7B2/ffffff?text=M", Bio: "Digital purist. 📸"},
		{ID: "user_liam", Name: "Liam Analog", Handle: "@liam_film", AvatarURL: "https://placehold.co/100x100/B5EAD7/ffffff?text=L", Bio: "Film grain & reality."},
		{ID: "user_sarah", Name: "Sarah Real", Handle: "@sarah_life", AvatarURL: "https://placehold.co/100x100/E2F0CB/ffffff?text=S", Bio: "No filters, just life."},
	}
}

// SeedPosts returns the fixed demo posts, timestamped relative to now. They
// are tagged OriginSeed and are never written through the store.
func SeedPosts(now time.Time) []post.Record {
	return []post.Record{
		{
			ID:           "mock_1",
			Origin:       post.OriginSeed,
			AuthorID:     "user_maya",
			AuthorName:   "Maya Creative",
			AuthorAvatar: "https://placehold.co/100x100/FFB7B2/ffffff?text=M",
			ImageRef:     "https://placehold.co/600x400/FFB7B2/ffffff?text=Sketching+in+Park",
			Caption:      "Sunday morning sketches. No AI, just ink.",
			Likes:        []string{"user_liam"},
			CreatedAt:    now.Add(-1 * time.Hour),
		},
		{
			ID:           "mock_2",
			Origin:       post.OriginSeed,
			AuthorID:     "user_liam",
			AuthorName:   "Liam Analog",
			AuthorAvatar: "https://placehold.co/100x100/B5EAD7/ffffff?text=L",
			ImageRef:     "https://placehold.co/600x400/B5EAD7/ffffff?text=Old+Camera",
			Caption:      "Found this beauty at the flea market.",
			Likes:        []string{},
			CreatedAt:    now.Add(-2 * time.Hour),
		},
		{
			ID:           "mock_3",
			Origin:       post.OriginSeed,
			AuthorID:     "user_sarah",
			AuthorName:   "Sarah Real",
			AuthorAvatar: "https://placehold.co/100x100/E2F0CB/ffffff?text=S",
			ImageRef:     "https://placehold.co/600x400/E2F0CB/ffffff?text=Coffee+Spill",
			Caption:      "Oops. Authentic mess.",
			Likes:        []string{"user_maya", "user_liam"},
			CreatedAt:    now.Add(-3 * time.Hour),
		},
	}
}
