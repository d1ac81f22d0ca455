package models

import "time"

// Poll status constants. Transitions are monotonic:
// draft -> active -> completed -> archived, never reversed.
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusArchived  = "archived"
)

// Poll type constants
const (
	TypeSingleChoice   = "single_choice"
	TypeMultipleChoice = "multiple_choice"
)

// Poll visibility constants
const (
	VisibilityPublic    = "public"
	VisibilityAnonymous = "anonymous"
)

// Audit event types
const (
	EventPollCreated   = "POLL_CREATED"
	EventVoteSubmitted = "VOTE_SUBMITTED"
	EventPollCompleted = "POLL_COMPLETED"
	EventPollArchived  = "POLL_ARCHIVED"
)

// Request types

type CreatePollRequest struct {
	Title         string     `json:"title"`
	PollType      string     `json:"poll_type"`
	Visibility    string     `json:"visibility"`
	CanChangeVote bool       `json:"can_change_vote"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	Options       []string   `json:"options"`
	PublishNow    bool       `json:"publish_now"`
}

type VoteRequest struct {
	OptionIDs []string `json:"option_ids"`
}

type IssueTokenRequest struct {
	UserID       string `json:"user_id"`
	LegacyUserID string `json:"legacy_user_id,omitempty"`
}

// Response types

type IssueTokenResponse struct {
	Token string `json:"token"`
}

type VoteResponse struct {
	Message string `json:"message"`
}

// Domain types

type Poll struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	PollType      string     `json:"poll_type"`
	Visibility    string     `json:"visibility"`
	CanChangeVote bool       `json:"can_change_vote"`
	EndDate       *time.Time `json:"end_date,omitempty"`
	Status        string     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	AuthorID      string     `json:"author_id"`
}

type Option struct {
	ID     string `json:"id"`
	PollID string `json:"poll_id"`
	Text   string `json:"text"`
}

type AuditEntry struct {
	ID        string    `json:"id"`
	EventType string    `json:"event_type"`
	PollID    *string   `json:"poll_id,omitempty"`
	UserID    *string   `json:"user_id,omitempty"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// TallyRow is one aggregated result line, in the poll's option order.
type TallyRow struct {
	OptionID string  `json:"option_id"`
	Text     string  `json:"text"`
	Votes    int     `json:"votes"`
	Percent  float64 `json:"percent"`
}

type PollDetails struct {
	Poll       Poll       `json:"poll"`
	Options    []Option   `json:"options"`
	Tally      []TallyRow `json:"tally"`
	TotalVotes int        `json:"total_votes"`
}

type FeedItem struct {
	Poll        Poll   `json:"poll"`
	OptionCount int    `json:"option_count"`
	VoteCount   int    `json:"vote_count"`
	CreatedAgo  string `json:"created_ago"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
