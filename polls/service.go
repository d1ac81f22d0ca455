// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/mankru71/OpinionHub/auth"
	"github.com/mankru71/OpinionHub/models"
)

// Service is the poll lifecycle engine. All invariant-critical writes
// (vote recording, status transitions) go through it in single
// transactions; uniqueness constraints on the vote table are the
// backstop for concurrent duplicates.
type Service struct {
	db   *sql.DB
	salt string
}

func NewService(db *sql.DB, voterHashSalt string) *Service {
	return &Service{db: db, salt: voterHashSalt}
}

// CreateDraft validates and persists a new poll with its options.
// Blank and exact-duplicate option texts are dropped; at least two must
// remain. The end date, if present, must be strictly in the future.
// Returns the persisted poll including generated option IDs.
func (s *Service) CreateDraft(req models.CreatePollRequest, authorID string) (models.Poll, []models.Option, error) {
	now := time.Now().UTC()

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.Poll{}, nil, &ValidationError{Reason: "title is required"}
	}

	pollType := req.PollType
	if pollType == "" {
		pollType = models.TypeSingleChoice
	}
	if pollType != models.TypeSingleChoice && pollType != models.TypeMultipleChoice {
		return models.Poll{}, nil, &ValidationError{Reason: "unknown poll type"}
	}

	visibility := req.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}
	if visibility != models.VisibilityPublic && visibility != models.VisibilityAnonymous {
		return models.Poll{}, nil, &ValidationError{Reason: "unknown visibility"}
	}

	if req.EndDate != nil && !req.EndDate.After(now) {
		return models.Poll{}, nil, &ValidationError{Reason: "end date must be in the future"}
	}

	// Drop blank and duplicate option texts (case-sensitive, trimmed).
	seen := make(map[string]bool)
	texts := make([]string, 0, len(req.Options))
	for _, text := range req.Options {
		text = strings.TrimSpace(text)
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		texts = append(texts, text)
	}
	if len(texts) < 2 {
		return models.Poll{}, nil, &ValidationError{Reason: "need at least 2 unique options"}
	}

	status := models.StatusDraft
	if req.PublishNow {
		status = models.StatusActive
	}

	poll := models.Poll{
		ID:            uuid.NewString(),
		Title:         title,
		PollType:      pollType,
		Visibility:    visibility,
		CanChangeVote: req.CanChangeVote,
		EndDate:       req.EndDate,
		Status:        status,
		CreatedAt:     now,
		AuthorID:      authorID,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO poll (id, title, poll_type, visibility, can_change_vote, end_date, status, created_at, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, poll.ID, poll.Title, poll.PollType, poll.Visibility, poll.CanChangeVote, poll.EndDate, poll.Status, poll.CreatedAt, poll.AuthorID)
	if err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to insert poll: %w", err)
	}

	options := make([]models.Option, 0, len(texts))
	for i, text := range texts {
		opt := models.Option{ID: uuid.NewString(), PollID: poll.ID, Text: text}
		_, err = tx.Exec(`
			INSERT INTO poll_option (id, poll_id, text, position)
			VALUES ($1, $2, $3, $4)
		`, opt.ID, opt.PollID, opt.Text, i)
		if err != nil {
			return models.Poll{}, nil, fmt.Errorf("failed to insert option: %w", err)
		}
		options = append(options, opt)
	}

	if err := s.appendAudit(tx, models.EventPollCreated, poll.ID, authorID, poll.Title, now); err != nil {
		return models.Poll{}, nil, err
	}

	if err := tx.Commit(); err != nil {
		return models.Poll{}, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("poll created", "poll_id", poll.ID, "status", poll.Status, "author", authorID)

	return poll, options, nil
}

// Publish moves a draft poll owned by authorID into active status.
func (s *Service) Publish(pollID, authorID string) error {
	var status string
	err := s.db.QueryRow(`
		SELECT status FROM poll WHERE id = $1 AND author_id = $2
	`, pollID, authorID).Scan(&status)

	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query poll: %w", err)
	}

	if status != models.StatusDraft {
		return &StateError{Reason: "only drafts can be published"}
	}

	// The status guard keeps a concurrent transition from being
	// overwritten between the check above and this write.
	result, err := s.db.Exec(`
		UPDATE poll SET status = $1 WHERE id = $2 AND status = $3
	`, models.StatusActive, pollID, models.StatusDraft)
	if err != nil {
		return fmt.Errorf("failed to publish poll: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check publish result: %w", err)
	}
	if affected == 0 {
		return &StateError{Reason: "only drafts can be published"}
	}

	slog.Info("poll published", "poll_id", pollID)
	return nil
}

// Vote records or replaces the ballot of voterID on an active poll.
// legacyID is the caller's pre-migration key; it may differ from
// voterID and may be empty for accounts that never had one.
//
// A revote never inserts a second vote row; the existing row is updated
// in place so the one-vote-per-voter guarantee holds. The lookup checks
// the derived hash, the account key and both legacy keys, and a revote
// of a legacy-keyed row backfills the unified keys so later lookups hit
// them directly.
func (s *Service) Vote(pollID, voterID, legacyID string, optionIDs []string) error {
	now := time.Now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		pollType   string
		visibility string
		canChange  bool
		endDate    sql.NullTime
		status     string
	)
	err = tx.QueryRow(`
		SELECT poll_type, visibility, can_change_vote, end_date, status
		FROM poll
		WHERE id = $1
	`, pollID).Scan(&pollType, &visibility, &canChange, &endDate, &status)

	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to query poll: %w", err)
	}

	if status != models.StatusActive {
		return &StateError{Reason: "poll is not open for voting"}
	}
	if endDate.Valid && !endDate.Time.After(now) {
		return &StateError{Reason: "poll has ended"}
	}

	if len(optionIDs) == 0 {
		return &ValidationError{Reason: "choose at least one option"}
	}
	if pollType == models.TypeSingleChoice && len(optionIDs) != 1 {
		return &ValidationError{Reason: "need to choose 1 option"}
	}

	rows, err := tx.Query(`SELECT id FROM poll_option WHERE poll_id = $1`, pollID)
	if err != nil {
		return fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	valid := make(map[string]bool)
	for rows.Next() {
		var optionID string
		if err := rows.Scan(&optionID); err != nil {
			return fmt.Errorf("failed to scan option: %w", err)
		}
		valid[optionID] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read options: %w", err)
	}

	// Validate membership and drop duplicate IDs, preserving order.
	chosen := make([]string, 0, len(optionIDs))
	picked := make(map[string]bool)
	for _, optionID := range optionIDs {
		if !valid[optionID] {
			return &ValidationError{Reason: "unknown option for this poll"}
		}
		if picked[optionID] {
			continue
		}
		picked[optionID] = true
		chosen = append(chosen, optionID)
	}

	voterHash := auth.HashVoter(voterID, s.salt)

	// Pre-migration rows may be keyed by either string: by the old
	// user id when the token carries one, or by the account id when
	// the two were never distinct.
	legacyKey := legacyID
	if legacyKey == "" {
		legacyKey = voterID
	}

	var (
		voteID    string
		accountID sql.NullString
	)
	err = tx.QueryRow(`
		SELECT id, voter_account_id
		FROM vote
		WHERE poll_id = $1 AND (voter_hash = $2 OR voter_account_id = $3 OR legacy_user_id = $4 OR legacy_user_id = $5)
	`, pollID, voterHash, voterID, voterID, legacyKey).Scan(&voteID, &accountID)

	switch {
	case err == sql.ErrNoRows:
		// First ballot by this voter. The account key stays NULL on
		// anonymous polls; the hash still enforces one vote per voter.
		voteID = uuid.NewString()
		var account any
		if visibility == models.VisibilityPublic {
			account = voterID
		}
		_, err = tx.Exec(`
			INSERT INTO vote (id, poll_id, voter_account_id, voter_hash, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, voteID, pollID, account, voterHash, now)
		if err != nil {
			if isUniqueViolation(err) {
				return &StateError{Reason: "a vote for this poll was already recorded"}
			}
			return fmt.Errorf("failed to insert vote: %w", err)
		}

	case err != nil:
		return fmt.Errorf("failed to query existing vote: %w", err)

	default:
		if !canChange {
			return &StateError{Reason: "vote change not permitted"}
		}

		if _, err := tx.Exec(`DELETE FROM vote_selection WHERE vote_id = $1`, voteID); err != nil {
			return fmt.Errorf("failed to clear selections: %w", err)
		}

		var account any
		if accountID.Valid {
			account = accountID.String
		}
		if visibility == models.VisibilityPublic {
			account = voterID
		}
		_, err = tx.Exec(`
			UPDATE vote SET voter_account_id = $1, voter_hash = $2, created_at = $3 WHERE id = $4
		`, account, voterHash, now, voteID)
		if err != nil {
			return fmt.Errorf("failed to update vote: %w", err)
		}
	}

	for _, optionID := range chosen {
		_, err = tx.Exec(`
			INSERT INTO vote_selection (vote_id, option_id)
			VALUES ($1, $2)
		`, voteID, optionID)
		if err != nil {
			return fmt.Errorf("failed to insert selection: %w", err)
		}
	}

	auditUser := ""
	if visibility == models.VisibilityPublic {
		auditUser = voterID
	}
	if err := s.appendAudit(tx, models.EventVoteSubmitted, pollID, auditUser, "Options="+strings.Join(chosen, ","), now); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	slog.Info("vote saved", "poll_id", pollID, "options", len(chosen))
	return nil
}

// GetPoll returns a poll with its ordered options and current tally.
func (s *Service) GetPoll(pollID string) (*models.PollDetails, error) {
	poll, err := s.loadPoll(pollID)
	if err != nil {
		return nil, err
	}

	options, err := s.loadOptions(pollID)
	if err != nil {
		return nil, err
	}

	tally, total, err := s.tally(pollID, options)
	if err != nil {
		return nil, err
	}

	return &models.PollDetails{
		Poll:       poll,
		Options:    options,
		Tally:      tally,
		TotalVotes: total,
	}, nil
}

// TallyResult is the aggregated export view of a poll.
type TallyResult struct {
	Poll       models.Poll
	Rows       []models.TallyRow
	TotalVotes int
}

// Tally returns the aggregated results for export. Only the poll author
// may export; other callers get ErrUnauthorized.
func (s *Service) Tally(pollID, userID string) (*TallyResult, error) {
	poll, err := s.loadPoll(pollID)
	if err != nil {
		return nil, err
	}
	if poll.AuthorID != userID {
		return nil, ErrUnauthorized
	}

	options, err := s.loadOptions(pollID)
	if err != nil {
		return nil, err
	}

	rows, total, err := s.tally(pollID, options)
	if err != nil {
		return nil, err
	}

	return &TallyResult{Poll: poll, Rows: rows, TotalVotes: total}, nil
}

// AuditTrail returns the poll's audit log, oldest first. Only the poll
// author may read it; other callers get ErrUnauthorized. Entries on
// anonymous polls carry no user id.
func (s *Service) AuditTrail(pollID, userID string) ([]models.AuditEntry, error) {
	poll, err := s.loadPoll(pollID)
	if err != nil {
		return nil, err
	}
	if poll.AuthorID != userID {
		return nil, ErrUnauthorized
	}

	rows, err := s.db.Query(`
		SELECT id, event_type, poll_id, user_id, details, created_at
		FROM audit_log
		WHERE poll_id = $1
		ORDER BY created_at, id
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit log: %w", err)
	}
	defer rows.Close()

	entries := []models.AuditEntry{}
	for rows.Next() {
		var (
			entry  models.AuditEntry
			entPID sql.NullString
			entUID sql.NullString
		)
		err := rows.Scan(&entry.ID, &entry.EventType, &entPID, &entUID, &entry.Details, &entry.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if entPID.Valid {
			entry.PollID = &entPID.String
		}
		if entUID.Valid {
			entry.UserID = &entUID.String
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read audit log: %w", err)
	}
	return entries, nil
}

// Feed lists polls with active ones first, then newest first. Archived
// polls are excluded, and drafts are visible to their author only.
func (s *Service) Feed(viewerID string) ([]models.FeedItem, error) {
	rows, err := s.db.Query(`
		SELECT p.id, p.title, p.poll_type, p.visibility, p.can_change_vote,
		       p.end_date, p.status, p.created_at, p.completed_at, p.author_id,
		       (SELECT COUNT(*) FROM poll_option o WHERE o.poll_id = p.id),
		       (SELECT COUNT(*) FROM vote v WHERE v.poll_id = p.id)
		FROM poll p
		WHERE p.status != 'archived' AND (p.status != 'draft' OR p.author_id = $1)
		ORDER BY CASE WHEN p.status = 'active' THEN 0 ELSE 1 END, p.created_at DESC
	`, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query feed: %w", err)
	}
	defer rows.Close()

	feed := []models.FeedItem{}
	for rows.Next() {
		var (
			item        models.FeedItem
			endDate     sql.NullTime
			completedAt sql.NullTime
		)
		err := rows.Scan(
			&item.Poll.ID, &item.Poll.Title, &item.Poll.PollType, &item.Poll.Visibility,
			&item.Poll.CanChangeVote, &endDate, &item.Poll.Status, &item.Poll.CreatedAt,
			&completedAt, &item.Poll.AuthorID, &item.OptionCount, &item.VoteCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan feed row: %w", err)
		}
		if endDate.Valid {
			item.Poll.EndDate = &endDate.Time
		}
		if completedAt.Valid {
			item.Poll.CompletedAt = &completedAt.Time
		}
		feed = append(feed, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read feed: %w", err)
	}

	return feed, nil
}

func (s *Service) loadPoll(pollID string) (models.Poll, error) {
	var (
		poll        models.Poll
		endDate     sql.NullTime
		completedAt sql.NullTime
	)
	err := s.db.QueryRow(`
		SELECT id, title, poll_type, visibility, can_change_vote,
		       end_date, status, created_at, completed_at, author_id
		FROM poll
		WHERE id = $1
	`, pollID).Scan(
		&poll.ID, &poll.Title, &poll.PollType, &poll.Visibility, &poll.CanChangeVote,
		&endDate, &poll.Status, &poll.CreatedAt, &completedAt, &poll.AuthorID,
	)

	if err == sql.ErrNoRows {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("failed to query poll: %w", err)
	}

	if endDate.Valid {
		poll.EndDate = &endDate.Time
	}
	if completedAt.Valid {
		poll.CompletedAt = &completedAt.Time
	}
	return poll, nil
}

func (s *Service) loadOptions(pollID string) ([]models.Option, error) {
	rows, err := s.db.Query(`
		SELECT id, poll_id, text
		FROM poll_option
		WHERE poll_id = $1
		ORDER BY position
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		var opt models.Option
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Text); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}

	return options, nil
}

// tally counts votes per option in option order. Percent is the share
// of votes (not selections) that picked the option; 0 when nobody voted.
func (s *Service) tally(pollID string, options []models.Option) ([]models.TallyRow, int, error) {
	var total int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM vote WHERE poll_id = $1`, pollID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count votes: %w", err)
	}

	rows, err := s.db.Query(`
		SELECT vs.option_id, COUNT(*)
		FROM vote_selection vs
		JOIN vote v ON v.id = vs.vote_id
		WHERE v.poll_id = $1
		GROUP BY vs.option_id
	`, pollID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count selections: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var optionID string
		var count int
		if err := rows.Scan(&optionID, &count); err != nil {
			return nil, 0, fmt.Errorf("failed to scan selection count: %w", err)
		}
		counts[optionID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read selection counts: %w", err)
	}

	tally := make([]models.TallyRow, 0, len(options))
	for _, opt := range options {
		count := counts[opt.ID]
		percent := 0.0
		if total > 0 {
			percent = float64(count) * 100 / float64(total)
		}
		tally = append(tally, models.TallyRow{
			OptionID: opt.ID,
			Text:     opt.Text,
			Votes:    count,
			Percent:  percent,
		})
	}

	return tally, total, nil
}

// appendAudit writes one append-only audit row inside the caller's
// transaction. userID and details may be empty.
func (s *Service) appendAudit(tx *sql.Tx, eventType, pollID, userID, details string, at time.Time) error {
	var user any
	if userID != "" {
		user = userID
	}
	_, err := tx.Exec(`
		INSERT INTO audit_log (id, event_type, poll_id, user_id, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, uuid.NewString(), eventType, pollID, user, details, at)
	if err != nil {
		return fmt.Errorf("failed to append audit entry: %w", err)
	}
	return nil
}

// isUniqueViolation matches unique-constraint errors from both drivers.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
