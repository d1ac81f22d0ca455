// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mankru71/OpinionHub/auth"
	"github.com/mankru71/OpinionHub/models"
	"github.com/mankru71/OpinionHub/testutil"
)

const testSalt = "test-voter-salt"

func newTestService(t *testing.T) (*Service, *sql.DB) {
	t.Helper()
	conn := testutil.SetupTestDB(t)
	return NewService(conn, testSalt), conn
}

// createActivePoll creates and publishes a poll with options A and B,
// returning it with its options.
func createActivePoll(t *testing.T, svc *Service, pollType, visibility string, canChange bool) (models.Poll, []models.Option) {
	t.Helper()
	poll, options, err := svc.CreateDraft(models.CreatePollRequest{
		Title:         "Q",
		PollType:      pollType,
		Visibility:    visibility,
		CanChangeVote: canChange,
		Options:       []string{"A", "B"},
		PublishNow:    true,
	}, "author")
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}
	return poll, options
}

func selectionsOf(t *testing.T, conn *sql.DB, voteID string) []string {
	t.Helper()
	rows, err := conn.Query(`SELECT option_id FROM vote_selection WHERE vote_id = $1`, voteID)
	if err != nil {
		t.Fatalf("Failed to query selections: %v", err)
	}
	defer rows.Close()

	var selections []string
	for rows.Next() {
		var optionID string
		if err := rows.Scan(&optionID); err != nil {
			t.Fatalf("Failed to scan selection: %v", err)
		}
		selections = append(selections, optionID)
	}
	return selections
}

func TestCreateDraftFiltersBlankAndDuplicateOptions(t *testing.T) {
	svc, _ := newTestService(t)

	_, options, err := svc.CreateDraft(models.CreatePollRequest{
		Title:   "Lunch",
		Options: []string{"A", " B ", "", "A", "B"},
	}, "author")
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}

	if len(options) != 2 {
		t.Fatalf("Expected 2 options after filtering, got %d", len(options))
	}
	if options[0].Text != "A" || options[1].Text != "B" {
		t.Errorf("Expected options [A B], got [%s %s]", options[0].Text, options[1].Text)
	}
}

func TestCreateDraftRequiresTwoUniqueOptions(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.CreateDraft(models.CreatePollRequest{
		Title:   "Too few",
		Options: []string{"A", "A", "  "},
	}, "author")

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
}

func TestCreateDraftRejectsPastEndDate(t *testing.T) {
	svc, _ := newTestService(t)

	past := time.Now().UTC().Add(-time.Minute)
	_, _, err := svc.CreateDraft(models.CreatePollRequest{
		Title:   "Expired before it started",
		Options: []string{"A", "B"},
		EndDate: &past,
	}, "author")

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
}

func TestCreateDraftPublishNow(t *testing.T) {
	svc, conn := newTestService(t)

	poll, options := createActivePoll(t, svc, models.TypeSingleChoice, models.VisibilityPublic, false)

	if poll.Status != models.StatusActive {
		t.Errorf("Expected status active, got %s", poll.Status)
	}
	if len(options) != 2 {
		t.Errorf("Expected 2 options, got %d", len(options))
	}

	var eventType string
	err := conn.QueryRow(`SELECT event_type FROM audit_log WHERE poll_id = $1`, poll.ID).Scan(&eventType)
	if err != nil {
		t.Fatalf("Failed to query audit log: %v", err)
	}
	if eventType != models.EventPollCreated {
		t.Errorf("Expected %s audit entry, got %s", models.EventPollCreated, eventType)
	}
}

func TestPublishDraft(t *testing.T) {
	svc, conn := newTestService(t)

	poll, _, err := svc.CreateDraft(models.CreatePollRequest{
		Title:   "Draft",
		Options: []string{"A", "B"},
	}, "author")
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}

	if err := svc.Publish(poll.ID, "author"); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	var status string
	if err := conn.QueryRow(`SELECT status FROM poll WHERE id = $1`, poll.ID).Scan(&status); err != nil {
		t.Fatalf("Failed to query poll: %v", err)
	}
	if status != models.StatusActive {
		t.Errorf("Expected status active, got %s", status)
	}
}

func TestPublishByNonAuthorIsNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	poll, _, err := svc.CreateDraft(models.CreatePollRequest{
		Title:   "Draft",
		Options: []string{"A", "B"},
	}, "author")
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}

	if err := svc.Publish(poll.ID, "intruder"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestPublishNonDraftRejected(t *testing.T) {
	svc, _ := newTestService(t)

	poll, _ := createActivePoll(t, svc, models.TypeSingleChoice, models.VisibilityPublic, false)

	var stateErr *StateError
	if err := svc.Publish(poll.ID, "author"); !errors.As(err, &stateErr) {
		t.Errorf("Expected StateError, got %v", err)
	}
}

func TestConcurrentPublishActivatesOnce(t *testing.T) {
	svc, _ := newTestService(t)

	poll, _, err := svc.CreateDraft(models.CreatePollRequest{
		Title:    "Race",
		PollType: models.TypeSingleChoice,
		Options:  []string{"A", "B"},
	}, "author")
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}

	var wg sync.WaitGroup
	var published atomic.Int32
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.Publish(poll.ID, "author"); err == nil {
				published.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := published.Load(); got != 1 {
		t.Errorf("Expected exactly one publish to succeed, got %d", got)
	}

	details, err := svc.GetPoll(poll.ID)
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}
	if details.Poll.Status != models.StatusActive {
		t.Errorf("Expected poll active after race, got %s", details.Poll.Status)
	}
}

func TestVoteSingleChoiceRejectsMultipleOptions(t *testing.T) {
	svc, _ := newTestService(t)

	poll, options := createActivePoll(t, svc, models.TypeSingleChoice, models.VisibilityPublic, false)

	err := svc.Vote(poll.ID, "u1", "", []string{options[0].ID, options[1].ID})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if validationErr.Reason != "need to choose 1 option" {
		t.Errorf("Unexpected reason: %s", validationErr.Reason)
	}
}

func TestVoteRejectsEmptySelection(t *testing.T) {
	svc, _ := newTestService(t)

	poll, _ := createActivePoll(t, svc, models.TypeMultipleChoice, models.VisibilityPublic, false)

	var validationErr *ValidationError
	if err := svc.Vote(poll.ID, "u1", "", nil); !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
}

func TestVoteRejectsUnknownOption(t *testing.T) {
	svc, _ := newTestService(t)

	poll, _ := createActivePoll(t, svc, models.TypeSingleChoice, models.VisibilityPublic, false)
	_, otherOptions := createActivePoll(t, svc, models.TypeSingleChoice, models.VisibilityPublic, false)

	var validationErr *ValidationError
	if err := svc.Vote(poll.ID, "u1", "", []string{otherOptions[0].ID}); !errors.As(err, &validationErr) {
		t.Errorf("Expected ValidationError, got %v", err)
	}
}

func TestVoteOnDraftPollRejected(t *testing.T) {
	svc, _ := newTestService(t)

	poll, options, err := svc.CreateDraft(models.CreatePollRequest{
		Title:   "Draft",
		Options: []string{"A", "B"},
	}, "author")
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}

	var stateErr *StateError
	if err := svc.Vote(poll.ID, "u1", "", []string{options[0].ID}); !errors.As(err, &stateErr) {
		t.Errorf("Expected StateError, got %v", err)
	}
}

func TestVoteOnExpiredPollRejected(t *testing.T) {
	svc, conn := newTestService(t)

	// Active at rest, but the end date has passed and the sweep has not
	// run yet. Voting must still refuse.
	past := time.Now().UTC().Add(-time.Minute)
	pollID := testutil.CreateTestPoll(t, conn, testutil.PollFixture{EndDate: &past})
	optionID := testutil.AddTestOption(t, conn, pollID, "A", 0)
	testutil.AddTestOption(t, conn, pollID, "B", 1)

	var stateErr *StateError
	if err := svc.Vote(pollID, "u1", "", []string{optionID}); !errors.As(err, &stateErr) {
		t.Errorf("Expected StateError, got %v", err)
	}
}

func TestVoteOnMissingPollNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.Vote("no-such-poll", "u1", "", []string{"x"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestVoteRecordsSingleRowWithSelection(t *testing.T) {
	svc, conn := newTestService(t)

	poll, options := createActivePoll(t, svc, models.TypeSingleChoice, models.VisibilityPublic, false)

	if err := svc.Vote(poll.ID, "u1", "", []string{options[0].ID}); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	var (
		voteID    string
		accountID sql.NullString
		voterHash sql.NullString
	)
	err := conn.QueryRow(`
		SELECT id, voter_account_id, voter_hash FROM vote WHERE poll_id = $1
	`, poll.ID).Scan(&voteID, &accountID, &voterHash)
	if err != nil {
		t.Fatalf("Expected exactly one vote row: %v", err)
	}

	if !accountID.Valid || accountID.String != "u1" {
		t.Errorf("Expected account key u1 on public poll, got %v", accountID)
	}
	if !voterHash.Valid || voterHash.String != auth.HashVoter("u1", testSalt) {
		t.Errorf("Expected derived voter hash, got %v", voterHash)
	}

	selections := selectionsOf(t, conn, voteID)
	if len(selections) != 1 || selections[0] != options[0].ID {
		t.Errorf("Expected selection set {%s}, got %v", options[0].ID, selections)
	}
}

func TestRevoteForbiddenLeavesSelectionsUnchanged(t *testing.T) {
	svc, conn := newTestService(t)

	poll, options := createActivePoll(t, svc, models.TypeSingleChoice, models.VisibilityPublic, false)

	if err := svc.Vote(poll.ID, "u1", "", []string{options[0].ID}); err != nil {
		t.Fatalf("First vote failed: %v", err)
	}

	var stateErr *StateError
	err := svc.Vote(poll.ID, "u1", "", []string{options[1].ID})
	if !errors.As(err, &stateErr) {
		t.Fatalf("Expected StateError, got %v", err)
	}
	if stateErr.Reason != "vote change not permitted" {
		t.Errorf("Unexpected reason: %s", stateErr.Reason)
	}

	var voteID string
	if err := conn.QueryRow(`SELECT id FROM vote WHERE poll_id = $1`, poll.ID).Scan(&voteID); err != nil {
		t.Fatalf("Expected exactly one vote row: %v", err)
	}
	selections := selectionsOf(t, conn, voteID)
	if len(selections) != 1 || selections[0] != options[0].ID {
		t.Errorf("Expected original selection %s to survive, got %v", options[0].ID, selections)
	}
}

func TestRevoteReplacesSelectionSet(t *testing.T) {
	svc, conn := newTestService(t)

	poll, options, err := svc.CreateDraft(models.CreatePollRequest{
		Title:         "Multi",
		PollType:      models.TypeMultipleChoice,
		CanChangeVote: true,
		Options:       []string{"A", "B", "C"},
		PublishNow:    true,
	}, "author")
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}

	if err := svc.Vote(poll.ID, "u1", "", []string{options[0].ID, options[1].ID}); err != nil {
		t.Fatalf("First vote failed: %v", err)
	}
	if err := svc.Vote(poll.ID, "u1", "", []string{options[2].ID}); err != nil {
		t.Fatalf("Revote failed: %v", err)
	}

	if count := testutil.CountRows(t, conn, "vote", "poll_id", poll.ID); count != 1 {
		t.Fatalf("Expected one vote row after revote, got %d", count)
	}

	var voteID string
	if err := conn.QueryRow(`SELECT id FROM vote WHERE poll_id = $1`, poll.ID).Scan(&voteID); err != nil {
		t.Fatalf("Failed to query vote: %v", err)
	}
	selections := selectionsOf(t, conn, voteID)
	if len(selections) != 1 || selections[0] != options[2].ID {
		t.Errorf("Expected selection set replaced with {%s}, got %v", options[2].ID, selections)
	}
}

func TestAnonymousVoteHidesAccountButStillDedupes(t *testing.T) {
	svc, conn := newTestService(t)

	poll, options := createActivePoll(t, svc, models.TypeSingleChoice, models.VisibilityAnonymous, false)

	if err := svc.Vote(poll.ID, "user-1", "", []string{options[0].ID}); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	var (
		accountID sql.NullString
		voterHash sql.NullString
	)
	err := conn.QueryRow(`SELECT voter_account_id, voter_hash FROM vote WHERE poll_id = $1`, poll.ID).
		Scan(&accountID, &voterHash)
	if err != nil {
		t.Fatalf("Failed to query vote: %v", err)
	}
	if accountID.Valid {
		t.Errorf("Anonymous poll must not store the account key, got %s", accountID.String)
	}
	if !voterHash.Valid || voterHash.String != auth.HashVoter("user-1", testSalt) {
		t.Errorf("Expected derived dedup key, got %v", voterHash)
	}

	// The same voter is still detected as a duplicate.
	var stateErr *StateError
	if err := svc.Vote(poll.ID, "user-1", "", []string{options[1].ID}); !errors.As(err, &stateErr) {
		t.Errorf("Expected StateError on duplicate anonymous vote, got %v", err)
	}
}

func TestLegacyVoteBlocksSecondVoteWhenChangeDisabled(t *testing.T) {
	svc, conn := newTestService(t)

	pollID := testutil.CreateTestPoll(t, conn, testutil.PollFixture{Title: "Legacy"})
	optionA := testutil.AddTestOption(t, conn, pollID, "A", 0)
	optionB := testutil.AddTestOption(t, conn, pollID, "B", 1)
	testutil.CreateLegacyVote(t, conn, pollID, "legacy-user", optionA)

	var stateErr *StateError
	if err := svc.Vote(pollID, "legacy-user", "", []string{optionB}); !errors.As(err, &stateErr) {
		t.Fatalf("Expected StateError, got %v", err)
	}

	var legacyID sql.NullString
	if err := conn.QueryRow(`SELECT legacy_user_id FROM vote WHERE poll_id = $1`, pollID).Scan(&legacyID); err != nil {
		t.Fatalf("Expected exactly one vote row: %v", err)
	}
	if !legacyID.Valid || legacyID.String != "legacy-user" {
		t.Errorf("Expected legacy key untouched, got %v", legacyID)
	}
}

func TestLegacyVoteBackfilledOnPermittedRevote(t *testing.T) {
	svc, conn := newTestService(t)

	pollID := testutil.CreateTestPoll(t, conn, testutil.PollFixture{Title: "Legacy editable", CanChangeVote: true})
	optionA := testutil.AddTestOption(t, conn, pollID, "A", 0)
	optionB := testutil.AddTestOption(t, conn, pollID, "B", 1)
	voteID := testutil.CreateLegacyVote(t, conn, pollID, "legacy-user", optionA)

	if err := svc.Vote(pollID, "legacy-user", "", []string{optionB}); err != nil {
		t.Fatalf("Revote failed: %v", err)
	}

	if count := testutil.CountRows(t, conn, "vote", "poll_id", pollID); count != 1 {
		t.Fatalf("Expected one vote row after backfill, got %d", count)
	}

	var (
		accountID sql.NullString
		voterHash sql.NullString
	)
	err := conn.QueryRow(`SELECT voter_account_id, voter_hash FROM vote WHERE id = $1`, voteID).
		Scan(&accountID, &voterHash)
	if err != nil {
		t.Fatalf("Failed to query vote: %v", err)
	}
	if !accountID.Valid || accountID.String != "legacy-user" {
		t.Errorf("Expected account key backfilled, got %v", accountID)
	}
	if !voterHash.Valid || voterHash.String != auth.HashVoter("legacy-user", testSalt) {
		t.Errorf("Expected voter hash backfilled, got %v", voterHash)
	}

	selections := selectionsOf(t, conn, voteID)
	if len(selections) != 1 || selections[0] != optionB {
		t.Errorf("Expected selection replaced with %s, got %v", optionB, selections)
	}
}

// A migrated account keeps its old user id in the token, and the two
// strings differ. The lookup must still unify them onto one vote row.
func TestLegacyVoteBlocksVoteUnderNewAccountKey(t *testing.T) {
	svc, conn := newTestService(t)

	pollID := testutil.CreateTestPoll(t, conn, testutil.PollFixture{Title: "Migrated"})
	optionA := testutil.AddTestOption(t, conn, pollID, "A", 0)
	optionB := testutil.AddTestOption(t, conn, pollID, "B", 1)
	testutil.CreateLegacyVote(t, conn, pollID, "user-9", optionA)

	var stateErr *StateError
	if err := svc.Vote(pollID, "acct-1", "user-9", []string{optionB}); !errors.As(err, &stateErr) {
		t.Fatalf("Expected StateError, got %v", err)
	}

	if count := testutil.CountRows(t, conn, "vote", "poll_id", pollID); count != 1 {
		t.Errorf("Expected one vote row per voter, got %d", count)
	}
}

func TestLegacyRevoteUnderNewAccountKeyBackfills(t *testing.T) {
	svc, conn := newTestService(t)

	pollID := testutil.CreateTestPoll(t, conn, testutil.PollFixture{Title: "Migrated editable", CanChangeVote: true})
	optionA := testutil.AddTestOption(t, conn, pollID, "A", 0)
	optionB := testutil.AddTestOption(t, conn, pollID, "B", 1)
	voteID := testutil.CreateLegacyVote(t, conn, pollID, "user-9", optionA)

	if err := svc.Vote(pollID, "acct-1", "user-9", []string{optionB}); err != nil {
		t.Fatalf("Revote failed: %v", err)
	}

	if count := testutil.CountRows(t, conn, "vote", "poll_id", pollID); count != 1 {
		t.Fatalf("Expected one vote row after backfill, got %d", count)
	}

	var (
		accountID sql.NullString
		voterHash sql.NullString
	)
	err := conn.QueryRow(`SELECT voter_account_id, voter_hash FROM vote WHERE id = $1`, voteID).
		Scan(&accountID, &voterHash)
	if err != nil {
		t.Fatalf("Failed to query vote: %v", err)
	}
	if !accountID.Valid || accountID.String != "acct-1" {
		t.Errorf("Expected account key backfilled to acct-1, got %v", accountID)
	}
	if !voterHash.Valid || voterHash.String != auth.HashVoter("acct-1", testSalt) {
		t.Errorf("Expected hash of the account key backfilled, got %v", voterHash)
	}

	selections := selectionsOf(t, conn, voteID)
	if len(selections) != 1 || selections[0] != optionB {
		t.Errorf("Expected selection replaced with %s, got %v", optionB, selections)
	}
}

func TestVoteAuditOmitsUserForAnonymousPolls(t *testing.T) {
	svc, conn := newTestService(t)

	poll, options := createActivePoll(t, svc, models.TypeSingleChoice, models.VisibilityAnonymous, false)

	if err := svc.Vote(poll.ID, "user-1", "", []string{options[0].ID}); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	var (
		userID  sql.NullString
		details string
	)
	err := conn.QueryRow(`
		SELECT user_id, details FROM audit_log WHERE poll_id = $1 AND event_type = $2
	`, poll.ID, models.EventVoteSubmitted).Scan(&userID, &details)
	if err != nil {
		t.Fatalf("Failed to query audit log: %v", err)
	}
	if userID.Valid {
		t.Errorf("Anonymous vote audit must omit the user, got %s", userID.String)
	}
	if details != "Options="+options[0].ID {
		t.Errorf("Unexpected audit details: %s", details)
	}
}

func TestGetPollTally(t *testing.T) {
	svc, _ := newTestService(t)

	poll, options, err := svc.CreateDraft(models.CreatePollRequest{
		Title:      "Tally",
		PollType:   models.TypeMultipleChoice,
		Options:    []string{"A", "B"},
		PublishNow: true,
	}, "author")
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}

	if err := svc.Vote(poll.ID, "u1", "", []string{options[0].ID, options[1].ID}); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}
	if err := svc.Vote(poll.ID, "u2", "", []string{options[0].ID}); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	details, err := svc.GetPoll(poll.ID)
	if err != nil {
		t.Fatalf("GetPoll failed: %v", err)
	}

	if details.TotalVotes != 2 {
		t.Errorf("Expected 2 total votes, got %d", details.TotalVotes)
	}
	if details.Tally[0].Votes != 2 || details.Tally[0].Percent != 100 {
		t.Errorf("Expected option A at 2 votes / 100%%, got %+v", details.Tally[0])
	}
	if details.Tally[1].Votes != 1 || details.Tally[1].Percent != 50 {
		t.Errorf("Expected option B at 1 vote / 50%%, got %+v", details.Tally[1])
	}
}

func TestTallyIsAuthorOnly(t *testing.T) {
	svc, _ := newTestService(t)

	poll, _ := createActivePoll(t, svc, models.TypeSingleChoice, models.VisibilityPublic, false)

	if _, err := svc.Tally(poll.ID, "someone-else"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.Tally("no-such-poll", "author"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestAuditTrailListsPollEvents(t *testing.T) {
	svc, _ := newTestService(t)

	poll, options := createActivePoll(t, svc, models.TypeSingleChoice, models.VisibilityPublic, false)

	if err := svc.Vote(poll.ID, "u1", "", []string{options[0].ID}); err != nil {
		t.Fatalf("Vote failed: %v", err)
	}

	entries, err := svc.AuditTrail(poll.ID, "author")
	if err != nil {
		t.Fatalf("AuditTrail failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 audit entries, got %d", len(entries))
	}

	if entries[0].EventType != models.EventPollCreated {
		t.Errorf("Expected %s first, got %s", models.EventPollCreated, entries[0].EventType)
	}
	if entries[0].Details != poll.Title {
		t.Errorf("Expected creation details %q, got %q", poll.Title, entries[0].Details)
	}
	if entries[1].EventType != models.EventVoteSubmitted {
		t.Errorf("Expected %s second, got %s", models.EventVoteSubmitted, entries[1].EventType)
	}
	if entries[1].UserID == nil || *entries[1].UserID != "u1" {
		t.Errorf("Expected vote entry attributed to u1, got %v", entries[1].UserID)
	}
	if entries[1].Details != "Options="+options[0].ID {
		t.Errorf("Unexpected vote details: %s", entries[1].Details)
	}
}

func TestAuditTrailIsAuthorOnly(t *testing.T) {
	svc, _ := newTestService(t)

	poll, _ := createActivePoll(t, svc, models.TypeSingleChoice, models.VisibilityPublic, false)

	if _, err := svc.AuditTrail(poll.ID, "someone-else"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
	if _, err := svc.AuditTrail("no-such-poll", "author"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFeedOrderingAndVisibility(t *testing.T) {
	svc, conn := newTestService(t)

	completedID := testutil.CreateTestPoll(t, conn, testutil.PollFixture{Title: "Done", Status: models.StatusCompleted})
	activeID := testutil.CreateTestPoll(t, conn, testutil.PollFixture{Title: "Live"})
	testutil.CreateTestPoll(t, conn, testutil.PollFixture{Title: "Gone", Status: models.StatusArchived})
	myDraftID := testutil.CreateTestPoll(t, conn, testutil.PollFixture{Title: "Mine", Status: models.StatusDraft, AuthorID: "viewer"})
	testutil.CreateTestPoll(t, conn, testutil.PollFixture{Title: "Theirs", Status: models.StatusDraft, AuthorID: "other"})

	feed, err := svc.Feed("viewer")
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}

	if len(feed) != 3 {
		t.Fatalf("Expected 3 polls in feed, got %d", len(feed))
	}
	if feed[0].Poll.ID != activeID {
		t.Errorf("Expected the active poll first, got %s", feed[0].Poll.Title)
	}

	ids := map[string]bool{}
	for _, item := range feed {
		ids[item.Poll.ID] = true
	}
	if !ids[completedID] || !ids[myDraftID] {
		t.Errorf("Expected completed poll and own draft in feed, got %v", ids)
	}
}
