// Copyright (c) 2026 OpinionHub.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mankru71/OpinionHub/models"
	"github.com/mankru71/OpinionHub/notify"
	"github.com/mankru71/OpinionHub/testutil"
)

// TestFullPollWorkflow tests the complete end-to-end workflow:
// 1. Issue a token
// 2. Create a draft poll
// 3. Publish it
// 4. Two voters vote
// 5. One voter changes their vote
// 6. Read the tally
// 7. Export the results
func TestFullPollWorkflow(t *testing.T) {
	svc, _, cfg := newTestEnv(t)
	pollHandler := NewPollHandler(svc)
	voteHandler := NewVoteHandler(svc, notify.NewHub())
	exportHandler := NewExportHandler(svc)
	tokenHandler := NewTokenHandler(cfg)

	// Step 1: Issue a token for the author
	req := testutil.MakeRequest("POST", "/auth/token", models.IssueTokenRequest{UserID: "author-1"}, nil)
	w := httptest.NewRecorder()
	tokenHandler.IssueToken(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Issue token failed: %d - %s", w.Code, w.Body.String())
	}

	var tokenResp models.IssueTokenResponse
	testutil.AssertJSON(t, w, &tokenResp)
	authorToken := "Bearer " + tokenResp.Token
	t.Log("Step 1 - Issued author token")

	// Step 2: Create a draft poll with vote changes enabled
	req = testutil.MakeRequest("POST", "/polls", models.CreatePollRequest{
		Title:         "Team lunch",
		PollType:      models.TypeSingleChoice,
		CanChangeVote: true,
		Options:       []string{"Pizza", "Sushi", "Tacos"},
	}, map[string]string{"Authorization": authorToken})
	w = httptest.NewRecorder()
	authed(cfg, pollHandler.CreatePoll)(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Step 2 - Create poll failed: %d - %s", w.Code, w.Body.String())
	}

	var created models.PollDetails
	testutil.AssertJSON(t, w, &created)
	pollID := created.Poll.ID
	if pollID == "" || len(created.Options) != 3 {
		t.Fatal("Step 2 - Missing poll ID or options")
	}
	t.Logf("Step 2 - Created poll: %s", pollID)

	// Step 3: Publish
	req = testutil.MakeRequest("POST", "/polls/"+pollID+"/publish", nil, map[string]string{
		"Authorization": authorToken,
	})
	req.SetPathValue("id", pollID)
	w = httptest.NewRecorder()
	authed(cfg, pollHandler.PublishPoll)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Publish failed: %d - %s", w.Code, w.Body.String())
	}
	t.Log("Step 3 - Published poll")

	// Step 4: Two voters vote
	castVote := func(accountID, optionID string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/polls/"+pollID+"/vote", models.VoteRequest{
			OptionIDs: []string{optionID},
		}, map[string]string{"Authorization": testutil.BearerToken(t, cfg, accountID, "")})
		req.SetPathValue("id", pollID)
		w := httptest.NewRecorder()
		authed(cfg, voteHandler.Vote)(w, req)
		return w
	}

	if w := castVote("voter-1", created.Options[0].ID); w.Code != http.StatusOK {
		t.Fatalf("Step 4 - First vote failed: %d - %s", w.Code, w.Body.String())
	}
	if w := castVote("voter-2", created.Options[0].ID); w.Code != http.StatusOK {
		t.Fatalf("Step 4 - Second vote failed: %d - %s", w.Code, w.Body.String())
	}
	t.Log("Step 4 - Two votes recorded")

	// Step 5: voter-2 changes their mind
	if w := castVote("voter-2", created.Options[1].ID); w.Code != http.StatusOK {
		t.Fatalf("Step 5 - Vote change failed: %d - %s", w.Code, w.Body.String())
	}
	t.Log("Step 5 - Vote changed")

	// Step 6: Read the tally
	req = testutil.MakeRequest("GET", "/polls/"+pollID, nil, nil)
	req.SetPathValue("id", pollID)
	w = httptest.NewRecorder()
	pollHandler.GetPoll(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - Get poll failed: %d - %s", w.Code, w.Body.String())
	}

	var details models.PollDetails
	testutil.AssertJSON(t, w, &details)
	if details.TotalVotes != 2 {
		t.Errorf("Step 6 - Expected 2 total votes, got %d", details.TotalVotes)
	}
	if details.Tally[0].Votes != 1 || details.Tally[1].Votes != 1 || details.Tally[2].Votes != 0 {
		t.Errorf("Step 6 - Unexpected tally: %+v", details.Tally)
	}
	t.Log("Step 6 - Tally verified")

	// Step 7: Export as CSV
	req = testutil.MakeRequest("GET", "/polls/"+pollID+"/export.csv", nil, map[string]string{
		"Authorization": authorToken,
	})
	req.SetPathValue("id", pollID)
	w = httptest.NewRecorder()
	authed(cfg, exportHandler.ExportCSV)(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Export failed: %d - %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "\"Pizza\",1,50.00") {
		t.Errorf("Step 7 - Unexpected export:\n%s", w.Body.String())
	}
	t.Log("Step 7 - Export verified")
}
