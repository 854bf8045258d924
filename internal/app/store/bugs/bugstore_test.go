package bugstore_test

import (
	"testing"

	bugstore "github.com/dalemusser/bughub/internal/app/store/bugs"
	"github.com/dalemusser/bughub/internal/domain/models"
	"github.com/dalemusser/bughub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bugstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tester := testutil.NewFixtures(t, db).CreateTester(ctx, "QA User", "qa@example.com")

	created, err := store.Create(ctx, models.Bug{
		Title:       "  Login button unresponsive  ",
		Description: "Clicking login does nothing on Safari",
		CreatedBy:   tester.ID,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Title != "Login button unresponsive" {
		t.Fatalf("title not trimmed: %q", created.Title)
	}
	if created.Status != models.StatusOpen {
		t.Fatalf("expected default status open, got %q", created.Status)
	}
	if created.Severity != models.SeverityMedium {
		t.Fatalf("expected default severity medium, got %q", created.Severity)
	}
	if created.BugType != models.BugTypeOther {
		t.Fatalf("expected default bug type Other, got %q", created.BugType)
	}
	if created.AssignedTo != nil || created.AssignedToTeam {
		t.Fatal("new bug should be unassigned")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CreatedBy != tester.ID {
		t.Fatal("CreatedBy not persisted")
	}
}

func TestCreateRejectsBadEnums(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bugstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cases := []models.Bug{
		{Title: ""},
		{Title: "x", Status: "closed"},
		{Title: "x", Severity: "blocker"},
		{Title: "x", BugType: "Frontend"},
	}
	for i, bug := range cases {
		if _, err := store.Create(ctx, bug); err == nil {
			t.Errorf("case %d: expected an error", i)
		}
	}
}

func TestGetMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bugstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); err != bugstore.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssign(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bugstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	tester := fixtures.CreateTester(ctx, "QA User", "qa@example.com")
	dev := fixtures.CreateDeveloper(ctx, "Dev User", "dev@example.com")
	bug := fixtures.CreateBug(ctx, "Crash on save", tester.ID, models.Bug{})

	if err := store.Assign(ctx, bug.ID, dev.ID); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}

	got, err := store.GetByID(ctx, bug.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.AssignedTo == nil || *got.AssignedTo != dev.ID {
		t.Fatal("bug not assigned to developer")
	}
	if got.Status != models.StatusAssigned {
		t.Fatalf("expected status assigned, got %q", got.Status)
	}
	if got.AssignedToTeam {
		t.Fatal("direct assignment should clear the team flag")
	}

	if err := store.Assign(ctx, primitive.NewObjectID(), dev.ID); err != bugstore.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssignProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bugstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	tester := fixtures.CreateTester(ctx, "QA User", "qa@example.com")
	dev := fixtures.CreateDeveloper(ctx, "Dev User", "dev@example.com")
	project := fixtures.CreateProject(ctx, "APP", "App")
	bug := fixtures.CreateBug(ctx, "Slow query", tester.ID, models.Bug{BugType: models.BugTypeDatabase})

	if err := store.AssignProject(ctx, bug.ID, project.ID, &dev.ID, true); err != nil {
		t.Fatalf("AssignProject failed: %v", err)
	}

	got, err := store.GetByID(ctx, bug.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Project == nil || *got.Project != project.ID {
		t.Fatal("project not recorded")
	}
	if got.AssignedTo == nil || *got.AssignedTo != dev.ID {
		t.Fatal("assignee not recorded")
	}
	if !got.AssignedToTeam {
		t.Fatal("team flag not recorded")
	}
	if got.Status != models.StatusAssigned {
		t.Fatalf("expected status assigned, got %q", got.Status)
	}
}

func TestAssignProjectNoAssignee(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bugstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	tester := fixtures.CreateTester(ctx, "QA User", "qa@example.com")
	project := fixtures.CreateProject(ctx, "EMPTY", "Empty Team")
	bug := fixtures.CreateBug(ctx, "Orphan bug", tester.ID, models.Bug{})

	if err := store.AssignProject(ctx, bug.ID, project.ID, nil, false); err != nil {
		t.Fatalf("AssignProject failed: %v", err)
	}

	got, err := store.GetByID(ctx, bug.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Project == nil || *got.Project != project.ID {
		t.Fatal("project not recorded")
	}
	if got.AssignedTo != nil {
		t.Fatal("expected no assignee")
	}
	if got.Status != models.StatusOpen {
		t.Fatalf("status should stay open, got %q", got.Status)
	}
}

func TestUpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bugstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	tester := fixtures.CreateTester(ctx, "QA User", "qa@example.com")
	bug := fixtures.CreateBug(ctx, "Typo in footer", tester.ID, models.Bug{})

	if err := store.UpdateStatus(ctx, bug.ID, models.StatusFixed); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	got, err := store.GetByID(ctx, bug.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.StatusFixed {
		t.Fatalf("expected fixed, got %q", got.Status)
	}

	// Applying the same status again succeeds and changes nothing.
	if err := store.UpdateStatus(ctx, bug.ID, models.StatusFixed); err != nil {
		t.Fatalf("idempotent UpdateStatus failed: %v", err)
	}
	again, err := store.GetByID(ctx, bug.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if again.Status != models.StatusFixed {
		t.Fatalf("expected fixed, got %q", again.Status)
	}

	if err := store.UpdateStatus(ctx, bug.ID, "resolved"); err == nil {
		t.Fatal("expected an error for an unknown status")
	}
	if err := store.UpdateStatus(ctx, primitive.NewObjectID(), models.StatusOpen); err != bugstore.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAssignedTo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bugstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	tester := fixtures.CreateTester(ctx, "QA User", "qa@example.com")
	dev := fixtures.CreateDeveloper(ctx, "Dev User", "dev@example.com")
	other := fixtures.CreateDeveloper(ctx, "Other Dev", "other@example.com")
	teamProject := fixtures.CreateProject(ctx, "MINE", "Mine")
	strangeProject := fixtures.CreateProject(ctx, "THEIRS", "Theirs")

	direct := fixtures.CreateBug(ctx, "Direct", tester.ID, models.Bug{AssignedTo: &dev.ID})
	team := fixtures.CreateBug(ctx, "Team", tester.ID, models.Bug{Project: &teamProject.ID, AssignedToTeam: true})
	fixtures.CreateBug(ctx, "Someone else's", tester.ID, models.Bug{AssignedTo: &other.ID})
	fixtures.CreateBug(ctx, "Other team's", tester.ID, models.Bug{Project: &strangeProject.ID, AssignedToTeam: true})
	fixtures.CreateBug(ctx, "Unassigned", tester.ID, models.Bug{})

	bugs, err := store.ListAssignedTo(ctx, dev.ID, []primitive.ObjectID{teamProject.ID})
	if err != nil {
		t.Fatalf("ListAssignedTo failed: %v", err)
	}
	if len(bugs) != 2 {
		t.Fatalf("expected 2 bugs, got %d", len(bugs))
	}
	seen := map[primitive.ObjectID]bool{}
	for _, b := range bugs {
		seen[b.ID] = true
	}
	if !seen[direct.ID] || !seen[team.ID] {
		t.Fatal("missing a directly assigned or team-assigned bug")
	}

	// No team projects narrows the list to direct assignments.
	bugs, err = store.ListAssignedTo(ctx, dev.ID, nil)
	if err != nil {
		t.Fatalf("ListAssignedTo failed: %v", err)
	}
	if len(bugs) != 1 || bugs[0].ID != direct.ID {
		t.Fatalf("expected only the directly assigned bug, got %d", len(bugs))
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := bugstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures := testutil.NewFixtures(t, db)
	tester := fixtures.CreateTester(ctx, "QA User", "qa@example.com")
	bug := fixtures.CreateBug(ctx, "Doomed", tester.ID, models.Bug{})
	keeper := fixtures.CreateBug(ctx, "Keeper", tester.ID, models.Bug{})

	if err := store.Delete(ctx, bug.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, bug.ID); err != bugstore.ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting a missing bug leaves everything else alone.
	if err := store.Delete(ctx, primitive.NewObjectID()); err != bugstore.ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	remaining, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != keeper.ID {
		t.Fatalf("expected only the keeper bug, got %d", len(remaining))
	}
}
