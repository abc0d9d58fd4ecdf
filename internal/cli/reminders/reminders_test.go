package reminders

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/lifestock/internal/cli"
	"github.com/julianstephens/lifestock/internal/models"
	"github.com/julianstephens/lifestock/internal/scheduler"
	"github.com/julianstephens/lifestock/internal/storage"
	"github.com/julianstephens/lifestock/internal/storage/sqlite"
)

var testNow = time.Date(2024, 1, 31, 8, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if err := store.AddItem(models.Item{ID: "item-1", Kind: models.ItemKindStock, Name: "Water filter"}); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	var buf bytes.Buffer
	ctx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(time.UTC),
		Out:       &buf,
		Clock:     func() time.Time { return testNow },
		Confirm: func(string) (bool, error) {
			t.Error("unexpected confirmation prompt")
			return false, nil
		},
	}
	return ctx, &buf
}

// onlyReminder returns the single reminder stored for item-1.
func onlyReminder(t *testing.T, ctx *cli.Context) models.Reminder {
	t.Helper()
	rs, err := ctx.Store.GetRemindersForItem("item-1")
	if err != nil {
		t.Fatalf("GetRemindersForItem failed: %v", err)
	}
	if len(rs) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(rs))
	}
	return rs[0]
}

func intPtr(n int) *int { return &n }

func TestReminderAddCmd_OneTime(t *testing.T) {
	ctx, buf := setupTestDB(t)

	cmd := &ReminderAddCmd{ItemID: "item-1", Title: "Replace cartridge", Due: "2024-02-05 18:00"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	r := onlyReminder(t, ctx)
	want := time.Date(2024, 2, 5, 18, 0, 0, 0, time.UTC)
	if r.Kind != models.ReminderOneTime || r.DueDate == nil || !r.DueDate.Equal(want) {
		t.Errorf("reminder = %+v", r)
	}
	if r.AdvanceDays != 3 {
		t.Errorf("AdvanceDays = %d, want default 3 from settings", r.AdvanceDays)
	}
	if !strings.Contains(buf.String(), "Once on 2024-02-05") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestReminderAddCmd_RecurringStartsAtStartDate(t *testing.T) {
	ctx, _ := setupTestDB(t)

	cmd := &ReminderAddCmd{ItemID: "item-1", Title: "Replace", Every: 1, Unit: "month", Start: "2024-01-31", AdvanceDays: intPtr(0)}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	r := onlyReminder(t, ctx)
	if r.NextDueDate == nil || r.StartDate == nil || !r.NextDueDate.Equal(*r.StartDate) {
		t.Errorf("next due should start at the start date: %+v", r)
	}
	if r.AdvanceDays != 0 {
		t.Errorf("AdvanceDays = %d, want explicit 0", r.AdvanceDays)
	}
}

func TestReminderAddCmd_Invalid(t *testing.T) {
	ctx, _ := setupTestDB(t)

	tests := []struct {
		name string
		cmd  ReminderAddCmd
	}{
		{"one-time without due", ReminderAddCmd{ItemID: "item-1", Title: "x"}},
		{"recurring without start", ReminderAddCmd{ItemID: "item-1", Title: "x", Every: 2, Unit: "week"}},
		{"negative advance", ReminderAddCmd{ItemID: "item-1", Title: "x", Due: "2024-02-01", AdvanceDays: intPtr(-1)}},
		{"unknown item", ReminderAddCmd{ItemID: "missing", Title: "x", Due: "2024-02-01"}},
		{"blank title", ReminderAddCmd{ItemID: "item-1", Title: " ", Due: "2024-02-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestReminderCompleteCmd_MonthlyClamping(t *testing.T) {
	ctx, buf := setupTestDB(t)
	add := &ReminderAddCmd{ItemID: "item-1", Title: "Replace", Every: 1, Unit: "month", Start: "2024-01-31 09:00"}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	id := onlyReminder(t, ctx).ID

	wants := []time.Time{
		time.Date(2024, 2, 29, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 29, 9, 0, 0, 0, time.UTC),
	}
	for i, want := range wants {
		if err := (&ReminderCompleteCmd{ID: id, Yes: true, Notes: "swapped"}).Run(ctx); err != nil {
			t.Fatalf("complete %d failed: %v", i+1, err)
		}
		r := onlyReminder(t, ctx)
		if r.NextDueDate == nil || !r.NextDueDate.Equal(want) {
			t.Errorf("after completion %d NextDueDate = %v, want %v", i+1, r.NextDueDate, want)
		}
		if !r.Active {
			t.Error("recurring reminder should stay active")
		}
	}

	logs, err := ctx.Store.GetLogsForReminder(id)
	if err != nil {
		t.Fatalf("GetLogsForReminder failed: %v", err)
	}
	if len(logs) != 2 {
		t.Errorf("expected 2 logs, got %d", len(logs))
	}
	if !strings.Contains(buf.String(), "Next due 2024-02-29 09:00 (do in 29 days)") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestReminderCompleteCmd_OneTimeDeactivates(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&ReminderAddCmd{ItemID: "item-1", Title: "Renew", Due: "2024-01-30"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	id := onlyReminder(t, ctx).ID

	asked := ""
	ctx.Confirm = func(title string) (bool, error) {
		asked = title
		return true, nil
	}
	if err := (&ReminderCompleteCmd{ID: id, At: "2024-01-31 07:30"}).Run(ctx); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if !strings.Contains(asked, "overdue") {
		t.Errorf("prompt should show the status, got %q", asked)
	}

	r := onlyReminder(t, ctx)
	if r.Active {
		t.Error("one-time reminder should be inactive after completion")
	}
	logs, _ := ctx.Store.GetLogsForReminder(id)
	if len(logs) != 1 || !logs[0].CompletedAt.Equal(time.Date(2024, 1, 31, 7, 30, 0, 0, time.UTC)) {
		t.Errorf("logs = %+v", logs)
	}

	if err := (&ReminderCompleteCmd{ID: id, Yes: true}).Run(ctx); err == nil {
		t.Error("completing an inactive reminder should fail")
	}
}

func TestReminderCompleteCmd_Declined(t *testing.T) {
	ctx, buf := setupTestDB(t)
	if err := (&ReminderAddCmd{ItemID: "item-1", Title: "Renew", Due: "2024-02-10"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	id := onlyReminder(t, ctx).ID
	ctx.Confirm = func(string) (bool, error) { return false, nil }

	if err := (&ReminderCompleteCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Cancelled.") {
		t.Errorf("unexpected output: %q", buf.String())
	}
	if logs, _ := ctx.Store.GetLogsForReminder(id); len(logs) != 0 {
		t.Errorf("declined completion wrote %d logs", len(logs))
	}
}

func TestReminderEditCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&ReminderAddCmd{ItemID: "item-1", Title: "Replace", Every: 1, Unit: "month", Start: "2024-01-01"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	r := onlyReminder(t, ctx)

	every, unit, title := 2, "week", "Swap filter"
	if err := (&ReminderEditCmd{ID: r.ID, Every: &every, Unit: &unit, Title: &title}).Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	got := onlyReminder(t, ctx)
	if got.RecurrenceInterval != 2 || got.RecurrenceUnit != models.UnitWeek || got.Title != title {
		t.Errorf("reminder after edit = %+v", got)
	}
	if got.Version != r.Version+1 {
		t.Errorf("Version = %d, want %d", got.Version, r.Version+1)
	}

	if err := (&ReminderEditCmd{ID: r.ID, Deactivate: true}).Run(ctx); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	if onlyReminder(t, ctx).Active {
		t.Error("reminder should be inactive")
	}

	due := "2024-03-01"
	if err := (&ReminderEditCmd{ID: r.ID, Due: &due}).Run(ctx); err == nil {
		t.Error("--due on a recurring reminder should fail")
	}
	badUnit := "fortnight"
	if err := (&ReminderEditCmd{ID: r.ID, Unit: &badUnit}).Run(ctx); err == nil {
		t.Error("unknown unit should fail validation")
	}
}

func TestReminderListCmd(t *testing.T) {
	ctx, buf := setupTestDB(t)
	for _, cmd := range []ReminderAddCmd{
		{ItemID: "item-1", Title: "Soon", Due: "2024-02-01"},
		{ItemID: "item-1", Title: "Done", Due: "2024-01-01"},
	} {
		if err := cmd.Run(ctx); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	rs, _ := ctx.Store.GetRemindersForItem("item-1")
	for _, r := range rs {
		if r.Title == "Done" {
			if _, _, err := ctx.Store.CompleteReminder(r.ID, testNow, "", ctx.Scheduler); err != nil {
				t.Fatalf("CompleteReminder failed: %v", err)
			}
		}
	}

	buf.Reset()
	if err := (&ReminderListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Water filter: Soon - Once on 2024-02-01, due tomorrow") || strings.Contains(buf.String(), "Done") {
		t.Errorf("active list:\n%s", buf.String())
	}

	buf.Reset()
	if err := (&ReminderListCmd{All: true}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Done - Once on 2024-01-01, inactive") {
		t.Errorf("full list:\n%s", buf.String())
	}
}

func TestReminderShowAndLogs(t *testing.T) {
	ctx, buf := setupTestDB(t)
	if err := (&ReminderAddCmd{ItemID: "item-1", Title: "Replace", Every: 3, Unit: "day", Start: "2024-01-30"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	id := onlyReminder(t, ctx).ID
	if err := (&ReminderCompleteCmd{ID: id, Yes: true, Notes: "late"}).Run(ctx); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	buf.Reset()
	if err := (&ReminderShowCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	for _, want := range []string{"Replace (Water filter)", "Schedule:     Every 3 days", "Next due:     2024-02-02 09:00", "Completions:  1"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("show output missing %q:\n%s", want, buf.String())
		}
	}

	buf.Reset()
	if err := (&ReminderLogsCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("logs failed: %v", err)
	}
	if !strings.Contains(buf.String(), "2024-01-31 08:00 - late") {
		t.Errorf("logs output:\n%s", buf.String())
	}
}

func TestReminderDeleteCmd(t *testing.T) {
	ctx, _ := setupTestDB(t)
	if err := (&ReminderAddCmd{ItemID: "item-1", Title: "Renew", Due: "2024-02-10"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	id := onlyReminder(t, ctx).ID

	if err := (&ReminderDeleteCmd{ID: id, Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := ctx.Store.GetReminder(id); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetReminder after delete error = %v, want ErrNotFound", err)
	}
}

func TestReminderListCmd_NonUTCZone(t *testing.T) {
	ctx, buf := setupTestDB(t)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	ctx.Scheduler = scheduler.New(tokyo)

	// 08:00 in Tokyo is still the previous day in UTC
	if err := (&ReminderAddCmd{ItemID: "item-1", Title: "Renew SIM", Due: "2024-03-01 08:00"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Once on 2024-03-01") {
		t.Errorf("add output:\n%s", buf.String())
	}

	buf.Reset()
	if err := (&ReminderListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Once on 2024-03-01") {
		t.Errorf("list should show the Tokyo calendar day:\n%s", buf.String())
	}

	buf.Reset()
	r := onlyReminder(t, ctx)
	if err := (&ReminderShowCmd{ID: r.ID}).Run(ctx); err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Schedule:     Once on 2024-03-01") {
		t.Errorf("show should use the Tokyo calendar day:\n%s", buf.String())
	}
}
