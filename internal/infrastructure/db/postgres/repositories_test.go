package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/rodnnnney/consensus25/internal/core/domain"
	"github.com/rodnnnney/consensus25/internal/core/ports"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:repo_"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRoleRepository_FindRoleMissing(t *testing.T) {
	repo := NewRoleRepository(setupTestDB(t))

	rec, err := repo.FindRole(context.Background(), "usr-absent")
	if err != nil {
		t.Fatalf("find role: %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record for missing principal, got %+v", rec)
	}
}

func TestRoleRepository_UpsertOverwrites(t *testing.T) {
	repo := NewRoleRepository(setupTestDB(t))
	ctx := context.Background()

	if err := repo.UpsertRole(ctx, "usr-1", "freelancer"); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := repo.UpsertRole(ctx, "usr-1", "employer"); err != nil {
		t.Fatalf("upsert again: %v", err)
	}

	rec, err := repo.FindRole(ctx, "usr-1")
	if err != nil {
		t.Fatalf("find role: %v", err)
	}
	if rec == nil || rec.Role != "employer" {
		t.Fatalf("expected employer role after overwrite, got %+v", rec)
	}
}

func TestJobRepository_RoundTrip(t *testing.T) {
	repo := NewJobRepository(setupTestDB(t))
	ctx := context.Background()

	job := domain.JobPosting{
		FreelancerID: "fre-1",
		Title:        "Landing page",
		Description:  "Next.js marketing site",
		Skills:       []string{"React", "Tailwind", "Figma"},
		Rate:         decimal.RequireFromString("62.50"),
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.Create(ctx, &job); err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.ID == "" {
		t.Fatal("expected generated id")
	}

	got, err := repo.FindByID(ctx, job.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Title != "Landing page" {
		t.Fatalf("title = %q", got.Title)
	}
	if len(got.Skills) != 3 || got.Skills[0] != "React" || got.Skills[2] != "Figma" {
		t.Fatalf("skills round trip broken: %v", got.Skills)
	}
	if !got.Rate.Equal(job.Rate) {
		t.Fatalf("rate = %s, want %s", got.Rate, job.Rate)
	}
}

func TestJobRepository_FindMissing(t *testing.T) {
	repo := NewJobRepository(setupTestDB(t))

	_, err := repo.FindByID(context.Background(), "job-absent")
	if !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestJobRepository_ListAllNewestFirst(t *testing.T) {
	repo := NewJobRepository(setupTestDB(t))
	ctx := context.Background()

	older := domain.JobPosting{
		FreelancerID: "fre-1",
		Title:        "Older",
		Skills:       []string{"Go"},
		Rate:         decimal.NewFromInt(40),
		CreatedAt:    time.Now().UTC().Add(-time.Hour),
	}
	newer := domain.JobPosting{
		FreelancerID: "fre-1",
		Title:        "Newer",
		Skills:       []string{"Go"},
		Rate:         decimal.NewFromInt(45),
		CreatedAt:    time.Now().UTC(),
	}
	for _, j := range []*domain.JobPosting{&older, &newer} {
		if err := repo.Create(ctx, j); err != nil {
			t.Fatalf("create %s: %v", j.Title, err)
		}
	}

	jobs, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Title != "Newer" {
		t.Fatalf("expected newest first, got %q", jobs[0].Title)
	}
}

func TestTransactionRepository_FindByHashMissing(t *testing.T) {
	repo := NewTransactionRepository(setupTestDB(t))

	tx, err := repo.FindByHash(context.Background(), "0xunknown")
	if err != nil {
		t.Fatalf("find by hash: %v", err)
	}
	if tx != nil {
		t.Fatalf("expected nil for unknown hash, got %+v", tx)
	}
}

func TestTransactionRepository_HashUnique(t *testing.T) {
	repo := NewTransactionRepository(setupTestDB(t))
	ctx := context.Background()

	first := domain.Transaction{
		ContractorID: "fre-1",
		CompanyID:    "emp-1",
		Price:        decimal.RequireFromString("45"),
		Amount:       decimal.RequireFromString("45"),
		Status:       domain.TxCompleted,
		TxHash:       "0xabc123",
		CreatedAt:    time.Now().UTC(),
	}
	if err := repo.Create(ctx, &first); err != nil {
		t.Fatalf("create: %v", err)
	}

	dup := first
	dup.ID = ""
	if err := repo.Create(ctx, &dup); err == nil {
		t.Fatal("expected unique constraint violation on duplicate tx hash")
	}

	got, err := repo.FindByHash(ctx, "0xabc123")
	if err != nil {
		t.Fatalf("find by hash: %v", err)
	}
	if got == nil || got.ID != first.ID {
		t.Fatalf("expected original record, got %+v", got)
	}
	if !got.Amount.Equal(first.Amount) {
		t.Fatalf("amount = %s, want %s", got.Amount, first.Amount)
	}
}

func TestTransactionRepository_ListByCompany(t *testing.T) {
	repo := NewTransactionRepository(setupTestDB(t))
	ctx := context.Background()

	rows := []domain.Transaction{
		{ContractorID: "fre-1", CompanyID: "emp-1", Price: decimal.NewFromInt(10), Amount: decimal.NewFromInt(10), Status: domain.TxCompleted, TxHash: "0x1", CreatedAt: time.Now().UTC().Add(-time.Minute)},
		{ContractorID: "fre-2", CompanyID: "emp-1", Price: decimal.NewFromInt(20), Amount: decimal.NewFromInt(20), Status: domain.TxCompleted, TxHash: "0x2", CreatedAt: time.Now().UTC()},
		{ContractorID: "fre-3", CompanyID: "emp-2", Price: decimal.NewFromInt(30), Amount: decimal.NewFromInt(30), Status: domain.TxCompleted, TxHash: "0x3", CreatedAt: time.Now().UTC()},
	}
	for i := range rows {
		if err := repo.Create(ctx, &rows[i]); err != nil {
			t.Fatalf("create %s: %v", rows[i].TxHash, err)
		}
	}

	txs, err := repo.ListByCompany(ctx, "emp-1")
	if err != nil {
		t.Fatalf("list by company: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[0].TxHash != "0x2" {
		t.Fatalf("expected newest first, got %s", txs[0].TxHash)
	}
}

func TestFreelancerRepository_PartialUpdate(t *testing.T) {
	repo := NewFreelancerRepository(setupTestDB(t))
	ctx := context.Background()

	profile := domain.FreelancerProfile{
		ID:         "fre-1",
		FirstName:  "Maya",
		LastName:   "Lin",
		EmployerID: "emp-1",
		Email:      "maya@example.com",
		Bio:        "frontend",
		Twitter:    "@maya",
	}
	if err := repo.Create(ctx, &profile); err != nil {
		t.Fatalf("create: %v", err)
	}

	bio := "frontend and design systems"
	wallet := "0xwallet"
	err := repo.Update(ctx, "fre-1", ports.FreelancerProfileUpdate{Bio: &bio, WalletAddress: &wallet})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.FindByID(ctx, "fre-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Bio != bio || got.WalletAddress != wallet {
		t.Fatalf("updated fields not applied: %+v", got)
	}
	if got.Twitter != "@maya" {
		t.Fatalf("untouched field changed: %q", got.Twitter)
	}
}

func TestFreelancerRepository_UpdateMissing(t *testing.T) {
	repo := NewFreelancerRepository(setupTestDB(t))

	bio := "anything"
	err := repo.Update(context.Background(), "fre-absent", ports.FreelancerProfileUpdate{Bio: &bio})
	if !errors.Is(err, domain.ErrProfileMissing) {
		t.Fatalf("expected ErrProfileMissing, got %v", err)
	}
}

func TestFreelancerRepository_EmptyUpdateIsNoop(t *testing.T) {
	repo := NewFreelancerRepository(setupTestDB(t))

	if err := repo.Update(context.Background(), "fre-absent", ports.FreelancerProfileUpdate{}); err != nil {
		t.Fatalf("expected nil for empty update, got %v", err)
	}
}

func TestFreelancerRepository_ListByEmployerScopes(t *testing.T) {
	repo := NewFreelancerRepository(setupTestDB(t))
	ctx := context.Background()

	for _, p := range []domain.FreelancerProfile{
		{ID: "fre-1", FirstName: "A", EmployerID: "emp-1", Email: "a@example.com"},
		{ID: "fre-2", FirstName: "B", EmployerID: "emp-1", Email: "b@example.com"},
		{ID: "fre-3", FirstName: "C", EmployerID: "emp-2", Email: "c@example.com"},
	} {
		p := p
		if err := repo.Create(ctx, &p); err != nil {
			t.Fatalf("create %s: %v", p.ID, err)
		}
	}

	roster, err := repo.ListByEmployer(ctx, "emp-1")
	if err != nil {
		t.Fatalf("list by employer: %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("expected 2 freelancers, got %d", len(roster))
	}
	for _, p := range roster {
		if p.EmployerID != "emp-1" {
			t.Fatalf("wrong employer in roster: %+v", p)
		}
	}
}
