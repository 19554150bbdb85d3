package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/domain"
	"github.com/Zachkp/portfolio/internal/repository"
)

type fakeBucket struct {
	mu      sync.Mutex
	uploads map[string]string
	err     error
}

func (b *fakeBucket) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.uploads == nil {
		b.uploads = make(map[string]string)
	}
	b.uploads[path] = string(data)
	return b.PublicURL(path), nil
}

func (b *fakeBucket) PublicURL(path string) string {
	return "https://cdn.example.com/" + path
}

type fakeNotifier struct {
	calls int
	err   error
}

func (n *fakeNotifier) NotifyContact(context.Context, *domain.ContactMessage) error {
	n.calls++
	return n.err
}

type fakeLimiter struct {
	allow bool
	err   error
}

func (l fakeLimiter) Allow(context.Context, string) (bool, error) { return l.allow, l.err }

var fixedNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := repository.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, repository.Migrate(context.Background(), db))
	return db
}

const pngSignature = "\x89PNG\r\n\x1a\n"

// pngUpload wraps body in a PNG signature so it sniffs as an image.
func pngUpload(body string) *Upload {
	return upload("shot.PNG", "image/png", pngSignature+body)
}

func upload(filename, contentType, body string) *Upload {
	return &Upload{Filename: filename, ContentType: contentType, Size: int64(len(body)), Body: strings.NewReader(body)}
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))
	return n
}

func TestProfileSaveKeepsSingleRow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewProfileService(repository.NewProfileRepository(db), &fakeBucket{})
	svc.now = func() time.Time { return fixedNow }

	p, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)

	for i, bio := range []string{"first", "second", "third"} {
		saved, err := svc.Save(ctx, &domain.Profile{Title: "Engineer", Description: "Builds things", Bio: bio}, nil)
		require.NoError(t, err, "save %d", i)
		assert.Equal(t, bio, saved.Bio)
	}
	assert.Equal(t, 1, countRows(t, db, "about_me"))

	got, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "third", got.Bio)
}

func TestProfileSaveUploadsAndKeepsImage(t *testing.T) {
	ctx := context.Background()
	bucket := &fakeBucket{}
	svc := NewProfileService(repository.NewProfileRepository(newTestDB(t)), bucket)
	svc.now = func() time.Time { return fixedNow }

	saved, err := svc.Save(ctx, &domain.Profile{Title: "Engineer", Description: "d", Bio: "b"}, pngUpload("img"))
	require.NoError(t, err)
	wantPath := "profile/1742032800000.png"
	assert.Equal(t, "https://cdn.example.com/"+wantPath, saved.ImageURL)
	assert.Equal(t, pngSignature+"img", bucket.uploads[wantPath])

	again, err := svc.Save(ctx, &domain.Profile{Title: "Engineer", Description: "d", Bio: "b2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, saved.ImageURL, again.ImageURL)
}

func TestProfileSaveValidationSkipsUpload(t *testing.T) {
	bucket := &fakeBucket{}
	svc := NewProfileService(repository.NewProfileRepository(newTestDB(t)), bucket)

	_, err := svc.Save(context.Background(), &domain.Profile{Title: "Engineer"}, pngUpload("img"))
	verrs, ok := domain.AsValidation(err)
	require.True(t, ok)
	_, hasBio := verrs.Get("bio")
	assert.True(t, hasBio)
	assert.Empty(t, bucket.uploads)
}

func TestProfileUploadImageNeedsProfile(t *testing.T) {
	svc := NewProfileService(repository.NewProfileRepository(newTestDB(t)), &fakeBucket{})
	_, err := svc.UploadImage(context.Background(), pngUpload("img"))
	_, ok := domain.AsValidation(err)
	assert.True(t, ok)
}

func TestContactInfoSaveKeepsSingleRow(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := NewContactInfoService(repository.NewContactInfoRepository(db))

	first, err := svc.Save(ctx, &domain.ContactInfo{Email: "me@example.com"})
	require.NoError(t, err)
	second, err := svc.Save(ctx, &domain.ContactInfo{Email: "me@example.com", Phone: "555-0100"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, countRows(t, db, "contact_info"))

	_, err = svc.Save(ctx, &domain.ContactInfo{Email: "not-an-email"})
	_, ok := domain.AsValidation(err)
	assert.True(t, ok)
}

func TestContactSubmitSucceedsWhenNotificationFails(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	notifier := &fakeNotifier{err: errors.New("smtp down")}
	svc := NewContactService(repository.NewMessageRepository(db), notifier, nil)

	msg, err := svc.Submit(ctx, &domain.ContactMessage{
		Name:    "  Ada  ",
		Email:   "ada@example.com",
		Message: "I would like to hire you.",
	}, "client")
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, "Ada", msg.Name)
	assert.Equal(t, "Message from Ada", msg.Subject)
	assert.Equal(t, domain.MessageUnread, msg.Status)
	assert.Equal(t, 1, countRows(t, db, "contact_messages"))
}

func TestContactSubmitValidation(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewContactService(repository.NewMessageRepository(db), notifier, nil)

	_, err := svc.Submit(context.Background(), &domain.ContactMessage{Name: "A", Email: "bad", Message: "short"}, "client")
	verrs, ok := domain.AsValidation(err)
	require.True(t, ok)
	for _, field := range []string{"name", "email", "message"} {
		_, found := verrs.Get(field)
		assert.True(t, found, field)
	}
	assert.Zero(t, notifier.calls)
	assert.Zero(t, countRows(t, db, "contact_messages"))
}

func TestContactSubmitRejectsMarkupOnlyInput(t *testing.T) {
	db := newTestDB(t)
	notifier := &fakeNotifier{}
	svc := NewContactService(repository.NewMessageRepository(db), notifier, nil)

	_, err := svc.Submit(context.Background(), &domain.ContactMessage{
		Name:    "<b></b><i></i>",
		Email:   "ada@example.com",
		Message: "<script></script><p>   </p>",
	}, "client")
	verrs, ok := domain.AsValidation(err)
	require.True(t, ok)
	for _, field := range []string{"name", "message"} {
		_, found := verrs.Get(field)
		assert.True(t, found, field)
	}
	assert.Zero(t, notifier.calls)
	assert.Zero(t, countRows(t, db, "contact_messages"))
}

func TestContactSubmitStoresPlainText(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(repository.NewMessageRepository(db), &fakeNotifier{}, nil)

	msg, err := svc.Submit(context.Background(), &domain.ContactMessage{
		Name:    "<b>Ada</b>",
		Email:   "ada@example.com",
		Message: "<i>I would like to hire you.</i>",
	}, "client")
	require.NoError(t, err)
	assert.Equal(t, "Ada", msg.Name)
	assert.Equal(t, "I would like to hire you.", msg.Message)
	assert.Equal(t, "Message from Ada", msg.Subject)
}

func TestContactSubmitRateLimited(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(repository.NewMessageRepository(db), &fakeNotifier{}, fakeLimiter{allow: false})

	_, err := svc.Submit(context.Background(), &domain.ContactMessage{Name: "Ada", Email: "ada@example.com",
		Message: "Hello there, friend"}, "client")
	assert.ErrorIs(t, err, domain.ErrRateLimited)
}

func TestContactSubmitLimiterErrorFailsOpen(t *testing.T) {
	db := newTestDB(t)
	svc := NewContactService(repository.NewMessageRepository(db), &fakeNotifier{},
		fakeLimiter{err: errors.New("redis down")})

	_, err := svc.Submit(context.Background(), &domain.ContactMessage{Name: "Ada", Email: "ada@example.com",
		Message: "Hello there, friend"}, "client")
	assert.NoError(t, err)
}

func TestMessageServiceStatusAndDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	contact := NewContactService(repository.NewMessageRepository(db), &fakeNotifier{}, nil)
	messages := NewMessageService(repository.NewMessageRepository(db))

	msg, err := contact.Submit(ctx, &domain.ContactMessage{Name: "Ada", Email: "ada@example.com",
		Message: "Hello there, friend"}, "client")
	require.NoError(t, err)

	unread, err := messages.UnreadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)

	_, err = messages.UpdateStatus(ctx, msg.ID, "archived")
	_, ok := domain.AsValidation(err)
	assert.True(t, ok)

	updated, err := messages.UpdateStatus(ctx, msg.ID, domain.MessageReplied)
	require.NoError(t, err)
	assert.Equal(t, domain.MessageReplied, updated.Status)

	require.NoError(t, messages.Delete(ctx, msg.ID))
	assert.ErrorIs(t, messages.Delete(ctx, msg.ID), domain.ErrNotFound)
	assert.ErrorIs(t, messages.Delete(ctx, "not-a-uuid"), domain.ErrNotFound)
}

func TestContentServiceCRUD(t *testing.T) {
	ctx := context.Background()
	bucket := &fakeBucket{}
	svc := NewProjectService(repository.NewProjectRepository(newTestDB(t)), bucket)
	svc.now = func() time.Time { return fixedNow }

	created, err := svc.Create(ctx, &domain.Project{Title: "Mail TUI", Description: "Terminal mail client",
		Technologies: []string{"Go"}, Featured: true}, pngUpload("png"))
	require.NoError(t, err)
	assert.True(t, domain.ValidID(created.ID))
	assert.Equal(t, domain.DefaultProjectStatus, created.Status)
	assert.Equal(t, "https://cdn.example.com/projects/1742032800000.png", created.ImageURL)

	updated, err := svc.Update(ctx, created.ID, &domain.Project{Title: "Mail TUI 2", Description: "Terminal mail client"}, nil)
	require.NoError(t, err)
	assert.Equal(t, created.ImageURL, updated.ImageURL)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	featured, err := svc.Featured(ctx)
	require.NoError(t, err)
	assert.Empty(t, featured)

	require.NoError(t, svc.Delete(ctx, created.ID))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.Update(ctx, created.ID, &domain.Project{Title: "x", Description: "y"}, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestContentServiceRejectsNonImage(t *testing.T) {
	bucket := &fakeBucket{}
	svc := NewSkillService(repository.NewSkillRepository(newTestDB(t)), bucket)

	upload := &Upload{Filename: "notes.txt", ContentType: "text/plain", Size: 4, Body: strings.NewReader("text")}
	_, err := svc.Create(context.Background(), &domain.Skill{Name: "Go", Category: "Languages", Proficiency: 5}, upload)
	verrs, ok := domain.AsValidation(err)
	require.True(t, ok)
	_, found := verrs.Get("image")
	assert.True(t, found)
	assert.Empty(t, bucket.uploads)
}

func TestStoreImageChecksNameAndContent(t *testing.T) {
	tests := []struct {
		name     string
		upload   *Upload
		wantPath string
	}{
		{"html named as html", upload("evil.html", "image/png", "<html><script>alert(1)</script></html>"), ""},
		{"html named as png", upload("evil.png", "image/png", "<html><script>alert(1)</script></html>"), ""},
		{"svg", upload("logo.svg", "image/svg+xml", `<svg xmlns="http://www.w3.org/2000/svg"></svg>`), ""},
		{"no extension", upload("shot", "image/png", pngSignature+"x"), ""},
		{"png", upload("Shot.PNG", "image/png", pngSignature+"x"), "projects/1742032800000.png"},
		{"png named as jpeg", upload("photo.jpeg", "image/jpeg", pngSignature+"x"), "projects/1742032800000.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket := &fakeBucket{}
			url, err := storeImage(context.Background(), bucket, "projects", tt.upload, fixedNow)
			if tt.wantPath == "" {
				verrs, ok := domain.AsValidation(err)
				require.True(t, ok, "got %v", err)
				_, found := verrs.Get("image")
				assert.True(t, found)
				assert.Empty(t, bucket.uploads)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "https://cdn.example.com/"+tt.wantPath, url)
			assert.Equal(t, pngSignature+"x", bucket.uploads[tt.wantPath])
		})
	}
}

func TestContentServiceUploadFailure(t *testing.T) {
	svc := NewSkillService(repository.NewSkillRepository(newTestDB(t)), &fakeBucket{err: errors.New("bucket gone")})

	_, err := svc.Create(context.Background(), &domain.Skill{Name: "Go", Category: "Languages", Proficiency: 5}, pngUpload("x"))
	assert.ErrorContains(t, err, "bucket gone")

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSkillServiceGrouped(t *testing.T) {
	ctx := context.Background()
	svc := NewSkillService(repository.NewSkillRepository(newTestDB(t)), nil)

	for i, s := range []domain.Skill{
		{Name: "Go", Category: "Languages", Proficiency: 5},
		{Name: "SQLite", Category: "Databases", Proficiency: 4},
		{Name: "Python", Category: "Languages", Proficiency: 3},
	} {
		s.OrderIndex = i
		_, err := svc.Create(ctx, &s, nil)
		require.NoError(t, err)
	}

	groups, err := svc.Grouped(ctx)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "Languages", groups[0].Category)
	assert.Len(t, groups[0].Skills, 2)
	assert.Equal(t, "Databases", groups[1].Category)
}

func TestCertificationServiceWithStatus(t *testing.T) {
	ctx := context.Background()
	svc := NewCertificationService(repository.NewCertificationRepository(newTestDB(t)), nil)

	_, err := svc.Create(ctx, &domain.Certification{Title: "Old", Issuer: "PMI", IssueDate: "2020-01-01",
		ExpiryDate: "2023-01-01", OrderIndex: 0}, nil)
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.Certification{Title: "Forever", Issuer: "AWS", OrderIndex: 1}, nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.Certification{Title: "Bad", Issuer: "X", IssueDate: "2024-01-01",
		ExpiryDate: "2023-01-01"}, nil)
	verrs, ok := domain.AsValidation(err)
	require.True(t, ok)
	_, found := verrs.Get("expiry_date")
	assert.True(t, found)

	views, err := svc.WithStatus(ctx, fixedNow)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, domain.CertExpired, views[0].Status)
	assert.Equal(t, domain.CertNoExpiry, views[1].Status)
}

func TestVisitorServiceAndAdminStats(t *testing.T) {
	ctx := context.Background()
	svcs := New(Deps{DB: newTestDB(t), Bucket: &fakeBucket{}, Notifier: &fakeNotifier{}, VisitorSalt: "salt"})
	svcs.Visitors.now = func() time.Time { return fixedNow }

	assert.Equal(t, svcs.Visitors.HashIP("1.2.3.4"), svcs.Visitors.HashIP("1.2.3.4"))
	assert.NotEqual(t, svcs.Visitors.HashIP("1.2.3.4"), svcs.Visitors.HashIP("1.2.3.5"))
	assert.Len(t, svcs.Visitors.HashIP("1.2.3.4"), 16)

	require.NoError(t, svcs.Visitors.Track(ctx, "1.2.3.4", "test", "/portfolio"))
	require.NoError(t, svcs.Visitors.Track(ctx, "1.2.3.4", "test", "/portfolio"))

	_, err := svcs.Projects.Create(ctx, &domain.Project{Title: "P", Description: "D", Featured: true}, nil)
	require.NoError(t, err)
	_, err = svcs.Contact.Submit(ctx, &domain.ContactMessage{Name: "Ada", Email: "ada@example.com",
		Message: "Hello there, friend"}, "client")
	require.NoError(t, err)

	stats, err := svcs.AdminStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalVisitors)
	assert.Equal(t, int64(1), stats.UniqueVisitors)
	assert.Equal(t, 1, stats.Content.Projects)
	assert.Equal(t, 1, stats.Content.FeaturedCount)
	assert.Equal(t, 1, stats.Content.UnreadMessages)
	assert.Len(t, stats.RecentVisitors, 2)

	svcs.Visitors.now = func() time.Time { return fixedNow.Add(2 * VisitorRetention) }
	deleted, err := svcs.Visitors.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}
